// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"bytes"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vechain/stakeledger/api/admin/health"
	"github.com/vechain/stakeledger/builtin/staker"
)

type idleLedger struct{}

func (idleLedger) Pool() (*staker.Pool, error) {
	return &staker.Pool{TotalShares: big.NewInt(0)}, nil
}

func TestAdminRoutes(t *testing.T) {
	var (
		level    slog.LevelVar
		apiLogs  atomic.Bool
		triggers atomic.Int32
	)
	handler := New(&level, health.New(idleLedger{}), &apiLogs, func() { triggers.Add(1) })

	do := func(method, path, body string) int {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(method, path, bytes.NewBufferString(body)))
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, do(http.MethodGet, "/admin/loglevel", ""))
	assert.Equal(t, http.StatusOK, do(http.MethodGet, "/admin/health", ""))
	assert.Equal(t, http.StatusOK, do(http.MethodPost, "/admin/apilogs", `{"enabled":true}`))
	assert.True(t, apiLogs.Load())

	assert.Equal(t, http.StatusAccepted, do(http.MethodPost, "/admin/distribute", ""))
	assert.Equal(t, int32(1), triggers.Load())
	assert.Equal(t, http.StatusMethodNotAllowed, do(http.MethodGet, "/admin/distribute", ""))
	assert.Equal(t, http.StatusNotFound, do(http.MethodGet, "/staker", ""))
}

func TestAdminWithoutTrigger(t *testing.T) {
	var (
		level   slog.LevelVar
		apiLogs atomic.Bool
	)
	handler := New(&level, health.New(idleLedger{}), &apiLogs, nil)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/admin/distribute", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
