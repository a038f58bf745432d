// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"math/big"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type address [4]byte

func (a address) String() string { return "0xdeadbeef" }

func TestNewHandler(t *testing.T) {
	var lvl slog.LevelVar

	out := new(bytes.Buffer)
	h := NewHandler(out, &lvl, false)
	term, ok := h.(*TerminalHandler)
	require.True(t, ok)
	assert.False(t, term.useColor, "a buffer is never a terminal")

	_, ok = NewHandler(out, &lvl, true).(*TerminalHandler)
	assert.False(t, ok)

	f, err := os.CreateTemp(t.TempDir(), "log")
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, useColor(f))
}

func TestJSONHandlerValues(t *testing.T) {
	out := new(bytes.Buffer)
	var lvl slog.LevelVar
	l := NewLogger(NewHandler(out, &lvl, true))

	var nilAmount *big.Int
	l.Info("distribution",
		"elapsed", 1500*time.Millisecond,
		"units", new(big.Int).Mul(big.NewInt(100), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)),
		"dust", nilAmount,
		"asset", address{},
		"err", errors.New("boom"),
	)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &rec))
	assert.Equal(t, "info", rec["lvl"])
	assert.Equal(t, "1.5s", rec["elapsed"])
	assert.Equal(t, "100000000000000000000", rec["units"])
	assert.Equal(t, "<nil>", rec["dust"])
	assert.Equal(t, "0xdeadbeef", rec["asset"])
	assert.Equal(t, "boom", rec["err"])
}

func TestTerminalHandlerValues(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(NewTerminalHandler(out, false))

	var nilAmount *big.Int
	l.Warn("failed to distribute rewards", "dust", nilAmount, "asset", address{}, "elapsed", 3*time.Second)

	line := out.String()
	assert.Contains(t, line, "WARN ")
	assert.Contains(t, line, "dust=<nil>")
	assert.Contains(t, line, "asset=0xdeadbeef")
	assert.Contains(t, line, "elapsed=3s")
}

func TestGroupsAreFlattened(t *testing.T) {
	out := new(bytes.Buffer)
	logger := slog.New(NewTerminalHandler(out, false)).WithGroup("api")
	logger.Info("request", "status", 200)
	assert.Contains(t, out.String(), "status=200")

	assert.NotPanics(t, func() {
		slog.New(DiscardHandler()).WithGroup("api").Info("dropped")
	})
}
