// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vechain/stakeledger/co"
)

func TestGoes(t *testing.T) {
	var (
		goes co.Goes
		n    atomic.Int32
	)
	for range 5 {
		goes.Go(func() { n.Add(1) })
	}
	goes.Wait()
	assert.Equal(t, int32(5), n.Load())
}

func TestGoesContext(t *testing.T) {
	var goes co.Goes
	ctx, cancel := context.WithCancel(context.Background())

	goes.GoContext(ctx, func(ctx context.Context) {
		<-ctx.Done()
	})
	assert.False(t, goes.WaitTimeout(20*time.Millisecond))

	cancel()
	assert.True(t, goes.WaitTimeout(time.Second))
	<-goes.Done()
}
