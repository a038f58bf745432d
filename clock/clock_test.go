// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManual(t *testing.T) {
	c := NewManual(5)
	assert.Equal(t, uint64(5), c.CurrentTick())
	assert.Equal(t, uint64(8), c.Advance(3))
	assert.Equal(t, uint64(8), c.CurrentTick())

	c.Set(2)
	assert.Equal(t, uint64(2), c.CurrentTick())
}

func TestInterval(t *testing.T) {
	genesis := time.Unix(1_700_000_000, 0)
	c := NewInterval(genesis, 10*time.Second)

	tests := []struct {
		now  time.Time
		tick uint64
		next time.Duration
	}{
		{genesis.Add(-time.Hour), 0, time.Hour + 10*time.Second},
		{genesis, 0, 10 * time.Second},
		{genesis.Add(9 * time.Second), 0, time.Second},
		{genesis.Add(10 * time.Second), 1, 10 * time.Second},
		{genesis.Add(125 * time.Second), 12, 5 * time.Second},
	}
	for _, tt := range tests {
		c.now = func() time.Time { return tt.now }
		assert.Equal(t, tt.tick, c.CurrentTick(), "tick at %v", tt.now)
		assert.Equal(t, tt.next, c.UntilNext(), "next at %v", tt.now)
	}

	assert.Equal(t, genesis.Add(30*time.Second), c.TimeOf(3))
	assert.Equal(t, 10*time.Second, c.Interval())
}

func TestIntervalDefault(t *testing.T) {
	c := NewInterval(time.Now(), 0)
	assert.Equal(t, time.Second, c.Interval())
}
