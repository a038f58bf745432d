// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package clock provides the logical clocks that drive reward accrual.
package clock

import (
	"sync/atomic"
	"time"
)

// Manual is a clock advanced explicitly by its owner.
type Manual struct {
	tick atomic.Uint64
}

// NewManual returns a manual clock positioned at start.
func NewManual(start uint64) *Manual {
	m := &Manual{}
	m.tick.Store(start)
	return m
}

func (m *Manual) CurrentTick() uint64 {
	return m.tick.Load()
}

// Advance moves the clock forward by n ticks and returns the new tick.
func (m *Manual) Advance(n uint64) uint64 {
	return m.tick.Add(n)
}

// Set positions the clock at tick. Moving backwards is allowed, consumers
// are expected to detect the regression.
func (m *Manual) Set(tick uint64) {
	m.tick.Store(tick)
}

// Interval derives ticks from wall time. Tick 0 starts at genesis and
// a new tick begins every interval.
type Interval struct {
	genesis  time.Time
	interval time.Duration
	now      func() time.Time
}

// NewInterval creates a wall time clock. A non positive interval falls back to one second.
func NewInterval(genesis time.Time, interval time.Duration) *Interval {
	if interval <= 0 {
		interval = time.Second
	}
	return &Interval{genesis: genesis, interval: interval, now: time.Now}
}

func (c *Interval) CurrentTick() uint64 {
	return c.tickAt(c.now())
}

func (c *Interval) tickAt(t time.Time) uint64 {
	if t.Before(c.genesis) {
		return 0
	}
	return uint64(t.Sub(c.genesis) / c.interval)
}

// TimeOf returns the wall time at which tick begins.
func (c *Interval) TimeOf(tick uint64) time.Time {
	return c.genesis.Add(time.Duration(tick) * c.interval)
}

// UntilNext returns how long it takes for the next tick to begin.
func (c *Interval) UntilNext() time.Duration {
	now := c.now()
	return c.TimeOf(c.tickAt(now) + 1).Sub(now)
}

// Interval returns the duration of one tick.
func (c *Interval) Interval() time.Duration {
	return c.interval
}
