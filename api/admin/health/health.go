// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"sync"

	"github.com/vechain/stakeledger/builtin/staker"
)

// Ledger is the part of the staking ledger health looks at.
type Ledger interface {
	Pool() (*staker.Pool, error)
}

type Status struct {
	Healthy              bool   `json:"healthy"`
	CurrentTick          uint64 `json:"currentTick"`
	LastDistributionTick uint64 `json:"lastDistributionTick"`
	Lag                  uint64 `json:"lag"`
	Participants         uint64 `json:"participants"`
	Halted               string `json:"halted,omitempty"`
}

type Health struct {
	lock   sync.RWMutex
	ledger Ledger
	halted error
}

func New(ledger Ledger) *Health {
	return &Health{ledger: ledger}
}

// Halt marks the distribution as stopped for good.
func (h *Health) Halt(err error) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.halted = err
}

// Status reports healthy when distribution is running and, if anyone is
// staked, no more than maxLag ticks behind the clock.
func (h *Health) Status(maxLag uint64) (*Status, error) {
	pool, err := h.ledger.Pool()
	if err != nil {
		return nil, err
	}

	h.lock.RLock()
	halted := h.halted
	h.lock.RUnlock()

	s := &Status{
		CurrentTick:          pool.CurrentTick,
		LastDistributionTick: pool.LastDistributionTick,
		Participants:         pool.Participants,
	}
	if pool.CurrentTick > pool.LastDistributionTick {
		s.Lag = pool.CurrentTick - pool.LastDistributionTick
	}
	if halted != nil {
		s.Halted = halted.Error()
	}
	s.Healthy = halted == nil && (pool.TotalShares.Sign() == 0 || s.Lag <= maxLag)
	return s, nil
}
