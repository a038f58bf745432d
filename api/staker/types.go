// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/stakeledger/builtin/staker"
	"github.com/vechain/stakeledger/thor"
)

// Pool for marshal pool summary
type Pool struct {
	Address              thor.Address          `json:"address"`
	Asset                thor.Address          `json:"asset"`
	Minter               thor.Address          `json:"minter"`
	RatePerTick          *math.HexOrDecimal256 `json:"ratePerTick"`
	LastDistributionTick uint64                `json:"lastDistributionTick"`
	CurrentTick          uint64                `json:"currentTick"`
	TotalPrincipal       *math.HexOrDecimal256 `json:"totalPrincipal"`
	TotalShares          *math.HexOrDecimal256 `json:"totalShares"`
	Undistributed        *math.HexOrDecimal256 `json:"undistributed"`
	Custody              *math.HexOrDecimal256 `json:"custody"`
	Pending              *math.HexOrDecimal256 `json:"pending"`
	Participants         uint64                `json:"participants"`
}

// Position for marshal a participant position
type Position struct {
	Participant thor.Address          `json:"participant"`
	Principal   *math.HexOrDecimal256 `json:"principal"`
	Shares      *math.HexOrDecimal256 `json:"shares"`
	Accrued     *math.HexOrDecimal256 `json:"accrued"`
}

// Clock is the view of the logical clock relative to the last distribution.
type Clock struct {
	CurrentTick          uint64 `json:"currentTick"`
	LastDistributionTick uint64 `json:"lastDistributionTick"`
	ElapsedTicks         uint64 `json:"elapsedTicks"`
}

func hexOrDecimal(v *big.Int) *math.HexOrDecimal256 {
	if v == nil {
		v = new(big.Int)
	}
	return (*math.HexOrDecimal256)(new(big.Int).Set(v))
}

func convertPool(p *staker.Pool) *Pool {
	return &Pool{
		Address:              p.Address,
		Asset:                p.Asset,
		Minter:               p.Minter,
		RatePerTick:          hexOrDecimal(p.RatePerTick),
		LastDistributionTick: p.LastDistributionTick,
		CurrentTick:          p.CurrentTick,
		TotalPrincipal:       hexOrDecimal(p.TotalPrincipal),
		TotalShares:          hexOrDecimal(p.TotalShares),
		Undistributed:        hexOrDecimal(p.Undistributed),
		Custody:              hexOrDecimal(p.Custody),
		Pending:              hexOrDecimal(p.Pending),
		Participants:         p.Participants,
	}
}

func convertPosition(p *staker.Position) *Position {
	return &Position{
		Participant: p.Participant,
		Principal:   hexOrDecimal(p.Principal),
		Shares:      hexOrDecimal(p.Shares),
		Accrued:     hexOrDecimal(p.Accrued),
	}
}

func convertClock(p *staker.Pool) *Clock {
	c := &Clock{
		CurrentTick:          p.CurrentTick,
		LastDistributionTick: p.LastDistributionTick,
	}
	if c.CurrentTick > c.LastDistributionTick {
		c.ElapsedTicks = c.CurrentTick - c.LastDistributionTick
	}
	return c
}
