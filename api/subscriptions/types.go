// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/stakeledger/builtin/staker"
	"github.com/vechain/stakeledger/thor"
)

type Allocation struct {
	Participant thor.Address          `json:"participant"`
	Amount      *math.HexOrDecimal256 `json:"amount"`
	Shares      *math.HexOrDecimal256 `json:"shares"`
}

// Distribution is the message pushed for every completed distribution.
type Distribution struct {
	Asset        thor.Address          `json:"asset"`
	Tick         uint64                `json:"tick"`
	ElapsedTicks uint64                `json:"elapsedTicks"`
	NewUnits     *math.HexOrDecimal256 `json:"newUnits"`
	Allocations  []*Allocation         `json:"allocations"`
	Dust         *math.HexOrDecimal256 `json:"dust"`
}

func hexOrDecimal(v *big.Int) *math.HexOrDecimal256 {
	if v == nil {
		v = new(big.Int)
	}
	return (*math.HexOrDecimal256)(new(big.Int).Set(v))
}

func convertDistribution(ev *staker.DistributionEvent) *Distribution {
	allocations := make([]*Allocation, 0, len(ev.Allocations))
	for _, a := range ev.Allocations {
		allocations = append(allocations, &Allocation{
			Participant: a.Participant,
			Amount:      hexOrDecimal(a.Amount),
			Shares:      hexOrDecimal(a.Shares),
		})
	}
	return &Distribution{
		Asset:        ev.Asset,
		Tick:         ev.Tick,
		ElapsedTicks: ev.ElapsedTicks,
		NewUnits:     hexOrDecimal(ev.NewUnits),
		Allocations:  allocations,
		Dust:         hexOrDecimal(ev.Dust),
	}
}
