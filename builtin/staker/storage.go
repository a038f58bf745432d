// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"github.com/vechain/stakeledger/builtin/solidity"
	"github.com/vechain/stakeledger/thor"
)

var (
	slotRatePerTick          = nameToSlot("rate-per-tick")
	slotMinter               = nameToSlot("minter")
	slotAsset                = nameToSlot("asset")
	slotLastDistributionTick = nameToSlot("last-distribution-tick")
)

func nameToSlot(name string) thor.Bytes32 {
	return thor.BytesToBytes32([]byte(name))
}

// storage holds the pool parameters fixed at initialization and the distribution clock.
type storage struct {
	ratePerTick          *solidity.Uint256
	minter               *solidity.Address
	asset                *solidity.Address
	lastDistributionTick *solidity.Uint64
}

func newStorage(sctx *solidity.Context) *storage {
	return &storage{
		ratePerTick:          solidity.NewUint256(sctx, slotRatePerTick),
		minter:               solidity.NewAddress(sctx, slotMinter),
		asset:                solidity.NewAddress(sctx, slotAsset),
		lastDistributionTick: solidity.NewUint64(sctx, slotLastDistributionTick),
	}
}
