// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"math/big"

	"github.com/vechain/stakeledger/thor"
)

// DepositEvent is emitted by Deposit. Balance is the principal after the deposit.
type DepositEvent struct {
	Participant thor.Address
	Amount      *big.Int
	Balance     *big.Int
}

// WithdrawEvent is emitted by Withdraw. Balance is the principal after the withdrawal.
type WithdrawEvent struct {
	Participant thor.Address
	Amount      *big.Int
	Balance     *big.Int
}

// MintEvent is emitted by Mint.
type MintEvent struct {
	Minter      thor.Address
	Amount      *big.Int
	TotalSupply *big.Int
}

// Allocation is the share of one participant in a distribution.
type Allocation struct {
	Participant thor.Address
	Amount      *big.Int
	Shares      *big.Int // share balance after the allocation
}

// DistributionEvent is emitted by DistributeRewards.
// NewUnits equals the sum of the allocations plus Dust.
type DistributionEvent struct {
	Asset        thor.Address
	Tick         uint64
	ElapsedTicks uint64
	NewUnits     *big.Int
	Allocations  []*Allocation
	Dust         *big.Int
}

// ClaimEvent is emitted by ClaimRewards.
type ClaimEvent struct {
	Participant thor.Address
	Amount      *big.Int
}
