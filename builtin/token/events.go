// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"

	"github.com/vechain/stakeledger/thor"
)

// TransferEvent is emitted when tokens move between accounts.
type TransferEvent struct {
	From  thor.Address `json:"from"`
	To    thor.Address `json:"to"`
	Value *big.Int     `json:"value"`
}

// ApprovalEvent is emitted when an allowance is set.
type ApprovalEvent struct {
	Owner   thor.Address `json:"owner"`
	Spender thor.Address `json:"spender"`
	Value   *big.Int     `json:"value"`
}

// MintEvent is emitted when new tokens are created.
type MintEvent struct {
	Minter      thor.Address `json:"minterAddress"`
	Amount      *big.Int     `json:"amount"`
	TotalSupply *big.Int     `json:"totalSupply"`
}
