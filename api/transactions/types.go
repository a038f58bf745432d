// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transactions

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/stakeledger/thor"
)

// Request names the caller of an operation. Asset defaults to the ledger
// asset, Amount is ignored by claims.
type Request struct {
	Caller thor.Address          `json:"caller"`
	Asset  *thor.Address         `json:"asset,omitempty"`
	Amount *math.HexOrDecimal256 `json:"amount,omitempty"`
}

func (r *Request) amount() *big.Int {
	return (*big.Int)(r.Amount)
}

// Receipt reports a deposit, withdrawal or claim. Balance is the principal
// after the operation and is absent for claims.
type Receipt struct {
	Participant thor.Address          `json:"participant"`
	Amount      *math.HexOrDecimal256 `json:"amount"`
	Balance     *math.HexOrDecimal256 `json:"balance,omitempty"`
}

// MintReceipt reports a mint.
type MintReceipt struct {
	Minter      thor.Address          `json:"minter"`
	Amount      *math.HexOrDecimal256 `json:"amount"`
	TotalSupply *math.HexOrDecimal256 `json:"totalSupply"`
}

func hexOrDecimal(v *big.Int) *math.HexOrDecimal256 {
	if v == nil {
		return nil
	}
	return (*math.HexOrDecimal256)(new(big.Int).Set(v))
}
