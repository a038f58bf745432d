// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"math/big"
)

// Constants of the ledger.
const (
	TokenName     = "RewardToken"
	TokenSymbol   = "RTK"
	TokenDecimals = 18

	// TickInterval is the default duration (unit: second) of one logical clock tick.
	TickInterval uint64 = 10
)

var (
	// NativeAsset denotes the chain native coin. It is never a valid stake asset.
	NativeAsset = Address{}

	// UnitsPerToken is 10^TokenDecimals.
	UnitsPerToken = new(big.Int).Exp(big.NewInt(10), big.NewInt(TokenDecimals), nil)

	// InitialTokenSupply is credited to the token deployer, 1,000,000 tokens.
	InitialTokenSupply = new(big.Int).Mul(big.NewInt(1_000_000), UnitsPerToken)

	// DefaultRatePerTick is the amount of reward units minted per tick, 100 tokens.
	DefaultRatePerTick = new(big.Int).Mul(big.NewInt(100), UnitsPerToken)
)

// Tokens converts whole tokens into minimal units.
func Tokens(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), UnitsPerToken)
}
