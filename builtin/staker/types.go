// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"math/big"

	"github.com/vechain/stakeledger/thor"
)

// Transferable moves units of the asset on behalf of the engine.
type Transferable interface {
	// Transfer sends amount from the engine to the recipient.
	Transfer(to thor.Address, amount *big.Int) error
	// TransferFrom pulls amount from an account that approved the engine.
	TransferFrom(from, to thor.Address, amount *big.Int) error
	BalanceOf(addr thor.Address) (*big.Int, error)
}

// Mintable creates new units credited to the engine. The asset enforces its own minter set.
type Mintable interface {
	Mint(amount *big.Int) (*big.Int, error)
}

// Asset is the single stake and reward asset managed by the engine.
type Asset interface {
	Transferable
	Mintable
	Address() thor.Address
}

// Clock is a monotonically increasing logical clock, e.g. a block height.
type Clock interface {
	CurrentTick() uint64
}

// Position is the ledger view of one participant.
type Position struct {
	Participant thor.Address
	Principal   *big.Int
	Shares      *big.Int
	Accrued     *big.Int
}

// Pool is a point in time summary of the ledger.
type Pool struct {
	Address              thor.Address
	Asset                thor.Address
	Minter               thor.Address
	RatePerTick          *big.Int
	LastDistributionTick uint64
	CurrentTick          uint64
	TotalPrincipal       *big.Int
	TotalShares          *big.Int
	Undistributed        *big.Int
	// Custody is the asset balance held by the engine.
	Custody      *big.Int
	Participants uint64
	// Pending is what the next distribution would mint at CurrentTick.
	Pending *big.Int
}
