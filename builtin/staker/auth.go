// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"github.com/pkg/errors"

	"github.com/vechain/stakeledger/builtin/reverts"
	"github.com/vechain/stakeledger/builtin/solidity"
	"github.com/vechain/stakeledger/thor"
)

// Capability is a privilege checked at the call boundary.
type Capability uint8

const (
	// CanMint allows minting and distributing rewards.
	CanMint Capability = iota
)

func (c Capability) String() string {
	switch c {
	case CanMint:
		return "CanMint"
	}
	return "Unknown"
}

// Authorizer decides whether caller holds a capability.
// It returns nil when allowed and an error wrapping reverts.ErrUnauthorized otherwise.
type Authorizer interface {
	Authorize(caller thor.Address, c Capability) error
}

// minterAuthority grants CanMint to the minter recorded at initialization.
type minterAuthority struct {
	minter *solidity.Address
}

func (m *minterAuthority) Authorize(caller thor.Address, c Capability) error {
	if c != CanMint {
		return errors.WithMessagef(reverts.ErrUnauthorized, "unknown capability %v", c)
	}
	minter, err := m.minter.Get()
	if err != nil {
		return err
	}
	if minter.IsZero() || caller != minter {
		return errors.WithMessagef(reverts.ErrUnauthorized, "%v lacks %v", caller, c)
	}
	return nil
}
