// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/vechain/stakeledger/thor"
)

// Address is a single storage slot holding an address.
type Address struct {
	context *Context
	pos     thor.Bytes32
}

func NewAddress(context *Context, pos thor.Bytes32) *Address {
	return &Address{context: context, pos: pos}
}

func (a *Address) Get() (thor.Address, error) {
	slot, err := a.context.load(a.pos)
	if err != nil {
		return thor.Address{}, err
	}
	return thor.BytesToAddress(slot.Bytes()), nil
}

func (a *Address) Set(addr thor.Address) {
	a.context.store(a.pos, thor.BytesToBytes32(addr.Bytes()))
}

// Uint64 is a single storage slot holding a uint64, used for tick numbers.
type Uint64 struct {
	context *Context
	pos     thor.Bytes32
}

func NewUint64(context *Context, pos thor.Bytes32) *Uint64 {
	return &Uint64{context: context, pos: pos}
}

func (u *Uint64) Get() (uint64, error) {
	slot, err := u.context.load(u.pos)
	if err != nil {
		return 0, err
	}
	return slot.Uint64(), nil
}

func (u *Uint64) Set(value uint64) {
	u.context.store(u.pos, thor.Uint64ToBytes32(value))
}
