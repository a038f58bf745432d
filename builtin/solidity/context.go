// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/vechain/stakeledger/state"
	"github.com/vechain/stakeledger/thor"
)

// Context is the storage space of one builtin ledger. All slot helpers of
// this package read and write through it.
type Context struct {
	address thor.Address
	state   *state.State
}

func NewContext(address thor.Address, state *state.State) *Context {
	return &Context{address: address, state: state}
}

func (c *Context) load(pos thor.Bytes32) (thor.Bytes32, error) {
	return c.state.GetStorage(c.address, pos)
}

func (c *Context) store(pos thor.Bytes32, value thor.Bytes32) {
	c.state.SetStorage(c.address, pos, value)
}
