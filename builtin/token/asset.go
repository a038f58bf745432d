// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"

	"github.com/vechain/stakeledger/thor"
)

// Asset is the token seen from a single holder, usually a contract that
// custodies tokens. Transfers are sent by the holder, mints credit the holder.
type Asset struct {
	token  *Token
	holder thor.Address
}

// NewAsset binds token to holder.
func NewAsset(token *Token, holder thor.Address) *Asset {
	return &Asset{token: token, holder: holder}
}

// Address returns the token contract address.
func (a *Asset) Address() thor.Address {
	return a.token.Address()
}

// Holder returns the account the asset acts for.
func (a *Asset) Holder() thor.Address {
	return a.holder
}

func (a *Asset) Transfer(to thor.Address, amount *big.Int) error {
	_, err := a.token.Transfer(a.holder, to, amount)
	return err
}

func (a *Asset) TransferFrom(from, to thor.Address, amount *big.Int) error {
	_, err := a.token.TransferFrom(a.holder, from, to, amount)
	return err
}

func (a *Asset) BalanceOf(addr thor.Address) (*big.Int, error) {
	return a.token.BalanceOf(addr)
}

// Mint creates amount tokens for the holder and returns the new total supply.
func (a *Asset) Mint(amount *big.Int) (*big.Int, error) {
	ev, err := a.token.Mint(a.holder, amount)
	if err != nil {
		return nil, err
	}
	return ev.TotalSupply, nil
}
