// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package delta

import "math/big"

// Pool is a signed change of the pool wide totals produced by one ledger operation.
type Pool struct {
	Principal     *big.Int
	Shares        *big.Int
	Undistributed *big.Int
}

func NewPool() *Pool {
	return &Pool{
		Principal:     big.NewInt(0),
		Shares:        big.NewInt(0),
		Undistributed: big.NewInt(0),
	}
}

// Deposit is the change caused by a deposit of amount.
func Deposit(amount *big.Int) *Pool {
	return &Pool{
		Principal:     new(big.Int).Set(amount),
		Shares:        new(big.Int).Set(amount),
		Undistributed: big.NewInt(0),
	}
}

// Withdraw is the change caused by a withdrawal of amount.
func Withdraw(amount *big.Int) *Pool {
	return &Pool{
		Principal:     new(big.Int).Neg(amount),
		Shares:        new(big.Int).Neg(amount),
		Undistributed: big.NewInt(0),
	}
}

// Add sets p to the sum of itself and other.
func (p *Pool) Add(other *Pool) *Pool {
	if other == nil {
		return p
	}
	p.Principal.Add(p.Principal, other.Principal)
	p.Shares.Add(p.Shares, other.Shares)
	p.Undistributed.Add(p.Undistributed, other.Undistributed)
	return p
}

// Custody returns the change of the units held by the pool.
func (p *Pool) Custody() *big.Int {
	return new(big.Int).Add(p.Shares, p.Undistributed)
}

func (p *Pool) IsZero() bool {
	return p.Principal.Sign() == 0 && p.Shares.Sign() == 0 && p.Undistributed.Sign() == 0
}
