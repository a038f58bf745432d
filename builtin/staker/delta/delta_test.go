// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>
package delta

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPool_Defaults(t *testing.T) {
	p := NewPool()
	assert.True(t, p.IsZero())
	assert.Zero(t, p.Custody().Sign())
}

func TestPool_Add(t *testing.T) {
	base := Deposit(big.NewInt(10))
	got := base.Add(Withdraw(big.NewInt(4))).Add(&Pool{
		Principal:     big.NewInt(0),
		Shares:        big.NewInt(5),
		Undistributed: big.NewInt(2),
	})

	assert.Same(t, base, got)
	assert.Equal(t, big.NewInt(6), got.Principal)
	assert.Equal(t, big.NewInt(11), got.Shares)
	assert.Equal(t, big.NewInt(2), got.Undistributed)
	assert.Equal(t, big.NewInt(13), got.Custody())
}

func TestPool_Add_Nil(t *testing.T) {
	base := Deposit(big.NewInt(5))
	got := base.Add(nil)
	assert.Same(t, base, got)
	assert.Equal(t, big.NewInt(5), got.Principal)
	assert.Equal(t, big.NewInt(5), got.Shares)
}

func TestDepositWithdrawCancel(t *testing.T) {
	amount := big.NewInt(42)
	p := Deposit(amount).Add(Withdraw(amount))
	assert.True(t, p.IsZero())
	assert.Equal(t, big.NewInt(42), amount, "inputs are not aliased")
}
