// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakeledger/clock"
	"github.com/vechain/stakeledger/lvldb"
	"github.com/vechain/stakeledger/state"
	"github.com/vechain/stakeledger/thor"
)

func TestAddresses(t *testing.T) {
	assert.Equal(t, thor.BytesToAddress([]byte("RewardToken")), Token.Address)
	assert.Equal(t, thor.BytesToAddress([]byte("Staker")), Staker.Address)
	assert.Equal(t, "Staker", Staker.Name())
	assert.NotEqual(t, Token.Address, Staker.Address)
}

func TestBindings(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	st := state.New(db)
	owner := thor.BytesToAddress([]byte("owner"))
	user := thor.BytesToAddress([]byte("user"))

	tok := Token.WithState(st)
	_, err = tok.Initialize(owner, thor.InitialTokenSupply)
	require.NoError(t, err)
	require.NoError(t, tok.AddMinter(owner, Staker.Address))
	_, err = tok.Transfer(owner, user, thor.Tokens(10))
	require.NoError(t, err)
	_, err = tok.Approve(user, Staker.Address, thor.Tokens(10))
	require.NoError(t, err)
	require.NoError(t, st.Commit())

	clk := clock.NewManual(1)
	s := Staker.WithState(st, clk)
	require.NoError(t, s.Initialize(owner, thor.DefaultRatePerTick))
	asset, err := s.Asset()
	require.NoError(t, err)
	assert.Equal(t, Token.Address, asset)

	_, err = s.Deposit(user, Token.Address, thor.Tokens(10))
	require.NoError(t, err)

	// a fresh binding over the same state sees the deposit
	bal, err := Token.WithState(st).BalanceOf(Staker.Address)
	require.NoError(t, err)
	assert.Equal(t, thor.Tokens(10), bal)

	principal, err := Staker.WithState(st, clk).PrincipalOf(user)
	require.NoError(t, err)
	assert.Equal(t, thor.Tokens(10), principal)
}
