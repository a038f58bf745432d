// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakeledger/builtin/token"
	"github.com/vechain/stakeledger/clock"
	"github.com/vechain/stakeledger/kv"
	"github.com/vechain/stakeledger/lvldb"
	"github.com/vechain/stakeledger/state"
	"github.com/vechain/stakeledger/thor"
)

var (
	deployer   = thor.BytesToAddress([]byte("deployer"))
	user1      = thor.BytesToAddress([]byte("user1"))
	user2      = thor.BytesToAddress([]byte("user2"))
	user3      = thor.BytesToAddress([]byte("user3"))
	user4      = thor.BytesToAddress([]byte("user4"))
	outsider   = thor.BytesToAddress([]byte("outsider"))
	tokenAddr  = thor.BytesToAddress([]byte(thor.TokenName))
	stakerAddr = thor.BytesToAddress([]byte("Staker"))
)

const startTick = 100

type testEnv struct {
	db     kv.Store
	state  *state.State
	token  *token.Token
	clock  *clock.Manual
	staker *Staker
}

// newEnv deploys the token and the staker. The deployer holds the supply and
// is the staker minter, the staker is a token minter.
func newEnv(t *testing.T, rate *big.Int) *testEnv {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := state.New(db)
	tok := token.New(tokenAddr, st)
	_, err = tok.Initialize(deployer, thor.InitialTokenSupply)
	require.NoError(t, err)
	require.NoError(t, tok.AddMinter(deployer, stakerAddr))
	require.NoError(t, st.Commit())

	clk := clock.NewManual(startTick)
	s := New(stakerAddr, st, token.NewAsset(tok, stakerAddr), clk)
	require.NoError(t, s.Initialize(deployer, rate))

	return &testEnv{db: db, state: st, token: tok, clock: clk, staker: s}
}

// fund gives user amount tokens and approves the staker to pull approved tokens.
func (e *testEnv) fund(t *testing.T, user thor.Address, amount, approved *big.Int) {
	_, err := e.token.Transfer(deployer, user, amount)
	require.NoError(t, err)
	_, err = e.token.Approve(user, stakerAddr, approved)
	require.NoError(t, err)
	require.NoError(t, e.state.Commit())
}

func (e *testEnv) deposit(t *testing.T, user thor.Address, amount *big.Int) {
	e.fund(t, user, amount, amount)
	_, err := e.staker.Deposit(user, tokenAddr, amount)
	require.NoError(t, err)
}

func (e *testEnv) balanceOf(t *testing.T, addr thor.Address) *big.Int {
	bal, err := e.token.BalanceOf(addr)
	require.NoError(t, err)
	return bal
}

func (e *testEnv) principalOf(t *testing.T, addr thor.Address) *big.Int {
	p, err := e.staker.PrincipalOf(addr)
	require.NoError(t, err)
	return p
}

func (e *testEnv) sharesOf(t *testing.T, addr thor.Address) *big.Int {
	s, err := e.staker.ShareBalanceOf(addr)
	require.NoError(t, err)
	return s
}

// assertInvariants checks the conservation rules of the ledger.
func (e *testEnv) assertInvariants(t *testing.T) {
	t.Helper()

	positions, err := e.staker.Participants()
	require.NoError(t, err)

	sumPrincipal, sumShares := new(big.Int), new(big.Int)
	for _, p := range positions {
		sumPrincipal.Add(sumPrincipal, p.Principal)
		sumShares.Add(sumShares, p.Shares)
		assert.True(t, p.Principal.Cmp(p.Shares) <= 0, "principal above shares for %v", p.Participant)
		assert.Equal(t, new(big.Int).Sub(p.Shares, p.Principal).String(), p.Accrued.String())
	}

	pool, err := e.staker.Pool()
	require.NoError(t, err)
	assert.Equal(t, pool.TotalPrincipal.String(), sumPrincipal.String(), "sum(principal) == totalPrincipal")
	assert.Equal(t, pool.TotalShares.String(), sumShares.String(), "sum(shares) == totalShares")

	custody := new(big.Int).Add(pool.TotalShares, pool.Undistributed)
	assert.Equal(t, custody.String(), e.balanceOf(t, stakerAddr).String(), "custody == totalShares + undistributed")
	assert.Equal(t, custody.String(), pool.Custody.String())
}

// failingAsset wraps an asset and fails the selected calls.
type failingAsset struct {
	Asset
	failTransfer bool
	failMint     error
}

func (f *failingAsset) Transfer(to thor.Address, amount *big.Int) error {
	if f.failTransfer {
		return assert.AnError
	}
	return f.Asset.Transfer(to, amount)
}

func (f *failingAsset) Mint(amount *big.Int) (*big.Int, error) {
	if f.failMint != nil {
		return nil, f.failMint
	}
	return f.Asset.Mint(amount)
}
