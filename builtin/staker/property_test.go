// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"math/big"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakeledger/builtin/reverts"
	"github.com/vechain/stakeledger/thor"
)

type ledgerOp struct {
	Kind   uint8
	User   uint8
	Amount uint32
	Ticks  uint8
}

// TestLedgerProperties replays random operation sequences and checks the
// conservation rules after every step.
func TestLedgerProperties(t *testing.T) {
	users := []thor.Address{user1, user2, user3, user4}

	for seed := int64(1); seed <= 8; seed++ {
		var ops []ledgerOp
		fuzz.NewWithSeed(seed).NilChance(0).NumElements(20, 60).Fuzz(&ops)

		// an odd rate leaves dust on most distributions
		env := newEnv(t, big.NewInt(1_000_003))
		for _, u := range users {
			env.fund(t, u, thor.Tokens(1_000), thor.Tokens(1_000))
		}

		for i, op := range ops {
			u := users[int(op.User)%len(users)]
			amount := big.NewInt(int64(op.Amount%1_000_000) + 1)

			var err error
			switch op.Kind % 4 {
			case 0:
				_, err = env.staker.Deposit(u, tokenAddr, amount)
				require.NoError(t, err, "seed %d op %d", seed, i)
			case 1:
				_, err = env.staker.Withdraw(u, tokenAddr, amount)
			case 2:
				_, err = env.staker.ClaimRewards(u, tokenAddr)
			case 3:
				checkDistribution(t, env, uint64(op.Ticks%5))
			}
			if err != nil {
				kind, ok := reverts.KindOf(err)
				require.True(t, ok && kind == reverts.KindCaller, "seed %d op %d: %v", seed, i, err)
			}
			env.assertInvariants(t)
		}
	}
}

func checkDistribution(t *testing.T, env *testEnv, ticks uint64) {
	t.Helper()

	before, err := env.staker.Pool()
	require.NoError(t, err)

	env.clock.Advance(ticks)
	ev, err := env.staker.DistributeRewards(deployer, tokenAddr)
	if before.TotalShares.Sign() == 0 {
		assert.ErrorIs(t, err, reverts.ErrEmptyPool)
		return
	}
	require.NoError(t, err)

	allocated := new(big.Int)
	for _, a := range ev.Allocations {
		allocated.Add(allocated, a.Amount)
	}
	assert.Equal(t, ev.NewUnits.String(), new(big.Int).Add(allocated, ev.Dust).String(), "minted == allocated + dust")
	assert.True(t, ev.Dust.Cmp(new(big.Int).SetUint64(before.Participants)) < 0 || ev.Dust.Sign() == 0,
		"dust %v below participant count %d", ev.Dust, before.Participants)

	after, err := env.staker.Pool()
	require.NoError(t, err)
	assert.Equal(t, new(big.Int).Add(before.TotalShares, allocated).String(), after.TotalShares.String())
	assert.Equal(t, new(big.Int).Add(before.Undistributed, ev.Dust).String(), after.Undistributed.String())
}
