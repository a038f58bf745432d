// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakeledger/builtin"
	"github.com/vechain/stakeledger/clock"
	"github.com/vechain/stakeledger/lvldb"
	"github.com/vechain/stakeledger/state"
	"github.com/vechain/stakeledger/thor"
)

const sample = `
launchTime: 1700000000
tickInterval: 10
owner: "0x000000000000000000000000000000000000beef"
ratePerTick: 50 RTK
supply: "0x3635c9adc5dea00000"
holders:
  - address: "0x0000000000000000000000000000000000000001"
    balance: 100 RTK
    approve: 40 RTK
  - address: "0x0000000000000000000000000000000000000002"
    balance: "2500"
`

func TestParse(t *testing.T) {
	g, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, uint64(1700000000), g.LaunchTime)
	assert.Equal(t, uint64(10), g.TickInterval)
	assert.Equal(t, thor.MustParseAddress("0x000000000000000000000000000000000000beef"), thor.Address(g.Owner))
	assert.Equal(t, thor.Tokens(50), g.RatePerTick.Int())
	assert.Equal(t, thor.Tokens(1000), g.Supply.Int())

	require.Len(t, g.Holders, 2)
	assert.Equal(t, thor.Tokens(100), g.Holders[0].Balance.Int())
	assert.Equal(t, thor.Tokens(40), g.Holders[0].Approve.Int())
	assert.Equal(t, int64(2500), g.Holders[1].Balance.Int().Int64())
	assert.Nil(t, g.Holders[1].Approve)
}

func TestParseDefaults(t *testing.T) {
	g, err := Parse([]byte(`owner: "0x000000000000000000000000000000000000beef"`))
	require.NoError(t, err)

	assert.Equal(t, thor.TickInterval, g.TickInterval)
	assert.Equal(t, thor.DefaultRatePerTick, g.RatePerTick.Int())
	assert.Equal(t, thor.InitialTokenSupply, g.Supply.Int())
	assert.Empty(t, g.Holders)
}

func TestParseErrors(t *testing.T) {
	const owner = `owner: "0x000000000000000000000000000000000000beef"` + "\n"
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"missing owner", `tickInterval: 5`, "owner:"},
		{"bad owner", `owner: "0x12"`, "invalid length"},
		{"unknown field", owner + `ratePerBlock: 1`, "ratePerBlock"},
		{"bad amount", owner + `ratePerTick: lots`, "invalid amount"},
		{"negative rate", owner + `ratePerTick: "-1"`, "ratePerTick:"},
		{"zero supply", owner + `supply: "0"`, "supply:"},
		{"zero holder", owner + "holders:\n  - address: \"0x0000000000000000000000000000000000000000\"\n    balance: 1", "holders[0].address"},
		{"owner holder", owner + "holders:\n  - address: \"0x000000000000000000000000000000000000beef\"\n    balance: 1", "holders[0].address: owner"},
		{"duplicated holder", owner + "holders:\n  - address: \"0x0000000000000000000000000000000000000001\"\n    balance: 1\n  - address: \"0x0000000000000000000000000000000000000001\"\n    balance: 1", "holders[1].address: duplicated"},
		{"over allocated", owner + "supply: 10\nholders:\n  - address: \"0x0000000000000000000000000000000000000001\"\n    balance: 11", "holders: allocate"},
		{"negative approve", owner + "holders:\n  - address: \"0x0000000000000000000000000000000000000001\"\n    balance: 1\n    approve: \"-1\"", "holders[0].approve"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	g, err := Parse([]byte(sample))
	require.NoError(t, err)

	data, err := g.Marshal()
	require.NoError(t, err)
	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, g.ID(), back.ID())
}

func TestID(t *testing.T) {
	a := NewDevnet(1000)
	b := NewDevnet(1000)
	c := NewDevnet(1001)
	assert.Equal(t, a.ID(), b.ID())
	assert.NotEqual(t, a.ID(), c.ID())

	b.Holders[0].Approve = nil
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genesis.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	g, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, g.Holders, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestClock(t *testing.T) {
	g := NewDevnet(uint64(time.Now().Add(-time.Hour).Unix()))
	g.TickInterval = 60
	c := g.Clock()
	assert.Equal(t, time.Minute, c.Interval())
	tick := c.CurrentTick()
	assert.True(t, tick == 59 || tick == 60, "tick %d", tick)
}

func TestApply(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	g := NewDevnet(0)
	require.NoError(t, g.Validate())
	clk := clock.NewManual(7)

	s, err := g.Apply(state.New(db), clk)
	require.NoError(t, err)

	last, err := s.LastDistributionTick()
	require.NoError(t, err)
	assert.Equal(t, uint64(7), last)
	minter, err := s.Minter()
	require.NoError(t, err)
	assert.Equal(t, DevOwner, minter)

	// state is persisted: a new state over the same db sees the token
	st := state.New(db)
	tok := builtin.Token.WithState(st)
	dev := DevAccounts()[0]
	bal, err := tok.BalanceOf(dev)
	require.NoError(t, err)
	assert.Equal(t, thor.Tokens(10_000), bal)
	allowance, err := tok.Allowance(dev, builtin.Staker.Address)
	require.NoError(t, err)
	assert.Equal(t, thor.Tokens(10_000), allowance)
	ok, err := tok.IsMinter(builtin.Staker.Address)
	require.NoError(t, err)
	assert.True(t, ok)

	// a second apply is a no-op
	s, err = g.Apply(st, clk)
	require.NoError(t, err)
	_, err = s.Deposit(dev, builtin.Token.Address, thor.Tokens(1))
	require.NoError(t, err)

	// a different owner doesn't match the stored ledger
	other := NewDevnet(0)
	other.Owner = Address(thor.BytesToAddress([]byte("someone")))
	_, err = other.Apply(state.New(db), clk)
	assert.ErrorContains(t, err, "genesis mismatch")
}

func TestApplyIsAtomic(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	clk := clock.NewManual(7)
	broken := NewDevnet(0)
	// wider than a storage slot, the staker refuses it after the token is set up
	broken.RatePerTick = NewAmount(new(big.Int).Lsh(big.NewInt(1), 256))

	st := state.New(db)
	_, err = broken.Apply(st, clk)
	require.Error(t, err)
	assert.ErrorContains(t, err, "initialize staker")

	for _, view := range []*state.State{st, state.New(db)} {
		supply, err := builtin.Token.WithState(view).TotalSupply()
		require.NoError(t, err)
		assert.Zero(t, supply.Sign())
	}

	s, err := NewDevnet(0).Apply(state.New(db), clk)
	require.NoError(t, err)
	minter, err := s.Minter()
	require.NoError(t, err)
	assert.Equal(t, DevOwner, minter)
}
