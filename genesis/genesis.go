// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis describes and applies the initial state of a ledger.
package genesis

import (
	"bytes"
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/stakeledger/builtin"
	"github.com/vechain/stakeledger/builtin/staker"
	"github.com/vechain/stakeledger/clock"
	"github.com/vechain/stakeledger/log"
	"github.com/vechain/stakeledger/state"
	"github.com/vechain/stakeledger/thor"
)

var logger = log.WithContext("pkg", "genesis")

// Holder receives part of the initial supply from the owner.
type Holder struct {
	Address Address `yaml:"address"`
	Balance *Amount `yaml:"balance"`
	// Approve is the allowance granted to the staker, so the holder can deposit right away.
	Approve *Amount `yaml:"approve,omitempty"`
}

// Genesis is the initial state of a ledger.
type Genesis struct {
	// LaunchTime is the unix time at which tick 0 begins.
	LaunchTime uint64 `yaml:"launchTime"`
	// TickInterval is the length of a tick in seconds.
	TickInterval uint64 `yaml:"tickInterval"`
	// Owner deploys the token, holds the supply and is the staker minter.
	Owner       Address  `yaml:"owner"`
	RatePerTick *Amount  `yaml:"ratePerTick"`
	Supply      *Amount  `yaml:"supply"`
	Holders     []Holder `yaml:"holders,omitempty"`
}

// Parse decodes a YAML genesis, fills defaults and validates it.
func Parse(data []byte) (*Genesis, error) {
	var g Genesis
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&g); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	g.fillDefaults()
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &g, nil
}

// Load reads a genesis file.
func Load(path string) (*Genesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis")
	}
	return Parse(data)
}

// Marshal encodes the genesis as YAML.
func (g *Genesis) Marshal() ([]byte, error) {
	return yaml.Marshal(g)
}

func (g *Genesis) fillDefaults() {
	if g.TickInterval == 0 {
		g.TickInterval = thor.TickInterval
	}
	if g.RatePerTick == nil {
		g.RatePerTick = NewAmount(thor.DefaultRatePerTick)
	}
	if g.Supply == nil {
		g.Supply = NewAmount(thor.InitialTokenSupply)
	}
}

// Validate checks the genesis. Errors name the offending field.
func (g *Genesis) Validate() error {
	if thor.Address(g.Owner).IsZero() {
		return errors.New("owner: must not be the zero address")
	}
	if g.TickInterval == 0 {
		return errors.New("tickInterval: must be positive")
	}
	if g.RatePerTick.Int().Sign() <= 0 {
		return errors.New("ratePerTick: must be positive")
	}
	supply := g.Supply.Int()
	if supply.Sign() <= 0 {
		return errors.New("supply: must be positive")
	}

	seen := make(map[Address]bool)
	allocated := new(big.Int)
	for i, h := range g.Holders {
		field := fmt.Sprintf("holders[%d]", i)
		addr := thor.Address(h.Address)
		switch {
		case addr.IsZero():
			return errors.Errorf("%s.address: must not be the zero address", field)
		case h.Address == g.Owner:
			return errors.Errorf("%s.address: owner can't be a holder", field)
		case addr == builtin.Staker.Address || addr == builtin.Token.Address:
			return errors.Errorf("%s.address: reserved address %v", field, addr)
		case seen[h.Address]:
			return errors.Errorf("%s.address: duplicated %v", field, addr)
		case h.Balance.Int().Sign() < 0:
			return errors.Errorf("%s.balance: must not be negative", field)
		case h.Approve.Int().Sign() < 0:
			return errors.Errorf("%s.approve: must not be negative", field)
		}
		seen[h.Address] = true
		allocated.Add(allocated, h.Balance.Int())
	}
	if allocated.Cmp(supply) > 0 {
		return errors.Errorf("holders: allocate %v units, more than supply %v", allocated, supply)
	}
	return nil
}

// ID identifies the genesis. Ledgers built from different geneses never share a data dir.
func (g *Genesis) ID() thor.Bytes32 {
	type holder struct {
		Address thor.Address
		Balance *big.Int
		Approve *big.Int
	}
	holders := make([]holder, 0, len(g.Holders))
	for _, h := range g.Holders {
		holders = append(holders, holder{thor.Address(h.Address), h.Balance.Int(), h.Approve.Int()})
	}

	id, err := thor.Blake2bRLP([]any{
		g.LaunchTime,
		g.TickInterval,
		thor.Address(g.Owner),
		g.RatePerTick.Int(),
		g.Supply.Int(),
		holders,
	})
	if err != nil {
		panic(err)
	}
	return id
}

// Clock returns the wall time clock of the ledger.
func (g *Genesis) Clock() *clock.Interval {
	return clock.NewInterval(
		time.Unix(int64(g.LaunchTime), 0),
		time.Duration(g.TickInterval)*time.Second,
	)
}

// Apply deploys the token and the staker into st unless a previous run
// already did, and returns the staker bound to st and clk.
func (g *Genesis) Apply(st *state.State, clk staker.Clock) (*staker.Staker, error) {
	s := builtin.Staker.WithState(st, clk)
	asset, err := s.Asset()
	if err != nil {
		return nil, err
	}
	if !asset.IsZero() {
		minter, err := s.Minter()
		if err != nil {
			return nil, err
		}
		if asset != builtin.Token.Address || minter != thor.Address(g.Owner) {
			return nil, errors.Errorf("genesis mismatch: stored ledger has asset %v minter %v", asset, minter)
		}
		logger.Debug("genesis already applied", "id", g.ID())
		return s, nil
	}

	// token and staker setup land in one commit, or not at all
	checkpoint := st.NewCheckpoint()
	if err := g.deploy(st, s); err != nil {
		st.RevertTo(checkpoint)
		return nil, err
	}
	logger.Info("genesis applied", "id", g.ID(), "owner", thor.Address(g.Owner), "holders", len(g.Holders))
	return s, nil
}

// deploy sets up the token and initializes s. The staker initialization
// commits everything deployed before it.
func (g *Genesis) deploy(st *state.State, s *staker.Staker) error {
	owner := thor.Address(g.Owner)
	tok := builtin.Token.WithState(st)
	if _, err := tok.Initialize(owner, g.Supply.Int()); err != nil {
		return errors.WithMessage(err, "initialize token")
	}
	if err := tok.AddMinter(owner, builtin.Staker.Address); err != nil {
		return errors.WithMessage(err, "add staker as minter")
	}
	for i, h := range g.Holders {
		addr := thor.Address(h.Address)
		if _, err := tok.Transfer(owner, addr, h.Balance.Int()); err != nil {
			return errors.WithMessagef(err, "fund holders[%d]", i)
		}
		if h.Approve != nil {
			if _, err := tok.Approve(addr, builtin.Staker.Address, h.Approve.Int()); err != nil {
				return errors.WithMessagef(err, "approve holders[%d]", i)
			}
		}
	}
	return errors.WithMessage(s.Initialize(owner, g.RatePerTick.Int()), "initialize staker")
}
