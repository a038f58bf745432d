// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/vechain/stakeledger/builtin/staker"
	"github.com/vechain/stakeledger/builtin/token"
	"github.com/vechain/stakeledger/state"
	"github.com/vechain/stakeledger/thor"
)

// Builtin contracts binding.
var (
	Token  = &tokenContract{bind(thor.TokenName)}
	Staker = &stakerContract{bind("Staker")}
)

// binding is a builtin ledger living at an address derived from its name.
type binding struct {
	name    string
	Address thor.Address
}

func bind(name string) binding {
	return binding{name: name, Address: thor.BytesToAddress([]byte(name))}
}

// Name returns the builtin name.
func (b binding) Name() string { return b.name }

type (
	tokenContract  struct{ binding }
	stakerContract struct{ binding }
)

func (t *tokenContract) WithState(state *state.State) *token.Token {
	return token.New(t.Address, state)
}

// WithState binds the staker to state. The reward token is bound to the same
// state so both ledgers move under one checkpoint.
func (s *stakerContract) WithState(state *state.State, clock staker.Clock) *staker.Staker {
	tok := Token.WithState(state)
	return staker.New(s.Address, state, token.NewAsset(tok, s.Address), clock)
}
