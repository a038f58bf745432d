// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"fmt"

	"github.com/vechain/stakeledger/thor"
)

// DevAccounts returns the pre funded accounts of the dev ledger.
func DevAccounts() []thor.Address {
	accounts := make([]thor.Address, 0, 5)
	for i := range 5 {
		accounts = append(accounts, thor.BytesToAddress([]byte(fmt.Sprintf("dev-%d", i))))
	}
	return accounts
}

// DevOwner is the owner of the dev ledger.
var DevOwner = thor.BytesToAddress([]byte("dev-owner"))

// NewDevnet returns a genesis for local testing: one second ticks starting at
// launchTime, and every dev account funded with 10,000 tokens, fully approved.
func NewDevnet(launchTime uint64) *Genesis {
	g := &Genesis{
		LaunchTime:   launchTime,
		TickInterval: 1,
		Owner:        Address(DevOwner),
	}
	for _, addr := range DevAccounts() {
		g.Holders = append(g.Holders, Holder{
			Address: Address(addr),
			Balance: NewAmount(thor.Tokens(10_000)),
			Approve: NewAmount(thor.Tokens(10_000)),
		})
	}
	g.fillDefaults()
	return g
}
