// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package participant

import "math/big"

// Participant is the ledger record of one depositor.
// Shares never fall below Principal, the difference is the accrued reward.
type Participant struct {
	Principal *big.Int
	Shares    *big.Int
}

func newParticipant() *Participant {
	return &Participant{Principal: big.NewInt(0), Shares: big.NewInt(0)}
}

// IsEmpty returns whether the entry holds nothing.
func (p *Participant) IsEmpty() bool {
	return p.Principal.Sign() == 0 && p.Shares.Sign() == 0
}

// Accrued returns the reward earned on top of the principal.
func (p *Participant) Accrued() *big.Int {
	return new(big.Int).Sub(p.Shares, p.Principal)
}

// Clone returns a deep copy.
func (p *Participant) Clone() *Participant {
	return &Participant{
		Principal: new(big.Int).Set(p.Principal),
		Shares:    new(big.Int).Set(p.Shares),
	}
}
