// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package participant

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/stakeledger/builtin/reverts"
	"github.com/vechain/stakeledger/builtin/solidity"
	"github.com/vechain/stakeledger/builtin/staker/linkedlist"
	"github.com/vechain/stakeledger/thor"
)

var (
	slotParticipants = thor.BytesToBytes32([]byte(("participants")))

	// participants index linked list
	slotIndexHead = thor.BytesToBytes32([]byte(("participants-head")))
	slotIndexTail = thor.BytesToBytes32([]byte(("participants-tail")))
	slotIndexSize = thor.BytesToBytes32([]byte(("participants-size")))
)

// Service keeps the per participant records and the index of everyone who ever deposited.
type Service struct {
	records *solidity.Mapping[thor.Address, *Participant]
	index   *linkedlist.LinkedList
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		records: solidity.NewMapping[thor.Address, *Participant](sctx, slotParticipants),
		index:   linkedlist.NewLinkedList(sctx, slotIndexHead, slotIndexTail, slotIndexSize),
	}
}

// Get returns the record of addr. Unknown participants yield an empty record.
func (s *Service) Get(addr thor.Address) (*Participant, error) {
	p, err := s.records.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get participant")
	}
	if p.Principal == nil {
		p.Principal = big.NewInt(0)
	}
	if p.Shares == nil {
		p.Shares = big.NewInt(0)
	}
	return p, nil
}

func (s *Service) set(addr thor.Address, p *Participant) error {
	if err := s.records.Set(addr, p); err != nil {
		return errors.Wrap(err, "failed to set participant")
	}
	return nil
}

// Deposit credits amount to both the principal and the shares of addr.
// First time depositors are appended to the index.
func (s *Service) Deposit(addr thor.Address, amount *big.Int) (*Participant, error) {
	if addr.IsZero() {
		return nil, reverts.ErrInvalidRecipient
	}
	known, err := s.index.Contains(addr)
	if err != nil {
		return nil, err
	}
	if !known {
		if err := s.index.Add(addr); err != nil {
			return nil, errors.Wrap(err, "failed to index participant")
		}
	}

	p, err := s.Get(addr)
	if err != nil {
		return nil, err
	}
	p.Principal.Add(p.Principal, amount)
	p.Shares.Add(p.Shares, amount)
	return p, s.set(addr, p)
}

// Withdraw debits amount from both the principal and the shares of addr.
func (s *Service) Withdraw(addr thor.Address, amount *big.Int) (*Participant, error) {
	p, err := s.Get(addr)
	if err != nil {
		return nil, err
	}
	if p.Principal.Cmp(amount) < 0 {
		return nil, reverts.ErrInsufficientFunds
	}
	p.Principal.Sub(p.Principal, amount)
	p.Shares.Sub(p.Shares, amount)
	return p, s.set(addr, p)
}

// Allocate adds reward units to the shares of addr.
func (s *Service) Allocate(addr thor.Address, amount *big.Int) (*Participant, error) {
	p, err := s.Get(addr)
	if err != nil {
		return nil, err
	}
	p.Shares.Add(p.Shares, amount)
	return p, s.set(addr, p)
}

// Claim removes the accrued reward of addr from its shares and returns it.
func (s *Service) Claim(addr thor.Address) (*big.Int, *Participant, error) {
	p, err := s.Get(addr)
	if err != nil {
		return nil, nil, err
	}
	accrued := p.Accrued()
	if accrued.Sign() <= 0 {
		return nil, nil, errors.WithMessage(reverts.ErrInsufficientFunds, "nothing accrued")
	}
	p.Shares.Set(p.Principal)
	return accrued, p, s.set(addr, p)
}

// Iter visits every participant in the order they first deposited.
func (s *Service) Iter(callback func(thor.Address, *Participant) error) error {
	return s.index.Iter(func(addr thor.Address) error {
		p, err := s.Get(addr)
		if err != nil {
			return err
		}
		return callback(addr, p)
	})
}

// Count returns the number of indexed participants.
func (s *Service) Count() (uint64, error) {
	n, err := s.index.Len()
	if err != nil {
		return 0, err
	}
	return n.Uint64(), nil
}
