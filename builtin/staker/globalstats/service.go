// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package globalstats

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/stakeledger/builtin/solidity"
	"github.com/vechain/stakeledger/builtin/staker/delta"
	"github.com/vechain/stakeledger/thor"
)

var (
	slotTotalPrincipal = thor.BytesToBytes32([]byte(("total-principal")))
	slotTotalShares    = thor.BytesToBytes32([]byte(("total-shares")))
	slotUndistributed  = thor.BytesToBytes32([]byte(("undistributed")))
)

// Totals is a point in time copy of the pool wide totals.
type Totals struct {
	Principal     *big.Int
	Shares        *big.Int
	Undistributed *big.Int
}

// Custody returns the units the pool must hold, shares plus dust.
func (t *Totals) Custody() *big.Int {
	return new(big.Int).Add(t.Shares, t.Undistributed)
}

// Service manages contract-wide staking totals.
type Service struct {
	totalPrincipal *solidity.Uint256
	totalShares    *solidity.Uint256
	undistributed  *solidity.Uint256
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		totalPrincipal: solidity.NewUint256(sctx, slotTotalPrincipal),
		totalShares:    solidity.NewUint256(sctx, slotTotalShares),
		undistributed:  solidity.NewUint256(sctx, slotUndistributed),
	}
}

// Apply adds a signed change to the totals.
// A total that would drop below zero fails with solidity.ErrUnderflow.
func (s *Service) Apply(d *delta.Pool) error {
	if d == nil {
		return nil
	}
	if err := s.totalPrincipal.Add(d.Principal); err != nil {
		return errors.Wrap(err, "total principal")
	}
	if err := s.totalShares.Add(d.Shares); err != nil {
		return errors.Wrap(err, "total shares")
	}
	if err := s.undistributed.Add(d.Undistributed); err != nil {
		return errors.Wrap(err, "undistributed")
	}
	return nil
}

func (s *Service) TotalPrincipal() (*big.Int, error) {
	return s.totalPrincipal.Get()
}

func (s *Service) TotalShares() (*big.Int, error) {
	return s.totalShares.Get()
}

// Undistributed returns the minted units held by the pool but not allocated to anyone.
func (s *Service) Undistributed() (*big.Int, error) {
	return s.undistributed.Get()
}

// Totals returns all totals at once.
func (s *Service) Totals() (*Totals, error) {
	principal, err := s.totalPrincipal.Get()
	if err != nil {
		return nil, err
	}
	shares, err := s.totalShares.Get()
	if err != nil {
		return nil, err
	}
	undistributed, err := s.undistributed.Get()
	if err != nil {
		return nil, err
	}
	return &Totals{Principal: principal, Shares: shares, Undistributed: undistributed}, nil
}
