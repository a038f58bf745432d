// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/stakeledger/builtin/reverts"
	"github.com/vechain/stakeledger/builtin/staker/delta"
	"github.com/vechain/stakeledger/builtin/staker/participant"
	"github.com/vechain/stakeledger/thor"
)

// DistributeRewards mints ratePerTick for every tick elapsed since the last
// distribution and allocates the new units to the participants pro rata to
// their share balances. Allocations are floored, the remainder stays in
// custody as undistributed dust.
//
// Calling it again at the same tick succeeds without minting.
func (s *Staker) DistributeRewards(caller, asset thor.Address) (*DistributionEvent, error) {
	var ev *DistributionEvent
	err := s.transact("distribute", func() error {
		if err := s.auth.Authorize(caller, CanMint); err != nil {
			return err
		}
		if err := s.checkAsset(asset); err != nil {
			return err
		}

		// the denominator is fixed before any allocation
		snapshot, err := s.stats.TotalShares()
		if err != nil {
			return err
		}
		if snapshot.Sign() == 0 {
			return reverts.ErrEmptyPool
		}

		last, err := s.storage.lastDistributionTick.Get()
		if err != nil {
			return err
		}
		current := s.clock.CurrentTick()
		if current < last {
			return errors.WithMessagef(reverts.ErrClockRegression, "tick %d before last distribution %d", current, last)
		}

		ev = &DistributionEvent{
			Asset:        asset,
			Tick:         current,
			ElapsedTicks: current - last,
			NewUnits:     big.NewInt(0),
			Dust:         big.NewInt(0),
		}
		if ev.ElapsedTicks == 0 {
			return nil
		}

		rate, err := s.storage.ratePerTick.Get()
		if err != nil {
			return err
		}
		ev.NewUnits.Mul(rate, new(big.Int).SetUint64(ev.ElapsedTicks))
		if _, err := s.asset.Mint(ev.NewUnits); err != nil {
			return mintError(err)
		}

		allocated := big.NewInt(0)
		err = s.participants.Iter(func(addr thor.Address, rec *participant.Participant) error {
			amount := Allocate(ev.NewUnits, rec.Shares, snapshot)
			if amount.Sign() == 0 {
				return nil
			}
			updated, err := s.participants.Allocate(addr, amount)
			if err != nil {
				return err
			}
			allocated.Add(allocated, amount)
			ev.Allocations = append(ev.Allocations, &Allocation{
				Participant: addr,
				Amount:      amount,
				Shares:      updated.Shares,
			})
			return nil
		})
		if err != nil {
			return err
		}

		ev.Dust.Sub(ev.NewUnits, allocated)
		if err := s.stats.Apply(&delta.Pool{
			Principal:     big.NewInt(0),
			Shares:        allocated,
			Undistributed: ev.Dust,
		}); err != nil {
			return err
		}
		s.storage.lastDistributionTick.Set(current)

		metricDistributedTo().Observe(int64(len(ev.Allocations)))
		metricMintedTokens().Add(wholeTokens(ev.NewUnits))
		logger.Info("rewards distributed",
			"tick", current,
			"elapsed", ev.ElapsedTicks,
			"units", ev.NewUnits,
			"participants", len(ev.Allocations),
			"dust", ev.Dust,
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ev, nil
}

// Allocate returns floor(newUnits * shares / totalShares).
// The sum over all participants never exceeds newUnits.
func Allocate(newUnits, shares, totalShares *big.Int) *big.Int {
	if totalShares.Sign() <= 0 || shares.Sign() <= 0 {
		return big.NewInt(0)
	}
	amount := new(big.Int).Mul(newUnits, shares)
	return amount.Quo(amount, totalShares)
}
