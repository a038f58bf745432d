// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package distributor drives periodic reward distribution against a staker.
package distributor

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/pkg/errors"

	"github.com/vechain/stakeledger/builtin/reverts"
	"github.com/vechain/stakeledger/builtin/staker"
	"github.com/vechain/stakeledger/co"
	"github.com/vechain/stakeledger/log"
	"github.com/vechain/stakeledger/thor"
)

var logger = log.WithContext("pkg", "distributor")

// Staker is the part of the ledger the distributor drives.
type Staker interface {
	DistributeRewards(caller, asset thor.Address) (*staker.DistributionEvent, error)
	RefreshClock() (uint64, error)
}

// Schedule tells how long to wait before the next round.
type Schedule interface {
	UntilNext() time.Duration
}

type every time.Duration

func (e every) UntilNext() time.Duration { return time.Duration(e) }

// Every returns a schedule firing at a fixed period.
func Every(d time.Duration) Schedule {
	return every(d)
}

type Options struct {
	// Caller must hold the mint capability on the staker.
	Caller thor.Address
	Asset  thor.Address
}

// Distributor calls DistributeRewards on every scheduled round and on demand.
type Distributor struct {
	staker   Staker
	schedule Schedule
	options  Options

	trigger co.Signal
	feed    event.Feed
	scope   event.SubscriptionScope
}

func New(s Staker, schedule Schedule, options Options) *Distributor {
	return &Distributor{
		staker:   s,
		schedule: schedule,
		options:  options,
	}
}

// Trigger requests a round without waiting for the schedule.
// Requests arriving while one is pending are coalesced.
func (d *Distributor) Trigger() {
	d.trigger.Signal()
}

// SubscribeDistributions delivers every successful distribution to ch.
func (d *Distributor) SubscribeDistributions(ch chan *staker.DistributionEvent) event.Subscription {
	return d.scope.Track(d.feed.Subscribe(ch))
}

// Run blocks until ctx is done or the ledger reports a fatal error.
func (d *Distributor) Run(ctx context.Context) error {
	var (
		goes  co.Goes
		fatal = make(chan error, 1)
	)
	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		goes.Wait()
		d.scope.Close()
	}()

	goes.GoContext(ctx, func(ctx context.Context) {
		if err := d.loop(ctx); err != nil {
			fatal <- err
		}
	})

	select {
	case <-ctx.Done():
		return nil
	case err := <-fatal:
		return err
	}
}

func (d *Distributor) loop(ctx context.Context) error {
	logger.Debug("enter distribution loop")
	defer logger.Debug("leave distribution loop")

	waiter := d.trigger.NewWaiter()
	for {
		timer := time.NewTimer(d.schedule.UntilNext())
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		case <-waiter.C():
			timer.Stop()
		}

		if err := d.Round(); err != nil {
			return err
		}
	}
}

// Round runs one distribution. Errors the ledger can recover from are logged
// and swallowed, only fatal ones are returned.
// While nobody is staked the distribution clock is moved forward, so the
// first depositor isn't paid for ticks the pool was empty.
func (d *Distributor) Round() error {
	ev, err := d.staker.DistributeRewards(d.options.Caller, d.options.Asset)
	switch {
	case err == nil:
		if ev.ElapsedTicks > 0 {
			d.feed.Send(ev)
		}
		return nil
	case errors.Is(err, reverts.ErrEmptyPool):
		tick, err := d.staker.RefreshClock()
		if err != nil {
			if reverts.IsFatal(err) {
				logger.Error("distribution halted", "err", err)
				return err
			}
			logger.Warn("failed to refresh distribution clock", "err", err)
			return nil
		}
		logger.Debug("nothing staked, skip distribution", "tick", tick)
		return nil
	case reverts.IsFatal(err):
		logger.Error("distribution halted", "err", err)
		return err
	default:
		logger.Warn("failed to distribute rewards", "err", err)
		return nil
	}
}
