// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"math/big"
	"sync"

	"github.com/pkg/errors"

	"github.com/vechain/stakeledger/builtin/reverts"
	"github.com/vechain/stakeledger/builtin/solidity"
	"github.com/vechain/stakeledger/builtin/staker/delta"
	"github.com/vechain/stakeledger/builtin/staker/globalstats"
	"github.com/vechain/stakeledger/builtin/staker/participant"
	"github.com/vechain/stakeledger/log"
	"github.com/vechain/stakeledger/state"
	"github.com/vechain/stakeledger/thor"
)

var (
	logger = log.WithContext("pkg", "staker")

	ErrAlreadyInitialized = errors.New("staker already initialized")
	ErrNotInitialized     = errors.New("staker not initialized")
)

func SetLogger(l log.Logger) {
	logger = l
}

// Staker is the staking ledger. It custodies deposits of a single asset and
// distributes newly minted units in proportion to the share balances.
//
// Every mutating call runs under one lock inside a state checkpoint. On error
// the checkpoint is reverted, including the asset's writes, on success the
// state is committed to the backing store.
type Staker struct {
	addr  thor.Address
	state *state.State
	asset Asset
	clock Clock
	auth  Authorizer

	mu           sync.Mutex
	storage      *storage
	stats        *globalstats.Service
	participants *participant.Service
}

// New create a new instance. The asset must share st with the engine so
// that its writes are covered by the engine's checkpoints.
func New(addr thor.Address, st *state.State, asset Asset, clock Clock) *Staker {
	sctx := solidity.NewContext(addr, st)
	storage := newStorage(sctx)
	return &Staker{
		addr:         addr,
		state:        st,
		asset:        asset,
		clock:        clock,
		auth:         &minterAuthority{minter: storage.minter},
		storage:      storage,
		stats:        globalstats.New(sctx),
		participants: participant.New(sctx),
	}
}

// WithAuthorizer replaces the default authorizer, which grants CanMint to the initial minter only.
func (s *Staker) WithAuthorizer(auth Authorizer) *Staker {
	s.auth = auth
	return s
}

// Address returns the custody account of the engine.
func (s *Staker) Address() thor.Address {
	return s.addr
}

// Initialize records the pool parameters. It runs once, the minter and the
// rate are immutable afterwards. The distribution clock starts at the current tick.
func (s *Staker) Initialize(minter thor.Address, ratePerTick *big.Int) error {
	return s.transact("initialize", func() error {
		configured, err := s.storage.asset.Get()
		if err != nil {
			return err
		}
		if !configured.IsZero() {
			return ErrAlreadyInitialized
		}
		if minter.IsZero() {
			return errors.WithMessage(reverts.ErrInvalidRecipient, "minter")
		}
		if ratePerTick == nil || ratePerTick.Sign() < 0 {
			return errors.WithMessage(reverts.ErrInvalidAmount, "rate per tick")
		}
		if s.asset.Address() == thor.NativeAsset {
			return reverts.ErrUnsupportedAsset
		}
		if err := s.storage.ratePerTick.Set(ratePerTick); err != nil {
			return err
		}
		s.storage.minter.Set(minter)
		s.storage.asset.Set(s.asset.Address())
		s.storage.lastDistributionTick.Set(s.clock.CurrentTick())

		logger.Info("staker initialized", "asset", s.asset.Address(), "minter", minter, "rate", ratePerTick)
		return nil
	})
}

//
// Getters - no state change
//

// PrincipalOf returns the deposited amount of p.
func (s *Staker) PrincipalOf(p thor.Address) (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.participants.Get(p)
	if err != nil {
		return nil, err
	}
	return rec.Principal, nil
}

// ShareBalanceOf returns the share balance of p, principal plus accrued rewards.
func (s *Staker) ShareBalanceOf(p thor.Address) (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.participants.Get(p)
	if err != nil {
		return nil, err
	}
	return rec.Shares, nil
}

// PositionOf returns the full ledger record of p.
func (s *Staker) PositionOf(p thor.Address) (*Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.participants.Get(p)
	if err != nil {
		return nil, err
	}
	return newPosition(p, rec), nil
}

// Participants lists every participant in the order they first deposited.
func (s *Staker) Participants() ([]*Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var positions []*Position
	err := s.participants.Iter(func(addr thor.Address, rec *participant.Participant) error {
		positions = append(positions, newPosition(addr, rec))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return positions, nil
}

func (s *Staker) TotalPrincipal() (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats.TotalPrincipal()
}

func (s *Staker) TotalShares() (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats.TotalShares()
}

// Undistributed returns the units custodied but not allocated, minted surplus and rounding dust.
func (s *Staker) Undistributed() (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats.Undistributed()
}

func (s *Staker) LastDistributionTick() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storage.lastDistributionTick.Get()
}

// BlockNumber is an alias of LastDistributionTick.
func (s *Staker) BlockNumber() (uint64, error) {
	return s.LastDistributionTick()
}

// Minter returns the address allowed to mint and distribute.
func (s *Staker) Minter() (thor.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storage.minter.Get()
}

// Asset returns the configured asset, zero before initialization.
func (s *Staker) Asset() (thor.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storage.asset.Get()
}

func (s *Staker) RatePerTick() (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storage.ratePerTick.Get()
}

// Pool returns a summary of the ledger.
func (s *Staker) Pool() (*Pool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	asset, err := s.storage.asset.Get()
	if err != nil {
		return nil, err
	}
	minter, err := s.storage.minter.Get()
	if err != nil {
		return nil, err
	}
	rate, err := s.storage.ratePerTick.Get()
	if err != nil {
		return nil, err
	}
	last, err := s.storage.lastDistributionTick.Get()
	if err != nil {
		return nil, err
	}
	totals, err := s.stats.Totals()
	if err != nil {
		return nil, err
	}
	count, err := s.participants.Count()
	if err != nil {
		return nil, err
	}
	custody, err := s.asset.BalanceOf(s.addr)
	if err != nil {
		return nil, err
	}

	current := s.clock.CurrentTick()
	pending := big.NewInt(0)
	if current > last && totals.Shares.Sign() > 0 {
		pending.Mul(rate, new(big.Int).SetUint64(current-last))
	}

	return &Pool{
		Address:              s.addr,
		Asset:                asset,
		Minter:               minter,
		RatePerTick:          rate,
		LastDistributionTick: last,
		CurrentTick:          current,
		TotalPrincipal:       totals.Principal,
		TotalShares:          totals.Shares,
		Undistributed:        totals.Undistributed,
		Custody:              custody,
		Participants:         count,
		Pending:              pending,
	}, nil
}

//
// Setters - state change
//

// Deposit pulls amount from the participant into custody and credits its principal and shares.
// The participant must have approved the engine for at least amount.
// The custody account itself can't be a participant.
func (s *Staker) Deposit(p, asset thor.Address, amount *big.Int) (*DepositEvent, error) {
	var ev *DepositEvent
	err := s.transact("deposit", func() error {
		if err := checkAmount(amount); err != nil {
			return err
		}
		if p.IsZero() || p == s.addr {
			return reverts.ErrInvalidRecipient
		}
		if err := s.checkAsset(asset); err != nil {
			return err
		}
		if err := s.asset.TransferFrom(p, s.addr, amount); err != nil {
			return transferError(err)
		}
		rec, err := s.participants.Deposit(p, amount)
		if err != nil {
			return err
		}
		if err := s.stats.Apply(delta.Deposit(amount)); err != nil {
			return err
		}
		ev = &DepositEvent{Participant: p, Amount: new(big.Int).Set(amount), Balance: rec.Principal}
		logger.Debug("deposit", "participant", p, "amount", amount, "balance", rec.Principal)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ev, nil
}

// Withdraw returns amount of principal to the participant.
// The native asset is never withdrawable.
func (s *Staker) Withdraw(p, asset thor.Address, amount *big.Int) (*WithdrawEvent, error) {
	var ev *WithdrawEvent
	err := s.transact("withdraw", func() error {
		if err := s.checkAsset(asset); err != nil {
			return err
		}
		if err := checkAmount(amount); err != nil {
			return err
		}
		rec, err := s.participants.Withdraw(p, amount)
		if err != nil {
			return err
		}
		if err := s.stats.Apply(delta.Withdraw(amount)); err != nil {
			return err
		}
		if err := s.asset.Transfer(p, amount); err != nil {
			return transferError(err)
		}
		ev = &WithdrawEvent{Participant: p, Amount: new(big.Int).Set(amount), Balance: rec.Principal}
		logger.Debug("withdraw", "participant", p, "amount", amount, "balance", rec.Principal)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ev, nil
}

// RefreshClock moves the distribution clock to the current tick without minting.
// Ticks elapsed since the last distribution are forfeited.
func (s *Staker) RefreshClock() (uint64, error) {
	var current uint64
	err := s.transact("refresh", func() error {
		last, err := s.storage.lastDistributionTick.Get()
		if err != nil {
			return err
		}
		current = s.clock.CurrentTick()
		if current < last {
			return errors.WithMessagef(reverts.ErrClockRegression, "tick %d before %d", current, last)
		}
		s.storage.lastDistributionTick.Set(current)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return current, nil
}

// Mint creates amount new units in custody without allocating them.
func (s *Staker) Mint(caller, asset thor.Address, amount *big.Int) (*MintEvent, error) {
	var ev *MintEvent
	err := s.transact("mint", func() error {
		if err := s.auth.Authorize(caller, CanMint); err != nil {
			return err
		}
		if err := s.checkAsset(asset); err != nil {
			return err
		}
		if err := checkAmount(amount); err != nil {
			return err
		}
		supply, err := s.asset.Mint(amount)
		if err != nil {
			return mintError(err)
		}
		d := delta.NewPool()
		d.Undistributed.Set(amount)
		if err := s.stats.Apply(d); err != nil {
			return err
		}
		ev = &MintEvent{Minter: caller, Amount: new(big.Int).Set(amount), TotalSupply: supply}
		metricMintedTokens().Add(wholeTokens(amount))
		logger.Debug("mint", "amount", amount, "supply", supply)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ev, nil
}

// ClaimRewards pays out the accrued reward of the participant, leaving its principal staked.
func (s *Staker) ClaimRewards(p, asset thor.Address) (*ClaimEvent, error) {
	var ev *ClaimEvent
	err := s.transact("claim", func() error {
		if err := s.checkAsset(asset); err != nil {
			return err
		}
		claimed, _, err := s.participants.Claim(p)
		if err != nil {
			return err
		}
		d := delta.NewPool()
		d.Shares.Neg(claimed)
		if err := s.stats.Apply(d); err != nil {
			return err
		}
		if err := s.asset.Transfer(p, claimed); err != nil {
			return transferError(err)
		}
		ev = &ClaimEvent{Participant: p, Amount: claimed}
		logger.Debug("claim", "participant", p, "amount", claimed)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ev, nil
}

//
// Helpers
//

// transact runs fn atomically. On error every write made by fn is reverted.
func (s *Staker) transact(op string, fn func() error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	defer func() {
		metricOperations().AddWithLabel(1, map[string]string{"op": op, "status": opStatus(err)})
	}()

	checkpoint := s.state.NewCheckpoint()
	if err = fn(); err != nil {
		s.state.RevertTo(checkpoint)
		if reverts.IsFatal(err) {
			logger.Error("ledger invariant violated", "op", op, "err", err)
		} else {
			logger.Debug("operation reverted", "op", op, "err", err)
		}
		return err
	}
	if err = s.state.Commit(); err != nil {
		s.state.RevertTo(checkpoint)
		return errors.WithMessage(err, op)
	}
	s.updateGauges()
	return nil
}

func (s *Staker) updateGauges() {
	totals, err := s.stats.Totals()
	if err != nil {
		return
	}
	metricTotalPrincipal().Set(wholeTokens(totals.Principal))
	metricTotalShares().Set(wholeTokens(totals.Shares))
	metricUndistributed().Set(wholeTokens(totals.Undistributed))
	if count, err := s.participants.Count(); err == nil {
		metricParticipantSize().Set(int64(count))
	}
	if last, err := s.storage.lastDistributionTick.Get(); err == nil {
		metricLastTick().Set(int64(last))
	}
}

// checkAsset rejects anything but the configured asset.
func (s *Staker) checkAsset(asset thor.Address) error {
	if asset == thor.NativeAsset {
		return errors.WithMessage(reverts.ErrUnsupportedAsset, "native asset")
	}
	configured, err := s.storage.asset.Get()
	if err != nil {
		return err
	}
	if configured.IsZero() {
		return ErrNotInitialized
	}
	if asset != configured {
		return errors.WithMessagef(reverts.ErrUnsupportedAsset, "%v", asset)
	}
	return nil
}

func checkAmount(amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return reverts.ErrInvalidAmount
	}
	return nil
}

// transferError classifies a failed transfer. Storage failures pass through,
// anything the asset refused is reported as insufficient funds.
func transferError(err error) error {
	var stErr *state.Error
	if errors.As(err, &stErr) || errors.Is(err, reverts.ErrInsufficientFunds) {
		return err
	}
	return errors.WithMessage(reverts.ErrInsufficientFunds, err.Error())
}

// mintError classifies a failed mint. A refusal by the asset means the engine is not one of its minters.
func mintError(err error) error {
	var stErr *state.Error
	if errors.As(err, &stErr) || reverts.IsRevertErr(err) {
		return err
	}
	return errors.WithMessage(reverts.ErrUnauthorized, err.Error())
}

func newPosition(addr thor.Address, rec *participant.Participant) *Position {
	return &Position{
		Participant: addr,
		Principal:   rec.Principal,
		Shares:      rec.Shares,
		Accrued:     rec.Accrued(),
	}
}
