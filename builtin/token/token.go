// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token implements the ERC-20 style reward token used as the staking asset.
// Balances, allowances and the minter set live in contract storage, so token
// writes share checkpoints with any other contract using the same state.
package token

import (
	"encoding/binary"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/stakeledger/builtin/reverts"
	"github.com/vechain/stakeledger/builtin/solidity"
	"github.com/vechain/stakeledger/log"
	"github.com/vechain/stakeledger/state"
	"github.com/vechain/stakeledger/thor"
)

var (
	logger = log.WithContext("pkg", "token")

	slotBalances    = nameToSlot("balances")
	slotAllowances  = nameToSlot("allowances")
	slotTotalSupply = nameToSlot("total-supply")
	slotMinters     = nameToSlot("minters")
	slotMinterCount = nameToSlot("minter-count")
	slotIsMinter    = nameToSlot("is-minter")

	ErrAlreadyInitialized = errors.New("token already initialized")
)

func nameToSlot(name string) thor.Bytes32 {
	return thor.BytesToBytes32([]byte(name))
}

// allowanceKey addresses the allowance granted by owner to spender.
type allowanceKey struct {
	owner   thor.Address
	spender thor.Address
}

func (k allowanceKey) Bytes() []byte {
	return append(k.owner.Bytes(), k.spender.Bytes()...)
}

// minterIndex is the position of a minter in the minter list.
type minterIndex uint64

func (i minterIndex) Bytes() []byte {
	return binary.BigEndian.AppendUint64(nil, uint64(i))
}

// Token implements the reward token contract.
type Token struct {
	addr        thor.Address
	balances    *solidity.Mapping[thor.Address, *big.Int]
	allowances  *solidity.Mapping[allowanceKey, *big.Int]
	minters     *solidity.Mapping[minterIndex, thor.Address]
	isMinter    *solidity.Mapping[thor.Address, bool]
	minterCount *solidity.Uint64
	totalSupply *solidity.Uint256
}

// New create a new instance.
func New(addr thor.Address, state *state.State) *Token {
	sctx := solidity.NewContext(addr, state)
	return &Token{
		addr:        addr,
		balances:    solidity.NewMapping[thor.Address, *big.Int](sctx, slotBalances),
		allowances:  solidity.NewMapping[allowanceKey, *big.Int](sctx, slotAllowances),
		minters:     solidity.NewMapping[minterIndex, thor.Address](sctx, slotMinters),
		isMinter:    solidity.NewMapping[thor.Address, bool](sctx, slotIsMinter),
		minterCount: solidity.NewUint64(sctx, slotMinterCount),
		totalSupply: solidity.NewUint256(sctx, slotTotalSupply),
	}
}

// Address returns the contract address of the token.
func (t *Token) Address() thor.Address { return t.addr }

func (t *Token) Name() string   { return thor.TokenName }
func (t *Token) Symbol() string { return thor.TokenSymbol }
func (t *Token) Decimals() uint8 {
	return thor.TokenDecimals
}

// Initialize credits the initial supply to the deployer and makes it the first minter.
// It can only run once.
func (t *Token) Initialize(deployer thor.Address, supply *big.Int) (*MintEvent, error) {
	count, err := t.minterCount.Get()
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrAlreadyInitialized
	}
	if deployer.IsZero() {
		return nil, reverts.ErrInvalidRecipient
	}
	if err := t.addMinter(deployer); err != nil {
		return nil, err
	}
	return t.mint(deployer, supply)
}

// TotalSupply returns the amount of tokens in existence.
func (t *Token) TotalSupply() (*big.Int, error) {
	return t.totalSupply.Get()
}

// BalanceOf returns the balance of addr.
func (t *Token) BalanceOf(addr thor.Address) (*big.Int, error) {
	bal, err := t.balances.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get balance")
	}
	return bal, nil
}

// Allowance returns the remaining amount spender may move on behalf of owner.
func (t *Token) Allowance(owner, spender thor.Address) (*big.Int, error) {
	allowance, err := t.allowances.Get(allowanceKey{owner, spender})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get allowance")
	}
	return allowance, nil
}

// Transfer moves value from the sender to the recipient.
func (t *Token) Transfer(from, to thor.Address, value *big.Int) (*TransferEvent, error) {
	if err := t.move(from, to, value); err != nil {
		return nil, err
	}
	logger.Trace("transfer", "from", from, "to", to, "value", value)
	return &TransferEvent{From: from, To: to, Value: new(big.Int).Set(value)}, nil
}

// Approve sets the allowance of spender over the owner's tokens.
func (t *Token) Approve(owner, spender thor.Address, value *big.Int) (*ApprovalEvent, error) {
	if value == nil || value.Sign() < 0 {
		return nil, reverts.ErrInvalidAmount
	}
	if spender.IsZero() {
		return nil, reverts.ErrInvalidRecipient
	}
	if err := t.allowances.Set(allowanceKey{owner, spender}, new(big.Int).Set(value)); err != nil {
		return nil, errors.Wrap(err, "failed to set allowance")
	}
	return &ApprovalEvent{Owner: owner, Spender: spender, Value: new(big.Int).Set(value)}, nil
}

// TransferFrom moves value from one account to another using the allowance
// granted to spender, which is decreased accordingly.
func (t *Token) TransferFrom(spender, from, to thor.Address, value *big.Int) (*TransferEvent, error) {
	if value == nil || value.Sign() < 0 {
		return nil, reverts.ErrInvalidAmount
	}
	allowance, err := t.Allowance(from, spender)
	if err != nil {
		return nil, err
	}
	if allowance.Cmp(value) < 0 {
		return nil, errors.WithMessage(reverts.ErrInsufficientFunds, "allowance exceeded")
	}
	if err := t.move(from, to, value); err != nil {
		return nil, err
	}
	if err := t.allowances.Set(allowanceKey{from, spender}, allowance.Sub(allowance, value)); err != nil {
		return nil, errors.Wrap(err, "failed to set allowance")
	}
	logger.Trace("transfer from", "spender", spender, "from", from, "to", to, "value", value)
	return &TransferEvent{From: from, To: to, Value: new(big.Int).Set(value)}, nil
}

// Mint creates value new tokens and credits them to the calling minter.
func (t *Token) Mint(caller thor.Address, value *big.Int) (*MintEvent, error) {
	ok, err := t.IsMinter(caller)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.WithMessage(reverts.ErrUnauthorized, "caller is not a minter")
	}
	return t.mint(caller, value)
}

// AddMinter grants the mint permission to minter. Only a minter may call it.
func (t *Token) AddMinter(caller, minter thor.Address) error {
	ok, err := t.IsMinter(caller)
	if err != nil {
		return err
	}
	if !ok {
		return errors.WithMessage(reverts.ErrUnauthorized, "caller is not a minter")
	}
	if minter.IsZero() {
		return reverts.ErrInvalidRecipient
	}
	exists, err := t.IsMinter(minter)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return t.addMinter(minter)
}

// IsMinter reports whether addr may mint.
func (t *Token) IsMinter(addr thor.Address) (bool, error) {
	ok, err := t.isMinter.Get(addr)
	if err != nil {
		return false, errors.Wrap(err, "failed to get minter flag")
	}
	return ok, nil
}

// Minters returns the i-th minter, in the order they were added.
func (t *Token) Minters(i uint64) (thor.Address, error) {
	count, err := t.minterCount.Get()
	if err != nil {
		return thor.Address{}, err
	}
	if i >= count {
		return thor.Address{}, errors.Errorf("minter index %d out of range", i)
	}
	return t.minters.Get(minterIndex(i))
}

// MinterCount returns the size of the minter set.
func (t *Token) MinterCount() (uint64, error) {
	return t.minterCount.Get()
}

func (t *Token) addMinter(minter thor.Address) error {
	count, err := t.minterCount.Get()
	if err != nil {
		return err
	}
	if err := t.minters.Set(minterIndex(count), minter); err != nil {
		return errors.Wrap(err, "failed to add minter")
	}
	if err := t.isMinter.Set(minter, true); err != nil {
		return errors.Wrap(err, "failed to set minter flag")
	}
	t.minterCount.Set(count + 1)
	return nil
}

// move checks every precondition before the first write, so a failed
// transfer leaves storage untouched.
func (t *Token) move(from, to thor.Address, value *big.Int) error {
	if value == nil || value.Sign() < 0 {
		return reverts.ErrInvalidAmount
	}
	if to.IsZero() {
		return reverts.ErrInvalidRecipient
	}
	fromBal, err := t.BalanceOf(from)
	if err != nil {
		return err
	}
	if fromBal.Cmp(value) < 0 {
		return reverts.ErrInsufficientFunds
	}
	if from == to {
		return nil
	}
	toBal, err := t.BalanceOf(to)
	if err != nil {
		return err
	}
	if err := t.balances.Set(from, fromBal.Sub(fromBal, value)); err != nil {
		return errors.Wrap(err, "failed to set balance")
	}
	if err := t.balances.Set(to, toBal.Add(toBal, value)); err != nil {
		return errors.Wrap(err, "failed to set balance")
	}
	return nil
}

func (t *Token) mint(to thor.Address, value *big.Int) (*MintEvent, error) {
	if value == nil || value.Sign() < 0 {
		return nil, reverts.ErrInvalidAmount
	}
	supply, err := t.totalSupply.Get()
	if err != nil {
		return nil, err
	}
	supply.Add(supply, value)
	if _, overflow := uint256.FromBig(supply); overflow {
		return nil, errors.WithMessage(reverts.ErrInvalidAmount, "total supply overflow")
	}
	bal, err := t.BalanceOf(to)
	if err != nil {
		return nil, err
	}
	if err := t.balances.Set(to, bal.Add(bal, value)); err != nil {
		return nil, errors.Wrap(err, "failed to set balance")
	}
	if err := t.totalSupply.Set(supply); err != nil {
		return nil, err
	}
	logger.Debug("minted", "minter", to, "amount", value, "supply", supply)
	return &MintEvent{Minter: to, Amount: new(big.Int).Set(value), TotalSupply: new(big.Int).Set(supply)}, nil
}
