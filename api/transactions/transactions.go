// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transactions

import (
	"math/big"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/stakeledger/api/utils"
	"github.com/vechain/stakeledger/builtin/staker"
	"github.com/vechain/stakeledger/thor"
)

// Ledger is the write side of the staking ledger.
type Ledger interface {
	Deposit(p, asset thor.Address, amount *big.Int) (*staker.DepositEvent, error)
	Withdraw(p, asset thor.Address, amount *big.Int) (*staker.WithdrawEvent, error)
	ClaimRewards(p, asset thor.Address) (*staker.ClaimEvent, error)
	Mint(caller, asset thor.Address, amount *big.Int) (*staker.MintEvent, error)
}

// Transactions executes ledger operations on behalf of the named caller.
// It has no notion of signatures, so it is only mounted on trusted
// deployments.
type Transactions struct {
	ledger Ledger
	asset  thor.Address
}

// New returns the write API. asset is used when a request names none.
func New(ledger Ledger, asset thor.Address) *Transactions {
	return &Transactions{ledger: ledger, asset: asset}
}

func (t *Transactions) parse(req *http.Request, needAmount bool) (*Request, error) {
	var body *Request
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return nil, utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body == nil {
		return nil, utils.BadRequest(errors.New("body: empty"))
	}
	if body.Asset == nil {
		asset := t.asset
		body.Asset = &asset
	}
	if needAmount && body.Amount == nil {
		return nil, utils.BadRequest(errors.New("amount: required"))
	}
	return body, nil
}

func (t *Transactions) handleDeposit(w http.ResponseWriter, req *http.Request) error {
	body, err := t.parse(req, true)
	if err != nil {
		return err
	}
	ev, err := t.ledger.Deposit(body.Caller, *body.Asset, body.amount())
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Receipt{
		Participant: ev.Participant,
		Amount:      hexOrDecimal(ev.Amount),
		Balance:     hexOrDecimal(ev.Balance),
	})
}

func (t *Transactions) handleWithdraw(w http.ResponseWriter, req *http.Request) error {
	body, err := t.parse(req, true)
	if err != nil {
		return err
	}
	ev, err := t.ledger.Withdraw(body.Caller, *body.Asset, body.amount())
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Receipt{
		Participant: ev.Participant,
		Amount:      hexOrDecimal(ev.Amount),
		Balance:     hexOrDecimal(ev.Balance),
	})
}

func (t *Transactions) handleClaim(w http.ResponseWriter, req *http.Request) error {
	body, err := t.parse(req, false)
	if err != nil {
		return err
	}
	ev, err := t.ledger.ClaimRewards(body.Caller, *body.Asset)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Receipt{
		Participant: ev.Participant,
		Amount:      hexOrDecimal(ev.Amount),
	})
}

func (t *Transactions) handleMint(w http.ResponseWriter, req *http.Request) error {
	body, err := t.parse(req, true)
	if err != nil {
		return err
	}
	ev, err := t.ledger.Mint(body.Caller, *body.Asset, body.amount())
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &MintReceipt{
		Minter:      ev.Minter,
		Amount:      hexOrDecimal(ev.Amount),
		TotalSupply: hexOrDecimal(ev.TotalSupply),
	})
}

func (t *Transactions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/deposit").
		Methods(http.MethodPost).
		Name("POST /transactions/deposit").
		HandlerFunc(utils.WrapHandlerFunc(t.handleDeposit))
	sub.Path("/withdraw").
		Methods(http.MethodPost).
		Name("POST /transactions/withdraw").
		HandlerFunc(utils.WrapHandlerFunc(t.handleWithdraw))
	sub.Path("/claim").
		Methods(http.MethodPost).
		Name("POST /transactions/claim").
		HandlerFunc(utils.WrapHandlerFunc(t.handleClaim))
	sub.Path("/mint").
		Methods(http.MethodPost).
		Name("POST /transactions/mint").
		HandlerFunc(utils.WrapHandlerFunc(t.handleMint))
}
