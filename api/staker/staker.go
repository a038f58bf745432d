// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/stakeledger/api/utils"
	"github.com/vechain/stakeledger/builtin/staker"
	"github.com/vechain/stakeledger/thor"
)

// Ledger is the read side of the staking ledger.
type Ledger interface {
	Pool() (*staker.Pool, error)
	Participants() ([]*staker.Position, error)
	PositionOf(p thor.Address) (*staker.Position, error)
}

type Staker struct {
	ledger Ledger
}

func New(ledger Ledger) *Staker {
	return &Staker{ledger}
}

func (s *Staker) handleGetPool(w http.ResponseWriter, _ *http.Request) error {
	pool, err := s.ledger.Pool()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertPool(pool))
}

func (s *Staker) handleGetClock(w http.ResponseWriter, _ *http.Request) error {
	pool, err := s.ledger.Pool()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertClock(pool))
}

func (s *Staker) handleGetParticipants(w http.ResponseWriter, req *http.Request) error {
	offset, err := parseUint(req.URL.Query().Get("offset"), 0)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "offset"))
	}
	limit, err := parseUint(req.URL.Query().Get("limit"), 0)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "limit"))
	}

	positions, err := s.ledger.Participants()
	if err != nil {
		return err
	}
	if offset >= uint64(len(positions)) {
		positions = nil
	} else {
		positions = positions[offset:]
	}
	if limit > 0 && limit < uint64(len(positions)) {
		positions = positions[:limit]
	}

	result := make([]*Position, 0, len(positions))
	for _, p := range positions {
		result = append(result, convertPosition(p))
	}
	return utils.WriteJSON(w, result)
}

func (s *Staker) handleGetParticipant(w http.ResponseWriter, req *http.Request) error {
	addr, err := thor.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}
	pos, err := s.ledger.PositionOf(addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertPosition(pos))
}

func parseUint(s string, def uint64) (uint64, error) {
	if s == "" {
		return def, nil
	}
	return strconv.ParseUint(s, 10, 64)
}

func (s *Staker) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /staker").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetPool))
	sub.Path("/clock").
		Methods(http.MethodGet).
		Name("GET /staker/clock").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetClock))
	sub.Path("/participants").
		Methods(http.MethodGet).
		Name("GET /staker/participants").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetParticipants))
	sub.Path("/participants/{address}").
		Methods(http.MethodGet).
		Name("GET /staker/participants/{address}").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetParticipant))
}
