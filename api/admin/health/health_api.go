// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/stakeledger/api/utils"
)

// defaultMaxLag is how many undistributed ticks are tolerated before the
// ledger reports itself unhealthy.
const defaultMaxLag = 3

type API struct {
	health *Health
}

func NewAPI(health *Health) *API {
	return &API{health: health}
}

func parseMaxLag(r *http.Request) (uint64, error) {
	q := r.URL.Query().Get("maxLag")
	if q == "" {
		return defaultMaxLag, nil
	}
	lag, err := strconv.ParseUint(q, 10, 64)
	if err != nil {
		return 0, utils.BadRequest(errors.WithMessage(err, "maxLag"))
	}
	return lag, nil
}

func (a *API) handleGetHealth(w http.ResponseWriter, r *http.Request) error {
	maxLag, err := parseMaxLag(r)
	if err != nil {
		return err
	}
	status, err := a.health.Status(maxLag)
	if err != nil {
		return err
	}

	code := http.StatusOK
	if !status.Healthy {
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", utils.JSONContentType)
	w.WriteHeader(code)
	return utils.WriteJSON(w, status)
}

func (a *API) Mount(root *mux.Router, pathPrefix string) {
	root.PathPrefix(pathPrefix).Subrouter().
		Path("").
		Methods(http.MethodGet).
		Name("health").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetHealth))
}
