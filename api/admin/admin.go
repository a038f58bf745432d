// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/stakeledger/api/admin/apilogs"
	"github.com/vechain/stakeledger/api/admin/loglevel"
	"github.com/vechain/stakeledger/api/utils"

	healthAPI "github.com/vechain/stakeledger/api/admin/health"
)

// New returns the admin router. trigger, when not nil, is called by
// POST /admin/distribute to request a distribution round.
func New(logLevel *slog.LevelVar, health *healthAPI.Health, apiLogs *atomic.Bool, trigger func()) http.HandlerFunc {
	router := mux.NewRouter()
	sub := router.PathPrefix("/admin").Subrouter()

	loglevel.New(logLevel).Mount(sub, "/loglevel")
	healthAPI.NewAPI(health).Mount(sub, "/health")
	apilogs.New(apiLogs).Mount(sub, "/apilogs")

	if trigger != nil {
		sub.Path("/distribute").
			Methods(http.MethodPost).
			Name("post-distribute").
			HandlerFunc(utils.WrapHandlerFunc(func(w http.ResponseWriter, _ *http.Request) error {
				trigger()
				w.WriteHeader(http.StatusAccepted)
				return nil
			}))
	}

	handler := handlers.CompressHandler(router)

	return handler.ServeHTTP
}
