// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/stakeledger/api/middleware"
	"github.com/vechain/stakeledger/api/staker"
	"github.com/vechain/stakeledger/api/subscriptions"
	"github.com/vechain/stakeledger/api/transactions"
	"github.com/vechain/stakeledger/log"
	"github.com/vechain/stakeledger/thor"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins string
	EnableMetrics  bool
	// EnableReqLogger toggles request logging at runtime, nil disables it.
	EnableReqLogger      *atomic.Bool
	SlowQueriesThreshold time.Duration
	// Distributions feeds the websocket subscriptions, nil leaves them unmounted.
	Distributions subscriptions.Feed
	// Transactions executes write requests, nil leaves them unmounted.
	Transactions Writer
	// Asset is assumed by write requests naming none.
	Asset thor.Address
}

// Writer is the write side of the ledger.
type Writer = transactions.Ledger

// New return api router
func New(ledger staker.Ledger, opts Options) (http.HandlerFunc, func()) {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()
	staker.New(ledger).
		Mount(router, "/staker")

	if opts.Transactions != nil {
		transactions.New(opts.Transactions, opts.Asset).
			Mount(router, "/transactions")
	}

	closeFunc := func() {}
	if opts.Distributions != nil {
		subs := subscriptions.New(opts.Distributions, origins)
		subs.Mount(router, "/subscriptions")
		closeFunc = subs.Close // subscriptions handles hijacked conns, which need to be closed
	}

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	if opts.EnableReqLogger != nil {
		handler = middleware.RequestLoggerMiddleware(logger, opts.EnableReqLogger, opts.SlowQueriesThreshold)(handler)
	}

	return handler.ServeHTTP, closeFunc
}
