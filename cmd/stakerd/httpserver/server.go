// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/vechain/stakeledger/co"
	"github.com/vechain/stakeledger/log"
	"github.com/vechain/stakeledger/thor"
)

var logger = log.WithContext("pkg", "httpserver")

// serve listens on addr and serves handler until the returned stop func is called.
func serve(name, addr string, handler http.Handler) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen %s addr [%v]", name, addr)
	}

	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
	var goes co.Goes
	goes.Go(func() {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Warn("server stopped", "name", name, "err", err)
		}
	})
	return "http://" + listener.Addr().String(), func() {
		srv.Close()
		goes.Wait()
	}, nil
}

// StartAPIServer serves the ledger API on addr.
func StartAPIServer(addr string, handler http.Handler, genesisID thor.Bytes32, timeout time.Duration) (string, func(), error) {
	if timeout > 0 {
		handler = handleAPITimeout(handler, timeout)
	}
	handler = handleXGenesisID(handler, genesisID)
	handler = requestBodyLimit(handler)

	url, stop, err := serve("API", addr, handler)
	if err != nil {
		return "", nil, err
	}
	return url + "/", stop, nil
}

// handleAPITimeout bounds the request context. Unlike http.TimeoutHandler it
// keeps the writer hijackable for websocket upgrades.
func handleAPITimeout(h http.Handler, timeout time.Duration) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		h.ServeHTTP(w, r.WithContext(ctx))
	})
}

func handleXGenesisID(h http.Handler, genesisID thor.Bytes32) http.Handler {
	const headerKey = "x-genesis-id"
	expectedID := genesisID.String()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actualID := r.Header.Get(headerKey)
		if actualID == "" {
			actualID = r.URL.Query().Get(headerKey)
		}
		w.Header().Set(headerKey, expectedID)
		if actualID != "" && actualID != expectedID {
			w.WriteHeader(http.StatusForbidden)
			io.WriteString(w, "genesis id mismatch")
			return
		}
		h.ServeHTTP(w, r)
	})
}

func requestBodyLimit(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, 200*1024)
		h.ServeHTTP(w, r)
	})
}

// StartAdminServer serves the admin API on addr.
func StartAdminServer(addr string, handler http.Handler) (string, func(), error) {
	url, stop, err := serve("admin", addr, handler)
	if err != nil {
		return "", nil, err
	}
	return url + "/admin", stop, nil
}
