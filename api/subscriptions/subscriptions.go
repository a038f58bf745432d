// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/vechain/stakeledger/api/utils"
	"github.com/vechain/stakeledger/builtin/staker"
	"github.com/vechain/stakeledger/log"
)

var logger = log.WithContext("pkg", "subscriptions")

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 7) / 10

	// buffered events per subscriber, a subscriber falling further behind stalls the feed.
	eventBuffer = 16
)

// Feed publishes distribution events.
type Feed interface {
	SubscribeDistributions(ch chan *staker.DistributionEvent) event.Subscription
}

type Subscriptions struct {
	feed     Feed
	upgrader *websocket.Upgrader
	done     chan struct{}

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func New(feed Feed, allowedOrigins []string) *Subscriptions {
	return &Subscriptions{
		feed: feed,
		upgrader: &websocket.Upgrader{
			EnableCompression: true,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == "*" || strings.EqualFold(allowed, origin) {
						return true
					}
				}
				return false
			},
		},
		done: make(chan struct{}),
	}
}

// enter registers a handler unless the subscriptions are closed.
func (s *Subscriptions) enter() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	s.wg.Add(1)
	return true
}

func (s *Subscriptions) handleDistributions(w http.ResponseWriter, req *http.Request) error {
	if !s.enter() {
		return utils.HTTPError(errors.New("subscriptions closed"), http.StatusServiceUnavailable)
	}
	defer s.wg.Done()

	conn, err := s.upgrader.Upgrade(w, req, nil)
	// since the conn is hijacked here, no error should be returned in lines below
	if err != nil {
		logger.Debug("upgrade to websocket", "err", err)
		return nil
	}

	defer func() {
		if err := conn.Close(); err != nil {
			logger.Debug("failed to close websocket", "err", err)
		}
	}()

	var closeMsg []byte
	if err := s.pipe(conn); err != nil {
		closeMsg = websocket.FormatCloseMessage(websocket.CloseInternalServerErr, err.Error())
	} else {
		closeMsg = websocket.FormatCloseMessage(websocket.CloseGoingAway, "")
	}
	if err := conn.WriteControl(websocket.CloseMessage, closeMsg, time.Now().Add(writeWait)); err != nil {
		logger.Debug("write close message", "err", err)
	}
	return nil
}

// pipe forwards distribution events to conn until the peer leaves or the
// subscriptions are closed.
func (s *Subscriptions) pipe(conn *websocket.Conn) error {
	closed := make(chan struct{})
	// start read loop to handle close event
	go func() {
		defer close(closed)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				logger.Debug("websocket read err", "err", err)
				return
			}
		}
	}()

	ch := make(chan *staker.DistributionEvent, eventBuffer)
	sub := s.feed.SubscribeDistributions(ch)
	defer sub.Unsubscribe()

	pingTicker := time.NewTicker(pingPeriod)
	defer pingTicker.Stop()

	for {
		select {
		case ev := <-ch:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(convertDistribution(ev)); err != nil {
				return err
			}
		case err := <-sub.Err():
			// nil when the feed shuts down
			return err
		case <-pingTicker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return err
			}
		case <-closed:
			return nil
		case <-s.done:
			return nil
		}
	}
}

// Close drops every open subscription and waits for the handlers to return.
// Later upgrade requests are refused.
func (s *Subscriptions) Close() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.done)
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Subscriptions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/distributions").
		Methods(http.MethodGet).
		Name("WS " + pathPrefix + "/distributions").
		HandlerFunc(utils.WrapHandlerFunc(s.handleDistributions))
}
