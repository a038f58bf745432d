// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reverts defines the rule violations of the builtin contracts.
// A revert aborts the whole operation and leaves no state change behind.
package reverts

import (
	"errors"
)

// Kind classifies a revert so that callers can tell a pool that is not ready
// from a caller mistake and from a broken invariant.
type Kind uint8

const (
	KindCaller    Kind = iota // the caller asked for something the rules forbid
	KindNotReady              // the pool can't serve the request yet
	KindInvariant             // the ledger itself is inconsistent
)

func (k Kind) String() string {
	switch k {
	case KindCaller:
		return "caller"
	case KindNotReady:
		return "not-ready"
	case KindInvariant:
		return "invariant"
	}
	return "unknown"
}

type ErrRevert struct {
	message string
	kind    Kind
}

func New(message string) *ErrRevert {
	return &ErrRevert{
		message: message,
		kind:    KindCaller,
	}
}

func newKind(message string, kind Kind) *ErrRevert {
	return &ErrRevert{message: message, kind: kind}
}

func (e *ErrRevert) Error() string {
	return e.message
}

func (e *ErrRevert) Kind() Kind {
	return e.kind
}

var (
	ErrInsufficientFunds = New("insufficient funds")
	ErrUnsupportedAsset  = New("unsupported asset")
	ErrUnauthorized      = New("unauthorized")
	ErrInvalidAmount     = New("invalid amount")
	ErrInvalidRecipient  = New("invalid recipient")
	ErrEmptyPool         = newKind("empty pool", KindNotReady)
	ErrClockRegression   = newKind("clock regression", KindInvariant)
)

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

// KindOf returns the kind of a revert error. The second return value is false
// for errors that are not reverts, e.g. storage failures.
func KindOf(err error) (Kind, bool) {
	var ve *ErrRevert
	if errors.As(err, &ve) {
		return ve.kind, true
	}
	return 0, false
}

// IsFatal reports whether err signals a broken ledger invariant.
func IsFatal(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindInvariant
}
