// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func Test_Reverts(t *testing.T) {
	revert := New("test")
	assert.Equal(t, "test", revert.message)
	assert.Equal(t, revert.Error(), revert.message)

	assert.True(t, IsRevertErr(revert))
	assert.False(t, IsRevertErr(nil))
	assert.False(t, IsRevertErr(fmt.Errorf("test")))
	assert.False(t, IsRevertErr(big.NewInt(0)))
}

func Test_WrappedReverts(t *testing.T) {
	err := errors.WithMessage(ErrInsufficientFunds, "withdraw 10")
	assert.True(t, IsRevertErr(err))
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.NotErrorIs(t, err, ErrEmptyPool)
	assert.Equal(t, "withdraw 10: insufficient funds", err.Error())
}

func Test_Kinds(t *testing.T) {
	tests := []struct {
		err   error
		kind  Kind
		fatal bool
	}{
		{ErrInsufficientFunds, KindCaller, false},
		{ErrUnsupportedAsset, KindCaller, false},
		{ErrUnauthorized, KindCaller, false},
		{ErrEmptyPool, KindNotReady, false},
		{errors.WithMessage(ErrClockRegression, "tick 3 < 5"), KindInvariant, true},
	}
	for _, tt := range tests {
		kind, ok := KindOf(tt.err)
		assert.True(t, ok, tt.err.Error())
		assert.Equal(t, tt.kind, kind, tt.err.Error())
		assert.Equal(t, tt.fatal, IsFatal(tt.err), tt.err.Error())
	}

	_, ok := KindOf(errors.New("disk failure"))
	assert.False(t, ok)
	assert.False(t, IsFatal(errors.New("disk failure")))
	assert.Equal(t, "not-ready", KindNotReady.String())
}
