// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package linkedlist

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakeledger/builtin/solidity"
	"github.com/vechain/stakeledger/lvldb"
	"github.com/vechain/stakeledger/state"
	"github.com/vechain/stakeledger/thor"
)

func newTestList(t *testing.T) *LinkedList {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sctx := solidity.NewContext(thor.BytesToAddress([]byte("staker")), state.New(db))
	return NewLinkedList(
		sctx,
		thor.BytesToBytes32([]byte("head")),
		thor.BytesToBytes32([]byte("tail")),
		thor.BytesToBytes32([]byte("count")),
	)
}

func collect(t *testing.T, l *LinkedList) []thor.Address {
	var out []thor.Address
	require.NoError(t, l.Iter(func(a thor.Address) error {
		out = append(out, a)
		return nil
	}))
	return out
}

func TestLinkedList_Empty(t *testing.T) {
	l := newTestList(t)

	head, err := l.Head()
	require.NoError(t, err)
	assert.True(t, head.IsZero())

	n, err := l.Len()
	require.NoError(t, err)
	assert.Zero(t, n.Sign())

	assert.Empty(t, collect(t, l))

	ok, err := l.Contains(thor.BytesToAddress([]byte("nobody")))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLinkedList_AddAndIter(t *testing.T) {
	l := newTestList(t)

	addrs := []thor.Address{
		thor.BytesToAddress([]byte("user1")),
		thor.BytesToAddress([]byte("user2")),
		thor.BytesToAddress([]byte("user3")),
	}
	for _, a := range addrs {
		require.NoError(t, l.Add(a))
	}

	assert.Equal(t, addrs, collect(t, l))

	n, err := l.Len()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(3), n)

	for _, a := range addrs {
		ok, err := l.Contains(a)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := l.Contains(thor.BytesToAddress([]byte("user4")))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLinkedList_IterStopsOnError(t *testing.T) {
	l := newTestList(t)
	require.NoError(t, l.Add(thor.BytesToAddress([]byte("a"))))
	require.NoError(t, l.Add(thor.BytesToAddress([]byte("b"))))

	stop := errors.New("stop")
	visited := 0
	err := l.Iter(func(thor.Address) error {
		visited++
		return stop
	})
	assert.Equal(t, stop, err)
	assert.Equal(t, 1, visited)
}
