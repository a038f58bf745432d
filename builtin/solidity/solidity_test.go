// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakeledger/lvldb"
	"github.com/vechain/stakeledger/state"
	"github.com/vechain/stakeledger/thor"
)

type TestStruct struct {
	Field1 uint64
	Amount *big.Int
	Addr1  thor.Address
}

func newTestContext(t *testing.T) *Context {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewContext(thor.Address{1}, state.New(db))
}

func TestAddress(t *testing.T) {
	ctx := newTestContext(t)
	slot := NewAddress(ctx, thor.BytesToBytes32([]byte("owner")))

	got, err := slot.Get()
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	owner := thor.BytesToAddress([]byte("owner"))
	slot.Set(owner)
	got, err = slot.Get()
	require.NoError(t, err)
	assert.Equal(t, owner, got)
}

func TestUint256(t *testing.T) {
	ctx := newTestContext(t)
	slot := NewUint256(ctx, thor.BytesToBytes32([]byte("total")))

	v, err := slot.Get()
	require.NoError(t, err)
	assert.Equal(t, 0, v.Sign())

	require.NoError(t, slot.Add(thor.Tokens(100)))
	require.NoError(t, slot.Sub(thor.Tokens(40)))
	v, err = slot.Get()
	require.NoError(t, err)
	assert.Equal(t, thor.Tokens(60), v)

	assert.ErrorIs(t, slot.Sub(thor.Tokens(61)), ErrUnderflow)
	v, _ = slot.Get()
	assert.Equal(t, thor.Tokens(60), v, "failed sub must not write")

	tooBig := new(big.Int).Lsh(big.NewInt(1), 256)
	assert.ErrorIs(t, slot.Set(tooBig), ErrOverflow)
}

func TestUint64(t *testing.T) {
	ctx := newTestContext(t)
	slot := NewUint64(ctx, thor.BytesToBytes32([]byte("tick")))

	v, err := slot.Get()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), v)

	slot.Set(12345)
	v, err = slot.Get()
	require.NoError(t, err)
	assert.Equal(t, uint64(12345), v)
}

func TestMapping(t *testing.T) {
	ctx := newTestContext(t)
	m := NewMapping[thor.Address, *TestStruct](ctx, thor.BytesToBytes32([]byte("records")))

	key := thor.BytesToAddress([]byte("k"))
	empty, err := m.Get(key)
	require.NoError(t, err)
	require.NotNil(t, empty)
	assert.Equal(t, uint64(0), empty.Field1)

	in := &TestStruct{Field1: 7, Amount: thor.Tokens(3), Addr1: key}
	require.NoError(t, m.Set(key, in))

	out, err := m.Get(key)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	other, err := m.Get(thor.BytesToAddress([]byte("other")))
	require.NoError(t, err)
	assert.Equal(t, uint64(0), other.Field1)

	m.Delete(key)
	out, err = m.Get(key)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), out.Field1)
}

func TestMappingValueType(t *testing.T) {
	ctx := newTestContext(t)
	m := NewMapping[thor.Address, thor.Address](ctx, thor.BytesToBytes32([]byte("links")))

	a := thor.BytesToAddress([]byte("a"))
	b := thor.BytesToAddress([]byte("b"))

	got, err := m.Get(a)
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	require.NoError(t, m.Set(a, b))
	got, err = m.Get(a)
	require.NoError(t, err)
	assert.Equal(t, b, got)
}
