// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stackedmap_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vechain/stakeledger/stackedmap"
)

func M(a ...any) []any {
	return a
}

func TestStackedMap(t *testing.T) {
	assert := assert.New(t)
	src := make(map[string]string)
	src["foo"] = "bar"

	sm := stackedmap.New(func(key string) (string, bool, error) {
		v, r := src[key]
		return v, r, nil
	})

	tests := []struct {
		f         func()
		depth     int
		putKey    string
		putValue  string
		getKey    string
		getReturn []any
	}{
		{func() {}, 1, "", "", "foo", []any{"bar", true, nil}},
		{func() { sm.Push() }, 2, "foo", "baz", "foo", []any{"baz", true, nil}},
		{func() {}, 2, "foo", "baz1", "foo", []any{"baz1", true, nil}},
		{func() { sm.Push() }, 3, "foo", "qux", "foo", []any{"qux", true, nil}},
		{func() { sm.Pop() }, 2, "", "", "foo", []any{"baz1", true, nil}},
		{func() { sm.Pop() }, 1, "", "", "foo", []any{"bar", true, nil}},

		{func() { sm.Push(); sm.Push() }, 3, "", "", "", nil},
		{func() { sm.PopTo(0) }, 0, "", "", "", nil},
	}

	for _, test := range tests {
		test.f()
		assert.Equal(test.depth, sm.Depth())
		if test.putKey != "" {
			sm.Put(test.putKey, test.putValue)
		}
		if test.getKey != "" {
			assert.Equal(test.getReturn, M(sm.Get(test.getKey)))
		}
	}
}

func TestStackedMapPuts(t *testing.T) {
	sm := stackedmap.New(func(key int) (int, bool, error) {
		return 0, false, nil
	})

	kvs := []struct {
		k, v int
	}{
		{1, 10},
		{2, 20},
		{1, 11},
	}

	for i, kv := range kvs {
		sm.Push()
		sm.Put(kv.k, kv.v)
		assert.Equal(t, i+2, sm.Depth())
	}

	journal := sm.Journal()
	assert.Len(t, journal, len(kvs))
	for i, entry := range journal {
		assert.Equal(t, kvs[i].k, entry.Key)
		assert.Equal(t, kvs[i].v, entry.Value)
	}

	sm.PopTo(2)
	v, ok, _ := sm.Get(1)
	assert.True(t, ok)
	assert.Equal(t, 10, v)
	assert.Len(t, sm.Journal(), 1)
}

func TestStackedMapSourceError(t *testing.T) {
	errBroken := errors.New("broken")
	sm := stackedmap.New(func(key string) (string, bool, error) {
		return "", false, errBroken
	})

	_, _, err := sm.Get("x")
	assert.Equal(t, errBroken, err)

	sm.Put("x", "y")
	v, ok, err := sm.Get("x")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "y", v)
}
