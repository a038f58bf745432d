// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"hash"
	"io"
	"sync"

	"github.com/ethereum/go-ethereum/crypto/blake2b"
	"github.com/ethereum/go-ethereum/rlp"
)

// Blake2b computes blake2b-256 checksum of the concatenated data.
func Blake2b(data ...[]byte) Bytes32 {
	if len(data) == 1 {
		return blake2b.Sum256(data[0])
	}
	return blake2bFn(func(w io.Writer) error {
		for _, b := range data {
			w.Write(b)
		}
		return nil
	})
}

// Blake2bRLP hashes the rlp encoding of v without materializing it.
func Blake2bRLP(v any) (h Bytes32, err error) {
	h = blake2bFn(func(w io.Writer) error {
		err = rlp.Encode(w, v)
		return err
	})
	if err != nil {
		return Bytes32{}, err
	}
	return h, nil
}

// MappingSlot derives the storage position of key in a mapping rooted at base.
// Positions of distinct keys, or of one key under distinct bases, never collide
// short of a hash collision.
func MappingSlot(key []byte, base Bytes32) Bytes32 {
	return Blake2b(key, base[:])
}

func blake2bFn(fn func(w io.Writer) error) (h Bytes32) {
	w := blake2bStatePool.Get().(*blake2bState)
	defer func() {
		w.Reset()
		blake2bStatePool.Put(w)
	}()

	if fn(w) != nil {
		return Bytes32{}
	}
	w.Sum(w.b32[:0])
	return w.b32
}

type blake2bState struct {
	hash.Hash
	b32 Bytes32
}

var blake2bStatePool = sync.Pool{
	New: func() any {
		h, _ := blake2b.New256(nil)
		return &blake2bState{Hash: h}
	},
}
