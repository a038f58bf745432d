// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

// Getter reads keys. A missing key is reported as an error that
// satisfies IsNotFound.
type Getter interface {
	Get(key []byte) (value []byte, err error)
	Has(key []byte) (bool, error)
	IsNotFound(error) bool
}

// Putter writes and removes keys.
type Putter interface {
	Put(key, value []byte) error
	Delete(key []byte) error
}

// Store is what the ledger state is persisted to.
type Store interface {
	Getter
	Putter

	NewBatch() Batch
	NewIterator(r Range) Iterator
}

// GetPutCloser is a Store owning its resources.
type GetPutCloser interface {
	Store
	Close() error
}

// Batch collects writes which are applied at once by Write.
type Batch interface {
	Putter

	Len() int
	Write() error
}

// Iterator walks a key range in ascending order.
type Iterator interface {
	Next() bool
	Release()
	Error() error

	Key() []byte
	Value() []byte
}

// Range selects keys in [From, To). An empty To means no upper bound
// within the bucket.
type Range struct {
	From []byte
	To   []byte
}
