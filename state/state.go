// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/stakeledger/cache"
	"github.com/vechain/stakeledger/kv"
	"github.com/vechain/stakeledger/stackedmap"
	"github.com/vechain/stakeledger/thor"
)

const storageCacheSize = 4096

// StorageBucket is the kv bucket holding contract storage.
const StorageBucket = kv.Bucket("s")

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.cause
}

type storageKey struct {
	addr thor.Address
	key  thor.Bytes32
}

func (k storageKey) dbKey() []byte {
	return append(append(make([]byte, 0, thor.AddressLength+32), k.addr[:]...), k.key[:]...)
}

// State manages contract storage with checkpoint/revert support.
// It's not safe for concurrent use.
type State struct {
	store kv.Store
	cache *cache.LRU[storageKey, rlp.RawValue] // committed values
	sm    *stackedmap.StackedMap[storageKey, rlp.RawValue]
}

// New create state object on top of the given kv store.
func New(db kv.Store) *State {
	c, _ := cache.NewLRU[storageKey, rlp.RawValue](storageCacheSize)
	s := &State{
		store: StorageBucket.NewStore(db),
		cache: c,
	}
	s.sm = stackedmap.New(s.cacheGetter)
	return s
}

// cacheGetter implements stackedmap.MapGetter.
func (s *State) cacheGetter(key storageKey) (rlp.RawValue, bool, error) {
	v, err := s.cache.GetOrLoad(key, func(key storageKey) (rlp.RawValue, error) {
		data, err := s.store.Get(key.dbKey())
		if err != nil {
			if s.store.IsNotFound(err) {
				return rlp.RawValue(nil), nil
			}
			return nil, err
		}
		return data, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// GetStorage returns storage value for the given address and key.
func (s *State) GetStorage(addr thor.Address, key thor.Bytes32) (thor.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return thor.Bytes32{}, err
	}
	if len(raw) == 0 {
		return thor.Bytes32{}, nil
	}
	kind, content, _, err := rlp.Split(raw)
	if err != nil {
		return thor.Bytes32{}, &Error{err}
	}
	if kind == rlp.List {
		// special case for rlp list, it should be customized storage value
		// return hash of raw data
		return thor.Blake2b(raw), nil
	}
	return thor.BytesToBytes32(content), nil
}

// SetStorage set storage value for the given address and key.
func (s *State) SetStorage(addr thor.Address, key, value thor.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	v, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(addr, key, v)
}

// GetRawStorage returns storage value in rlp raw for given address and key.
func (s *State) GetRawStorage(addr thor.Address, key thor.Bytes32) (rlp.RawValue, error) {
	data, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return data, nil
}

// SetRawStorage set storage value in rlp raw.
func (s *State) SetRawStorage(addr thor.Address, key thor.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// EncodeStorage set storage value encoded by given enc method.
func (s *State) EncodeStorage(addr thor.Address, key thor.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
func (s *State) DecodeStorage(addr thor.Address, key thor.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
	if s.sm.Depth() == 0 {
		s.sm.Push()
	}
}

// Dirty returns the number of pending storage changes.
func (s *State) Dirty() int {
	return len(s.sm.Journal())
}

// Commit writes all pending changes into the kv store in one batch.
// Pending checkpoints are discarded afterwards.
func (s *State) Commit() error {
	journal := s.sm.Journal()
	if len(journal) == 0 {
		return nil
	}

	// only the latest value of each key matters
	latest := make(map[storageKey]rlp.RawValue, len(journal))
	order := make([]storageKey, 0, len(journal))
	for _, entry := range journal {
		if _, ok := latest[entry.Key]; !ok {
			order = append(order, entry.Key)
		}
		latest[entry.Key] = entry.Value
	}

	batch := s.store.NewBatch()
	for _, key := range order {
		var err error
		if raw := latest[key]; len(raw) == 0 {
			err = batch.Delete(key.dbKey())
		} else {
			err = batch.Put(key.dbKey(), raw)
		}
		if err != nil {
			return errors.Wrap(err, "commit storage")
		}
	}
	if err := batch.Write(); err != nil {
		return errors.Wrap(err, "commit storage")
	}

	for _, key := range order {
		s.cache.Add(key, latest[key])
	}
	s.sm = stackedmap.New(s.cacheGetter)
	return nil
}
