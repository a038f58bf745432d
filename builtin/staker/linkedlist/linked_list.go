// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package linkedlist

import (
	"math/big"

	"github.com/vechain/stakeledger/builtin/solidity"
	"github.com/vechain/stakeledger/thor"
)

// LinkedList is an append-only list of addresses kept in contract storage.
// It's used to index participants in the order they joined.
type LinkedList struct {
	head  *solidity.Address
	tail  *solidity.Address
	count *solidity.Uint256
	next  *solidity.Mapping[thor.Address, thor.Address]
	prev  *solidity.Mapping[thor.Address, thor.Address]
}

// NewLinkedList creates a new linked list with persistent storage mappings
func NewLinkedList(sctx *solidity.Context, headPos, tailPos, countPos thor.Bytes32) *LinkedList {
	return &LinkedList{
		head:  solidity.NewAddress(sctx, headPos),
		tail:  solidity.NewAddress(sctx, tailPos),
		count: solidity.NewUint256(sctx, countPos),
		next:  solidity.NewMapping[thor.Address, thor.Address](sctx, headPos),
		prev:  solidity.NewMapping[thor.Address, thor.Address](sctx, tailPos),
	}
}

// Add appends an address to the end of the list.
// The zero address can't be stored since it marks the list ends.
func (l *LinkedList) Add(address thor.Address) error {
	oldTail, err := l.tail.Get()
	if err != nil {
		return err
	}

	if oldTail.IsZero() {
		// the list is currently empty, set this entry to head & tail
		l.head.Set(address)
		l.tail.Set(address)
		return l.count.Add(big.NewInt(1))
	}

	// Update old tail's next pointer
	if err := l.next.Set(oldTail, address); err != nil {
		return err
	}

	// Set new tail's prev pointer
	if err := l.prev.Set(address, oldTail); err != nil {
		return err
	}

	l.tail.Set(address)

	return l.count.Add(big.NewInt(1))
}

// Contains reports whether the address is in the list.
func (l *LinkedList) Contains(address thor.Address) (bool, error) {
	if address.IsZero() {
		return false, nil
	}
	prev, err := l.prev.Get(address)
	if err != nil {
		return false, err
	}
	if !prev.IsZero() {
		return true, nil
	}
	head, err := l.head.Get()
	if err != nil {
		return false, err
	}
	return head == address, nil
}

// Len returns the current number of addresses
func (l *LinkedList) Len() (*big.Int, error) {
	return l.count.Get()
}

// Head returns the oldest address, zero if the list is empty
func (l *LinkedList) Head() (thor.Address, error) {
	return l.head.Get()
}

// Iter traverses the list in insertion order, calling callback for each address until completion or error
func (l *LinkedList) Iter(callback func(thor.Address) error) error {
	ptr, err := l.head.Get()
	if err != nil {
		return err
	}

	for !ptr.IsZero() {
		if err := callback(ptr); err != nil {
			return err
		}

		next, err := l.next.Get(ptr)
		if err != nil {
			return err
		}
		ptr = next
	}

	return nil
}
