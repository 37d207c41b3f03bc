// Copyright 2014-2022 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package btree

// ItemIterator allows callers of Ascend* and Descend* to iterate in-order
// over portions of the tree. When this function returns false, iteration
// stops and the associated function immediately returns.
type ItemIterator[T any] func(item T) bool

// Next returns the address of the in-order successor of addr, which may be
// an occupied or a one-past-the-end address. It returns (invalid, false)
// when addr has no successor. Read-only: no addresses are invalidated.
func (t *Tree[T]) Next(addr Address) (Address, bool) {
	if !addr.Valid() {
		return nowhere(), false
	}
	n := t.store.get(addr.node)
	switch {
	case addr.slot < len(n.items):
		addr.slot++
	case addr.slot > len(n.items):
		return nowhere(), false
	}
	for {
		n := t.store.get(addr.node)
		if !n.leaf() && addr.slot < len(n.children) {
			addr = Address{node: n.children[addr.slot], slot: 0}
			continue
		}
		for {
			n = t.store.get(addr.node)
			if addr.slot < len(n.items) {
				return addr, true
			}
			if n.parent == nilNode {
				return nowhere(), false
			}
			addr = Address{node: n.parent, slot: t.store.get(n.parent).childIndex(addr.node)}
		}
	}
}

// nextItemOrEnd is Next, except that when addr has no successor it returns
// the one-past-the-end address reached instead of giving up. RemoveAt uses
// it to keep a resumable position even when removing the maximum.
func (t *Tree[T]) nextItemOrEnd(addr Address) Address {
	n := t.store.get(addr.node)
	if addr.slot < len(n.items) {
		addr.slot++
	}
	shifted := addr
	for {
		n := t.store.get(addr.node)
		if !n.leaf() && addr.slot < len(n.children) {
			addr = Address{node: n.children[addr.slot], slot: 0}
			continue
		}
		for {
			n = t.store.get(addr.node)
			if addr.slot < len(n.items) {
				return addr
			}
			if n.parent == nilNode {
				return shifted
			}
			addr = Address{node: n.parent, slot: t.store.get(n.parent).childIndex(addr.node)}
		}
	}
}

// Prev returns the address of the in-order predecessor of the position
// named by addr, or (invalid, false) when there is none. addr may be a
// one-past-the-end address, which makes Prev the way to step back from an
// insertion point. Read-only.
func (t *Tree[T]) Prev(addr Address) (Address, bool) {
	if !addr.Valid() {
		return nowhere(), false
	}
	for {
		n := t.store.get(addr.node)
		if !n.leaf() && addr.slot >= 0 && addr.slot < len(n.children) {
			child := n.children[addr.slot]
			addr = Address{node: child, slot: len(t.store.get(child).items)}
			continue
		}
		for {
			if addr.slot > 0 {
				addr.slot--
				return addr, true
			}
			n := t.store.get(addr.node)
			if n.parent == nilNode {
				return nowhere(), false
			}
			addr = Address{node: n.parent, slot: t.store.get(n.parent).childIndex(addr.node)}
		}
	}
}

// AscendFrom calls iter for the item at addr (if occupied) and then for
// every following item in ascending order, until iter returns false or the
// tree's maximum has been visited. A one-past-the-end addr starts at the
// next item, so the not-found address from a Search ascends over
// everything greater than the missed key.
//
// The traversal reads live tree state; mutating the tree from inside iter
// is undefined.
func (t *Tree[T]) AscendFrom(addr Address, iter ItemIterator[T]) {
	ok := addr.Valid()
	for ok {
		if item, occupied := t.ItemAt(addr); occupied {
			if !iter(item) {
				return
			}
		}
		addr, ok = t.Next(addr)
	}
}

// DescendFrom is the mirror of AscendFrom: it calls iter for the item at
// addr (if occupied) and then for every preceding item in descending
// order.
func (t *Tree[T]) DescendFrom(addr Address, iter ItemIterator[T]) {
	ok := addr.Valid()
	for ok {
		if item, occupied := t.ItemAt(addr); occupied {
			if !iter(item) {
				return
			}
		}
		addr, ok = t.Prev(addr)
	}
}

// Ascend calls iter for every item in the tree in ascending order, until
// iter returns false.
func (t *Tree[T]) Ascend(iter ItemIterator[T]) {
	if addr, ok := t.Min(); ok {
		t.AscendFrom(addr, iter)
	}
}

// Descend calls iter for every item in the tree in descending order, until
// iter returns false.
func (t *Tree[T]) Descend(iter ItemIterator[T]) {
	if addr, ok := t.Max(); ok {
		t.DescendFrom(addr, iter)
	}
}
