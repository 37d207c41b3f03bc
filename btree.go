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

// Package btree implements a raw, comparison-driven in-memory B-Tree.
//
// The tree does not know what a key or a value is: it stores opaque items
// of a single type T and consumes a caller-supplied three-way comparator on
// every keyed operation. No comparator is stored on the tree, so the same
// tree can be probed with different comparison logic in different calls:
// by key, by full entry, or by prefix. That is what makes it a usable core
// for maps, sets and multisets built on top.
//
// The second thing that sets it apart from an ordinary ordered container is
// addressing. Search does not return an item, it returns an Address: the
// (node, slot) position where the item lives, or where it would have to be
// inserted. Addresses are the tree's cursors; InsertAt and RemoveAt mutate
// at an address without searching again, Next and Prev step between
// neighboring addresses, and AscendFrom/DescendFrom iterate from one. An
// address stays usable only until the next mutation anywhere in the tree;
// the address returned by that mutation is the single safe exception.
//
// Within this tree, each node contains a slice of items and a (possibly
// empty) slice of child ids. Nodes live in an index-based arena owned by
// the tree, so sibling and parent relations are plain ids rather than
// mutually referencing pointers.
//
// The tree is not safe for concurrent use; the caller arbitrates access.
// Mutations are in place. This is not a copy-on-write structure.
package btree

import (
	"fmt"
	"io"
	"strings"
)

// Tree is a raw B-Tree of items of type T.
//
// The zero value is not usable; create trees with New.
type Tree[T any] struct {
	degree int
	length int
	root   nodeID
	store  store[T]
}

// New creates an empty tree with the given degree.
//
// New[T](2), for example, creates a 2-3-4 tree: each node contains 1-3
// items and 2-4 children. In general a node holds at most 2*degree-1 items,
// and every node but the root holds at least degree-1. The degree is fixed
// for the lifetime of the tree.
func New[T any](degree int) *Tree[T] {
	if degree < 2 {
		panic("bad degree")
	}
	return &Tree[T]{degree: degree, root: nilNode}
}

// maxItems returns the max number of items to allow per node.
func (t *Tree[T]) maxItems() int {
	return t.degree*2 - 1
}

// minItems returns the min number of items to allow per node (ignored for
// the root node).
func (t *Tree[T]) minItems() int {
	return t.degree - 1
}

// Len returns the number of items currently in the tree.
func (t *Tree[T]) Len() int {
	return t.length
}

// IsEmpty reports whether the tree holds no items.
func (t *Tree[T]) IsEmpty() bool {
	return t.root == nilNode
}

// Degree returns the branching factor the tree was created with.
func (t *Tree[T]) Degree() int {
	return t.degree
}

// Min returns the address of the smallest item in the tree, or an invalid
// address if the tree is empty.
func (t *Tree[T]) Min() (Address, bool) {
	if t.root == nilNode {
		return nowhere(), false
	}
	id := t.root
	for {
		n := t.store.get(id)
		if n.leaf() {
			return Address{node: id, slot: 0}, true
		}
		id = n.children[0]
	}
}

// Max returns the address of the largest item in the tree, or an invalid
// address if the tree is empty.
func (t *Tree[T]) Max() (Address, bool) {
	if t.root == nilNode {
		return nowhere(), false
	}
	id := t.root
	for {
		n := t.store.get(id)
		if n.leaf() {
			return Address{node: id, slot: len(n.items) - 1}, true
		}
		id = n.children[len(n.children)-1]
	}
}

// ItemAt returns the item at the given address. It returns (zero, false)
// when the address is invalid or points one past the end of a node.
func (t *Tree[T]) ItemAt(addr Address) (_ T, _ bool) {
	if !addr.Valid() {
		return
	}
	n := t.store.get(addr.node)
	if addr.slot < 0 || addr.slot >= len(n.items) {
		return
	}
	return n.items[addr.slot], true
}

// ReplaceAt overwrites the item at the given occupied address in place and
// returns the previous item. The replacement must compare equal to the item
// it replaces under every comparator the caller will use afterward; the
// tree does not re-sort.
func (t *Tree[T]) ReplaceAt(addr Address, item T) T {
	n := t.store.get(addr.node)
	out := n.items[addr.slot]
	n.items[addr.slot] = item
	return out
}

// Get searches for an item with the given comparator and returns it.
// It returns (zero, false) if no item compares equal.
func (t *Tree[T]) Get(cmp CompareFunc[T]) (_ T, _ bool) {
	addr, found := t.Search(cmp)
	if !found {
		return
	}
	return t.ItemAt(addr)
}

// Insert adds item to the tree, ordered by the two-argument comparator cmp.
// If an item comparing equal is already present it is replaced and
// returned, with the second return value true. Otherwise (zero, false).
//
// cmp must implement a total order consistent with every comparator
// previously used to mutate this tree.
func (t *Tree[T]) Insert(item T, cmp func(a, b T) int) (_ T, _ bool) {
	addr, found := t.Search(func(x T) int { return cmp(x, item) })
	if found {
		return t.ReplaceAt(addr, item), true
	}
	t.InsertAt(addr, item)
	return
}

// Remove searches with cmp and removes the matching item, returning it.
// If no item compares equal, it returns (zero, false).
func (t *Tree[T]) Remove(cmp CompareFunc[T]) (_ T, _ bool) {
	addr, found := t.Search(cmp)
	if !found {
		return
	}
	out, _ := t.RemoveAt(addr)
	return out, true
}

// Clear removes all items from the tree and releases every node back to
// the runtime. All outstanding addresses are invalidated.
func (t *Tree[T]) Clear() {
	t.root = nilNode
	t.length = 0
	t.store.reset()
}

// Clone returns a structural copy of the tree in a fresh store. Items are
// copied by assignment; node ids and addresses of the original do not carry
// over to the clone.
func (t *Tree[T]) Clone() *Tree[T] {
	c := New[T](t.degree)
	if t.root == nilNode {
		return c
	}
	c.length = t.length
	c.root = c.cloneSubtree(&t.store, t.root, nilNode)
	return c
}

func (c *Tree[T]) cloneSubtree(src *store[T], id, parent nodeID) nodeID {
	n := src.get(id)
	cid := c.store.alloc()
	cn := c.store.get(cid)
	cn.parent = parent
	cn.items = append(cn.items, n.items...)
	for _, child := range n.children {
		cn.children = append(cn.children, c.cloneSubtree(src, child, cid))
	}
	return cid
}

// dump is used for testing/debugging purposes.
func (t *Tree[T]) dump(w io.Writer) {
	if t.root != nilNode {
		t.dumpNode(w, t.root, 0)
	}
}

func (t *Tree[T]) dumpNode(w io.Writer, id nodeID, level int) {
	n := t.store.get(id)
	fmt.Fprintf(w, "%sNODE:%v\n", strings.Repeat("  ", level), n.items)
	for _, c := range n.children {
		t.dumpNode(w, c, level+1)
	}
}
