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

// InsertAt inserts item at the given leaf insertion point and returns the
// item's final address after any splits.
//
// addr must be a not-found address produced by a Search whose comparator
// is consistent with the tree's current order, with no mutation in
// between. The tree does not re-validate the ordering; handing InsertAt an
// address that breaks it corrupts the tree silently. On an empty tree addr
// must be the invalid address Search returned.
//
// Every other outstanding address is invalidated by this call.
func (t *Tree[T]) InsertAt(addr Address, item T) Address {
	if !addr.Valid() {
		if t.root != nilNode {
			panic("btree: InsertAt with invalid address on non-empty tree")
		}
		id := t.store.alloc()
		n := t.store.get(id)
		n.items = append(n.items, item)
		t.root = id
		t.length++
		return Address{node: id, slot: 0}
	}
	n := t.store.get(addr.node)
	if !n.leaf() {
		panic("btree: InsertAt address must be a leaf slot")
	}
	n.items.insertAt(addr.slot, item)
	t.length++
	return t.splitUpward(addr)
}

// splitUpward walks from the node at addr toward the root, splitting every
// node that exceeds capacity and pushing the promoted separator into the
// parent. It keeps addr pointing at the same logical item while slots move
// between the left node, the new right sibling and the parent, and returns
// the adjusted address.
func (t *Tree[T]) splitUpward(addr Address) Address {
	id := addr.node
	for {
		n := t.store.get(id)
		if len(n.items) <= t.maxItems() {
			return addr
		}
		median, medianItem, rightID := t.split(id)
		parentID := n.parent
		if parentID == nilNode {
			// Root split: the tree grows a level.
			rootID := t.store.alloc()
			root := t.store.get(rootID)
			root.items = append(root.items, medianItem)
			root.children = append(root.children, id, rightID)
			t.store.get(id).parent = rootID
			t.store.get(rightID).parent = rootID
			t.root = rootID
			if addr.node == id {
				switch {
				case addr.slot == median:
					addr = Address{node: rootID, slot: 0}
				case addr.slot > median:
					addr = Address{node: rightID, slot: addr.slot - median - 1}
				}
			}
			return addr
		}
		parent := t.store.get(parentID)
		pos := parent.childIndex(id)
		parent.items.insertAt(pos, medianItem)
		parent.children.insertAt(pos+1, rightID)
		if addr.node == id {
			switch {
			case addr.slot == median:
				addr = Address{node: parentID, slot: pos}
			case addr.slot > median:
				addr = Address{node: rightID, slot: addr.slot - median - 1}
			}
		} else if addr.node == parentID && addr.slot >= pos {
			addr.slot++
		}
		id = parentID
	}
}

// split divides the overfull node id at its median. The median's index and
// item are returned along with the id of the freshly allocated right
// sibling, which receives everything after the median. The separator is
// not yet linked anywhere; the caller owns pushing it into the parent.
func (t *Tree[T]) split(id nodeID) (median int, item T, rightID nodeID) {
	n := t.store.get(id)
	median = (len(n.items) - 1) / 2
	item = n.items[median]
	rightID = t.store.alloc()
	right := t.store.get(rightID)
	right.parent = n.parent
	right.items = append(right.items, n.items[median+1:]...)
	n.items.truncate(median)
	if !n.leaf() {
		right.children = append(right.children, n.children[median+1:]...)
		n.children.truncate(median + 1)
		for _, c := range right.children {
			t.store.get(c).parent = rightID
		}
	}
	return median, item, rightID
}
