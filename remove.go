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

// RemoveAt removes the item at the given occupied address and rebalances.
// It returns the removed item together with the post-rebalance address of
// the removed item's in-order successor. The successor address may point
// one past the end of a node (when the removed item was a node's last),
// and is invalid only when the removed item was the tree's maximum or the
// tree became empty.
//
// The successor address is the documented safe exception to address
// invalidation: it is the position to resume from when deleting while
// iterating forward. Every other outstanding address is invalidated.
func (t *Tree[T]) RemoveAt(addr Address) (T, Address) {
	if !addr.Valid() {
		panic("btree: RemoveAt with invalid address")
	}
	n := t.store.get(addr.node)
	if addr.slot < 0 || addr.slot >= len(n.items) {
		panic("btree: RemoveAt address does not hold an item")
	}
	if n.leaf() {
		out := n.items.removeAt(addr.slot)
		t.length--
		// addr now names the successor slot in the same leaf (or one
		// past its end); rebalancing keeps it pointed there.
		return out, t.rebalance(addr.node, addr)
	}

	// An internal item separates two subtrees and cannot simply vacate.
	// Record where its successor lives, pull up the in-order predecessor
	// (rightmost item of the left child subtree) into the vacated slot,
	// and rebalance from the leaf that lost an item.
	succ := t.nextItemOrEnd(addr)
	sep, leafID := t.removeRightmostLeaf(n.children[addr.slot])
	out := n.items[addr.slot]
	n.items[addr.slot] = sep
	t.length--
	return out, t.rebalance(leafID, succ)
}

// removeRightmostLeaf descends to the rightmost leaf under id, removes its
// last item and returns it along with the leaf's id.
func (t *Tree[T]) removeRightmostLeaf(id nodeID) (T, nodeID) {
	for {
		n := t.store.get(id)
		if n.leaf() {
			return n.items.pop(), id
		}
		id = n.children[len(n.children)-1]
	}
}

// rebalance repairs an underflow at node id, walking upward as merges
// shrink the parent. addr is carried through every rotation and merge so
// that it keeps naming the same logical position, and is returned
// adjusted. Borrowing from a sibling is tried before merging; a root left
// with no items collapses into its only child, shrinking the tree by a
// level.
func (t *Tree[T]) rebalance(id nodeID, addr Address) Address {
	for {
		n := t.store.get(id)
		if len(n.items) >= t.minItems() {
			return addr
		}
		parentID := n.parent
		if parentID == nilNode {
			// The root may run arbitrarily low; only an empty root
			// is collapsed.
			if len(n.items) > 0 {
				return addr
			}
			if n.leaf() {
				t.store.release(id)
				t.root = nilNode
				return nowhere()
			}
			child := n.children[0]
			c := t.store.get(child)
			c.parent = nilNode
			t.root = child
			if addr.node == id {
				addr = Address{node: child, slot: len(c.items)}
			}
			t.store.release(id)
			return addr
		}
		pos := t.store.get(parentID).childIndex(id)
		if t.rotateLeft(parentID, pos, &addr) || t.rotateRight(parentID, pos, &addr) {
			return addr
		}
		addr = t.mergeChild(parentID, pos, addr)
		id = parentID
	}
}

// rotateLeft borrows the right sibling's first item for the deficient
// child at index pos, rotating it through the parent separator. It reports
// whether the rotation happened; it does not when there is no right
// sibling or the sibling cannot spare an item.
func (t *Tree[T]) rotateLeft(parentID nodeID, pos int, addr *Address) bool {
	parent := t.store.get(parentID)
	if pos+1 >= len(parent.children) {
		return false
	}
	rightID := parent.children[pos+1]
	right := t.store.get(rightID)
	if len(right.items) <= t.minItems() {
		return false
	}
	childID := parent.children[pos]
	child := t.store.get(childID)

	moved := right.items.removeAt(0)
	movedChild := nilNode
	if !right.leaf() {
		movedChild = right.children.removeAt(0)
	}
	parent.items[pos], moved = moved, parent.items[pos]
	child.items = append(child.items, moved)
	slot := len(child.items) - 1
	if movedChild != nilNode {
		child.children = append(child.children, movedChild)
		t.store.get(movedChild).parent = childID
	}

	switch addr.node {
	case rightID:
		if addr.slot == 0 {
			*addr = Address{node: parentID, slot: pos}
		} else {
			addr.slot--
		}
	case parentID:
		if addr.slot == pos {
			*addr = Address{node: childID, slot: slot}
		}
	}
	return true
}

// rotateRight borrows the left sibling's last item for the deficient child
// at index pos. Mirror of rotateLeft.
func (t *Tree[T]) rotateRight(parentID nodeID, pos int, addr *Address) bool {
	if pos == 0 {
		return false
	}
	parent := t.store.get(parentID)
	leftID := parent.children[pos-1]
	left := t.store.get(leftID)
	if len(left.items) <= t.minItems() {
		return false
	}
	childID := parent.children[pos]
	child := t.store.get(childID)
	pivot := pos - 1

	slot := len(left.items) - 1
	moved := left.items.pop()
	movedChild := nilNode
	if !left.leaf() {
		movedChild = left.children.pop()
	}
	parent.items[pivot], moved = moved, parent.items[pivot]
	child.items.insertAt(0, moved)
	if movedChild != nilNode {
		child.children.insertAt(0, movedChild)
		t.store.get(movedChild).parent = childID
	}

	switch addr.node {
	case childID:
		addr.slot++
	case leftID:
		if addr.slot == slot {
			*addr = Address{node: parentID, slot: pivot}
		}
	case parentID:
		if addr.slot == pivot {
			*addr = Address{node: childID, slot: 0}
		}
	}
	return true
}

// mergeChild merges the deficient child at index pos with a sibling and
// the separator between them, preferring the left sibling as the surviving
// node. The right node is released. The caller re-checks the parent, which
// may itself have underflowed.
func (t *Tree[T]) mergeChild(parentID nodeID, pos int, addr Address) Address {
	sep := pos
	if pos > 0 {
		sep = pos - 1
	}
	parent := t.store.get(parentID)
	leftID := parent.children[sep]
	rightID := parent.children[sep+1]
	sepItem := parent.items.removeAt(sep)
	parent.children.removeAt(sep + 1)

	left := t.store.get(leftID)
	right := t.store.get(rightID)
	slot := len(left.items)
	left.items = append(left.items, sepItem)
	left.items = append(left.items, right.items...)
	for _, c := range right.children {
		t.store.get(c).parent = leftID
	}
	left.children = append(left.children, right.children...)
	t.store.release(rightID)

	if addr.node == parentID {
		switch {
		case addr.slot == sep:
			addr = Address{node: leftID, slot: slot}
		case addr.slot > sep:
			addr.slot--
		}
	} else if addr.node == rightID {
		addr = Address{node: leftID, slot: addr.slot + slot + 1}
	}
	return addr
}
