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

// items stores items in a node.
type items[T any] []T

// insertAt inserts a value into the given index, pushing all subsequent
// values forward.
func (s *items[T]) insertAt(index int, item T) {
	var zero T
	*s = append(*s, zero)
	if index < len(*s) {
		copy((*s)[index+1:], (*s)[index:])
	}
	(*s)[index] = item
}

// removeAt removes a value at a given index, pulling all subsequent values
// back.
func (s *items[T]) removeAt(index int) T {
	item := (*s)[index]
	copy((*s)[index:], (*s)[index+1:])
	var zero T
	(*s)[len(*s)-1] = zero
	*s = (*s)[:len(*s)-1]
	return item
}

// pop removes and returns the last element in the list.
func (s *items[T]) pop() (out T) {
	index := len(*s) - 1
	out = (*s)[index]
	var zero T
	(*s)[index] = zero
	*s = (*s)[:index]
	return
}

// truncate truncates this instance at index so that it contains only the
// first index items. index must be less than or equal to length.
func (s *items[T]) truncate(index int) {
	var toClear items[T]
	*s, toClear = (*s)[:index], (*s)[index:]
	var zero T
	for i := 0; i < len(toClear); i++ {
		toClear[i] = zero
	}
}

// node is a single node in the tree, holding an ordered sequence of items
// and, for internal nodes, one more child id than items.
//
// It must at all times maintain the invariant that either
//   - len(children) == 0 (leaf), or
//   - len(children) == len(items) + 1 (internal).
//
// Nodes refer to each other only by store id, never by pointer; the parent
// link is what lets rebalancing and traversal walk upward without keeping
// an explicit ancestor stack.
type node[T any] struct {
	parent   nodeID
	items    items[T]
	children items[nodeID]
}

func (n *node[T]) leaf() bool { return len(n.children) == 0 }

// childIndex returns the position of id among n's children, or -1 if id is
// not a child of n.
func (n *node[T]) childIndex(id nodeID) int {
	for i, c := range n.children {
		if c == id {
			return i
		}
	}
	return -1
}
