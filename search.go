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

import "sort"

// CompareFunc positions a stored item relative to the place the caller is
// looking for. It returns a negative value when item orders before that
// place, zero when it matches, and a positive value when it orders after.
//
// A CompareFunc is typically a closure capturing the sought key:
//
//	addr, found := tr.Search(func(it entry) int {
//		return strings.Compare(it.key, "foo")
//	})
//
// The results must describe a total order consistent with the tree's
// current contents; the tree trusts them and never re-checks.
type CompareFunc[T any] func(item T) int

// find returns the index where an item matching cmp should be inserted
// into this list. 'found' is true if such an item already exists at the
// given index.
func (s items[T]) find(cmp CompareFunc[T]) (index int, found bool) {
	i := sort.Search(len(s), func(i int) bool {
		return cmp(s[i]) >= 0
	})
	if i < len(s) && cmp(s[i]) == 0 {
		return i, true
	}
	return i, false
}

// Search descends from the root looking for the position described by cmp.
//
// If a matching item exists, Search returns its address and true. Otherwise
// it returns the leaf insertion point at which an item matching cmp would
// have to be placed to preserve order, and false; that address is what
// InsertAt expects. On an empty tree the returned address is invalid.
//
// When several stored items compare equal, Search stops at the first match
// it meets on the way down; leftmost/rightmost duplicate selection is a
// concern of the layers above.
func (t *Tree[T]) Search(cmp CompareFunc[T]) (Address, bool) {
	if t.root == nilNode {
		return nowhere(), false
	}
	id := t.root
	for {
		n := t.store.get(id)
		i, found := n.items.find(cmp)
		if found {
			return Address{node: id, slot: i}, true
		}
		if n.leaf() {
			return Address{node: id, slot: i}, false
		}
		id = n.children[i]
	}
}
