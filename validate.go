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

import "github.com/pkg/errors"

// Validate checks every structural invariant of the tree (occupancy
// bounds, strict ordering within nodes and across separators, parent
// links, uniform leaf depth, item and node accounting) and returns a
// descriptive error naming the offending node for the first violation
// found. cmp must be a total order consistent with the comparators used to
// build the tree.
//
// Correct use of the tree can never make Validate fail; it exists as a
// diagnostic for tests and for layers that accept arbitrary caller
// comparators.
func (t *Tree[T]) Validate(cmp func(a, b T) int) error {
	if t.root == nilNode {
		if t.length != 0 {
			return errors.Errorf("empty tree reports length %d", t.length)
		}
		return nil
	}
	var count, nodes int
	if _, err := t.validateNode(cmp, t.root, nilNode, nil, nil, &count, &nodes); err != nil {
		return errors.Wrap(err, "btree")
	}
	if count != t.length {
		return errors.Errorf("tree reports length %d but holds %d items", t.length, count)
	}
	if used := t.store.inUse(); used != nodes {
		return errors.Errorf("store has %d live nodes but %d are reachable", used, nodes)
	}
	return nil
}

// validateNode checks the subtree rooted at id and returns its depth.
// min and max are the exclusive bounds inherited from ancestor separators;
// nil means unbounded on that side.
func (t *Tree[T]) validateNode(cmp func(a, b T) int, id, parent nodeID, min, max *T, count, nodes *int) (int, error) {
	n := t.store.get(id)
	*nodes++
	*count += len(n.items)

	if n.parent != parent {
		return 0, errors.Errorf("node %d: parent link is %d, want %d", id, n.parent, parent)
	}
	if parent == nilNode {
		if len(n.items) == 0 {
			return 0, errors.Errorf("node %d: empty root", id)
		}
	} else if len(n.items) < t.minItems() {
		return 0, errors.Errorf("node %d: underflow: %d items, minimum %d", id, len(n.items), t.minItems())
	}
	if len(n.items) > t.maxItems() {
		return 0, errors.Errorf("node %d: overflow: %d items, capacity %d", id, len(n.items), t.maxItems())
	}
	if !n.leaf() && len(n.children) != len(n.items)+1 {
		return 0, errors.Errorf("node %d: %d children for %d items", id, len(n.children), len(n.items))
	}
	for i := 1; i < len(n.items); i++ {
		if cmp(n.items[i-1], n.items[i]) >= 0 {
			return 0, errors.Errorf("node %d: items out of order at slot %d", id, i)
		}
	}
	if min != nil && cmp(n.items[0], *min) <= 0 {
		return 0, errors.Errorf("node %d: first item does not exceed the left separator", id)
	}
	if max != nil && cmp(n.items[len(n.items)-1], *max) >= 0 {
		return 0, errors.Errorf("node %d: last item is not below the right separator", id)
	}
	if n.leaf() {
		return 1, nil
	}

	depth := -1
	for i, c := range n.children {
		cmin, cmax := min, max
		if i > 0 {
			cmin = &n.items[i-1]
		}
		if i < len(n.items) {
			cmax = &n.items[i]
		}
		d, err := t.validateNode(cmp, c, id, cmin, cmax, count, nodes)
		if err != nil {
			return 0, err
		}
		if depth == -1 {
			depth = d
		} else if d != depth {
			return 0, errors.Errorf("node %d: child %d at depth %d, siblings at %d", id, c, d, depth)
		}
	}
	return depth + 1, nil
}
