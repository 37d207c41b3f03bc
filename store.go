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

// store owns every node of one tree. It is an index-based arena: nodes are
// addressed by nodeID, and ids of released nodes are kept on a free list
// and handed out again by the next alloc, so ids stay small and dense.
//
// get on an id that was never allocated, or that has been released and not
// reallocated, is a programming error; it is trapped by the runtime bounds
// check or surfaces as tree corruption, never as a recoverable error.
type store[T any] struct {
	nodes []*node[T]
	free  []nodeID
}

// alloc returns an empty node's id, reusing a released slot when one is
// available.
func (s *store[T]) alloc() nodeID {
	if index := len(s.free) - 1; index >= 0 {
		id := s.free[index]
		s.free = s.free[:index]
		return id
	}
	s.nodes = append(s.nodes, &node[T]{parent: nilNode})
	return nodeID(len(s.nodes) - 1)
}

func (s *store[T]) get(id nodeID) *node[T] {
	return s.nodes[id]
}

// release clears the node to allow GC of its items and recycles its id.
func (s *store[T]) release(id nodeID) {
	n := s.nodes[id]
	n.items.truncate(0)
	n.children.truncate(0)
	n.parent = nilNode
	s.free = append(s.free, id)
}

func (s *store[T]) reset() {
	s.nodes, s.free = nil, nil
}

// inUse returns the number of live (allocated, not released) nodes.
func (s *store[T]) inUse() int {
	return len(s.nodes) - len(s.free)
}
