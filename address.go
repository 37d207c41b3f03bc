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

import "fmt"

// nodeID identifies a node in the tree's store. IDs are stable for the
// lifetime of the node; they are recycled after the node is released.
type nodeID int32

// nilNode is the absent-node sentinel, used for the empty tree's root and
// for the parent link of the root node.
const nilNode nodeID = -1

// Address identifies the current physical location of an item: the node
// holding it and the item's slot within that node. We write @node:slot.
//
// An address whose slot equals the node's item count does not refer to an
// item; it is a valid insertion point ("one past the end") and is what
// Search returns when the sought item is absent.
//
// An Address is valid from the moment it is produced until the next
// mutation (InsertAt, RemoveAt, Insert, Remove) anywhere in the tree;
// splits and merges can relocate items arbitrarily far from the mutation
// site. The only exception is the address returned by the mutation itself.
// Using a stale address is undefined.
type Address struct {
	node nodeID
	slot int
}

// nowhere is the invalid address, returned when no position exists (empty
// tree, stepping past either end).
func nowhere() Address { return Address{node: nilNode} }

// Valid reports whether a refers to a position in the tree. It does not
// (and cannot) detect staleness.
func (a Address) Valid() bool { return a.node != nilNode }

func (a Address) String() string {
	if !a.Valid() {
		return "@nowhere"
	}
	return fmt.Sprintf("@%d:%d", a.node, a.slot)
}
