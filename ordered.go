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

import "golang.org/x/exp/constraints"

// Key returns a CompareFunc that locates key in a tree whose items are the
// keys themselves, using the '<' operator.
func Key[T constraints.Ordered](key T) CompareFunc[T] {
	return func(item T) int {
		switch {
		case item < key:
			return -1
		case item > key:
			return 1
		}
		return 0
	}
}

// Compare is a two-argument comparator for types that support the '<'
// operator, usable with Insert and Validate.
func Compare[T constraints.Ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
