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

import (
	"bytes"
	"flag"
	"math/rand"
	"strings"
	"testing"

	"github.com/petar/GoLLRB/llrb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var btreeDegree = flag.Int("degree", 32, "B-Tree degree")

func intRange(s int, reverse bool) []int {
	out := make([]int, s)
	for i := 0; i < s; i++ {
		v := i
		if reverse {
			v = s - i - 1
		}
		out[i] = v
	}
	return out
}

func allItems[T any](tr *Tree[T]) (out []T) {
	tr.Ascend(func(a T) bool {
		out = append(out, a)
		return true
	})
	return
}

func allItemsRev[T any](tr *Tree[T]) (out []T) {
	tr.Descend(func(a T) bool {
		out = append(out, a)
		return true
	})
	return
}

// depthOf counts levels along the leftmost spine; Validate separately
// guarantees every path has the same length.
func depthOf[T any](tr *Tree[T]) int {
	if tr.root == nilNode {
		return 0
	}
	d := 1
	id := tr.root
	for {
		n := tr.store.get(id)
		if n.leaf() {
			return d
		}
		id = n.children[0]
		d++
	}
}

func dumpString[T any](tr *Tree[T]) string {
	var buf bytes.Buffer
	tr.dump(&buf)
	return buf.String()
}

func TestTree(t *testing.T) {
	tr := New[int](*btreeDegree)
	const treeSize = 100
	for i := 0; i < 10; i++ {
		if _, ok := tr.Min(); ok {
			t.Fatal("expected no min on empty tree")
		}
		if _, ok := tr.Max(); ok {
			t.Fatal("expected no max on empty tree")
		}
		for _, item := range rand.Perm(treeSize) {
			if _, replaced := tr.Insert(item, Compare[int]); replaced {
				t.Fatal("insert found item", item)
			}
		}
		for _, item := range rand.Perm(treeSize) {
			if old, replaced := tr.Insert(item, Compare[int]); !replaced || old != item {
				t.Fatal("insert didn't find item", item)
			}
		}
		addr, ok := tr.Min()
		require.True(t, ok)
		if min, _ := tr.ItemAt(addr); min != 0 {
			t.Fatalf("min: want 0, got %v", min)
		}
		addr, ok = tr.Max()
		require.True(t, ok)
		if max, _ := tr.ItemAt(addr); max != treeSize-1 {
			t.Fatalf("max: want %v, got %v", treeSize-1, max)
		}
		require.Equal(t, intRange(treeSize, false), allItems(tr))
		require.Equal(t, intRange(treeSize, true), allItemsRev(tr))
		require.NoError(t, tr.Validate(Compare[int]))

		for _, item := range rand.Perm(treeSize) {
			if got, removed := tr.Remove(Key(item)); !removed || got != item {
				t.Fatalf("didn't find %v", item)
			}
		}
		if !tr.IsEmpty() || tr.Len() != 0 {
			t.Fatalf("expected empty tree, len %d", tr.Len())
		}
	}
}

func TestSearch(t *testing.T) {
	tr := New[int](3)
	for _, v := range rand.Perm(100) {
		tr.Insert(v*2, Compare[int]) // all evens 0..198
	}
	for v := 0; v < 200; v++ {
		addr, found := tr.Search(Key(v))
		if v%2 == 0 {
			require.True(t, found, "search(%d)", v)
			item, ok := tr.ItemAt(addr)
			require.True(t, ok)
			require.Equal(t, v, item)
		} else {
			require.False(t, found, "search(%d)", v)
		}
	}
	// A not-found address is the order-preserving insertion point.
	for _, v := range []int{-1, 73, 199} {
		addr, found := tr.Search(Key(v))
		require.False(t, found)
		tr.InsertAt(addr, v)
		require.NoError(t, tr.Validate(Compare[int]))
		tr.Remove(Key(v))
	}
	require.Equal(t, 100, tr.Len())
}

func TestSearchEmpty(t *testing.T) {
	tr := New[int](2)
	addr, found := tr.Search(Key(7))
	require.False(t, found)
	require.False(t, addr.Valid())
	got := tr.InsertAt(addr, 7)
	item, ok := tr.ItemAt(got)
	require.True(t, ok)
	require.Equal(t, 7, item)
	require.Equal(t, 1, tr.Len())
}

func TestLenTracking(t *testing.T) {
	tr := New[int](2)
	require.True(t, tr.IsEmpty())
	require.Equal(t, 0, tr.Len())
	for i, v := range rand.Perm(50) {
		tr.Insert(v, Compare[int])
		require.Equal(t, i+1, tr.Len())
	}
	tr.Insert(10, Compare[int]) // replacement, no growth
	require.Equal(t, 50, tr.Len())
	for i, v := range rand.Perm(50) {
		_, removed := tr.Remove(Key(v))
		require.True(t, removed)
		require.Equal(t, 49-i, tr.Len())
	}
	require.True(t, tr.IsEmpty())
}

// TestRoundTripShape inserts into leaves that have slack, then removes via
// the returned address, and expects the exact node layout back.
func TestRoundTripShape(t *testing.T) {
	tr := New[int](3)
	for v := 10; v <= 100; v += 10 {
		tr.Insert(v, Compare[int])
	}
	require.NoError(t, tr.Validate(Compare[int]))
	before := dumpString(tr)
	lenBefore := tr.Len()
	nodesBefore := tr.store.inUse()

	for _, v := range []int{15, 55, 75} {
		addr, found := tr.Search(Key(v))
		require.False(t, found)
		got := tr.InsertAt(addr, v)
		item, ok := tr.ItemAt(got)
		require.True(t, ok)
		require.Equal(t, v, item)

		removed, _ := tr.RemoveAt(got)
		require.Equal(t, v, removed)
		require.Equal(t, lenBefore, tr.Len())
		require.Equal(t, nodesBefore, tr.store.inUse())
		require.Equal(t, before, dumpString(tr))
		require.NoError(t, tr.Validate(Compare[int]))
	}
}

// TestRoundTripContents allows splits and merges; only contents and count
// must be restored.
func TestRoundTripContents(t *testing.T) {
	tr := New[int](2)
	for _, v := range rand.Perm(60) {
		tr.Insert(v*2, Compare[int])
	}
	want := allItems(tr)
	for v := 1; v < 120; v += 2 {
		addr, found := tr.Search(Key(v))
		require.False(t, found)
		got := tr.InsertAt(addr, v)
		removed, _ := tr.RemoveAt(got)
		require.Equal(t, v, removed)
		require.NoError(t, tr.Validate(Compare[int]))
	}
	require.Equal(t, want, allItems(tr))
}

func TestReplaceAt(t *testing.T) {
	type entry struct {
		key string
		val int
	}
	byKey := func(key string) CompareFunc[entry] {
		return func(e entry) int { return strings.Compare(e.key, key) }
	}
	tr := New[entry](2)
	for _, k := range []string{"d", "b", "f", "a", "c", "e", "g"} {
		tr.Insert(entry{key: k}, func(a, b entry) int { return strings.Compare(a.key, b.key) })
	}
	addr, found := tr.Search(byKey("e"))
	require.True(t, found)
	old := tr.ReplaceAt(addr, entry{key: "e", val: 42})
	require.Equal(t, entry{key: "e"}, old)
	got, ok := tr.Get(byKey("e"))
	require.True(t, ok)
	require.Equal(t, 42, got.val)
	require.Equal(t, 7, tr.Len())
}

func TestClone(t *testing.T) {
	tr := New[int](2)
	for _, v := range rand.Perm(100) {
		tr.Insert(v, Compare[int])
	}
	c := tr.Clone()
	require.Equal(t, allItems(tr), allItems(c))
	require.NoError(t, c.Validate(Compare[int]))

	// Mutations do not leak between the trees.
	tr.Remove(Key(10))
	c.Insert(1000, Compare[int])
	require.Equal(t, 99, tr.Len())
	require.Equal(t, 101, c.Len())
	_, found := tr.Search(Key(1000))
	require.False(t, found)
	_, found = c.Search(Key(10))
	require.True(t, found)
	require.NoError(t, tr.Validate(Compare[int]))
	require.NoError(t, c.Validate(Compare[int]))
}

func TestClear(t *testing.T) {
	tr := New[int](2)
	for _, v := range rand.Perm(40) {
		tr.Insert(v, Compare[int])
	}
	tr.Clear()
	require.True(t, tr.IsEmpty())
	require.Equal(t, 0, tr.Len())
	require.Equal(t, 0, tr.store.inUse())
	tr.Insert(1, Compare[int])
	require.Equal(t, 1, tr.Len())
}

func TestBadDegree(t *testing.T) {
	assert.Panics(t, func() { New[int](1) })
	assert.Panics(t, func() { New[int](0) })
}

func TestNodeReuse(t *testing.T) {
	tr := New[int](2)
	for i := 0; i < 100; i++ {
		tr.Insert(i, Compare[int])
	}
	grown := len(tr.store.nodes)
	for i := 0; i < 100; i++ {
		tr.Remove(Key(i))
	}
	for i := 0; i < 100; i++ {
		tr.Insert(i, Compare[int])
	}
	// Released ids are handed out again before the arena grows.
	require.Equal(t, grown, len(tr.store.nodes))
	require.NoError(t, tr.Validate(Compare[int]))
}

func TestMixedWorkload(t *testing.T) {
	const ops = 10000
	rng := rand.New(rand.NewSource(42))
	tr := New[int](3)
	ref := llrb.New()

	for i := 0; i < ops; i++ {
		v := rng.Intn(500)
		if rng.Intn(2) == 0 {
			_, replaced := tr.Insert(v, Compare[int])
			old := ref.ReplaceOrInsert(llrb.Int(v))
			require.Equal(t, old != nil, replaced, "op %d: insert %d", i, v)
		} else {
			got, removed := tr.Remove(Key(v))
			old := ref.Delete(llrb.Int(v))
			require.Equal(t, old != nil, removed, "op %d: remove %d", i, v)
			if removed {
				require.Equal(t, v, got)
			}
		}
		require.Equal(t, ref.Len(), tr.Len(), "op %d", i)
		if i%97 == 0 {
			require.NoError(t, tr.Validate(Compare[int]), "op %d", i)
		}
	}
	require.NoError(t, tr.Validate(Compare[int]))

	var want []int
	// llrb.Int.Less type-asserts its argument to llrb.Int, so the Inf(-1)
	// sentinel cannot be used as a pivot here; any Int below the inserted
	// range iterates the whole tree.
	ref.AscendGreaterOrEqual(llrb.Int(-1), func(i llrb.Item) bool {
		want = append(want, int(i.(llrb.Int)))
		return true
	})
	require.Equal(t, want, allItems(tr))
}

const benchmarkTreeSize = 10000

func BenchmarkInsert(b *testing.B) {
	b.StopTimer()
	insertP := rand.Perm(benchmarkTreeSize)
	b.StartTimer()
	i := 0
	for i < b.N {
		tr := New[int](*btreeDegree)
		for _, item := range insertP {
			tr.Insert(item, Compare[int])
			i++
			if i >= b.N {
				return
			}
		}
	}
}

func BenchmarkSearch(b *testing.B) {
	b.StopTimer()
	insertP := rand.Perm(benchmarkTreeSize)
	tr := New[int](*btreeDegree)
	for _, item := range insertP {
		tr.Insert(item, Compare[int])
	}
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		tr.Search(Key(insertP[i%benchmarkTreeSize]))
	}
}

func BenchmarkDeleteInsert(b *testing.B) {
	b.StopTimer()
	insertP := rand.Perm(benchmarkTreeSize)
	tr := New[int](*btreeDegree)
	for _, item := range insertP {
		tr.Insert(item, Compare[int])
	}
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		item := insertP[i%benchmarkTreeSize]
		tr.Remove(Key(item))
		tr.Insert(item, Compare[int])
	}
}
