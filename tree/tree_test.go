// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package tree_test

import (
	"slices"
	"testing"

	"github.com/blockpool-go/blockpool/internal/abort"
	"github.com/blockpool-go/blockpool/tree"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestGetInsertRemove(t *testing.T) {
	tr := tree.New[int, string](4, 2)
	defer tr.Close()

	_, ok := tr.Get(5)
	require.False(t, ok)

	old, existed := tr.Insert(5, "five")
	require.False(t, existed)
	require.Equal(t, "", old)
	require.Equal(t, 1, tr.Len())

	v, ok := tr.Get(5)
	require.True(t, ok)
	require.Equal(t, "five", v)

	old, existed = tr.Insert(5, "FIVE")
	require.True(t, existed)
	require.Equal(t, "five", old)
	require.Equal(t, 1, tr.Len())

	v, removed := tr.Remove(5)
	require.True(t, removed)
	require.Equal(t, "FIVE", v)
	require.Equal(t, 0, tr.Len())
	require.True(t, tr.IsEmpty())

	_, removed = tr.Remove(5)
	require.False(t, removed)
}

// TestInsertRemoveSequence inserts a scattered batch of keys, removes a
// subset out of order, and checks Len against a plain map after the inserts
// and after the removals, then checks Get for every key.
func TestInsertRemoveSequence(t *testing.T) {
	tr := tree.New[int, int](4, 2)
	defer tr.Close()

	model := map[int]int{}
	for _, k := range []int{40, 10, 70, 20, 60, 30, 50} {
		tr.Insert(k, k*10)
		model[k] = k * 10
	}
	require.Equal(t, len(model), tr.Len())

	for _, k := range []int{70, 10, 50} {
		v, ok := tr.Remove(k)
		require.True(t, ok)
		require.Equal(t, model[k], v)
		delete(model, k)
	}
	require.Equal(t, len(model), tr.Len())

	for k, want := range model {
		v, ok := tr.Get(k)
		require.True(t, ok)
		require.Equal(t, want, v)
	}
	for _, k := range []int{70, 10, 50} {
		_, ok := tr.Get(k)
		require.False(t, ok)
	}
}

func sortedPairs(keys []int) (int, func(func(int, int) bool)) {
	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	return len(sorted), func(yield func(int, int) bool) {
		for _, k := range sorted {
			if !yield(k, k*10) {
				return
			}
		}
	}
}

// TestFromSortedBuild builds a tree directly from a sorted sequence and
// checks that Len, Get and forward iteration return every binding.
func TestFromSortedBuild(t *testing.T) {
	keys := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	n, seq := sortedPairs(keys)
	tr := tree.FromSorted[int, int](n, seq)
	defer tr.Close()

	require.Equal(t, len(keys), tr.Len())
	for _, k := range keys {
		v, ok := tr.Get(k)
		require.True(t, ok)
		require.Equal(t, k*10, v)
	}
	_, ok := tr.Get(999)
	require.False(t, ok)

	var got []int
	it := tr.Iter()
	for {
		k, _, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, k)
	}
	require.Equal(t, keys, got)
}

// TestFromSortedRejectsUnsortedInput feeds a non-ascending sequence and
// requires the build to abort rather than produce a malformed tree.
func TestFromSortedRejectsUnsortedInput(t *testing.T) {
	seq := func(yield func(int, int) bool) {
		yield(1, 10)
		yield(3, 30)
		yield(2, 20)
	}
	require.PanicsWithValue(t, abort.UnsortedInput, func() {
		tree.FromSorted[int, int](3, seq)
	})
}

// TestFromSortedRejectsDuplicateKeys feeds a sequence with a repeated key,
// which violates strict ordering just as a descending key would.
func TestFromSortedRejectsDuplicateKeys(t *testing.T) {
	seq := func(yield func(int, int) bool) {
		yield(1, 10)
		yield(1, 11)
	}
	require.PanicsWithValue(t, abort.UnsortedInput, func() {
		tree.FromSorted[int, int](2, seq)
	})
}

// TestIterInterleavedFused alternates Next and NextBack and checks every
// key is yielded exactly once regardless of the interleaving.
func TestIterInterleavedFused(t *testing.T) {
	keys := []int{1, 2, 3, 4, 5, 6, 7}
	n, seq := sortedPairs(keys)
	tr := tree.FromSorted[int, int](n, seq)
	defer tr.Close()

	it := tr.Iter()
	var seen []int

	k, _, ok := it.Next()
	require.True(t, ok)
	seen = append(seen, k)

	k, _, ok = it.NextBack()
	require.True(t, ok)
	seen = append(seen, k)

	k, _, ok = it.NextBack()
	require.True(t, ok)
	seen = append(seen, k)

	k, _, ok = it.Next()
	require.True(t, ok)
	seen = append(seen, k)

	for {
		k, _, ok := it.Next()
		if !ok {
			break
		}
		seen = append(seen, k)
	}
	_, _, ok = it.NextBack()
	require.False(t, ok)
	_, _, ok = it.Next()
	require.False(t, ok)

	slices.Sort(seen)
	require.Equal(t, keys, seen)
}

// TestFindExcludesHiBoundary checks that Find's range is half-open: a key
// exactly equal to hi is excluded, from both Next and NextBack.
func TestFindExcludesHiBoundary(t *testing.T) {
	keys := []int{1, 2, 3, 4, 5}
	n, seq := sortedPairs(keys)
	tr := tree.FromSorted[int, int](n, seq)
	defer tr.Close()

	lo, hi := 1, 5
	it := tr.Find(&lo, &hi)

	var got []int
	for {
		k, _, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, k)
	}
	require.Equal(t, []int{1, 2, 3, 4}, got)

	it2 := tr.Find(&lo, &hi)
	k, _, ok := it2.NextBack()
	require.True(t, ok)
	require.Equal(t, 4, k)
}

// TestFindPrunedLeafBelowLo is a regression test for a lower-bound pruning
// defect: descending past an internal routing node whose key is <= lo can
// land on that node's right-child leaf, whose own key is still < lo. Both
// Next and NextBack must still exclude it.
func TestFindPrunedLeafBelowLo(t *testing.T) {
	keys := []int{1, 3, 5, 7, 9, 11, 13, 15}
	n, seq := sortedPairs(keys)
	tr := tree.FromSorted[int, int](n, seq)
	defer tr.Close()

	lo, hi := 4, 12
	it := tr.Find(&lo, &hi)
	k, _, ok := it.Next()
	require.True(t, ok)
	require.Equal(t, 5, k, "leaf with key 3 must be pruned, not yielded")

	lo2, hi2 := 4, 4
	it2 := tr.Find(&lo2, &hi2)
	_, _, ok = it2.Next()
	require.False(t, ok, "empty half-open range must yield nothing")
	_, _, ok = it2.NextBack()
	require.False(t, ok)
}

// TestFindRange checks range iteration against an interleaved traversal,
// confirming bounds are respected from both ends.
func TestFindRange(t *testing.T) {
	keys := []int{1, 3, 5, 7, 9, 11, 13, 15}
	n, seq := sortedPairs(keys)
	tr := tree.FromSorted[int, int](n, seq)
	defer tr.Close()

	lo, hi := 4, 12
	it := tr.Find(&lo, &hi)

	var seen []int
	for {
		k, _, ok := it.Next()
		if !ok {
			break
		}
		seen = append(seen, k)
	}
	require.Equal(t, []int{5, 7, 9, 11}, seen)

	it2 := tr.Find(&lo, &hi)
	var fwd, back []int
	for i := 0; ; i++ {
		if i%2 == 0 {
			k, _, ok := it2.Next()
			if !ok {
				break
			}
			fwd = append(fwd, k)
		} else {
			k, _, ok := it2.NextBack()
			if !ok {
				break
			}
			back = append(back, k)
		}
	}
	slices.Reverse(back)
	all := append(fwd, back...)
	slices.Sort(all)
	require.Equal(t, []int{5, 7, 9, 11}, all)
}

type dropCounter struct {
	n *int
}

func (d dropCounter) Drop() { *d.n++ }

// TestCloseDropsEveryValue inserts several values whose Drop increments a
// shared counter, then closes the tree and checks the counter reflects
// every binding exactly once.
func TestCloseDropsEveryValue(t *testing.T) {
	tr := tree.New[int, dropCounter](4, 2)
	var count int
	for _, k := range []int{5, 2, 8, 1, 9, 3, 7} {
		tr.Insert(k, dropCounter{n: &count})
	}
	tr.Close()
	require.Equal(t, 7, count)
}

func TestRapidSearchTreeModel(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tr := tree.New[int, int](
			rapid.IntRange(2, 8).Draw(t, "blockSize"),
			rapid.IntRange(1, 4).Draw(t, "blocksCap"),
		)
		model := map[int]int{}

		t.Repeat(map[string]func(*rapid.T){
			"insert": func(t *rapid.T) {
				k := rapid.IntRange(0, 50).Draw(t, "key")
				v := rapid.Int().Draw(t, "value")
				old, existed := tr.Insert(k, v)
				wantOld, wantExisted := model[k]
				require.Equal(t, wantExisted, existed)
				if wantExisted {
					require.Equal(t, wantOld, old)
				}
				model[k] = v
			},
			"remove": func(t *rapid.T) {
				k := rapid.IntRange(0, 50).Draw(t, "key")
				v, removed := tr.Remove(k)
				wantV, wantRemoved := model[k]
				require.Equal(t, wantRemoved, removed)
				if wantRemoved {
					require.Equal(t, wantV, v)
					delete(model, k)
				}
			},
			"get": func(t *rapid.T) {
				k := rapid.IntRange(0, 50).Draw(t, "key")
				v, ok := tr.Get(k)
				wantV, wantOk := model[k]
				require.Equal(t, wantOk, ok)
				if wantOk {
					require.Equal(t, wantV, v)
				}
			},
			"": func(t *rapid.T) {
				require.Equal(t, len(model), tr.Len())

				var keys []int
				it := tr.Iter()
				for {
					k, _, ok := it.Next()
					if !ok {
						break
					}
					keys = append(keys, k)
				}
				require.True(t, slices.IsSorted(keys))
				require.Equal(t, len(model), len(keys))
			},
		})
	})
}
