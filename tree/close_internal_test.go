// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package tree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestCloseReleasesEveryNodeExactlyOnce is a regression test for a bug
// where the root was threaded onto the pool's free list twice: once by the
// Morris teardown loop and again by an unconditional release of the root
// afterward. Releasing the same node twice links it onto the free list at
// two positions, which turns the list into a cycle that never reaches the
// other released nodes. A bounded number of Acquire calls drains exactly
// the free list built by Close; if any address repeats within that bound,
// the free list is corrupted.
func TestCloseReleasesEveryNodeExactlyOnce(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7, 16} {
		tr := New[int, int](4, 2)
		for i := 0; i < n; i++ {
			tr.Insert(i, i)
		}
		wantNodes := 1
		if n > 1 {
			wantNodes = 2*n - 1
		}

		tr.Close()

		seen := map[*TreeNode[int, int]]bool{}
		for i := 0; i < wantNodes; i++ {
			node := tr.allocator.Acquire()
			require.Falsef(t, seen[node], "free list corrupted for n=%d: address reacquired after only %d draws", n, i)
			seen[node] = true
		}
		require.Lenf(t, seen, wantNodes, "should drain exactly the nodes released by Close for n=%d", n)
	}
}
