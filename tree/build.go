// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package tree

import (
	"cmp"
	"iter"

	"github.com/blockpool-go/blockpool/internal/abort"
	"github.com/blockpool-go/blockpool/pool"
	"github.com/blockpool-go/blockpool/stack"
)

// buildFrame is one unit of work on the top-down build stack: node1 is the
// node to fill, sized for count leaves beneath it; node2, if non-nil, is the
// ancestor whose routing key still needs to be set from the first leaf key
// produced under node1.
type buildFrame[K any, V any] struct {
	node1 *TreeNode[K, V]
	node2 *TreeNode[K, V]
	count int
}

// FromSorted builds a SearchTree of height ⌈log2 n⌉ directly from n
// strictly-increasing (key, value) pairs, using the module's default pool
// sizing. It is equivalent to, but far cheaper than, n calls to Insert in
// order. seq must yield exactly n pairs in strictly increasing key order;
// anything else is a fatal misuse.
func FromSorted[K cmp.Ordered, V any](n int, seq iter.Seq2[K, V]) *SearchTree[K, V] {
	return FromSortedSized[K, V](pool.DefaultBlockSize, pool.DefaultBlocksCap, n, seq)
}

// FromSortedSized is FromSorted with explicit pool sizing for the resulting
// tree.
func FromSortedSized[K cmp.Ordered, V any](blockSize, blocksCap, n int, seq iter.Seq2[K, V]) *SearchTree[K, V] {
	allocator := pool.New[TreeNode[K, V], *TreeNode[K, V]](blockSize, blocksCap)
	root := allocator.Acquire()

	if n == 0 {
		return &SearchTree[K, V]{allocator: allocator, root: root}
	}

	next, stop := iter.Pull2(seq)
	defer stop()

	depth := 1
	for c := n; c > 1; c >>= 1 {
		depth++
	}
	frames := stack.NewBounded[buildFrame[K, V]](depth + 2)
	frames.Push(buildFrame[K, V]{node1: root, count: n})

	var prevKey K
	havePrev := false

	for !frames.IsEmpty() {
		f := frames.Pop()

		if f.count > 1 {
			leftCount := f.count / 2
			rightCount := f.count - leftCount
			leftNode := allocator.Acquire()
			rightNode := allocator.Acquire()

			f.node1.left = nodeElem[K, V](leftNode)
			f.node1.right = rightNode

			// Push right before left so left is processed first and leaves
			// are filled in key order. The first leaf produced under the
			// right subtree sets f.node1's routing key; the left subtree's
			// first leaf passes on to f.node2 instead.
			frames.Push(buildFrame[K, V]{node1: rightNode, node2: f.node1, count: rightCount})
			frames.Push(buildFrame[K, V]{node1: leftNode, node2: f.node2, count: leftCount})
			continue
		}

		key, value, ok := next()
		if !ok {
			panic(abort.UnsortedInput)
		}
		if havePrev && !(prevKey < key) {
			panic(abort.UnsortedInput)
		}
		prevKey = key
		havePrev = true

		if f.node2 != nil {
			f.node2.key = key
		}
		v := value
		f.node1.left = valElem[K, V](&v)
		f.node1.key = key
		f.node1.right = nil
	}

	if _, _, ok := next(); ok {
		panic(abort.UnsortedInput)
	}

	return &SearchTree[K, V]{allocator: allocator, root: root, length: n}
}
