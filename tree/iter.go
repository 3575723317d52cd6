// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package tree

import (
	"cmp"

	"github.com/blockpool-go/blockpool/stack"
)

// Iter is a double-ended, fused iterator over a SearchTree's bindings in
// key order. Next and NextBack can be called in any interleaving without
// duplicating or skipping a binding: once the forward and backward cursors
// meet, both report exhaustion forever after.
//
// An Iter holds two independent depth-first work-stacks, one driving each
// direction, so a call to NextBack never has to rewind or replay state
// built up by previous calls to Next.
type Iter[K cmp.Ordered, V any] struct {
	fwdStack *stack.LinkedListStack[*TreeNode[K, V]]
	revStack *stack.LinkedListStack[*TreeNode[K, V]]
	lo, hi   *K

	fwdDone, revDone bool
	lastFwdKey       K
	lastRevKey       K
	haveLastFwd      bool
	haveLastRev      bool
}

// Iter returns a double-ended iterator over every binding in the tree, in
// key order.
func (t *SearchTree[K, V]) Iter() *Iter[K, V] {
	return t.Find(nil, nil)
}

// Find returns a double-ended iterator over every binding whose key falls
// within the half-open range [lo, hi). A nil lo means unbounded below; a
// nil hi means unbounded above.
func (t *SearchTree[K, V]) Find(lo, hi *K) *Iter[K, V] {
	it := &Iter[K, V]{
		fwdStack: stack.NewDefault[*TreeNode[K, V]](),
		revStack: stack.NewDefault[*TreeNode[K, V]](),
		lo:       lo,
		hi:       hi,
	}
	if t.root.isEmpty() {
		it.fwdDone = true
		it.revDone = true
		return it
	}
	pushLeftSpine(it.fwdStack, t.root, lo)
	pushRightSpine(it.revStack, t.root, hi)
	return it
}

// pushLeftSpine descends from n toward its smallest reachable leaf not
// already excluded by lo, pushing every node it passes through.
func pushLeftSpine[K cmp.Ordered, V any](s *stack.LinkedListStack[*TreeNode[K, V]], n *TreeNode[K, V], lo *K) {
	for {
		if lo != nil && n.hasSubtrees() && *lo >= n.key {
			n = n.right
			continue
		}
		s.Push(n)
		if n.isLeaf() {
			return
		}
		n = n.left.asNode()
	}
}

// pushRightSpine descends from n toward its largest reachable leaf not
// already excluded by hi, pushing every node it passes through.
func pushRightSpine[K cmp.Ordered, V any](s *stack.LinkedListStack[*TreeNode[K, V]], n *TreeNode[K, V], hi *K) {
	for {
		if hi != nil && n.hasSubtrees() && *hi < n.key {
			n = n.left.asNode()
			continue
		}
		s.Push(n)
		if n.isLeaf() {
			return
		}
		n = n.right
	}
}

// Next returns the next binding in ascending key order, or ok=false once
// the forward cursor has met the backward cursor or exhausted the range.
func (it *Iter[K, V]) Next() (key K, val V, ok bool) {
	if it.fwdDone {
		return key, val, false
	}
	for !it.fwdStack.IsEmpty() {
		n := it.fwdStack.Pop()
		if n.isLeaf() {
			k := n.key
			if it.lo != nil && k < *it.lo {
				// pushLeftSpine can still land on the leaf just below lo
				// when it prunes a subtree at an internal node whose
				// routing key is <= lo: skip it and keep popping.
				continue
			}
			if it.hi != nil && *it.hi <= k {
				it.fwdDone = true
				return key, val, false
			}
			if it.haveLastRev && !(k < it.lastRevKey) {
				it.fwdDone = true
				it.revDone = true
				return key, val, false
			}
			it.lastFwdKey = k
			it.haveLastFwd = true
			return k, *n.left.asVal(), true
		}
		pushLeftSpine(it.fwdStack, n.right, it.lo)
	}
	it.fwdDone = true
	return key, val, false
}

// NextBack returns the next binding in descending key order, or ok=false
// once the backward cursor has met the forward cursor or exhausted the
// range.
func (it *Iter[K, V]) NextBack() (key K, val V, ok bool) {
	if it.revDone {
		return key, val, false
	}
	for !it.revStack.IsEmpty() {
		n := it.revStack.Pop()
		if n.isLeaf() {
			k := n.key
			if it.hi != nil && *it.hi <= k {
				// pushRightSpine can still land on the leaf just at or
				// above hi when it prunes a subtree at an internal node
				// whose routing key is > hi: skip it and keep popping.
				continue
			}
			if it.lo != nil && k < *it.lo {
				it.revDone = true
				return key, val, false
			}
			if it.haveLastFwd && !(it.lastFwdKey < k) {
				it.fwdDone = true
				it.revDone = true
				return key, val, false
			}
			it.lastRevKey = k
			it.haveLastRev = true
			return k, *n.left.asVal(), true
		}
		pushRightSpine(it.revStack, n.left.asNode(), it.hi)
	}
	it.revDone = true
	return key, val, false
}
