// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package tree implements the leaf-oriented search tree: an ordered
// key-to-value map where every value lives at a leaf and internal nodes
// carry only routing keys copied from leaves beneath them. Point get,
// insert, and remove run in O(height); FromSorted builds an
// ⌈log2 n⌉-height tree directly from an already-sorted, unique-key
// sequence; Iter and Find return double-ended, fused iterators that support
// arbitrarily interleaved forward and backward traversal without
// duplicating or skipping entries.
package tree

import (
	"cmp"

	"github.com/blockpool-go/blockpool/pool"
)

// Dropper is implemented by value types that need deterministic cleanup
// when a SearchTree is closed. Close invokes Drop on every value still
// reachable from the tree as it walks the tree for teardown; it is not
// invoked when a value is handed back to the caller by Remove or by an
// overwriting Insert, since ownership passes to the caller at that point.
type Dropper interface {
	Drop()
}

// SearchTree is an ordered map from K to V backed by a pool of TreeNode
// records. A non-empty tree always has a dedicated root node, acquired once
// at construction and never released back to the pool until the tree is
// closed; an empty tree's root is simply in the empty state.
type SearchTree[K cmp.Ordered, V any] struct {
	allocator *pool.Pool[TreeNode[K, V], *TreeNode[K, V]]
	root      *TreeNode[K, V]
	length    int
}

// New creates an empty SearchTree backed by a pool with the given block
// size and initial block-directory capacity.
func New[K cmp.Ordered, V any](blockSize, blocksCap int) *SearchTree[K, V] {
	allocator := pool.New[TreeNode[K, V], *TreeNode[K, V]](blockSize, blocksCap)
	return &SearchTree[K, V]{allocator: allocator, root: allocator.Acquire()}
}

// NewDefault creates an empty SearchTree using the module's default pool
// sizing.
func NewDefault[K cmp.Ordered, V any]() *SearchTree[K, V] {
	return New[K, V](pool.DefaultBlockSize, pool.DefaultBlocksCap)
}

// Len returns the number of key-value bindings currently in the tree.
func (t *SearchTree[K, V]) Len() int { return t.length }

// IsEmpty reports whether the tree holds no bindings.
func (t *SearchTree[K, V]) IsEmpty() bool { return t.length == 0 }

// Get returns the value bound to key, if any. It never mutates the tree.
func (t *SearchTree[K, V]) Get(key K) (V, bool) {
	var zero V
	if t.root.isEmpty() {
		return zero, false
	}
	n := t.root
	for n.right != nil {
		if key < n.key {
			n = n.left.asNode()
		} else {
			n = n.right
		}
	}
	if n.key == key {
		return *n.left.asVal(), true
	}
	return zero, false
}

// Insert binds key to value. If key was already present, the tree is left
// structurally unchanged, the old value is overwritten, and the old value
// is returned with ok set to true. Otherwise the tree grows by exactly one
// leaf and ok is false.
func (t *SearchTree[K, V]) Insert(key K, value V) (old V, ok bool) {
	if t.root.isEmpty() {
		v := value
		t.root.left = valElem[K, V](&v)
		t.root.key = key
		t.length++
		return old, false
	}

	n := t.root
	for n.right != nil {
		if key < n.key {
			n = n.left.asNode()
		} else {
			n = n.right
		}
	}

	if n.key == key {
		slot := n.left.asVal()
		old = *slot
		*slot = value
		return old, true
	}

	a := t.allocator.Acquire()
	b := t.allocator.Acquire()
	*a = TreeNode[K, V]{left: n.left, key: n.key}
	v := value
	b.left = valElem[K, V](&v)
	b.key = key

	if n.key < key {
		n.left = nodeElem[K, V](a)
		n.right = b
		n.key = key
	} else {
		// n.key is intentionally left unchanged here: it continues to route
		// correctly because the new leaf's key is strictly smaller than it.
		n.left = nodeElem[K, V](b)
		n.right = a
	}
	t.length++
	return old, false
}

// Remove unbinds key, returning its value and true if it was present, or
// the zero value and false otherwise.
func (t *SearchTree[K, V]) Remove(key K) (V, bool) {
	var zero V
	if t.root.isEmpty() {
		return zero, false
	}

	if t.root.isLeaf() {
		if t.root.key != key {
			return zero, false
		}
		v := *t.root.left.asVal()
		t.root.left = leftElem[K, V]{}
		var zk K
		t.root.key = zk
		t.length--
		return v, true
	}

	var upper, other *TreeNode[K, V]
	n := t.root
	for n.right != nil {
		upper = n
		if key < upper.key {
			n = upper.left.asNode()
			other = upper.right
		} else {
			n = upper.right
			other = upper.left.asNode()
		}
	}

	if n.key != key {
		return zero, false
	}

	upper.key = other.key
	upper.left = other.left
	upper.right = other.right
	v := *n.left.asVal()
	t.allocator.Release(n)
	t.allocator.Release(other)
	t.length--
	return v, true
}

// Close releases every tree node back to the pool and, for value types
// implementing Dropper, invokes Drop on every value still held by the tree.
// It walks the tree with the Morris-style rotation described for teardown
// so memory use stays bounded regardless of tree depth, never recursing and
// never allocating an auxiliary stack. After Close the tree must not be
// used again.
func (t *SearchTree[K, V]) Close() {
	dropIfNeeded := func(v *V) {
		if d, ok := any(*v).(Dropper); ok {
			d.Drop()
		}
	}

	if t.root.isEmpty() {
		t.allocator.Release(t.root)
		return
	}

	current := t.root
	for current.hasSubtrees() {
		left := current.left.asNode()
		if left.isLeaf() {
			dropIfNeeded(left.left.asVal())
			t.allocator.Release(left)

			next := current.right
			// The root is released exactly once, below, regardless of
			// which node Close happens to be visiting when the loop ends.
			if current != t.root {
				t.allocator.Release(current)
			}
			current = next
		} else {
			tmp := left
			current.left = nodeElem[K, V](tmp.right)
			tmp.right = current
			current = tmp
		}
	}
	dropIfNeeded(current.left.asVal())
	if current != t.root {
		t.allocator.Release(current)
	}
	t.allocator.Release(t.root)
}
