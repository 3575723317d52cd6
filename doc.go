// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package blockpool is the root of a no-runtime library of foundational
// data structures built on a shared block allocator.
//
// Subpackage pool provides Pool, the block allocator itself: it hands out
// fixed-size, pointer-stable records from growable block-backed storage,
// threading an intrusive free list through each record's own "next" slot
// so that release and reacquisition never allocate.
//
// Subpackage stack and subpackage queue provide the elementary LIFO and
// FIFO containers built directly on Pool, plus the bounded, non-pool-backed
// variants (BoundedStack, ArrayStack, BoundedQueue) used when a caller
// knows a hard capacity up front.
//
// Subpackage tree provides SearchTree, a leaf-oriented binary search tree:
// every value lives at a leaf, internal nodes carry only routing keys, and
// FromSorted builds a tree of minimal height directly from an
// already-sorted sequence rather than via repeated insertion.
//
// None of these types are safe for concurrent use without external
// synchronization; none persist or serialize their contents; and misuse —
// an empty pop, unsorted or duplicate-key input to FromSorted, a
// wrong-variant tree pointer access — is a fatal panic rather than a recoverable error,
// since these are programmer contract violations rather than runtime
// conditions a caller is expected to handle.
package blockpool
