// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package pool provides a block allocator that hands out fixed-size records
// ("nodes") from bulk-allocated blocks, with addresses that remain valid and
// stable for the life of the pool, and an intrusive free list threaded
// through the records themselves.
//
// A record type participates in a Pool by satisfying Nodable: it must expose
// its own next-pointer slot (reused by the pool as the free-list link while
// the node is not live) and a way to reset itself to its empty/default
// state. Node and BiNode are the two canonical record shapes used by the
// rest of this module; callers needing a different record layout (as the
// tree package does for its own node type) implement Nodable directly.
package pool

import "github.com/blockpool-go/blockpool/internal/abort"

// DefaultBlockSize is the block size used by NewDefault constructors
// throughout this module.
const DefaultBlockSize = 256

// DefaultBlocksCap is the initial block-directory capacity used by
// NewDefault constructors throughout this module.
const DefaultBlocksCap = 32

// Nodable is the capability a record type N must expose, via its pointer
// type PN, to participate in a Pool. PN threads the pool's free list through
// the same next-pointer slot the record uses for its own purposes while
// live; a node is never on the free list and referenced by client code at
// the same time, so the two uses never alias.
type Nodable[N any] interface {
	*N
	// Next returns the record's next-pointer slot.
	Next() *N
	// SetNext overwrites the record's next-pointer slot.
	SetNext(*N)
	// Reset restores the record to its empty/default state. Called by the
	// pool both when a fresh block slot is first handed out and when a
	// freed node is reacquired.
	Reset()
}

// Pool hands out and reclaims fixed-size records of type N (addressed via
// PN = *N) from a directory of bulk-allocated blocks. Once an address has
// been returned by Acquire and not passed to Release, it remains valid for
// the lifetime of the Pool: blocks are appended to, never reallocated, so a
// pointer into a block's backing array never moves. Only the block
// directory itself grows, and it holds nothing but block references.
type Pool[N any, PN Nodable[N]] struct {
	blocks    [][]N
	block     []N
	remaining int
	blockSize int
	freeList  PN
}

// New creates a Pool whose blocks hold blockSize records each, with an
// initial block-directory capacity of blocksCap. Both must be positive.
func New[N any, PN Nodable[N]](blockSize, blocksCap int) *Pool[N, PN] {
	if blockSize <= 0 {
		panic(abort.InvalidBlockSize)
	}
	if blocksCap <= 0 {
		panic(abort.InvalidBlocksCap)
	}
	return &Pool[N, PN]{
		blocks:    make([][]N, 0, blocksCap),
		blockSize: blockSize,
	}
}

// NewDefault creates a Pool using DefaultBlockSize and DefaultBlocksCap.
func NewDefault[N any, PN Nodable[N]]() *Pool[N, PN] {
	return New[N, PN](DefaultBlockSize, DefaultBlocksCap)
}

// Acquire returns the address of a node whose storage is reserved and whose
// payload is in N's empty/default state. O(1) amortized.
func (p *Pool[N, PN]) Acquire() PN {
	if p.freeList != nil {
		n := p.freeList
		p.freeList = PN(n.Next())
		n.Reset()
		return n
	}
	if p.remaining == 0 {
		p.block = make([]N, p.blockSize)
		p.blocks = append(p.blocks, p.block)
		p.remaining = p.blockSize
	}
	n := PN(&p.block[p.blockSize-p.remaining])
	p.remaining--
	n.Reset()
	return n
}

// Release returns a node to the pool, threading it onto the free list
// through its own next-pointer slot. The caller must have already dropped
// or otherwise finished with the node's payload: Release does not reset it.
// The address remains reusable until the pool itself is discarded.
func (p *Pool[N, PN]) Release(n PN) {
	n.SetNext(p.freeList)
	p.freeList = n
}
