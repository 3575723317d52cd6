// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package queue provides the pool-backed FIFO queue variants named in the
// spec — singly-linked, cyclic-sentinel, and doubly-linked — plus a
// fixed-capacity ring-buffer BoundedQueue. All four share identical external
// enqueue-at-tail/dequeue-at-head semantics and are interchangeable from the
// caller's perspective; the variants differ only in how they thread pool
// nodes together internally.
package queue

import (
	"github.com/blockpool-go/blockpool/internal/abort"
	"github.com/blockpool-go/blockpool/pool"
)

// LinkedListQueue is a FIFO queue with a head pointer (remove) and a tail
// pointer (insert), backed by pool.Node records.
type LinkedListQueue[T any] struct {
	allocator        *pool.Pool[pool.Node[T], *pool.Node[T]]
	removeN, insertN *pool.Node[T]
	len              int
}

// New creates a LinkedListQueue backed by a pool with the given block size
// and initial block-directory capacity.
func New[T any](blockSize, blocksCap int) *LinkedListQueue[T] {
	return &LinkedListQueue[T]{
		allocator: pool.New[pool.Node[T], *pool.Node[T]](blockSize, blocksCap),
	}
}

// NewDefault creates a LinkedListQueue using the module's default pool
// sizing.
func NewDefault[T any]() *LinkedListQueue[T] {
	return New[T](pool.DefaultBlockSize, pool.DefaultBlocksCap)
}

// Len returns the number of elements currently queued.
func (q *LinkedListQueue[T]) Len() int { return q.len }

// IsEmpty reports whether the queue holds no elements.
func (q *LinkedListQueue[T]) IsEmpty() bool { return q.len == 0 }

// Enqueue adds val to the tail of the queue.
func (q *LinkedListQueue[T]) Enqueue(val T) {
	n := q.allocator.Acquire()
	n.Val = val
	if !q.IsEmpty() {
		q.insertN.SetNext(n)
	} else {
		q.removeN = n
	}
	q.insertN = n
	q.len++
}

// Dequeue removes and returns the value at the head of the queue. Panics on
// an empty queue.
func (q *LinkedListQueue[T]) Dequeue() T {
	if q.IsEmpty() {
		panic(abort.QueueUnderflow)
	}
	n := q.removeN
	q.removeN = n.Next()
	val := n.Val
	q.allocator.Release(n)
	q.len--
	return val
}

// Peek returns the value at the head of the queue without removing it.
// Panics on an empty queue.
func (q *LinkedListQueue[T]) Peek() T {
	if q.IsEmpty() {
		panic(abort.QueueUnderflow)
	}
	return q.removeN.Val
}

// CircularLinkedQueue is a FIFO queue with a single sentinel entry pointer;
// the queue is empty iff entry.Next() == entry.
type CircularLinkedQueue[T any] struct {
	allocator *pool.Pool[pool.Node[T], *pool.Node[T]]
	entry     *pool.Node[T]
	len       int
}

// NewCircular creates a CircularLinkedQueue backed by a pool with the given block
// size and initial block-directory capacity.
func NewCircular[T any](blockSize, blocksCap int) *CircularLinkedQueue[T] {
	allocator := pool.New[pool.Node[T], *pool.Node[T]](blockSize, blocksCap)
	entry := allocator.Acquire()
	entry.SetNext(entry)
	return &CircularLinkedQueue[T]{allocator: allocator, entry: entry}
}

// NewCircularDefault creates a CircularLinkedQueue using the module's
// default pool sizing.
func NewCircularDefault[T any]() *CircularLinkedQueue[T] {
	return NewCircular[T](pool.DefaultBlockSize, pool.DefaultBlocksCap)
}

// Len returns the number of elements currently queued.
func (q *CircularLinkedQueue[T]) Len() int { return q.len }

// IsEmpty reports whether the queue holds no elements.
func (q *CircularLinkedQueue[T]) IsEmpty() bool { return q.entry == q.entry.Next() }

// Enqueue adds val to the tail of the queue.
func (q *CircularLinkedQueue[T]) Enqueue(val T) {
	n := q.allocator.Acquire()
	n.Val = val
	tail := q.entry
	q.entry = n
	n.SetNext(tail.Next())
	tail.SetNext(n)
	q.len++
}

// Dequeue removes and returns the value at the head of the queue. Panics on
// an empty queue.
func (q *CircularLinkedQueue[T]) Dequeue() T {
	if q.IsEmpty() {
		panic(abort.QueueUnderflow)
	}
	head := q.entry.Next().Next()
	q.entry.Next().SetNext(head.Next())
	if head == q.entry {
		q.entry = head.Next()
	}
	val := head.Val
	q.allocator.Release(head)
	q.len--
	return val
}

// Peek returns the value at the head of the queue without removing it.
// Panics on an empty queue.
func (q *CircularLinkedQueue[T]) Peek() T {
	if q.IsEmpty() {
		panic(abort.QueueUnderflow)
	}
	return q.entry.Next().Next().Val
}

// DoubleLinkedQueue is a FIFO queue with a sentinel node linking both ends.
type DoubleLinkedQueue[T any] struct {
	allocator *pool.Pool[pool.BiNode[T], *pool.BiNode[T]]
	entry     *pool.BiNode[T]
	len       int
}

// NewDouble creates a DoubleLinkedQueue backed by a pool with the given
// block size and initial block-directory capacity.
func NewDouble[T any](blockSize, blocksCap int) *DoubleLinkedQueue[T] {
	allocator := pool.New[pool.BiNode[T], *pool.BiNode[T]](blockSize, blocksCap)
	entry := allocator.Acquire()
	entry.SetNext(entry)
	entry.SetPrev(entry)
	return &DoubleLinkedQueue[T]{allocator: allocator, entry: entry}
}

// NewDoubleDefault creates a DoubleLinkedQueue using the module's default
// pool sizing.
func NewDoubleDefault[T any]() *DoubleLinkedQueue[T] {
	return NewDouble[T](pool.DefaultBlockSize, pool.DefaultBlocksCap)
}

// Len returns the number of elements currently queued.
func (q *DoubleLinkedQueue[T]) Len() int { return q.len }

// IsEmpty reports whether the queue holds no elements.
func (q *DoubleLinkedQueue[T]) IsEmpty() bool { return q.entry == q.entry.Next() }

// Enqueue adds val to the tail of the queue.
func (q *DoubleLinkedQueue[T]) Enqueue(val T) {
	n := q.allocator.Acquire()
	n.Val = val
	n.SetNext(q.entry.Next())
	q.entry.SetNext(n)
	n.Next().SetPrev(n)
	n.SetPrev(q.entry)
	q.len++
}

// Dequeue removes and returns the value at the head of the queue. Panics on
// an empty queue.
func (q *DoubleLinkedQueue[T]) Dequeue() T {
	if q.IsEmpty() {
		panic(abort.QueueUnderflow)
	}
	n := q.entry.Prev()
	val := n.Val
	n.Prev().SetNext(q.entry)
	q.entry.SetPrev(n.Prev())
	q.allocator.Release(n)
	q.len--
	return val
}

// Peek returns the value at the head of the queue without removing it.
// Panics on an empty queue.
func (q *DoubleLinkedQueue[T]) Peek() T {
	if q.IsEmpty() {
		panic(abort.QueueUnderflow)
	}
	return q.entry.Prev().Val
}

// BoundedQueue is a fixed-capacity ring-buffer FIFO queue. Enqueue beyond
// capacity and Dequeue/Peek of an empty queue are fatal misuses.
type BoundedQueue[T any] struct {
	buf         []T
	front, rear int
	len         int
}

// NewBounded creates a BoundedQueue with room for up to capacity elements.
func NewBounded[T any](capacity int) *BoundedQueue[T] {
	return &BoundedQueue[T]{buf: make([]T, capacity)}
}

// Len returns the number of elements currently queued.
func (q *BoundedQueue[T]) Len() int { return q.len }

// MaxLen returns the queue's fixed capacity.
func (q *BoundedQueue[T]) MaxLen() int { return len(q.buf) }

// IsEmpty reports whether the queue holds no elements.
func (q *BoundedQueue[T]) IsEmpty() bool { return q.len == 0 }

// Enqueue adds val to the tail of the queue. Panics if the queue is already
// at capacity.
func (q *BoundedQueue[T]) Enqueue(val T) {
	if q.len == len(q.buf) {
		panic(abort.QueueOverflow)
	}
	q.buf[q.rear] = val
	q.rear = (q.rear + 1) % len(q.buf)
	q.len++
}

// Dequeue removes and returns the value at the head of the queue. Panics on
// an empty queue.
func (q *BoundedQueue[T]) Dequeue() T {
	if q.IsEmpty() {
		panic(abort.QueueUnderflow)
	}
	val := q.buf[q.front]
	var zero T
	q.buf[q.front] = zero
	q.front = (q.front + 1) % len(q.buf)
	q.len--
	return val
}

// Peek returns the value at the head of the queue without removing it.
// Panics on an empty queue.
func (q *BoundedQueue[T]) Peek() T {
	if q.IsEmpty() {
		panic(abort.QueueUnderflow)
	}
	return q.buf[q.front]
}
