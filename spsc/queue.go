// SPDX-License-Identifier: EPL-2.0

// Package spsc implements a bounded lock-free queue for exactly one producer
// and one consumer.
//
// The queue is a Lamport ring: the producer alone advances head, the
// consumer alone advances tail, and one slot stays empty so that a full ring
// can be told apart from an empty one. A queue built with N slots therefore
// holds at most N-1 values.
//
// Each index is published with an atomic store after the slot it covers has
// been written, so the other side never observes an index ahead of its data.
// Neither side ever waits on the other; a full push and an empty pop both
// return immediately and leave retry policy to the caller.
package spsc

import "sync/atomic"

// Queue is a fixed-capacity single-producer single-consumer ring.
type Queue[T any] struct {
	head atomic.Uint64
	_    [56]byte
	tail atomic.Uint64
	_    [56]byte

	slots []T
	n     uint64
}

// New returns a queue with the given number of slots. It panics when slots
// is smaller than two, since such a ring could never hold a value.
func New[T any](slots int) *Queue[T] {
	if slots < 2 {
		panic("spsc: queue needs at least two slots")
	}
	return &Queue[T]{
		slots: make([]T, slots),
		n:     uint64(slots),
	}
}

func (q *Queue[T]) next(i uint64) uint64 {
	i++
	if i == q.n {
		return 0
	}
	return i
}

// Push appends v. When the queue is full it returns v unchanged with false,
// so the caller still owns it. Only the producer may call Push.
func (q *Queue[T]) Push(v T) (T, bool) {
	head := q.head.Load()
	next := q.next(head)
	if next == q.tail.Load() {
		return v, false
	}

	q.slots[head] = v
	q.head.Store(next)

	var zero T
	return zero, true
}

// Pop removes the oldest value. Only the consumer may call Pop.
func (q *Queue[T]) Pop() (T, bool) {
	var zero T

	tail := q.tail.Load()
	if tail == q.head.Load() {
		return zero, false
	}

	v := q.slots[tail]
	q.slots[tail] = zero
	q.tail.Store(q.next(tail))

	return v, true
}

// Len reports the number of queued values. The answer is exact only when
// observed from one side while the other is idle.
func (q *Queue[T]) Len() int {
	head := q.head.Load()
	tail := q.tail.Load()
	if head >= tail {
		return int(head - tail)
	}
	return int(q.n - tail + head)
}

// Cap reports the number of values the queue can hold.
func (q *Queue[T]) Cap() int { return int(q.n - 1) }

func (q *Queue[T]) IsEmpty() bool { return q.head.Load() == q.tail.Load() }

func (q *Queue[T]) IsFull() bool { return q.next(q.head.Load()) == q.tail.Load() }

// Drain pops every queued value into fn and returns how many there were.
// It is the queue's destructor: owners of values that hold resources (such
// as block handles) must drain before dropping the queue. Drain acts as the
// consumer.
func (q *Queue[T]) Drain(fn func(T)) int {
	n := 0
	for {
		v, ok := q.Pop()
		if !ok {
			return n
		}
		if fn != nil {
			fn(v)
		}
		n++
	}
}
