// SPDX-License-Identifier: EPL-2.0

package queue

import (
	"github.com/ik5/rtaudio/block"
	"github.com/ik5/rtaudio/spsc"
)

// PlayQueue feeds user-produced blocks into the graph, one per cycle.
type PlayQueue struct {
	pool *block.Pool
	q    *spsc.Queue[block.Exclusive]
}

// NewPlay returns an empty play queue drawing from pool, or from
// block.DefaultPool when pool is nil.
func NewPlay(pool *block.Pool) *PlayQueue {
	if pool == nil {
		pool = block.DefaultPool()
	}
	return &PlayQueue{pool: pool, q: spsc.New[block.Exclusive](slots)}
}

func (*PlayQueue) Inputs() int  { return 0 }
func (*PlayQueue) Outputs() int { return 1 }

// Alloc returns a fresh block for the producer to fill, or an absent handle
// when the pool is exhausted.
func (p *PlayQueue) Alloc() block.Exclusive {
	return p.pool.Alloc()
}

// Play enqueues b. When the queue is full b is handed back with false and
// the caller keeps ownership.
func (p *PlayQueue) Play(b block.Exclusive) (block.Exclusive, bool) {
	if !b.Valid() {
		return b, true
	}
	return p.q.Push(b)
}

// Available reports whether another block can be queued.
func (p *PlayQueue) Available() bool { return !p.q.IsFull() }

// Len reports how many blocks are waiting.
func (p *PlayQueue) Len() int { return p.q.Len() }

// Update emits the oldest queued block. With nothing queued the output is
// released, which the graph treats as silence.
func (p *PlayQueue) Update(_ []block.Shared, out []block.Exclusive) {
	b, ok := p.q.Pop()
	if !ok {
		out[0].Release()
		return
	}
	out[0].Replace(b)
}

// Close releases every queued block. It must not race with Update.
func (p *PlayQueue) Close() error {
	p.q.Drain(func(b block.Exclusive) { b.Release() })
	return nil
}
