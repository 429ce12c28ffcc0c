// SPDX-License-Identifier: EPL-2.0

package queue

import (
	"sync/atomic"

	"github.com/ik5/rtaudio/block"
	"github.com/ik5/rtaudio/spsc"
)

// RecordQueue captures the blocks reaching its input while recording.
type RecordQueue struct {
	q         *spsc.Queue[block.Shared]
	recording atomic.Bool
	dropped   atomic.Uint64
}

// NewRecord returns a stopped, empty record queue.
func NewRecord() *RecordQueue {
	return &RecordQueue{q: spsc.New[block.Shared](slots)}
}

func (*RecordQueue) Inputs() int  { return 1 }
func (*RecordQueue) Outputs() int { return 0 }

func (r *RecordQueue) Start()          { r.recording.Store(true) }
func (r *RecordQueue) Stop()           { r.recording.Store(false) }
func (r *RecordQueue) Recording() bool { return r.recording.Load() }

// Read returns the oldest captured block. The caller owns it and must
// release it.
func (r *RecordQueue) Read() (block.Shared, bool) {
	return r.q.Pop()
}

// Available reports how many blocks are waiting to be read.
func (r *RecordQueue) Available() int { return r.q.Len() }

// Dropped reports how many blocks were discarded because the reader fell
// behind.
func (r *RecordQueue) Dropped() uint64 { return r.dropped.Load() }

// Clear releases every block waiting to be read. Only the reader may call
// it.
func (r *RecordQueue) Clear() {
	r.q.Drain(func(b block.Shared) { b.Release() })
}

// Update keeps a reference to the input block while recording. Absent input
// and a full queue both leave the queue untouched; the latter counts as a
// drop.
func (r *RecordQueue) Update(in []block.Shared, _ []block.Exclusive) {
	if !r.recording.Load() || !in[0].Valid() {
		return
	}

	b, ok := r.q.Push(in[0].Clone())
	if !ok {
		b.Release()
		r.dropped.Add(1)
	}
}

// Close stops recording and releases what is left. It drains the queue as
// its reader, so it must only be called once the goroutine reading the
// queue has stopped.
func (r *RecordQueue) Close() error {
	r.Stop()
	r.Clear()
	return nil
}
