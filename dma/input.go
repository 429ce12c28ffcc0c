// SPDX-License-Identifier: EPL-2.0

package dma

import (
	"sync/atomic"

	"github.com/ik5/rtaudio/block"
)

// Input is a stereo source node filled from a hardware receive buffer.
// Output 0 is the left channel, output 1 the right.
type Input struct {
	pool        *block.Pool
	mode        Mode
	format      Format
	responsible bool

	left, right block.Exclusive
	offset      int

	dropped atomic.Uint64
}

func NewInput(cfg Config) (*Input, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Input{
		pool:        cfg.pool(),
		mode:        cfg.Mode,
		format:      cfg.Format,
		responsible: cfg.responsible(),
	}, nil
}

func (*Input) Inputs() int  { return 0 }
func (*Input) Outputs() int { return 2 }

// InterruptHandler copies the part of buf the engine has finished writing
// into the working blocks. With no working blocks, or with working blocks
// already full because no cycle has collected them, the samples are dropped.
// It returns true when the graph should run.
func (in *Input) InterruptHandler(buf []uint32, active Half) bool {
	src := in.mode.region(buf, active)

	if in.Ready() && in.offset < block.Samples {
		in.offset += Deinterleave(in.format, src, in.left, in.right, in.offset)
	} else {
		in.dropped.Add(1)
	}

	return in.responsible && in.mode.triggers(active)
}

// Update hands full working blocks to the graph and keeps a working pair
// installed. Until a block is complete both outputs are absent.
func (in *Input) Update(_ []block.Shared, out []block.Exclusive) {
	full := in.offset >= block.Samples
	if full {
		out[0].Replace(in.left.Take())
		out[1].Replace(in.right.Take())
		in.offset = 0
	} else {
		out[0].Release()
		out[1].Release()
	}

	if in.left.Valid() {
		return
	}

	l := in.pool.Alloc()
	if !l.Valid() {
		return
	}
	r := in.pool.Alloc()
	if !r.Valid() {
		l.Release()
		return
	}
	in.left, in.right = l, r
	in.offset = 0
}

// Ready reports whether working blocks are installed.
func (in *Input) Ready() bool { return in.left.Valid() && in.right.Valid() }

// Offset reports how many samples of the working blocks are filled.
func (in *Input) Offset() int { return in.offset }

func (in *Input) Responsible() bool { return in.responsible }

// Dropped reports how many interrupts had their samples discarded, either
// for lack of working blocks or because the working blocks were still full.
func (in *Input) Dropped() uint64 { return in.dropped.Load() }

// Close releases the working blocks.
func (in *Input) Close() error {
	in.left.Release()
	in.right.Release()
	in.offset = 0
	return nil
}
