// SPDX-License-Identifier: EPL-2.0

package nodes

import (
	"math"
	"sync/atomic"

	"github.com/ik5/rtaudio/block"
)

// RMS accumulates signal power since the last read. Absent input counts as
// a block of silence.
type RMS struct {
	sum       atomic.Uint64
	count     atomic.Uint64
	available atomic.Bool
}

func NewRMS() *RMS { return &RMS{} }

func (*RMS) Inputs() int  { return 1 }
func (*RMS) Outputs() int { return 0 }

func (r *RMS) Update(in []block.Shared, _ []block.Exclusive) {
	if in[0].Valid() {
		var sum uint64
		for i := range block.Samples {
			v := int64(in[0].At(i))
			sum += uint64(v * v)
		}
		r.sum.Add(sum)
	}
	r.count.Add(block.Samples)
	r.available.Store(true)
}

func (r *RMS) Available() bool { return r.available.Load() }

// Read returns the RMS level since the last read, scaled so that a
// full-scale DC signal reads 1.0, and resets the accumulator.
func (r *RMS) Read() float32 {
	r.available.Store(false)
	n := r.count.Swap(0)
	sum := r.sum.Swap(0)
	if n == 0 {
		return 0
	}
	return float32(math.Sqrt(float64(sum)/float64(n)) / 32767)
}
