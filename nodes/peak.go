// SPDX-License-Identifier: EPL-2.0

package nodes

import (
	"math"
	"sync/atomic"

	"github.com/ik5/rtaudio/block"
)

// Peak tracks the minimum and maximum sample seen since the last read.
type Peak struct {
	// low 16 bits: minimum, high 16 bits: maximum
	span      atomic.Uint32
	available atomic.Bool
}

var emptySpan = packSpan(math.MaxInt16, math.MinInt16)

func packSpan(lo, hi int16) uint32 {
	return uint32(uint16(lo)) | uint32(uint16(hi))<<16
}

func unpackSpan(v uint32) (lo, hi int16) {
	return int16(uint16(v)), int16(uint16(v >> 16))
}

func NewPeak() *Peak {
	p := &Peak{}
	p.span.Store(emptySpan)
	return p
}

func (*Peak) Inputs() int  { return 1 }
func (*Peak) Outputs() int { return 0 }

func (p *Peak) Update(in []block.Shared, _ []block.Exclusive) {
	if !in[0].Valid() {
		return
	}

	lo, hi := int16(math.MaxInt16), int16(math.MinInt16)
	for i := range block.Samples {
		v := in[0].At(i)
		lo = min(lo, v)
		hi = max(hi, v)
	}

	for {
		old := p.span.Load()
		olo, ohi := unpackSpan(old)
		if p.span.CompareAndSwap(old, packSpan(min(lo, olo), max(hi, ohi))) {
			break
		}
	}
	p.available.Store(true)
}

// Available reports whether a block arrived since the last read.
func (p *Peak) Available() bool { return p.available.Load() }

func (p *Peak) take() (lo, hi int16, ok bool) {
	p.available.Store(false)
	v := p.span.Swap(emptySpan)
	if v == emptySpan {
		return 0, 0, false
	}
	lo, hi = unpackSpan(v)
	return lo, hi, true
}

// Read returns the largest absolute sample since the last read, scaled so
// that 32767 reads as 1.0, and resets the tracker.
func (p *Peak) Read() float32 {
	lo, hi, ok := p.take()
	if !ok {
		return 0
	}
	a := max(-int32(lo), int32(hi))
	return float32(a) / 32767
}

// ReadPeakToPeak returns (max-min)/32767 since the last read and resets the
// tracker.
func (p *Peak) ReadPeakToPeak() float32 {
	lo, hi, ok := p.take()
	if !ok {
		return 0
	}
	return float32(int32(hi)-int32(lo)) / 32767
}
