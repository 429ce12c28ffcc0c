// SPDX-License-Identifier: EPL-2.0

package nodes

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/ik5/rtaudio/block"
)

const fadeFull = math.MaxUint32

// faderTable is a raised-cosine gain curve from silence to 32767 in 256
// steps plus a guard point.
var faderTable [257]int16

func init() {
	for i := range faderTable {
		faderTable[i] = int16(math.Round(32767 * (1 - math.Cos(math.Pi*float64(i)/256)) / 2))
	}
}

// faderGain interpolates the fader curve at pos: the top 8 bits select
// the step, the next 16 the fraction.
func faderGain(pos uint32) int32 {
	idx := pos >> 24
	frac := int32((pos >> 8) & 0xffff)
	return (int32(faderTable[idx])*(0x10000-frac) + int32(faderTable[idx+1])*frac) >> 16
}

// Fade fades its input in or out along a smooth curve.
type Fade struct {
	rate     atomic.Uint32
	fadingIn atomic.Bool
	seq      atomic.Uint32
	pos      atomic.Uint32

	// owned by Update
	applied  uint32
	position uint32
	step     uint32
	in       bool
}

// NewFade returns a fade at full volume.
func NewFade() *Fade {
	f := &Fade{position: fadeFull, in: true}
	f.pos.Store(fadeFull)
	return f
}

// NewSilentFade returns a fade that starts silent.
func NewSilentFade() *Fade {
	return &Fade{in: true}
}

func (*Fade) Inputs() int  { return 1 }
func (*Fade) Outputs() int { return 1 }

// FadeIn rises to full volume over d, starting at the next cycle.
func (f *Fade) FadeIn(d time.Duration) { f.begin(d, true) }

// FadeOut falls to silence over d, starting at the next cycle.
func (f *Fade) FadeOut(d time.Duration) { f.begin(d, false) }

func (f *Fade) begin(d time.Duration, in bool) {
	n := min(max(d.Seconds()*block.SampleRate, 1), fadeFull)
	f.rate.Store(uint32(fadeFull / uint64(n)))
	f.fadingIn.Store(in)
	f.seq.Add(1)
}

// Position reports the fade position after the last cycle, from 0 (silent)
// to 1 (full volume).
func (f *Fade) Position() float32 {
	return float32(float64(f.pos.Load()) / fadeFull)
}

func (f *Fade) apply() {
	seq := f.seq.Load()
	if seq == f.applied {
		return
	}
	f.applied = seq
	f.step = f.rate.Load()
	f.in = f.fadingIn.Load()

	// Leave the end points so the fade starts moving.
	switch {
	case f.in && f.position == 0:
		f.position = 1
	case !f.in && f.position == fadeFull:
		f.position = fadeFull - 1
	}
}

// advance moves p by n samples in the current direction, stopping at the
// end points.
func (f *Fade) advance(p uint32, n int) uint32 {
	delta := uint64(f.step) * uint64(n)
	if f.in {
		return uint32(min(uint64(p)+delta, fadeFull))
	}
	if uint64(p) <= delta {
		return 0
	}
	return p - uint32(delta)
}

func (f *Fade) Update(in []block.Shared, out []block.Exclusive) {
	f.apply()
	f.position = f.fade(in[0], out)
	f.pos.Store(f.position)
}

func (f *Fade) fade(in block.Shared, out []block.Exclusive) uint32 {
	p := f.position

	switch {
	case !in.Valid() || p == 0:
		out[0].Release()
		if p == 0 {
			return p
		}
		return f.advance(p, block.Samples)
	case !out[0].Valid():
		return f.advance(p, block.Samples)
	case p == fadeFull && (f.in || f.step == 0):
		out[0].CopyFrom(in)
		return p
	}

	d := out[0].Samples()
	for i := range d {
		d[i] = int16((int32(in.At(i)) * faderGain(p)) >> 15)
		p = f.advance(p, 1)
	}
	return p
}
