// SPDX-License-Identifier: EPL-2.0

package nodes

import (
	"math"
	"sync/atomic"

	"github.com/ik5/rtaudio/block"
)

// sineTable holds one period in 256 steps plus a guard point for
// interpolation.
var sineTable [257]int16

func init() {
	for i := range sineTable {
		sineTable[i] = int16(math.Round(32767 * math.Sin(2*math.Pi*float64(i)/256)))
	}
}

// Sine is a table-lookup sine oscillator with no inputs and one output.
type Sine struct {
	phase     atomic.Uint32
	increment atomic.Uint32
	magnitude atomic.Int32 // Q16, 65536 = full scale
}

func NewSine() *Sine { return &Sine{} }

func (*Sine) Inputs() int  { return 0 }
func (*Sine) Outputs() int { return 1 }

// Frequency sets the pitch in Hz, clamped to [0, SampleRate/2].
func (s *Sine) Frequency(hz float32) {
	f := min(max(float64(hz), 0), block.SampleRate/2)
	if math.IsNaN(f) {
		f = 0
	}
	s.increment.Store(uint32(int64(f / block.SampleRate * 4294967296.0)))
}

// Amplitude sets the level in [0, 1]. Zero silences the oscillator without
// stopping its phase.
func (s *Sine) Amplitude(level float32) {
	level = min(max(level, 0), 1)
	s.magnitude.Store(int32(level * 65536))
}

// Phase sets the current phase in degrees. Any angle is accepted and
// reduced to one turn.
func (s *Sine) Phase(deg float32) {
	d := math.Mod(float64(deg), 360)
	switch {
	case math.IsNaN(d):
		d = 0
	case d < 0:
		d += 360
	}
	s.phase.Store(uint32(int64(d * (4294967296.0 / 360.0))))
}

func (s *Sine) Update(_ []block.Shared, out []block.Exclusive) {
	inc := s.increment.Load()
	mag := s.magnitude.Load()
	ph := s.phase.Load()

	if mag == 0 || !out[0].Valid() {
		s.phase.Store(ph + inc*block.Samples)
		return
	}

	d := out[0].Samples()
	for i := range d {
		idx := ph >> 24
		frac := int64((ph >> 8) & 0xffff)
		v := int64(sineTable[idx])*(0x10000-frac) + int64(sineTable[idx+1])*frac
		d[i] = int16((v * int64(mag)) >> 32)
		ph += inc
	}
	s.phase.Store(ph)
}
