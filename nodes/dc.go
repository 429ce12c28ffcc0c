// SPDX-License-Identifier: EPL-2.0

package nodes

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/ik5/rtaudio/block"
)

const dcFullScale = 2147418112 // 32767 << 16

// DC emits a constant level, optionally ramping to a new level over time.
type DC struct {
	target  atomic.Int32
	samples atomic.Int32
	seq     atomic.Uint32

	// owned by Update
	applied   uint32
	magnitude int32
	goal      int32
	increment int32
	ramping   bool
}

func NewDC() *DC { return &DC{} }

func (*DC) Inputs() int  { return 0 }
func (*DC) Outputs() int { return 1 }

// Amplitude jumps to level in [-1, 1] at the next cycle.
func (d *DC) Amplitude(level float32) {
	d.Ramp(level, 0)
}

// Ramp moves linearly to level over dur. Durations too long to count in
// samples are clamped.
func (d *DC) Ramp(level float32, dur time.Duration) {
	level = min(max(level, -1), 1)
	d.target.Store(int32(float64(level) * dcFullScale))
	n := min(max(dur.Seconds()*block.SampleRate, 0), math.MaxInt32)
	d.samples.Store(int32(n))
	d.seq.Add(1)
}

func (d *DC) apply() {
	seq := d.seq.Load()
	if seq == d.applied {
		return
	}
	d.applied = seq

	target := d.target.Load()
	n := d.samples.Load()
	d.ramping = false
	if n <= 0 {
		d.magnitude = target
		return
	}

	inc := (int64(target) - int64(d.magnitude)) / int64(n)
	if inc == 0 || inc > math.MaxInt32 || inc < math.MinInt32 {
		d.magnitude = target
		return
	}
	d.goal = target
	d.increment = int32(inc)
	d.ramping = true
}

func (d *DC) Update(_ []block.Shared, out []block.Exclusive) {
	d.apply()
	if !out[0].Valid() {
		return
	}

	buf := out[0].Samples()
	if !d.ramping {
		out[0].Fill(int16(d.magnitude >> 16))
		return
	}

	for i := range buf {
		next := int64(d.magnitude) + int64(d.increment)
		if (d.increment > 0 && next >= int64(d.goal)) || (d.increment < 0 && next <= int64(d.goal)) {
			d.magnitude = d.goal
			d.ramping = false
			v := int16(d.magnitude >> 16)
			for j := i; j < len(buf); j++ {
				buf[j] = v
			}
			return
		}
		d.magnitude = int32(next)
		buf[i] = int16(d.magnitude >> 16)
	}
}
