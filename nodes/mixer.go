// SPDX-License-Identifier: EPL-2.0

package nodes

import (
	"sync/atomic"

	"github.com/ik5/rtaudio/block"
	"github.com/ik5/rtaudio/utils"
)

// Mixer sums N inputs, each with its own gain, into one output with
// saturation. Absent inputs contribute nothing.
type Mixer struct {
	gains []atomic.Int32 // Q16
}

// NewMixer returns a mixer with n inputs at unity gain.
func NewMixer(n int) *Mixer {
	m := &Mixer{gains: make([]atomic.Int32, n)}
	for i := range m.gains {
		m.gains[i].Store(utils.UnityQ16)
	}
	return m
}

func (m *Mixer) Inputs() int { return len(m.gains) }
func (*Mixer) Outputs() int  { return 1 }

// Gain sets the gain of input ch. Out-of-range channels are ignored.
func (m *Mixer) Gain(ch int, level float32) {
	if ch < 0 || ch >= len(m.gains) {
		return
	}
	m.gains[ch].Store(utils.GainQ16(level))
}

func (m *Mixer) Update(in []block.Shared, out []block.Exclusive) {
	if !out[0].Valid() {
		return
	}

	d := out[0].Samples()
	for ch, src := range in {
		if !src.Valid() {
			continue
		}
		g := m.gains[ch].Load()
		if g == utils.UnityQ16 {
			for i := range d {
				d[i] = utils.AddSaturate16(d[i], src.At(i))
			}
			continue
		}
		for i := range d {
			d[i] = utils.AddSaturate16(d[i], utils.MulQ16(src.At(i), g))
		}
	}
}
