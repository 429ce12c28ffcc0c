// SPDX-License-Identifier: EPL-2.0

package nodes

import (
	"sync/atomic"

	"github.com/ik5/rtaudio/block"
	"github.com/ik5/rtaudio/utils"
)

// Amplifier scales its input by a gain. A gain of zero drops the output
// instead of writing silence.
type Amplifier struct {
	gain atomic.Int32 // Q16
}

func NewAmplifier() *Amplifier {
	a := &Amplifier{}
	a.gain.Store(utils.UnityQ16)
	return a
}

func (*Amplifier) Inputs() int  { return 1 }
func (*Amplifier) Outputs() int { return 1 }

// Gain sets the linear gain; negative values invert.
func (a *Amplifier) Gain(level float32) {
	a.gain.Store(utils.GainQ16(level))
}

func (a *Amplifier) Update(in []block.Shared, out []block.Exclusive) {
	g := a.gain.Load()
	if !in[0].Valid() || g == 0 {
		out[0].Release()
		return
	}
	if !out[0].Valid() {
		return
	}

	if g == utils.UnityQ16 {
		out[0].CopyFrom(in[0])
		return
	}

	d := out[0].Samples()
	for i := range d {
		d[i] = utils.MulQ16(in[0].At(i), g)
	}
}
