// SPDX-License-Identifier: EPL-2.0

package nodes

import (
	"sync/atomic"

	"github.com/ik5/rtaudio/block"
	"github.com/ik5/rtaudio/utils"
)

// EnvelopeState is the stage an Envelope is in.
type EnvelopeState int32

const (
	EnvelopeIdle EnvelopeState = iota
	EnvelopeDelay
	EnvelopeAttack
	EnvelopeHold
	EnvelopeDecay
	EnvelopeSustain
	EnvelopeRelease
	EnvelopeForced // quick release before a retrigger
)

func (s EnvelopeState) String() string {
	switch s {
	case EnvelopeIdle:
		return "idle"
	case EnvelopeDelay:
		return "delay"
	case EnvelopeAttack:
		return "attack"
	case EnvelopeHold:
		return "hold"
	case EnvelopeDecay:
		return "decay"
	case EnvelopeSustain:
		return "sustain"
	case EnvelopeRelease:
		return "release"
	case EnvelopeForced:
		return "forced"
	default:
		return "unknown"
	}
}

const (
	// envGroup is the number of samples sharing one envelope step.
	envGroup = 8

	envUnity    = 1 << 30
	envMaxCount = 0xffff
)

const (
	noteNone int32 = iota
	noteOn
	noteOff
)

// Envelope shapes its input with a delay, attack, hold, decay, sustain,
// release envelope. Times are stored in groups of eight samples.
//
// NoteOn and NoteOff take effect at the next cycle; when both are called
// between two cycles the later one wins.
type Envelope struct {
	delay, attack, hold, decay, release, forced atomic.Uint32
	sustain                                     atomic.Int32
	request                                     atomic.Int32
	state                                       atomic.Int32

	// owned by Update
	st    EnvelopeState
	count uint32
	mult  int32 // envUnity = full scale
	inc   int32
}

// NewEnvelope returns an idle envelope with a 10.5 ms attack, 2.5 ms hold,
// 35 ms decay, half-level sustain and 300 ms release.
func NewEnvelope() *Envelope {
	e := &Envelope{}
	e.Delay(0)
	e.Attack(10.5)
	e.Hold(2.5)
	e.Decay(35)
	e.Sustain(0.5)
	e.Release(300)
	e.ReleaseNoteOn(5)
	return e
}

func (*Envelope) Inputs() int  { return 1 }
func (*Envelope) Outputs() int { return 1 }

// msToGroups converts milliseconds to eight-sample groups, rounding up.
func msToGroups(ms float32) uint32 {
	samples := min(max(float64(ms), 0)*block.SampleRate/1000, envMaxCount*envGroup)
	return min((uint32(samples)+envGroup-1)/envGroup, envMaxCount)
}

func (e *Envelope) Delay(ms float32) { e.delay.Store(msToGroups(ms)) }
func (e *Envelope) Hold(ms float32)  { e.hold.Store(msToGroups(ms)) }

func (e *Envelope) Attack(ms float32)  { e.attack.Store(max(msToGroups(ms), 1)) }
func (e *Envelope) Decay(ms float32)   { e.decay.Store(max(msToGroups(ms), 1)) }
func (e *Envelope) Release(ms float32) { e.release.Store(max(msToGroups(ms), 1)) }

// ReleaseNoteOn sets how quickly a sounding envelope fades before NoteOn
// restarts it.
func (e *Envelope) ReleaseNoteOn(ms float32) { e.forced.Store(max(msToGroups(ms), 1)) }

// Sustain sets the sustain level in [0, 1].
func (e *Envelope) Sustain(level float32) {
	level = min(max(level, 0), 1)
	e.sustain.Store(int32(float64(level) * envUnity))
}

// NoteOn starts the envelope, or retriggers it after a short forced
// release when it is already sounding.
func (e *Envelope) NoteOn() { e.request.Store(noteOn) }

// NoteOff moves a sounding envelope to its release stage.
func (e *Envelope) NoteOff() { e.request.Store(noteOff) }

// State reports the stage reached at the end of the last cycle.
func (e *Envelope) State() EnvelopeState { return EnvelopeState(e.state.Load()) }

// Active reports whether the envelope produced sound in the last cycle.
func (e *Envelope) Active() bool { return e.State() != EnvelopeIdle }

func (e *Envelope) start() {
	e.mult = 0
	e.count = e.delay.Load()
	if e.count > 0 {
		e.st = EnvelopeDelay
		e.inc = 0
		return
	}
	e.toAttack()
}

func (e *Envelope) toAttack() {
	e.st = EnvelopeAttack
	e.count = e.attack.Load()
	e.inc = envUnity / int32(e.count)
}

func (e *Envelope) toDecay() {
	e.st = EnvelopeDecay
	e.count = e.decay.Load()
	e.inc = (e.sustain.Load() - envUnity) / int32(e.count)
}

// fadeTo starts a linear fall to silence over count groups.
func (e *Envelope) fadeTo(st EnvelopeState, count uint32) {
	e.st = st
	e.count = count
	e.inc = -e.mult / int32(count)
}

func (e *Envelope) command() {
	switch e.request.Swap(noteNone) {
	case noteOn:
		switch e.st {
		case EnvelopeIdle, EnvelopeDelay:
			e.start()
		case EnvelopeForced:
		default:
			e.fadeTo(EnvelopeForced, e.forced.Load())
		}
	case noteOff:
		switch e.st {
		case EnvelopeIdle, EnvelopeRelease, EnvelopeForced:
		default:
			e.fadeTo(EnvelopeRelease, e.release.Load())
		}
	}
}

// next moves to the stage after the one whose count ran out. It reports
// false when the envelope has gone idle.
func (e *Envelope) next() bool {
	switch e.st {
	case EnvelopeDelay:
		e.toAttack()
	case EnvelopeAttack:
		if h := e.hold.Load(); h > 0 {
			e.st = EnvelopeHold
			e.count = h
			e.mult = envUnity
			e.inc = 0
		} else {
			e.toDecay()
		}
	case EnvelopeHold:
		e.toDecay()
	case EnvelopeDecay:
		e.st = EnvelopeSustain
		e.count = envMaxCount
		e.mult = e.sustain.Load()
		e.inc = 0
	case EnvelopeSustain:
		e.count = envMaxCount
	case EnvelopeRelease:
		e.st = EnvelopeIdle
		e.mult, e.inc = 0, 0
		return false
	case EnvelopeForced:
		e.start()
	}
	return true
}

func (e *Envelope) Update(in []block.Shared, out []block.Exclusive) {
	e.command()
	e.shape(in[0], out)
	e.state.Store(int32(e.st))
}

// shape runs one block through the envelope. Absent input still advances
// it; an idle envelope produces silence.
func (e *Envelope) shape(in block.Shared, out []block.Exclusive) {
	if e.st == EnvelopeIdle || !in.Valid() {
		out[0].Release()
	}
	if e.st == EnvelopeIdle {
		return
	}

	d := out[0].Samples()
	for g := 0; g < block.Samples; g += envGroup {
		if e.count == 0 && !e.next() {
			if d != nil {
				clear(d[g:])
			}
			return
		}

		if d != nil {
			// 16-bit gain interpolated across the group
			mult := int64(e.mult >> 14)
			inc := int64(e.inc >> 17)
			for j := g; j < g+envGroup; j++ {
				mult += inc
				d[j] = utils.Saturate16(int32((int64(in.At(j)) * mult) >> 16))
			}
		}

		e.mult += e.inc
		e.count--
	}
}
