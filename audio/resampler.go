// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"math"

	"github.com/ik5/rtaudio/utils"
)

// Resampler converts an interleaved int16 Source to another sample rate with
// Catmull-Rom interpolation. The target rate may be fractional, which the
// codec rate (44117.647 Hz) requires. Channel count is preserved.
type Resampler struct {
	src      Source
	dstRate  float64
	step     float64 // source frames per output frame
	channels int

	// window[0..3] holds frames t-1, t, t+1, t+2 around the read position.
	window [4][]float32
	have   [4]bool
	primed bool
	pos    float64

	in    []int16
	inLen int
	inPos int
	eof   bool

	// one-pole low-pass applied to source frames when downsampling
	lowpass bool
	warm    bool
	state   []float32
}

// NewResampler wraps src so that it produces samples at dstRate Hz.
func NewResampler(src Source, dstRate float64) (*Resampler, error) {
	if dstRate <= 0 || src.SampleRate() <= 0 {
		return nil, ErrInvalidRate
	}

	ch := src.Channels()
	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		step:     float64(src.SampleRate()) / dstRate,
		channels: ch,
		in:       make([]int16, 1024*ch),
		state:    make([]float32, ch),
	}
	r.lowpass = r.step > 1
	for i := range r.window {
		r.window[i] = make([]float32, ch)
	}

	return r, nil
}

func (r *Resampler) SampleRate() int { return int(math.Round(r.dstRate)) }
func (r *Resampler) Channels() int   { return r.channels }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("closing resampler source: %w", err)
	}
	return nil
}

// nextFrame pulls one source frame into dst. It reports false at end of
// stream.
func (r *Resampler) nextFrame(dst []float32) (bool, error) {
	if r.inPos >= r.inLen {
		if r.eof {
			return false, nil
		}
		n, err := r.src.ReadSamples(r.in)
		r.inLen = n - n%r.channels
		r.inPos = 0
		if err == io.EOF {
			r.eof = true
		} else if err != nil {
			return false, fmt.Errorf("reading source: %w", err)
		}
		if r.inLen == 0 {
			if r.eof {
				return false, nil
			}
			return r.nextFrame(dst)
		}
	}

	for c := range r.channels {
		v := float32(r.in[r.inPos+c])
		if r.lowpass {
			if !r.warm {
				r.state[c] = v
			}
			v = 0.5*v + 0.5*r.state[c]
			r.state[c] = v
		}
		dst[c] = v
	}
	r.inPos += r.channels
	r.warm = true

	return true, nil
}

// advance shifts the window by one frame. Past the end of the stream the
// last frame is repeated so interpolation keeps four points; it reports
// false once the window's current frame is no longer real.
func (r *Resampler) advance() (bool, error) {
	first := r.window[0]
	copy(r.window[:], r.window[1:])
	r.window[3] = first
	copy(r.have[:], r.have[1:])

	ok, err := r.nextFrame(r.window[3])
	if err != nil {
		return false, err
	}
	if !ok {
		copy(r.window[3], r.window[2])
	}
	r.have[3] = ok

	return r.have[1], nil
}

func (r *Resampler) prime() (bool, error) {
	r.primed = true

	ok, err := r.nextFrame(r.window[1])
	if err != nil || !ok {
		return false, err
	}
	copy(r.window[0], r.window[1])
	r.have[0], r.have[1] = true, true

	for _, i := range []int{2, 3} {
		ok, err := r.nextFrame(r.window[i])
		if err != nil {
			return false, err
		}
		if !ok {
			copy(r.window[i], r.window[i-1])
		}
		r.have[i] = ok
	}
	return true, nil
}

// ReadSamples fills dst with resampled interleaved samples. len(dst) must be
// a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []int16) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		ok, err := r.prime()
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, io.EOF
		}
	} else if !r.have[1] {
		return 0, io.EOF
	}

	written := 0
	for written < len(dst) {
		for r.pos >= 1 {
			r.pos--
			ok, err := r.advance()
			if err != nil {
				return written, err
			}
			if !ok {
				return written, io.EOF
			}
		}

		x := float32(r.pos)
		for c := range r.channels {
			v := utils.CubicInterpolate(r.window[0][c], r.window[1][c], r.window[2][c], r.window[3][c], x)
			dst[written+c] = utils.Saturate16(int32(math.Round(float64(v))))
		}
		written += r.channels
		r.pos += r.step
	}

	return written, nil
}
