// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/rtaudio/audio"
)

// go-mp3 always produces interleaved stereo, 16-bit little endian.
const (
	channels   = 2
	frameBytes = 2 * channels
)

// mp3Reader is the part of gomp3.Decoder the source needs.
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec   mp3Reader
	buf   []byte
	carry []byte
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }

// ReadSamples returns whole frames only; len(dst) is rounded down to a
// multiple of the channel count.
func (s *source) ReadSamples(dst []int16) (int, error) {
	want := len(dst) - len(dst)%channels
	if want == 0 {
		return 0, nil
	}

	need := 2 * want
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	buf := s.buf[:need]

	// A partial frame left by the previous read starts this one.
	k := copy(buf, s.carry)
	s.carry = s.carry[:0]

	n, err := s.dec.Read(buf[k:])
	n += k

	whole := n - n%frameBytes
	samples := whole / 2
	for i := range samples {
		dst[i] = int16(binary.LittleEndian.Uint16(buf[2*i:]))
	}
	s.carry = append(s.carry, buf[whole:n]...)

	switch {
	case err == nil || errors.Is(err, io.EOF) && samples > 0:
		return samples, nil
	case errors.Is(err, io.EOF):
		return 0, io.EOF
	default:
		return samples, err
	}
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("decoding mp3: %w", err)
	}
	return &source{dec: dec, buf: make([]byte, 8192)}, nil
}
