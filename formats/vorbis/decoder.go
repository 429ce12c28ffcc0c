// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/ik5/rtaudio/audio"
	"github.com/ik5/rtaudio/utils"
	"github.com/jfreymuth/oggvorbis"
)

// oggReader is the part of oggvorbis.Reader the source needs.
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec oggReader
	buf []float32
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return s.dec.Channels() }
func (s *source) Close() error    { return nil }

// ReadSamples decodes whole frames only, so len(dst) is rounded down to a
// multiple of the channel count.
func (s *source) ReadSamples(dst []int16) (int, error) {
	ch := max(s.dec.Channels(), 1)
	want := len(dst) - len(dst)%ch
	if want == 0 {
		return 0, nil
	}

	if cap(s.buf) < want {
		s.buf = make([]float32, want)
	}
	buf := s.buf[:want]

	n, err := s.dec.Read(buf)
	for i, v := range buf[:n] {
		dst[i] = utils.Float32ToInt16(v)
	}

	if n > 0 && err == io.EOF {
		return n, nil
	}
	return n, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("decoding ogg vorbis: %w", err)
	}
	return &source{dec: dec, buf: make([]float32, 4096)}, nil
}
