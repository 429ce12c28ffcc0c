// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts go-audio integer decoders to audio.Source.
package pcm

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/rtaudio/audio"
)

// ErrUnsupportedBitDepth is returned for bit depths that cannot be scaled
// to 16 bits.
var ErrUnsupportedBitDepth = errors.New("unsupported bit depth")

// Reader is the pull side of a go-audio decoder.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

var _ audio.Source = (*Source)(nil)

// Source reads integer PCM from a Reader and scales it to int16.
type Source struct {
	r        Reader
	rate     int
	channels int
	shift    int
	buf      goaudio.IntBuffer
}

// NewSource wraps r, which produces bitDepth-bit signed samples.
func NewSource(r Reader, rate, channels, bitDepth int) (*Source, error) {
	if bitDepth < 16 || bitDepth > 32 || bitDepth%8 != 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	return &Source{
		r:        r,
		rate:     rate,
		channels: channels,
		shift:    bitDepth - 16,
		buf: goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
			SourceBitDepth: bitDepth,
		},
	}, nil
}

func (s *Source) SampleRate() int { return s.rate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) Close() error    { return nil }

func (s *Source) ReadSamples(dst []int16) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if cap(s.buf.Data) < len(dst) {
		s.buf.Data = make([]int, len(dst))
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.r.PCMBuffer(&s.buf)
	if n == 0 {
		if err == nil || errors.Is(err, io.EOF) {
			return 0, io.EOF
		}
		return 0, err
	}

	for i, v := range s.buf.Data[:n] {
		dst[i] = int16(v >> s.shift)
	}

	if err != nil && !errors.Is(err, io.EOF) {
		return n, err
	}
	return n, nil
}

// Seekable returns r itself when it can seek, otherwise an in-memory copy
// of everything r yields. The go-audio decoders jump between chunks.
func Seekable(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}
