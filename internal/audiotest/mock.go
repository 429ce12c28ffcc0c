// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides sources and block helpers for tests.
package audiotest

import (
	"io"
	"math"
)

// MockSource generates interleaved int16 samples from a waveform function.
// It satisfies audio.Source without importing it.
type MockSource struct {
	sampleRate int
	channels   int
	frames     int // total frames to generate
	generated  int
	waveform   func(frame, channel int) int16
	closed     bool
}

// NewMockSource returns a source producing frames frames of waveform.
func NewMockSource(sampleRate, channels, frames int, waveform func(frame, channel int) int16) *MockSource {
	return &MockSource{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		waveform:   waveform,
	}
}

func NewSilentSource(sampleRate, channels, frames int) *MockSource {
	return NewConstantSource(sampleRate, channels, frames, 0)
}

func NewConstantSource(sampleRate, channels, frames int, value int16) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) int16 { return value })
}

// NewSineSource generates a sine at frequency Hz with the given peak
// amplitude on every channel.
func NewSineSource(sampleRate, channels, frames int, frequency float64, amplitude int16) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(frame, _ int) int16 {
		t := float64(frame) / float64(sampleRate)
		return int16(float64(amplitude) * math.Sin(2*math.Pi*frequency*t))
	})
}

// NewRampSource emits frame+channel*offset, wrapped to int16, so every
// sample identifies its position.
func NewRampSource(sampleRate, channels, frames int, offset int) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(frame, channel int) int16 {
		return int16(frame + channel*offset)
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) Closed() bool    { return m.closed }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Reset rewinds the generator.
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []int16) (int, error) {
	if m.generated >= m.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/m.channels, m.frames-m.generated)
	for f := range n {
		for c := range m.channels {
			dst[f*m.channels+c] = m.waveform(m.generated+f, c)
		}
	}
	m.generated += n

	if m.generated >= m.frames {
		return n * m.channels, io.EOF
	}
	return n * m.channels, nil
}

// FailingSource fails every read with a fixed error.
type FailingSource struct {
	sampleRate int
	channels   int
	err        error
}

func NewFailingSource(sampleRate, channels int, err error) *FailingSource {
	return &FailingSource{sampleRate: sampleRate, channels: channels, err: err}
}

func (f *FailingSource) SampleRate() int                  { return f.sampleRate }
func (f *FailingSource) Channels() int                    { return f.channels }
func (f *FailingSource) Close() error                     { return nil }
func (f *FailingSource) ReadSamples([]int16) (int, error) { return 0, f.err }

// StallingSource returns no samples and no error for its first stalls
// reads, then reads from src. A negative stalls never ends.
type StallingSource struct {
	*MockSource
	stalls int
	reads  int
}

func NewStallingSource(src *MockSource, stalls int) *StallingSource {
	return &StallingSource{MockSource: src, stalls: stalls}
}

// Stalled reports how many reads returned nothing.
func (s *StallingSource) Stalled() int { return s.reads }

func (s *StallingSource) ReadSamples(dst []int16) (int, error) {
	if s.stalls < 0 || s.reads < s.stalls {
		s.reads++
		return 0, nil
	}
	return s.MockSource.ReadSamples(dst)
}
