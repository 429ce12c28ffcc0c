// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/ik5/rtaudio/block"
)

const bitDepth = 16

// BlockWriter streams audio blocks into a 16-bit PCM WAV file. The header
// sizes are fixed up by Close, which is why the destination must seek.
type BlockWriter struct {
	enc      *wav.Encoder
	buf      goaudio.IntBuffer
	channels int
	frames   int
	wrote    bool
}

func NewBlockWriter(w io.WriteSeeker, sampleRate, channels int) (*BlockWriter, error) {
	if sampleRate <= 0 || channels <= 0 {
		return nil, fmt.Errorf("%w: %d Hz, %d channels", ErrInvalidFormat, sampleRate, channels)
	}

	return &BlockWriter{
		enc:      wav.NewEncoder(w, sampleRate, bitDepth, channels, formatPCM),
		channels: channels,
		buf: goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
			Data:           make([]int, 0, channels*block.Samples),
			SourceBitDepth: bitDepth,
		},
	}, nil
}

// WriteBlocks appends one block per channel, interleaving them into frames.
// An absent block is written as silence.
func (bw *BlockWriter) WriteBlocks(blocks ...block.Shared) error {
	if len(blocks) != bw.channels {
		return fmt.Errorf("%w: got %d blocks for %d channels", ErrChannelMismatch, len(blocks), bw.channels)
	}

	bw.buf.Data = bw.buf.Data[:bw.channels*block.Samples]
	for ch, b := range blocks {
		for i := range block.Samples {
			bw.buf.Data[i*bw.channels+ch] = int(b.At(i))
		}
	}

	return bw.flush(block.Samples)
}

// WriteSamples appends interleaved samples; len(s) must be a whole number
// of frames.
func (bw *BlockWriter) WriteSamples(s []int16) error {
	if len(s)%bw.channels != 0 {
		return fmt.Errorf("%w: %d samples for %d channels", ErrChannelMismatch, len(s), bw.channels)
	}

	bw.buf.Data = bw.buf.Data[:0]
	for _, v := range s {
		bw.buf.Data = append(bw.buf.Data, int(v))
	}

	return bw.flush(len(s) / bw.channels)
}

func (bw *BlockWriter) flush(frames int) error {
	if err := bw.enc.Write(&bw.buf); err != nil {
		return fmt.Errorf("writing wav data: %w", err)
	}
	bw.wrote = true
	bw.frames += frames
	return nil
}

// Frames reports how many frames have been written.
func (bw *BlockWriter) Frames() int { return bw.frames }

// Close finalizes the header. A writer that never received samples still
// produces a valid, empty file.
func (bw *BlockWriter) Close() error {
	if !bw.wrote {
		bw.buf.Data = bw.buf.Data[:0]
		if err := bw.flush(0); err != nil {
			return err
		}
	}
	if err := bw.enc.Close(); err != nil {
		return fmt.Errorf("closing wav: %w", err)
	}
	return nil
}

// WriteWAV16 writes samples, interleaved over channels, as a complete
// 16-bit PCM WAV file.
func WriteWAV16(w io.WriteSeeker, sampleRate, channels int, samples []int16) error {
	bw, err := NewBlockWriter(w, sampleRate, channels)
	if err != nil {
		return err
	}
	if err := bw.WriteSamples(samples); err != nil {
		return err
	}
	return bw.Close()
}
