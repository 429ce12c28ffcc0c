// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"
	"github.com/ik5/rtaudio/audio"
	"github.com/ik5/rtaudio/internal/pcm"
)

const formatPCM = 1

type Decoder struct{}

// Decode reads the WAV header from r and returns a Source positioned at the
// first sample. Readers that cannot seek are buffered in memory first.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := pcm.Seekable(r)
	if err != nil {
		return nil, fmt.Errorf("reading wav data: %w", err)
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}
	if dec.WavAudioFormat != formatPCM {
		return nil, fmt.Errorf("%w: format tag %d", ErrNotPCM, dec.WavAudioFormat)
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
	}

	src, err := pcm.NewSource(dec, int(dec.SampleRate), int(dec.NumChans), int(dec.BitDepth))
	if err != nil {
		return nil, err
	}
	return src, nil
}
