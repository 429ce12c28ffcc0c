// SPDX-License-Identifier: EPL-2.0

package rtaudio

import (
	"errors"
	"fmt"
	"os"

	"github.com/ik5/rtaudio/audio"
	"github.com/ik5/rtaudio/formats/aiff"
	"github.com/ik5/rtaudio/formats/mp3"
	"github.com/ik5/rtaudio/formats/vorbis"
	"github.com/ik5/rtaudio/formats/wav"
)

// NewRegistry returns a registry with every bundled decoder, keyed by file
// extension.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	return reg
}

// fileSource closes the underlying file along with the decoder.
type fileSource struct {
	audio.Source
	f *os.File
}

func (s fileSource) Close() error {
	return errors.Join(s.Source.Close(), s.f.Close())
}

// OpenFile decodes path with the decoder reg holds for its extension.
// Closing the returned Source closes the file.
func OpenFile(reg *audio.Registry, path string) (audio.Source, error) {
	dec, err := reg.ForPath(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	src, err := dec.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return fileSource{Source: src, f: f}, nil
}
