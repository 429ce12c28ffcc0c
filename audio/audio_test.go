// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"slices"
	"sync"
	"testing"

	"github.com/ik5/rtaudio/internal/audiotest"
)

type stubDecoder struct {
	name string
}

func (d *stubDecoder) Decode(io.Reader) (Source, error) {
	return audiotest.NewSilentSource(44100, 2, 100), nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	wav := &stubDecoder{name: "wav"}
	mp3 := &stubDecoder{name: "mp3"}
	registry.Register("wav", wav)
	registry.Register("MP3", mp3)

	tests := []struct {
		format string
		want   Decoder
		wantOK bool
	}{
		{"wav", wav, true},
		{"WAV", wav, true},
		{"mp3", mp3, true},
		{"flac", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			got, ok := registry.Get(tt.format)
			if ok != tt.wantOK {
				t.Fatalf("Get(%q) ok = %v, want %v", tt.format, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Get(%q) returned a different decoder", tt.format)
			}
		})
	}
}

func TestRegistry_ForPath(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	ogg := &stubDecoder{name: "ogg"}
	registry.Register("ogg", ogg)

	tests := []struct {
		path    string
		wantErr error
	}{
		{path: "music/track.ogg"},
		{path: "TRACK.OGG"},
		{path: "track.flac", wantErr: ErrUnknownFormat},
		{path: "noextension", wantErr: ErrUnknownFormat},
	}

	for _, tt := range tests {
		d, err := registry.ForPath(tt.path)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("ForPath(%q) error = %v, want %v", tt.path, err, tt.wantErr)
			continue
		}
		if tt.wantErr == nil && d != ogg {
			t.Errorf("ForPath(%q) returned a different decoder", tt.path)
		}
	}
}

func TestRegistry_Formats(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	for _, f := range []string{"wav", "aiff", "mp3"} {
		registry.Register(f, &stubDecoder{name: f})
	}

	want := []string{"aiff", "mp3", "wav"}
	if got := registry.Formats(); !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}
}

func TestRegistry_Concurrent(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			registry.Register("wav", &stubDecoder{})
			registry.Get("wav")
			_ = registry.Formats()
		}()
	}
	wg.Wait()

	if _, ok := registry.Get("wav"); !ok {
		t.Error("Get(wav) failed after concurrent registration")
	}
}
