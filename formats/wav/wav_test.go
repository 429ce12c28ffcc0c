// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/rtaudio/block"
	"github.com/ik5/rtaudio/internal/audiotest"
)

// createWAVFile builds a canonical 44-byte-header WAV file by hand.
func createWAVFile(format, sampleRate, channels, bits int, data []byte) []byte {
	buf := new(bytes.Buffer)
	blockAlign := channels * bits / 8

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+len(data)))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(format))
	binary.Write(buf, binary.LittleEndian, uint16(channels))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate*blockAlign))
	binary.Write(buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(buf, binary.LittleEndian, uint16(bits))

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(len(data)))
	buf.Write(data)

	return buf.Bytes()
}

func pcm16(samples ...int16) []byte {
	out := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(s))
	}
	return out
}

func readAll(t *testing.T, r io.Reader) (rate, channels int, samples []int16) {
	t.Helper()

	src, err := Decoder{}.Decode(r)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer src.Close()

	buf := make([]int16, 100)
	for {
		n, err := src.ReadSamples(buf)
		samples = append(samples, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
	return src.SampleRate(), src.Channels(), samples
}

func tempFile(t *testing.T) *os.File {
	t.Helper()

	f, err := os.Create(filepath.Join(t.TempDir(), "out.wav"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestDecoder_Header(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rate     int
		channels int
	}{
		{name: "mono 8k", rate: 8000, channels: 1},
		{name: "stereo 44.1k", rate: 44100, channels: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data := createWAVFile(formatPCM, tt.rate, tt.channels, 16, pcm16(1, 2, 3, 4))
			rate, ch, samples := readAll(t, bytes.NewReader(data))
			if rate != tt.rate || ch != tt.channels {
				t.Errorf("format = %d Hz x%d, want %d Hz x%d", rate, ch, tt.rate, tt.channels)
			}
			if len(samples) != 4 || samples[3] != 4 {
				t.Errorf("samples = %v, want [1 2 3 4]", samples)
			}
		})
	}
}

func TestDecoder_NonSeekableReader(t *testing.T) {
	t.Parallel()

	data := createWAVFile(formatPCM, 16000, 1, 16, pcm16(-5, 5))
	_, _, samples := readAll(t, io.MultiReader(bytes.NewReader(data)))
	if len(samples) != 2 || samples[0] != -5 || samples[1] != 5 {
		t.Errorf("samples = %v, want [-5 5]", samples)
	}
}

func TestDecoder_24Bit(t *testing.T) {
	t.Parallel()

	// 0x123456 and -0x123456 keep their top 16 bits.
	data := createWAVFile(formatPCM, 48000, 1, 24, []byte{0x56, 0x34, 0x12, 0xaa, 0xcb, 0xed})
	_, _, samples := readAll(t, bytes.NewReader(data))
	if len(samples) != 2 || samples[0] != 0x1234 || samples[1] != -0x1235 {
		t.Errorf("samples = %v, want [4660 -4661]", samples)
	}
}

func TestDecoder_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{name: "garbage", data: []byte("NOT A WAV FILE AT ALL, JUST TEXT"), want: ErrNotWavFile},
		{name: "float", data: createWAVFile(3, 8000, 1, 32, make([]byte, 8)), want: ErrNotPCM},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestWriteWAV16_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		samples  []int16
	}{
		{name: "mono", channels: 1, samples: []int16{0, 100, -100, 32767, -32768}},
		{name: "stereo", channels: 2, samples: []int16{1, -1, 2, -2, 3, -3}},
		{name: "empty", channels: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := tempFile(t)
			if err := WriteWAV16(f, 8000, tt.channels, tt.samples); err != nil {
				t.Fatalf("WriteWAV16() error = %v", err)
			}
			if _, err := f.Seek(0, io.SeekStart); err != nil {
				t.Fatal(err)
			}

			rate, ch, got := readAll(t, f)
			if rate != 8000 || ch != tt.channels {
				t.Errorf("format = %d Hz x%d, want 8000 Hz x%d", rate, ch, tt.channels)
			}
			if len(got) != len(tt.samples) {
				t.Fatalf("read %d samples, want %d", len(got), len(tt.samples))
			}
			for i := range got {
				if got[i] != tt.samples[i] {
					t.Errorf("sample %d = %d, want %d", i, got[i], tt.samples[i])
				}
			}
		})
	}
}

func TestWriteWAV16_Invalid(t *testing.T) {
	t.Parallel()

	f := tempFile(t)
	if err := WriteWAV16(f, 0, 1, nil); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("WriteWAV16(rate 0) error = %v, want %v", err, ErrInvalidFormat)
	}
	if err := WriteWAV16(f, 8000, 2, []int16{1, 2, 3}); !errors.Is(err, ErrChannelMismatch) {
		t.Errorf("WriteWAV16(odd stereo) error = %v, want %v", err, ErrChannelMismatch)
	}
}

func TestBlockWriter_Blocks(t *testing.T) {
	t.Parallel()

	p := block.NewPool()
	left := audiotest.Ramp(p, 0, 1)
	right := audiotest.Filled(p, -7)
	defer left.Release()
	defer right.Release()

	f := tempFile(t)
	bw, err := NewBlockWriter(f, block.SampleRateHz, 2)
	if err != nil {
		t.Fatal(err)
	}
	if err := bw.WriteBlocks(left, right); err != nil {
		t.Fatal(err)
	}
	if err := bw.WriteBlocks(block.Shared{}, right); err != nil {
		t.Fatal(err)
	}
	if err := bw.WriteBlocks(left); !errors.Is(err, ErrChannelMismatch) {
		t.Errorf("WriteBlocks(one block) error = %v, want %v", err, ErrChannelMismatch)
	}
	if bw.Frames() != 2*block.Samples {
		t.Errorf("Frames() = %d, want %d", bw.Frames(), 2*block.Samples)
	}
	if err := bw.Close(); err != nil {
		t.Fatal(err)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	rate, ch, got := readAll(t, f)
	if rate != block.SampleRateHz || ch != 2 || len(got) != 4*block.Samples {
		t.Fatalf("file = %d Hz x%d with %d samples", rate, ch, len(got))
	}
	for i := range block.Samples {
		if got[2*i] != int16(i) || got[2*i+1] != -7 {
			t.Fatalf("frame %d = (%d, %d), want (%d, -7)", i, got[2*i], got[2*i+1], i)
		}
		j := block.Samples + i
		if got[2*j] != 0 || got[2*j+1] != -7 {
			t.Fatalf("frame %d = (%d, %d), want (0, -7)", j, got[2*j], got[2*j+1])
		}
	}
}
