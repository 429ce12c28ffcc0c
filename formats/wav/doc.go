// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and encodes WAV files on top of github.com/go-audio/wav.
//
// # Decoding
//
// Decoder accepts integer PCM at 16, 24 or 32 bits and yields an
// audio.Source of int16 samples; wider samples keep their top 16 bits.
//
//	f, _ := os.Open("tone.wav")
//	src, err := wav.Decoder{}.Decode(f)
//
// # Encoding
//
// BlockWriter appends audio blocks, one per channel, as 16-bit frames. It is
// what the recorder drains record queues into:
//
//	f, _ := os.Create("take.wav")
//	bw, _ := wav.NewBlockWriter(f, 44118, 2)
//	_ = bw.WriteBlocks(left, right)
//	_ = bw.Close()
//
// WriteWAV16 writes a whole slice of interleaved samples in one call.
//
// Both need an io.WriteSeeker because the RIFF and data sizes are only
// known once the last sample has been written.
package wav
