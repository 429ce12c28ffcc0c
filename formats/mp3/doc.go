// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III streams with
// github.com/hajimehoshi/go-mp3.
//
// The decoder always yields interleaved stereo at the stream's sample rate;
// mono files are duplicated onto both channels by go-mp3. Samples arrive as
// int16 through audio.Source:
//
//	f, _ := os.Open("song.mp3")
//	src, err := mp3.Decoder{}.Decode(f)
//	buf := make([]int16, 4096)
//	n, err := src.ReadSamples(buf)
package mp3
