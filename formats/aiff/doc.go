// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files using github.com/go-audio/aiff.
//
// Integer PCM at 16, 24 or 32 bits is accepted and delivered as int16
// samples through audio.Source:
//
//	f, _ := os.Open("loop.aif")
//	src, err := aiff.Decoder{}.Decode(f)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    // not AIFF
//	}
//
// The go-audio decoder needs to seek between chunks; readers that cannot
// seek are read into memory first.
package aiff
