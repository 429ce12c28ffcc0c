// SPDX-License-Identifier: EPL-2.0

package dma

import "github.com/ik5/rtaudio/block"

// Format is the mapping between hardware words and stereo frames.
type Format int

const (
	// Packed16 stores one frame per word: left in bits 0-15, right in bits
	// 16-31.
	Packed16 Format = iota
	// Wide32 stores one word per channel, left then right, with the sample
	// in bits 16-31.
	Wide32
)

func (f Format) String() string {
	switch f {
	case Packed16:
		return "packed16"
	case Wide32:
		return "wide32"
	default:
		return "unknown"
	}
}

// WordsPerFrame reports how many words carry one stereo frame.
func (f Format) WordsPerFrame() int {
	if f == Wide32 {
		return 2
	}
	return 1
}

// Pack writes one frame into dst, which must hold WordsPerFrame words.
func (f Format) Pack(dst []uint32, left, right int16) {
	if f == Wide32 {
		dst[0] = uint32(uint16(left)) << 16
		dst[1] = uint32(uint16(right)) << 16
		return
	}
	dst[0] = uint32(uint16(left)) | uint32(uint16(right))<<16
}

// Unpack reads one frame from src.
func (f Format) Unpack(src []uint32) (left, right int16) {
	if f == Wide32 {
		return int16(src[0] >> 16), int16(src[1] >> 16)
	}
	return int16(src[0]), int16(src[0] >> 16)
}

// BufferWords reports the transfer buffer length, in words, that holds one
// block of frames.
func BufferWords(f Format) int {
	return block.Samples * f.WordsPerFrame()
}

// Interleave writes frames from left and right, starting at sample offset,
// into dst. Absent blocks contribute silence, as do frames past the end of
// the blocks. It returns the number of block samples consumed per channel.
func Interleave(f Format, dst []uint32, left, right block.Shared, offset int) int {
	return interleave(f, dst, left, offset, right, offset)
}

func interleave(f Format, dst []uint32, left block.Shared, lo int, right block.Shared, ro int) int {
	w := f.WordsPerFrame()
	frames := len(dst) / w
	n := max(min(frames, block.Samples-max(lo, ro)), 0)

	for i := range n {
		f.Pack(dst[i*w:], left.At(lo+i), right.At(ro+i))
	}
	clear(dst[n*w:])

	return n
}

// Deinterleave splits frames from src into left and right, starting at
// sample offset. Frames that do not fit in the blocks are discarded. It
// returns the number of samples written per channel.
func Deinterleave(f Format, src []uint32, left, right block.Exclusive, offset int) int {
	w := f.WordsPerFrame()
	n := min(len(src)/w, block.Samples-offset)
	if n <= 0 {
		return 0
	}

	l, r := left.Samples(), right.Samples()
	for i := range n {
		a, b := f.Unpack(src[i*w:])
		if l != nil {
			l[offset+i] = a
		}
		if r != nil {
			r[offset+i] = b
		}
	}

	return n
}
