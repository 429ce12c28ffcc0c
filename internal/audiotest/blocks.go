// SPDX-License-Identifier: EPL-2.0

package audiotest

import "github.com/ik5/rtaudio/block"

// Filled returns a shared block from p with every sample set to v. It
// returns an absent handle when p is exhausted.
func Filled(p *block.Pool, v int16) block.Shared {
	e := p.Alloc()
	if !e.Valid() {
		return block.Shared{}
	}
	e.Fill(v)
	return e.Share()
}

// Ramp returns a shared block whose sample i is start+i*step.
func Ramp(p *block.Pool, start, step int) block.Shared {
	e := p.Alloc()
	if !e.Valid() {
		return block.Shared{}
	}
	for i := range block.Samples {
		e.Set(i, int16(start+i*step))
	}
	return e.Share()
}

// Exhaust allocates every free slot of p and returns the handles so the
// caller can release them later.
func Exhaust(p *block.Pool) []block.Exclusive {
	var held []block.Exclusive
	for {
		e := p.Alloc()
		if !e.Valid() {
			return held
		}
		held = append(held, e)
	}
}

// ReleaseAll releases every handle in hs.
func ReleaseAll(hs []block.Exclusive) {
	for i := range hs {
		hs[i].Release()
	}
}

// Samples copies a shared block into a new slice. Absent blocks read as
// silence.
func Samples(s block.Shared) []int16 {
	out := make([]int16, block.Samples)
	s.CopyTo(out)
	return out
}
