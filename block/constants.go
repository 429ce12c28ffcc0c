// SPDX-License-Identifier: EPL-2.0

package block

import "time"

const (
	// Samples is the number of 16-bit samples in one block.
	Samples = 128

	// PoolSize is the number of blocks in a Pool.
	PoolSize = 32

	// SampleRate is the exact codec sample rate in Hz.
	SampleRate = 44117.64706

	// SampleRateHz is SampleRate rounded to whole hertz, as file headers
	// and decoders express it.
	SampleRateHz = 44118

	// maxRefs bounds the reference count of a single slot.
	maxRefs = 255
)

// Period is the time one block represents at SampleRate, truncated to the
// nanosecond.
const Period = Samples * time.Second * 1e5 / 4411764706
