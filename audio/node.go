// SPDX-License-Identifier: EPL-2.0

package audio

import "github.com/ik5/rtaudio/block"

// Node is one processing unit of an audio graph.
//
// Inputs and Outputs are fixed for the lifetime of the node. Update is called
// once per cycle with exactly Inputs() input handles and Outputs() output
// handles:
//
//   - in[i] is absent when the input is unconnected or its producer had no
//     output this cycle. Absence reads as silence. The caller owns every
//     input handle; a node that must keep data across cycles clones it.
//   - out[i] arrives freshly allocated and zeroed, or absent when the pool
//     was exhausted. A node fills it, releases it to signal silence, or
//     replaces it with a block it owns. Whatever is left in out[i] when
//     Update returns is passed downstream.
//
// Update runs inside the real-time cycle: it must not block, allocate from
// the heap or wait on other goroutines.
type Node interface {
	Inputs() int
	Outputs() int
	Update(in []block.Shared, out []block.Exclusive)
}
