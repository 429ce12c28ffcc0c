// SPDX-License-Identifier: EPL-2.0

package nodes

import (
	"testing"

	"github.com/ik5/rtaudio/audio"
	"github.com/ik5/rtaudio/block"
)

// update runs n once with freshly allocated outputs and returns them as
// shared handles. The caller releases the inputs and results.
func update(t *testing.T, p *block.Pool, n audio.Node, in ...block.Shared) []block.Shared {
	t.Helper()

	if len(in) != n.Inputs() {
		t.Fatalf("update: %d inputs for a node taking %d", len(in), n.Inputs())
	}
	out := make([]block.Exclusive, n.Outputs())
	for i := range out {
		out[i] = p.Alloc()
	}
	n.Update(in, out)

	res := make([]block.Shared, len(out))
	for i := range out {
		res[i] = out[i].Share()
	}
	return res
}

func release(hs ...block.Shared) {
	for i := range hs {
		hs[i].Release()
	}
}

var (
	_ audio.Node = (*Sine)(nil)
	_ audio.Node = (*DC)(nil)
	_ audio.Node = (*Amplifier)(nil)
	_ audio.Node = (*Mixer)(nil)
	_ audio.Node = (*Peak)(nil)
	_ audio.Node = (*RMS)(nil)
	_ audio.Node = (*Envelope)(nil)
	_ audio.Node = (*Fade)(nil)
)
