// SPDX-License-Identifier: EPL-2.0

package graph

import (
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/ik5/rtaudio/audio"
	"github.com/ik5/rtaudio/block"
)

type route struct {
	from   int // index of the upstream node, -1 when unconnected
	output int
}

type step struct {
	name   string
	node   audio.Node
	routes []route

	// scratch reused every cycle
	in     []block.Shared
	out    []block.Exclusive
	result []block.Shared
}

// Graph is a fixed feed-forward arrangement of nodes.
type Graph struct {
	pool  *block.Pool
	nodes []step
	index map[string]int

	cycles  atomic.Uint64
	starved atomic.Uint64
}

// Run processes one cycle. Each node gets freshly allocated outputs and a
// duplicate of every connected upstream output produced earlier in the same
// cycle. Outputs a node leaves behind become shared for the nodes after it;
// all of them are released before Run returns, so only blocks a node chose
// to retain outlive the cycle.
//
// Run does not allocate from the heap and never blocks. An exhausted pool
// makes the affected outputs absent.
func (g *Graph) Run() {
	for i := range g.nodes {
		s := &g.nodes[i]

		for k := range s.out {
			s.out[k] = g.pool.Alloc()
			if !s.out[k].Valid() {
				g.starved.Add(1)
			}
		}

		for k, r := range s.routes {
			if r.from < 0 {
				s.in[k] = block.Shared{}
				continue
			}
			s.in[k] = g.nodes[r.from].result[r.output].Clone()
		}

		s.node.Update(s.in, s.out)

		for k := range s.in {
			s.in[k].Release()
		}
		for k := range s.out {
			s.result[k] = s.out[k].Share()
		}
	}

	for i := range g.nodes {
		for k := range g.nodes[i].result {
			g.nodes[i].result[k].Release()
		}
	}

	g.cycles.Add(1)
}

// Len reports the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Order returns node names in processing order.
func (g *Graph) Order() []string {
	out := make([]string, len(g.nodes))
	for i := range g.nodes {
		out[i] = g.nodes[i].name
	}
	return out
}

// Node looks a node up by name.
func (g *Graph) Node(name string) (audio.Node, bool) {
	i, ok := g.index[name]
	if !ok {
		return nil, false
	}
	return g.nodes[i].node, true
}

func (g *Graph) Pool() *block.Pool { return g.pool }

// Cycles reports how many times Run completed.
func (g *Graph) Cycles() uint64 { return g.cycles.Load() }

// Starved reports how many output allocations found the pool empty.
func (g *Graph) Starved() uint64 { return g.starved.Load() }

// Close closes every node that implements io.Closer, releasing blocks held
// across cycles. The graph must not run afterwards. Queue nodes are drained
// from the calling goroutine, so user code feeding or reading them must
// have stopped first.
func (g *Graph) Close() error {
	var errs []error
	for i := range g.nodes {
		c, ok := g.nodes[i].node.(io.Closer)
		if !ok {
			continue
		}
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing %q: %w", g.nodes[i].name, err))
		}
	}
	return errors.Join(errs...)
}
