// SPDX-License-Identifier: EPL-2.0

package graph

import (
	"fmt"

	"github.com/ik5/rtaudio/audio"
	"github.com/ik5/rtaudio/block"
)

// Port names one output of an upstream node.
type Port struct {
	Node   string
	Output int

	connected bool
}

// Unconnected leaves an input open; the node sees silence on it.
var Unconnected = Port{}

// From returns the port for output index output of the node called node.
func From(node string, output int) Port {
	return Port{Node: node, Output: output, connected: true}
}

func (p Port) Connected() bool { return p.connected }

type entry struct {
	name   string
	node   audio.Node
	inputs []Port
}

// Builder records nodes in processing order. Inputs may only refer to nodes
// added earlier, so the declaration order is a topological order and a
// cycle can not be expressed without an error.
type Builder struct {
	pool    *block.Pool
	entries []entry
	index   map[string]int
	err     error
}

// NewBuilder starts a graph whose blocks come from pool. A nil pool selects
// block.DefaultPool.
func NewBuilder(pool *block.Pool) *Builder {
	if pool == nil {
		pool = block.DefaultPool()
	}
	return &Builder{
		pool:  pool,
		index: make(map[string]int),
	}
}

// Add appends a node fed by the given ports, in input order. Inputs beyond
// the ports given are unconnected. Ports are resolved by Build, so a port
// naming a node added later is reported there. The first error is kept and
// returned by Build; later calls are ignored.
func (b *Builder) Add(name string, n audio.Node, inputs ...Port) *Builder {
	if b.err != nil {
		return b
	}
	b.err = b.check(name, n, inputs)
	if b.err != nil {
		return b
	}

	b.index[name] = len(b.entries)
	b.entries = append(b.entries, entry{
		name:   name,
		node:   n,
		inputs: append([]Port(nil), inputs...),
	})

	return b
}

func (b *Builder) check(name string, n audio.Node, inputs []Port) error {
	if name == "" {
		return ErrEmptyName
	}
	if n == nil {
		return fmt.Errorf("%w: %q", ErrNilNode, name)
	}
	if _, ok := b.index[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateNode, name)
	}
	if len(inputs) > n.Inputs() {
		return fmt.Errorf("%w: %q takes %d, got %d", ErrTooManyInputs, name, n.Inputs(), len(inputs))
	}

	return nil
}

// Build validates the declarations and fixes the processing order.
func (b *Builder) Build() (*Graph, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.entries) == 0 {
		return nil, ErrEmptyGraph
	}

	for i, e := range b.entries {
		for k, p := range e.inputs {
			if !p.connected {
				continue
			}
			up, ok := b.index[p.Node]
			if !ok {
				return nil, fmt.Errorf("%w: %q input %d refers to %q", ErrUnknownNode, e.name, k, p.Node)
			}
			if up >= i {
				return nil, fmt.Errorf("%w: %q input %d refers to %q", ErrNotFeedForward, e.name, k, p.Node)
			}
			if p.Output < 0 || p.Output >= b.entries[up].node.Outputs() {
				return nil, fmt.Errorf("%w: %q input %d refers to %q output %d", ErrOutputRange, e.name, k, p.Node, p.Output)
			}
		}
	}

	g := &Graph{
		pool:  b.pool,
		nodes: make([]step, len(b.entries)),
		index: make(map[string]int, len(b.entries)),
	}

	for i, e := range b.entries {
		s := step{
			name:   e.name,
			node:   e.node,
			routes: make([]route, e.node.Inputs()),
			in:     make([]block.Shared, e.node.Inputs()),
			out:    make([]block.Exclusive, e.node.Outputs()),
			result: make([]block.Shared, e.node.Outputs()),
		}
		for k := range s.routes {
			s.routes[k] = route{from: -1}
		}
		for k, p := range e.inputs {
			if p.connected {
				s.routes[k] = route{from: b.index[p.Node], output: p.Output}
			}
		}
		g.nodes[i] = s
		g.index[e.name] = i
	}

	return g, nil
}
