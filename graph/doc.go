// SPDX-License-Identifier: EPL-2.0

// Package graph wires audio nodes into a fixed processing order and runs
// one block through them per cycle.
//
//	g, err := graph.NewBuilder(pool).
//	    Add("tone", sine).
//	    Add("level", amp, graph.From("tone", 0)).
//	    Add("out", dac, graph.From("level", 0), graph.From("level", 0)).
//	    Build()
//
// Nodes run in the order they were added. A port may only name a node that
// was added before, which rules out feedback. Connecting one output to
// several inputs costs a reference count increment per consumer, not a copy.
package graph
