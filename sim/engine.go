// SPDX-License-Identifier: EPL-2.0

package sim

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ik5/rtaudio/dma"
	"github.com/ik5/rtaudio/graph"
)

// Stats is a snapshot of engine counters.
type Stats struct {
	Interrupts uint64 `json:"interrupts"`
	Cycles     uint64 `json:"cycles"`
	Overruns   uint64 `json:"overruns"`
	Dropped    uint64 `json:"dropped"`
	Starved    uint64 `json:"starved"`
	LiveBlocks int    `json:"live_blocks"`
}

// Engine simulates the transfer interrupt for one output and one input
// adapter.
type Engine struct {
	cfg    Config
	log    *slog.Logger
	period time.Duration

	g   *graph.Graph
	out *dma.Output
	in  *dma.Input

	mu     sync.Mutex
	tx, rx []uint32
	active dma.Half

	interrupts atomic.Uint64
	overruns   atomic.Uint64
}

// New returns an engine for g. Either adapter may be nil, not both; they
// are expected to be nodes of g.
func New(cfg Config, g *graph.Graph, out *dma.Output, in *dma.Input) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrNilGraph
	}
	if out == nil && in == nil {
		return nil, ErrNoAdapters
	}

	words := dma.BufferWords(cfg.Format)
	return &Engine{
		cfg:    cfg,
		log:    cfg.logger(),
		period: cfg.period(),
		g:      g,
		out:    out,
		in:     in,
		tx:     make([]uint32, words),
		rx:     make([]uint32, words),
	}, nil
}

// Step performs one interrupt and reports whether the graph ran.
func (e *Engine) Step() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	run := false
	if e.out != nil {
		run = e.out.InterruptHandler(e.tx, e.active)
	}
	if e.in != nil {
		if e.cfg.Loopback {
			copy(e.rx, e.tx)
		}
		if e.in.InterruptHandler(e.rx, e.active) {
			run = true
		}
	}
	if run {
		e.g.Run()
	}

	if e.cfg.Mode == dma.Circular {
		e.active = e.active.Other()
	}
	e.interrupts.Add(1)

	return run
}

// Run ticks until ctx is done and returns ctx.Err(). Ticks whose work takes
// longer than the period are counted as overruns.
func (e *Engine) Run(ctx context.Context) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if e.cfg.CPU >= 0 {
		if err := setAffinity(e.cfg.CPU); err != nil {
			e.log.Warn("cpu pinning failed", slog.Int("cpu", e.cfg.CPU), slog.Any("error", err))
		}
	}

	e.log.Info("engine started",
		slog.String("mode", e.cfg.Mode.String()),
		slog.String("format", e.cfg.Format.String()),
		slog.Duration("period", e.period),
		slog.Bool("loopback", e.cfg.Loopback))

	tick := time.NewTicker(e.period)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			s := e.Stats()
			e.log.Info("engine stopped",
				slog.Uint64("interrupts", s.Interrupts),
				slog.Uint64("cycles", s.Cycles),
				slog.Uint64("overruns", s.Overruns),
				slog.Uint64("dropped", s.Dropped),
				slog.Int("live_blocks", s.LiveBlocks))
			return ctx.Err()
		case <-tick.C:
			start := time.Now()
			e.Step()
			if time.Since(start) > e.period {
				e.overruns.Add(1)
			}
		}
	}
}

// Stats returns the current counters. It is safe to call while Run is
// active.
func (e *Engine) Stats() Stats {
	s := Stats{
		Interrupts: e.interrupts.Load(),
		Cycles:     e.g.Cycles(),
		Overruns:   e.overruns.Load(),
		Starved:    e.g.Starved(),
		LiveBlocks: e.g.Pool().AllocatedCount(),
	}
	if e.in != nil {
		s.Dropped = e.in.Dropped()
	}
	return s
}
