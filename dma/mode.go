// SPDX-License-Identifier: EPL-2.0

package dma

import (
	"fmt"
	"sync/atomic"

	"github.com/ik5/rtaudio/block"
)

// Half names a half of a circular transfer buffer.
type Half int

const (
	First Half = iota
	Second
)

func (h Half) String() string {
	if h == First {
		return "first"
	}
	return "second"
}

// Other returns the opposite half.
func (h Half) Other() Half {
	if h == First {
		return Second
	}
	return First
}

// Mode is the transfer buffer discipline.
type Mode int

const (
	Circular Mode = iota
	OneShot
)

func (m Mode) String() string {
	switch m {
	case Circular:
		return "circular"
	case OneShot:
		return "oneshot"
	default:
		return "unknown"
	}
}

// region returns the part of buf the adapter services when the engine
// reports active.
func (m Mode) region(buf []uint32, active Half) []uint32 {
	if m == OneShot {
		return buf
	}
	half := len(buf) / 2
	if active == First {
		return buf[half:]
	}
	return buf[:half]
}

// triggers reports whether an interrupt for active marks the start of a new
// block period.
func (m Mode) triggers(active Half) bool {
	return m == OneShot || active == First
}

// Arbiter hands update responsibility to exactly one adapter.
type Arbiter struct {
	taken atomic.Bool
}

// Claim returns true for the first caller only.
func (a *Arbiter) Claim() bool {
	return a.taken.CompareAndSwap(false, true)
}

// Config configures an adapter.
type Config struct {
	// Pool supplies blocks; nil selects block.DefaultPool.
	Pool *block.Pool

	Mode   Mode
	Format Format

	// Responsible asks for update responsibility. With an Arbiter set,
	// responsibility is granted only if the claim succeeds.
	Responsible bool
	Arbiter     *Arbiter
}

// Validate reports configuration errors.
func (c Config) Validate() error {
	if c.Mode != Circular && c.Mode != OneShot {
		return fmt.Errorf("%w: %d", ErrInvalidMode, c.Mode)
	}
	if c.Format != Packed16 && c.Format != Wide32 {
		return fmt.Errorf("%w: %d", ErrInvalidFormat, c.Format)
	}
	return nil
}

func (c Config) pool() *block.Pool {
	if c.Pool == nil {
		return block.DefaultPool()
	}
	return c.Pool
}

func (c Config) responsible() bool {
	if !c.Responsible {
		return false
	}
	if c.Arbiter == nil {
		return true
	}
	return c.Arbiter.Claim()
}
