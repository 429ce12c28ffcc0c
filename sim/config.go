// SPDX-License-Identifier: EPL-2.0

package sim

import (
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/ik5/rtaudio/block"
	"github.com/ik5/rtaudio/dma"
)

// Config configures an Engine. Mode and Format must match the adapters the
// engine drives.
type Config struct {
	Mode   dma.Mode
	Format dma.Format

	// Period is the time between ticks. Zero selects the interrupt period of
	// the mode: half a block period when circular, a full one otherwise.
	Period time.Duration

	// CPU is the core Run pins its thread to. Negative leaves the thread
	// unpinned.
	CPU int

	// Loopback copies the transmit buffer into the receive buffer on every
	// tick. Without it the input adapter reads silence.
	Loopback bool

	Logger *slog.Logger
}

// DefaultConfig returns a circular, packed, unpinned configuration.
func DefaultConfig() Config {
	return Config{
		Mode:   dma.Circular,
		Format: dma.Packed16,
		CPU:    -1,
	}
}

func (c Config) Validate() error {
	if c.Period < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidPeriod, c.Period)
	}
	if c.CPU >= runtime.NumCPU() {
		return fmt.Errorf("%w: %d of %d", ErrInvalidCPU, c.CPU, runtime.NumCPU())
	}
	return dma.Config{Mode: c.Mode, Format: c.Format}.Validate()
}

func (c Config) period() time.Duration {
	switch {
	case c.Period > 0:
		return c.Period
	case c.Mode == dma.Circular:
		return block.Period / 2
	default:
		return block.Period
	}
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}
