// SPDX-License-Identifier: EPL-2.0

package rtaudio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ik5/rtaudio/audio"
	"github.com/ik5/rtaudio/block"
	"github.com/ik5/rtaudio/queue"
)

// FeederConfig configures a Feeder. The zero value is usable.
type FeederConfig struct {
	Logger *slog.Logger

	// RetryInterval is how long Pump waits when a queue is full or the pool
	// is exhausted. Zero selects half a block period.
	RetryInterval time.Duration
}

func (c FeederConfig) Validate() error {
	if c.RetryInterval < 0 {
		return fmt.Errorf("%w: retry %v", ErrInvalidInterval, c.RetryInterval)
	}
	return nil
}

func (c FeederConfig) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

func (c FeederConfig) retry() time.Duration {
	if c.RetryInterval == 0 {
		return block.Period / 2
	}
	return c.RetryInterval
}

// Feeder turns a Source into blocks on one play queue per output channel.
//
// The source is resampled to the block rate when needed. Queue i carries
// source channel i modulo the channel count, so a mono source plays on
// every queue; a multichannel source feeding a single queue is downmixed.
type Feeder struct {
	log    *slog.Logger
	retry  time.Duration
	src    audio.Source
	queues []*queue.PlayQueue
	ch     int
	buf    []int16
	blocks int
}

func NewFeeder(cfg FeederConfig, src audio.Source, queues ...*queue.PlayQueue) (*Feeder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, ErrNilSource
	}
	if len(queues) == 0 {
		return nil, ErrNoQueues
	}
	if src.Channels() < 1 {
		return nil, ErrNoChannels
	}

	log := cfg.logger()
	log.Debug("feeder source",
		slog.Int("rate", src.SampleRate()),
		slog.Int("channels", src.Channels()),
		slog.Int("queues", len(queues)))

	if len(queues) == 1 && src.Channels() > 1 {
		src = audio.NewDownmix(src)
	}
	if src.SampleRate() != block.SampleRateHz {
		rs, err := audio.NewResampler(src, block.SampleRate)
		if err != nil {
			return nil, fmt.Errorf("feeder: %w", err)
		}
		src = rs
	}

	ch := src.Channels()
	return &Feeder{
		log:    log,
		retry:  cfg.retry(),
		src:    src,
		queues: queues,
		ch:     ch,
		buf:    make([]int16, ch*block.Samples),
	}, nil
}

// Blocks reports how many blocks per queue have been played so far.
func (f *Feeder) Blocks() int { return f.blocks }

// Pump plays the whole source. The final partial block is padded with
// silence. It returns nil at the end of the source, or the context error
// when cancelled first. Pump must not run concurrently with itself.
func (f *Feeder) Pump(ctx context.Context) error {
	tick := time.NewTicker(f.retry)
	defer tick.Stop()

	for {
		frames, err := f.fill(ctx, tick)
		if err != nil {
			if ctx.Err() != nil {
				f.log.Info("feed cancelled", slog.Int("blocks", f.blocks))
			}
			return err
		}
		if frames == 0 {
			break
		}

		for i, q := range f.queues {
			if err := f.play(ctx, tick, q, i%f.ch); err != nil {
				f.log.Info("feed cancelled", slog.Int("blocks", f.blocks))
				return err
			}
		}
		f.blocks++

		if frames < block.Samples {
			break
		}
	}

	f.log.Info("feed finished", slog.Int("blocks", f.blocks))
	return nil
}

// fill reads the next block of frames into f.buf, zero padding a short
// read. It returns the number of frames read, 0 at the end of the source.
// A source that returns nothing without an error is polled on tick until
// it produces data or ctx is done.
func (f *Feeder) fill(ctx context.Context, tick *time.Ticker) (int, error) {
	n := 0
	for n < len(f.buf) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		k, err := f.src.ReadSamples(f.buf[n:])
		n += k
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("reading source: %w", err)
		}
		if k == 0 {
			if err := wait(ctx, tick); err != nil {
				return 0, err
			}
		}
	}
	clear(f.buf[n:])

	return (n + f.ch - 1) / f.ch, nil
}

// play copies channel ch of f.buf into a block and queues it on q, waiting
// for pool space and queue space as needed.
func (f *Feeder) play(ctx context.Context, tick *time.Ticker, q *queue.PlayQueue, ch int) error {
	b := q.Alloc()
	for !b.Valid() {
		if err := wait(ctx, tick); err != nil {
			return err
		}
		b = q.Alloc()
	}

	for i := range block.Samples {
		b.Set(i, f.buf[i*f.ch+ch])
	}

	for {
		var ok bool
		if b, ok = q.Play(b); ok {
			return nil
		}
		if err := wait(ctx, tick); err != nil {
			b.Release()
			return err
		}
	}
}

func wait(ctx context.Context, tick *time.Ticker) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-tick.C:
		return nil
	}
}

// Close closes the source.
func (f *Feeder) Close() error {
	return f.src.Close()
}
