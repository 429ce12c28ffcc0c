// SPDX-License-Identifier: EPL-2.0

package rtaudio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ik5/rtaudio/block"
	"github.com/ik5/rtaudio/formats/wav"
	"github.com/ik5/rtaudio/queue"
)

// RecorderConfig configures a Recorder. The zero value is usable.
type RecorderConfig struct {
	Logger *slog.Logger

	// PollInterval is how often the queues are drained. Zero selects one
	// block period.
	PollInterval time.Duration
}

func (c RecorderConfig) Validate() error {
	if c.PollInterval < 0 {
		return fmt.Errorf("%w: poll %v", ErrInvalidInterval, c.PollInterval)
	}
	return nil
}

// Recorder writes the blocks captured by record queues into a WAV file,
// one channel per queue.
type Recorder struct {
	log    *slog.Logger
	poll   time.Duration
	w      *wav.BlockWriter
	queues []*queue.RecordQueue
	set    []block.Shared
}

func NewRecorder(cfg RecorderConfig, w io.WriteSeeker, queues ...*queue.RecordQueue) (*Recorder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(queues) == 0 {
		return nil, ErrNoQueues
	}

	bw, err := wav.NewBlockWriter(w, block.SampleRateHz, len(queues))
	if err != nil {
		return nil, fmt.Errorf("recorder: %w", err)
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	poll := cfg.PollInterval
	if poll == 0 {
		poll = block.Period
	}

	return &Recorder{
		log:    log,
		poll:   poll,
		w:      bw,
		queues: queues,
		set:    make([]block.Shared, len(queues)),
	}, nil
}

// Frames reports how many frames have been written.
func (r *Recorder) Frames() int { return r.w.Frames() }

// Run starts the queues and writes what they capture until ctx is done.
// It then stops the queues, writes what is still queued and finalizes the
// file. Cancellation is the normal way to end a recording, so Run returns
// nil unless writing fails.
func (r *Recorder) Run(ctx context.Context) error {
	for _, q := range r.queues {
		q.Start()
	}
	r.log.Info("recording started", slog.Int("channels", len(r.queues)))

	tick := time.NewTicker(r.poll)
	defer tick.Stop()

	var err error
loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-tick.C:
			if err = r.drain(); err != nil {
				break loop
			}
		}
	}

	for _, q := range r.queues {
		q.Stop()
	}
	if err == nil {
		err = r.drain()
	}

	var dropped uint64
	for _, q := range r.queues {
		dropped += q.Dropped()
		q.Clear()
	}

	err = errors.Join(err, r.w.Close())
	r.log.Info("recording stopped",
		slog.Int("frames", r.w.Frames()),
		slog.Uint64("dropped", dropped),
		slog.Any("error", err))

	return err
}

// drain writes one frame set per round for as long as every queue has a
// block waiting.
func (r *Recorder) drain() error {
	for r.ready() {
		for i, q := range r.queues {
			r.set[i], _ = q.Read()
		}
		err := r.w.WriteBlocks(r.set...)
		for i := range r.set {
			r.set[i].Release()
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Recorder) ready() bool {
	for _, q := range r.queues {
		if q.Available() == 0 {
			return false
		}
	}
	return true
}
