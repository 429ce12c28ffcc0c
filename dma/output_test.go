// SPDX-License-Identifier: EPL-2.0

package dma

import (
	"errors"
	"testing"

	"github.com/ik5/rtaudio/block"
	"github.com/ik5/rtaudio/internal/audiotest"
)

func newOutput(t *testing.T, cfg Config) *Output {
	t.Helper()

	o, err := NewOutput(cfg)
	if err != nil {
		t.Fatalf("NewOutput() error = %v", err)
	}
	return o
}

// feed queues l and r on o the way the graph would, then drops the caller's
// references.
func feed(o *Output, l, r block.Shared) {
	o.Update([]block.Shared{l, r}, nil)
	l.Release()
	r.Release()
}

func TestNewOutput_Validate(t *testing.T) {
	t.Parallel()

	if _, err := NewOutput(Config{Mode: Mode(7)}); !errors.Is(err, ErrInvalidMode) {
		t.Errorf("NewOutput(bad mode) error = %v, want %v", err, ErrInvalidMode)
	}
	if _, err := NewOutput(Config{Format: Format(9)}); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("NewOutput(bad format) error = %v, want %v", err, ErrInvalidFormat)
	}
}

func TestOutput_CircularPlaysBlocksInOrder(t *testing.T) {
	t.Parallel()

	p := block.NewPool()
	o := newOutput(t, Config{Pool: p, Responsible: true})

	feed(o, audiotest.Filled(p, 100), audiotest.Filled(p, -100))
	feed(o, audiotest.Filled(p, 200), audiotest.Filled(p, -200))

	buf := make([]uint32, BufferWords(Packed16))
	steps := []struct {
		active  Half
		lo, hi  int
		left    int16
		trigger bool
	}{
		{active: First, lo: 64, hi: 128, left: 100, trigger: true},
		{active: Second, lo: 0, hi: 64, left: 100, trigger: false},
		{active: First, lo: 64, hi: 128, left: 200, trigger: true},
		{active: Second, lo: 0, hi: 64, left: 200, trigger: false},
		{active: First, lo: 64, hi: 128, left: 0, trigger: true},
	}

	for i, s := range steps {
		if got := o.InterruptHandler(buf, s.active); got != s.trigger {
			t.Errorf("step %d: InterruptHandler() = %v, want %v", i, got, s.trigger)
		}
		for w := s.lo; w < s.hi; w++ {
			l, r := Packed16.Unpack(buf[w : w+1])
			if l != s.left || r != -s.left {
				t.Fatalf("step %d: word %d = (%d, %d), want (%d, %d)", i, w, l, r, s.left, -s.left)
			}
		}
	}

	if got := p.AllocatedCount(); got != 0 {
		t.Errorf("AllocatedCount() after draining = %d, want 0", got)
	}
}

func TestOutput_DropsOldestWhenFull(t *testing.T) {
	t.Parallel()

	p := block.NewPool()
	o := newOutput(t, Config{Pool: p})

	for _, v := range []int16{1, 2, 3} {
		feed(o, audiotest.Filled(p, v), audiotest.Filled(p, v))
	}

	if o.Queued(0) != 2 || o.Queued(1) != 2 {
		t.Fatalf("Queued() = %d/%d, want 2/2", o.Queued(0), o.Queued(1))
	}
	if got := p.AllocatedCount(); got != 4 {
		t.Errorf("AllocatedCount() = %d, want 4 after dropping the oldest pair", got)
	}

	buf := make([]uint32, BufferWords(Packed16))
	o.InterruptHandler(buf, First)
	if l, _ := Packed16.Unpack(buf[64:]); l != 2 {
		t.Errorf("first transmitted sample = %d, want 2", l)
	}
}

func TestOutput_SilenceWhenEmpty(t *testing.T) {
	t.Parallel()

	o := newOutput(t, Config{Pool: block.NewPool()})
	buf := make([]uint32, BufferWords(Packed16))
	for i := range buf {
		buf[i] = 0xffffffff
	}

	o.InterruptHandler(buf, Second)
	for i := range 64 {
		if buf[i] != 0 {
			t.Fatalf("word %d = %#x, want 0", i, buf[i])
		}
	}
	if buf[64] != 0xffffffff {
		t.Error("handler wrote into the half the engine is reading")
	}
}

func TestOutput_SingleChannel(t *testing.T) {
	t.Parallel()

	p := block.NewPool()
	o := newOutput(t, Config{Pool: p})
	feed(o, block.Shared{}, audiotest.Filled(p, 9))

	buf := make([]uint32, BufferWords(Packed16))
	o.InterruptHandler(buf, First)
	if l, r := Packed16.Unpack(buf[100:]); l != 0 || r != 9 {
		t.Errorf("frame = (%d, %d), want (0, 9)", l, r)
	}
	_ = o.Close()
}

func TestOutput_OneShotWide(t *testing.T) {
	t.Parallel()

	p := block.NewPool()
	o := newOutput(t, Config{Pool: p, Mode: OneShot, Format: Wide32, Responsible: true})

	feed(o, audiotest.Ramp(p, 0, 1), audiotest.Ramp(p, 1000, -1))
	feed(o, audiotest.Filled(p, 5), audiotest.Filled(p, 6))

	buf := make([]uint32, BufferWords(Wide32))

	if !o.InterruptHandler(buf, Second) {
		t.Error("OneShot handler did not request a cycle")
	}
	for i := range block.Samples {
		l, r := Wide32.Unpack(buf[2*i:])
		if l != int16(i) || r != int16(1000-i) {
			t.Fatalf("frame %d = (%d, %d), want (%d, %d)", i, l, r, i, 1000-i)
		}
	}

	o.InterruptHandler(buf, First)
	if buf[0] != 5<<16 || buf[1] != 6<<16 {
		t.Errorf("second block words = %#x %#x, want 0x50000 0x60000", buf[0], buf[1])
	}

	o.InterruptHandler(buf, First)
	if buf[0] != 0 || buf[255] != 0 {
		t.Error("drained output did not transmit silence")
	}
	if got := p.AllocatedCount(); got != 0 {
		t.Errorf("AllocatedCount() = %d, want 0", got)
	}
}

func TestOutput_Arbiter(t *testing.T) {
	t.Parallel()

	var arb Arbiter
	a := newOutput(t, Config{Responsible: true, Arbiter: &arb})
	b := newOutput(t, Config{Responsible: true, Arbiter: &arb})
	c := newOutput(t, Config{})

	if !a.Responsible() || b.Responsible() || c.Responsible() {
		t.Errorf("Responsible() = %v %v %v, want true false false", a.Responsible(), b.Responsible(), c.Responsible())
	}

	buf := make([]uint32, BufferWords(Packed16))
	if b.InterruptHandler(buf, First) {
		t.Error("adapter without responsibility requested a cycle")
	}
}

func TestOutput_CloseReleases(t *testing.T) {
	t.Parallel()

	p := block.NewPool()
	o := newOutput(t, Config{Pool: p})
	feed(o, audiotest.Filled(p, 1), audiotest.Filled(p, 1))
	feed(o, audiotest.Filled(p, 2), audiotest.Filled(p, 2))

	if err := o.Close(); err != nil {
		t.Fatal(err)
	}
	if got := p.AllocatedCount(); got != 0 {
		t.Errorf("AllocatedCount() after Close = %d, want 0", got)
	}
}

func TestOutput_InterruptZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	p := block.NewPool()
	o := newOutput(t, Config{Pool: p, Responsible: true})
	buf := make([]uint32, BufferWords(Packed16))
	in := make([]block.Shared, 2)
	half := First

	allocs := testing.AllocsPerRun(100, func() {
		if half == First {
			e := p.Alloc()
			in[0] = e.Share()
			in[1] = in[0].Clone()
			o.Update(in, nil)
			in[0].Release()
			in[1].Release()
		}
		o.InterruptHandler(buf, half)
		half = half.Other()
	})
	if allocs != 0 {
		t.Errorf("output path allocated %.1f times per interrupt, want 0", allocs)
	}
	_ = o.Close()
}
