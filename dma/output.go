// SPDX-License-Identifier: EPL-2.0

package dma

import "github.com/ik5/rtaudio/block"

// channel is a depth-two FIFO of blocks awaiting transmission. head is
// being transmitted from offset; next waits behind it.
type channel struct {
	head   block.Shared
	next   block.Shared
	offset int
}

// push queues b, dropping the oldest block when both places are taken.
func (c *channel) push(b block.Shared) {
	switch {
	case !c.head.Valid():
		c.head = b
		c.offset = 0
	case !c.next.Valid():
		c.next = b
	default:
		c.head.Release()
		c.head = c.next
		c.next = b
		c.offset = 0
	}
}

// consume advances by n samples and promotes next once head is spent.
func (c *channel) consume(n int) {
	c.offset += n
	if c.offset < block.Samples {
		return
	}
	c.head.Release()
	c.head = c.next
	c.next = block.Shared{}
	c.offset = 0
}

func (c *channel) depth() int {
	n := 0
	if c.head.Valid() {
		n++
	}
	if c.next.Valid() {
		n++
	}
	return n
}

func (c *channel) reset() {
	c.head.Release()
	c.next.Release()
	c.offset = 0
}

// Output is a stereo sink node feeding a hardware transmit buffer. Input 0
// is the left channel, input 1 the right.
type Output struct {
	mode        Mode
	format      Format
	responsible bool
	ch          [2]channel
}

func NewOutput(cfg Config) (*Output, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Output{
		mode:        cfg.Mode,
		format:      cfg.Format,
		responsible: cfg.responsible(),
	}, nil
}

func (*Output) Inputs() int  { return 2 }
func (*Output) Outputs() int { return 0 }

// Update queues this cycle's blocks. A channel without a block keeps
// draining what it already holds.
func (o *Output) Update(in []block.Shared, _ []block.Exclusive) {
	for i := range o.ch {
		if in[i].Valid() {
			o.ch[i].push(in[i].Clone())
		}
	}
}

// InterruptHandler fills the part of buf the engine is not reading with the
// next queued samples, silence where a channel has nothing queued. active
// is the half the engine is transmitting; OneShot mode ignores it and fills
// the whole buffer. It returns true when the graph should run.
func (o *Output) InterruptHandler(buf []uint32, active Half) bool {
	dst := o.mode.region(buf, active)
	l, r := &o.ch[0], &o.ch[1]

	n := interleave(o.format, dst, l.head, l.offset, r.head, r.offset)
	if o.mode == OneShot {
		n = block.Samples
	}
	l.consume(n)
	r.consume(n)

	return o.responsible && o.mode.triggers(active)
}

// Responsible reports whether this adapter triggers graph cycles.
func (o *Output) Responsible() bool { return o.responsible }

// Queued reports how many blocks channel ch holds, 0 to 2.
func (o *Output) Queued(ch int) int { return o.ch[ch].depth() }

// Close releases every queued block.
func (o *Output) Close() error {
	for i := range o.ch {
		o.ch[i].reset()
	}
	return nil
}
