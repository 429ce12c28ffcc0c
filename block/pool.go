// SPDX-License-Identifier: EPL-2.0

package block

import (
	"math/bits"
	"sync/atomic"
)

// SlotID identifies one block in a Pool.
type SlotID uint8

// Pool is a fixed arena of PoolSize audio blocks.
//
// The zero value is an empty pool ready for use. A Pool must not be copied
// after first use.
type Pool struct {
	bitmap atomic.Uint32
	refs   [PoolSize]atomic.Uint32
	data   [PoolSize][Samples]int16
}

var defaultPool Pool

// DefaultPool returns the process-wide pool used when a component is not
// given one explicitly.
func DefaultPool() *Pool {
	return &defaultPool
}

// NewPool returns an empty pool. Tests use private pools so they can run in
// parallel without observing each other's allocations.
func NewPool() *Pool {
	return &Pool{}
}

// Allocate claims the lowest free slot, zeroes it and sets its reference
// count to one. It reports false when every slot is taken. It never blocks.
func (p *Pool) Allocate() (SlotID, bool) {
	for {
		bm := p.bitmap.Load()
		free := ^bm
		if free == 0 {
			return 0, false
		}

		slot := bits.TrailingZeros32(free)
		if !p.bitmap.CompareAndSwap(bm, bm|1<<slot) {
			continue
		}

		if debugAsserts {
			assertf(p.refs[slot].Load() == 0, "slot %d allocated with refcount %d", slot, p.refs[slot].Load())
		}
		p.refs[slot].Store(1)
		p.data[slot] = [Samples]int16{}

		return SlotID(slot), true
	}
}

// Duplicate adds one owner to an allocated slot.
func (p *Pool) Duplicate(id SlotID) {
	if debugAsserts {
		assertf(int(id) < PoolSize, "duplicate of invalid slot %d", id)
	}
	old := p.refs[id].Add(1) - 1
	if debugAsserts {
		assertf(old > 0, "duplicate of free slot %d", id)
		assertf(old < maxRefs, "refcount overflow on slot %d", id)
	}
}

// Release drops one owner of a slot. The owner that takes the count from
// one to zero returns the slot to the free bitmap.
func (p *Pool) Release(id SlotID) {
	if debugAsserts {
		assertf(int(id) < PoolSize, "release of invalid slot %d", id)
	}
	n := p.refs[id].Add(^uint32(0))
	if debugAsserts {
		assertf(n != ^uint32(0), "double release of slot %d", id)
	}
	if n == 0 {
		p.bitmap.And(^(uint32(1) << id))
	}
}

// Refcount reports the current number of owners of a slot.
func (p *Pool) Refcount(id SlotID) uint32 {
	return p.refs[id].Load()
}

// AllocatedCount reports how many slots are in use. It is meant for leak
// tests and diagnostics.
func (p *Pool) AllocatedCount() int {
	return bits.OnesCount32(p.bitmap.Load())
}

// Reset marks every slot free. It must only be called when no handle to the
// pool is alive.
func (p *Pool) Reset() {
	for i := range p.refs {
		p.refs[i].Store(0)
	}
	p.bitmap.Store(0)
}

func (p *Pool) samples(id SlotID) *[Samples]int16 {
	return &p.data[id]
}
