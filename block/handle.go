// SPDX-License-Identifier: EPL-2.0

package block

// Exclusive is the unique writable owner of a block. The zero value is
// absent.
type Exclusive struct {
	pool *Pool
	id   SlotID
}

// Shared is one of possibly many read-only owners of a block. The zero
// value is absent.
type Shared struct {
	pool *Pool
	id   SlotID
}

// Alloc returns a zeroed block from p, or an absent handle when the pool is
// exhausted.
func (p *Pool) Alloc() Exclusive {
	id, ok := p.Allocate()
	if !ok {
		return Exclusive{}
	}
	return Exclusive{pool: p, id: id}
}

// Alloc allocates from the default pool.
func Alloc() Exclusive {
	return defaultPool.Alloc()
}

func (e Exclusive) Valid() bool  { return e.pool != nil }
func (e Exclusive) Slot() SlotID { return e.id }
func (e Exclusive) Pool() *Pool  { return e.pool }

// Samples returns the block's sample storage, or nil when e is absent.
func (e Exclusive) Samples() *[Samples]int16 {
	if e.pool == nil {
		return nil
	}
	return e.pool.samples(e.id)
}

// At returns sample i; an absent block reads as silence.
func (e Exclusive) At(i int) int16 {
	if e.pool == nil {
		return 0
	}
	return e.pool.data[e.id][i]
}

func (e Exclusive) Set(i int, v int16) {
	e.pool.data[e.id][i] = v
}

// Fill sets every sample to v.
func (e Exclusive) Fill(v int16) {
	d := e.pool.samples(e.id)
	for i := range d {
		d[i] = v
	}
}

// CopyFrom overwrites e with the contents of s, or with silence when s is
// absent.
func (e Exclusive) CopyFrom(s Shared) {
	if s.pool == nil {
		*e.pool.samples(e.id) = [Samples]int16{}
		return
	}
	*e.pool.samples(e.id) = *s.pool.samples(s.id)
}

// Share converts e into a Shared handle without touching the reference
// count. e is absent afterwards.
func (e *Exclusive) Share() Shared {
	s := Shared(*e)
	*e = Exclusive{}
	return s
}

// Take moves the handle out of e, leaving e absent.
func (e *Exclusive) Take() Exclusive {
	t := *e
	*e = Exclusive{}
	return t
}

// Replace releases the block held by e and installs n in its place.
func (e *Exclusive) Replace(n Exclusive) {
	e.Release()
	*e = n
}

// Release gives the block back to its pool. Releasing an absent handle is a
// no-op.
func (e *Exclusive) Release() {
	if e.pool == nil {
		return
	}
	e.pool.Release(e.id)
	*e = Exclusive{}
}

func (s Shared) Valid() bool  { return s.pool != nil }
func (s Shared) Slot() SlotID { return s.id }
func (s Shared) Pool() *Pool  { return s.pool }

// At returns sample i; an absent block reads as silence.
func (s Shared) At(i int) int16 {
	if s.pool == nil {
		return 0
	}
	return s.pool.data[s.id][i]
}

// CopyTo copies the block into dst and returns the number of samples
// copied. An absent block copies silence.
func (s Shared) CopyTo(dst []int16) int {
	if s.pool == nil {
		n := min(len(dst), Samples)
		clear(dst[:n])
		return n
	}
	return copy(dst, s.pool.data[s.id][:])
}

// Clone adds an owner to the block and returns the new handle. Cloning an
// absent handle yields an absent handle.
func (s Shared) Clone() Shared {
	if s.pool == nil {
		return Shared{}
	}
	s.pool.Duplicate(s.id)
	return s
}

// Reclaim converts s into an Exclusive handle. When s is the only owner the
// slot is reused in place; otherwise the data is copied into a new block and
// s's reference is dropped. The result is absent when s was absent or the
// pool had no room for the copy. s is absent afterwards in every case.
func (s *Shared) Reclaim() Exclusive {
	if s.pool == nil {
		return Exclusive{}
	}

	old := *s
	*s = Shared{}

	if old.pool.Refcount(old.id) == 1 {
		return Exclusive(old)
	}

	n := old.pool.Alloc()
	if n.Valid() {
		*n.pool.samples(n.id) = *old.pool.samples(old.id)
	}
	old.pool.Release(old.id)

	return n
}

// Release drops this owner of the block. Releasing an absent handle is a
// no-op.
func (s *Shared) Release() {
	if s.pool == nil {
		return
	}
	s.pool.Release(s.id)
	*s = Shared{}
}
