// SPDX-License-Identifier: EPL-2.0

package block

import (
	"sync"
	"testing"
)

func TestPool_AllocateDistinct(t *testing.T) {
	t.Parallel()

	p := NewPool()
	seen := make(map[SlotID]bool)

	for i := range PoolSize {
		id, ok := p.Allocate()
		if !ok {
			t.Fatalf("Allocate() #%d failed on a pool with free slots", i)
		}
		if seen[id] {
			t.Fatalf("Allocate() returned slot %d twice", id)
		}
		seen[id] = true
	}

	if _, ok := p.Allocate(); ok {
		t.Error("Allocate() on a full pool succeeded, want failure")
	}

	if got := p.AllocatedCount(); got != PoolSize {
		t.Errorf("AllocatedCount() = %d, want %d", got, PoolSize)
	}
}

func TestPool_AllocateLowestFree(t *testing.T) {
	t.Parallel()

	p := NewPool()
	for range 4 {
		p.Allocate()
	}

	p.Release(1)

	id, ok := p.Allocate()
	if !ok || id != 1 {
		t.Errorf("Allocate() = (%d, %v), want (1, true)", id, ok)
	}
}

func TestPool_AllocateZeroes(t *testing.T) {
	t.Parallel()

	p := NewPool()
	id, _ := p.Allocate()
	p.samples(id)[7] = 1234
	p.Release(id)

	id2, _ := p.Allocate()
	if id2 != id {
		t.Fatalf("Allocate() = %d, want reused slot %d", id2, id)
	}
	if got := p.samples(id2)[7]; got != 0 {
		t.Errorf("reused slot sample = %d, want 0", got)
	}
}

func TestPool_Refcount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		duplicates int
		releases   int
		wantRefs   uint32
		wantLive   int
	}{
		{name: "fresh", duplicates: 0, releases: 0, wantRefs: 1, wantLive: 1},
		{name: "duplicated twice", duplicates: 2, releases: 0, wantRefs: 3, wantLive: 1},
		{name: "duplicated then partly released", duplicates: 2, releases: 2, wantRefs: 1, wantLive: 1},
		{name: "fully released", duplicates: 1, releases: 2, wantRefs: 0, wantLive: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := NewPool()
			id, _ := p.Allocate()
			for range tt.duplicates {
				p.Duplicate(id)
			}
			for range tt.releases {
				p.Release(id)
			}

			if got := p.Refcount(id); got != tt.wantRefs {
				t.Errorf("Refcount() = %d, want %d", got, tt.wantRefs)
			}
			if got := p.AllocatedCount(); got != tt.wantLive {
				t.Errorf("AllocatedCount() = %d, want %d", got, tt.wantLive)
			}
		})
	}
}

func TestPool_Reset(t *testing.T) {
	t.Parallel()

	p := NewPool()
	for range 5 {
		p.Allocate()
	}
	p.Reset()

	if got := p.AllocatedCount(); got != 0 {
		t.Errorf("AllocatedCount() after Reset = %d, want 0", got)
	}
	if id, ok := p.Allocate(); !ok || id != 0 {
		t.Errorf("Allocate() after Reset = (%d, %v), want (0, true)", id, ok)
	}
}

func TestPool_ConcurrentAllocRelease(t *testing.T) {
	t.Parallel()

	if testing.Short() {
		t.Skip("skipping concurrency stress in short mode")
	}

	p := NewPool()

	const (
		workers = 8
		rounds  = 2000
	)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			held := make([]Exclusive, 0, 4)
			for i := range rounds {
				if b := p.Alloc(); b.Valid() {
					b.Set(0, int16(i))
					held = append(held, b)
				}
				if len(held) == cap(held) {
					for j := range held {
						s := held[j].Share()
						c := s.Clone()
						s.Release()
						c.Release()
					}
					held = held[:0]
				}
			}
			for j := range held {
				held[j].Release()
			}
		}()
	}
	wg.Wait()

	if got := p.AllocatedCount(); got != 0 {
		t.Errorf("AllocatedCount() after stress = %d, want 0", got)
	}
}

func TestPool_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	p := NewPool()
	allocs := testing.AllocsPerRun(100, func() {
		b := p.Alloc()
		s := b.Share()
		c := s.Clone()
		s.Release()
		c.Release()
	})

	if allocs != 0 {
		t.Errorf("Alloc/Share/Clone/Release allocated %.1f times per run, want 0", allocs)
	}
}

func BenchmarkPool_AllocRelease(b *testing.B) {
	p := NewPool()
	b.ReportAllocs()

	for b.Loop() {
		id, _ := p.Allocate()
		p.Release(id)
	}
}
