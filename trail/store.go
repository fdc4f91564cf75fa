// Package trail implements the ribbon-trail particle pipeline: a fixed
// capacity particle store, emitter spawning, age integration, per-ribbon
// grouping and ordering, lifetime fades, and triangle-strip mesh building.
//
// The pipeline runs in strict stage order each tick (spawn, age, group,
// mesh). Particle positions are frozen at spawn; all apparent motion comes
// from the emitter moving along its path between ticks.
package trail

import (
	"errors"
	"fmt"
)

// RibbonID identifies the ribbon a particle belongs to. All particles
// spawned by one emitter carry its ribbon id.
type RibbonID uint32

var (
	// ErrStoreExhausted is returned by Allocate when every slot is live.
	// Recoverable: callers drop the spawn request and retry on a later tick.
	ErrStoreExhausted = errors.New("trail: particle store exhausted")

	// ErrDoubleRelease is returned by Release for a slot that is not live.
	// It signals a bookkeeping bug in the caller; the store is unchanged.
	ErrDoubleRelease = errors.New("trail: release of non-live slot")
)

// Store is a fixed-capacity particle pool in SoA layout: dense slot arrays
// indexed 0..Cap()-1 plus a LIFO free list. Live slots are visited in
// storage order (ascending slot index), never spawn order.
//
// Pipeline stages read the field arrays directly; all mutation goes through
// Allocate and Release so the live/free invariants hold.
type Store struct {
	X        []float32
	Y        []float32
	Age      []float32
	Lifetime []float32
	Ribbon   []RibbonID
	Alive    []bool

	freeList []int
	count    int
	strict   bool
}

// NewStore creates a store with the given slot capacity (minimum 1). In
// strict mode a double release panics instead of returning an error.
func NewStore(capacity int, strict bool) *Store {
	if capacity < 1 {
		capacity = 1
	}
	s := &Store{
		X:        make([]float32, capacity),
		Y:        make([]float32, capacity),
		Age:      make([]float32, capacity),
		Lifetime: make([]float32, capacity),
		Ribbon:   make([]RibbonID, capacity),
		Alive:    make([]bool, capacity),
		freeList: make([]int, capacity),
		strict:   strict,
	}
	// Stack the free list so a fresh store hands out slot 0 first.
	for i := range s.freeList {
		s.freeList[i] = capacity - 1 - i
	}
	return s
}

// Allocate claims a free slot, writes the particle with age zero, and
// returns the slot index. Returns ErrStoreExhausted when no slot is free;
// the store is untouched and no live particle is ever evicted.
func (s *Store) Allocate(x, y, lifetime float32, ribbon RibbonID) (int, error) {
	if len(s.freeList) == 0 {
		return -1, ErrStoreExhausted
	}
	idx := s.freeList[len(s.freeList)-1]
	s.freeList = s.freeList[:len(s.freeList)-1]

	s.X[idx] = x
	s.Y[idx] = y
	s.Age[idx] = 0
	s.Lifetime[idx] = lifetime
	s.Ribbon[idx] = ribbon
	s.Alive[idx] = true
	s.count++
	return idx, nil
}

// Release returns a live slot to the free list. Releasing a slot that is
// not live reports ErrDoubleRelease and leaves the store unchanged, so the
// free list can never hold duplicate entries. In strict mode it panics.
func (s *Store) Release(i int) error {
	if i < 0 || i >= len(s.Alive) || !s.Alive[i] {
		if s.strict {
			panic(fmt.Sprintf("trail: release of non-live slot %d", i))
		}
		return ErrDoubleRelease
	}
	s.Alive[i] = false
	s.freeList = append(s.freeList, i)
	s.count--
	return nil
}

// Len returns the number of live particles.
func (s *Store) Len() int { return s.count }

// Cap returns the slot capacity.
func (s *Store) Cap() int { return len(s.Alive) }

// Each calls fn for every live slot in storage order.
func (s *Store) Each(fn func(i int)) {
	for i, alive := range s.Alive {
		if alive {
			fn(i)
		}
	}
}
