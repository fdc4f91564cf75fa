package trail

import (
	"fmt"
	"sort"
)

// Ribbon is one ribbon's live slots ordered oldest particle first.
type Ribbon struct {
	ID    RibbonID
	Slots []int
}

// Grouper partitions live particles by ribbon id and orders each partition
// for skinning. Buckets and result slices are reused across calls, so a
// steady-state tick allocates nothing.
type Grouper struct {
	buckets map[RibbonID][]int
	order   []RibbonID
	out     []Ribbon
}

// NewGrouper creates an empty grouper.
func NewGrouper() *Grouper {
	return &Grouper{buckets: make(map[RibbonID][]int)}
}

// Group buckets the live slots in storage order, then sorts each bucket
// oldest first: descending age, with ascending slot index breaking ties.
// Both keys are deterministic, so the same store state yields identical
// orderings on every run and every machine.
//
// Ribbons with fewer than two particles are dropped from the result; they
// carry no drawable geometry and are not an error. Results come back in
// ascending ribbon-id order, which fixes the draw order.
func (g *Grouper) Group(st *Store) []Ribbon {
	for id, b := range g.buckets {
		if len(b) == 0 {
			// Ribbon drained since the last tick; stop tracking it.
			delete(g.buckets, id)
			continue
		}
		g.buckets[id] = b[:0]
	}

	for i, alive := range st.Alive {
		if alive {
			id := st.Ribbon[i]
			g.buckets[id] = append(g.buckets[id], i)
		}
	}

	g.order = g.order[:0]
	for id, b := range g.buckets {
		if len(b) >= 2 {
			g.order = append(g.order, id)
		}
	}
	sort.Slice(g.order, func(a, b int) bool { return g.order[a] < g.order[b] })

	g.out = g.out[:0]
	for _, id := range g.order {
		slots := g.buckets[id]
		sort.Slice(slots, func(a, b int) bool {
			sa, sb := slots[a], slots[b]
			if st.Age[sa] != st.Age[sb] {
				return st.Age[sa] > st.Age[sb]
			}
			return sa < sb
		})
		g.out = append(g.out, Ribbon{ID: id, Slots: slots})
	}
	return g.out
}

// VerifyOrder checks the oldest-first invariant on grouped output. The
// engine runs it after grouping when strict checks are enabled.
func VerifyOrder(st *Store, ribbons []Ribbon) error {
	for _, rb := range ribbons {
		for k := 1; k < len(rb.Slots); k++ {
			a, b := rb.Slots[k-1], rb.Slots[k]
			if st.Age[a] < st.Age[b] {
				return fmt.Errorf("ribbon %d: slot %d (age %v) ordered before older slot %d (age %v)",
					rb.ID, a, st.Age[a], b, st.Age[b])
			}
			if st.Age[a] == st.Age[b] && a >= b {
				return fmt.Errorf("ribbon %d: tie between slots %d and %d not broken by slot index", rb.ID, a, b)
			}
		}
	}
	return nil
}
