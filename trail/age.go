package trail

// AgeResult summarizes one age-integration pass.
type AgeResult struct {
	Live    int // live particles before expiry
	Expired int // particles released this tick
}

// IntegrateAges advances every live particle's age by dt, then releases the
// particles whose age has passed their lifetime. The advance is a pure
// per-slot map and fans out over the pool; expiry is applied on the calling
// goroutine in ascending slot order, so the free list evolves identically
// regardless of worker count.
//
// A particle whose age equals its lifetime is still live. It is released on
// the first tick its age exceeds the lifetime, within that same tick.
func IntegrateAges(st *Store, pool *Pool, dt float32) AgeResult {
	res := AgeResult{Live: st.Len()}
	n := st.Cap()

	advance := func(start, end int) {
		for i := start; i < end; i++ {
			if st.Alive[i] {
				st.Age[i] += dt
			}
		}
	}
	if pool != nil {
		pool.Run(n, advance)
	} else {
		advance(0, n)
	}

	// Releases mutate the free list, so they stay single-threaded.
	for i := 0; i < n; i++ {
		if st.Alive[i] && st.Age[i] > st.Lifetime[i] {
			if err := st.Release(i); err == nil {
				res.Expired++
			}
		}
	}
	return res
}
