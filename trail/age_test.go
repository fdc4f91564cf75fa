package trail

import (
	"math"
	"testing"
)

func TestIntegrateAgesAdvances(t *testing.T) {
	st := NewStore(4, false)
	a, _ := st.Allocate(0, 0, 10, 1)
	b, _ := st.Allocate(0, 0, 10, 1)

	res := IntegrateAges(st, nil, 0.5)
	if res.Live != 2 || res.Expired != 0 {
		t.Errorf("res = %+v, want Live 2 Expired 0", res)
	}
	if st.Age[a] != 0.5 || st.Age[b] != 0.5 {
		t.Errorf("ages = %v %v, want 0.5 0.5", st.Age[a], st.Age[b])
	}

	IntegrateAges(st, nil, 0.25)
	if math.Abs(float64(st.Age[a]-0.75)) > 1e-6 {
		t.Errorf("age = %v after two passes, want 0.75", st.Age[a])
	}
}

func TestIntegrateAgesExpiry(t *testing.T) {
	st := NewStore(4, false)
	idx, _ := st.Allocate(0, 0, 1.0, 1)

	// Age reaches exactly the lifetime: still live.
	res := IntegrateAges(st, nil, 1.0)
	if res.Expired != 0 {
		t.Errorf("expired %d at age == lifetime, want 0", res.Expired)
	}
	if !st.Alive[idx] {
		t.Error("particle at age == lifetime should be live")
	}

	// First tick past the lifetime: released within the same pass.
	res = IntegrateAges(st, nil, 0.1)
	if res.Expired != 1 {
		t.Errorf("expired %d past lifetime, want 1", res.Expired)
	}
	if st.Alive[idx] {
		t.Error("particle past lifetime should be released")
	}
	if st.Len() != 0 {
		t.Errorf("Len = %d, want 0", st.Len())
	}
}

func TestIntegrateAgesMixedLifetimes(t *testing.T) {
	st := NewStore(8, false)
	short, _ := st.Allocate(0, 0, 0.5, 1)
	long, _ := st.Allocate(0, 0, 5.0, 1)

	IntegrateAges(st, nil, 1.0)
	if st.Alive[short] {
		t.Error("short-lived particle should have expired")
	}
	if !st.Alive[long] {
		t.Error("long-lived particle should survive")
	}
	if st.Age[long] != 1.0 {
		t.Errorf("survivor age = %v, want 1", st.Age[long])
	}
}

func TestIntegrateAgesParallelMatchesSerial(t *testing.T) {
	const n = 512

	serial := NewStore(n, false)
	parallel := NewStore(n, false)
	for i := 0; i < n; i++ {
		lifetime := float32(i%7)*0.3 + 0.2
		serial.Allocate(0, 0, lifetime, 1)
		parallel.Allocate(0, 0, lifetime, 1)
	}

	pool := NewPool(4)
	defer pool.Stop()

	for tick := 0; tick < 10; tick++ {
		rs := IntegrateAges(serial, nil, 0.25)
		rp := IntegrateAges(parallel, pool, 0.25)
		if rs != rp {
			t.Fatalf("tick %d: serial %+v != parallel %+v", tick, rs, rp)
		}
	}

	for i := 0; i < n; i++ {
		if serial.Alive[i] != parallel.Alive[i] {
			t.Fatalf("slot %d: alive %v (serial) vs %v (parallel)", i, serial.Alive[i], parallel.Alive[i])
		}
		if serial.Alive[i] && serial.Age[i] != parallel.Age[i] {
			t.Fatalf("slot %d: age %v (serial) vs %v (parallel)", i, serial.Age[i], parallel.Age[i])
		}
	}
}

func BenchmarkIntegrateAges(b *testing.B) {
	st := NewStore(16384, false)
	for i := 0; i < st.Cap(); i++ {
		st.Allocate(0, 0, math.MaxFloat32, 1)
	}
	pool := NewPool(0)
	defer pool.Stop()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		IntegrateAges(st, pool, 0.0001)
	}
}
