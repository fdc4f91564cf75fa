package trail

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSpawnerAccumulator(t *testing.T) {
	st := NewStore(64, false)
	var sp Spawner
	at := mgl32.Vec2{0, 0}

	// 2.5 particles per second at dt=1: the fraction carries over, so the
	// per-tick counts alternate 2, 3, 2, 3.
	want := []int{2, 3, 2, 3}
	for tick, w := range want {
		res := sp.Spawn(st, 1, 2.5, 10, 1, at)
		if res.Spawned != w {
			t.Errorf("tick %d: spawned %d, want %d", tick, res.Spawned, w)
		}
		if res.Dropped != 0 {
			t.Errorf("tick %d: dropped %d, want 0", tick, res.Dropped)
		}
	}
	if st.Len() != 10 {
		t.Errorf("Len = %d after 4 ticks, want 10", st.Len())
	}
}

func TestSpawnerSubUnitRate(t *testing.T) {
	st := NewStore(8, false)
	var sp Spawner

	// 0.25/s at dt=1 emits on every fourth tick.
	var ticksWithSpawn []int
	for tick := 1; tick <= 8; tick++ {
		res := sp.Spawn(st, 1, 0.25, 10, 1, mgl32.Vec2{})
		if res.Spawned > 0 {
			ticksWithSpawn = append(ticksWithSpawn, tick)
		}
	}
	if len(ticksWithSpawn) != 2 || ticksWithSpawn[0] != 4 || ticksWithSpawn[1] != 8 {
		t.Errorf("spawning ticks = %v, want [4 8]", ticksWithSpawn)
	}
}

func TestSpawnerZeroRate(t *testing.T) {
	st := NewStore(4, false)
	var sp Spawner

	res := sp.Spawn(st, 1, 0, 10, 1, mgl32.Vec2{})
	if res.Spawned != 0 || res.Dropped != 0 || st.Len() != 0 {
		t.Errorf("zero rate spawned: %+v, Len %d", res, st.Len())
	}
}

func TestSpawnerStampsParticle(t *testing.T) {
	st := NewStore(4, false)
	var sp Spawner

	res := sp.Spawn(st, 9, 1, 3.5, 1, mgl32.Vec2{12, -4})
	if res.Spawned != 1 {
		t.Fatalf("spawned %d, want 1", res.Spawned)
	}
	if st.X[0] != 12 || st.Y[0] != -4 {
		t.Errorf("position = (%v, %v), want (12, -4)", st.X[0], st.Y[0])
	}
	if st.Age[0] != 0 {
		t.Errorf("age = %v, want 0", st.Age[0])
	}
	if st.Lifetime[0] != 3.5 {
		t.Errorf("lifetime = %v, want 3.5", st.Lifetime[0])
	}
	if st.Ribbon[0] != 9 {
		t.Errorf("ribbon = %d, want 9", st.Ribbon[0])
	}
}

func TestSpawnerPositionFrozen(t *testing.T) {
	st := NewStore(8, false)
	var sp Spawner

	sp.Spawn(st, 1, 1, 10, 1, mgl32.Vec2{1, 1})
	sp.Spawn(st, 1, 1, 10, 1, mgl32.Vec2{2, 2})

	if st.X[0] != 1 || st.Y[0] != 1 {
		t.Errorf("first particle moved to (%v, %v)", st.X[0], st.Y[0])
	}
	if st.X[1] != 2 || st.Y[1] != 2 {
		t.Errorf("second particle at (%v, %v), want (2, 2)", st.X[1], st.Y[1])
	}
}

func TestSpawnerDropsOnFullStore(t *testing.T) {
	st := NewStore(2, false)
	var sp Spawner

	res := sp.Spawn(st, 1, 5, 10, 1, mgl32.Vec2{})
	if res.Spawned != 2 || res.Dropped != 3 {
		t.Fatalf("res = %+v, want Spawned 2 Dropped 3", res)
	}
	if !res.Saturated {
		t.Error("first exhaustion should report a saturation event")
	}
	if st.Len() != 2 {
		t.Errorf("Len = %d, want 2", st.Len())
	}

	// Store still full: everything drops, but the latch suppresses a
	// second saturation event.
	res = sp.Spawn(st, 1, 5, 10, 1, mgl32.Vec2{})
	if res.Spawned != 0 || res.Dropped != 5 {
		t.Fatalf("res = %+v, want Spawned 0 Dropped 5", res)
	}
	if res.Saturated {
		t.Error("ongoing saturation should not report another event")
	}

	// A freed slot resets the latch: the next exhaustion is a new event.
	st.Release(0)
	res = sp.Spawn(st, 1, 5, 10, 1, mgl32.Vec2{})
	if res.Spawned != 1 || res.Dropped != 4 {
		t.Fatalf("res = %+v, want Spawned 1 Dropped 4", res)
	}
	if !res.Saturated {
		t.Error("exhaustion after recovery should report a new saturation event")
	}
}

func TestSpawnerFullStoreIsNoOp(t *testing.T) {
	st := NewStore(2, false)
	var sp Spawner
	sp.Spawn(st, 1, 2, 10, 1, mgl32.Vec2{5, 5})

	before := []float32{st.X[0], st.Y[0], st.X[1], st.Y[1]}
	res := sp.Spawn(st, 2, 3, 10, 1, mgl32.Vec2{99, 99})
	if res.Spawned != 0 {
		t.Fatalf("spawned %d into a full store, want 0", res.Spawned)
	}
	after := []float32{st.X[0], st.Y[0], st.X[1], st.Y[1]}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("live data changed: %v -> %v", before, after)
		}
	}
	if st.Len() != 2 {
		t.Errorf("Len = %d, want 2", st.Len())
	}
}
