package trail

import "github.com/go-gl/mathgl/mgl32"

// Spawner holds one emitter's emission state: the fractional spawn
// accumulator and the saturation latch. The zero value is ready to use, so
// it can sit directly on an emitter entity as a component.
type Spawner struct {
	Acc       float32
	Saturated bool
}

// SpawnResult reports what one Spawn call did.
type SpawnResult struct {
	Spawned int
	Dropped int

	// Saturated is set only on the transition into saturation. The latch
	// clears on the next successful allocation, so a store that stays full
	// for many ticks reports one event, not one per tick.
	Saturated bool
}

// Spawn deposits rate*dt particles at the sampled emitter position,
// carrying the fractional remainder across ticks. Every particle starts at
// age zero with the given lifetime and ribbon id, frozen at the position it
// was deposited at.
//
// When the store runs out of slots the remaining requests of this call are
// dropped silently; live particles are never evicted to make room.
func (sp *Spawner) Spawn(st *Store, ribbon RibbonID, rate, lifetime, dt float32, at mgl32.Vec2) SpawnResult {
	var res SpawnResult
	if rate <= 0 || dt <= 0 {
		return res
	}

	sp.Acc += rate * dt
	n := int(sp.Acc)
	if n == 0 {
		return res
	}
	sp.Acc -= float32(n)

	for i := 0; i < n; i++ {
		if _, err := st.Allocate(at[0], at[1], lifetime, ribbon); err != nil {
			res.Dropped = n - i
			if !sp.Saturated {
				sp.Saturated = true
				res.Saturated = true
			}
			return res
		}
		sp.Saturated = false
		res.Spawned++
	}
	return res
}
