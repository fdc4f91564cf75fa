package engine

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/wisp/telemetry"
	"github.com/pthm-cable/wisp/trail"
)

// Step advances the simulation by one tick. Stages run strictly in order;
// the new frame is published only after the last stage has finished.
func (e *Engine) Step() {
	e.perf.StartTick()

	// 1. Spawn: advance each emitter along its curve and deposit this
	// tick's particles at the sampled position.
	e.perf.StartPhase(telemetry.PhaseSpawn)
	query := e.emitterFilter.Query()
	for query.Next() {
		em, path, sp := query.Get()
		path.Clock += e.dt
		at := path.Curve.At(path.Clock)

		was := sp.Saturated
		res := sp.Spawn(e.store, em.Ribbon, em.SpawnRate, em.Lifetime, e.dt, at)
		e.collector.RecordSpawn(res)
		switch {
		case res.Saturated:
			slog.Warn("store full, emitter dropping spawns",
				"ribbon", uint32(em.Ribbon), "dropped", res.Dropped, "tick", e.tick)
			e.writeEvent(telemetry.SaturationEvent(e.tick, em.Ribbon, res.Dropped))
		case was && !sp.Saturated:
			slog.Info("emitter recovered from saturation",
				"ribbon", uint32(em.Ribbon), "tick", e.tick)
			e.writeEvent(telemetry.RecoveryEvent(e.tick, em.Ribbon))
		}
	}

	// 2. Age: pure parallel advance over the pool, then serial expiry in
	// ascending slot order.
	e.perf.StartPhase(telemetry.PhaseAge)
	ageRes := trail.IntegrateAges(e.store, e.pool, e.dt)
	e.collector.RecordExpired(ageRes.Expired)

	// 3. Ribbons: partition survivors by ribbon id, oldest first.
	e.perf.StartPhase(telemetry.PhaseRibbons)
	ribbons := e.grouper.Group(e.store)
	if e.strict {
		if err := trail.VerifyOrder(e.store, ribbons); err != nil {
			panic(fmt.Sprintf("engine: %v", err))
		}
	}
	e.reapOrphans()

	// 4. Mesh: skin each drawable ribbon into the back frame.
	e.perf.StartPhase(telemetry.PhaseMesh)
	meshes := e.builders[e.back].Build(e.store, ribbons, e.styleFor)
	f := &e.frames[e.back]
	f.Tick = e.tick
	f.Live = e.store.Len()
	f.Meshes = f.Meshes[:0]
	for _, m := range meshes {
		f.Meshes = append(f.Meshes, Drawable{Mesh: m, Tint: e.looks[m.ID].tint})
	}

	// 5. Telemetry: close the stats window when it is due.
	e.perf.StartPhase(telemetry.PhaseTelemetry)
	if done := e.tick + 1; e.collector.ShouldFlush(done) {
		e.flushWindow(done, f)
	}
	e.perf.EndTick()

	// Publish the finished frame and advance.
	e.back = 1 - e.back
	e.tick++
}

// ClearRibbon releases every live particle of a ribbon immediately. The
// next tick rebuilds without it; an emitter that still owns the ribbon
// just starts a fresh trail.
func (e *Engine) ClearRibbon(id trail.RibbonID) int {
	cleared := 0
	for i := 0; i < e.store.Cap(); i++ {
		if !e.store.Alive[i] || e.store.Ribbon[i] != id {
			continue
		}
		if err := e.store.Release(i); err != nil {
			e.collector.RecordReleaseError()
			slog.Error("release during clear", "slot", i, "error", err)
			continue
		}
		cleared++
	}
	return cleared
}

// reapOrphans drops the look of each orphaned ribbon once its last
// particle has expired.
func (e *Engine) reapOrphans() {
	if len(e.orphans) == 0 {
		return
	}
	remaining := make(map[trail.RibbonID]struct{}, len(e.orphans))
	e.store.Each(func(i int) {
		id := e.store.Ribbon[i]
		if _, ok := e.orphans[id]; ok {
			remaining[id] = struct{}{}
		}
	})
	for id := range e.orphans {
		if _, ok := remaining[id]; !ok {
			delete(e.orphans, id)
			delete(e.looks, id)
			slog.Debug("orphan ribbon drained", "ribbon", uint32(id))
		}
	}
}

// snapshot captures the store and frame level numbers a stats window
// needs at flush time.
func (e *Engine) snapshot(f *Frame) telemetry.Snapshot {
	snap := telemetry.Snapshot{
		Live:     e.store.Len(),
		Capacity: e.store.Cap(),
		Emitters: e.emitters,
		Ribbons:  len(f.Meshes),
		Vertices: f.Vertices(),
		LiveAges: make([]float64, 0, e.store.Len()),
	}
	for i := range f.Meshes {
		snap.RibbonLens = append(snap.RibbonLens, len(f.Meshes[i].Verts)/2)
	}
	e.store.Each(func(i int) {
		snap.LiveAges = append(snap.LiveAges, float64(e.store.Age[i]))
	})
	return snap
}

// flushWindow closes the stats window ending at the given tick against the
// given frame and ships the results to slog and CSV.
func (e *Engine) flushWindow(at int32, f *Frame) {
	stats := e.collector.Flush(at, e.snapshot(f))
	if e.logStats {
		stats.LogStats()
	}
	if err := e.output.WriteTelemetry(stats); err != nil {
		slog.Error("write telemetry", "error", err)
	}
	if err := e.output.WritePerf(e.perf.Stats(), at); err != nil {
		slog.Error("write perf", "error", err)
	}
	e.lastFlush = at
}

func (e *Engine) writeEvent(ev telemetry.Event) {
	if err := e.output.WriteEvent(ev); err != nil {
		slog.Error("write event", "error", err)
	}
}
