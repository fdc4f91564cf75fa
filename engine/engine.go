// Package engine runs the trail simulation: emitter entities spawn
// particles into a shared store, ages advance, expired particles are
// released, and the survivors are grouped and skinned into ribbon meshes
// once per tick.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"
	"github.com/pthm-cable/wisp/components"
	"github.com/pthm-cable/wisp/config"
	"github.com/pthm-cable/wisp/curve"
	"github.com/pthm-cable/wisp/telemetry"
	"github.com/pthm-cable/wisp/trail"
)

// look is everything needed to draw a ribbon. It lives outside the ECS so
// that a removed emitter's trail keeps its width, fade and tint while the
// remaining particles drain.
type look struct {
	style trail.Style
	tint  components.Tint
	name  string
	rate  float32
}

// Options carry the wiring an Engine needs beyond the config file.
type Options struct {
	// Output receives window stats, perf stats and events as CSV. Nil
	// disables file output entirely.
	Output *telemetry.OutputManager
	// LogStats additionally logs each flushed window via slog.
	LogStats bool
}

// Engine owns the complete simulation state.
type Engine struct {
	world ecs.World

	// Emitter entities: one ribbon per emitter for its whole life.
	emitterMapper *ecs.Map3[components.Emitter, components.Path, trail.Spawner]
	emitterFilter *ecs.Filter3[components.Emitter, components.Path, trail.Spawner]

	store   *trail.Store
	pool    *trail.Pool
	grouper *trail.Grouper

	looks      map[trail.RibbonID]look
	orphans    map[trail.RibbonID]struct{}
	byName     map[string]ecs.Entity
	nextRibbon trail.RibbonID
	emitters   int

	// Meshes are double buffered: each tick builds into the builder and
	// frame the previous tick did not publish, so the published frame's
	// vertices stay intact while the next tick is being computed.
	builders [2]*trail.Builder
	frames   [2]Frame
	back     int

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager
	logStats  bool
	lastFlush int32

	dt     float32
	strict bool
	tick   int32
}

// New creates an engine from a loaded config and adds its emitters.
func New(cfg *config.Config, opts Options) (*Engine, error) {
	e := &Engine{
		world:     ecs.NewWorld(),
		store:     trail.NewStore(cfg.Derived.TotalCapacity, cfg.Engine.Strict),
		pool:      trail.NewPool(cfg.Engine.Workers),
		grouper:   trail.NewGrouper(),
		looks:     make(map[trail.RibbonID]look),
		orphans:   make(map[trail.RibbonID]struct{}),
		byName:    make(map[string]ecs.Entity),
		collector: telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Derived.DT32),
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		output:    opts.Output,
		logStats:  opts.LogStats,
		dt:        cfg.Derived.DT32,
		strict:    cfg.Engine.Strict,
	}
	e.emitterMapper = ecs.NewMap3[components.Emitter, components.Path, trail.Spawner](&e.world)
	e.emitterFilter = ecs.NewFilter3[components.Emitter, components.Path, trail.Spawner](&e.world)
	e.builders[0] = trail.NewBuilder()
	e.builders[1] = trail.NewBuilder()
	e.frames[0].Tick = -1
	e.frames[1].Tick = -1

	for _, em := range cfg.Emitters {
		if _, err := e.AddEmitter(em); err != nil {
			e.pool.Stop()
			return nil, err
		}
	}

	slog.Info("engine ready",
		"emitters", e.emitters,
		"capacity", e.store.Cap(),
		"workers", e.pool.Workers(),
		"dt", e.dt,
	)
	return e, nil
}

// AddEmitter creates an emitter entity from config, assigns it a fresh
// ribbon id and returns its entity handle.
func (e *Engine) AddEmitter(cfg config.EmitterConfig) (ecs.Entity, error) {
	crv, err := curve.FromConfig(cfg.Curve)
	if err != nil {
		return ecs.Entity{}, fmt.Errorf("emitter %q: %w", cfg.Name, err)
	}
	sizeShape, err := trail.ShapeFromString(cfg.Fade.Size)
	if err != nil {
		return ecs.Entity{}, fmt.Errorf("emitter %q: %w", cfg.Name, err)
	}
	alphaShape, err := trail.ShapeFromString(cfg.Fade.Alpha)
	if err != nil {
		return ecs.Entity{}, fmt.Errorf("emitter %q: %w", cfg.Name, err)
	}

	id := e.nextRibbon
	e.nextRibbon++

	em := components.Emitter{
		Ribbon:    id,
		SpawnRate: cfg.SpawnRate,
		Lifetime:  cfg.Lifetime,
		Width:     cfg.Width,
		Tint:      components.Tint{R: cfg.Tint.R, G: cfg.Tint.G, B: cfg.Tint.B, A: cfg.Tint.A},
		Fade:      trail.Fade{Size: sizeShape, Alpha: alphaShape},
	}
	path := components.Path{Curve: crv}
	sp := trail.Spawner{}
	entity := e.emitterMapper.NewEntity(&em, &path, &sp)

	e.looks[id] = look{
		style: trail.Style{Width: em.Width, Fade: em.Fade},
		tint:  em.Tint,
		name:  cfg.Name,
		rate:  em.SpawnRate,
	}
	if cfg.Name != "" {
		e.byName[cfg.Name] = entity
	}
	e.emitters++

	slog.Info("emitter added",
		"name", cfg.Name,
		"ribbon", uint32(id),
		"rate", em.SpawnRate,
		"lifetime", em.Lifetime,
		"curve", cfg.Curve.Kind,
	)
	return entity, nil
}

// RemoveEmitter despawns an emitter entity. Its ribbon is not touched: the
// particles already in the store keep aging, fading and rendering until the
// last one expires, at which point the ribbon's bookkeeping is dropped too.
// Returns false if the entity is not alive.
func (e *Engine) RemoveEmitter(entity ecs.Entity) bool {
	if !e.world.Alive(entity) {
		return false
	}
	em, _, _ := e.emitterMapper.Get(entity)
	name := e.looks[em.Ribbon].name
	e.orphans[em.Ribbon] = struct{}{}
	if name != "" {
		delete(e.byName, name)
	}
	e.world.RemoveEntity(entity)
	e.emitters--

	slog.Info("emitter removed", "ribbon", uint32(em.Ribbon), "name", name)
	return true
}

// EmitterByName resolves a config-named emitter to its entity handle.
func (e *Engine) EmitterByName(name string) (ecs.Entity, bool) {
	entity, ok := e.byName[name]
	return entity, ok
}

// styleFor resolves the mesh style for a ribbon. Unknown ids get a zero
// style, which skins to zero-width geometry rather than failing.
func (e *Engine) styleFor(id trail.RibbonID) trail.Style {
	return e.looks[id].style
}

// Frame returns the most recently completed frame. It is never updated
// mid-tick; until the first Step it is empty with Tick -1.
func (e *Engine) Frame() *Frame {
	return &e.frames[1-e.back]
}

// Tick returns the number of completed ticks.
func (e *Engine) Tick() int32 { return e.tick }

// Live returns the current live particle count.
func (e *Engine) Live() int { return e.store.Len() }

// Capacity returns the store's slot capacity.
func (e *Engine) Capacity() int { return e.store.Cap() }

// Emitters returns the number of live emitter entities.
func (e *Engine) Emitters() int { return e.emitters }

// Store exposes the particle store for dumps and inspection.
func (e *Engine) Store() *trail.Store { return e.store }

// Perf returns aggregate timings over the perf collector's window.
func (e *Engine) Perf() telemetry.PerfStats { return e.perf.Stats() }

// RecordFrame forwards a render-frame boundary to the perf collector.
func (e *Engine) RecordFrame() { e.perf.RecordFrame() }

// RibbonName returns the config name of the emitter that owns a ribbon.
func (e *Engine) RibbonName(id trail.RibbonID) string { return e.looks[id].name }

// SpawnRate returns the particles-per-second rate of the emitter that owns
// a ribbon, or 0 once the ribbon is no longer tracked.
func (e *Engine) SpawnRate(id trail.RibbonID) float32 { return e.looks[id].rate }

// Look returns the style and tint for a ribbon, if it is still tracked.
func (e *Engine) Look(id trail.RibbonID) (trail.Style, components.Tint, bool) {
	lk, ok := e.looks[id]
	return lk.style, lk.tint, ok
}

// Orphaned reports whether a ribbon lost its emitter and is draining.
func (e *Engine) Orphaned(id trail.RibbonID) bool {
	_, ok := e.orphans[id]
	return ok
}

// Close stops the worker pool and flushes a final, possibly short, stats
// window. The output manager is owned by the caller and stays open.
func (e *Engine) Close() {
	if e.tick > e.lastFlush {
		e.flushWindow(e.tick, e.Frame())
	}
	e.pool.Stop()
}
