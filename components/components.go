// Package components defines ECS components for the trail simulation.
package components

import (
	"github.com/pthm-cable/wisp/curve"
	"github.com/pthm-cable/wisp/trail"
)

// Tint is the base color of a ribbon's mesh. The fade curve's per-vertex
// alpha multiplies into A at draw time.
type Tint struct {
	R, G, B, A uint8
}

// Emitter describes one trail source. Ribbon binds every particle the
// emitter spawns to a single strip, so an emitter owns exactly one
// ribbon for its whole life.
type Emitter struct {
	Ribbon    trail.RibbonID
	SpawnRate float32 // particles per second
	Lifetime  float32 // seconds a particle stays alive
	Width     float32 // full strip width at the head, world units
	Tint      Tint
	Fade      trail.Fade
}

// Path carries the emitter's motion. Clock accumulates dt each tick and
// the curve is sampled at the new value to place this tick's spawns.
type Path struct {
	Curve curve.Curve
	Clock float32
}
