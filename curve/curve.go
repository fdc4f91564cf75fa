// Package curve provides the parametric 2D paths that drive emitter
// motion. A curve maps an emitter's clock to a position; the engine
// samples it once per tick and stamps the result onto every particle
// spawned that tick.
package curve

import "github.com/go-gl/mathgl/mgl32"

// Curve maps a clock value to a position. Implementations must be pure:
// the same t always yields the same point, so a run can be replayed from
// its config alone.
type Curve interface {
	At(t float32) mgl32.Vec2
}

// Func adapts a plain function to the Curve interface.
type Func func(t float32) mgl32.Vec2

func (f Func) At(t float32) mgl32.Vec2 { return f(t) }
