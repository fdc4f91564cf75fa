package curve

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Spirograph traces a hypotrochoid: a pen mounted Pen units from the
// center of a wheel of radius Inner rolling inside a ring of radius
// Outer. Requires 0 < Inner < Outer.
type Spirograph struct {
	Outer float32
	Inner float32
	Pen   float32
	Speed float32
}

func (s Spirograph) At(t float32) mgl32.Vec2 {
	a := float64(t * s.Speed)
	diff := float64(s.Outer - s.Inner)
	roll := diff / float64(s.Inner) * a
	pen := float64(s.Pen)
	return mgl32.Vec2{
		float32(diff*math.Cos(a) + pen*math.Cos(roll)),
		float32(diff*math.Sin(a) - pen*math.Sin(roll)),
	}
}
