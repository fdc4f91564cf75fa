package curve

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Circle orbits the origin at a fixed radius. The angle advances by
// Speed radians per clock unit.
type Circle struct {
	Radius float32
	Speed  float32
}

func (c Circle) At(t float32) mgl32.Vec2 {
	a := float64(t * c.Speed)
	return mgl32.Vec2{
		c.Radius * float32(math.Cos(a)),
		c.Radius * float32(math.Sin(a)),
	}
}
