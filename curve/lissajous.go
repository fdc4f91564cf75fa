package curve

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Lissajous traces x = sin(A·t + Delta), y = sin(B·t), scaled to Scale.
// Integer A:B ratios close the figure; anything else precesses and
// slowly fills the square.
type Lissajous struct {
	Scale float32
	A     float32
	B     float32
	Delta float32
	Speed float32
}

func (l Lissajous) At(t float32) mgl32.Vec2 {
	w := float64(t * l.Speed)
	return mgl32.Vec2{
		l.Scale * float32(math.Sin(float64(l.A)*w+float64(l.Delta))),
		l.Scale * float32(math.Sin(float64(l.B)*w)),
	}
}
