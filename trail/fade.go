package trail

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Shape selects a fade curve. Every shape is monotone non-increasing over
// [0,1], starts at 1 and ends at 0, so a particle peaks at spawn and has
// fully faded by the time it expires.
type Shape uint8

const (
	ShapeLinear Shape = iota // 1-u
	ShapeSmooth              // smoothstep-eased
	ShapeQuad                // (1-u)^2
	ShapeCubic               // (1-u)^3
)

// ShapeFromString maps a config name to a shape. The empty string selects
// linear.
func ShapeFromString(name string) (Shape, error) {
	switch name {
	case "", "linear":
		return ShapeLinear, nil
	case "smooth":
		return ShapeSmooth, nil
	case "quad":
		return ShapeQuad, nil
	case "cubic":
		return ShapeCubic, nil
	}
	return ShapeLinear, fmt.Errorf("trail: unknown fade shape %q", name)
}

func (sh Shape) String() string {
	switch sh {
	case ShapeSmooth:
		return "smooth"
	case ShapeQuad:
		return "quad"
	case ShapeCubic:
		return "cubic"
	default:
		return "linear"
	}
}

// eval evaluates the shape at u, which must already be clamped to [0,1].
func (sh Shape) eval(u float32) float32 {
	v := 1 - u
	switch sh {
	case ShapeSmooth:
		return v * v * (3 - 2*v)
	case ShapeQuad:
		return v * v
	case ShapeCubic:
		return v * v * v
	default:
		return v
	}
}

// Fade maps normalized particle age u = age/lifetime to the width and
// opacity scales applied when skinning a ribbon. Evaluation is pure: no
// state, no time source, identical output for identical input.
type Fade struct {
	Size  Shape
	Alpha Shape
}

// Eval evaluates both scales at u. Inputs outside [0,1] clamp; a particle
// on its removal tick can sit exactly at u=1 and must stay well defined.
func (f Fade) Eval(u float32) (size, alpha float32) {
	u = mgl32.Clamp(u, 0, 1)
	return f.Size.eval(u), f.Alpha.eval(u)
}
