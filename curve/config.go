package curve

import (
	"fmt"

	"github.com/pthm-cable/wisp/config"
)

// FromConfig builds the curve described by an emitter's path section.
// Speed defaults to 1 when unset so a bare kind is enough to get motion.
func FromConfig(c config.CurveConfig) (Curve, error) {
	speed := c.Speed
	if speed <= 0 {
		speed = 1
	}
	switch c.Kind {
	case "circle":
		if c.Radius <= 0 {
			return nil, fmt.Errorf("circle curve needs a positive radius, got %v", c.Radius)
		}
		return Circle{Radius: c.Radius, Speed: speed}, nil
	case "lissajous":
		scale := c.Scale
		if scale <= 0 {
			scale = 1
		}
		return Lissajous{Scale: scale, A: c.A, B: c.B, Delta: c.Delta, Speed: speed}, nil
	case "spirograph":
		if c.Inner <= 0 || c.Outer <= c.Inner {
			return nil, fmt.Errorf("spirograph curve needs 0 < inner < outer, got inner=%v outer=%v", c.Inner, c.Outer)
		}
		return Spirograph{Outer: c.Outer, Inner: c.Inner, Pen: c.Pen, Speed: speed}, nil
	case "wander":
		freq := c.Freq
		if freq <= 0 {
			freq = 0.1
		}
		return NewWander(c.Seed, freq*speed, c.Amp), nil
	default:
		return nil, fmt.Errorf("unknown curve kind %q", c.Kind)
	}
}
