package curve

import (
	"github.com/go-gl/mathgl/mgl32"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// laneOffset separates the x and y noise samples. Any value well away
// from zero works; it only has to stay fixed.
const laneOffset = 31.7

// Wander drifts smoothly through a box of half-extent Amp, driven by
// simplex noise. Two noise lanes sampled far apart give x and y
// independent motion, so the path never collapses onto a diagonal.
type Wander struct {
	freq  float32
	amp   float32
	noise opensimplex.Noise
}

// NewWander builds a noise-driven curve. The same seed always produces
// the same path.
func NewWander(seed int64, freq, amp float32) *Wander {
	return &Wander{freq: freq, amp: amp, noise: opensimplex.NewNormalized(seed)}
}

func (w *Wander) At(t float32) mgl32.Vec2 {
	x := w.noise.Eval2(float64(w.freq*t), 0)
	y := w.noise.Eval2(float64(w.freq*t), laneOffset)
	// Normalized noise sits in [0, 1]; recentre it onto [-Amp, Amp].
	return mgl32.Vec2{
		(float32(x) - 0.5) * 2 * w.amp,
		(float32(y) - 0.5) * 2 * w.amp,
	}
}
