package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/wisp/camera"
	"github.com/pthm-cable/wisp/engine"
)

// RibbonRenderer draws skinned trail meshes as flat shaded triangle pairs.
type RibbonRenderer struct {
	additive bool
}

// NewRibbonRenderer creates a renderer with additive blending enabled.
func NewRibbonRenderer() *RibbonRenderer {
	return &RibbonRenderer{additive: true}
}

// SetAdditive switches between additive glow and normal alpha blending.
func (r *RibbonRenderer) SetAdditive(on bool) { r.additive = on }

// Additive reports the current blend mode.
func (r *RibbonRenderer) Additive() bool { return r.additive }

// Draw renders every ribbon of a completed frame through the camera.
func (r *RibbonRenderer) Draw(f *engine.Frame, cam *camera.Camera) {
	if r.additive {
		rl.BeginBlendMode(rl.BlendAdditive)
		defer rl.EndBlendMode()
	}
	for i := range f.Meshes {
		r.drawStrip(&f.Meshes[i], cam)
	}
}

// drawStrip walks the vertex pairs of one mesh. Each quad between two
// consecutive pairs is flat shaded with the mean of the pair alphas, so
// the fade steps per segment instead of per pixel.
func (r *RibbonRenderer) drawStrip(d *engine.Drawable, cam *camera.Camera) {
	verts := d.Verts
	for i := 0; i+3 < len(verts); i += 2 {
		a := 0.5 * (verts[i].Alpha + verts[i+2].Alpha)
		col := rl.Color{
			R: d.Tint.R,
			G: d.Tint.G,
			B: d.Tint.B,
			A: uint8(float32(d.Tint.A) * a),
		}

		l0 := screenVec(cam, verts[i].Pos)
		r0 := screenVec(cam, verts[i+1].Pos)
		l1 := screenVec(cam, verts[i+2].Pos)
		r1 := screenVec(cam, verts[i+3].Pos)

		// DrawTriangle culls clockwise input; this order keeps both
		// halves of the quad counter-clockwise on screen.
		rl.DrawTriangle(l0, l1, r0, col)
		rl.DrawTriangle(l1, r1, r0, col)
	}

	// Round cap on the head so the newest segment doesn't end in a bare
	// edge. The head is the last pair: grouping is oldest first.
	if n := len(verts); n >= 2 {
		l, rr := verts[n-2], verts[n-1]
		mid := l.Pos.Add(rr.Pos).Mul(0.5)
		radius := 0.5 * l.Pos.Sub(rr.Pos).Len() * cam.Zoom
		if radius > 0 {
			col := rl.Color{
				R: d.Tint.R,
				G: d.Tint.G,
				B: d.Tint.B,
				A: uint8(float32(d.Tint.A) * l.Alpha),
			}
			rl.DrawCircleV(screenVec(cam, mid), radius, col)
		}
	}
}

func screenVec(cam *camera.Camera, v mgl32.Vec2) rl.Vector2 {
	sx, sy := cam.WorldToScreen(v[0], v[1])
	return rl.Vector2{X: sx, Y: sy}
}
