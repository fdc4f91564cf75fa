package app

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wisp/engine"
	"github.com/pthm-cable/wisp/trail"
)

// handleInput processes keyboard and mouse input.
func (a *App) handleInput() {
	a.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		a.paused = !a.paused
	}
	// Single step while paused
	if a.paused && rl.IsKeyPressed(rl.KeyN) {
		a.stepOnce = true
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && a.stepsPerUpdate > 1 {
		a.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && a.stepsPerUpdate < 10 {
		a.stepsPerUpdate++
	}

	if rl.IsKeyPressed(rl.KeyD) {
		a.debugMode = !a.debugMode
	}
	if rl.IsKeyPressed(rl.KeyB) {
		a.ribbons.SetAdditive(!a.ribbons.Additive())
	}

	// Dump the live store to CSV
	if rl.IsKeyPressed(rl.KeyP) {
		if path, err := a.output.WriteDump(a.eng.Tick(), a.eng.Store()); err != nil {
			slog.Error("write dump", "error", err)
		} else if path != "" {
			slog.Info("store dumped", "path", path, "tick", a.eng.Tick())
		}
	}

	a.handleCameraInput()
	a.handleSelectionInput()
}

// handleResize checks for window resize and propagates new dimensions.
func (a *App) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == a.screenWidth && h == a.screenHeight {
		return
	}
	a.screenWidth = w
	a.screenHeight = h

	a.cam.Resize(w, h)
	a.bg.Resize(w, h)
	a.perfPanel.SetPosition(int32(w)-270, 10)
}

// handleCameraInput processes camera pan/zoom controls.
func (a *App) handleCameraInput() {
	// Pan speed scales inversely with zoom for natural feel
	panSpeed := float32(8.0) / a.cam.Zoom

	if rl.IsKeyDown(rl.KeyRight) {
		a.cam.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		a.cam.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		a.cam.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		a.cam.Pan(0, -panSpeed)
	}

	// Drag with the right mouse button
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		delta := rl.GetMouseDelta()
		a.cam.Pan(-delta.X, -delta.Y)
	}

	// Wheel zoom anchored on the cursor
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		mouse := rl.GetMousePosition()
		a.cam.ZoomAt(mouse.X, mouse.Y, 1.0+wheel*0.1)
	}

	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		a.cam.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		a.cam.ZoomBy(0.8)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		a.cam.Reset()
	}
}

// handleSelectionInput picks ribbons with the mouse and runs the
// inspector shortcuts.
func (a *App) handleSelectionInput() {
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		mouse := rl.GetMousePosition()
		wx, wy := a.cam.ScreenToWorld(mouse.X, mouse.Y)
		// Pick radius in world units shrinks as the camera zooms in
		if id, ok := pickRibbon(a.eng.Frame(), wx, wy, 24/a.cam.Zoom); ok {
			a.inspector.Select(id)
		} else {
			a.inspector.Deselect()
		}
	}

	if rl.IsKeyPressed(rl.KeyEscape) {
		a.inspector.Deselect()
	}
	if rl.IsKeyPressed(rl.KeyX) {
		if id, ok := a.inspector.Selected(); ok {
			cleared := a.eng.ClearRibbon(id)
			slog.Info("trail cleared", "ribbon", uint32(id), "particles", cleared)
		}
	}
}

// pickRibbon returns the ribbon whose head is nearest to the given world
// position, within maxDist.
func pickRibbon(f *engine.Frame, wx, wy, maxDist float32) (trail.RibbonID, bool) {
	bestDist := maxDist * maxDist
	var best trail.RibbonID
	found := false

	for i := range f.Meshes {
		verts := f.Meshes[i].Verts
		if len(verts) < 2 {
			continue
		}
		// Head midpoint: grouping is oldest first, so the head is the
		// last vertex pair.
		l, r := verts[len(verts)-2], verts[len(verts)-1]
		hx := (l.Pos[0] + r.Pos[0]) / 2
		hy := (l.Pos[1] + r.Pos[1]) / 2

		dx, dy := hx-wx, hy-wy
		if d := dx*dx + dy*dy; d < bestDist {
			bestDist = d
			best = f.Meshes[i].ID
			found = true
		}
	}
	return best, found
}
