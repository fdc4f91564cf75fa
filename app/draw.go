package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wisp/engine"
	"github.com/pthm-cable/wisp/trail"
	"github.com/pthm-cable/wisp/ui"
)

const controlsLegend = "[Space] pause  [N] step  [< >] speed  [D] perf  [B] blend  [P] dump  [Arrows/Drag] pan  [Wheel] zoom  [Home] reset  [Click] inspect"

// Draw renders one frame.
func (a *App) Draw() {
	a.eng.RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	a.bg.Draw(float32(a.eng.Tick()) * a.cfg.Derived.DT32)

	f := a.eng.Frame()
	a.ribbons.Draw(f, a.cam)
	a.drawSelectionHighlight(f)

	a.hud.Draw(ui.HUDData{
		Title:        "wisp",
		Tick:         f.Tick,
		Live:         a.eng.Live(),
		Capacity:     a.eng.Capacity(),
		Emitters:     a.eng.Emitters(),
		Ribbons:      len(f.Meshes),
		Vertices:     f.Vertices(),
		Speed:        a.stepsPerUpdate,
		FPS:          rl.GetFPS(),
		Paused:       a.paused,
		Additive:     a.ribbons.Additive(),
		ScreenWidth:  int32(a.screenWidth),
		ScreenHeight: int32(a.screenHeight),
	})

	if a.debugMode {
		a.perfPanel.Draw(a.eng.Perf())
	}

	if data, ok := a.inspectorData(); ok {
		a.inspector.Draw(data, int32(a.screenWidth), int32(a.screenHeight))
	}

	a.hud.DrawControls(int32(a.screenWidth), int32(a.screenHeight), controlsLegend)

	rl.EndDrawing()
}

// drawSelectionHighlight circles the head of the selected ribbon.
func (a *App) drawSelectionHighlight(f *engine.Frame) {
	id, ok := a.inspector.Selected()
	if !ok {
		return
	}
	hx, hy, hw, ok := ribbonHead(f, id)
	if !ok {
		return
	}
	sx, sy := a.cam.WorldToScreen(hx, hy)

	radius := hw*a.cam.Zoom + 6
	if radius < 10 {
		radius = 10
	}
	rl.DrawCircleLines(int32(sx), int32(sy), radius, rl.Color{R: 255, G: 255, B: 255, A: 200})
	rl.DrawCircleLines(int32(sx), int32(sy), radius+1, rl.Color{R: 255, G: 255, B: 255, A: 100})
}

// ribbonHead returns the head midpoint and half width of a ribbon's mesh.
func ribbonHead(f *engine.Frame, id trail.RibbonID) (x, y, halfWidth float32, ok bool) {
	for i := range f.Meshes {
		if f.Meshes[i].ID != id {
			continue
		}
		verts := f.Meshes[i].Verts
		if len(verts) < 2 {
			return 0, 0, 0, false
		}
		l, r := verts[len(verts)-2], verts[len(verts)-1]
		x = (l.Pos[0] + r.Pos[0]) / 2
		y = (l.Pos[1] + r.Pos[1]) / 2
		halfWidth = 0.5 * l.Pos.Sub(r.Pos).Len()
		return x, y, halfWidth, true
	}
	return 0, 0, 0, false
}

// inspectorData assembles the panel contents for the selected ribbon.
// Selection clears itself once the ribbon has fully drained.
func (a *App) inspectorData() (ui.InspectorData, bool) {
	id, ok := a.inspector.Selected()
	if !ok {
		return ui.InspectorData{}, false
	}

	style, tint, tracked := a.eng.Look(id)
	if !tracked {
		a.inspector.Deselect()
		return ui.InspectorData{}, false
	}

	data := ui.InspectorData{
		Name:      a.eng.RibbonName(id),
		Ribbon:    id,
		Rate:      a.eng.SpawnRate(id),
		Width:     style.Width,
		SizeFade:  style.Fade.Size.String(),
		AlphaFade: style.Fade.Alpha.String(),
		Tint:      rl.Color{R: tint.R, G: tint.G, B: tint.B, A: tint.A},
		Orphaned:  a.eng.Orphaned(id),
	}

	f := a.eng.Frame()
	for i := range f.Meshes {
		if f.Meshes[i].ID == id {
			data.Points = len(f.Meshes[i].Verts) / 2
			break
		}
	}

	// Head age is the newest live particle, tail age the oldest.
	st := a.eng.Store()
	first := true
	st.Each(func(i int) {
		if st.Ribbon[i] != id {
			return
		}
		age := st.Age[i]
		if first {
			data.HeadAge, data.TailAge = age, age
			data.Lifetime = st.Lifetime[i]
			first = false
			return
		}
		if age < data.HeadAge {
			data.HeadAge = age
		}
		if age > data.TailAge {
			data.TailAge = age
		}
	})

	return data, true
}
