// Curve preview tool - interactive emitter path visualization with sliders.
//
// Usage: go run ./cmd/curvepreview
package main

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/wisp/config"
	"github.com/pthm-cable/wisp/curve"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30

	traceSpan    = 40.0 // seconds of path traced in the preview
	traceSamples = 1200
)

var kinds = []string{"circle", "lissajous", "spirograph", "wander"}

// CurveParams holds every tunable across all curve kinds.
type CurveParams struct {
	Kind  int
	Speed float32

	Radius float32 // circle

	Scale float32 // lissajous
	A     float32
	B     float32
	Delta float32

	Outer float32 // spirograph
	Inner float32
	Pen   float32

	Freq float32 // wander
	Amp  float32
	Seed int64
}

func defaultParams() CurveParams {
	return CurveParams{
		Speed:  1.0,
		Radius: 200,
		Scale:  220,
		A:      3,
		B:      2,
		Delta:  1.57,
		Outer:  200,
		Inner:  55,
		Pen:    80,
		Freq:   0.4,
		Amp:    220,
		Seed:   12345,
	}
}

func (p CurveParams) toConfig() config.CurveConfig {
	return config.CurveConfig{
		Kind:   kinds[p.Kind],
		Speed:  p.Speed,
		Radius: p.Radius,
		Scale:  p.Scale,
		A:      p.A,
		B:      p.B,
		Delta:  p.Delta,
		Outer:  p.Outer,
		Inner:  p.Inner,
		Pen:    p.Pen,
		Freq:   p.Freq,
		Amp:    p.Amp,
		Seed:   p.Seed,
	}
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Curve Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	params := defaultParams()

	var c curve.Curve
	var buildErr error
	trace := make([]mgl32.Vec2, traceSamples)

	var time float32 = 0
	animating := true
	needsRebuild := true

	for !rl.WindowShouldClose() {
		if animating {
			time += rl.GetFrameTime()
		}

		if needsRebuild {
			// Spirograph sliders can momentarily cross; keep inner valid
			if params.Inner >= params.Outer {
				params.Inner = params.Outer - 5
			}
			nc, err := curve.FromConfig(params.toConfig())
			buildErr = err
			if err == nil {
				c = nc
				sampleTrace(c, trace)
			}
			needsRebuild = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)

		drawPreview(c, trace, time)

		statsY := int32(previewSize + 25)
		if buildErr != nil {
			rl.DrawText(buildErr.Error(), 15, statsY, 16, rl.Red)
		} else {
			minX, minY, maxX, maxY := traceBounds(trace)
			rl.DrawText(
				fmt.Sprintf("Extent: %.0f x %.0f  Time: %.1f", maxX-minX, maxY-minY, time),
				15, statsY, 16, rl.LightGray,
			)
		}

		if changed := drawPanel(&params, &time, &animating); changed {
			needsRebuild = true
		}

		// Copy to clipboard on C key
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(curveYAML(params))
		}

		rl.EndDrawing()
	}
}

// sampleTrace fills the polyline buffer from the curve.
func sampleTrace(c curve.Curve, trace []mgl32.Vec2) {
	for i := range trace {
		t := float32(i) / float32(len(trace)-1) * traceSpan
		trace[i] = c.At(t)
	}
}

func traceBounds(trace []mgl32.Vec2) (minX, minY, maxX, maxY float32) {
	minX, minY = trace[0][0], trace[0][1]
	maxX, maxY = minX, minY
	for _, p := range trace {
		if p[0] < minX {
			minX = p[0]
		}
		if p[0] > maxX {
			maxX = p[0]
		}
		if p[1] < minY {
			minY = p[1]
		}
		if p[1] > maxY {
			maxY = p[1]
		}
	}
	return minX, minY, maxX, maxY
}

// drawPreview renders the traced path fitted into the preview square,
// with a dot at the current head position.
func drawPreview(c curve.Curve, trace []mgl32.Vec2, time float32) {
	rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)
	if c == nil {
		return
	}

	minX, minY, maxX, maxY := traceBounds(trace)
	extent := maxX - minX
	if e := maxY - minY; e > extent {
		extent = e
	}
	if extent < 1 {
		extent = 1
	}
	scale := float32(previewSize) * 0.9 / extent
	cx := (minX + maxX) / 2
	cy := (minY + maxY) / 2

	toScreen := func(p mgl32.Vec2) rl.Vector2 {
		return rl.Vector2{
			X: 10 + previewSize/2 + (p[0]-cx)*scale,
			Y: 10 + previewSize/2 + (p[1]-cy)*scale,
		}
	}

	// Axis cross through the world origin
	origin := toScreen(mgl32.Vec2{0, 0})
	rl.DrawLineV(rl.Vector2{X: origin.X - 8, Y: origin.Y}, rl.Vector2{X: origin.X + 8, Y: origin.Y}, rl.DarkGray)
	rl.DrawLineV(rl.Vector2{X: origin.X, Y: origin.Y - 8}, rl.Vector2{X: origin.X, Y: origin.Y + 8}, rl.DarkGray)

	for i := 0; i+1 < len(trace); i++ {
		rl.DrawLineV(toScreen(trace[i]), toScreen(trace[i+1]), rl.Color{R: 80, G: 140, B: 220, A: 180})
	}

	head := toScreen(c.At(time))
	rl.DrawCircleV(head, 5, rl.White)
}

// drawPanel renders all sliders and buttons; returns true when any
// parameter changed.
func drawPanel(params *CurveParams, time *float32, animating *bool) bool {
	changed := false
	panelX := float32(previewSize + 20)
	panelY := float32(10)

	rl.DrawText("Emitter Curve Parameters", int32(panelX), int32(panelY), 20, rl.White)
	panelY += 35

	if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 250, Height: 30}, "Kind: "+kinds[params.Kind]) {
		params.Kind = (params.Kind + 1) % len(kinds)
		changed = true
	}
	panelY += 45

	slider := func(label, minText, maxText string, value *float32, min, max float32, format string) {
		rl.DrawText(label, int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		nv := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			minText, maxText,
			*value, min, max,
		)
		rl.DrawText(fmt.Sprintf(format, *value), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.LightGray)
		if nv != *value {
			*value = nv
			changed = true
		}
		panelY += 35
	}

	slider("Speed (clock multiplier)", "0.1", "5.0", &params.Speed, 0.1, 5.0, "%.2f")

	switch kinds[params.Kind] {
	case "circle":
		slider("Radius", "20", "400", &params.Radius, 20, 400, "%.0f")
	case "lissajous":
		slider("Scale", "20", "400", &params.Scale, 20, 400, "%.0f")
		slider("A (x frequency)", "0.5", "9", &params.A, 0.5, 9, "%.1f")
		slider("B (y frequency)", "0.5", "9", &params.B, 0.5, 9, "%.1f")
		slider("Delta (phase)", "0", "3.14", &params.Delta, 0, 3.14, "%.2f")
	case "spirograph":
		slider("Outer radius", "50", "400", &params.Outer, 50, 400, "%.0f")
		slider("Inner radius", "10", "395", &params.Inner, 10, 395, "%.0f")
		slider("Pen offset", "0", "200", &params.Pen, 0, 200, "%.0f")
	case "wander":
		slider("Freq (noise frequency)", "0.05", "2.0", &params.Freq, 0.05, 2.0, "%.2f")
		slider("Amp (roam radius)", "20", "400", &params.Amp, 20, 400, "%.0f")

		seed := float32(params.Seed)
		slider("Seed", "0", "99999", &seed, 0, 99999, "%.0f")
		if int64(seed) != params.Seed {
			params.Seed = int64(seed)
			changed = true
		}
	}

	panelY += 10

	if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(*animating, "Stop", "Animate")) {
		*animating = !*animating
	}
	if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset Time") {
		*time = 0
	}
	panelY += 45

	if kinds[params.Kind] == "wander" {
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(0, 99999))
			changed = true
		}
	}
	if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
		*params = defaultParams()
		*time = 0
		changed = true
	}
	panelY += 55

	// Output YAML
	rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.White)
	panelY += 25
	for _, line := range yamlLines(*params) {
		rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 16
	}

	rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.DarkGray)

	return changed
}

func yamlLines(p CurveParams) []string {
	lines := []string{
		"curve:",
		fmt.Sprintf("  kind: %s", kinds[p.Kind]),
		fmt.Sprintf("  speed: %.2f", p.Speed),
	}
	switch kinds[p.Kind] {
	case "circle":
		lines = append(lines, fmt.Sprintf("  radius: %.0f", p.Radius))
	case "lissajous":
		lines = append(lines,
			fmt.Sprintf("  scale: %.0f", p.Scale),
			fmt.Sprintf("  a: %.1f", p.A),
			fmt.Sprintf("  b: %.1f", p.B),
			fmt.Sprintf("  delta: %.2f", p.Delta),
		)
	case "spirograph":
		lines = append(lines,
			fmt.Sprintf("  outer: %.0f", p.Outer),
			fmt.Sprintf("  inner: %.0f", p.Inner),
			fmt.Sprintf("  pen: %.0f", p.Pen),
		)
	case "wander":
		lines = append(lines,
			fmt.Sprintf("  freq: %.2f", p.Freq),
			fmt.Sprintf("  amp: %.0f", p.Amp),
			fmt.Sprintf("  seed: %d", p.Seed),
		)
	}
	return lines
}

func curveYAML(p CurveParams) string {
	out := ""
	for _, line := range yamlLines(p) {
		out += line + "\n"
	}
	return out
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
