package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wisp/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title    string
	Tick     int32
	Live     int
	Capacity int
	Emitters int
	Ribbons  int
	Vertices int
	Speed    int
	FPS      int32
	Paused   bool
	Additive bool

	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Emitters: %d | Ribbons: %d | Verts: %d", data.Emitters, data.Ribbons, data.Vertices),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d", data.Tick, data.Speed, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	// Store occupancy with the warn and alert thresholds of DrawBar
	occupancy := float32(0)
	if data.Capacity > 0 {
		occupancy = float32(data.Live) / float32(data.Capacity)
	}
	h.renderer.DrawBar(10, 78, "Store", occupancy, 260)

	status := "Running"
	color := rl.Green
	if data.Paused {
		status = "PAUSED"
		color = rl.Yellow
	}
	if data.Additive {
		status += " | glow"
	}
	rl.DrawText(status, 10, 98, 16, color)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the tick timing breakdown.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	phases := len(stats.PhaseAvg)
	panelHeight := int32(phases+4)*lineHeight + padding*2

	r.DrawPanel(p.x, p.y, p.width, panelHeight)

	x := p.x + padding
	y := p.y + padding

	rl.DrawText("Tick Timing", x, y, 16, rl.White)
	y += lineHeight + 4

	rl.DrawText(
		fmt.Sprintf("Avg: %s  TPS: %.0f", stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond),
		x, y, 12, rl.Yellow,
	)
	y += lineHeight

	for ph := 0; ph < phases; ph++ {
		pct := stats.PhasePct[ph]

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-10s %7s %5.1f%%",
				telemetry.Phase(ph).String(),
				stats.PhaseAvg[ph].Round(time.Microsecond),
				pct),
			x, y, 12, color,
		)
		y += lineHeight - 2
	}

	y += 4
	rl.DrawText(
		fmt.Sprintf("Frame: %s  FPS: %.0f", stats.FrameDuration.Round(time.Microsecond), stats.FPS),
		x, y, 12, rl.LightGray,
	)
}
