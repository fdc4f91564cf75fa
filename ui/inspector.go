package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wisp/trail"
)

// InspectorData is the per-frame readout for the selected ribbon,
// assembled by the app from the engine state.
type InspectorData struct {
	Name      string
	Ribbon    trail.RibbonID
	Points    int
	HeadAge   float32
	TailAge   float32
	Lifetime  float32
	Rate      float32
	Width     float32
	SizeFade  string
	AlphaFade string
	Tint      rl.Color
	Orphaned  bool
}

// Inspector tracks which ribbon is selected and renders its panel.
type Inspector struct {
	renderer *Renderer
	width    int32

	selected    trail.RibbonID
	hasSelected bool
}

// NewInspector creates an inspector with nothing selected.
func NewInspector() *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		width:    240,
	}
}

// Select sets the inspected ribbon.
func (in *Inspector) Select(id trail.RibbonID) {
	in.selected = id
	in.hasSelected = true
}

// Deselect clears the selection.
func (in *Inspector) Deselect() {
	in.hasSelected = false
}

// Selected returns the current selection, if any.
func (in *Inspector) Selected() (trail.RibbonID, bool) {
	return in.selected, in.hasSelected
}

// Draw renders the panel in the bottom-right corner.
func (in *Inspector) Draw(data InspectorData, screenWidth, screenHeight int32) {
	if !in.hasSelected {
		return
	}

	r := in.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	panelHeight := lineHeight*10 + padding*3
	x := screenWidth - in.width - 10
	y := screenHeight - panelHeight - 10

	r.DrawPanel(x, y, in.width, panelHeight)

	cx := x + padding
	cy := y + padding

	title := data.Name
	if title == "" {
		title = fmt.Sprintf("ribbon %d", data.Ribbon)
	}
	rl.DrawText(title, cx, cy, 16, rl.White)
	if data.Orphaned {
		w := rl.MeasureText(title, 16)
		rl.DrawText("(draining)", cx+w+8, cy+2, 12, rl.Orange)
	}
	cy += lineHeight + 6

	cy = r.DrawLabelValue(cx, cy, "Ribbon", fmt.Sprintf("%d", data.Ribbon))
	cy = r.DrawLabelValue(cx, cy, "Points", fmt.Sprintf("%d", data.Points))
	cy = r.DrawLabelValue(cx, cy, "Head age", fmt.Sprintf("%.2fs", data.HeadAge))
	cy = r.DrawLabelValue(cx, cy, "Tail age", fmt.Sprintf("%.2f / %.2fs", data.TailAge, data.Lifetime))
	cy = r.DrawLabelValue(cx, cy, "Rate", fmt.Sprintf("%.0f/s", data.Rate))
	cy = r.DrawLabelValue(cx, cy, "Width", fmt.Sprintf("%.1f", data.Width))
	cy = r.DrawLabelValue(cx, cy, "Fade", data.SizeFade+" / "+data.AlphaFade)
	cy = r.DrawColorSwatch(cx, cy, "Tint", data.Tint)

	rl.DrawText("[X] clear trail  [Esc] close", cx, cy+2, 10, rl.Gray)
}
