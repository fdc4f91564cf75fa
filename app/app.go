// Package app wires the engine, camera, renderers and UI into the
// interactive raylib loop. Headless runs drive the engine directly and
// never touch this package.
package app

import (
	"github.com/pthm-cable/wisp/camera"
	"github.com/pthm-cable/wisp/config"
	"github.com/pthm-cable/wisp/engine"
	"github.com/pthm-cable/wisp/renderer"
	"github.com/pthm-cable/wisp/telemetry"
	"github.com/pthm-cable/wisp/ui"
)

// App holds the complete interactive state on top of a running engine.
type App struct {
	cfg *config.Config
	eng *engine.Engine

	cam       *camera.Camera
	bg        *renderer.BackgroundRenderer
	ribbons   *renderer.RibbonRenderer
	hud       *ui.HUD
	perfPanel *ui.PerfPanel
	inspector *ui.Inspector

	output *telemetry.OutputManager

	screenWidth  float32
	screenHeight float32

	stepsPerUpdate int
	paused         bool
	stepOnce       bool
	debugMode      bool
}

// New creates the app around an engine. The output manager may be nil.
func New(cfg *config.Config, eng *engine.Engine, output *telemetry.OutputManager) *App {
	w := cfg.Derived.ScreenW32
	h := cfg.Derived.ScreenH32

	half := worldHalfExtent(cfg)
	a := &App{
		cfg:            cfg,
		eng:            eng,
		cam:            camera.New(w, h, half, half),
		bg:             renderer.NewBackgroundRenderer(int32(w), int32(h)),
		ribbons:        renderer.NewRibbonRenderer(),
		hud:            ui.NewHUD(),
		perfPanel:      ui.NewPerfPanel(int32(w)-270, 10, 260),
		inspector:      ui.NewInspector(),
		output:         output,
		screenWidth:    w,
		screenHeight:   h,
		stepsPerUpdate: cfg.Engine.StepsPerUpdate,
	}
	return a
}

// worldHalfExtent sizes the camera roam box from the widest curve in the
// config, with margin for the trail width.
func worldHalfExtent(cfg *config.Config) float32 {
	reach := float32(0)
	for _, em := range cfg.Emitters {
		c := em.Curve
		var r float32
		switch c.Kind {
		case "lissajous":
			r = c.Scale
		case "spirograph":
			r = c.Outer - c.Inner + c.Pen
		case "wander":
			r = c.Amp
		default:
			r = c.Radius
		}
		if r+em.Width > reach {
			reach = r + em.Width
		}
	}
	half := reach*1.25 + 100
	if min := cfg.Derived.ScreenW32 / 2; half < min {
		half = min
	}
	return half
}

// Update processes input and advances the simulation.
func (a *App) Update() {
	a.handleInput()

	steps := a.stepsPerUpdate
	if a.paused {
		steps = 0
		if a.stepOnce {
			steps = 1
			a.stepOnce = false
		}
	}
	for i := 0; i < steps; i++ {
		a.eng.Step()
	}
}

// Tick returns the engine tick count.
func (a *App) Tick() int32 {
	return a.eng.Tick()
}

// Unload frees renderer resources.
func (a *App) Unload() {
	a.bg.Unload()
}
