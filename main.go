package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wisp/app"
	"github.com/pthm-cable/wisp/config"
	"github.com/pthm-cable/wisp/engine"
	"github.com/pthm-cable/wisp/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 0, "Simulation ticks per update call (0 = use config)")
	strict := flag.Bool("strict", false, "Panic on pipeline invariant violations")
	dumpFinal := flag.Bool("dump-final", false, "Dump the particle store on exit (headless)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// CLI overrides
	if *statsWindow > 0 {
		cfg.Telemetry.StatsWindow = *statsWindow
	}
	if *stepsPerUpdate > 0 {
		cfg.Engine.StepsPerUpdate = *stepsPerUpdate
	}
	if *strict {
		cfg.Engine.Strict = true
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to set up output directory", "error", err)
		os.Exit(1)
	}
	if output != nil {
		if err := output.WriteConfig(cfg); err != nil {
			slog.Error("failed to write config snapshot", "error", err)
		}
		slog.Info("output enabled", "dir", output.Dir(), "run_id", output.RunID())
	}

	eng, err := engine.New(cfg, engine.Options{
		Output:   output,
		LogStats: *logStats,
	})
	if err != nil {
		slog.Error("failed to build engine", "error", err)
		os.Exit(1)
	}

	if *headless {
		runHeadless(cfg, eng, output, *maxTicks, *dumpFinal)
	} else {
		runGraphical(cfg, eng, output, *maxTicks)
	}

	eng.Close()
	if err := output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// runHeadless drives the engine without graphics until maxTicks.
func runHeadless(cfg *config.Config, eng *engine.Engine, output *telemetry.OutputManager, maxTicks int, dumpFinal bool) {
	slog.Info("starting headless run",
		"emitters", eng.Emitters(),
		"capacity", eng.Capacity(),
		"dt", cfg.Engine.DT,
		"max_ticks", maxTicks,
	)

	for {
		eng.Step()

		if maxTicks > 0 && int(eng.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", eng.Tick())
			break
		}
	}

	if dumpFinal {
		if path, err := output.WriteDump(eng.Tick(), eng.Store()); err != nil {
			slog.Error("failed to write final dump", "error", err)
		} else if path != "" {
			slog.Info("final store dumped", "path", path)
		}
	}
}

// runGraphical runs the interactive raylib loop.
func runGraphical(cfg *config.Config, eng *engine.Engine, output *telemetry.OutputManager, maxTicks int) {
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "wisp")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	a := app.New(cfg, eng, output)
	defer a.Unload()

	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()

		if maxTicks > 0 && int(a.Tick()) >= maxTicks {
			break
		}
	}
}
