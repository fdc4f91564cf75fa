// Package main provides batch headless soak runs for checking long-run
// stability and throughput of the trail pipeline.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/wisp/config"
	"github.com/pthm-cable/wisp/engine"
	"github.com/pthm-cable/wisp/telemetry"
)

// runResult holds the metrics collected from one soak run.
type runResult struct {
	Ticks        int
	Elapsed      time.Duration
	TPS          float64
	MeanOcc      float64
	PeakOcc      float64
	FullTicks    int
	FinalLive    int
	SteadyMin    int
	SteadyMax    int
	TickMeanUsec float64
	TickP50Usec  float64
	TickP99Usec  float64
}

// formatDuration formats a duration as HhMMmSSs or MmSSs for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	runs := flag.Int("runs", 3, "Number of soak runs")
	maxTicks := flag.Int("max-ticks", 100000, "Ticks per run")
	seedBase := flag.Int64("seed-base", 42, "Base seed; wander emitters get seed-base + run*1000")
	outputDir := flag.String("output", "", "Output directory for per-run CSVs and the soak log")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	logPath := filepath.Join(*outputDir, "soak_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create soak log: %v", err)
	}
	defer logFile.Close()

	logWriter := csv.NewWriter(logFile)
	defer logWriter.Flush()
	logWriter.Write([]string{
		"run", "ticks", "elapsed_sec", "tps",
		"mean_occ", "peak_occ", "full_ticks",
		"final_live", "steady_min", "steady_max",
		"tick_mean_usec", "tick_p50_usec", "tick_p99_usec",
	})

	fmt.Printf("Starting soak: %d runs x %d ticks\n", *runs, *maxTicks)

	start := time.Now()
	results := make([]runResult, 0, *runs)

	for run := 1; run <= *runs; run++ {
		res, err := soakRun(*configPath, *maxTicks, *seedBase+int64(run-1)*1000, *outputDir)
		if err != nil {
			log.Fatalf("run %d failed: %v", run, err)
		}
		results = append(results, res)

		logWriter.Write([]string{
			strconv.Itoa(run),
			strconv.Itoa(res.Ticks),
			fmt.Sprintf("%.3f", res.Elapsed.Seconds()),
			fmt.Sprintf("%.0f", res.TPS),
			fmt.Sprintf("%.4f", res.MeanOcc),
			fmt.Sprintf("%.4f", res.PeakOcc),
			strconv.Itoa(res.FullTicks),
			strconv.Itoa(res.FinalLive),
			strconv.Itoa(res.SteadyMin),
			strconv.Itoa(res.SteadyMax),
			fmt.Sprintf("%.1f", res.TickMeanUsec),
			fmt.Sprintf("%.1f", res.TickP50Usec),
			fmt.Sprintf("%.1f", res.TickP99Usec),
		})
		logWriter.Flush()

		fmt.Printf("Run %d/%d: %d ticks in %s (%.0f ticks/s) tick mean=%.0fus p50=%.0fus p99=%.0fus occ mean=%.2f peak=%.2f full=%d live %d..%d\n",
			run, *runs, res.Ticks, formatDuration(res.Elapsed), res.TPS,
			res.TickMeanUsec, res.TickP50Usec, res.TickP99Usec,
			res.MeanOcc, res.PeakOcc, res.FullTicks, res.SteadyMin, res.SteadyMax)
	}

	// Aggregate throughput across runs
	tps := make([]float64, len(results))
	occ := make([]float64, len(results))
	for i, r := range results {
		tps[i] = r.TPS
		occ[i] = r.MeanOcc
	}

	fmt.Printf("\nSoak complete: %d runs in %s\n", len(results), formatDuration(time.Since(start)))
	fmt.Printf("Throughput: mean=%.0f ticks/s  std=%.0f  min=%.0f  max=%.0f\n",
		stat.Mean(tps, nil), stat.StdDev(tps, nil), floats.Min(tps), floats.Max(tps))
	fmt.Printf("Occupancy:  mean=%.3f  std=%.3f\n",
		stat.Mean(occ, nil), stat.StdDev(occ, nil))
	fmt.Printf("Log saved to: %s\n", logPath)
}

// soakRun executes one headless run and collects its metrics.
func soakRun(configPath string, maxTicks int, seed int64, outputDir string) (runResult, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return runResult{}, fmt.Errorf("load config: %w", err)
	}

	// Re-seed wander emitters so runs trace distinct paths
	for i := range cfg.Emitters {
		if cfg.Emitters[i].Curve.Kind == "wander" {
			cfg.Emitters[i].Curve.Seed = seed
		}
	}

	output, err := telemetry.NewOutputManager(outputDir)
	if err != nil {
		return runResult{}, fmt.Errorf("output manager: %w", err)
	}

	eng, err := engine.New(cfg, engine.Options{Output: output})
	if err != nil {
		output.Close()
		return runResult{}, fmt.Errorf("build engine: %w", err)
	}

	capacity := float64(eng.Capacity())

	// Steady state starts once the longest lifetime has elapsed
	warmup := 0
	for _, em := range cfg.Emitters {
		if w := int(float64(em.Lifetime)/cfg.Engine.DT) + 1; w > warmup {
			warmup = w
		}
	}

	var (
		sumOcc    float64
		peakOcc   float64
		fullTicks int
		steadyMin = -1
		steadyMax = -1
	)
	tickUsec := make([]float64, maxTicks)

	start := time.Now()
	for t := 0; t < maxTicks; t++ {
		tickStart := time.Now()
		eng.Step()
		tickUsec[t] = float64(time.Since(tickStart).Nanoseconds()) / 1e3

		live := eng.Live()
		o := float64(live) / capacity
		sumOcc += o
		if o > peakOcc {
			peakOcc = o
		}
		if live == eng.Capacity() {
			fullTicks++
		}
		if t >= warmup {
			if steadyMin < 0 || live < steadyMin {
				steadyMin = live
			}
			if live > steadyMax {
				steadyMax = live
			}
		}
	}
	elapsed := time.Since(start)

	// Quantile wants sorted input
	sort.Float64s(tickUsec)
	res := runResult{
		Ticks:        maxTicks,
		Elapsed:      elapsed,
		TPS:          float64(maxTicks) / elapsed.Seconds(),
		MeanOcc:      sumOcc / float64(maxTicks),
		PeakOcc:      peakOcc,
		FullTicks:    fullTicks,
		FinalLive:    eng.Live(),
		SteadyMin:    steadyMin,
		SteadyMax:    steadyMax,
		TickMeanUsec: stat.Mean(tickUsec, nil),
		TickP50Usec:  stat.Quantile(0.50, stat.LinInterp, tickUsec, nil),
		TickP99Usec:  stat.Quantile(0.99, stat.LinInterp, tickUsec, nil),
	}

	eng.Close()
	if err := output.Close(); err != nil {
		return runResult{}, fmt.Errorf("close output: %w", err)
	}
	return res, nil
}
