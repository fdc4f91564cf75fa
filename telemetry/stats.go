package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Store occupancy at window end
	Live      int     `csv:"live"`
	Capacity  int     `csv:"capacity"`
	Occupancy float64 `csv:"occupancy"`

	// Events during window
	Spawned          int     `csv:"spawned"`
	Dropped          int     `csv:"dropped"`
	Expired          int     `csv:"expired"`
	SaturationEvents int     `csv:"saturation_events"`
	ReleaseErrors    int     `csv:"release_errors"`
	DropRate         float64 `csv:"drop_rate"`

	// Geometry at window end
	Emitters      int     `csv:"emitters"`
	Ribbons       int     `csv:"ribbons"`
	Vertices      int     `csv:"vertices"`
	RibbonLenMean float64 `csv:"ribbon_len_mean"`
	RibbonLenMax  int     `csv:"ribbon_len_max"`

	// Age distribution across live particles (sampled at window end)
	AgeMean float64 `csv:"age_mean"`
	AgeP10  float64 `csv:"age_p10"`
	AgeP50  float64 `csv:"age_p50"`
	AgeP90  float64 `csv:"age_p90"`
}

// ComputeAgeStats calculates mean and percentiles from live particle ages.
func ComputeAgeStats(values []float64) (mean, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	// Quantile requires sorted input; work on a copy
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p10 = stat.Quantile(0.10, stat.LinInterp, sorted, nil)
	p50 = stat.Quantile(0.50, stat.LinInterp, sorted, nil)
	p90 = stat.Quantile(0.90, stat.LinInterp, sorted, nil)

	return mean, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("live", s.Live),
		slog.Int("capacity", s.Capacity),
		slog.Float64("occupancy", s.Occupancy),
		slog.Int("spawned", s.Spawned),
		slog.Int("dropped", s.Dropped),
		slog.Int("expired", s.Expired),
		slog.Int("saturation_events", s.SaturationEvents),
		slog.Int("release_errors", s.ReleaseErrors),
		slog.Float64("drop_rate", s.DropRate),
		slog.Int("emitters", s.Emitters),
		slog.Int("ribbons", s.Ribbons),
		slog.Int("vertices", s.Vertices),
		slog.Float64("ribbon_len_mean", s.RibbonLenMean),
		slog.Int("ribbon_len_max", s.RibbonLenMax),
		slog.Float64("age_mean", s.AgeMean),
		slog.Float64("age_p10", s.AgeP10),
		slog.Float64("age_p50", s.AgeP50),
		slog.Float64("age_p90", s.AgeP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"live", s.Live,
		"capacity", s.Capacity,
		"occupancy", s.Occupancy,
		"spawned", s.Spawned,
		"dropped", s.Dropped,
		"expired", s.Expired,
		"saturation_events", s.SaturationEvents,
		"release_errors", s.ReleaseErrors,
		"drop_rate", s.DropRate,
		"emitters", s.Emitters,
		"ribbons", s.Ribbons,
		"vertices", s.Vertices,
		"ribbon_len_mean", s.RibbonLenMean,
		"ribbon_len_max", s.RibbonLenMax,
		"age_mean", s.AgeMean,
		"age_p10", s.AgeP10,
		"age_p50", s.AgeP50,
		"age_p90", s.AgeP90,
	)
}
