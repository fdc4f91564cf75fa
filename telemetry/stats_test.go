package telemetry

import (
	"math"
	"testing"
)

func TestComputeAgeStats(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	mean, p10, p50, p90 := ComputeAgeStats(values)

	if math.Abs(mean-5.5) > 0.001 {
		t.Errorf("mean = %v, want 5.5", mean)
	}
	if math.Abs(p10-1) > 0.01 {
		t.Errorf("p10 = %v, want ~1", p10)
	}
	if math.Abs(p50-5) > 0.01 {
		t.Errorf("p50 = %v, want ~5", p50)
	}
	if math.Abs(p90-9) > 0.01 {
		t.Errorf("p90 = %v, want ~9", p90)
	}
}

func TestComputeAgeStatsUnsortedInput(t *testing.T) {
	// The caller hands over ages in slot order; the helper must sort a
	// copy and leave the input alone.
	values := []float64{9, 1, 5, 3, 7}
	mean, _, p50, _ := ComputeAgeStats(values)

	if math.Abs(mean-5) > 0.001 {
		t.Errorf("mean = %v, want 5", mean)
	}
	if math.Abs(p50-5) > 0.01 {
		t.Errorf("p50 = %v, want ~5", p50)
	}
	if values[0] != 9 || values[4] != 7 {
		t.Errorf("input was reordered: %v", values)
	}
}

func TestComputeAgeStatsSingle(t *testing.T) {
	mean, p10, p50, p90 := ComputeAgeStats([]float64{7})
	for name, got := range map[string]float64{"mean": mean, "p10": p10, "p50": p50, "p90": p90} {
		if got != 7 {
			t.Errorf("%s = %v, want 7", name, got)
		}
	}
}

func TestComputeAgeStatsEmpty(t *testing.T) {
	mean, p10, p50, p90 := ComputeAgeStats([]float64{})

	if mean != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
}
