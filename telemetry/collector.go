// Package telemetry provides run statistics, performance tracking, and
// structured CSV output for simulation runs.
package telemetry

import "github.com/pthm-cable/wisp/trail"

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	spawned          int
	dropped          int
	expired          int
	saturationEvents int
	releaseErrors    int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		windowStartTick:     0,
	}
}

// RecordSpawn folds one emitter's per-tick spawn result into the window.
func (c *Collector) RecordSpawn(res trail.SpawnResult) {
	c.spawned += res.Spawned
	c.dropped += res.Dropped
	if res.Saturated {
		c.saturationEvents++
	}
}

// RecordExpired records particles released by age this tick.
func (c *Collector) RecordExpired(n int) {
	c.expired += n
}

// RecordReleaseError records a rejected release. Any nonzero count in a
// window points at a bookkeeping bug upstream.
func (c *Collector) RecordReleaseError() {
	c.releaseErrors++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Snapshot carries the end-of-window state the collector cannot observe
// on its own. The caller samples it from the store and the current frame.
type Snapshot struct {
	Live       int
	Capacity   int
	Emitters   int
	Ribbons    int
	Vertices   int
	RibbonLens []int     // points per drawable ribbon
	LiveAges   []float64 // ages of live particles
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, snap Snapshot) WindowStats {
	var dropRate float64
	if attempted := c.spawned + c.dropped; attempted > 0 {
		dropRate = float64(c.dropped) / float64(attempted)
	}

	var occupancy float64
	if snap.Capacity > 0 {
		occupancy = float64(snap.Live) / float64(snap.Capacity)
	}

	var lenSum, lenMax int
	for _, n := range snap.RibbonLens {
		lenSum += n
		if n > lenMax {
			lenMax = n
		}
	}
	var lenMean float64
	if len(snap.RibbonLens) > 0 {
		lenMean = float64(lenSum) / float64(len(snap.RibbonLens))
	}

	ageMean, ageP10, ageP50, ageP90 := ComputeAgeStats(snap.LiveAges)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Live:      snap.Live,
		Capacity:  snap.Capacity,
		Occupancy: occupancy,

		Spawned:          c.spawned,
		Dropped:          c.dropped,
		Expired:          c.expired,
		SaturationEvents: c.saturationEvents,
		ReleaseErrors:    c.releaseErrors,
		DropRate:         dropRate,

		Emitters:      snap.Emitters,
		Ribbons:       snap.Ribbons,
		Vertices:      snap.Vertices,
		RibbonLenMean: lenMean,
		RibbonLenMax:  lenMax,

		AgeMean: ageMean,
		AgeP10:  ageP10,
		AgeP50:  ageP50,
		AgeP90:  ageP90,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.spawned = 0
	c.dropped = 0
	c.expired = 0
	c.saturationEvents = 0
	c.releaseErrors = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
