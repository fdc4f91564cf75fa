package engine

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/wisp/config"
	"github.com/pthm-cable/wisp/telemetry"
	"github.com/pthm-cable/wisp/trail"
)

// testConfig writes body to a temp file and loads it through the real
// config path, so derived values and emitter defaults are filled in.
func testConfig(t *testing.T, body string) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	cfg, err := config.Load(path)
	require.NoError(t, err)
	return cfg
}

func stepN(e *Engine, n int) {
	for i := 0; i < n; i++ {
		e.Step()
	}
}

func TestEngineStepPipeline(t *testing.T) {
	cfg := testConfig(t, `
store:
  max_particles_per_emitter: 256
emitters:
  - name: ring
    spawn_rate: 120
    lifetime: 0.5
    width: 8
    curve: { kind: circle, radius: 100 }
`)
	e, err := New(cfg, Options{})
	require.NoError(t, err)
	defer e.Close()

	stepN(e, 10)

	assert.Equal(t, int32(10), e.Tick())
	// 120/s at 60 ticks/s deposits exactly 2 per tick, none expire in 10
	// ticks of a 0.5s lifetime.
	assert.Equal(t, 20, e.Live())

	f := e.Frame()
	require.NotNil(t, f)
	assert.Equal(t, int32(9), f.Tick)
	assert.Equal(t, 20, f.Live)
	require.Len(t, f.Meshes, 1)
	assert.Equal(t, trail.RibbonID(0), f.Meshes[0].ID)
	assert.Equal(t, 40, len(f.Meshes[0].Verts), "one vertex pair per particle")
	assert.Equal(t, 40, f.Vertices())

	for _, v := range f.Meshes[0].Verts {
		for axis := 0; axis < 2; axis++ {
			p := float64(v.Pos[axis])
			require.False(t, math.IsNaN(p) || math.IsInf(p, 0), "vertex position must be finite")
		}
	}
}

func TestEngineExpiryBoundsPopulation(t *testing.T) {
	cfg := testConfig(t, `
store:
  max_particles_per_emitter: 256
emitters:
  - name: ring
    spawn_rate: 60
    lifetime: 0.1
    curve: { kind: circle, radius: 50 }
`)
	e, err := New(cfg, Options{})
	require.NoError(t, err)
	defer e.Close()

	stepN(e, 60)

	// One particle per tick with a six tick lifetime settles well below
	// the cap: spawning and expiry balance out.
	assert.Greater(t, e.Live(), 0)
	assert.Less(t, e.Live(), 12)
	assert.Equal(t, e.Live(), e.Frame().Live)
}

func TestEngineSaturationEventOncePerEpisode(t *testing.T) {
	om, err := telemetry.NewOutputManager(t.TempDir())
	require.NoError(t, err)
	defer om.Close()

	cfg := testConfig(t, `
store:
  max_particles_per_emitter: 4
emitters:
  - name: firehose
    spawn_rate: 240
    lifetime: 30
    curve: { kind: circle, radius: 50 }
`)
	e, err := New(cfg, Options{Output: om})
	require.NoError(t, err)
	defer e.Close()

	// Tick 0 fills the store exactly; ticks 1-4 all drop but only the
	// first transition produces an event.
	stepN(e, 5)
	assert.Equal(t, 4, e.Live())

	events := readEvents(t, om)
	assert.Equal(t, 1, strings.Count(events, "saturation"))
	assert.Equal(t, 0, strings.Count(events, "recovery"))

	// Freeing the store lets the next tick spawn again: one recovery.
	require.Equal(t, 4, e.ClearRibbon(trail.RibbonID(0)))
	e.Step()
	assert.Equal(t, 4, e.Live())

	events = readEvents(t, om)
	assert.Equal(t, 1, strings.Count(events, "saturation"))
	assert.Equal(t, 1, strings.Count(events, "recovery"))

	// The store is full again, so the following tick opens a second
	// saturation episode.
	e.Step()
	events = readEvents(t, om)
	assert.Equal(t, 2, strings.Count(events, "saturation"))
}

func readEvents(t *testing.T, om *telemetry.OutputManager) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(om.Dir(), "events.csv"))
	require.NoError(t, err)
	return string(data)
}

func TestEngineOrphanRibbonDrains(t *testing.T) {
	cfg := testConfig(t, `
store:
  max_particles_per_emitter: 256
emitters:
  - name: keeper
    spawn_rate: 120
    lifetime: 1.0
    curve: { kind: circle, radius: 80 }
  - name: doomed
    spawn_rate: 120
    lifetime: 0.2
    curve: { kind: circle, radius: 160 }
`)
	e, err := New(cfg, Options{})
	require.NoError(t, err)
	defer e.Close()

	stepN(e, 5)
	require.Equal(t, 2, e.Emitters())
	require.Len(t, e.Frame().Meshes, 2)

	ent, ok := e.EmitterByName("doomed")
	require.True(t, ok)
	require.True(t, e.RemoveEmitter(ent))
	assert.Equal(t, 1, e.Emitters())
	assert.False(t, e.RemoveEmitter(ent), "second removal of the same entity")

	// The orphaned trail keeps rendering right after removal.
	e.Step()
	require.Len(t, e.Frame().Meshes, 2)
	_, _, tracked := e.Look(trail.RibbonID(1))
	assert.True(t, tracked)

	// After its lifetime passes the ribbon drains and its look is dropped.
	stepN(e, 20)
	require.Len(t, e.Frame().Meshes, 1)
	assert.Equal(t, trail.RibbonID(0), e.Frame().Meshes[0].ID)
	_, _, tracked = e.Look(trail.RibbonID(1))
	assert.False(t, tracked, "orphan look survives drain")
	_, _, tracked = e.Look(trail.RibbonID(0))
	assert.True(t, tracked)
}

func TestEngineAddEmitterAtRuntime(t *testing.T) {
	cfg := testConfig(t, `
store:
  max_particles_per_emitter: 256
emitters:
  - name: first
    spawn_rate: 60
    lifetime: 1.0
    curve: { kind: circle, radius: 80 }
`)
	e, err := New(cfg, Options{})
	require.NoError(t, err)
	defer e.Close()

	stepN(e, 3)
	_, err = e.AddEmitter(config.EmitterConfig{
		Name:      "late",
		SpawnRate: 120,
		Lifetime:  0.5,
		Width:     6,
		Tint:      config.TintConfig{R: 255, G: 0, B: 0, A: 255},
		Curve:     config.CurveConfig{Kind: "circle", Radius: 40},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, e.Emitters())

	stepN(e, 3)
	require.Len(t, e.Frame().Meshes, 2)
	assert.Equal(t, trail.RibbonID(1), e.Frame().Meshes[1].ID)
}

func TestEngineAddEmitterRejectsBadConfig(t *testing.T) {
	cfg := testConfig(t, `
emitters:
  - name: ok
    curve: { kind: circle, radius: 80 }
`)
	e, err := New(cfg, Options{})
	require.NoError(t, err)
	defer e.Close()

	_, err = e.AddEmitter(config.EmitterConfig{
		Name:  "broken",
		Curve: config.CurveConfig{Kind: "zigzag"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"broken"`)

	_, err = e.AddEmitter(config.EmitterConfig{
		Name:  "badfade",
		Fade:  config.FadeConfig{Size: "bounce"},
		Curve: config.CurveConfig{Kind: "circle", Radius: 10},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fade shape")
}

func TestEngineFramePublishedWholeTicksOnly(t *testing.T) {
	cfg := testConfig(t, `
store:
  max_particles_per_emitter: 256
emitters:
  - name: ring
    spawn_rate: 120
    lifetime: 0.5
    curve: { kind: circle, radius: 100 }
`)
	e, err := New(cfg, Options{})
	require.NoError(t, err)
	defer e.Close()

	assert.Equal(t, int32(-1), e.Frame().Tick, "no frame before the first step")

	stepN(e, 4)
	prev := e.Frame()
	require.Len(t, prev.Meshes, 1)
	wantPos := prev.Meshes[0].Verts[0].Pos
	wantLen := len(prev.Meshes[0].Verts)

	e.Step()
	next := e.Frame()
	require.NotSame(t, prev, next)
	assert.Equal(t, prev.Tick+1, next.Tick)

	// The previous frame's geometry must survive the tick that replaced
	// it: consumers may still be holding it.
	assert.Equal(t, wantPos, prev.Meshes[0].Verts[0].Pos)
	assert.Equal(t, wantLen, len(prev.Meshes[0].Verts))
	assert.Equal(t, int32(3), prev.Tick)
}

func TestEngineDeterministicAcrossRuns(t *testing.T) {
	const body = `
engine:
  strict: true
store:
  max_particles_per_emitter: 512
emitters:
  - name: ring
    spawn_rate: 90
    lifetime: 0.4
    width: 8
    curve: { kind: circle, radius: 120, speed: 2.0 }
  - name: drift
    spawn_rate: 75
    lifetime: 0.5
    width: 10
    curve: { kind: wander, freq: 0.4, amp: 150, seed: 7 }
`
	run := func() *Engine {
		e, err := New(testConfig(t, body), Options{})
		require.NoError(t, err)
		stepN(e, 120)
		return e
	}
	e1 := run()
	defer e1.Close()
	e2 := run()
	defer e2.Close()

	require.Equal(t, e1.Live(), e2.Live())
	require.Equal(t, len(e1.Frame().Meshes), len(e2.Frame().Meshes))
	assert.Equal(t, e1.Frame().Meshes, e2.Frame().Meshes, "mesh output must be identical run to run")

	collectAges := func(e *Engine) []float32 {
		st := e.Store()
		ages := make([]float32, 0, st.Len())
		st.Each(func(i int) { ages = append(ages, st.Age[i]) })
		return ages
	}
	assert.Equal(t, collectAges(e1), collectAges(e2))
}

func TestEngineCloseFlushesFinalWindow(t *testing.T) {
	om, err := telemetry.NewOutputManager(t.TempDir())
	require.NoError(t, err)
	defer om.Close()

	cfg := testConfig(t, `
telemetry:
  stats_window: 100.0
emitters:
  - name: ring
    spawn_rate: 60
    lifetime: 0.5
    curve: { kind: circle, radius: 100 }
`)
	e, err := New(cfg, Options{Output: om})
	require.NoError(t, err)

	stepN(e, 5)
	e.Close()

	data, err := os.ReadFile(filepath.Join(om.Dir(), "telemetry.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 2, "header plus the final short window")
}

func TestEngineClearRibbon(t *testing.T) {
	cfg := testConfig(t, `
store:
  max_particles_per_emitter: 256
emitters:
  - name: a
    spawn_rate: 120
    lifetime: 1.0
    curve: { kind: circle, radius: 80 }
  - name: b
    spawn_rate: 120
    lifetime: 1.0
    curve: { kind: circle, radius: 40 }
`)
	e, err := New(cfg, Options{})
	require.NoError(t, err)
	defer e.Close()

	stepN(e, 5)
	require.Equal(t, 20, e.Live())

	cleared := e.ClearRibbon(trail.RibbonID(1))
	assert.Equal(t, 10, cleared)
	assert.Equal(t, 10, e.Live())

	assert.Equal(t, 0, e.ClearRibbon(trail.RibbonID(9)), "unknown ribbon clears nothing")
}
