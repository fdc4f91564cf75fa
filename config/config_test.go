package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Screen.Width <= 0 || cfg.Screen.Height <= 0 {
		t.Errorf("screen = %dx%d, want positive dimensions", cfg.Screen.Width, cfg.Screen.Height)
	}
	if len(cfg.Emitters) == 0 {
		t.Fatal("defaults carry no emitters")
	}
	if cfg.Derived.DT32 <= 0 {
		t.Errorf("DT32 = %v, want positive", cfg.Derived.DT32)
	}
	want := cfg.Store.MaxParticlesPerEmitter * len(cfg.Emitters)
	if cfg.Derived.TotalCapacity != want {
		t.Errorf("TotalCapacity = %d, want %d", cfg.Derived.TotalCapacity, want)
	}
	for _, em := range cfg.Emitters {
		if _, ok := cfg.Derived.EmitterIndex[em.Name]; !ok {
			t.Errorf("emitter %q missing from index", em.Name)
		}
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	override := []byte(`
store:
  max_particles_per_emitter: 64
emitters:
  - name: solo
    spawn_rate: 10
    lifetime: 1.0
    curve: { kind: circle, radius: 50 }
`)
	if err := os.WriteFile(path, override, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Store.MaxParticlesPerEmitter != 64 {
		t.Errorf("MaxParticlesPerEmitter = %d, want 64", cfg.Store.MaxParticlesPerEmitter)
	}
	if len(cfg.Emitters) != 1 || cfg.Emitters[0].Name != "solo" {
		t.Fatalf("emitters = %+v, want the single override emitter", cfg.Emitters)
	}
	if cfg.Derived.TotalCapacity != 64 {
		t.Errorf("TotalCapacity = %d, want 64", cfg.Derived.TotalCapacity)
	}
	// Untouched sections keep their defaults
	if cfg.Screen.Width <= 0 {
		t.Errorf("screen width lost its default: %d", cfg.Screen.Width)
	}
}

func TestEmitterDefaultsFilledIn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sparse.yaml")
	sparse := []byte(`
fade:
  size: quad
  alpha: cubic
emitters:
  - name: bare
`)
	if err := os.WriteFile(path, sparse, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	em := cfg.Emitters[0]
	if em.SpawnRate <= 0 || em.Lifetime <= 0 || em.Width <= 0 {
		t.Errorf("bare emitter not filled in: %+v", em)
	}
	if em.Tint == (TintConfig{}) {
		t.Error("bare emitter kept a zero tint")
	}
	if em.Curve.Kind != "circle" || em.Curve.Radius <= 0 {
		t.Errorf("bare emitter curve = %+v, want a default circle", em.Curve)
	}
	// Unset fade channels inherit the global section
	if em.Fade.Size != "quad" || em.Fade.Alpha != "cubic" {
		t.Errorf("fade = %+v, want the global quad/cubic", em.Fade)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatal(err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if back.Store.MaxParticlesPerEmitter != cfg.Store.MaxParticlesPerEmitter {
		t.Errorf("round trip changed store capacity: %d != %d",
			back.Store.MaxParticlesPerEmitter, cfg.Store.MaxParticlesPerEmitter)
	}
	if len(back.Emitters) != len(cfg.Emitters) {
		t.Errorf("round trip changed emitter count: %d != %d", len(back.Emitters), len(cfg.Emitters))
	}
}
