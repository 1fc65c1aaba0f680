package renderer

import (
	"testing"

	"github.com/richinsley/glasspane/options"
)

func TestConfigFromOptionsDefaults(t *testing.T) {
	cfg := ConfigFromOptions(nil)
	if cfg != DefaultConfig() {
		t.Fatalf("nil options should yield defaults, got %+v", cfg)
	}

	cfg = ConfigFromOptions(&options.EffectOptions{})
	if cfg != DefaultConfig() {
		t.Fatalf("empty options should yield defaults, got %+v", cfg)
	}

	if cfg.LerpFactor != 0.035 || cfg.ParallaxStrength != 0.1 || !cfg.ParallaxEnabled {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.DistortionMultiplier != 10 || cfg.GlassStrength != 2.0 || cfg.StripesFrequency != 35 || cfg.EdgePadding != 0.1 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestConfigFromOptionsOverrides(t *testing.T) {
	lerp := 0.2
	enabled := false
	stripes := 12.0
	cfg := ConfigFromOptions(&options.EffectOptions{
		LerpFactor:       &lerp,
		ParallaxEnabled:  &enabled,
		StripesFrequency: &stripes,
	})

	if cfg.LerpFactor != 0.2 {
		t.Fatalf("lerp override lost: %v", cfg.LerpFactor)
	}
	if cfg.ParallaxEnabled {
		t.Fatal("parallax override lost")
	}
	if cfg.StripesFrequency != 12 {
		t.Fatalf("stripes override lost: %v", cfg.StripesFrequency)
	}
	// Untouched fields keep their defaults.
	if cfg.GlassStrength != options.DefaultGlassStrength {
		t.Fatalf("unrelated field changed: %v", cfg.GlassStrength)
	}
}

func TestEffectiveParallaxStrength(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ParallaxStrength = 0.25

	if got := cfg.EffectiveParallaxStrength(); got != 0.25 {
		t.Fatalf("enabled: got %v, want 0.25", got)
	}

	cfg.ParallaxEnabled = false
	if got := cfg.EffectiveParallaxStrength(); got != 0 {
		t.Fatalf("disabled parallax must send zero strength, got %v", got)
	}
}
