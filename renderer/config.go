package renderer

import (
	"github.com/richinsley/glasspane/options"
)

// Config is the immutable-per-frame effect configuration mirrored into
// shader uniforms by the parameter binder.
type Config struct {
	LerpFactor           float32
	ParallaxStrength     float32
	ParallaxEnabled      bool
	DistortionMultiplier float32
	GlassStrength        float32
	GlassSmoothness      float32
	StripesFrequency     float32
	EdgePadding          float32
}

// DefaultConfig returns the stock effect parameters.
func DefaultConfig() Config {
	return Config{
		LerpFactor:           options.DefaultLerpFactor,
		ParallaxStrength:     options.DefaultParallaxStrength,
		ParallaxEnabled:      true,
		DistortionMultiplier: options.DefaultDistortionMultiplier,
		GlassStrength:        options.DefaultGlassStrength,
		GlassSmoothness:      options.DefaultGlassSmoothness,
		StripesFrequency:     options.DefaultStripesFrequency,
		EdgePadding:          options.DefaultEdgePadding,
	}
}

// ConfigFromOptions builds a Config from the option set, falling back to
// the defaults for any unset field.
func ConfigFromOptions(o *options.EffectOptions) Config {
	cfg := DefaultConfig()
	if o == nil {
		return cfg
	}
	if o.LerpFactor != nil {
		cfg.LerpFactor = float32(*o.LerpFactor)
	}
	if o.ParallaxStrength != nil {
		cfg.ParallaxStrength = float32(*o.ParallaxStrength)
	}
	if o.ParallaxEnabled != nil {
		cfg.ParallaxEnabled = *o.ParallaxEnabled
	}
	if o.DistortionMultiplier != nil {
		cfg.DistortionMultiplier = float32(*o.DistortionMultiplier)
	}
	if o.GlassStrength != nil {
		cfg.GlassStrength = float32(*o.GlassStrength)
	}
	if o.GlassSmoothness != nil {
		cfg.GlassSmoothness = float32(*o.GlassSmoothness)
	}
	if o.StripesFrequency != nil {
		cfg.StripesFrequency = float32(*o.StripesFrequency)
	}
	if o.EdgePadding != nil {
		cfg.EdgePadding = float32(*o.EdgePadding)
	}
	return cfg
}

// EffectiveParallaxStrength is the value actually sent to the shader:
// forced to zero while parallax is disabled.
func (c Config) EffectiveParallaxStrength() float32 {
	if !c.ParallaxEnabled {
		return 0
	}
	return c.ParallaxStrength
}
