package renderer

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/glasspane/pointer"
)

// ApplyConfig mirrors the configuration into shader uniforms and keeps
// the pointer listener attachment in sync with the parallax switch.
// Uniform writes are a no-op while the surface does not exist; the
// listener handling applies regardless.
func (r *Renderer) ApplyConfig(cfg Config) {
	r.config = cfg

	if cfg.ParallaxEnabled {
		r.attachPointer()
	} else {
		r.detachPointer()
		// Disabling parallax forces the live mouse state to neutral
		// immediately, not on the next scheduled frame.
		r.pointer.Current = pointer.Center
		r.pointer.Target = pointer.Center
	}

	r.bindConfig()
}

// SetParallaxEnabled flips the parallax switch at runtime, re-applying
// the full configuration.
func (r *Renderer) SetParallaxEnabled(enabled bool) {
	cfg := r.config
	cfg.ParallaxEnabled = enabled
	r.ApplyConfig(cfg)
}

// ParallaxEnabled reports the current parallax switch state.
func (r *Renderer) ParallaxEnabled() bool {
	return r.config.ParallaxEnabled
}

func (r *Renderer) attachPointer() {
	if r.pointerHost == nil {
		return
	}
	r.pointerHost.SetPointerHandlers(
		func(x, y, width, height float64) {
			r.pointer.SetTargetFromPixels(x, y, width, height)
		},
		func() {
			r.pointer.Leave()
		},
	)
}

func (r *Renderer) detachPointer() {
	if r.pointerHost == nil {
		return
	}
	r.pointerHost.ClearPointerHandlers()
}

// bindConfig pushes every configuration field into its uniform. The
// parallax strength sent to the shader is zero while parallax is
// disabled, independent of the configured value.
func (r *Renderer) bindConfig() {
	s := r.surface
	if s == nil {
		return
	}
	gl.UseProgram(s.program)

	if s.parallaxStrengthLoc != -1 {
		gl.Uniform1f(s.parallaxStrengthLoc, r.config.EffectiveParallaxStrength())
	}
	if s.distortionMultiplierLoc != -1 {
		gl.Uniform1f(s.distortionMultiplierLoc, r.config.DistortionMultiplier)
	}
	if s.glassStrengthLoc != -1 {
		gl.Uniform1f(s.glassStrengthLoc, r.config.GlassStrength)
	}
	if s.glassSmoothnessLoc != -1 {
		gl.Uniform1f(s.glassSmoothnessLoc, r.config.GlassSmoothness)
	}
	if s.stripesFrequencyLoc != -1 {
		gl.Uniform1f(s.stripesFrequencyLoc, r.config.StripesFrequency)
	}
	if s.edgePaddingLoc != -1 {
		gl.Uniform1f(s.edgePaddingLoc, r.config.EdgePadding)
	}
	if s.mouseLoc != -1 {
		gl.Uniform2f(s.mouseLoc, r.pointer.Current.X, r.pointer.Current.Y)
	}
}
