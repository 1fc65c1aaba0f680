package options

import "fmt"

// Effect parameter defaults. These match the stock fractured-glass shader;
// an external shader supplied with -shader is free to interpret them
// differently.
const (
	DefaultLerpFactor           = 0.035
	DefaultParallaxStrength     = 0.1
	DefaultDistortionMultiplier = 10.0
	DefaultGlassStrength        = 2.0
	DefaultGlassSmoothness      = 0.0001
	DefaultStripesFrequency     = 35.0
	DefaultEdgePadding          = 0.1
)

type EffectOptions struct {
	ImageSource *string // file path or http(s) URL, required
	ShaderPath  *string // optional external fragment shader (WebGL2 dialect)

	LerpFactor           *float64
	ParallaxStrength     *float64
	ParallaxEnabled      *bool
	DistortionMultiplier *float64
	GlassStrength        *float64
	GlassSmoothness      *float64
	StripesFrequency     *float64
	EdgePadding          *float64

	Mode       *string // "view" or "record"
	Width      *int
	Height     *int
	Duration   *float64
	FPS        *int
	OutputFile *string
	FFMPEGPath *string
	Codec      *string
}

// Validate checks the options for values the renderer cannot work with.
// It does not fill defaults; the flag layer owns those.
func (o *EffectOptions) Validate() error {
	if o.ImageSource == nil || *o.ImageSource == "" {
		return fmt.Errorf("an image source is required")
	}
	if o.LerpFactor != nil && (*o.LerpFactor <= 0 || *o.LerpFactor >= 1) {
		return fmt.Errorf("lerp factor must be in (0, 1), got %v", *o.LerpFactor)
	}
	if o.Mode != nil {
		switch *o.Mode {
		case "view", "record":
		default:
			return fmt.Errorf("unknown mode %q (want view or record)", *o.Mode)
		}
	}
	if o.Mode != nil && *o.Mode == "record" {
		if o.FPS != nil && *o.FPS <= 0 {
			return fmt.Errorf("fps must be positive, got %d", *o.FPS)
		}
		if o.Duration != nil && *o.Duration <= 0 {
			return fmt.Errorf("duration must be positive, got %v", *o.Duration)
		}
	}
	return nil
}
