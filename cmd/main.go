package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/glasspane/asset"
	"github.com/richinsley/glasspane/glfwcontext"
	"github.com/richinsley/glasspane/options"
	"github.com/richinsley/glasspane/renderer"
	"github.com/richinsley/glasspane/shader"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	opts := &options.EffectOptions{
		ImageSource: flag.String("image", "", "image to display (file path or http(s) URL)"),
		ShaderPath:  flag.String("shader", "", "optional fragment shader file replacing the built-in fractured glass effect"),

		LerpFactor:           flag.Float64("lerp", options.DefaultLerpFactor, "pointer smoothing factor in (0,1)"),
		ParallaxStrength:     flag.Float64("parallax-strength", options.DefaultParallaxStrength, "parallax displacement strength"),
		ParallaxEnabled:      flag.Bool("parallax", true, "enable pointer parallax"),
		DistortionMultiplier: flag.Float64("distortion", options.DefaultDistortionMultiplier, "overall distortion multiplier"),
		GlassStrength:        flag.Float64("glass-strength", options.DefaultGlassStrength, "glass refraction strength"),
		GlassSmoothness:      flag.Float64("glass-smoothness", options.DefaultGlassSmoothness, "glass facet seam smoothness"),
		StripesFrequency:     flag.Float64("stripes", options.DefaultStripesFrequency, "glass stripe frequency"),
		EdgePadding:          flag.Float64("edge-padding", options.DefaultEdgePadding, "sampling inset from the texture edges"),

		Mode:       flag.String("mode", "view", "view or record"),
		Width:      flag.Int("width", 1280, "window or output width"),
		Height:     flag.Int("height", 720, "window or output height"),
		Duration:   flag.Float64("duration", 10.0, "duration to record in seconds"),
		FPS:        flag.Int("fps", 60, "frames per second for recording"),
		OutputFile: flag.String("output", "output.mp4", "output file name for recording"),
		FFMPEGPath: flag.String("ffmpeg", "", "path to ffmpeg executable"),
		Codec:      flag.String("codec", "h264", "recording codec: h264 or hevc"),
	}
	var help = flag.Bool("help", false, "Show help message")
	flag.Parse()

	if *help {
		fmt.Println("glasspane - fractured glass image viewer")
		flag.PrintDefaults()
		return
	}

	if err := opts.Validate(); err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	effectSource := shader.DefaultEffectSource()
	if *opts.ShaderPath != "" {
		data, err := os.ReadFile(*opts.ShaderPath)
		if err != nil {
			log.Fatalf("Failed to read shader %s: %v", *opts.ShaderPath, err)
		}
		effectSource = string(data)
	}

	if err := glfwcontext.InitGraphics(); err != nil {
		log.Fatalf("Failed to initialize graphics: %v", err)
	}
	defer glfwcontext.TerminateGraphics()

	// The probe gates all GPU setup. Without a usable context the viewer
	// degrades to reporting the image instead of crashing.
	if err := glfwcontext.ProbeCapability(); err != nil {
		log.Printf("%v", err)
		runWithoutEffect(*opts.ImageSource)
		return
	}

	switch *opts.Mode {
	case "record":
		runRecord(opts, effectSource)
	default:
		runView(opts, effectSource)
	}
}

func runView(opts *options.EffectOptions, effectSource string) {
	ctx, err := glfwcontext.New(*opts.Width, *opts.Height, "glasspane", true)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}
	defer ctx.Shutdown()

	r, err := renderer.New(ctx, ctx, effectSource, renderer.ConfigFromOptions(opts))
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer r.Shutdown()

	r.LoadImage(*opts.ImageSource)

	// The frame loop also polls the framebuffer size, but the callback
	// keeps the resolution current while a drag-resize blocks polling.
	ctx.SetFramebufferSizeCallback(r.Resize)

	ctx.RegisterKeyCallback(glfw.KeyP, func() {
		r.SetParallaxEnabled(!r.ParallaxEnabled())
		log.Printf("parallax enabled: %v", r.ParallaxEnabled())
	})

	log.Println("Starting interactive render loop...")
	r.Run()
}

func runRecord(opts *options.EffectOptions, effectSource string) {
	ctx, err := glfwcontext.New(*opts.Width, *opts.Height, "glasspane", false)
	if err != nil {
		log.Fatalf("Failed to create hidden window: %v", err)
	}
	defer ctx.Shutdown()

	// No pointer host: the recording renders with a neutral pointer.
	r, err := renderer.New(ctx, nil, effectSource, renderer.ConfigFromOptions(opts))
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer r.Shutdown()

	img, err := asset.Resolve(*opts.ImageSource)
	if err != nil {
		log.Fatalf("Failed to load image: %v", err)
	}
	r.InstallImage(img)

	if err := r.RunOffscreen(opts); err != nil {
		log.Fatalf("Offscreen rendering failed: %v", err)
	}
	log.Printf("Successfully rendered to %s", *opts.OutputFile)
}

// runWithoutEffect is the capability fallback: with no GL context there
// is no surface to draw on, so report the image instead.
func runWithoutEffect(source string) {
	img, err := asset.Resolve(source)
	if err != nil {
		log.Printf("Image also unavailable: %v", err)
		return
	}
	b := img.Bounds()
	log.Printf("Displaying %s without effect is not possible on this machine (no 3D context); image is %dx%d", source, b.Dx(), b.Dy())
}
