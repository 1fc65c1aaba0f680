package renderer

import (
	"fmt"
	"image"
	"log"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/glasspane/graphics"
	"github.com/richinsley/glasspane/pointer"
	"github.com/richinsley/glasspane/shader"
	"github.com/richinsley/glasspane/texture"
)

// Ensure gl.Init() is called only once per process.
var glInitOnce sync.Once

var quadVertices = []float32{
	-1.0, 1.0, -1.0, -1.0, 1.0, -1.0,
	-1.0, 1.0, 1.0, -1.0, 1.0, 1.0,
}

// PointerHost attaches and detaches cursor listeners. Attachment is
// conditional on parallax being enabled.
type PointerHost interface {
	SetPointerHandlers(onMove func(x, y, width, height float64), onLeave func())
	ClearPointerHandlers()
}

// Renderer owns the full lifecycle of the effect: quad geometry, shader
// surface, image texture and the frame loop that ties them together.
type Renderer struct {
	context     graphics.Context
	pointerHost PointerHost // nil when there is no interactive pointer

	quadVAO     uint32
	quadVBO     uint32
	surface     *Surface
	blitProgram uint32
	blitTexLoc  int32

	texture *texture.Texture
	loader  *texture.Loader

	pointer *pointer.State
	sched   scheduler
	config  Config

	width  int
	height int

	loaded     bool // a texture is installed
	loadFailed bool // the latest requested source failed to load
	fallback   bool // effect shader unavailable, plain-image path only

	shutdown bool
}

// New constructs the renderer on the given context. effectSource is the
// opaque fragment shader text; if it fails to translate or compile the
// renderer degrades to the plain-image fallback path instead of failing.
func New(ctx graphics.Context, host PointerHost, effectSource string, cfg Config) (*Renderer, error) {
	r := &Renderer{
		context:     ctx,
		pointerHost: host,
		pointer:     pointer.NewState(),
		loader:      texture.NewLoader(),
	}

	ctx.MakeCurrent()

	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}

	gl.GenVertexArrays(1, &r.quadVAO)
	gl.GenBuffers(1, &r.quadVBO)
	gl.BindVertexArray(r.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	var err error
	r.blitProgram, err = newProgram(shader.GenerateVertexShader(), shader.GetBlitFragmentShader())
	if err != nil {
		r.Shutdown()
		return nil, fmt.Errorf("failed to create blit program: %w", err)
	}
	r.blitTexLoc = gl.GetUniformLocation(r.blitProgram, gl.Str("u_texture\x00"))

	r.surface, err = createSurface(effectSource)
	if err != nil {
		// Degrade rather than fail: the plain image still displays.
		log.Printf("effect shader unavailable, falling back to plain image: %v", err)
		r.fallback = true
	}

	w, h := ctx.GetFramebufferSize()
	r.width, r.height = w, h

	r.ApplyConfig(cfg)
	r.bindResolution()

	return r, nil
}

// LoadImage starts loading the image at source without blocking the
// render loop. The result is installed by a later frame; if a newer
// source is requested before this one completes, this one is discarded.
func (r *Renderer) LoadImage(source string) {
	r.loader.Load(source)
}

// InstallImage synchronously uploads an already decoded image, replacing
// any bound texture. Used by record mode, which has no frame loop to poll
// the async loader.
func (r *Renderer) InstallImage(img image.Image) {
	r.installPixels(texture.Prepare(img))
}

// Loaded reports whether an image texture is currently installed.
func (r *Renderer) Loaded() bool {
	return r.loaded
}

func (r *Renderer) installPixels(rgba *image.RGBA) {
	// Release the previous texture before installing the new one, so at
	// most one texture resource is ever bound.
	r.texture.Destroy()
	r.texture = texture.Upload(rgba)
	r.loaded = true
	r.loadFailed = false
	r.bindTextureSize()
}

// pollTexture installs any completed load. Failures flip the fallback
// flag without touching an already installed texture.
func (r *Renderer) pollTexture() {
	res, ok := r.loader.Poll()
	if !ok {
		return
	}
	if res.Err != nil {
		log.Printf("failed to load image %s: %v", res.Source, res.Err)
		r.loadFailed = true
		return
	}
	r.installPixels(res.Pixels)
	log.Printf("loaded image %s (%dx%d)", res.Source, r.texture.Width, r.texture.Height)
}

// Resize updates the drawable size and the resolution uniform. No-op on
// zero or unchanged dimensions, so minimized-window callbacks are safe.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if width == r.width && height == r.height {
		return
	}
	r.width, r.height = width, height
	r.bindResolution()
}

// Run drives the interactive frame loop until the window closes. Frames
// are produced only while the window is visible; while hidden the loop
// parks in WaitEvents so no render calls are issued.
func (r *Renderer) Run() {
	for !r.context.ShouldClose() {
		r.pollTexture()

		ready := r.surface != nil || r.blitProgram != 0
		if r.sched.update(ready, r.context.Visible()) != schedRunning {
			r.context.WaitEvents()
			continue
		}

		w, h := r.context.GetFramebufferSize()
		r.Resize(w, h)

		r.pointer.Tick(r.config.LerpFactor, r.config.ParallaxEnabled)
		r.RenderFrame()
		r.context.EndFrame()
	}
}

// RenderFrame issues exactly one render of the quad with current state.
func (r *Renderer) RenderFrame() {
	if r.fallback || r.loadFailed || r.surface == nil {
		r.renderFallback()
		return
	}
	r.renderEffect()
}

func (r *Renderer) renderEffect() {
	gl.UseProgram(r.surface.program)

	if r.surface.mouseLoc != -1 {
		gl.Uniform2f(r.surface.mouseLoc, r.pointer.Current.X, r.pointer.Current.Y)
	}

	gl.ActiveTexture(gl.TEXTURE0)
	if r.texture != nil {
		gl.BindTexture(gl.TEXTURE_2D, r.texture.ID())
	} else {
		// The shader tolerates an unloaded texture; it samples black
		// until the load completes.
		gl.BindTexture(gl.TEXTURE_2D, 0)
	}
	if r.surface.textureLoc != -1 {
		gl.Uniform1i(r.surface.textureLoc, 0)
	}

	gl.Viewport(0, 0, int32(r.width), int32(r.height))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.BindVertexArray(r.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)

	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// renderFallback draws the plain source image letterboxed into the
// window, or a neutral clear when no texture is available.
func (r *Renderer) renderFallback() {
	gl.Viewport(0, 0, int32(r.width), int32(r.height))
	gl.ClearColor(0.13, 0.13, 0.13, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	if r.texture == nil || r.blitProgram == 0 {
		return
	}

	x, y, w, h := fitRect(r.width, r.height, r.texture.Width, r.texture.Height)
	if w == 0 || h == 0 {
		return
	}

	gl.UseProgram(r.blitProgram)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.texture.ID())
	if r.blitTexLoc != -1 {
		gl.Uniform1i(r.blitTexLoc, 0)
	}
	gl.Viewport(x, y, w, h)
	gl.BindVertexArray(r.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (r *Renderer) bindResolution() {
	if r.surface == nil || r.surface.resolutionLoc == -1 {
		return
	}
	gl.UseProgram(r.surface.program)
	gl.Uniform2f(r.surface.resolutionLoc, float32(r.width), float32(r.height))
}

func (r *Renderer) bindTextureSize() {
	if r.surface == nil || r.surface.textureSizeLoc == -1 || r.texture == nil {
		return
	}
	res := r.texture.Resolution()
	gl.UseProgram(r.surface.program)
	gl.Uniform2f(r.surface.textureSizeLoc, res[0], res[1])
}

// Shutdown releases every GPU resource. It is idempotent and safe to
// call on partially initialized state, including right after a failed
// New.
func (r *Renderer) Shutdown() {
	if r.shutdown {
		return
	}
	r.shutdown = true

	r.sched.stop()
	if r.pointerHost != nil {
		r.pointerHost.ClearPointerHandlers()
	}

	r.surface.Destroy()
	r.surface = nil
	if r.blitProgram != 0 {
		gl.DeleteProgram(r.blitProgram)
		r.blitProgram = 0
	}
	r.texture.Destroy()
	r.texture = nil
	if r.quadVBO != 0 {
		gl.DeleteBuffers(1, &r.quadVBO)
		r.quadVBO = 0
	}
	if r.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &r.quadVAO)
		r.quadVAO = 0
	}
}
