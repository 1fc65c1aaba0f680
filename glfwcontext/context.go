package glfwcontext

import (
	"errors"
	"fmt"
	"log"
	"runtime"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	glfw "github.com/go-gl/glfw/v3.3/glfw"
)

// ErrCapabilityUnavailable is returned when no usable OpenGL context can
// be created on this machine. Callers degrade to a non-effect path
// instead of failing.
var ErrCapabilityUnavailable = errors.New("3D rendering capability unavailable")

// Context wraps a GLFW window and tracks pointer and visibility state for
// the render loop.
type Context struct {
	window  *glfw.Window
	visible bool
	// A map to store functions to be called on key presses.
	keyCallbacks map[glfw.Key]func()
}

func windowHints(visible bool) {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if visible {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}
}

// ProbeCapability checks whether a minimal OpenGL context can be acquired
// at all, using a throwaway hidden window. It must run before any real
// GPU resources are created; a failure result short-circuits the whole
// effect pipeline. Any panic out of the driver during the probe counts as
// a capability failure.
func ProbeCapability() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrCapabilityUnavailable, r)
		}
	}()

	windowHints(false)
	win, werr := glfw.CreateWindow(1, 1, "glasspane-probe", nil, nil)
	if werr != nil || win == nil {
		return fmt.Errorf("%w: %v", ErrCapabilityUnavailable, werr)
	}
	defer win.Destroy()

	win.MakeContextCurrent()
	defer glfw.DetachCurrentContext()
	if ierr := gl.Init(); ierr != nil {
		return fmt.Errorf("%w: %v", ErrCapabilityUnavailable, ierr)
	}
	return nil
}

// New creates and initializes a GLFW window and returns a Context object.
// Record mode passes visible=false to render into a hidden window.
func New(width, height int, title string, visible bool) (*Context, error) {
	windowHints(visible)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, err
	}

	c := &Context{
		window: win,
		// Visible until the first iconify callback says otherwise, so
		// rendering starts immediately after creation.
		visible:      true,
		keyCallbacks: make(map[glfw.Key]func()),
	}

	win.SetKeyCallback(c.glfwKeyCallback)
	win.SetIconifyCallback(func(w *glfw.Window, iconified bool) {
		c.visible = !iconified
	})

	return c, nil
}

// RegisterKeyCallback allows the main application to register a function
// to be called when a specific key is pressed.
func (c *Context) RegisterKeyCallback(key glfw.Key, f func()) {
	c.keyCallbacks[key] = f
}

func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	// Handle the default Escape key behavior
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}

	if action == glfw.Press {
		if callback, ok := c.keyCallbacks[key]; ok {
			callback()
		}
	}
}

// SetPointerHandlers attaches cursor callbacks. onMove receives the
// cursor position and the current window size in screen coordinates;
// onLeave fires when the cursor exits the window. Attachment is
// conditional on parallax being enabled, so ClearPointerHandlers undoes
// this when it is toggled off.
func (c *Context) SetPointerHandlers(onMove func(x, y, width, height float64), onLeave func()) {
	c.window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		width, height := w.GetSize()
		onMove(xpos, ypos, float64(width), float64(height))
	})
	c.window.SetCursorEnterCallback(func(w *glfw.Window, entered bool) {
		if !entered {
			onLeave()
		}
	})
}

// ClearPointerHandlers detaches the cursor callbacks.
func (c *Context) ClearPointerHandlers() {
	c.window.SetCursorPosCallback(nil)
	c.window.SetCursorEnterCallback(nil)
}

// SetFramebufferSizeCallback forwards framebuffer size changes, including
// the zero sizes reported while minimized.
func (c *Context) SetFramebufferSizeCallback(f func(width, height int)) {
	c.window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		f(width, height)
	})
}

// Visible reports whether the window is on screen. Iconified windows do
// not receive frames.
func (c *Context) Visible() bool {
	return c.visible
}

// WaitEvents blocks until an event arrives. The frame loop parks here
// while the window is hidden.
func (c *Context) WaitEvents() {
	glfw.WaitEvents()
}

// MakeCurrent makes the context current for the calling goroutine.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

// Shutdown destroys the window. Safe to call on a partially constructed
// context.
func (c *Context) Shutdown() {
	if c.window != nil {
		c.window.Destroy()
		c.window = nil
	}
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

// Window returns the underlying *glfw.Window for key constants and tests.
func (c *Context) Window() *glfw.Window {
	return c.window
}

// InitGraphics initializes the main graphics subsystem (GLFW). Must be
// called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Printf("GLFW Initialized")
	return nil
}

// TerminateGraphics shuts down the graphics subsystem. Must be called
// from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}
