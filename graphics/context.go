package graphics

// Context defines the interface for an OpenGL context.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	EndFrame()
	GetFramebufferSize() (int, int)
	// Visible reports whether the drawable surface is currently on screen
	// (not iconified or fully occluded).
	Visible() bool
	// WaitEvents blocks until an event arrives. Used to park the frame
	// loop while the surface is not visible.
	WaitEvents()
}
