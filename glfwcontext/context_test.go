package glfwcontext

import (
	"testing"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/glasspane/graphics"
)

// The render loop only ever sees the graphics.Context interface; keep the
// two in sync so neither grows methods the other does not carry.
var _ graphics.Context = (*Context)(nil)

func TestKeyCallbackDispatch(t *testing.T) {
	c := &Context{keyCallbacks: make(map[glfw.Key]func())}

	pressed := 0
	c.RegisterKeyCallback(glfw.KeyP, func() { pressed++ })

	c.glfwKeyCallback(nil, glfw.KeyP, 0, glfw.Press, 0)
	c.glfwKeyCallback(nil, glfw.KeyP, 0, glfw.Release, 0)
	c.glfwKeyCallback(nil, glfw.KeyO, 0, glfw.Press, 0)

	if pressed != 1 {
		t.Fatalf("expected exactly one dispatch on press, got %d", pressed)
	}
}
