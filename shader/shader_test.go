package shader

import (
	"strings"
	"testing"
)

func TestGetEffectShaderAssembly(t *testing.T) {
	user := "void mainImage(out vec4 fragColor, in vec2 fragCoord) { fragColor = vec4(1.0); }"
	src := GetEffectShader(user)

	if !strings.HasPrefix(src, "#version 300 es") {
		t.Fatal("combined source must start with the WebGL2 version directive")
	}
	if !strings.Contains(src, user) {
		t.Fatal("user code missing from combined source")
	}
	if !strings.Contains(src, "mainImage(glass_frag_color, gl_FragCoord.xy)") {
		t.Fatal("main wrapper missing from combined source")
	}

	// Every uniform the renderer resolves must be declared ahead of the
	// user code, so external shaders see the full surface.
	for _, name := range UniformNames {
		if !strings.Contains(src, name) {
			t.Fatalf("uniform %s not declared in preamble", name)
		}
	}
}

func TestDefaultEffectSource(t *testing.T) {
	src := DefaultEffectSource()
	if !strings.Contains(src, "void mainImage(") {
		t.Fatal("embedded effect must define mainImage")
	}
	if strings.Contains(src, "#version") {
		t.Fatal("effect source must not carry its own version directive; the preamble owns it")
	}
}

func TestVertexAndBlitSources(t *testing.T) {
	if !strings.Contains(GenerateVertexShader(), "gl_Position") {
		t.Fatal("vertex shader looks incomplete")
	}
	if !strings.Contains(GetBlitFragmentShader(), "u_texture") {
		t.Fatal("blit shader must sample u_texture")
	}
}
