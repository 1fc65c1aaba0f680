package shader

import (
	_ "embed"
)

//go:embed shaders/fractured_glass.frag
var fracturedGlassSource string

// ────────────────────────────────── Desktop GL ──────────────────────────────────

const vertexShaderSourceGL = `#version 410 core
layout (location = 0) in vec2 in_vert;
out vec2 frag_uv;
void main() {
    frag_uv = in_vert * 0.5 + 0.5;
    gl_Position = vec4(in_vert, 0.0, 1.0);
}
`

// Fallback path: draw the plain image with no distortion.
const blitFragmentShaderSourceGL = `#version 410 core
in vec2 frag_uv;
out vec4 fragColor;
uniform sampler2D u_texture;
void main() { fragColor = texture(u_texture, frag_uv); }
`

// ────────────────────── Dynamic preamble / user code glue ──────────────────────

// preamble declares every uniform the host binds. The effect source is
// appended after it, so external shaders see the same surface as the
// embedded one. The combined source is in the WebGL2 dialect and goes
// through the shader translator before compilation.
const preamble = `#version 300 es
precision highp float;
precision highp int;

uniform vec2      uResolution;
uniform sampler2D uTexture;
uniform vec2      uTextureSize;
uniform vec2      uMouse;
uniform float     uParallaxStrength;
uniform float     uDistortionMultiplier;
uniform float     uGlassStrength;
uniform float     uGlassSmoothness;
uniform float     uStripesFrequency;
uniform float     uEdgePadding;

out vec4 glass_frag_color;
`

const mainWrapper = `
void main(void)
{
    mainImage(glass_frag_color, gl_FragCoord.xy);
}
`

// ────────────────────────────────── Public API ─────────────────────────────────

// UniformNames lists the uniforms the renderer resolves locations for, in
// the names used by the untranslated source.
var UniformNames = []string{
	"uResolution",
	"uTexture",
	"uTextureSize",
	"uMouse",
	"uParallaxStrength",
	"uDistortionMultiplier",
	"uGlassStrength",
	"uGlassSmoothness",
	"uStripesFrequency",
	"uEdgePadding",
}

func GenerateVertexShader() string {
	return vertexShaderSourceGL
}

func GetBlitFragmentShader() string {
	return blitFragmentShaderSourceGL
}

// DefaultEffectSource returns the embedded fractured-glass fragment
// source. The host treats it as opaque text, same as an external file.
func DefaultEffectSource() string {
	return fracturedGlassSource
}

// GetEffectShader combines the uniform preamble, the user effect source
// and the main wrapper into a complete WebGL2 fragment shader.
func GetEffectShader(user string) string {
	return preamble + user + mainWrapper
}
