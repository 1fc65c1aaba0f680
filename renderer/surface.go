package renderer

import (
	"fmt"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/glasspane/shader"
	"github.com/richinsley/glasspane/translator"
	gst "github.com/richinsley/goshadertranslator"
)

// Surface aggregates every GPU object belonging to the effect: the
// compiled program and the uniform locations the binder and frame loop
// write to. Keeping them in one struct makes teardown a single
// deterministic operation.
type Surface struct {
	program uint32

	resolutionLoc           int32
	textureLoc              int32
	textureSizeLoc          int32
	mouseLoc                int32
	parallaxStrengthLoc     int32
	distortionMultiplierLoc int32
	glassStrengthLoc        int32
	glassSmoothnessLoc      int32
	stripesFrequencyLoc     int32
	edgePaddingLoc          int32
}

// createSurface translates the WebGL2-dialect effect source to desktop
// GLSL, compiles it against the shared vertex shader, and resolves the
// uniform locations through the translator's name mapping.
func createSurface(effectSource string) (*Surface, error) {
	fullSource := shader.GetEffectShader(effectSource)

	xlate, err := translator.GetTranslator()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader translator: %w", err)
	}
	fsShader, err := xlate.TranslateShader(fullSource, "fragment", gst.ShaderSpecWebGL2, gst.OutputFormatGLSL410)
	if err != nil {
		return nil, fmt.Errorf("fragment shader translation failed: %w", err)
	}

	program, err := newProgram(shader.GenerateVertexShader(), fsShader.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	uniformMap := fsShader.Variables
	gl.UseProgram(program)

	s := &Surface{program: program}
	s.resolutionLoc = uniformLocation(uniformMap, program, "uResolution")
	s.textureLoc = uniformLocation(uniformMap, program, "uTexture")
	s.textureSizeLoc = uniformLocation(uniformMap, program, "uTextureSize")
	s.mouseLoc = uniformLocation(uniformMap, program, "uMouse")
	s.parallaxStrengthLoc = uniformLocation(uniformMap, program, "uParallaxStrength")
	s.distortionMultiplierLoc = uniformLocation(uniformMap, program, "uDistortionMultiplier")
	s.glassStrengthLoc = uniformLocation(uniformMap, program, "uGlassStrength")
	s.glassSmoothnessLoc = uniformLocation(uniformMap, program, "uGlassSmoothness")
	s.stripesFrequencyLoc = uniformLocation(uniformMap, program, "uStripesFrequency")
	s.edgePaddingLoc = uniformLocation(uniformMap, program, "uEdgePadding")

	return s, nil
}

// Destroy releases the program. Safe to call on a nil surface or more
// than once.
func (s *Surface) Destroy() {
	if s == nil || s.program == 0 {
		return
	}
	gl.DeleteProgram(s.program)
	s.program = 0
}

func uniformLocation(uniformMap map[string]gst.ShaderVariable, program uint32, name string) int32 {
	if v, ok := uniformMap[name]; ok {
		return gl.GetUniformLocation(program, gl.Str(v.MappedName+"\x00"))
	}
	return -1
}

func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("failed to link program: %v", log)
	}

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		return 0, fmt.Errorf("failed to compile shader: %v", logText)
	}
	return shader, nil
}
