package render

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// vertexShaderSource transforms world positions by projection*view and
// passes the per-vertex texture coordinate through unchanged. The uniform
// names projection and view are part of the contract with Object.Render.
const vertexShaderSource = `#version 410 core
layout (location = 0) in vec3 position;
layout (location = 1) in vec3 uvw;

out vec3 FragPos;

uniform mat4 projection;
uniform mat4 view;

void main()
{
    gl_Position = projection * view * vec4(position, 1.0);
    FragPos = uvw;
}
`

// fragmentShaderSource samples the scalar field at the interpolated
// coordinate, clamps to [0,1] against out-of-window values, and looks the
// color up in the 1D colormap. No lighting or blending.
const fragmentShaderSource = `#version 410 core
out vec4 FragColor;
in vec3 FragPos;

uniform sampler1D cmap;
uniform sampler3D field;

vec3 colormap(float value)
{
    value = clamp(value, 0.0, 1.0);
    return texture(cmap, value).xyz;
}

void main()
{
    float value = texture(field, FragPos).x;
    FragColor = vec4(colormap(value), 1.0);
}
`

// compileShader compiles a single shader stage.
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
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s", log)
	}

	return shader, nil
}

// linkProgram links vertex and fragment shaders into a program.
func linkProgram(vertShader, fragShader uint32) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link failed: %s", log)
	}

	return program, nil
}

// buildProgram compiles both stages and links them, discarding the
// intermediate shader objects.
func buildProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertShader, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fragShader)

	return linkProgram(vertShader, fragShader)
}
