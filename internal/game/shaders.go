package game

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Scene vertex shader: position/normal/uv from mesh.Vertex, world-space normal out.
const sceneVertSrc = `#version 410 core

layout(location = 0) in vec3 aPos;
layout(location = 1) in vec3 aNormal;
layout(location = 2) in vec2 aUV;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProj;

out vec3 vNormal;
out vec2 vUV;
out float vDepth;

void main() {
    vec4 world = uModel * vec4(aPos, 1.0);
    vNormal = mat3(uModel) * aNormal;
    vUV = aUV;
    vec4 eye = uView * world;
    vDepth = -eye.z;
    gl_Position = uProj * eye;
}
` + "\x00"

// Scene fragment shader: lambert with an ambient floor, a checker on tiled UVs and
// linear distance fog toward the clear colour.
const sceneFragSrc = `#version 410 core

uniform vec3 uColor;
uniform vec3 uLightDir;
uniform float uAmbient;
uniform float uChecker;
uniform vec3 uFogColor;
uniform float uFogFar;

in vec3 vNormal;
in vec2 vUV;
in float vDepth;
out vec4 FragColor;

void main() {
    float diffuse = max(dot(normalize(vNormal), -normalize(uLightDir)), 0.0);
    vec3 c = uColor * (uAmbient + (1.0 - uAmbient) * diffuse);
    if (uChecker > 0.0) {
        vec2 cell = floor(vUV);
        if (mod(cell.x + cell.y, 2.0) > 0.5) {
            c *= 1.0 - uChecker;
        }
    }
    float fog = clamp(vDepth / uFogFar, 0.0, 1.0);
    FragColor = vec4(mix(c, uFogColor, fog * fog), 1.0);
}
` + "\x00"

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(buf))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile shader: %s", strings.TrimRight(buf, "\x00"))
	}
	return shader, nil
}

func linkProgram(vertSrc, fragSrc string) (uint32, error) {
	vs, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	gl.DetachShader(program, vs)
	gl.DetachShader(program, fs)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(buf))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link program: %s", strings.TrimRight(buf, "\x00"))
	}
	return program, nil
}
