//go:build gles && !tinygo

// Package gles implements gpu.Device on OpenGL ES 2.0 through go-gl.
//
// Every method must be called on the thread that owns the current context.
package gles

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-gl/gl/v3.1/gles2"

	"dash/gpu"
)

// Device forwards gpu.Device calls to the current GLES context.
type Device struct{}

// Init loads the GLES entry points. A context must be current.
func Init() (*Device, error) {
	if err := gles2.Init(); err != nil {
		return nil, fmt.Errorf("gles: init: %w", err)
	}
	gpu.Logger().Info("gles: context ready",
		slog.String("version", gles2.GoStr(gles2.GetString(gles2.VERSION))),
		slog.String("renderer", gles2.GoStr(gles2.GetString(gles2.RENDERER))))
	return &Device{}, nil
}

func bufferTarget(t gpu.BufferTarget) uint32 {
	if t == gpu.ElementArrayBuffer {
		return gles2.ELEMENT_ARRAY_BUFFER
	}
	return gles2.ARRAY_BUFFER
}

func bufferUsage(u gpu.BufferUsage) uint32 {
	switch u {
	case gpu.StreamDraw:
		return gles2.STREAM_DRAW
	case gpu.DynamicDraw:
		return gles2.DYNAMIC_DRAW
	default:
		return gles2.STATIC_DRAW
	}
}

var primitives = [...]uint32{
	gpu.Points:        gles2.POINTS,
	gpu.LineStrip:     gles2.LINE_STRIP,
	gpu.LineLoop:      gles2.LINE_LOOP,
	gpu.Lines:         gles2.LINES,
	gpu.TriangleStrip: gles2.TRIANGLE_STRIP,
	gpu.TriangleFan:   gles2.TRIANGLE_FAN,
	gpu.Triangles:     gles2.TRIANGLES,
}

func (Device) GenBuffer() uint32 {
	var b uint32
	gles2.GenBuffers(1, &b)
	return b
}

func (Device) BindBuffer(target gpu.BufferTarget, buffer uint32) {
	gles2.BindBuffer(bufferTarget(target), buffer)
}

func (Device) BufferData(target gpu.BufferTarget, data []float32, usage gpu.BufferUsage) {
	if len(data) == 0 {
		gles2.BufferData(bufferTarget(target), 0, nil, bufferUsage(usage))
		return
	}
	gles2.BufferData(bufferTarget(target), len(data)*4, gles2.Ptr(data), bufferUsage(usage))
}

func (Device) CreateShader(kind gpu.ShaderKind) uint32 {
	if kind == gpu.FragmentShader {
		return gles2.CreateShader(gles2.FRAGMENT_SHADER)
	}
	return gles2.CreateShader(gles2.VERTEX_SHADER)
}

func (Device) ShaderSource(shader uint32, src string) {
	csource, free := gles2.Strs(src + "\x00")
	gles2.ShaderSource(shader, 1, csource, nil)
	free()
}

func (Device) CompileShader(shader uint32) { gles2.CompileShader(shader) }

func (Device) ShaderStatus(shader uint32) (bool, string) {
	var status, logLength int32
	gles2.GetShaderiv(shader, gles2.COMPILE_STATUS, &status)
	gles2.GetShaderiv(shader, gles2.INFO_LOG_LENGTH, &logLength)
	return status == gles2.TRUE, infoLog(logLength, func(buf *uint8) {
		gles2.GetShaderInfoLog(shader, logLength, nil, buf)
	})
}

func (Device) DeleteShader(shader uint32)      { gles2.DeleteShader(shader) }
func (Device) DeleteProgram(program uint32)    { gles2.DeleteProgram(program) }
func (Device) CreateProgram() uint32           { return gles2.CreateProgram() }
func (Device) AttachShader(program, sh uint32) { gles2.AttachShader(program, sh) }
func (Device) LinkProgram(program uint32)      { gles2.LinkProgram(program) }
func (Device) UseProgram(program uint32)       { gles2.UseProgram(program) }

func (Device) ProgramStatus(program uint32) (bool, string) {
	var status, logLength int32
	gles2.GetProgramiv(program, gles2.LINK_STATUS, &status)
	gles2.GetProgramiv(program, gles2.INFO_LOG_LENGTH, &logLength)
	return status == gles2.TRUE, infoLog(logLength, func(buf *uint8) {
		gles2.GetProgramInfoLog(program, logLength, nil, buf)
	})
}

func infoLog(n int32, read func(*uint8)) string {
	if n <= 1 {
		return ""
	}
	log := strings.Repeat("\x00", int(n+1))
	read(gles2.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (Device) AttribLocation(program uint32, name string) int32 {
	return gles2.GetAttribLocation(program, gles2.Str(name+"\x00"))
}

func (Device) UniformLocation(program uint32, name string) int32 {
	return gles2.GetUniformLocation(program, gles2.Str(name+"\x00"))
}

func (Device) EnableVertexAttribArray(location uint32)  { gles2.EnableVertexAttribArray(location) }
func (Device) DisableVertexAttribArray(location uint32) { gles2.DisableVertexAttribArray(location) }

// VertexAttribPointer describes tightly packed float components starting
// at offset 0 of the bound array buffer.
func (Device) VertexAttribPointer(location uint32, components int32) {
	gles2.VertexAttribPointer(location, components, gles2.FLOAT, false, 0, nil)
}

func (Device) Uniform1i(l int32, v0 int32)             { gles2.Uniform1i(l, v0) }
func (Device) Uniform2i(l int32, v0, v1 int32)         { gles2.Uniform2i(l, v0, v1) }
func (Device) Uniform3i(l int32, v0, v1, v2 int32)     { gles2.Uniform3i(l, v0, v1, v2) }
func (Device) Uniform4i(l int32, v0, v1, v2, v3 int32) { gles2.Uniform4i(l, v0, v1, v2, v3) }

func (Device) Uniform1f(l int32, v0 float32)             { gles2.Uniform1f(l, v0) }
func (Device) Uniform2f(l int32, v0, v1 float32)         { gles2.Uniform2f(l, v0, v1) }
func (Device) Uniform3f(l int32, v0, v1, v2 float32)     { gles2.Uniform3f(l, v0, v1, v2) }
func (Device) Uniform4f(l int32, v0, v1, v2, v3 float32) { gles2.Uniform4f(l, v0, v1, v2, v3) }

func (Device) DrawArrays(mode gpu.Primitive, first, count int32) {
	if !mode.Valid() {
		return
	}
	gles2.DrawArrays(primitives[mode], first, count)
}

func (Device) GenTexture() uint32 {
	var t uint32
	gles2.GenTextures(1, &t)
	return t
}

func (Device) ActiveTexture(unit int)     { gles2.ActiveTexture(gles2.TEXTURE0 + uint32(unit)) }
func (Device) BindTexture(texture uint32) { gles2.BindTexture(gles2.TEXTURE_2D, texture) }

func (Device) TexParameter(param gpu.TexParam, value gpu.TexValue) {
	var p uint32
	switch param {
	case gpu.TexMinFilter:
		p = gles2.TEXTURE_MIN_FILTER
	case gpu.TexMagFilter:
		p = gles2.TEXTURE_MAG_FILTER
	case gpu.TexWrapS:
		p = gles2.TEXTURE_WRAP_S
	default:
		p = gles2.TEXTURE_WRAP_T
	}
	var v int32
	switch value {
	case gpu.Nearest:
		v = gles2.NEAREST
	case gpu.ClampToEdge:
		v = gles2.CLAMP_TO_EDGE
	case gpu.Repeat:
		v = gles2.REPEAT
	default:
		v = gles2.LINEAR
	}
	gles2.TexParameteri(gles2.TEXTURE_2D, p, v)
}

// TexImage2D uploads tightly packed RGB8 rows.
func (Device) TexImage2D(width, height int, rgb []byte) {
	if len(rgb) == 0 {
		return
	}
	gles2.PixelStorei(gles2.UNPACK_ALIGNMENT, 1)
	gles2.TexImage2D(gles2.TEXTURE_2D, 0, gles2.RGB, int32(width), int32(height), 0,
		gles2.RGB, gles2.UNSIGNED_BYTE, gles2.Ptr(rgb))
}

func (Device) Viewport(x, y, width, height int) {
	gles2.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (Device) ClearColor(r, g, b, a float32) { gles2.ClearColor(r, g, b, a) }
func (Device) Clear()                        { gles2.Clear(gles2.COLOR_BUFFER_BIT) }

var _ gpu.Device = Device{}
