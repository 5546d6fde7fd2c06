// Package gputest provides a recording gpu.Device for tests.
package gputest

import (
	"fmt"
	"sort"
	"strings"

	"dash/gpu"
)

// Call is one recorded device call.
type Call struct {
	Op   string
	Args []any
}

func (c Call) String() string {
	if len(c.Args) == 0 {
		return c.Op
	}
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = fmt.Sprint(a)
	}
	return c.Op + "(" + strings.Join(parts, ", ") + ")"
}

// Recorder is a gpu.Device that records every call and tracks the binding
// state a real driver would hold. Attribute and uniform names resolve
// through Attribs and Uniforms; unknown names resolve to gpu.NotFound.
type Recorder struct {
	Calls []Call

	Attribs  map[string]int32
	Uniforms map[string]int32

	// FailCompile maps a shader kind to the info log returned for it.
	FailCompile map[gpu.ShaderKind]string
	// FailLink, when non-empty, is the info log of every link.
	FailLink string

	ArrayBuffer   uint32
	Program       uint32
	TextureUnit   int
	Textures      map[int]uint32
	Enabled       map[uint32]bool
	Width, Height int

	next    uint32
	shaders map[uint32]gpu.ShaderKind
	buffers map[uint32][]float32
}

// NewRecorder returns a recorder resolving the given attribute and uniform
// locations.
func NewRecorder(attribs, uniforms map[string]int32) *Recorder {
	if attribs == nil {
		attribs = map[string]int32{}
	}
	if uniforms == nil {
		uniforms = map[string]int32{}
	}
	return &Recorder{
		Attribs:  attribs,
		Uniforms: uniforms,
		Textures: map[int]uint32{},
		Enabled:  map[uint32]bool{},
		shaders:  map[uint32]gpu.ShaderKind{},
		buffers:  map[uint32][]float32{},
	}
}

func (r *Recorder) record(op string, args ...any) {
	r.Calls = append(r.Calls, Call{Op: op, Args: args})
}

func (r *Recorder) handle() uint32 {
	r.next++
	return r.next
}

// Reset drops the recorded calls but keeps the tracked state.
func (r *Recorder) Reset() { r.Calls = nil }

// Ops returns the op names of the recorded calls in order.
func (r *Recorder) Ops() []string {
	out := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		out[i] = c.Op
	}
	return out
}

// Count returns how many calls of op were recorded.
func (r *Recorder) Count(op string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// EnabledArrays returns the enabled attribute locations in ascending order.
func (r *Recorder) EnabledArrays() []uint32 {
	var out []uint32
	for loc, on := range r.Enabled {
		if on {
			out = append(out, loc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// BufferContents returns the floats uploaded to buffer h.
func (r *Recorder) BufferContents(h uint32) []float32 { return r.buffers[h] }

func (r *Recorder) GenBuffer() uint32 {
	h := r.handle()
	r.record("GenBuffer")
	return h
}

func (r *Recorder) BindBuffer(target gpu.BufferTarget, buffer uint32) {
	if target == gpu.ArrayBuffer {
		r.ArrayBuffer = buffer
	}
	r.record("BindBuffer", target, buffer)
}

func (r *Recorder) BufferData(target gpu.BufferTarget, data []float32, usage gpu.BufferUsage) {
	if target == gpu.ArrayBuffer {
		r.buffers[r.ArrayBuffer] = append([]float32(nil), data...)
	}
	r.record("BufferData", target, len(data), usage)
}

func (r *Recorder) CreateShader(kind gpu.ShaderKind) uint32 {
	h := r.handle()
	r.shaders[h] = kind
	r.record("CreateShader", kind)
	return h
}

func (r *Recorder) ShaderSource(shader uint32, src string) { r.record("ShaderSource", shader) }
func (r *Recorder) CompileShader(shader uint32)            { r.record("CompileShader", shader) }

func (r *Recorder) ShaderStatus(shader uint32) (bool, string) {
	if log, ok := r.FailCompile[r.shaders[shader]]; ok {
		return false, log
	}
	return true, ""
}

func (r *Recorder) DeleteShader(shader uint32) {
	delete(r.shaders, shader)
	r.record("DeleteShader", shader)
}

func (r *Recorder) CreateProgram() uint32 {
	h := r.handle()
	r.record("CreateProgram")
	return h
}

func (r *Recorder) AttachShader(program, shader uint32) { r.record("AttachShader", program, shader) }
func (r *Recorder) LinkProgram(program uint32)          { r.record("LinkProgram", program) }

func (r *Recorder) ProgramStatus(program uint32) (bool, string) {
	if r.FailLink != "" {
		return false, r.FailLink
	}
	return true, ""
}

func (r *Recorder) DeleteProgram(program uint32) { r.record("DeleteProgram", program) }

func (r *Recorder) UseProgram(program uint32) {
	r.Program = program
	r.record("UseProgram", program)
}

func (r *Recorder) AttribLocation(program uint32, name string) int32 {
	if loc, ok := r.Attribs[name]; ok {
		return loc
	}
	return gpu.NotFound
}

func (r *Recorder) UniformLocation(program uint32, name string) int32 {
	if loc, ok := r.Uniforms[name]; ok {
		return loc
	}
	return gpu.NotFound
}

func (r *Recorder) EnableVertexAttribArray(location uint32) {
	r.Enabled[location] = true
	r.record("EnableVertexAttribArray", location)
}

func (r *Recorder) DisableVertexAttribArray(location uint32) {
	delete(r.Enabled, location)
	r.record("DisableVertexAttribArray", location)
}

func (r *Recorder) VertexAttribPointer(location uint32, components int32) {
	r.record("VertexAttribPointer", location, components, r.ArrayBuffer)
}

func (r *Recorder) Uniform1i(l int32, v0 int32)         { r.record("Uniform1i", l, v0) }
func (r *Recorder) Uniform2i(l int32, v0, v1 int32)     { r.record("Uniform2i", l, v0, v1) }
func (r *Recorder) Uniform3i(l int32, v0, v1, v2 int32) { r.record("Uniform3i", l, v0, v1, v2) }
func (r *Recorder) Uniform4i(l int32, v0, v1, v2, v3 int32) {
	r.record("Uniform4i", l, v0, v1, v2, v3)
}

func (r *Recorder) Uniform1f(l int32, v0 float32)         { r.record("Uniform1f", l, v0) }
func (r *Recorder) Uniform2f(l int32, v0, v1 float32)     { r.record("Uniform2f", l, v0, v1) }
func (r *Recorder) Uniform3f(l int32, v0, v1, v2 float32) { r.record("Uniform3f", l, v0, v1, v2) }
func (r *Recorder) Uniform4f(l int32, v0, v1, v2, v3 float32) {
	r.record("Uniform4f", l, v0, v1, v2, v3)
}

func (r *Recorder) DrawArrays(mode gpu.Primitive, first, count int32) {
	r.record("DrawArrays", mode, first, count)
}

func (r *Recorder) GenTexture() uint32 {
	h := r.handle()
	r.record("GenTexture")
	return h
}

func (r *Recorder) ActiveTexture(unit int) {
	r.TextureUnit = unit
	r.record("ActiveTexture", unit)
}

func (r *Recorder) BindTexture(texture uint32) {
	r.Textures[r.TextureUnit] = texture
	r.record("BindTexture", texture)
}

func (r *Recorder) TexParameter(param gpu.TexParam, value gpu.TexValue) {
	r.record("TexParameter", param, value)
}

func (r *Recorder) TexImage2D(width, height int, rgb []byte) {
	r.record("TexImage2D", width, height, len(rgb))
}

func (r *Recorder) Viewport(x, y, width, height int) {
	r.Width, r.Height = width, height
	r.record("Viewport", x, y, width, height)
}

func (r *Recorder) ClearColor(cr, cg, cb, ca float32) { r.record("ClearColor", cr, cg, cb, ca) }
func (r *Recorder) Clear()                            { r.record("Clear") }

var _ gpu.Device = (*Recorder)(nil)
