package soft

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"strings"

	"dash/gpu"
)

// MaxVertexAttribs is the number of vertex attribute slots.
const MaxVertexAttribs = 16

type shader struct {
	kind     gpu.ShaderKind
	src      string
	compiled bool
	info     shaderInfo
}

type attribSlot struct {
	buffer     uint32
	components int32
}

type uniformSlot struct {
	decl
	n      int
	values [4]float32
}

type program struct {
	shaders  []uint32
	linked   bool
	log      string
	attribs  []decl
	uniforms []uniformSlot

	// Resolved roles, -1 when absent.
	position, color, texCoord int32
	sampler, resolution       int32
}

type texture struct {
	w, h int
	rgb  []byte
}

// Device is a software gpu.Device drawing into a Target.
type Device struct {
	next uint32

	buffers  map[uint32][]float32
	shaders  map[uint32]*shader
	programs map[uint32]*program
	textures map[uint32]*texture

	arrayBuffer   uint32
	elementBuffer uint32
	current       uint32

	enabled  [MaxVertexAttribs]bool
	pointers [MaxVertexAttribs]attribSlot

	activeUnit int
	units      [gpu.MaxTextureUnits]uint32

	viewport image.Rectangle
	clear    color.RGBA
	target   Target
	bounds   image.Rectangle

	draws int
}

// New returns a device drawing into a new width x height RGBA image.
func New(width, height int) *Device {
	return NewTarget(NewImageTarget(width, height))
}

// NewTarget returns a device drawing into t with a viewport covering all
// of it.
func NewTarget(t Target) *Device {
	w, h := t.Size()
	return &Device{
		buffers:  map[uint32][]float32{},
		shaders:  map[uint32]*shader{},
		programs: map[uint32]*program{},
		textures: map[uint32]*texture{},
		viewport: image.Rect(0, 0, w, h),
		clear:    color.RGBA{A: 0xFF},
		target:   t,
		bounds:   image.Rect(0, 0, w, h),
	}
}

// Image returns the color buffer when the device draws into an RGBA image,
// or nil.
func (d *Device) Image() *image.RGBA {
	if t, ok := d.target.(ImageTarget); ok {
		return t.RGBA
	}
	return nil
}

func (d *Device) Target() Target { return d.target }

// Draws returns the number of draw calls that reached the rasterizer.
func (d *Device) Draws() int { return d.draws }

func (d *Device) handle() uint32 {
	d.next++
	return d.next
}

func (d *Device) GenBuffer() uint32 {
	h := d.handle()
	d.buffers[h] = nil
	return h
}

func (d *Device) BindBuffer(target gpu.BufferTarget, buffer uint32) {
	switch target {
	case gpu.ArrayBuffer:
		d.arrayBuffer = buffer
	case gpu.ElementArrayBuffer:
		d.elementBuffer = buffer
	}
}

func (d *Device) BufferData(target gpu.BufferTarget, data []float32, usage gpu.BufferUsage) {
	h := d.arrayBuffer
	if target == gpu.ElementArrayBuffer {
		h = d.elementBuffer
	}
	if _, ok := d.buffers[h]; !ok || h == 0 {
		return
	}
	d.buffers[h] = append([]float32(nil), data...)
}

func (d *Device) CreateShader(kind gpu.ShaderKind) uint32 {
	h := d.handle()
	d.shaders[h] = &shader{kind: kind}
	return h
}

func (d *Device) ShaderSource(h uint32, src string) {
	if s := d.shaders[h]; s != nil {
		s.src = src
	}
}

func (d *Device) CompileShader(h uint32) {
	s := d.shaders[h]
	if s == nil {
		return
	}
	s.info = compileGLSL(s.kind, s.src)
	s.compiled = s.info.ok()
}

func (d *Device) ShaderStatus(h uint32) (bool, string) {
	s := d.shaders[h]
	if s == nil {
		return false, "invalid shader"
	}
	return s.compiled, s.info.log
}

func (d *Device) DeleteShader(h uint32) { delete(d.shaders, h) }

func (d *Device) CreateProgram() uint32 {
	h := d.handle()
	d.programs[h] = &program{}
	return h
}

func (d *Device) AttachShader(prog, sh uint32) {
	if p := d.programs[prog]; p != nil {
		p.shaders = append(p.shaders, sh)
	}
}

func (d *Device) DeleteProgram(h uint32) {
	delete(d.programs, h)
	if d.current == h {
		d.current = 0
	}
}

func (d *Device) LinkProgram(h uint32) {
	p := d.programs[h]
	if p == nil {
		return
	}
	p.linked, p.log = false, ""
	p.attribs, p.uniforms = nil, nil

	var vs, fs *shader
	for _, sh := range p.shaders {
		s := d.shaders[sh]
		switch {
		case s == nil:
			p.log = "invalid shader attached"
			return
		case !s.compiled:
			p.log = fmt.Sprintf("%s shader not compiled", s.kind)
			return
		case s.kind == gpu.VertexShader && vs == nil:
			vs = s
		case s.kind == gpu.FragmentShader && fs == nil:
			fs = s
		default:
			p.log = fmt.Sprintf("more than one %s shader attached", s.kind)
			return
		}
	}
	if vs == nil || fs == nil {
		p.log = "program needs a vertex and a fragment shader"
		return
	}

	var errs []string
	varyings := map[string]string{}
	uniforms := map[string]int{}
	for _, dd := range vs.info.decls {
		switch dd.qual {
		case qualAttribute:
			p.attribs = append(p.attribs, dd)
		case qualVarying:
			varyings[dd.name] = dd.typ
		case qualUniform:
			uniforms[dd.name] = len(p.uniforms)
			p.uniforms = append(p.uniforms, uniformSlot{decl: dd})
		}
	}
	for _, dd := range fs.info.decls {
		switch dd.qual {
		case qualVarying:
			typ, ok := varyings[dd.name]
			if !ok {
				errs = append(errs, fmt.Sprintf("varying '%s' not written by the vertex shader", dd.name))
			} else if typ != dd.typ {
				errs = append(errs, fmt.Sprintf("varying '%s' type mismatch: %s / %s", dd.name, typ, dd.typ))
			}
		case qualUniform:
			if i, ok := uniforms[dd.name]; ok {
				if p.uniforms[i].typ != dd.typ {
					errs = append(errs, fmt.Sprintf("uniform '%s' type mismatch: %s / %s", dd.name, p.uniforms[i].typ, dd.typ))
				}
				continue
			}
			uniforms[dd.name] = len(p.uniforms)
			p.uniforms = append(p.uniforms, uniformSlot{decl: dd})
		}
	}
	if len(p.attribs) > MaxVertexAttribs {
		errs = append(errs, fmt.Sprintf("too many attributes: %d", len(p.attribs)))
	}
	if len(errs) > 0 {
		p.log = strings.Join(errs, "\n")
		return
	}

	p.resolveRoles()
	p.linked = true
	gpu.Logger().Debug("soft: program linked",
		slog.Uint64("program", uint64(h)),
		slog.Int("attributes", len(p.attribs)),
		slog.Int("uniforms", len(p.uniforms)))
}

func (p *program) resolveRoles() {
	p.position, p.color, p.texCoord = gpu.NotFound, gpu.NotFound, gpu.NotFound
	p.sampler, p.resolution = gpu.NotFound, gpu.NotFound
	for i, a := range p.attribs {
		n := strings.ToLower(a.name)
		switch {
		case p.color < 0 && (strings.Contains(n, "color") || strings.Contains(n, "colour")):
			p.color = int32(i)
		case p.texCoord < 0 && (strings.Contains(n, "texcoord") || strings.Contains(n, "uv")):
			p.texCoord = int32(i)
		case p.position < 0:
			p.position = int32(i)
		}
	}
	if p.position < 0 && len(p.attribs) > 0 {
		p.position = 0
	}
	for i, u := range p.uniforms {
		switch {
		case p.sampler < 0 && u.typ == "sampler2D":
			p.sampler = int32(i)
		case u.name == "u_resolution" && u.typ == "vec2":
			p.resolution = int32(i)
		}
	}
}

func (d *Device) ProgramStatus(h uint32) (bool, string) {
	p := d.programs[h]
	if p == nil {
		return false, "invalid program"
	}
	return p.linked, p.log
}

func (d *Device) UseProgram(h uint32) { d.current = h }

func (d *Device) AttribLocation(prog uint32, name string) int32 {
	p := d.programs[prog]
	if p == nil || !p.linked {
		return gpu.NotFound
	}
	for i, a := range p.attribs {
		if a.name == name {
			return int32(i)
		}
	}
	return gpu.NotFound
}

func (d *Device) UniformLocation(prog uint32, name string) int32 {
	p := d.programs[prog]
	if p == nil || !p.linked {
		return gpu.NotFound
	}
	for i, u := range p.uniforms {
		if u.name == name {
			return int32(i)
		}
	}
	return gpu.NotFound
}

func (d *Device) EnableVertexAttribArray(loc uint32) {
	if loc < MaxVertexAttribs {
		d.enabled[loc] = true
	}
}

func (d *Device) DisableVertexAttribArray(loc uint32) {
	if loc < MaxVertexAttribs {
		d.enabled[loc] = false
	}
}

func (d *Device) VertexAttribPointer(loc uint32, components int32) {
	if loc < MaxVertexAttribs {
		d.pointers[loc] = attribSlot{buffer: d.arrayBuffer, components: components}
	}
}

func (d *Device) setUniform(loc int32, v ...float32) {
	p := d.programs[d.current]
	if p == nil || loc < 0 || int(loc) >= len(p.uniforms) {
		return
	}
	u := &p.uniforms[loc]
	u.n = copy(u.values[:], v)
}

func (d *Device) Uniform1i(l int32, v0 int32)     { d.setUniform(l, float32(v0)) }
func (d *Device) Uniform2i(l int32, v0, v1 int32) { d.setUniform(l, float32(v0), float32(v1)) }
func (d *Device) Uniform3i(l int32, v0, v1, v2 int32) {
	d.setUniform(l, float32(v0), float32(v1), float32(v2))
}
func (d *Device) Uniform4i(l int32, v0, v1, v2, v3 int32) {
	d.setUniform(l, float32(v0), float32(v1), float32(v2), float32(v3))
}

func (d *Device) Uniform1f(l int32, v0 float32)             { d.setUniform(l, v0) }
func (d *Device) Uniform2f(l int32, v0, v1 float32)         { d.setUniform(l, v0, v1) }
func (d *Device) Uniform3f(l int32, v0, v1, v2 float32)     { d.setUniform(l, v0, v1, v2) }
func (d *Device) Uniform4f(l int32, v0, v1, v2, v3 float32) { d.setUniform(l, v0, v1, v2, v3) }

func (d *Device) GenTexture() uint32 {
	h := d.handle()
	d.textures[h] = &texture{}
	return h
}

func (d *Device) ActiveTexture(unit int) {
	if unit >= 0 && unit < gpu.MaxTextureUnits {
		d.activeUnit = unit
	}
}

func (d *Device) BindTexture(h uint32) { d.units[d.activeUnit] = h }

// TexParameter is accepted and ignored; sampling is always bilinear with
// clamp-to-edge wrapping.
func (d *Device) TexParameter(gpu.TexParam, gpu.TexValue) {}

func (d *Device) TexImage2D(width, height int, rgb []byte) {
	t := d.textures[d.units[d.activeUnit]]
	if t == nil || width <= 0 || height <= 0 || len(rgb) < width*height*3 {
		return
	}
	t.w, t.h = width, height
	t.rgb = append(t.rgb[:0], rgb[:width*height*3]...)
}

func (d *Device) Viewport(x, y, width, height int) {
	d.viewport = image.Rect(x, y, x+width, y+height)
}

func (d *Device) ClearColor(r, g, b, a float32) {
	d.clear = color.RGBA{R: unit8(r), G: unit8(g), B: unit8(b), A: unit8(a)}
}

// Clear fills the part of the color buffer covered by the viewport.
func (d *Device) Clear() {
	if r := d.screenRect(); !r.Empty() {
		d.target.Fill(r, d.clear)
	}
}

// screenRect is the viewport in image coordinates, clipped to the buffer.
// The viewport origin is bottom-left; the image origin is top-left.
func (d *Device) screenRect() image.Rectangle {
	h := d.bounds.Dy()
	v := d.viewport
	return image.Rect(v.Min.X, h-v.Max.Y, v.Max.X, h-v.Min.Y).Intersect(d.bounds)
}

func unit8(v float32) uint8 {
	return uint8(clampF32(v, 0, 1)*255 + 0.5)
}

var _ gpu.Device = (*Device)(nil)
