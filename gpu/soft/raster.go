package soft

import (
	"image"
	"image/color"
	"math"

	"dash/gpu"
)

// vertex is a vertex after viewport transform, in image coordinates.
type vertex struct {
	x, y float32
	rgba [4]float32
	uv   [2]float32
}

func (d *Device) DrawArrays(mode gpu.Primitive, first, count int32) {
	p := d.programs[d.current]
	if p == nil || !p.linked || p.position < 0 || first < 0 || count <= 0 {
		return
	}
	if !d.enabled[p.position] {
		return
	}

	verts := make([]vertex, count)
	for i := range verts {
		verts[i] = d.fetch(p, int(first)+i)
	}
	tex := d.boundTexture(p)
	clip := d.screenRect()
	d.draws++

	switch mode {
	case gpu.Triangles:
		for i := 0; i+2 < len(verts); i += 3 {
			d.fillTriangle(clip, tex, verts[i], verts[i+1], verts[i+2])
		}
	case gpu.TriangleStrip:
		for i := 0; i+2 < len(verts); i++ {
			d.fillTriangle(clip, tex, verts[i], verts[i+1], verts[i+2])
		}
	case gpu.TriangleFan:
		for i := 1; i+1 < len(verts); i++ {
			d.fillTriangle(clip, tex, verts[0], verts[i], verts[i+1])
		}
	case gpu.Lines:
		for i := 0; i+1 < len(verts); i += 2 {
			d.drawLine(clip, tex, verts[i], verts[i+1])
		}
	case gpu.LineStrip, gpu.LineLoop:
		for i := 0; i+1 < len(verts); i++ {
			d.drawLine(clip, tex, verts[i], verts[i+1])
		}
		if mode == gpu.LineLoop && len(verts) > 2 {
			d.drawLine(clip, tex, verts[len(verts)-1], verts[0])
		}
	case gpu.Points:
		for _, v := range verts {
			d.plot(clip, tex, pixel(v.x), pixel(v.y), v.rgba, v.uv)
		}
	}
}

// attrib reads up to four components of vertex i from the array bound to
// location loc. Missing components default to (0, 0, 0, 1).
func (d *Device) attrib(loc int32, i int) [4]float32 {
	out := [4]float32{0, 0, 0, 1}
	if loc < 0 || !d.enabled[loc] {
		return out
	}
	slot := d.pointers[loc]
	data := d.buffers[slot.buffer]
	n := int(slot.components)
	if n < 1 || n > 4 {
		return out
	}
	base := i * n
	for c := 0; c < n && base+c < len(data); c++ {
		out[c] = data[base+c]
	}
	return out
}

func (d *Device) fetch(p *program, i int) vertex {
	pos := d.attrib(p.position, i)

	var nx, ny float32
	if res, ok := p.resolutionValue(); ok {
		nx = pos[0]/res[0]*2 - 1
		ny = 1 - pos[1]/res[1]*2
	} else {
		w := pos[3]
		if w == 0 {
			w = 1
		}
		nx, ny = pos[0]/w, pos[1]/w
	}

	h := float32(d.bounds.Dy())
	v := d.viewport
	vx := float32(v.Min.X) + (nx+1)*0.5*float32(v.Dx())
	vy := float32(v.Min.Y) + (ny+1)*0.5*float32(v.Dy())

	out := vertex{x: vx, y: h - vy, rgba: [4]float32{1, 1, 1, 1}}
	if p.color >= 0 && d.enabled[p.color] {
		out.rgba = d.attrib(p.color, i)
		if d.pointers[p.color].components < 4 {
			out.rgba[3] = 1
		}
	}
	if p.texCoord >= 0 {
		uv := d.attrib(p.texCoord, i)
		out.uv = [2]float32{uv[0], uv[1]}
	}
	return out
}

func (p *program) resolutionValue() ([2]float32, bool) {
	if p.resolution < 0 {
		return [2]float32{}, false
	}
	u := p.uniforms[p.resolution]
	if u.n < 2 || u.values[0] == 0 || u.values[1] == 0 {
		return [2]float32{}, false
	}
	return [2]float32{u.values[0], u.values[1]}, true
}

// boundTexture returns the texture sampled by p, or nil when p does not
// sample. An incomplete texture samples as opaque black.
func (d *Device) boundTexture(p *program) *texture {
	if p.sampler < 0 || p.texCoord < 0 {
		return nil
	}
	u := p.uniforms[p.sampler]
	unit := int(u.values[0])
	if unit < 0 || unit >= gpu.MaxTextureUnits {
		return &texture{}
	}
	if t := d.textures[d.units[unit]]; t != nil {
		return t
	}
	return &texture{}
}

func (d *Device) plot(clip image.Rectangle, tex *texture, x, y int, rgba [4]float32, uv [2]float32) {
	if !(image.Point{x, y}).In(clip) {
		return
	}
	if tex != nil {
		t := tex.sample(uv[0], uv[1])
		rgba[0] *= t[0]
		rgba[1] *= t[1]
		rgba[2] *= t[2]
	}
	d.target.SetPixel(x, y, color.RGBA{R: unit8(rgba[0]), G: unit8(rgba[1]), B: unit8(rgba[2]), A: unit8(rgba[3])})
}

// fillTriangle rasterizes a triangle sampling at pixel centers. Both
// windings are filled.
func (d *Device) fillTriangle(clip image.Rectangle, tex *texture, v0, v1, v2 vertex) {
	area := edgeFn(v0.x, v0.y, v1.x, v1.y, v2.x, v2.y)
	if area == 0 {
		return
	}
	if area < 0 {
		v1, v2 = v2, v1
		area = -area
	}
	invArea := 1 / area

	minX := int(math.Floor(float64(min(v0.x, v1.x, v2.x))))
	maxX := int(math.Ceil(float64(max(v0.x, v1.x, v2.x))))
	minY := int(math.Floor(float64(min(v0.y, v1.y, v2.y))))
	maxY := int(math.Ceil(float64(max(v0.y, v1.y, v2.y))))
	r := image.Rect(minX, minY, maxX, maxY).Intersect(clip)

	for y := r.Min.Y; y < r.Max.Y; y++ {
		py := float32(y) + 0.5
		for x := r.Min.X; x < r.Max.X; x++ {
			px := float32(x) + 0.5
			w0 := edgeFn(v1.x, v1.y, v2.x, v2.y, px, py)
			w1 := edgeFn(v2.x, v2.y, v0.x, v0.y, px, py)
			w2 := edgeFn(v0.x, v0.y, v1.x, v1.y, px, py)
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			// Shared edges: keep only the top-left side.
			if (w0 == 0 && !topLeft(v1, v2)) || (w1 == 0 && !topLeft(v2, v0)) || (w2 == 0 && !topLeft(v0, v1)) {
				continue
			}
			a0, a1, a2 := w0*invArea, w1*invArea, w2*invArea
			var rgba [4]float32
			for c := range rgba {
				rgba[c] = a0*v0.rgba[c] + a1*v1.rgba[c] + a2*v2.rgba[c]
			}
			uv := [2]float32{
				a0*v0.uv[0] + a1*v1.uv[0] + a2*v2.uv[0],
				a0*v0.uv[1] + a1*v1.uv[1] + a2*v2.uv[1],
			}
			d.plot(clip, tex, x, y, rgba, uv)
		}
	}
}

// drawLine draws a Bresenham line interpolating color and texture
// coordinates along its length.
func (d *Device) drawLine(clip image.Rectangle, tex *texture, a, b vertex) {
	x0, y0 := pixel(a.x), pixel(a.y)
	x1, y1 := pixel(b.x), pixel(b.y)
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	steps := dx
	if -dy > steps {
		steps = -dy
	}
	err := dx + dy
	for i := 0; ; i++ {
		t := float32(0)
		if steps > 0 {
			t = float32(i) / float32(steps)
		}
		var rgba [4]float32
		for c := range rgba {
			rgba[c] = a.rgba[c] + (b.rgba[c]-a.rgba[c])*t
		}
		uv := [2]float32{a.uv[0] + (b.uv[0]-a.uv[0])*t, a.uv[1] + (b.uv[1]-a.uv[1])*t}
		d.plot(clip, tex, x0, y0, rgba, uv)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// edgeFn is positive when (x, y) is on the right of a->b in image
// coordinates (y down).
func edgeFn(ax, ay, bx, by, x, y float32) float32 {
	return (x-ax)*(by-ay) - (y-ay)*(bx-ax)
}

// topLeft reports whether edge a->b of a positively wound triangle is a top
// or left edge.
func topLeft(a, b vertex) bool {
	ex, ey := b.x-a.x, b.y-a.y
	return (ey == 0 && ex < 0) || ey > 0
}

// pixel rounds a window coordinate to the nearest pixel index.
func pixel(v float32) int { return int(math.Floor(float64(v) + 0.5)) }

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clampF32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
