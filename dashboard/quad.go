// Package dashboard builds the dashboard scene: the UI stage with its
// colored, textured quads and an optional speed label, and the world
// stage reserved for 3D content.
package dashboard

import "dash/gpu"

// Geometry is a quad uploaded as three static array buffers.
type Geometry struct {
	Vertices  *gpu.Buffer
	Colors    *gpu.Buffer
	TexCoords *gpu.Buffer
}

// CreateUIQuad uploads a pixel-space rectangle at pos with the given size
// and a flat color. Vertices run top-left, bottom-left, bottom-right,
// top-right for a triangle fan; texture coordinates put (0,0) at the top
// left of the image.
func CreateUIQuad(dev gpu.Device, pos, size [2]float32, rgb [3]float32) Geometry {
	x, y := pos[0], pos[1]
	w, h := size[0], size[1]
	vertices := []float32{
		x, y,
		x, y + h,
		x + w, y + h,
		x + w, y,
	}
	colors := make([]float32, 0, 12)
	for i := 0; i < 4; i++ {
		colors = append(colors, rgb[:]...)
	}
	texCoords := []float32{
		0, 0,
		0, 1,
		1, 1,
		1, 0,
	}
	return Geometry{
		Vertices:  gpu.NewBuffer(dev, vertices, gpu.ArrayBuffer, gpu.StaticDraw),
		Colors:    gpu.NewBuffer(dev, colors, gpu.ArrayBuffer, gpu.StaticDraw),
		TexCoords: gpu.NewBuffer(dev, texCoords, gpu.ArrayBuffer, gpu.StaticDraw),
	}
}

// Command binds the quad to stage: a_vertex, a_color and a_texCoord from
// its buffers and u_tex0 to the unit of tex. Extra uniforms are appended
// in order.
func (g Geometry) Command(stage *gpu.Stage, tex gpu.Texture, uniforms ...gpu.UniformBinding) (*gpu.Command, error) {
	var attrs []gpu.AttributeBinding
	for _, a := range []struct {
		name string
		buf  *gpu.Buffer
		n    int
	}{
		{"a_vertex", g.Vertices, 2},
		{"a_color", g.Colors, 3},
		{"a_texCoord", g.TexCoords, 2},
	} {
		b, err := stage.BindAttribute(a.name, a.buf, a.n)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, b)
	}

	sampler, err := tex.Bind(stage, "u_tex0")
	if err != nil {
		return nil, err
	}
	unis := append([]gpu.UniformBinding{sampler}, uniforms...)
	return gpu.NewCommand(attrs, unis, gpu.TriangleFan, 4)
}
