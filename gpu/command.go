package gpu

import "fmt"

// Primitive is the assembly mode of a draw call.
type Primitive uint8

const (
	Points Primitive = iota
	LineStrip
	LineLoop
	Lines
	TriangleStrip
	TriangleFan
	Triangles
)

var primitiveNames = [...]string{
	Points:        "points",
	LineStrip:     "line-strip",
	LineLoop:      "line-loop",
	Lines:         "lines",
	TriangleStrip: "triangle-strip",
	TriangleFan:   "triangle-fan",
	Triangles:     "triangles",
}

func (p Primitive) Valid() bool { return int(p) < len(primitiveNames) }

func (p Primitive) String() string {
	if !p.Valid() {
		return fmt.Sprintf("primitive(%d)", uint8(p))
	}
	return primitiveNames[p]
}

// Command is one draw call together with the bindings it needs. Commands
// are built once at scene setup and executed every frame.
type Command struct {
	attrs    []AttributeBinding
	uniforms []UniformBinding
	prim     Primitive
	count    int
}

// NewCommand validates and copies the bindings. count may not exceed the
// number of vertices any attribute buffer holds.
func NewCommand(attrs []AttributeBinding, uniforms []UniformBinding, prim Primitive, count int) (*Command, error) {
	if !prim.Valid() {
		return nil, fmt.Errorf("new command: %w: %d", ErrInvalidPrimitive, prim)
	}
	if count < 0 {
		return nil, fmt.Errorf("new command: %w: count %d", ErrVertexCount, count)
	}
	for i, a := range attrs {
		if a.components < 1 || a.components > 4 {
			return nil, fmt.Errorf("new command: attribute %d: %w", i, ErrInvalidComponents)
		}
		if count > a.vertices {
			return nil, fmt.Errorf("new command: attribute %d holds %d vertices, want %d: %w", i, a.vertices, count, ErrVertexCount)
		}
	}
	for i, u := range uniforms {
		if err := u.value.validate(); err != nil {
			return nil, fmt.Errorf("new command: uniform %d: %w", i, err)
		}
	}
	return &Command{
		attrs:    append([]AttributeBinding(nil), attrs...),
		uniforms: append([]UniformBinding(nil), uniforms...),
		prim:     prim,
		count:    count,
	}, nil
}

func (c *Command) Primitive() Primitive { return c.prim }
func (c *Command) Count() int           { return c.count }

// Attributes returns a copy of the attribute bindings in bind order.
func (c *Command) Attributes() []AttributeBinding {
	return append([]AttributeBinding(nil), c.attrs...)
}

// Uniforms returns a copy of the uniform bindings in bind order.
func (c *Command) Uniforms() []UniformBinding {
	return append([]UniformBinding(nil), c.uniforms...)
}

// Execute binds, draws and unbinds. The device shares one set of binding
// slots between all commands, so the unbind phase always runs: when Execute
// returns no attribute array of c is enabled and no array buffer is bound.
// A failed bind skips the draw.
func (c *Command) Execute(dev Device) error {
	err := c.bind(dev)
	if err == nil {
		dev.DrawArrays(c.prim, 0, int32(c.count))
	}
	c.unbind(dev)
	return err
}

func (c *Command) bind(dev Device) error {
	for _, a := range c.attrs {
		a.bind(dev)
	}
	for i, u := range c.uniforms {
		if err := u.bind(dev); err != nil {
			return fmt.Errorf("bind uniform %d (location %d): %w", i, u.location, err)
		}
	}
	return nil
}

func (c *Command) unbind(dev Device) {
	for _, a := range c.attrs {
		dev.DisableVertexAttribArray(a.location)
	}
	dev.BindBuffer(ArrayBuffer, 0)
}
