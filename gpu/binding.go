package gpu

// AttributeBinding ties a program attribute location to a buffer layout.
// It is produced by Stage.BindAttribute and never touches device state on
// its own.
type AttributeBinding struct {
	location   uint32
	buffer     uint32
	components int32
	vertices   int
}

func (b AttributeBinding) Location() uint32  { return b.location }
func (b AttributeBinding) Buffer() uint32    { return b.buffer }
func (b AttributeBinding) Components() int32 { return b.components }

// Vertices is the number of whole vertices the source buffer holds for
// this layout.
func (b AttributeBinding) Vertices() int { return b.vertices }

func (b AttributeBinding) bind(dev Device) {
	dev.EnableVertexAttribArray(b.location)
	dev.BindBuffer(ArrayBuffer, b.buffer)
	dev.VertexAttribPointer(b.location, b.components)
}

// UniformType tags the payload of a UniformValue.
type UniformType uint8

const (
	UniformInt UniformType = iota
	UniformFloat
)

func (t UniformType) String() string {
	if t == UniformFloat {
		return "float"
	}
	return "int"
}

// UniformValue is an integer or float vector of 1 to 4 elements.
type UniformValue struct {
	typ    UniformType
	ints   []int32
	floats []float32
}

// Ints returns an integer-typed value holding a copy of v.
func Ints(v ...int32) UniformValue {
	return UniformValue{typ: UniformInt, ints: append([]int32(nil), v...)}
}

// Floats returns a float-typed value holding a copy of v.
func Floats(v ...float32) UniformValue {
	return UniformValue{typ: UniformFloat, floats: append([]float32(nil), v...)}
}

func (v UniformValue) Type() UniformType { return v.typ }

// Len returns the number of vector elements.
func (v UniformValue) Len() int {
	if v.typ == UniformFloat {
		return len(v.floats)
	}
	return len(v.ints)
}

// IntSlice returns a copy of an integer payload, or nil.
func (v UniformValue) IntSlice() []int32 { return append([]int32(nil), v.ints...) }

// FloatSlice returns a copy of a float payload, or nil.
func (v UniformValue) FloatSlice() []float32 { return append([]float32(nil), v.floats...) }

func (v UniformValue) validate() error {
	if n := v.Len(); n < 1 || n > 4 {
		return ErrInvalidArity
	}
	return nil
}

// UniformBinding ties a program uniform location to a fixed value.
type UniformBinding struct {
	location int32
	value    UniformValue
}

func (b UniformBinding) Location() int32     { return b.location }
func (b UniformBinding) Value() UniformValue { return b.value }

func (b UniformBinding) bind(dev Device) error {
	if b.value.typ == UniformFloat {
		d := b.value.floats
		switch len(d) {
		case 1:
			dev.Uniform1f(b.location, d[0])
		case 2:
			dev.Uniform2f(b.location, d[0], d[1])
		case 3:
			dev.Uniform3f(b.location, d[0], d[1], d[2])
		case 4:
			dev.Uniform4f(b.location, d[0], d[1], d[2], d[3])
		default:
			return ErrInvalidArity
		}
		return nil
	}

	d := b.value.ints
	switch len(d) {
	case 1:
		dev.Uniform1i(b.location, d[0])
	case 2:
		dev.Uniform2i(b.location, d[0], d[1])
	case 3:
		dev.Uniform3i(b.location, d[0], d[1], d[2])
	case 4:
		dev.Uniform4i(b.location, d[0], d[1], d[2], d[3])
	default:
		return ErrInvalidArity
	}
	return nil
}
