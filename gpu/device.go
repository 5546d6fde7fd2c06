package gpu

// BufferTarget selects the binding point a Buffer is created for.
type BufferTarget uint8

const (
	ArrayBuffer BufferTarget = iota
	ElementArrayBuffer
)

func (t BufferTarget) String() string {
	switch t {
	case ArrayBuffer:
		return "array"
	case ElementArrayBuffer:
		return "element-array"
	default:
		return "unknown"
	}
}

// BufferUsage is the upload frequency hint passed to the device.
type BufferUsage uint8

const (
	StreamDraw BufferUsage = iota
	StaticDraw
	DynamicDraw
)

func (u BufferUsage) String() string {
	switch u {
	case StreamDraw:
		return "stream"
	case StaticDraw:
		return "static"
	case DynamicDraw:
		return "dynamic"
	default:
		return "unknown"
	}
}

// ShaderKind identifies the pipeline stage a shader object compiles for.
type ShaderKind uint8

const (
	VertexShader ShaderKind = iota
	FragmentShader
)

func (k ShaderKind) String() string {
	switch k {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	default:
		return "unknown"
	}
}

// TexParam names a 2D texture sampling parameter.
type TexParam uint8

const (
	TexMinFilter TexParam = iota
	TexMagFilter
	TexWrapS
	TexWrapT
)

// TexValue is a value for a TexParam.
type TexValue uint8

const (
	Linear TexValue = iota
	Nearest
	ClampToEdge
	Repeat
)

// MaxTextureUnits is the number of sampler units a texture may be bound to.
const MaxTextureUnits = 8

// NotFound is the location returned by reflection for unknown names.
const NotFound int32 = -1

// Device is the explicit device state context every core operation runs
// against. It mirrors the OpenGL ES 2.0 subset the renderer needs: one
// active array buffer, one active program, one active texture unit and a
// set of enabled vertex attribute arrays.
//
// Implementations are single-threaded. Every call blocks until the device
// has accepted it.
type Device interface {
	GenBuffer() uint32
	BindBuffer(target BufferTarget, buffer uint32)
	BufferData(target BufferTarget, data []float32, usage BufferUsage)

	CreateShader(kind ShaderKind) uint32
	ShaderSource(shader uint32, src string)
	CompileShader(shader uint32)
	// ShaderStatus reports the compile status and info log of a shader.
	ShaderStatus(shader uint32) (ok bool, log string)
	DeleteShader(shader uint32)
	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	// ProgramStatus reports the link status and info log of a program.
	ProgramStatus(program uint32) (ok bool, log string)
	DeleteProgram(program uint32)
	UseProgram(program uint32)

	// AttribLocation returns NotFound when the program has no such attribute.
	AttribLocation(program uint32, name string) int32
	// UniformLocation returns NotFound when the program has no such uniform.
	UniformLocation(program uint32, name string) int32

	EnableVertexAttribArray(location uint32)
	DisableVertexAttribArray(location uint32)
	// VertexAttribPointer describes tightly packed float components at
	// offset zero of the currently bound array buffer.
	VertexAttribPointer(location uint32, components int32)

	Uniform1i(location int32, v0 int32)
	Uniform2i(location int32, v0, v1 int32)
	Uniform3i(location int32, v0, v1, v2 int32)
	Uniform4i(location int32, v0, v1, v2, v3 int32)
	Uniform1f(location int32, v0 float32)
	Uniform2f(location int32, v0, v1 float32)
	Uniform3f(location int32, v0, v1, v2 float32)
	Uniform4f(location int32, v0, v1, v2, v3 float32)

	DrawArrays(mode Primitive, first, count int32)

	GenTexture() uint32
	ActiveTexture(unit int)
	BindTexture(texture uint32)
	TexParameter(param TexParam, value TexValue)
	// TexImage2D uploads 8-bit RGB pixel rows to the bound 2D texture.
	TexImage2D(width, height int, rgb []byte)

	Viewport(x, y, width, height int)
	ClearColor(r, g, b, a float32)
	Clear()
}
