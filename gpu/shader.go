package gpu

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"
)

// Stage is a linked program built from a vertex and a fragment shader.
// It is the factory for the attribute and uniform bindings that reference it.
type Stage struct {
	dev     Device
	name    string
	program uint32
	vert    uint32
	frag    uint32
}

// LoadStage loads "<path>.vert" and "<path>.frag", compiles and links them
// and activates the resulting program. Both files are checked before the
// device is touched; a missing file yields ErrResourceNotFound.
func LoadStage(dev Device, path string) (*Stage, error) {
	return loadStage(dev, path, os.Stat, os.ReadFile)
}

// LoadStageFS is LoadStage reading from fsys.
func LoadStageFS(dev Device, fsys fs.FS, name string) (*Stage, error) {
	return loadStage(dev, name,
		func(p string) (fs.FileInfo, error) { return fs.Stat(fsys, p) },
		func(p string) ([]byte, error) { return fs.ReadFile(fsys, p) })
}

func loadStage(dev Device, path string, stat func(string) (fs.FileInfo, error), read func(string) ([]byte, error)) (*Stage, error) {
	start := time.Now()

	vertPath := path + ".vert"
	fragPath := path + ".frag"
	for _, p := range []string{vertPath, fragPath} {
		if _, err := stat(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("load stage %q: %w: %s", path, ErrResourceNotFound, p)
			}
			return nil, fmt.Errorf("load stage %q: %w", path, err)
		}
	}

	vertSrc, err := read(vertPath)
	if err != nil {
		return nil, fmt.Errorf("load stage %q: %w", path, err)
	}
	fragSrc, err := read(fragPath)
	if err != nil {
		return nil, fmt.Errorf("load stage %q: %w", path, err)
	}

	s, err := NewStage(dev, path, string(vertSrc), string(fragSrc))
	if err != nil {
		return nil, err
	}
	Logger().Debug("stage loaded", slog.String("path", path), slog.Duration("took", time.Since(start)))
	return s, nil
}

// NewStage compiles and links the given sources. A stage is returned only
// when both shaders compile and the program links; otherwise the error is a
// *CompileError or *LinkError, and every shader and program object created
// on the way has been deleted. On success the program becomes the active
// program of dev.
func NewStage(dev Device, name, vertSrc, fragSrc string) (*Stage, error) {
	vert, err := compile(dev, name+".vert", VertexShader, vertSrc)
	if err != nil {
		return nil, err
	}
	frag, err := compile(dev, name+".frag", FragmentShader, fragSrc)
	if err != nil {
		dev.DeleteShader(vert)
		return nil, err
	}

	program := dev.CreateProgram()
	dev.AttachShader(program, frag)
	dev.AttachShader(program, vert)
	dev.LinkProgram(program)
	if ok, log := dev.ProgramStatus(program); !ok {
		dev.DeleteProgram(program)
		dev.DeleteShader(vert)
		dev.DeleteShader(frag)
		return nil, &LinkError{Path: name, Log: log}
	}
	dev.UseProgram(program)

	return &Stage{dev: dev, name: name, program: program, vert: vert, frag: frag}, nil
}

func compile(dev Device, path string, kind ShaderKind, src string) (uint32, error) {
	sh := dev.CreateShader(kind)
	dev.ShaderSource(sh, src)
	dev.CompileShader(sh)
	ok, log := dev.ShaderStatus(sh)
	if !ok {
		dev.DeleteShader(sh)
		return 0, &CompileError{Path: path, Kind: kind, Log: log}
	}
	if log != "" {
		Logger().Warn("shader compiled with diagnostics", slog.String("path", path), slog.String("log", log))
	}
	return sh, nil
}

func (s *Stage) Name() string { return s.name }

// Program returns the device program handle.
func (s *Stage) Program() uint32 { return s.program }

// Activate makes the stage the active program of its device.
func (s *Stage) Activate() { s.dev.UseProgram(s.program) }

// BindAttribute resolves the attribute name and pairs it with buf, read as
// components floats per vertex.
func (s *Stage) BindAttribute(name string, buf *Buffer, components int) (AttributeBinding, error) {
	if components < 1 || components > 4 {
		return AttributeBinding{}, fmt.Errorf("bind attribute %q: %w", name, ErrInvalidComponents)
	}
	loc := s.dev.AttribLocation(s.program, name)
	if loc < 0 {
		return AttributeBinding{}, &BindingError{Stage: s.name, Name: name}
	}
	return AttributeBinding{
		location:   uint32(loc),
		buffer:     buf.Handle(),
		components: int32(components),
		vertices:   buf.Len() / components,
	}, nil
}

// BindUniform resolves the uniform name and pairs it with v.
func (s *Stage) BindUniform(name string, v UniformValue) (UniformBinding, error) {
	if err := v.validate(); err != nil {
		return UniformBinding{}, fmt.Errorf("bind uniform %q: %w", name, err)
	}
	loc := s.dev.UniformLocation(s.program, name)
	if loc < 0 {
		return UniformBinding{}, &BindingError{Stage: s.name, Name: name, Uniform: true}
	}
	return UniformBinding{location: loc, value: v}, nil
}

// BindUniformInts binds an integer vector uniform (int, ivec2..4, sampler).
func (s *Stage) BindUniformInts(name string, v ...int32) (UniformBinding, error) {
	return s.BindUniform(name, Ints(v...))
}

// BindUniformFloats binds a float vector uniform (float, vec2..4).
func (s *Stage) BindUniformFloats(name string, v ...float32) (UniformBinding, error) {
	return s.BindUniform(name, Floats(v...))
}

// HasUniform reports whether the program declares an active uniform name.
func (s *Stage) HasUniform(name string) bool {
	return s.dev.UniformLocation(s.program, name) >= 0
}
