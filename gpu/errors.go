package gpu

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrResourceNotFound    = errors.New("gpu: resource not found")
	ErrCompile             = errors.New("gpu: shader compile failed")
	ErrLink                = errors.New("gpu: program link failed")
	ErrBindingNotFound     = errors.New("gpu: binding not found")
	ErrInvalidArity        = errors.New("gpu: uniform payload length must be 1..4")
	ErrInvalidComponents   = errors.New("gpu: attribute components must be 1..4")
	ErrInvalidSamplerIndex = errors.New("gpu: sampler index must be 0..7")
	ErrInvalidPrimitive    = errors.New("gpu: invalid primitive type")
	ErrVertexCount         = errors.New("gpu: vertex count exceeds bound buffer")
	ErrDecode              = errors.New("gpu: image decode failed")
	ErrStageMismatch       = errors.New("gpu: stage and command list counts differ")
)

// CompileError carries the info log of a shader that failed to compile.
type CompileError struct {
	Path string
	Kind ShaderKind
	Log  string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("gpu: compile %s shader %q: %s", e.Kind, e.Path, strings.TrimSpace(e.Log))
}

func (e *CompileError) Unwrap() error { return ErrCompile }

// LinkError carries the info log of a program that failed to link.
type LinkError struct {
	Path string
	Log  string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("gpu: link program %q: %s", e.Path, strings.TrimSpace(e.Log))
}

func (e *LinkError) Unwrap() error { return ErrLink }

// BindingError reports a shader input name that reflection could not resolve.
type BindingError struct {
	Stage   string
	Name    string
	Uniform bool
}

func (e *BindingError) Error() string {
	kind := "attribute"
	if e.Uniform {
		kind = "uniform"
	}
	return fmt.Sprintf("gpu: %s %q not found in stage %q", kind, e.Name, e.Stage)
}

func (e *BindingError) Unwrap() error { return ErrBindingNotFound }
