package gpu_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"dash/gpu"
	"dash/gpu/gputest"
)

const testVert = `attribute vec2 a_vertex;
void main() { gl_Position = vec4(a_vertex, 0.0, 1.0); }
`

const testFrag = `precision mediump float;
void main() { gl_FragColor = vec4(1.0); }
`

func writeStage(t *testing.T, vert, frag bool) string {
	t.Helper()
	base := filepath.Join(t.TempDir(), "default")
	if vert {
		if err := os.WriteFile(base+".vert", []byte(testVert), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if frag {
		if err := os.WriteFile(base+".frag", []byte(testFrag), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return base
}

func TestLoadStageMissingVertex(t *testing.T) {
	dev := gputest.NewRecorder(nil, nil)
	path := writeStage(t, false, true)

	_, err := gpu.LoadStage(dev, path)
	if !errors.Is(err, gpu.ErrResourceNotFound) {
		t.Fatalf("err = %v, want ErrResourceNotFound", err)
	}
	if n := dev.Count("CompileShader"); n != 0 {
		t.Fatalf("CompileShader called %d times", n)
	}
	if len(dev.Calls) != 0 {
		t.Fatalf("device touched: %v", dev.Ops())
	}
}

func TestLoadStageMissingFragment(t *testing.T) {
	dev := gputest.NewRecorder(nil, nil)
	path := writeStage(t, true, false)

	if _, err := gpu.LoadStage(dev, path); !errors.Is(err, gpu.ErrResourceNotFound) {
		t.Fatalf("err = %v, want ErrResourceNotFound", err)
	}
	if len(dev.Calls) != 0 {
		t.Fatalf("device touched: %v", dev.Ops())
	}
}

func TestLoadStageActivatesProgram(t *testing.T) {
	dev := gputest.NewRecorder(nil, nil)
	path := writeStage(t, true, true)

	s, err := gpu.LoadStage(dev, path)
	if err != nil {
		t.Fatalf("LoadStage: %v", err)
	}
	if dev.Program != s.Program() {
		t.Fatalf("active program = %d, want %d", dev.Program, s.Program())
	}
	if n := dev.Count("CompileShader"); n != 2 {
		t.Fatalf("CompileShader called %d times, want 2", n)
	}
	if s.Name() != path {
		t.Fatalf("Name() = %q", s.Name())
	}
}

func TestNewStageCompileError(t *testing.T) {
	dev := gputest.NewRecorder(nil, nil)
	dev.FailCompile = map[gpu.ShaderKind]string{gpu.FragmentShader: "0:1: syntax error"}

	s, err := gpu.NewStage(dev, "ui", testVert, testFrag)
	if s != nil {
		t.Fatal("expected no stage")
	}
	var ce *gpu.CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want *CompileError", err)
	}
	if ce.Kind != gpu.FragmentShader || ce.Log != "0:1: syntax error" {
		t.Fatalf("CompileError = %+v", ce)
	}
	if !errors.Is(err, gpu.ErrCompile) {
		t.Fatal("CompileError does not unwrap to ErrCompile")
	}
	if dev.Count("LinkProgram") != 0 || dev.Count("UseProgram") != 0 {
		t.Fatalf("continued after compile failure: %v", dev.Ops())
	}
	if n := dev.Count("DeleteShader"); n != 2 {
		t.Fatalf("DeleteShader calls = %d, want both shaders released: %v", n, dev.Ops())
	}
}

func TestNewStageVertexCompileErrorReleasesShader(t *testing.T) {
	dev := gputest.NewRecorder(nil, nil)
	dev.FailCompile = map[gpu.ShaderKind]string{gpu.VertexShader: "0:3: undeclared"}

	if _, err := gpu.NewStage(dev, "ui", testVert, testFrag); !errors.Is(err, gpu.ErrCompile) {
		t.Fatalf("err = %v, want ErrCompile", err)
	}
	if dev.Count("CreateShader") != 1 || dev.Count("DeleteShader") != 1 {
		t.Fatalf("ops = %v", dev.Ops())
	}
}

func TestNewStageLinkError(t *testing.T) {
	dev := gputest.NewRecorder(nil, nil)
	dev.FailLink = "varying v_color not written"

	_, err := gpu.NewStage(dev, "ui", testVert, testFrag)
	var le *gpu.LinkError
	if !errors.As(err, &le) || !errors.Is(err, gpu.ErrLink) {
		t.Fatalf("err = %v, want *LinkError", err)
	}
	if dev.Count("UseProgram") != 0 {
		t.Fatal("program activated after link failure")
	}
	if dev.Count("DeleteProgram") != 1 || dev.Count("DeleteShader") != 2 {
		t.Fatalf("link failure leaked objects: %v", dev.Ops())
	}
}

func TestBindAttribute(t *testing.T) {
	dev := gputest.NewRecorder(map[string]int32{"a_vertex": 3}, nil)
	s, err := gpu.NewStage(dev, "ui", testVert, testFrag)
	if err != nil {
		t.Fatal(err)
	}
	buf := gpu.NewBuffer(dev, make([]float32, 8), gpu.ArrayBuffer, gpu.StaticDraw)
	dev.Reset()

	b, err := s.BindAttribute("a_vertex", buf, 2)
	if err != nil {
		t.Fatalf("BindAttribute: %v", err)
	}
	if b.Location() != 3 || b.Buffer() != buf.Handle() || b.Components() != 2 || b.Vertices() != 4 {
		t.Fatalf("binding = %+v", b)
	}
	if len(dev.Calls) != 0 {
		t.Fatalf("binding touched device state: %v", dev.Ops())
	}

	_, err = s.BindAttribute("a_missing", buf, 2)
	var be *gpu.BindingError
	if !errors.As(err, &be) || be.Name != "a_missing" || be.Uniform {
		t.Fatalf("err = %v, want attribute BindingError", err)
	}
	if !errors.Is(err, gpu.ErrBindingNotFound) {
		t.Fatal("BindingError does not unwrap to ErrBindingNotFound")
	}

	for _, n := range []int{0, 5} {
		if _, err := s.BindAttribute("a_vertex", buf, n); !errors.Is(err, gpu.ErrInvalidComponents) {
			t.Fatalf("components %d: err = %v", n, err)
		}
	}
}

func TestBindUniformArity(t *testing.T) {
	dev := gputest.NewRecorder(nil, map[string]int32{"u_tex0": 0, "u_tint": 1})
	s, err := gpu.NewStage(dev, "ui", testVert, testFrag)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.BindUniformInts("u_tex0"); !errors.Is(err, gpu.ErrInvalidArity) {
		t.Fatalf("empty payload: err = %v", err)
	}
	if _, err := s.BindUniformInts("u_tex0", 1, 2, 3, 4, 5); !errors.Is(err, gpu.ErrInvalidArity) {
		t.Fatalf("5 ints: err = %v", err)
	}
	if _, err := s.BindUniformFloats("u_tint", 1, 2, 3, 4, 5); !errors.Is(err, gpu.ErrInvalidArity) {
		t.Fatalf("5 floats: err = %v", err)
	}
	if _, err := s.BindUniformFloats("u_tint"); !errors.Is(err, gpu.ErrInvalidArity) {
		t.Fatalf("empty floats: err = %v", err)
	}

	_, err = s.BindUniformInts("u_missing", 1)
	var be *gpu.BindingError
	if !errors.As(err, &be) || !be.Uniform {
		t.Fatalf("err = %v, want uniform BindingError", err)
	}

	payload := []int32{7}
	u, err := s.BindUniformInts("u_tex0", payload...)
	if err != nil {
		t.Fatal(err)
	}
	payload[0] = 9
	if got := u.Value().IntSlice(); got[0] != 7 {
		t.Fatalf("payload not copied: %v", got)
	}
	if u.Value().Type() != gpu.UniformInt {
		t.Fatalf("type = %v", u.Value().Type())
	}

	f, err := s.BindUniformFloats("u_tint", 0.5, 0.25)
	if err != nil {
		t.Fatal(err)
	}
	if f.Value().Type() != gpu.UniformFloat || f.Value().Len() != 2 || f.Location() != 1 {
		t.Fatalf("float binding = %+v", f)
	}
}

func TestLoadStageFS(t *testing.T) {
	fsys := fstest.MapFS{
		"shaders/ui.vert":  {Data: []byte(testVert)},
		"shaders/ui.frag":  {Data: []byte(testFrag)},
		"shaders/bad.vert": {Data: []byte(testVert)},
	}
	dev := gputest.NewRecorder(nil, nil)

	s, err := gpu.LoadStageFS(dev, fsys, "shaders/ui")
	if err != nil {
		t.Fatal(err)
	}
	if dev.Program != s.Program() {
		t.Fatalf("active program = %d, want %d", dev.Program, s.Program())
	}

	dev.Reset()
	if _, err := gpu.LoadStageFS(dev, fsys, "shaders/bad"); !errors.Is(err, gpu.ErrResourceNotFound) {
		t.Fatalf("err = %v, want ErrResourceNotFound", err)
	}
	if len(dev.Calls) != 0 {
		t.Fatalf("device touched: %v", dev.Ops())
	}
}
