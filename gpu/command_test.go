package gpu_test

import (
	"errors"
	"fmt"
	"testing"

	"dash/gpu"
	"dash/gpu/gputest"
)

type quadFixture struct {
	dev   *gputest.Recorder
	stage *gpu.Stage
	buf   *gpu.Buffer
}

func newQuadFixture(t *testing.T) quadFixture {
	t.Helper()
	dev := gputest.NewRecorder(
		map[string]int32{"a_vertex": 0, "a_color": 1, "a_texCoord": 2},
		map[string]int32{"u_tex0": 0, "u_tint": 1},
	)
	s, err := gpu.NewStage(dev, "ui", testVert, testFrag)
	if err != nil {
		t.Fatal(err)
	}
	buf := gpu.NewBuffer(dev, make([]float32, 12), gpu.ArrayBuffer, gpu.StaticDraw)
	dev.Reset()
	return quadFixture{dev: dev, stage: s, buf: buf}
}

func (f quadFixture) attr(t *testing.T, name string, n int) gpu.AttributeBinding {
	t.Helper()
	b, err := f.stage.BindAttribute(name, f.buf, n)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestExecuteProtocolOrder(t *testing.T) {
	f := newQuadFixture(t)
	u, err := f.stage.BindUniformInts("u_tex0", 0)
	if err != nil {
		t.Fatal(err)
	}
	cmd, err := gpu.NewCommand(
		[]gpu.AttributeBinding{f.attr(t, "a_vertex", 2), f.attr(t, "a_color", 3)},
		[]gpu.UniformBinding{u},
		gpu.TriangleFan, 4)
	if err != nil {
		t.Fatal(err)
	}

	if err := cmd.Execute(f.dev); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	want := []string{
		"EnableVertexAttribArray(0)",
		fmt.Sprintf("BindBuffer(array, %d)", f.buf.Handle()),
		fmt.Sprintf("VertexAttribPointer(0, 2, %d)", f.buf.Handle()),
		"EnableVertexAttribArray(1)",
		fmt.Sprintf("BindBuffer(array, %d)", f.buf.Handle()),
		fmt.Sprintf("VertexAttribPointer(1, 3, %d)", f.buf.Handle()),
		"Uniform1i(0, 0)",
		"DrawArrays(triangle-fan, 0, 4)",
		"DisableVertexAttribArray(0)",
		"DisableVertexAttribArray(1)",
		"BindBuffer(array, 0)",
	}
	if len(f.dev.Calls) != len(want) {
		t.Fatalf("calls = %v", f.dev.Calls)
	}
	for i, c := range f.dev.Calls {
		if c.String() != want[i] {
			t.Fatalf("call %d = %s, want %s", i, c, want[i])
		}
	}
}

func TestExecuteLeavesNoState(t *testing.T) {
	f := newQuadFixture(t)
	cmd, err := gpu.NewCommand(
		[]gpu.AttributeBinding{f.attr(t, "a_vertex", 2), f.attr(t, "a_color", 3), f.attr(t, "a_texCoord", 2)},
		nil, gpu.Triangles, 3)
	if err != nil {
		t.Fatal(err)
	}
	if err := cmd.Execute(f.dev); err != nil {
		t.Fatal(err)
	}
	if got := f.dev.EnabledArrays(); len(got) != 0 {
		t.Fatalf("arrays still enabled: %v", got)
	}
	if f.dev.ArrayBuffer != 0 {
		t.Fatalf("array buffer still bound: %d", f.dev.ArrayBuffer)
	}
}

func TestExecuteUniformArityDispatch(t *testing.T) {
	for n := 1; n <= 4; n++ {
		t.Run(fmt.Sprintf("ints%d", n), func(t *testing.T) {
			f := newQuadFixture(t)
			u, err := f.stage.BindUniformInts("u_tex0", make([]int32, n)...)
			if err != nil {
				t.Fatal(err)
			}
			cmd, err := gpu.NewCommand(nil, []gpu.UniformBinding{u}, gpu.Points, 0)
			if err != nil {
				t.Fatal(err)
			}
			if err := cmd.Execute(f.dev); err != nil {
				t.Fatal(err)
			}
			op := fmt.Sprintf("Uniform%di", n)
			if f.dev.Count(op) != 1 {
				t.Fatalf("ops = %v, want one %s", f.dev.Ops(), op)
			}
			if got := f.dev.Calls[0]; got.Op != op || len(got.Args) != n+1 {
				t.Fatalf("first call = %s", got)
			}
		})
		t.Run(fmt.Sprintf("floats%d", n), func(t *testing.T) {
			f := newQuadFixture(t)
			u, err := f.stage.BindUniformFloats("u_tint", make([]float32, n)...)
			if err != nil {
				t.Fatal(err)
			}
			cmd, err := gpu.NewCommand(nil, []gpu.UniformBinding{u}, gpu.Points, 0)
			if err != nil {
				t.Fatal(err)
			}
			if err := cmd.Execute(f.dev); err != nil {
				t.Fatal(err)
			}
			op := fmt.Sprintf("Uniform%df", n)
			if f.dev.Count(op) != 1 {
				t.Fatalf("ops = %v, want one %s", f.dev.Ops(), op)
			}
		})
	}
}

func TestExecuteInvalidArityStillUnbinds(t *testing.T) {
	f := newQuadFixture(t)
	cmd := gpu.NewCommandUnchecked(
		[]gpu.AttributeBinding{f.attr(t, "a_vertex", 2), f.attr(t, "a_color", 3)},
		[]gpu.UniformBinding{{}},
		gpu.TriangleFan, 4)

	err := cmd.Execute(f.dev)
	if !errors.Is(err, gpu.ErrInvalidArity) {
		t.Fatalf("err = %v, want ErrInvalidArity", err)
	}
	if f.dev.Count("DrawArrays") != 0 {
		t.Fatal("drew after failed bind")
	}
	if got := f.dev.EnabledArrays(); len(got) != 0 {
		t.Fatalf("arrays still enabled: %v", got)
	}
	if f.dev.ArrayBuffer != 0 {
		t.Fatalf("array buffer still bound: %d", f.dev.ArrayBuffer)
	}
}

func TestNewCommandValidation(t *testing.T) {
	f := newQuadFixture(t)
	vert := f.attr(t, "a_vertex", 2) // 12 floats / 2 = 6 vertices

	if _, err := gpu.NewCommand([]gpu.AttributeBinding{vert}, nil, gpu.Triangles, 7); !errors.Is(err, gpu.ErrVertexCount) {
		t.Fatalf("count 7: err = %v", err)
	}
	if _, err := gpu.NewCommand([]gpu.AttributeBinding{vert}, nil, gpu.Triangles, 6); err != nil {
		t.Fatalf("count 6: %v", err)
	}
	if _, err := gpu.NewCommand(nil, nil, gpu.Primitive(42), 1); !errors.Is(err, gpu.ErrInvalidPrimitive) {
		t.Fatalf("primitive 42: err = %v", err)
	}
	if _, err := gpu.NewCommand(nil, []gpu.UniformBinding{{}}, gpu.Points, 1); !errors.Is(err, gpu.ErrInvalidArity) {
		t.Fatalf("empty uniform: err = %v", err)
	}
}

func TestCommandCopiesBindings(t *testing.T) {
	f := newQuadFixture(t)
	attrs := []gpu.AttributeBinding{f.attr(t, "a_vertex", 2)}
	cmd, err := gpu.NewCommand(attrs, nil, gpu.Lines, 2)
	if err != nil {
		t.Fatal(err)
	}
	attrs[0] = f.attr(t, "a_color", 3)
	if got := cmd.Attributes()[0].Location(); got != 0 {
		t.Fatalf("command shares caller slice: location %d", got)
	}
	if cmd.Primitive() != gpu.Lines || cmd.Count() != 2 {
		t.Fatalf("primitive/count = %v/%d", cmd.Primitive(), cmd.Count())
	}
}
