package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"dash/gpu"
	"dash/gpu/gputest"
	"dash/hal"
)

func TestNewFrameSetsViewportOnce(t *testing.T) {
	dev := gputest.NewRecorder(nil, nil)
	s := &testSurface{w: 320, h: 240}
	f, err := NewFrame(dev, s, gpu.NewRenderContext([4]float32{1, 0, 0, 1}))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := f.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if n := dev.Count("Viewport"); n != 1 {
		t.Fatalf("Viewport calls = %d", n)
	}
	if dev.Width != 320 || dev.Height != 240 {
		t.Fatalf("viewport = %dx%d", dev.Width, dev.Height)
	}
	if s.swaps != 3 || dev.Count("Clear") != 3 {
		t.Fatalf("swaps %d clears %d", s.swaps, dev.Count("Clear"))
	}
}

func TestStepClearsBeforeDrawing(t *testing.T) {
	dev := gputest.NewRecorder(nil, nil)
	f, err := NewFrame(dev, &testSurface{w: 1, h: 1}, gpu.NewRenderContext([4]float32{1, 0, 0, 1}))
	if err != nil {
		t.Fatal(err)
	}
	dev.Reset()
	if err := f.Step(); err != nil {
		t.Fatal(err)
	}
	got := []string{}
	for _, c := range dev.Calls {
		got = append(got, c.String())
	}
	want := []string{"ClearColor(1, 0, 0, 1)", "Clear"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("calls = %v, want %v", got, want)
	}
}

func TestFrameStats(t *testing.T) {
	dev := gputest.NewRecorder(nil, nil)
	f, err := NewFrame(dev, &testSurface{w: 1, h: 1}, gpu.NewRenderContext([4]float32{}))
	if err != nil {
		t.Fatal(err)
	}
	clock := time.Unix(0, 0)
	durations := []time.Duration{5 * time.Millisecond, 2 * time.Millisecond, 9 * time.Millisecond}
	i, start := 0, true
	f.now = func() time.Time {
		if !start {
			clock = clock.Add(durations[i])
			i++
		}
		start = !start
		return clock
	}
	for range durations {
		if err := f.Step(); err != nil {
			t.Fatal(err)
		}
	}
	st := f.Stats()
	if st.Frames != 3 || st.Last != 9*time.Millisecond || st.Min != 2*time.Millisecond || st.Max != 9*time.Millisecond {
		t.Fatalf("stats = %+v", st)
	}
}

func TestNewFrameErrors(t *testing.T) {
	dev := gputest.NewRecorder(nil, nil)
	_, err := NewFrame(dev, &testSurface{currentErr: errTest}, gpu.NewRenderContext([4]float32{}))
	if !errors.Is(err, errTest) {
		t.Fatalf("err = %v", err)
	}

	rc := gpu.NewRenderContext([4]float32{})
	rc.Commands = append(rc.Commands, nil)
	if _, err := NewFrame(dev, &testSurface{}, rc); !errors.Is(err, gpu.ErrStageMismatch) {
		t.Fatalf("err = %v, want ErrStageMismatch", err)
	}
	if len(dev.Calls) != 0 {
		t.Fatalf("device touched: %v", dev.Ops())
	}
}

func TestStepSwapError(t *testing.T) {
	dev := gputest.NewRecorder(nil, nil)
	s := &testSurface{w: 1, h: 1}
	f, err := NewFrame(dev, s, gpu.NewRenderContext([4]float32{}))
	if err != nil {
		t.Fatal(err)
	}
	s.swapErr = errTest
	if err := f.Step(); !errors.Is(err, errTest) {
		t.Fatalf("err = %v", err)
	}
	if f.Stats().Frames != 0 {
		t.Fatal("failed frame counted")
	}
}

func TestStepRenderError(t *testing.T) {
	dev := gputest.NewRecorder(map[string]int32{"a_vertex": 0}, nil)
	stage, err := gpu.NewStage(dev, "ui", "v", "f")
	if err != nil {
		t.Fatal(err)
	}
	buf := gpu.NewBuffer(dev, []float32{0, 0, 1, 1}, gpu.ArrayBuffer, gpu.StaticDraw)
	attr, err := stage.BindAttribute("a_vertex", buf, 2)
	if err != nil {
		t.Fatal(err)
	}
	cmd, err := gpu.NewCommand([]gpu.AttributeBinding{attr}, nil, gpu.Lines, 2)
	if err != nil {
		t.Fatal(err)
	}
	rc := gpu.NewRenderContext([4]float32{})
	rc.AddStage(stage, cmd)

	s := &testSurface{w: 1, h: 1}
	f, err := NewFrame(dev, s, rc)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Step(); err != nil {
		t.Fatal(err)
	}
	rc.Commands = rc.Commands[:0]
	if err := f.Step(); !errors.Is(err, gpu.ErrStageMismatch) {
		t.Fatalf("err = %v, want ErrStageMismatch", err)
	}
	if s.swaps != 1 {
		t.Fatalf("swaps = %d, want 1", s.swaps)
	}
}

func TestStepActivatesEachStage(t *testing.T) {
	dev := gputest.NewRecorder(map[string]int32{"a_vertex": 0}, nil)
	newStage := func(name string) (*gpu.Stage, *gpu.Command) {
		stage, err := gpu.NewStage(dev, name, "v", "f")
		if err != nil {
			t.Fatal(err)
		}
		buf := gpu.NewBuffer(dev, []float32{0, 0, 1, 1}, gpu.ArrayBuffer, gpu.StaticDraw)
		attr, err := stage.BindAttribute("a_vertex", buf, 2)
		if err != nil {
			t.Fatal(err)
		}
		cmd, err := gpu.NewCommand([]gpu.AttributeBinding{attr}, nil, gpu.Lines, 2)
		if err != nil {
			t.Fatal(err)
		}
		return stage, cmd
	}
	world, worldCmd := newStage("world")
	ui, uiCmd := newStage("ui")

	rc := gpu.NewRenderContext([4]float32{})
	rc.AddStage(world, worldCmd)
	rc.AddStage(ui, uiCmd)
	f, err := NewFrame(dev, &testSurface{w: 1, h: 1}, rc)
	if err != nil {
		t.Fatal(err)
	}
	dev.Reset()
	if err := f.Step(); err != nil {
		t.Fatal(err)
	}

	var seq []string
	for _, c := range dev.Calls {
		if c.Op == "UseProgram" || c.Op == "DrawArrays" {
			seq = append(seq, c.String())
		}
	}
	want := []string{
		"UseProgram(" + fmt.Sprint(world.Program()) + ")",
		"DrawArrays(lines, 0, 2)",
		"UseProgram(" + fmt.Sprint(ui.Program()) + ")",
		"DrawArrays(lines, 0, 2)",
	}
	if strings.Join(seq, " ") != strings.Join(want, " ") {
		t.Fatalf("calls = %v, want %v", seq, want)
	}
}

func TestStepMultiStageMismatch(t *testing.T) {
	dev := gputest.NewRecorder(nil, nil)
	a, err := gpu.NewStage(dev, "a", "v", "f")
	if err != nil {
		t.Fatal(err)
	}
	b, err := gpu.NewStage(dev, "b", "v", "f")
	if err != nil {
		t.Fatal(err)
	}
	rc := gpu.NewRenderContext([4]float32{})
	rc.AddStage(a)
	rc.AddStage(b)
	f, err := NewFrame(dev, &testSurface{w: 1, h: 1}, rc)
	if err != nil {
		t.Fatal(err)
	}
	rc.Commands = rc.Commands[:1]
	dev.Reset()
	if err := f.Step(); !errors.Is(err, gpu.ErrStageMismatch) {
		t.Fatalf("err = %v, want ErrStageMismatch", err)
	}
	if dev.Count("UseProgram") != 0 {
		t.Fatalf("stage activated before validation: %v", dev.Ops())
	}
}

func TestRun(t *testing.T) {
	n := 0
	err := Run(context.Background(), func() error {
		n++
		if n == 5 {
			return hal.ErrStop
		}
		return nil
	})
	if err != nil || n != 5 {
		t.Fatalf("err = %v n = %d", err, n)
	}

	err = Run(context.Background(), func() error { return errTest })
	if !errors.Is(err, errTest) {
		t.Fatalf("err = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	n = 0
	err = Run(ctx, func() error {
		n++
		if n == 3 {
			cancel()
		}
		return nil
	})
	if !errors.Is(err, context.Canceled) || n != 3 {
		t.Fatalf("err = %v n = %d", err, n)
	}
}
