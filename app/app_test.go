package app

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"strings"
	"testing"

	"dash/config"
	"dash/gpu/soft"
	"dash/hal"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestSetupLogsSpeedTable(t *testing.T) {
	logs := captureLog(t)
	dev := soft.New(320, 320)
	f, err := Setup(dev, &testSurface{w: 320, h: 320}, config.Default())
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Step(); err != nil {
		t.Fatal(err)
	}
	out := logs.String()
	for _, want := range []string{"gear_ratio=0.1", "drive_wheel_diameter=0.6", "rpm=2000", "rpm=6000"} {
		if !strings.Contains(out, want) {
			t.Errorf("log lacks %q:\n%s", want, out)
		}
	}
	if p := dev.Image().RGBAAt(300, 300); p.R != 255 || p.G != 0 {
		t.Fatalf("clear pixel = %v", p)
	}
}

func TestSetupMissingVehicle(t *testing.T) {
	cfg := config.Default()
	cfg.Vehicle = "none.cfg"
	_, err := Setup(soft.New(8, 8), &testSurface{w: 8, h: 8}, cfg)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("err = %v, want fs.ErrNotExist", err)
	}
}

func TestNewRendersIntoFramebuffer(t *testing.T) {
	captureLog(t)
	h, fb := newTestHAL(320, 320)
	cfg := config.Default()
	cfg.Label = true
	step, err := New(h, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := step(); err != nil {
		t.Fatal(err)
	}
	if fb.presents != 1 {
		t.Fatalf("presents = %d", fb.presents)
	}
	if p := fb.pixel(300, 300); p != hal.RGB565(255, 0, 0) {
		t.Fatalf("background = %#04x", p)
	}
	// Green quad at (0,50) size 100: no red or blue bits.
	if p := fb.pixel(50, 100); p&0xF81F != 0 || p == 0 {
		t.Fatalf("quad pixel = %#04x", p)
	}
}

func TestNewWithoutDisplay(t *testing.T) {
	h := &testHAL{log: &testLogger{}, disp: testDisplay{}}
	if _, err := New(h, config.Default()); !errors.Is(err, ErrNoDisplay) {
		t.Fatalf("err = %v, want ErrNoDisplay", err)
	}
	if _, err := New(nil, config.Default()); !errors.Is(err, ErrNoDisplay) {
		t.Fatalf("err = %v, want ErrNoDisplay", err)
	}
}
