// Package app wires the dashboard together: it loads the vehicle and the
// scene, drives the frame loop and reports faults on the display.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"dash/config"
	"dash/dashboard"
	"dash/dashboard/label"
	"dash/gpu"
	"dash/gpu/soft"
	"dash/hal"
	"dash/vehicle"
)

var ErrNoDisplay = errors.New("app: no display framebuffer")

// statsInterval is the number of frames between frame time reports.
const statsInterval = 600

// Setup loads the vehicle configuration, logs its speed table and builds
// the scene for a surface of s's size. The returned frame renders to s.
func Setup(dev gpu.Device, s Surface, cfg config.Config) (*Frame, error) {
	assets := cfg.Assets()

	vc, err := vehicle.LoadConfigFS(assets, cfg.Vehicle)
	if err != nil {
		return nil, err
	}
	slog.Info("vehicle config",
		slog.String("file", cfg.Vehicle),
		float32Attr("gear_ratio", vc.GearRatio),
		float32Attr("drive_wheel_diameter", vc.DriveWheelDiameter))
	for _, row := range vehicle.SpeedTable(vc, vehicle.DefaultRPMs) {
		slog.Info("driving speed", slog.Int("rpm", int(row.RPM)), float32Attr("kmh", row.KMH))
	}

	w, h := s.Size()
	opt := dashboard.Options{
		Assets:     assets,
		Shader:     cfg.Shader,
		Texture:    cfg.Texture,
		ClearColor: cfg.ClearColor,
		Width:      w,
		Height:     h,
		World:      cfg.World,
	}
	if cfg.Label {
		opt.Label = label.Speed(vehicle.DrivingSpeed(vc, vehicle.NewData()))
	}
	rc, err := dashboard.Build(dev, opt)
	if err != nil {
		return nil, err
	}
	return NewFrame(dev, s, rc)
}

// New renders the dashboard with the software device into the display
// framebuffer of h and returns the per-tick step.
func New(h hal.HAL, cfg config.Config) (func() error, error) {
	bootScreen(h, "display")
	fb := framebuffer(h)
	if fb == nil {
		return nil, ErrNoDisplay
	}
	surface, dev := soft.NewSurface(fb)

	bootScreen(h, "scene")
	f, err := Setup(dev, surface, cfg)
	if err != nil {
		return nil, fmt.Errorf("setup: %w", err)
	}

	return func() error {
		if err := f.Step(); err != nil {
			return err
		}
		if st := f.Stats(); st.Frames%statsInterval == 0 {
			slog.Debug("frame stats",
				slog.Uint64("frames", st.Frames),
				slog.Duration("last", st.Last),
				slog.Duration("min", st.Min),
				slog.Duration("max", st.Max))
		}
		return nil
	}, nil
}

func framebuffer(h hal.HAL) hal.Framebuffer {
	if h == nil {
		return nil
	}
	disp := h.Display()
	if disp == nil {
		return nil
	}
	return disp.Framebuffer()
}

// float32Attr formats v at float32 precision.
func float32Attr(key string, v float32) slog.Attr {
	return slog.String(key, strconv.FormatFloat(float64(v), 'g', -1, 32))
}
