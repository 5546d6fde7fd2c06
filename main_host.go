//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"dash/app"
	"dash/config"
	"dash/hal"
	"dash/internal/buildinfo"
)

func main() {
	if err := run(); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var (
		cfgPath    = flag.String("config", config.DefaultFilename, "YAML configuration file.")
		dataDir    = flag.String("data", "", "Asset directory (default: embedded assets).")
		backend    = flag.String("backend", "", "Renderer: soft or gles.")
		headless   = flag.Bool("headless", false, "Run without a window (soft backend).")
		hz         = flag.Int("hz", 0, "Tick rate in headless mode.")
		ticks      = flag.Int("ticks", -1, "Stop after N ticks in headless mode (0 = run forever).")
		labelFlag  = flag.Bool("label", false, "Draw the speed label.")
		scale      = flag.Int("scale", 2, "Window scale factor (soft backend).")
		logLevel   = flag.String("log-level", "", "Log level: debug, info, warn or error.")
		dumpConfig = flag.Bool("dump-config", false, "Print the effective configuration and exit.")
		version    = flag.Bool("version", false, "Print the version and exit.")
	)
	flag.Parse()

	if *version {
		fmt.Println(buildinfo.String())
		return nil
	}

	explicit := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			explicit = true
		}
	})
	cfg, err := config.Load(*cfgPath, explicit)
	if err != nil {
		return err
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *backend != "" {
		cfg.Backend = *backend
	}
	if *hz > 0 {
		cfg.Headless.Hz = *hz
	}
	if *ticks >= 0 {
		cfg.Headless.Ticks = *ticks
	}
	if *labelFlag {
		cfg.Label = true
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if *dumpConfig {
		return config.Write(os.Stdout, cfg)
	}
	level, _ := cfg.Level()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.Backend == config.BackendGLES {
		app.SetupLogging(os.Stdout, level)
		return runGLES(ctx, cfg)
	}

	newApp := func(h hal.HAL) (func() error, error) {
		app.SetupLogging(&hal.LogWriter{L: h.Logger()}, level)
		return app.New(h, cfg)
	}
	if *headless {
		return hal.RunHeadless(ctx, newApp, hal.HeadlessConfig{
			Width:  cfg.Display.Width,
			Height: cfg.Display.Height,
			Hz:     cfg.Headless.Hz,
			Ticks:  uint64(cfg.Headless.Ticks),
		})
	}
	return hal.RunWindow(hal.WindowConfig{
		Title:  "Dashboard",
		Width:  cfg.Display.Width,
		Height: cfg.Display.Height,
		Scale:  *scale,
	}, newApp)
}
