//go:build gles && !tinygo

package main

import (
	"context"
	"errors"

	"dash/app"
	"dash/config"
	"dash/gpu/gles"
)

func runGLES(ctx context.Context, cfg config.Config) error {
	win, err := gles.NewWindow("Dashboard", cfg.Display.Width, cfg.Display.Height)
	if err != nil {
		return err
	}
	defer win.Close()

	dev, err := gles.Init()
	if err != nil {
		return err
	}
	f, err := app.Setup(dev, win, cfg)
	if err != nil {
		return err
	}
	if err := app.Run(ctx, f.Step); err != nil && !errors.Is(err, gles.ErrClosed) {
		return err
	}
	return nil
}
