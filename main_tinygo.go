//go:build tinygo

package main

import (
	"context"

	"dash/app"
	"dash/config"
	"dash/hal"
)

func main() {
	h := hal.New()
	defer app.RecoverFault(h)

	cfg := config.Default()
	cfg.Label = true
	level, _ := cfg.Level()
	app.SetupLogging(&hal.LogWriter{L: h.Logger()}, level)

	step, err := app.New(h, cfg)
	if err == nil {
		err = app.Run(context.Background(), step)
	}
	app.ShowFault(h, err)
	select {}
}
