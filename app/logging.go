package app

import (
	"io"
	"log/slog"

	"dash/gpu"
	"dash/vehicle"
)

// SetupLogging installs a text handler on w at level as the default logger
// and as the logger of the gpu and vehicle packages.
func SetupLogging(w io.Writer, level slog.Level) *slog.Logger {
	l := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(l)
	gpu.SetLogger(l)
	vehicle.SetLogger(l)
	return l
}
