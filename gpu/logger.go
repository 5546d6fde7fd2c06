package gpu

import (
	"context"
	"log/slog"
	"sync/atomic"
)

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger sets the logger used by gpu and its backends. The package is
// silent until SetLogger is called; nil restores the silent default.
//
// Levels:
//   - [slog.LevelDebug]: per-resource load timings (shaders, textures)
//   - [slog.LevelInfo]: lifecycle events
//   - [slog.LevelWarn]: shader info logs on successful builds
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current gpu logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
