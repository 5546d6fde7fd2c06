// Package hal is the boundary between the dashboard and the board it runs
// on: a line logger and a display framebuffer.
package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// Default display size when none is configured.
const (
	DefaultWidth  = 320
	DefaultHeight = 320
)

// ErrNotImplemented reports a feature missing from this build or board.
var ErrNotImplemented = errors.New("not implemented")

// ErrStop is returned by a step function to end its runner without error.
var ErrStop = errors.New("stop")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp little-endian: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// HAL provides the only contact point between the dashboard and the
// outside world.
type HAL interface {
	Logger() Logger
	Display() Display
}

// clearRGB565 fills buf with one RGB565 pixel value.
func clearRGB565(buf []byte, r, g, b uint8) {
	pixel := RGB565(r, g, b)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i+1 < len(buf); i += 2 {
		buf[i] = lo
		buf[i+1] = hi
	}
}
