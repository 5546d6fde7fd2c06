package soft

import (
	"errors"
	"fmt"

	"dash/hal"
)

var ErrPixelFormat = errors.New("soft: unsupported framebuffer pixel format")

// Surface presents a Device that draws straight into a hal.Framebuffer.
type Surface struct {
	fb hal.Framebuffer
}

// NewSurface returns a surface for fb together with a device rendering into
// the framebuffer's RGB565 buffer.
func NewSurface(fb hal.Framebuffer) (*Surface, *Device) {
	t := &RGB565Target{Buf: fb.Buffer(), Stride: fb.StrideBytes(), W: fb.Width(), H: fb.Height()}
	return &Surface{fb: fb}, NewTarget(t)
}

func (s *Surface) Size() (w, h int) { return s.fb.Width(), s.fb.Height() }

// MakeCurrent checks that the framebuffer holds RGB565 pixels.
func (s *Surface) MakeCurrent() error {
	if f := s.fb.Format(); f != hal.PixelFormatRGB565 {
		return fmt.Errorf("%w: %d", ErrPixelFormat, f)
	}
	return nil
}

// Swap presents the framebuffer.
func (s *Surface) Swap() error { return s.fb.Present() }
