package app

import (
	"errors"

	"dash/hal"
)

type testFramebuffer struct {
	w, h     int
	buf      []byte
	presents int
}

func newTestFramebuffer(w, h int) *testFramebuffer {
	return &testFramebuffer{w: w, h: h, buf: make([]byte, w*h*2)}
}

func (f *testFramebuffer) Width() int              { return f.w }
func (f *testFramebuffer) Height() int             { return f.h }
func (f *testFramebuffer) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *testFramebuffer) StrideBytes() int        { return f.w * 2 }
func (f *testFramebuffer) Buffer() []byte          { return f.buf }

func (f *testFramebuffer) ClearRGB(r, g, b uint8) {
	p := hal.RGB565(r, g, b)
	for i := 0; i+1 < len(f.buf); i += 2 {
		f.buf[i], f.buf[i+1] = byte(p), byte(p>>8)
	}
}

func (f *testFramebuffer) Present() error {
	f.presents++
	return nil
}

// pixel returns the RGB565 value at (x, y).
func (f *testFramebuffer) pixel(x, y int) uint16 {
	off := y*f.w*2 + x*2
	return uint16(f.buf[off]) | uint16(f.buf[off+1])<<8
}

type testLogger struct{ lines []string }

func (l *testLogger) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *testLogger) WriteLineBytes(b []byte)  { l.lines = append(l.lines, string(b)) }

type testDisplay struct{ fb hal.Framebuffer }

func (d testDisplay) Framebuffer() hal.Framebuffer { return d.fb }

type testHAL struct {
	log  *testLogger
	disp hal.Display
}

func newTestHAL(w, h int) (*testHAL, *testFramebuffer) {
	fb := newTestFramebuffer(w, h)
	return &testHAL{log: &testLogger{}, disp: testDisplay{fb: fb}}, fb
}

func (h *testHAL) Logger() hal.Logger   { return h.log }
func (h *testHAL) Display() hal.Display { return h.disp }

// testSurface counts presents and can fail them.
type testSurface struct {
	w, h       int
	swaps      int
	swapErr    error
	currentErr error
}

func (s *testSurface) Size() (int, int) { return s.w, s.h }
func (s *testSurface) MakeCurrent() error {
	return s.currentErr
}

func (s *testSurface) Swap() error {
	s.swaps++
	return s.swapErr
}

var errTest = errors.New("test failure")
