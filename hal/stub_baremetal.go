//go:build tinygo && baremetal

package hal

// stubFramebuffer holds pixels for boards without a panel.
type stubFramebuffer struct {
	w   int
	h   int
	buf []byte
}

func newStubFramebuffer(w, h int) *stubFramebuffer {
	return &stubFramebuffer{w: w, h: h, buf: make([]byte, w*h*2)}
}

func (f *stubFramebuffer) Width() int             { return f.w }
func (f *stubFramebuffer) Height() int            { return f.h }
func (f *stubFramebuffer) Format() PixelFormat    { return PixelFormatRGB565 }
func (f *stubFramebuffer) StrideBytes() int       { return f.w * 2 }
func (f *stubFramebuffer) Buffer() []byte         { return f.buf }
func (f *stubFramebuffer) ClearRGB(r, g, b uint8) { clearRGB565(f.buf, r, g, b) }
func (f *stubFramebuffer) Present() error         { return nil }
