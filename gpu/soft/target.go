package soft

import (
	"image"
	"image/color"

	"dash/hal"
)

// Target is the color buffer a Device draws into. Row 0 is the top of the
// screen. Callers pass only in-bounds coordinates.
type Target interface {
	Size() (w, h int)
	SetPixel(x, y int, c color.RGBA)
	Fill(r image.Rectangle, c color.RGBA)
}

// ImageTarget draws into an RGBA image.
type ImageTarget struct {
	*image.RGBA
}

func NewImageTarget(w, h int) ImageTarget {
	return ImageTarget{image.NewRGBA(image.Rect(0, 0, w, h))}
}

func (t ImageTarget) Size() (w, h int) {
	b := t.Bounds()
	return b.Dx(), b.Dy()
}

func (t ImageTarget) SetPixel(x, y int, c color.RGBA) { t.SetRGBA(x, y, c) }

func (t ImageTarget) Fill(r image.Rectangle, c color.RGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := t.Pix[t.PixOffset(r.Min.X, y):t.PixOffset(r.Max.X, y)]
		for i := 0; i < len(row); i += 4 {
			row[i], row[i+1], row[i+2], row[i+3] = c.R, c.G, c.B, c.A
		}
	}
}

// RGB565Target draws straight into a little-endian RGB565 buffer, such as a
// hal.Framebuffer's. Alpha is dropped.
type RGB565Target struct {
	Buf    []byte
	Stride int // bytes per row
	W      int
	H      int
}

func (t *RGB565Target) Size() (w, h int) { return t.W, t.H }

func (t *RGB565Target) SetPixel(x, y int, c color.RGBA) {
	off := y*t.Stride + x*2
	if off < 0 || off+1 >= len(t.Buf) {
		return
	}
	p := hal.RGB565(c.R, c.G, c.B)
	t.Buf[off] = byte(p)
	t.Buf[off+1] = byte(p >> 8)
}

func (t *RGB565Target) Fill(r image.Rectangle, c color.RGBA) {
	p := hal.RGB565(c.R, c.G, c.B)
	lo, hi := byte(p), byte(p>>8)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := y * t.Stride
		for x := r.Min.X; x < r.Max.X; x++ {
			off := row + x*2
			if off < 0 || off+1 >= len(t.Buf) {
				continue
			}
			t.Buf[off] = lo
			t.Buf[off+1] = hi
		}
	}
}
