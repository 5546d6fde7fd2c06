// Package label rasterises short text lines with tinyfont so they can be
// uploaded as textures.
package label

import (
	"fmt"
	"image"
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// DefaultFont is the font used by the dashboard labels.
var DefaultFont tinyfont.Fonter = &proggy.TinySZ8pt7b

// Render draws text on a bg filled image just large enough to hold it.
// The baseline sits a quarter of the line height above the bottom edge.
func Render(text string, font tinyfont.Fonter, fg, bg color.RGBA) *image.RGBA {
	_, w := tinyfont.LineWidth(font, text)
	h := int(font.GetYAdvance())
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 1
	}

	c := canvas{img: image.NewRGBA(image.Rect(0, 0, int(w), h))}
	c.fill(bg)
	tinyfont.WriteLine(c, font, 0, int16(h-h/4), text, fg)
	return c.img
}

// Speed formats a driving speed for display.
func Speed(kmh float32) string {
	return fmt.Sprintf("%.0f km/h", kmh)
}

// canvas lets tinyfont draw into an image.
type canvas struct {
	img *image.RGBA
}

var _ drivers.Displayer = canvas{}

func (c canvas) Size() (x, y int16) {
	b := c.img.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (c canvas) SetPixel(x, y int16, col color.RGBA) {
	p := image.Pt(int(x), int(y))
	if !p.In(c.img.Rect) {
		return
	}
	c.img.SetRGBA(p.X, p.Y, col)
}

func (c canvas) Display() error { return nil }

func (c canvas) fill(col color.RGBA) {
	for i := 0; i < len(c.img.Pix); i += 4 {
		c.img.Pix[i+0] = col.R
		c.img.Pix[i+1] = col.G
		c.img.Pix[i+2] = col.B
		c.img.Pix[i+3] = col.A
	}
}
