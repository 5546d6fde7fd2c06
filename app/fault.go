package app

import (
	"fmt"
	"image/color"
	"strings"
	"unicode/utf8"

	"dash/dashboard/label"
	"dash/hal"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// ShowFault logs err line by line through h and paints it on the display,
// wrapped to the screen width. It returns once the framebuffer has been
// presented.
func ShowFault(h hal.HAL, err error) {
	if h == nil || err == nil {
		return
	}
	if l := h.Logger(); l != nil {
		l.WriteLineString("fault: " + err.Error())
	}
	if fb := framebuffer(h); fb != nil {
		lines := []string{"Dashboard fault:"}
		for _, part := range strings.Split(err.Error(), ": ") {
			if part != "" {
				lines = append(lines, part)
			}
		}
		drawFault(fb, lines)
	}
}

// RecoverFault shows a recovered panic as a fault and halts. Use it as
// "defer app.RecoverFault(h)" at the top of main.
func RecoverFault(h hal.HAL) {
	v := recover()
	if v == nil {
		return
	}
	ShowFault(h, fmt.Errorf("panic: %v", v))
	select {}
}

func drawFault(fb hal.Framebuffer, lines []string) {
	fb.ClearRGB(255, 255, 255)

	font := label.DefaultFont
	fontHeight := int16(font.GetYAdvance())
	fontOffset := fontHeight - fontHeight/4
	_, outboxWidth := tinyfont.LineWidth(font, "0")
	fontWidth := int16(outboxWidth)
	if fontWidth <= 0 || fontHeight <= 0 {
		_ = fb.Present()
		return
	}

	d := fbDisplay{fb: fb}
	fg := color.RGBA{R: 0, G: 0, B: 0, A: 255}

	y := int16(0)
	maxH := int16(fb.Height())
	cols := int16(fb.Width()) / fontWidth
	if cols <= 0 {
		cols = 1
	}

	for _, line := range lines {
		for len(line) > 0 {
			if y+fontHeight > maxH {
				_ = fb.Present()
				return
			}
			chunk, rest := takeRunes(line, cols)
			drawTextLine(d, font, fontWidth, fontOffset, 0, y, chunk, fg)
			y += fontHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = fb.Present()
}

func drawTextLine(
	d fbDisplay,
	font tinyfont.Fonter,
	fontWidth, fontOffset int16,
	x0, y0 int16,
	s string,
	fg color.RGBA,
) {
	drawX := x0
	for _, r := range s {
		tinyfont.DrawChar(d, font, drawX, y0+fontOffset, r, fg)
		drawX += fontWidth
	}
}

// fbDisplay draws tinyfont glyphs straight into an RGB565 framebuffer.
type fbDisplay struct {
	fb hal.Framebuffer
}

var _ drivers.Displayer = fbDisplay{}

func (d fbDisplay) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := d.fb.Buffer()
	if buf == nil {
		return
	}

	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}
	off := iy*d.fb.StrideBytes() + ix*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	pixel := hal.RGB565(c.R, c.G, c.B)
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d fbDisplay) Display() error { return nil }

func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if int64(len(s)) <= int64(n) {
		return s, ""
	}
	var i int
	var count int16
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
