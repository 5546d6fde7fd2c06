//go:build tinygo && baremetal && picocalc

package hal

import (
	"errors"
	"machine"
	"time"
)

// panelPins is the PicoCalc wiring of the ILI9488 panel on SPI1.
var panelPins = struct {
	sck, sdo, sdi, cs, dc, rst machine.Pin
	hz                         uint32
}{
	sck: machine.GP10, sdo: machine.GP11, sdi: machine.GP12,
	cs: machine.GP13, dc: machine.GP14, rst: machine.GP15,
	hz: 40_000_000,
}

// ili9488 drives the panel in 16bpp mode. It keeps a copy of the last
// presented frame so Present can skip rows that did not change.
type ili9488 struct {
	spi machine.SPI
	cs  machine.Pin
	dc  machine.Pin
	rst machine.Pin

	txBuf []byte
	last  []byte
}

func initILI9488() (*ili9488, error) {
	if machine.SPI1 == nil {
		return nil, errors.New("SPI1 unavailable")
	}
	p := panelPins
	machine.SPI1.Configure(machine.SPIConfig{
		SCK:       p.sck,
		SDO:       p.sdo,
		SDI:       p.sdi,
		Frequency: p.hz,
	})

	lcd := &ili9488{
		spi:   *machine.SPI1,
		cs:    p.cs,
		dc:    p.dc,
		rst:   p.rst,
		txBuf: make([]byte, 4096),
	}
	for _, pin := range []machine.Pin{lcd.cs, lcd.dc, lcd.rst} {
		pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
		pin.High()
	}

	lcd.reset()
	lcd.init()
	return lcd, nil
}

func (d *ili9488) reset() {
	d.rst.Low()
	time.Sleep(64 * time.Millisecond)
	d.rst.High()
	time.Sleep(140 * time.Millisecond)
}

func (d *ili9488) init() {
	d.cmd(0xC0, 0x17, 0x15)             // PWCTRL1
	d.cmd(0xC1, 0x41)                   // PWCTRL2
	d.cmd(0xC5, 0x00, 0x12, 0x80, 0x40) // VMCTRL
	d.cmd(0x3A, 0x55)                   // COLMOD: 16bpp
	d.cmd(0xB1, 0xA0, 0x11)             // FRMCTRL1
	d.cmd(0xB6, 0x02, 0x22, 0x27)       // DISCTRL (320 lines)
	d.cmd(0x21)                         // INVON
	d.cmd(0x36, 0x40|0x04|0x08)         // MADCTL: MX|MH|BGR
	d.cmd(0x11)                         // SLPOUT
	time.Sleep(120 * time.Millisecond)
	d.cmd(0x29) // DISPON
}

func (d *ili9488) cmd(cmd byte, data ...byte) {
	d.cs.Low()
	d.dc.Low()
	d.spi.Tx([]byte{cmd}, nil)
	d.dc.High()
	if len(data) > 0 {
		d.spi.Tx(data, nil)
	}
	d.cs.High()
}

func (d *ili9488) setWindow(x0, y0, x1, y1 uint16) {
	d.cmd(0x2A, byte(x0>>8), byte(x0), byte(x1>>8), byte(x1))
	d.cmd(0x2B, byte(y0>>8), byte(y0), byte(y1>>8), byte(y1))
	d.cmd(0x2C)
}

// presentChanged sends the smallest band of rows that differs from the
// previously presented frame.
func (d *ili9488) presentChanged(buf []byte, w, h int) error {
	stride := w * 2
	if w <= 0 || h <= 0 || len(buf) < stride*h {
		return errors.New("invalid framebuffer")
	}
	if len(d.last) != stride*h {
		d.last = make([]byte, stride*h)
		return d.blitRows(buf, w, 0, h)
	}

	y0, y1 := -1, -1
	for y := 0; y < h; y++ {
		if string(buf[y*stride:(y+1)*stride]) != string(d.last[y*stride:(y+1)*stride]) {
			if y0 < 0 {
				y0 = y
			}
			y1 = y + 1
		}
	}
	if y0 < 0 {
		return nil
	}
	return d.blitRows(buf, w, y0, y1)
}

// blitRows streams rows [y0, y1) of a little-endian RGB565 buffer.
func (d *ili9488) blitRows(buf []byte, w, y0, y1 int) error {
	stride := w * 2
	d.setWindow(0, uint16(y0), uint16(w-1), uint16(y1-1))

	d.cs.Low()
	d.dc.High()

	chunk := d.txBuf[:len(d.txBuf)&^1]
	end := y1 * stride
	for off := y0 * stride; off < end; {
		n := min(len(chunk), end-off)
		src := buf[off : off+n]
		for i := 0; i < n; i += 2 {
			// The panel expects big-endian pixels.
			chunk[i] = src[i+1]
			chunk[i+1] = src[i]
		}
		d.spi.Tx(chunk[:n], nil)
		off += n
	}
	d.cs.High()

	copy(d.last[y0*stride:end], buf[y0*stride:end])
	return nil
}
