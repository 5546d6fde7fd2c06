//go:build tinygo && baremetal && picocalc

package hal

type picoCalcHAL struct {
	logger *uartLogger
	fb     Framebuffer
}

// New returns a PicoCalc HAL implementation (Pico/Pico2 on the PicoCalc carrier).
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
func New() HAL {
	logger := newUARTLogger()

	var fb Framebuffer
	if disp, err := newPicoCalcDisplay(); err == nil {
		fb = disp
	} else {
		logger.WriteLineString("hal: display: " + err.Error())
		fb = newStubFramebuffer(panelWidth, panelHeight)
	}
	return &picoCalcHAL{logger: logger, fb: fb}
}

func (h *picoCalcHAL) Logger() Logger   { return h.logger }
func (h *picoCalcHAL) Display() Display { return tinyGoDisplay{fb: h.fb} }

const (
	panelWidth  = 320
	panelHeight = 320
)

type picoCalcFramebuffer struct {
	w      int
	h      int
	stride int
	buf    []byte

	lcd *ili9488
}

func newPicoCalcDisplay() (*picoCalcFramebuffer, error) {
	lcd, err := initILI9488()
	if err != nil {
		return nil, err
	}
	return &picoCalcFramebuffer{
		w:      panelWidth,
		h:      panelHeight,
		stride: panelWidth * 2,
		buf:    make([]byte, panelWidth*panelHeight*2),
		lcd:    lcd,
	}, nil
}

func (f *picoCalcFramebuffer) Width() int          { return f.w }
func (f *picoCalcFramebuffer) Height() int         { return f.h }
func (f *picoCalcFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *picoCalcFramebuffer) StrideBytes() int    { return f.stride }
func (f *picoCalcFramebuffer) Buffer() []byte      { return f.buf }

func (f *picoCalcFramebuffer) ClearRGB(r, g, b uint8) { clearRGB565(f.buf, r, g, b) }

// Present streams only the rows that changed since the previous frame.
func (f *picoCalcFramebuffer) Present() error {
	return f.lcd.presentChanged(f.buf, f.w, f.h)
}
