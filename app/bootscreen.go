//go:build bootdebug

package app

import (
	"image/color"
	"sync"

	"dash/dashboard/label"
	"dash/hal"
	"dash/internal/buildinfo"

	"tinygo.org/x/tinyfont"
)

var bootDiagOnce sync.Once

// bootScreen reports a setup step on the log and the display so a board
// that hangs during start-up shows where.
func bootScreen(h hal.HAL, msg string) {
	if h == nil {
		return
	}
	bootDiagOnce.Do(func() { bootDiagStart(h) })
	bootDiagSetStep(msg)

	fb := framebuffer(h)
	if fb == nil {
		return
	}
	fb.ClearRGB(0, 0, 0)

	d := fbDisplay{fb: fb}
	fg := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	tinyfont.WriteLine(d, label.DefaultFont, 0, 12, "Dashboard "+buildinfo.Short(), fg)
	tinyfont.WriteLine(d, label.DefaultFont, 0, 28, "boot: "+msg, fg)
	_ = fb.Present()
}
