//go:build !tinygo && bootdebug

package app

import "dash/hal"

var bootDiagLogger hal.Logger

func bootDiagSetStep(msg string) {
	if bootDiagLogger != nil {
		bootDiagLogger.WriteLineString("bootdiag: " + msg)
	}
}

func bootDiagStart(h hal.HAL) { bootDiagLogger = h.Logger() }
