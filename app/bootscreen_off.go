//go:build !bootdebug

package app

import "dash/hal"

func bootScreen(hal.HAL, string) {}
