//go:build !gles && !tinygo

package main

import (
	"context"
	"errors"

	"dash/config"
)

func runGLES(context.Context, config.Config) error {
	return errors.New("gles backend not built in; rebuild with -tags gles")
}
