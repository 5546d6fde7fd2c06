//go:build gles && !tinygo

package gles

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// ErrClosed is returned by Swap once the user closed the window.
var ErrClosed = errors.New("gles: window closed")

// Window is a glfw window with an OpenGL ES 2.0 context created through
// EGL. It implements app.Surface.
type Window struct {
	win *glfw.Window
}

// NewWindow opens the window and makes its context current on the calling
// goroutine, which stays locked to its OS thread until Close.
func NewWindow(title string, width, height int) (*Window, error) {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("gles: init glfw: %w", err)
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLESAPI)
	glfw.WindowHint(glfw.ContextCreationAPI, glfw.EGLContextAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 0)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("gles: create window: %w", err)
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)
	return &Window{win: win}, nil
}

// Size returns the framebuffer size in pixels.
func (w *Window) Size() (int, int) { return w.win.GetFramebufferSize() }

func (w *Window) MakeCurrent() error {
	w.win.MakeContextCurrent()
	return nil
}

func (w *Window) Swap() error {
	w.win.SwapBuffers()
	glfw.PollEvents()
	if w.win.ShouldClose() {
		return ErrClosed
	}
	return nil
}

func (w *Window) Close() {
	w.win.Destroy()
	glfw.Terminate()
	runtime.UnlockOSThread()
}
