//go:build !android

package demo

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"

	"gles2test/internal/config"
)

func initWindow(cfg config.Window) (*glfw.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLESAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 0)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	// Shown explicitly so the first show is observable.
	glfw.WindowHint(glfw.Visible, glfw.False)

	width, height := cfg.Width, cfg.Height
	var monitor *glfw.Monitor
	if cfg.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()
		width, height = mode.Width, mode.Height
	}

	window, err := glfw.CreateWindow(width, height, cfg.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	// The tick scheduler paces frames.
	glfw.SwapInterval(0)

	return window, nil
}

// windowSurface reports the glfw window as exposed while it is visible, not
// iconified and has a non-empty framebuffer.
type windowSurface struct {
	window *glfw.Window
}

func (s windowSurface) Exposed() bool {
	if s.window.GetAttrib(glfw.Visible) != glfw.True || s.window.GetAttrib(glfw.Iconified) == glfw.True {
		return false
	}
	w, h := s.window.GetFramebufferSize()
	return w > 0 && h > 0
}
