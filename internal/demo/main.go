//go:build !android

package demo

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/golang/glog"

	"gles2test/internal/config"
	"gles2test/internal/gles"
	"gles2test/internal/input"
	"gles2test/internal/lifecycle"
	"gles2test/internal/render"
	"gles2test/internal/sensor"
)

// Run opens the window and runs the event loop until it is closed. Desktop
// builds have no accelerometer, so gauges are never drawn.
func Run(cfg config.Config) error {
	runtime.LockOSThread()

	window, err := initWindow(cfg.Window)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gles.Init(); err != nil {
		return err
	}
	glog.Infof("[app]GL %s", gles.Version())

	opts, tracker, err := newCore(cfg)
	if err != nil {
		return err
	}
	rend := render.NewRenderer(gles.New(), opts)
	defer rend.Release()

	var samples sensor.Sampler = sensor.None{}
	var renderErr error
	sched := lifecycle.NewDeadlineScheduler(nil)
	ctl := lifecycle.NewController(sched, windowSurface{window}, func(st lifecycle.RenderState) {
		window.MakeContextCurrent()
		fbW, fbH := window.GetFramebufferSize()
		sample, ok := samples.Latest()
		drawn, err := rend.RenderFrame(render.Size{Width: fbW, Height: fbH}, st.ElapsedMs, st.Focused, tracker.Contacts(), sample, ok)
		if err != nil {
			renderErr = err
			window.SetShouldClose(true)
			return
		}
		if drawn {
			window.SwapBuffers()
		}
	}, cfg.TickPeriod())

	mouse := input.NewMouse()
	updateScale := func() {
		winW, winH := window.GetSize()
		fbW, fbH := window.GetFramebufferSize()
		mouse.SetScale(winW, winH, fbW, fbH)
	}
	updateScale()

	window.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		if focused {
			ctl.FocusIn()
		} else {
			ctl.FocusOut()
		}
	})
	window.SetIconifyCallback(func(_ *glfw.Window, iconified bool) {
		glog.Infof("[app]iconified: %v", iconified)
	})
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		glog.Infof("[app]size: %dx%d", w, h)
		updateScale()
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, b glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		mouse.SetCursor(w.GetCursorPos())
		switch action {
		case glfw.Press:
			tracker.OnPointerEvent(mouse.Button(int(b), true))
		case glfw.Release:
			tracker.OnPointerEvent(mouse.Button(int(b), false))
		}
	})
	window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		tracker.Apply(mouse.Move(x, y))
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	window.Show()
	fbW, fbH := window.GetFramebufferSize()
	glog.Infof("[app]size: %dx%d", fbW, fbH)
	ctl.Shown()
	if window.GetAttrib(glfw.Focused) == glfw.True {
		ctl.FocusIn()
	}

	for !window.ShouldClose() {
		if wait, running := sched.Wait(); !running {
			glfw.WaitEvents()
		} else if wait > 0 {
			glfw.WaitEventsTimeout(wait.Seconds())
		} else {
			glfw.PollEvents()
		}
		if sched.Due() {
			ctl.Tick()
		}
	}
	glog.Infof("[app]closed after %d frames, %d ticks dropped", rend.Frames(), ctl.Dropped())
	return renderErr
}
