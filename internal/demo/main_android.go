//go:build android

package demo

import (
	"github.com/golang/glog"
	"golang.org/x/mobile/app"
	mlifecycle "golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"
	"golang.org/x/mobile/exp/app/debug"
	"golang.org/x/mobile/exp/gl/glutil"
	mobsensor "golang.org/x/mobile/exp/sensor"
	"golang.org/x/mobile/gl"

	"gles2test/internal/config"
	"gles2test/internal/input"
	"gles2test/internal/lifecycle"
	"gles2test/internal/mobilegl"
	"gles2test/internal/render"
	"gles2test/internal/sensor"
)

// mobileSurface is exposed between the visible crossings, once a size is
// known.
type mobileSurface struct {
	visible bool
	size    size.Event
}

func (s *mobileSurface) Exposed() bool {
	return s.visible && s.size.WidthPx > 0 && s.size.HeightPx > 0
}

type mobileApp struct {
	cfg     config.Config
	opts    render.Options
	tracker *input.Tracker
	accel   *sensor.Accelerometer
	samples sensor.Sampler

	rend   *render.Renderer
	images *glutil.Images
	fps    *debug.FPS
	surf   mobileSurface
	ctl    *lifecycle.Controller
}

// Run runs the x/mobile event loop until the activity is destroyed.
func Run(cfg config.Config) error {
	opts, tracker, err := newCore(cfg)
	if err != nil {
		return err
	}
	m := &mobileApp{
		cfg:     cfg,
		opts:    opts,
		tracker: tracker,
		samples: sensor.None{},
	}
	if cfg.Accelerometer {
		m.accel = sensor.NewAccelerometer(cfg.SensorInterval)
		m.samples = m.accel
	}

	app.Main(func(a app.App) {
		if m.accel != nil {
			mobsensor.Notify(a)
		}
		sched := lifecycle.NewSenderScheduler(a)
		m.ctl = lifecycle.NewController(sched, &m.surf, func(st lifecycle.RenderState) {
			m.render(a, st)
		}, cfg.TickPeriod())

		for e := range a.Events() {
			switch e := a.Filter(e).(type) {
			case mlifecycle.Event:
				if m.onLifecycle(e) {
					sched.Stop()
					return
				}
			case size.Event:
				m.surf.size = e
				glog.Infof("[app]size: %dx%d", e.WidthPx, e.HeightPx)
			case touch.Event:
				m.tracker.OnPointerEvent(input.FromTouch(e))
			case mobsensor.Event:
				if m.accel != nil {
					m.accel.Handle(e)
				}
			case lifecycle.TickEvent:
				// a tick queued before Stop may still arrive
				if m.ctl.State() == lifecycle.Running {
					m.ctl.Tick()
				}
			case paint.Event:
				if e.External && m.ctl.State() == lifecycle.Stopped {
					m.ctl.Tick()
				}
			}
		}
	})
	return nil
}

// onLifecycle handles stage crossings and reports whether the app is dying.
// Focus is dropped before the surface goes away so the unfocused frame can
// still be drawn, and gained only after the surface exists.
func (m *mobileApp) onLifecycle(e mlifecycle.Event) bool {
	if e.Crosses(mlifecycle.StageFocused) == mlifecycle.CrossOff {
		m.ctl.FocusOut()
	}

	switch e.Crosses(mlifecycle.StageVisible) {
	case mlifecycle.CrossOn:
		glctx, ok := e.DrawContext.(gl.Context)
		if !ok {
			break
		}
		m.attach(glctx)
		m.ctl.Shown()
	case mlifecycle.CrossOff:
		m.detach()
	}

	if e.Crosses(mlifecycle.StageFocused) == mlifecycle.CrossOn {
		m.ctl.FocusIn()
	}
	return e.To == mlifecycle.StageDead
}

func (m *mobileApp) attach(glctx gl.Context) {
	m.rend = render.NewRenderer(mobilegl.New(glctx), m.opts)
	if m.cfg.ShowFPS {
		m.images = glutil.NewImages(glctx)
		m.fps = debug.NewFPS(m.images)
	}
	if m.accel != nil {
		if err := m.accel.Start(); err != nil {
			glog.Warningf("[sensor]%v; gauges disabled", err)
		}
	}
	m.surf.visible = true
}

func (m *mobileApp) detach() {
	m.surf.visible = false
	if m.accel != nil {
		if err := m.accel.Stop(); err != nil {
			glog.Warningf("[sensor]%v", err)
		}
	}
	if m.fps != nil {
		m.fps.Release()
		m.images.Release()
		m.fps, m.images = nil, nil
	}
	if m.rend != nil {
		m.rend.Release()
		m.rend = nil
	}
	// touches in flight never deliver their end event
	m.tracker.Reset()
}

func (m *mobileApp) render(a app.App, st lifecycle.RenderState) {
	if m.rend == nil {
		return
	}
	sz := m.surf.size
	sample, ok := m.samples.Latest()
	drawn, err := m.rend.RenderFrame(render.Size{Width: sz.WidthPx, Height: sz.HeightPx}, st.ElapsedMs, st.Focused, m.tracker.Contacts(), sample, ok)
	if err != nil {
		glog.Fatalf("[render]%v", err)
	}
	if !drawn {
		return
	}
	if m.fps != nil {
		m.fps.Draw(sz)
	}
	a.Publish()
}
