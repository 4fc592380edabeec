// Package lifecycle starts and stops the periodic render tick as the window
// is shown, gains focus and loses focus.
package lifecycle

import (
	"time"

	"github.com/golang/glog"
)

type State int

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// Scheduler delivers Tick calls on the event loop at a fixed period.
type Scheduler interface {
	Start(period time.Duration)
	Stop()
}

// Surface reports whether the drawable is currently visible.
type Surface interface {
	Exposed() bool
}

// RenderState is handed to every render pass.
type RenderState struct {
	ElapsedMs float64
	Focused   bool
}

type RenderFunc func(RenderState)

// Controller is driven by window events on a single thread.
type Controller struct {
	scheduler Scheduler
	surface   Surface
	render    RenderFunc
	period    time.Duration

	now   func() time.Time
	start time.Time

	state   State
	focused bool
	initial bool

	dropped uint64
}

func NewController(s Scheduler, surface Surface, render RenderFunc, period time.Duration) *Controller {
	c := &Controller{
		scheduler: s,
		surface:   surface,
		render:    render,
		period:    period,
		now:       time.Now,
		initial:   true,
	}
	c.start = c.now()
	return c
}

// SetClock replaces the time source and restarts the elapsed counter.
func (c *Controller) SetClock(now func() time.Time) {
	c.now = now
	c.start = now()
}

// Shown handles the first show of the window; later calls do nothing.
func (c *Controller) Shown() {
	if !c.initial {
		return
	}
	glog.Infof("[lifecycle]initial show")
	c.startTicking()
	c.initial = false
}

func (c *Controller) FocusIn() {
	glog.Infof("[lifecycle]got focus")
	c.startTicking()
	c.focused = true
}

// FocusOut stops ticking and renders the unfocused state once before
// returning.
func (c *Controller) FocusOut() {
	glog.Infof("[lifecycle]lost focus")
	if c.state == Running {
		c.scheduler.Stop()
		c.state = Stopped
	}
	c.focused = false
	c.Tick()
}

// Tick renders one frame if the surface is exposed. Otherwise the tick is
// dropped.
func (c *Controller) Tick() {
	if !c.surface.Exposed() {
		c.dropped++
		glog.V(1).Infof("[lifecycle]not exposed yet, tick dropped")
		return
	}
	c.render(c.RenderState())
}

func (c *Controller) startTicking() {
	if c.state == Running {
		return
	}
	c.scheduler.Start(c.period)
	c.state = Running
}

func (c *Controller) RenderState() RenderState {
	return RenderState{
		ElapsedMs: float64(c.now().Sub(c.start)) / float64(time.Millisecond),
		Focused:   c.focused,
	}
}

func (c *Controller) State() State {
	return c.state
}

func (c *Controller) Focused() bool {
	return c.focused
}

// Dropped counts ticks skipped because the surface was not exposed.
func (c *Controller) Dropped() uint64 {
	return c.dropped
}

func (c *Controller) Period() time.Duration {
	return c.period
}
