package lifecycle

import (
	"sync"
	"time"

	"github.com/golang/glog"
)

// DeadlineScheduler keeps the next tick deadline for loops that wait on
// their own event source (glfw.WaitEventsTimeout). Overdue ticks are not
// replayed: a late Due moves the deadline one period past now.
type DeadlineScheduler struct {
	period  time.Duration
	next    time.Time
	running bool
	now     func() time.Time
}

func NewDeadlineScheduler(now func() time.Time) *DeadlineScheduler {
	if now == nil {
		now = time.Now
	}
	return &DeadlineScheduler{now: now}
}

func (d *DeadlineScheduler) Start(period time.Duration) {
	d.period = period
	d.next = d.now().Add(period)
	d.running = true
}

func (d *DeadlineScheduler) Stop() {
	d.running = false
}

func (d *DeadlineScheduler) Running() bool {
	return d.running
}

// Wait returns how long until the next tick, and false when stopped.
func (d *DeadlineScheduler) Wait() (time.Duration, bool) {
	if !d.running {
		return 0, false
	}
	w := d.next.Sub(d.now())
	if w < 0 {
		w = 0
	}
	return w, true
}

// Due reports whether a tick is due and, if so, schedules the next one.
func (d *DeadlineScheduler) Due() bool {
	if !d.running {
		return false
	}
	now := d.now()
	if now.Before(d.next) {
		return false
	}
	d.next = d.next.Add(d.period)
	if !d.next.After(now) {
		d.next = now.Add(d.period)
	}
	return true
}

// Sender is satisfied by golang.org/x/mobile/app.App.
type Sender interface {
	Send(event interface{})
}

// TickEvent is posted into the app event queue by SenderScheduler.
type TickEvent struct {
	At time.Time
}

// SenderScheduler posts a TickEvent per period from a ticker goroutine, so
// ticks are serialized with every other app event. time.Ticker drops ticks
// for a slow receiver.
type SenderScheduler struct {
	sender Sender

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

func NewSenderScheduler(s Sender) *SenderScheduler {
	return &SenderScheduler{sender: s}
}

// Start launches the ticker. A non-positive period is refused and logged.
func (s *SenderScheduler) Start(period time.Duration) {
	if period <= 0 {
		glog.Errorf("[lifecycle]tick period %v is not positive, not ticking", period)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return
	}
	stop := make(chan struct{})
	done := make(chan struct{})
	s.stop, s.done = stop, done

	go func() {
		defer close(done)
		t := time.NewTicker(period)
		defer t.Stop()
		for {
			select {
			case <-stop:
				return
			case at := <-t.C:
				s.sender.Send(TickEvent{At: at})
			}
		}
	}()
}

// Stop ends the ticker goroutine and waits for it to exit. A TickEvent
// already queued may still arrive.
func (s *SenderScheduler) Stop() {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	s.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
}
