// Package input tracks active pointer contacts.
package input

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/golang/glog"
	"github.com/samber/lo"
)

type Phase int

const (
	PhasePressed Phase = iota
	PhaseMoved
	PhaseStationary
	PhaseReleased
	PhaseOther
)

func (p Phase) String() string {
	switch p {
	case PhasePressed:
		return "pressed"
	case PhaseMoved:
		return "moved"
	case PhaseStationary:
		return "stationary"
	case PhaseReleased:
		return "released"
	}
	return "other"
}

// StationaryPolicy decides whether a stationary event refreshes the stored
// position.
type StationaryPolicy int

const (
	StationaryIgnore StationaryPolicy = iota
	StationaryUpdate
)

// Event is one pointer update in surface pixels.
type Event struct {
	ID       int
	Position mgl32.Vec2
	Phase    Phase
}

type Contact struct {
	ID       int
	Position mgl32.Vec2
}

type handler func(Event)

// Tracker owns the set of pressed contacts. Not safe for concurrent use; it
// lives on the event loop.
type Tracker struct {
	contacts map[int]mgl32.Vec2
	handlers map[Phase]handler

	// OnPress, when set, runs after a press has been recorded.
	OnPress func(Contact)
}

func NewTracker(policy StationaryPolicy) *Tracker {
	t := &Tracker{
		contacts: make(map[int]mgl32.Vec2),
	}
	t.handlers = map[Phase]handler{
		PhasePressed:    t.press,
		PhaseMoved:      t.upsert,
		PhaseStationary: t.ignore,
		PhaseReleased:   t.release,
	}
	if policy == StationaryUpdate {
		t.handlers[PhaseStationary] = t.upsert
	}
	return t
}

// OnPointerEvent applies a single event.
func (t *Tracker) OnPointerEvent(e Event) {
	glog.V(1).Infof("[input]%s %d at (%.1f, %.1f)", e.Phase, e.ID, e.Position.X(), e.Position.Y())
	h, ok := t.handlers[e.Phase]
	if !ok {
		glog.Warningf("[input]unhandled phase %d for contact %d", int(e.Phase), e.ID)
		return
	}
	h(e)
}

// Apply applies a batch in order.
func (t *Tracker) Apply(batch []Event) {
	for _, e := range batch {
		t.OnPointerEvent(e)
	}
}

func (t *Tracker) press(e Event) {
	t.upsert(e)
	if t.OnPress != nil {
		t.OnPress(Contact{ID: e.ID, Position: e.Position})
	}
}

func (t *Tracker) upsert(e Event) {
	t.contacts[e.ID] = e.Position
}

func (t *Tracker) ignore(Event) {}

func (t *Tracker) release(e Event) {
	delete(t.contacts, e.ID)
}

// Contacts returns a snapshot ordered by id.
func (t *Tracker) Contacts() []Contact {
	ids := lo.Keys(t.contacts)
	slices.Sort(ids)
	return lo.Map(ids, func(id int, _ int) Contact {
		return Contact{ID: id, Position: t.contacts[id]}
	})
}

// Positions returns contact positions ordered by id.
func (t *Tracker) Positions() []mgl32.Vec2 {
	return lo.Map(t.Contacts(), func(c Contact, _ int) mgl32.Vec2 {
		return c.Position
	})
}

func (t *Tracker) Position(id int) (mgl32.Vec2, bool) {
	p, ok := t.contacts[id]
	return p, ok
}

func (t *Tracker) Len() int {
	return len(t.contacts)
}

// Reset drops every contact, e.g. when the surface goes away mid-gesture.
func (t *Tracker) Reset() {
	clear(t.contacts)
}
