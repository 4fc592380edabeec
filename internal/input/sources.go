package input

import (
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/mobile/event/touch"
)

// FromTouch converts an x/mobile touch event. Sequences become contact ids.
func FromTouch(e touch.Event) Event {
	ev := Event{
		ID:       int(e.Sequence),
		Position: mgl32.Vec2{e.X, e.Y},
	}
	switch e.Type {
	case touch.TypeBegin:
		ev.Phase = PhasePressed
	case touch.TypeMove:
		ev.Phase = PhaseMoved
	case touch.TypeEnd:
		ev.Phase = PhaseReleased
	default:
		ev.Phase = PhaseOther
	}
	return ev
}

// Mouse turns button and cursor updates into contact events: each held
// button is one contact whose id is the button number. Positions are in
// window coordinates and scaled into surface pixels.
type Mouse struct {
	held   map[int]bool
	cursor mgl32.Vec2
	scale  mgl32.Vec2
}

func NewMouse() *Mouse {
	return &Mouse{
		held:  make(map[int]bool),
		scale: mgl32.Vec2{1, 1},
	}
}

// SetScale sets the framebuffer-to-window ratio, which differs from 1 on
// high-DPI displays.
func (m *Mouse) SetScale(winW, winH, fbW, fbH int) {
	if winW <= 0 || winH <= 0 {
		return
	}
	m.scale = mgl32.Vec2{float32(fbW) / float32(winW), float32(fbH) / float32(winH)}
}

func (m *Mouse) surface(x, y float64) mgl32.Vec2 {
	return mgl32.Vec2{float32(x) * m.scale.X(), float32(y) * m.scale.Y()}
}

// SetCursor records the cursor position without emitting events. Front ends
// call it before Button, since a click may arrive before any motion.
func (m *Mouse) SetCursor(x, y float64) {
	m.cursor = m.surface(x, y)
}

// Button reports a press or release of the given button at the last cursor
// position. Repeated presses of a held button are stationary.
func (m *Mouse) Button(button int, down bool) Event {
	ev := Event{ID: button, Position: m.cursor}
	switch {
	case down && m.held[button]:
		ev.Phase = PhaseStationary
	case down:
		m.held[button] = true
		ev.Phase = PhasePressed
	case m.held[button]:
		delete(m.held, button)
		ev.Phase = PhaseReleased
	default:
		ev.Phase = PhaseOther
	}
	return ev
}

// Move records the cursor and returns one Moved event per held button.
func (m *Mouse) Move(x, y float64) []Event {
	m.SetCursor(x, y)
	if len(m.held) == 0 {
		return nil
	}
	out := make([]Event, 0, len(m.held))
	for b := range m.held {
		out = append(out, Event{ID: b, Position: m.cursor, Phase: PhaseMoved})
	}
	return out
}
