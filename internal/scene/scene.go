// Package scene computes the geometry of one frame: projection, gauges,
// the rotating indicator and one marker per active contact. It issues no GL
// calls; render feeds the result to a backend.
package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/samber/lo"
)

// Offset is the half side of every square, in surface pixels.
const Offset = 40

// Indicator animation.
const (
	DegreesPerMs = 0.1
	IndicatorX   = Offset * 2
	IndicatorY   = Offset * 2
)

// Gauge layout (pixels) and normalization.
const (
	GaugeHeight  = 40.0
	GaugeSpacing = GaugeHeight * 3 / 4 // 30
	GaugeBorder  = 4.0
	Gravity      = 9.81 // m/s², full-scale reading
)

type Color struct {
	R, G, B, A float32
}

var (
	Red     = Color{1, 0, 0, 1}
	Black   = Color{0, 0, 0, 1}
	White   = Color{1, 1, 1, 1}
	Yellow  = Color{1, 1, 0, 1}
	Magenta = Color{1, 0, 1, 1}
	Green   = Color{0, 1, 0, 1}
)

// ClearColor fills the surface before anything else is drawn.
var ClearColor = Red

// Quad holds triangle-strip vertices in top-left, top-right, bottom-left,
// bottom-right order.
type Quad [4]mgl32.Vec2

// Flat returns the vertices as x0,y0,x1,y1,... for attribute upload.
func (q Quad) Flat() []float32 {
	return []float32{
		q[0].X(), q[0].Y(),
		q[1].X(), q[1].Y(),
		q[2].X(), q[2].Y(),
		q[3].X(), q[3].Y(),
	}
}

// Center is the mean of the four vertices.
func (q Quad) Center() mgl32.Vec2 {
	return q[0].Add(q[1]).Add(q[2]).Add(q[3]).Mul(0.25)
}

// Rect returns the axis-aligned quad spanning (x0,y0)-(x1,y1).
func Rect(x0, y0, x1, y1 float32) Quad {
	return Quad{
		{x0, y0},
		{x1, y0},
		{x0, y1},
		{x1, y1},
	}
}

// Square returns an axis-aligned square with the given half side.
func Square(center mgl32.Vec2, half float32) Quad {
	return Rect(center.X()-half, center.Y()-half, center.X()+half, center.Y()+half)
}

type Kind int

const (
	KindGaugeBackground Kind = iota
	KindGaugeForeground
	KindIndicator
	KindContact
)

func (k Kind) String() string {
	switch k {
	case KindGaugeBackground:
		return "gauge-bg"
	case KindGaugeForeground:
		return "gauge-fg"
	case KindIndicator:
		return "indicator"
	case KindContact:
		return "contact"
	}
	return "unknown"
}

// Shape is one solid-colored quad.
type Shape struct {
	Kind  Kind
	Quad  Quad
	Color Color
}

// Projection maps (0,0)-(w,h) to clip space with the origin at the top-left.
func Projection(w, h int) mgl32.Mat4 {
	return mgl32.Ortho(0, float32(w), float32(h), 0, -1, 1)
}

// Angle returns the indicator rotation in degrees, in [0, 360).
func Angle(elapsedMs float64) float64 {
	a := math.Mod(elapsedMs*DegreesPerMs, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// Indicator returns the rotating square for the given elapsed time.
func Indicator(elapsedMs float64) Quad {
	rot := mgl32.Rotate2D(mgl32.DegToRad(float32(Angle(elapsedMs))))
	center := mgl32.Vec2{IndicatorX, IndicatorY}
	var q Quad
	for i, corner := range Square(mgl32.Vec2{}, Offset) {
		q[i] = center.Add(rot.Mul2x1(corner))
	}
	return q
}

// IndicatorColor is yellow while the window has focus.
func IndicatorColor(focused bool) Color {
	if focused {
		return Yellow
	}
	return Magenta
}

// ContactMarker is the 80x80 square centered on a contact.
func ContactMarker(pos mgl32.Vec2) Quad {
	return Square(pos, Offset)
}

// Gauge holds the two quads visualizing one axis.
type Gauge struct {
	Background Quad
	Foreground Quad
}

// Gauges lays out one gauge per axis value. Readings beyond ±Gravity are
// clamped to the bar unless overflow is allowed.
func Gauges(w, h int, values []float32, clamp bool) []Gauge {
	half := float32(w) / 3
	x := float32(w) / 2
	y := float32(h)/2 - 3*GaugeHeight - 2*GaugeSpacing

	out := make([]Gauge, 0, len(values))
	for _, v := range values {
		if clamp {
			v = lo.Clamp(v, -Gravity, Gravity)
		}
		length := (half - 2*GaugeBorder) * v / Gravity
		out = append(out, Gauge{
			Background: Rect(x-half, y, x+half, y+GaugeHeight),
			Foreground: Rect(x+GaugeBorder, y+GaugeBorder, x+GaugeBorder+length, y+GaugeHeight-GaugeBorder),
		})
		y += GaugeHeight + GaugeSpacing
	}
	return out
}
