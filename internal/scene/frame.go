package scene

import "github.com/go-gl/mathgl/mgl32"

// Params is everything one frame depends on.
type Params struct {
	Width, Height int
	ElapsedMs     float64
	Focused       bool

	// Contacts are marker centers in draw order.
	Contacts []mgl32.Vec2

	// Axes is nil when no sensor reading is available.
	Axes        []float32
	ClampGauges bool
}

// Frame is the projection plus the shapes in draw order.
type Frame struct {
	Projection mgl32.Mat4
	Shapes     []Shape
}

// Compose lays out gauges first, then the indicator, then contact markers.
func Compose(p Params) Frame {
	f := Frame{
		Projection: Projection(p.Width, p.Height),
		Shapes:     make([]Shape, 0, 2*len(p.Axes)+1+len(p.Contacts)),
	}
	for _, g := range Gauges(p.Width, p.Height, p.Axes, p.ClampGauges) {
		f.Shapes = append(f.Shapes,
			Shape{Kind: KindGaugeBackground, Quad: g.Background, Color: Black},
			Shape{Kind: KindGaugeForeground, Quad: g.Foreground, Color: White},
		)
	}
	f.Shapes = append(f.Shapes, Shape{
		Kind:  KindIndicator,
		Quad:  Indicator(p.ElapsedMs),
		Color: IndicatorColor(p.Focused),
	})
	for _, c := range p.Contacts {
		f.Shapes = append(f.Shapes, Shape{Kind: KindContact, Quad: ContactMarker(c), Color: Green})
	}
	return f
}

// Count returns how many shapes of kind k the frame holds.
func (f Frame) Count(k Kind) int {
	n := 0
	for _, s := range f.Shapes {
		if s.Kind == k {
			n++
		}
	}
	return n
}
