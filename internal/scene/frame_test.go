package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-playground/assert/v2"
)

func TestComposeWithoutSensor(t *testing.T) {
	f := Compose(Params{
		Width:     800,
		Height:    600,
		ElapsedMs: 0,
		Focused:   true,
		Contacts:  []mgl32.Vec2{{100, 100}, {300, 200}},
	})

	assert.Equal(t, len(f.Shapes), 3)
	assert.Equal(t, f.Shapes[0].Kind, KindIndicator)
	assert.Equal(t, f.Shapes[0].Color, Yellow)
	assert.Equal(t, f.Count(KindContact), 2)
	assert.Equal(t, f.Count(KindGaugeBackground), 0)
	assert.Equal(t, f.Shapes[1].Quad.Center(), mgl32.Vec2{100, 100})
	assert.Equal(t, f.Shapes[2].Color, Green)
	assert.Equal(t, f.Projection, Projection(800, 600))
}

func TestComposeWithSensor(t *testing.T) {
	f := Compose(Params{
		Width:       600,
		Height:      800,
		Axes:        []float32{1, 2, 3},
		ClampGauges: true,
	})

	assert.Equal(t, len(f.Shapes), 7)
	for i := 0; i < 3; i++ {
		assert.Equal(t, f.Shapes[2*i].Kind, KindGaugeBackground)
		assert.Equal(t, f.Shapes[2*i].Color, Black)
		assert.Equal(t, f.Shapes[2*i+1].Kind, KindGaugeForeground)
		assert.Equal(t, f.Shapes[2*i+1].Color, White)
	}
	assert.Equal(t, f.Shapes[6].Kind, KindIndicator)
	assert.Equal(t, f.Shapes[6].Color, Magenta)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, KindContact.String(), "contact")
	assert.Equal(t, Kind(99).String(), "unknown")
}
