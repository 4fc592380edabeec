package render

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-playground/assert/v2"

	"gles2test/internal/input"
	"gles2test/internal/scene"
	"gles2test/internal/sensor"
)

type drawCall struct {
	Color scene.Color
	Quad  scene.Quad
}

type recordingBackend struct {
	buildErrs  []error
	builds     int
	released   int
	viewport   Size
	clear      scene.Color
	projection mgl32.Mat4
	calls      []drawCall
	color      scene.Color
	ended      bool
	ops        []string
}

func (b *recordingBackend) Build(vs, fs string) error {
	b.builds++
	b.ops = append(b.ops, "build")
	if len(b.buildErrs) > 0 {
		err := b.buildErrs[0]
		b.buildErrs = b.buildErrs[1:]
		return err
	}
	return nil
}

func (b *recordingBackend) Viewport(w, h int) {
	b.viewport = Size{w, h}
	b.ops = append(b.ops, "viewport")
}

func (b *recordingBackend) Clear(c scene.Color) {
	b.clear = c
	b.calls = nil
	b.ended = false
	b.ops = append(b.ops, "clear")
}

func (b *recordingBackend) Begin(p mgl32.Mat4) {
	b.projection = p
	b.ops = append(b.ops, "begin")
}

func (b *recordingBackend) SetColor(c scene.Color) { b.color = c }

func (b *recordingBackend) DrawQuad(q scene.Quad) {
	b.calls = append(b.calls, drawCall{Color: b.color, Quad: q})
}

func (b *recordingBackend) End() {
	b.ended = true
	b.ops = append(b.ops, "end")
}

func (b *recordingBackend) Release() { b.released++ }

func (b *recordingBackend) withColor(c scene.Color) []drawCall {
	var out []drawCall
	for _, d := range b.calls {
		if d.Color == c {
			out = append(out, d)
		}
	}
	return out
}

var screen = Size{800, 600}

func TestRenderFrameOrder(t *testing.T) {
	b := &recordingBackend{}
	r := NewRenderer(b, Options{ClampGauges: true})

	drawn, err := r.RenderFrame(screen, 0, true, nil, sensor.Sample{}, false)
	assert.Equal(t, err, nil)
	assert.Equal(t, drawn, true)
	assert.Equal(t, b.ops, []string{"build", "viewport", "clear", "begin", "end"})
	assert.Equal(t, b.viewport, screen)
	assert.Equal(t, b.clear, scene.Red)
	assert.Equal(t, b.projection, scene.Projection(800, 600))
	assert.Equal(t, len(b.calls), 1)
	assert.Equal(t, b.calls[0].Color, scene.Yellow)
	assert.Equal(t, r.Frames(), uint64(1))

	// program is built once
	_, _ = r.RenderFrame(screen, 16, true, nil, sensor.Sample{}, false)
	assert.Equal(t, b.builds, 1)
}

func TestContactScenario(t *testing.T) {
	b := &recordingBackend{}
	r := NewRenderer(b, Options{})
	tr := input.NewTracker(input.StationaryIgnore)

	tr.OnPointerEvent(input.Event{ID: 1, Position: mgl32.Vec2{100, 100}, Phase: input.PhasePressed})
	_, _ = r.RenderFrame(screen, 0, true, tr.Contacts(), sensor.Sample{}, false)
	green := b.withColor(scene.Green)
	assert.Equal(t, len(green), 1)
	assert.Equal(t, green[0].Quad, scene.Square(mgl32.Vec2{100, 100}, 40))

	tr.OnPointerEvent(input.Event{ID: 1, Position: mgl32.Vec2{110, 100}, Phase: input.PhaseMoved})
	_, _ = r.RenderFrame(screen, 16, true, tr.Contacts(), sensor.Sample{}, false)
	green = b.withColor(scene.Green)
	assert.Equal(t, len(green), 1)
	assert.Equal(t, green[0].Quad.Center(), mgl32.Vec2{110, 100})
	assert.Equal(t, green[0].Quad[1].X()-green[0].Quad[0].X(), float32(80))
	assert.Equal(t, green[0].Quad[2].Y()-green[0].Quad[0].Y(), float32(80))

	tr.OnPointerEvent(input.Event{ID: 1, Position: mgl32.Vec2{110, 100}, Phase: input.PhaseReleased})
	_, _ = r.RenderFrame(screen, 32, true, tr.Contacts(), sensor.Sample{}, false)
	assert.Equal(t, len(b.withColor(scene.Green)), 0)
}

func TestUnfocusedIndicator(t *testing.T) {
	b := &recordingBackend{}
	r := NewRenderer(b, Options{})
	_, _ = r.RenderFrame(screen, 0, false, nil, sensor.Sample{}, false)
	assert.Equal(t, len(b.withColor(scene.Magenta)), 1)
	assert.Equal(t, len(b.withColor(scene.Yellow)), 0)
}

func TestGaugeScenario(t *testing.T) {
	b := &recordingBackend{}
	r := NewRenderer(b, Options{ClampGauges: true})

	_, _ = r.RenderFrame(Size{600, 800}, 0, true, nil, sensor.Sample{X: scene.Gravity}, true)
	fg := b.withColor(scene.White)
	assert.Equal(t, len(fg), 3)
	assert.Equal(t, len(b.withColor(scene.Black)), 3)

	half := float32(600) / 3
	width := fg[0].Quad[1].X() - fg[0].Quad[0].X()
	assert.Equal(t, mgl32.FloatEqualThreshold(width, half-2*scene.GaugeBorder, 1e-3), true)

	_, _ = r.RenderFrame(Size{600, 800}, 0, true, nil, sensor.Sample{}, true)
	for _, d := range b.withColor(scene.White) {
		assert.Equal(t, d.Quad[1].X()-d.Quad[0].X(), float32(0))
	}
}

func TestFatalShaderFailure(t *testing.T) {
	b := &recordingBackend{buildErrs: []error{fmt.Errorf("%w: link: boom", ErrPipeline)}}
	r := NewRenderer(b, Options{OnFailure: FailFatal})

	drawn, err := r.RenderFrame(screen, 0, true, nil, sensor.Sample{}, false)
	assert.NotEqual(t, err, nil)
	assert.Equal(t, drawn, false)
	assert.Equal(t, errors.Is(err, ErrPipeline), true)
	assert.Equal(t, len(b.calls), 0)
	assert.Equal(t, r.Ready(), false)
}

func TestRetryShaderFailure(t *testing.T) {
	b := &recordingBackend{buildErrs: []error{fmt.Errorf("%w: compile", ErrPipeline)}}
	r := NewRenderer(b, Options{OnFailure: FailRetry})

	drawn, err := r.RenderFrame(screen, 0, true, nil, sensor.Sample{}, false)
	assert.Equal(t, err, nil)
	assert.Equal(t, drawn, false)
	assert.Equal(t, r.Frames(), uint64(0))
	// nothing reached the surface, not even the clear
	assert.Equal(t, b.ops, []string{"build"})

	drawn, err = r.RenderFrame(screen, 16, true, nil, sensor.Sample{}, false)
	assert.Equal(t, err, nil)
	assert.Equal(t, drawn, true)
	assert.Equal(t, b.builds, 2)
	assert.Equal(t, r.Frames(), uint64(1))
}

func TestReleaseRebuilds(t *testing.T) {
	b := &recordingBackend{}
	r := NewRenderer(b, Options{})
	_, _ = r.RenderFrame(screen, 0, true, nil, sensor.Sample{}, false)
	r.Release()
	assert.Equal(t, b.released, 1)
	assert.Equal(t, r.Ready(), false)

	// a second release without a program is a no-op
	r.Release()
	assert.Equal(t, b.released, 1)

	_, _ = r.RenderFrame(screen, 0, true, nil, sensor.Sample{}, false)
	assert.Equal(t, b.builds, 2)
}
