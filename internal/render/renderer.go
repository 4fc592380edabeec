// Package render turns scene frames into draw calls on a GL backend.
package render

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/golang/glog"

	"gles2test/internal/input"
	"gles2test/internal/scene"
	"gles2test/internal/sensor"
)

// ErrPipeline marks a shader compile or link failure.
var ErrPipeline = errors.New("shader pipeline")

// FailurePolicy decides what happens when the shader program cannot be built.
type FailurePolicy int

const (
	// FailFatal returns the error from RenderFrame; callers abort.
	FailFatal FailurePolicy = iota
	// FailRetry logs, skips the frame and rebuilds on the next one.
	FailRetry
)

// Backend is the GL side of the pipeline: one program with a vec2 vertex
// attribute, a mat4 projection uniform and a vec4 color uniform.
type Backend interface {
	// Build compiles and links the embedded shaders. Errors wrap ErrPipeline.
	Build(vertexSrc, fragmentSrc string) error
	Viewport(w, h int)
	Clear(c scene.Color)
	Begin(projection mgl32.Mat4)
	SetColor(c scene.Color)
	// DrawQuad draws q as a 4-vertex triangle strip.
	DrawQuad(q scene.Quad)
	End()
	Release()
}

// Size is the surface size in pixels.
type Size struct {
	Width, Height int
}

type Options struct {
	ClampGauges bool
	OnFailure   FailurePolicy
}

// Renderer draws the test scene. It builds the program lazily on the first
// frame, when a context is guaranteed to be current.
type Renderer struct {
	backend Backend
	opts    Options
	built   bool
	frames  uint64
}

func NewRenderer(backend Backend, opts Options) *Renderer {
	return &Renderer{backend: backend, opts: opts}
}

// RenderFrame clears the surface and draws gauges (if a sample is present),
// the indicator and one marker per contact. The caller makes the context
// current before and, only when drawn is true, swaps buffers after. drawn is
// false while a retried program build keeps failing.
func (r *Renderer) RenderFrame(size Size, elapsedMs float64, focused bool, contacts []input.Contact, sample sensor.Sample, haveSample bool) (drawn bool, err error) {
	if err := r.ensureBuilt(); err != nil {
		return false, err
	}
	if !r.built {
		return false, nil
	}

	p := scene.Params{
		Width:       size.Width,
		Height:      size.Height,
		ElapsedMs:   elapsedMs,
		Focused:     focused,
		Contacts:    make([]mgl32.Vec2, 0, len(contacts)),
		ClampGauges: r.opts.ClampGauges,
	}
	for _, c := range contacts {
		p.Contacts = append(p.Contacts, c.Position)
	}
	if haveSample {
		p.Axes = sample.Axes()
	}
	r.Draw(size, scene.Compose(p))
	return true, nil
}

// Draw submits an already composed frame.
func (r *Renderer) Draw(size Size, f scene.Frame) {
	b := r.backend
	b.Viewport(size.Width, size.Height)
	b.Clear(scene.ClearColor)
	b.Begin(f.Projection)
	for _, s := range f.Shapes {
		b.SetColor(s.Color)
		b.DrawQuad(s.Quad)
	}
	b.End()
	r.frames++
}

func (r *Renderer) ensureBuilt() error {
	if r.built {
		return nil
	}
	err := r.backend.Build(VertexShader, FragmentShader)
	if err == nil {
		r.built = true
		glog.Infof("[render]shader program ready")
		return nil
	}
	switch r.opts.OnFailure {
	case FailRetry:
		glog.Errorf("[render]%v; retrying next frame", err)
		return nil
	default:
		return fmt.Errorf("build program: %w", err)
	}
}

// Frames returns how many frames were submitted.
func (r *Renderer) Frames() uint64 {
	return r.frames
}

// Ready reports whether the program has been built.
func (r *Renderer) Ready() bool {
	return r.built
}

// Release frees GL resources; the next frame rebuilds them.
func (r *Renderer) Release() {
	if r.built {
		r.backend.Release()
	}
	r.built = false
}
