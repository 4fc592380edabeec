//go:build !android

// Package gles is the desktop shader pipeline: OpenGL ES 2.0 through
// go-gl/gl, on a context created by glfw.
package gles

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.1/gles2"
	"github.com/go-gl/mathgl/mgl32"

	"gles2test/internal/render"
	"gles2test/internal/scene"
)

// vertexSlot is bound to the vertex attribute before linking.
const vertexSlot = 0

// Backend implements render.Backend. All methods must run on the thread that
// owns the current context.
type Backend struct {
	program uint32
	vbo     uint32

	uProjection int32
	uColor      int32

	verts [8]float32
}

var _ render.Backend = (*Backend)(nil)

func New() *Backend {
	return &Backend{}
}

// Init loads GL entry points for the current context.
func Init() error {
	if err := gles2.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	return nil
}

// Version returns the GL_VERSION string of the current context.
func Version() string {
	return gles2.GoStr(gles2.GetString(gles2.VERSION))
}

// Build compiles both stages, links them with the vertex attribute pinned to
// vertexSlot and resolves the uniforms. Every failure wraps
// render.ErrPipeline and names the step that failed.
func (b *Backend) Build(vertexSrc, fragmentSrc string) error {
	vs, err := compileStage("vertex", gles2.VERTEX_SHADER, vertexSrc)
	if err != nil {
		return err
	}
	defer gles2.DeleteShader(vs)
	fs, err := compileStage("fragment", gles2.FRAGMENT_SHADER, fragmentSrc)
	if err != nil {
		return err
	}
	defer gles2.DeleteShader(fs)

	prog := gles2.CreateProgram()
	gles2.AttachShader(prog, vs)
	gles2.AttachShader(prog, fs)
	gles2.BindAttribLocation(prog, vertexSlot, gles2.Str(render.AttribVertex+"\x00"))
	gles2.LinkProgram(prog)

	var linked int32
	gles2.GetProgramiv(prog, gles2.LINK_STATUS, &linked)
	if linked != gles2.TRUE {
		msg := infoLog(prog, gles2.GetProgramiv, gles2.GetProgramInfoLog)
		gles2.DeleteProgram(prog)
		return fmt.Errorf("%w: link: %s", render.ErrPipeline, msg)
	}

	uProjection := gles2.GetUniformLocation(prog, gles2.Str(render.UniformProjection+"\x00"))
	uColor := gles2.GetUniformLocation(prog, gles2.Str(render.UniformColor+"\x00"))
	if uProjection < 0 || uColor < 0 {
		gles2.DeleteProgram(prog)
		return fmt.Errorf("%w: uniforms %q/%q not active", render.ErrPipeline, render.UniformProjection, render.UniformColor)
	}

	b.program = prog
	b.uProjection = uProjection
	b.uColor = uColor
	gles2.GenBuffers(1, &b.vbo)
	return nil
}

func (b *Backend) Viewport(w, h int) {
	gles2.Viewport(0, 0, int32(w), int32(h))
}

func (b *Backend) Clear(c scene.Color) {
	gles2.ClearColor(c.R, c.G, c.B, c.A)
	gles2.Clear(gles2.COLOR_BUFFER_BIT)
}

func (b *Backend) Begin(projection mgl32.Mat4) {
	gles2.UseProgram(b.program)
	gles2.UniformMatrix4fv(b.uProjection, 1, false, &projection[0])
	gles2.BindBuffer(gles2.ARRAY_BUFFER, b.vbo)
	gles2.EnableVertexAttribArray(vertexSlot)
}

func (b *Backend) SetColor(c scene.Color) {
	gles2.Uniform4f(b.uColor, c.R, c.G, c.B, c.A)
}

// DrawQuad streams the four vertices into the shared buffer and draws them
// as a strip.
func (b *Backend) DrawQuad(q scene.Quad) {
	copy(b.verts[:], q.Flat())
	gles2.BufferData(gles2.ARRAY_BUFFER, len(b.verts)*4, gles2.Ptr(&b.verts[0]), gles2.STREAM_DRAW)
	gles2.VertexAttribPointer(vertexSlot, 2, gles2.FLOAT, false, 0, gles2.PtrOffset(0))
	gles2.DrawArrays(gles2.TRIANGLE_STRIP, 0, 4)
}

func (b *Backend) End() {
	gles2.DisableVertexAttribArray(vertexSlot)
	gles2.BindBuffer(gles2.ARRAY_BUFFER, 0)
	gles2.UseProgram(0)
}

func (b *Backend) Release() {
	if b.vbo != 0 {
		gles2.DeleteBuffers(1, &b.vbo)
		b.vbo = 0
	}
	if b.program != 0 {
		gles2.DeleteProgram(b.program)
		b.program = 0
	}
}

func compileStage(name string, kind uint32, src string) (uint32, error) {
	sh := gles2.CreateShader(kind)
	csrc, free := gles2.Strs(src + "\x00")
	gles2.ShaderSource(sh, 1, csrc, nil)
	free()
	gles2.CompileShader(sh)

	var compiled int32
	gles2.GetShaderiv(sh, gles2.COMPILE_STATUS, &compiled)
	if compiled == gles2.TRUE {
		return sh, nil
	}
	msg := infoLog(sh, gles2.GetShaderiv, gles2.GetShaderInfoLog)
	gles2.DeleteShader(sh)
	return 0, fmt.Errorf("%w: %s stage: %s", render.ErrPipeline, name, msg)
}

// infoLog reads a shader or program log through the matching getter pair.
func infoLog(obj uint32, getiv func(uint32, uint32, *int32), getLog func(uint32, int32, *int32, *uint8)) string {
	var size int32
	getiv(obj, gles2.INFO_LOG_LENGTH, &size)
	if size <= 0 {
		return "no info log"
	}
	buf := make([]uint8, size)
	var n int32
	getLog(obj, size, &n, &buf[0])
	return strings.TrimSpace(string(buf[:n]))
}
