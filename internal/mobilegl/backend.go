// Package mobilegl is the shader pipeline on golang.org/x/mobile/gl, used by
// the android front end.
package mobilegl

import (
	"encoding/binary"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/mobile/exp/f32"
	"golang.org/x/mobile/gl"

	"gles2test/internal/render"
	"gles2test/internal/scene"
)

// vertexSlot is bound to the vertex attribute before linking.
var vertexSlot = gl.Attrib{Value: 0}

type Backend struct {
	glctx gl.Context

	prog gl.Program
	vbo  gl.Buffer

	uProjection gl.Uniform
	uColor      gl.Uniform
}

var _ render.Backend = (*Backend)(nil)

func New(glctx gl.Context) *Backend {
	return &Backend{glctx: glctx}
}

// Build compiles and links the program on the attached context. Failures
// wrap render.ErrPipeline and name the step that failed.
func (b *Backend) Build(vertexSrc, fragmentSrc string) error {
	ctx := b.glctx
	vs, err := b.compileStage("vertex", gl.VERTEX_SHADER, vertexSrc)
	if err != nil {
		return err
	}
	defer ctx.DeleteShader(vs)
	fs, err := b.compileStage("fragment", gl.FRAGMENT_SHADER, fragmentSrc)
	if err != nil {
		return err
	}
	defer ctx.DeleteShader(fs)

	prog := ctx.CreateProgram()
	ctx.AttachShader(prog, vs)
	ctx.AttachShader(prog, fs)
	ctx.BindAttribLocation(prog, vertexSlot, render.AttribVertex)
	ctx.LinkProgram(prog)
	if ctx.GetProgrami(prog, gl.LINK_STATUS) == 0 {
		msg := ctx.GetProgramInfoLog(prog)
		ctx.DeleteProgram(prog)
		return fmt.Errorf("%w: link: %s", render.ErrPipeline, msg)
	}

	uProjection := ctx.GetUniformLocation(prog, render.UniformProjection)
	uColor := ctx.GetUniformLocation(prog, render.UniformColor)
	if uProjection.Value < 0 || uColor.Value < 0 {
		ctx.DeleteProgram(prog)
		return fmt.Errorf("%w: uniforms %q/%q not active", render.ErrPipeline, render.UniformProjection, render.UniformColor)
	}

	b.prog = prog
	b.uProjection = uProjection
	b.uColor = uColor
	b.vbo = ctx.CreateBuffer()
	return nil
}

func (b *Backend) compileStage(name string, kind gl.Enum, src string) (gl.Shader, error) {
	sh := b.glctx.CreateShader(kind)
	b.glctx.ShaderSource(sh, src)
	b.glctx.CompileShader(sh)
	if b.glctx.GetShaderi(sh, gl.COMPILE_STATUS) != 0 {
		return sh, nil
	}
	msg := b.glctx.GetShaderInfoLog(sh)
	b.glctx.DeleteShader(sh)
	return gl.Shader{}, fmt.Errorf("%w: %s stage: %s", render.ErrPipeline, name, msg)
}

func (b *Backend) Viewport(w, h int) {
	b.glctx.Viewport(0, 0, w, h)
}

func (b *Backend) Clear(c scene.Color) {
	b.glctx.ClearColor(c.R, c.G, c.B, c.A)
	b.glctx.Clear(gl.COLOR_BUFFER_BIT)
}

func (b *Backend) Begin(projection mgl32.Mat4) {
	b.glctx.UseProgram(b.prog)
	b.glctx.UniformMatrix4fv(b.uProjection, projection[:])
	b.glctx.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	b.glctx.EnableVertexAttribArray(vertexSlot)
}

func (b *Backend) SetColor(c scene.Color) {
	b.glctx.Uniform4f(b.uColor, c.R, c.G, c.B, c.A)
}

func (b *Backend) DrawQuad(q scene.Quad) {
	b.glctx.BufferData(gl.ARRAY_BUFFER, f32.Bytes(binary.LittleEndian, q.Flat()...), gl.STREAM_DRAW)
	b.glctx.VertexAttribPointer(vertexSlot, 2, gl.FLOAT, false, 0, 0)
	b.glctx.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
}

func (b *Backend) End() {
	b.glctx.DisableVertexAttribArray(vertexSlot)
}

func (b *Backend) Release() {
	b.glctx.DeleteBuffer(b.vbo)
	b.glctx.DeleteProgram(b.prog)
	b.prog = gl.Program{}
	b.vbo = gl.Buffer{}
}
