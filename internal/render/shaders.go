package render

// Attribute and uniform names shared by both shader stages.
const (
	AttribVertex      = "vtxcoord"
	UniformProjection = "projection"
	UniformColor      = "color"
)

// VertexShader places 2D surface coordinates through the projection.
const VertexShader = `precision mediump float;

attribute vec2 vtxcoord;
uniform mat4 projection;

void main(void)
{
    gl_Position = projection * vec4(vtxcoord, 0.0, 1.0);
}
`

// FragmentShader emits the solid color uniform unmodified.
const FragmentShader = `precision mediump float;

uniform vec4 color;

void main(void)
{
    gl_FragColor = color;
}
`
