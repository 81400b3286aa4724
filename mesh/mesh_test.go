package mesh

import (
	"errors"
	"testing"

	"github.com/richinsley/golearngl/graphics"
	"github.com/richinsley/golearngl/graphics/gltest"
	"github.com/richinsley/golearngl/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rectangle = []float32{
	0.5, 0.5, 0.0,
	0.5, -0.5, 0.0,
	-0.5, -0.5, 0.0,
	-0.5, 0.5, 0.0,
}

var rectangleIndices = []uint32{0, 1, 3, 1, 2, 3}

var coloredTriangle = []float32{
	0.5, -0.5, 0.0, 1.0, 0.0, 0.0,
	-0.5, -0.5, 0.0, 0.0, 1.0, 0.0,
	0.0, 0.5, 0.0, 0.0, 0.0, 1.0,
}

func TestNewIndexed(t *testing.T) {
	gl := gltest.NewGL()
	m, err := New(gl, rectangle, rectangleIndices, Position)
	require.NoError(t, err)
	assert.Equal(t, 4, m.VertexCount())
	assert.Equal(t, 6, m.IndexCount())
	assert.Equal(t, uint32(0), gl.BoundVAO, "vao must be unbound after setup")
	assert.Equal(t, uint32(0), gl.BoundArray, "vbo must be unbound after setup")

	m.Draw()
	require.Len(t, gl.Draws, 1)
	d := gl.Draws[0]
	assert.True(t, d.Indexed)
	assert.Equal(t, int32(6), d.Count)
	assert.Equal(t, floatBytes(rectangle), d.Vertices)
	assert.Equal(t, uintBytes(rectangleIndices), d.Indices)
}

func TestNewInterleavedLayout(t *testing.T) {
	gl := gltest.NewGL()
	m, err := New(gl, coloredTriangle, nil, PositionColor)
	require.NoError(t, err)

	m.Draw()
	require.Len(t, gl.Draws, 1)
	d := gl.Draws[0]
	assert.False(t, d.Indexed)
	assert.Equal(t, int32(3), d.Count)

	pos, ok := gl.Attrib(d.VAO, 0)
	require.True(t, ok)
	assert.Equal(t, gltest.AttribPointer{Buffer: pos.Buffer, Size: 3, Stride: 24, Offset: 0}, pos)
	color, ok := gl.Attrib(d.VAO, 1)
	require.True(t, ok)
	assert.Equal(t, 12, color.Offset)
	assert.Equal(t, int32(24), color.Stride)
}

func TestUploadBeforeDrawIsReflected(t *testing.T) {
	gl := gltest.NewGL()
	m, err := New(gl, coloredTriangle, nil, PositionColor)
	require.NoError(t, err)

	replaced := append([]float32(nil), coloredTriangle...)
	replaced[0] = 0.75
	replaced = append(replaced, 0.0, 0.0, 0.0, 1.0, 1.0, 1.0)
	require.NoError(t, m.Upload(replaced))

	m.Draw()
	require.Len(t, gl.Draws, 1)
	assert.Equal(t, floatBytes(replaced), gl.Draws[0].Vertices)
	assert.Equal(t, int32(4), gl.Draws[0].Count)
}

func TestUploadRejectsBadData(t *testing.T) {
	gl := gltest.NewGL()
	m, err := New(gl, rectangle, rectangleIndices, Position)
	require.NoError(t, err)

	assert.ErrorIs(t, m.Upload(nil), ErrEmpty)
	assert.Error(t, m.Upload([]float32{1, 2}))
	assert.Error(t, m.Upload(rectangle[:9]), "index 3 no longer has a vertex")
}

func TestNewRejectsBadInput(t *testing.T) {
	gl := gltest.NewGL()

	_, err := New(gl, nil, nil, Position)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = New(gl, rectangle[:4], nil, Position)
	assert.Error(t, err)

	_, err = New(gl, rectangle, []uint32{0, 1, 4}, Position)
	assert.Error(t, err)

	_, err = New(gl, rectangle, nil, Layout{Stride: 3})
	assert.Error(t, err)

	assert.Empty(t, gl.Calls, "rejected meshes must not allocate GL objects")
}

func TestLayoutCheck(t *testing.T) {
	assert.NoError(t, Position.Check())
	assert.NoError(t, PositionColor.Check())
	assert.NoError(t, Position2DColor.Check())

	assert.Error(t, Layout{Stride: 0, Attributes: Position.Attributes}.Check())
	assert.Error(t, Layout{Stride: 4, Attributes: []Attribute{{Name: "aPos", Size: 3, Offset: 2}}}.Check())
	assert.Error(t, Layout{Stride: 6, Attributes: []Attribute{
		{Name: "aPos", Location: 0, Size: 3},
		{Name: "aColor", Location: 0, Size: 3, Offset: 3},
	}}.Check())
	assert.Error(t, Layout{Stride: 6, Attributes: []Attribute{{Name: "aPos", Size: 5}}}.Check())
}

func TestValidateAgainstProgram(t *testing.T) {
	gl := gltest.NewGL()
	p, err := shader.New(gl, shader.ColoredVertex, shader.ColoredFragment)
	require.NoError(t, err)

	good, err := New(gl, coloredTriangle, nil, PositionColor)
	require.NoError(t, err)
	assert.NoError(t, good.Validate(p))

	swapped := Layout{Stride: 6, Attributes: []Attribute{
		{Name: "aPos", Location: 1, Size: 3, Offset: 0},
		{Name: "aColor", Location: 0, Size: 3, Offset: 3},
	}}
	bad, err := New(gl, coloredTriangle, nil, swapped)
	require.NoError(t, err)
	err = bad.Validate(p)
	var le *LayoutError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "aPos", le.Attribute)
	assert.Equal(t, int32(0), le.Got)

	orange, err := shader.New(gl, shader.OrangeVertex, shader.OrangeFragment)
	require.NoError(t, err)
	err = good.Validate(orange)
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "aColor", le.Attribute)
	assert.Equal(t, int32(-1), le.Got)
}

func TestDeleteReleasesEverything(t *testing.T) {
	gl := gltest.NewGL()
	m, err := New(gl, rectangle, rectangleIndices, Position)
	require.NoError(t, err)
	assert.Equal(t, 1, gl.LiveVertexArrays())
	assert.Equal(t, 2, gl.LiveBuffers())

	m.Delete()
	m.Delete()
	assert.Equal(t, 0, gl.LiveVertexArrays())
	assert.Equal(t, 0, gl.LiveBuffers())
}

func TestDrawUsesTriangles(t *testing.T) {
	gl := gltest.NewGL()
	m, err := New(gl, coloredTriangle, nil, PositionColor)
	require.NoError(t, err)
	m.Draw()
	assert.Equal(t, uint32(graphics.Triangles), gl.Draws[0].Mode)
}
