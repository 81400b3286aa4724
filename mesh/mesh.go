// Package mesh owns a vertex array with its vertex and index buffers.
package mesh

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/richinsley/golearngl/graphics"
)

const sizeOfFloat32 = 4

// Attribute describes one interleaved vertex input. Size and Offset are in floats.
type Attribute struct {
	Name     string
	Location uint32
	Size     int
	Offset   int
}

// Layout is the interleaved vertex format. Stride is in floats.
type Layout struct {
	Stride     int
	Attributes []Attribute
}

var (
	// Position is tightly packed vec3 positions.
	Position = Layout{Stride: 3, Attributes: []Attribute{
		{Name: "aPos", Location: 0, Size: 3, Offset: 0},
	}}
	// PositionColor interleaves a vec3 position and a vec3 color.
	PositionColor = Layout{Stride: 6, Attributes: []Attribute{
		{Name: "aPos", Location: 0, Size: 3, Offset: 0},
		{Name: "aColor", Location: 1, Size: 3, Offset: 3},
	}}
	// Position2DColor interleaves a vec2 position and a vec3 color.
	Position2DColor = Layout{Stride: 5, Attributes: []Attribute{
		{Name: "aPos", Location: 0, Size: 2, Offset: 0},
		{Name: "aColor", Location: 1, Size: 3, Offset: 2},
	}}
)

var ErrEmpty = errors.New("mesh: no vertex data")

// Check reports a layout whose attributes do not fit its stride.
func (l Layout) Check() error {
	if l.Stride <= 0 {
		return fmt.Errorf("mesh: invalid stride %d", l.Stride)
	}
	if len(l.Attributes) == 0 {
		return fmt.Errorf("mesh: layout has no attributes")
	}
	seen := make(map[uint32]string)
	for _, a := range l.Attributes {
		if a.Size < 1 || a.Size > 4 {
			return fmt.Errorf("mesh: attribute %q has size %d", a.Name, a.Size)
		}
		if a.Offset < 0 || a.Offset+a.Size > l.Stride {
			return fmt.Errorf("mesh: attribute %q overflows stride %d", a.Name, l.Stride)
		}
		if other, ok := seen[a.Location]; ok {
			return fmt.Errorf("mesh: attributes %q and %q share location %d", other, a.Name, a.Location)
		}
		seen[a.Location] = a.Name
	}
	return nil
}

// LayoutError reports an attribute the program places somewhere else.
type LayoutError struct {
	Attribute string
	Want      uint32
	Got       int32
}

func (e *LayoutError) Error() string {
	if e.Got < 0 {
		return fmt.Sprintf("mesh: program has no active input %q (layout expects location %d)", e.Attribute, e.Want)
	}
	return fmt.Sprintf("mesh: input %q is at location %d, layout expects %d", e.Attribute, e.Got, e.Want)
}

// AttribLocator resolves vertex input names in a linked program.
type AttribLocator interface {
	AttribLocation(name string) int32
}

// Mesh is a VAO with its VBO and optional EBO.
type Mesh struct {
	gl          graphics.GL
	layout      Layout
	vao         uint32
	vbo         uint32
	ebo         uint32
	vertexCount int
	indexCount  int
	maxIndex    uint32
	deleted     bool
}

func floatBytes(v []float32) []byte {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(v))), len(v)*sizeOfFloat32)
}

func uintBytes(v []uint32) []byte {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(v))), len(v)*4)
}

func (m *Mesh) countVertices(vertices []float32) (int, error) {
	if len(vertices) == 0 {
		return 0, ErrEmpty
	}
	if len(vertices)%m.layout.Stride != 0 {
		return 0, fmt.Errorf("mesh: %d floats is not a multiple of stride %d", len(vertices), m.layout.Stride)
	}
	n := len(vertices) / m.layout.Stride
	if m.indexCount > 0 && int(m.maxIndex) >= n {
		return 0, fmt.Errorf("mesh: index %d out of range for %d vertices", m.maxIndex, n)
	}
	return n, nil
}

// New uploads vertices (and indices, when non-empty) and records the
// attribute layout in a fresh vertex array.
func New(gl graphics.GL, vertices []float32, indices []uint32, layout Layout) (*Mesh, error) {
	if err := layout.Check(); err != nil {
		return nil, err
	}
	m := &Mesh{gl: gl, layout: layout, indexCount: len(indices)}
	for _, i := range indices {
		if i > m.maxIndex {
			m.maxIndex = i
		}
	}
	n, err := m.countVertices(vertices)
	if err != nil {
		return nil, err
	}
	m.vertexCount = n

	m.vao = gl.GenVertexArray()
	m.vbo = gl.GenBuffer()
	if len(indices) > 0 {
		m.ebo = gl.GenBuffer()
	}

	gl.BindVertexArray(m.vao)

	gl.BindBuffer(graphics.ArrayBuffer, m.vbo)
	gl.BufferData(graphics.ArrayBuffer, floatBytes(vertices), graphics.StaticDraw)

	if m.ebo != 0 {
		gl.BindBuffer(graphics.ElementArrayBuffer, m.ebo)
		gl.BufferData(graphics.ElementArrayBuffer, uintBytes(indices), graphics.StaticDraw)
	}

	stride := int32(layout.Stride * sizeOfFloat32)
	for _, a := range layout.Attributes {
		gl.VertexAttribPointer(a.Location, int32(a.Size), graphics.Float, false, stride, a.Offset*sizeOfFloat32)
		gl.EnableVertexAttribArray(a.Location)
	}

	// The element buffer binding is part of the VAO state, so only the
	// array buffer is unbound here.
	gl.BindBuffer(graphics.ArrayBuffer, 0)
	gl.BindVertexArray(0)

	return m, nil
}

// Upload replaces the vertex data. The next Draw renders the new data.
func (m *Mesh) Upload(vertices []float32) error {
	n, err := m.countVertices(vertices)
	if err != nil {
		return err
	}
	m.gl.BindBuffer(graphics.ArrayBuffer, m.vbo)
	m.gl.BufferData(graphics.ArrayBuffer, floatBytes(vertices), graphics.DynamicDraw)
	m.gl.BindBuffer(graphics.ArrayBuffer, 0)
	m.vertexCount = n
	return nil
}

// Draw renders the mesh as triangles with the current program.
func (m *Mesh) Draw() {
	m.gl.BindVertexArray(m.vao)
	if m.indexCount > 0 {
		m.gl.DrawElements(graphics.Triangles, int32(m.indexCount), graphics.UnsignedInt, 0)
		return
	}
	m.gl.DrawArrays(graphics.Triangles, 0, int32(m.vertexCount))
}

// Validate checks every layout attribute against the program's inputs.
func (m *Mesh) Validate(p AttribLocator) error {
	for _, a := range m.layout.Attributes {
		got := p.AttribLocation(a.Name)
		if got != int32(a.Location) {
			return &LayoutError{Attribute: a.Name, Want: a.Location, Got: got}
		}
	}
	return nil
}

func (m *Mesh) VertexCount() int { return m.vertexCount }
func (m *Mesh) IndexCount() int  { return m.indexCount }

// Delete releases the vertex array and its buffers. Calling it again is a no-op.
func (m *Mesh) Delete() {
	if m.deleted {
		return
	}
	m.gl.DeleteVertexArray(m.vao)
	m.gl.DeleteBuffer(m.vbo)
	if m.ebo != 0 {
		m.gl.DeleteBuffer(m.ebo)
	}
	m.deleted = true
}
