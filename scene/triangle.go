package scene

import (
	"fmt"

	"github.com/richinsley/golearngl/graphics"
	"github.com/richinsley/golearngl/mesh"
	"github.com/richinsley/golearngl/shader"
)

var rectangleVertices = []float32{
	0.5, 0.5, 0.0,   // top right
	0.5, -0.5, 0.0,  // bottom right
	-0.5, -0.5, 0.0, // bottom left
	-0.5, 0.5, 0.0,  // top left
}

var rectangleIndices = []uint32{
	0, 1, 3,
	1, 2, 3,
}

// Triangle draws an orange rectangle from two indexed triangles.
type Triangle struct {
	opts    Options
	program *shader.Program
	mesh    *mesh.Mesh
}

func (*Triangle) Name() string { return "triangle" }

func (*Triangle) Window() graphics.WindowConfig { return defaultWindow("LearnOpenGL") }

func (t *Triangle) Init(gl graphics.GL) error {
	var err error
	t.program, err = shader.New(gl, shader.OrangeVertex, shader.OrangeFragment, t.opts.ShaderOptions...)
	if err != nil {
		return fmt.Errorf("failed to build shader program: %w", err)
	}
	t.mesh, err = mesh.New(gl, rectangleVertices, rectangleIndices, mesh.Position)
	if err != nil {
		return fmt.Errorf("failed to upload rectangle: %w", err)
	}
	return nil
}

func (*Triangle) Update(graphics.KeyState) {}

func (t *Triangle) Render(gl graphics.GL) {
	t.program.Use()
	t.mesh.Draw()
}

func (t *Triangle) Destroy() {
	if t.mesh != nil {
		t.mesh.Delete()
	}
	if t.program != nil {
		t.program.Delete()
	}
}
