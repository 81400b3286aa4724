package scene

import (
	"fmt"
	"log"

	"github.com/richinsley/golearngl/graphics"
	"github.com/richinsley/golearngl/mesh"
	"github.com/richinsley/golearngl/shader"
)

var coloredTriangleVertices = []float32{
	// positions      // colors
	0.5, -0.5, 0.0, 1.0, 0.0, 0.0,  // bottom right
	-0.5, -0.5, 0.0, 0.0, 1.0, 0.0, // bottom left
	0.0, 0.5, 0.0, 0.0, 0.0, 1.0,   // top
}

// Shaders draws a vertex-colored triangle with shaders read from disk.
type Shaders struct {
	opts    Options
	program *shader.Program
	mesh    *mesh.Mesh
}

func (*Shaders) Name() string { return "shaders" }

func (*Shaders) Window() graphics.WindowConfig { return defaultWindow("LearnOpenGL") }

func (s *Shaders) Init(gl graphics.GL) error {
	var err error
	s.program, err = shader.Load(gl, s.opts.VertexPath, s.opts.FragmentPath, s.opts.ShaderOptions...)
	if err != nil {
		return fmt.Errorf("failed to load shader program: %w", err)
	}
	log.Printf("Loaded shaders %s, %s", s.opts.VertexPath, s.opts.FragmentPath)

	s.mesh, err = mesh.New(gl, coloredTriangleVertices, nil, mesh.PositionColor)
	if err != nil {
		return fmt.Errorf("failed to upload triangle: %w", err)
	}
	if s.program.Valid() {
		if err := s.mesh.Validate(s.program); err != nil {
			return err
		}
	}

	// The program stays current for the whole run.
	s.program.Use()
	return nil
}

func (*Shaders) Update(graphics.KeyState) {}

func (s *Shaders) Render(gl graphics.GL) {
	s.mesh.Draw()
}

func (s *Shaders) Destroy() {
	if s.mesh != nil {
		s.mesh.Delete()
	}
	if s.program != nil {
		s.program.Delete()
	}
}
