package scene

import (
	"fmt"

	"github.com/richinsley/golearngl/game"
	"github.com/richinsley/golearngl/graphics"
	"github.com/richinsley/golearngl/mesh"
	"github.com/richinsley/golearngl/shader"
)

var quadVertices = []float32{
	// position   // color
	-0.05, -0.05, 1.0, 0.0, 0.0,
	0.05, -0.05, 0.0, 1.0, 0.0,
	0.05, 0.05, 0.0, 0.0, 1.0,

	-0.05, -0.05, 1.0, 0.0, 0.0,
	0.05, 0.05, 0.0, 0.0, 1.0,
	-0.05, 0.05, 0.0, 1.0, 0.0,
}

// Game moves a small quad around with WASD.
type Game struct {
	opts    Options
	player  *game.Player
	program *shader.Program
	mesh    *mesh.Mesh
}

func (*Game) Name() string { return "game" }

func (*Game) Window() graphics.WindowConfig {
	w := defaultWindow("Simple Game")
	w.Width, w.Height = game.ScreenWidth, game.ScreenHeight
	return w
}

// Player exposes the game state, mostly for tests.
func (g *Game) Player() *game.Player { return g.player }

func (g *Game) Init(gl graphics.GL) error {
	g.player = game.NewPlayer()

	var err error
	g.program, err = shader.New(gl, shader.SpriteVertex, shader.SpriteFragment, g.opts.ShaderOptions...)
	if err != nil {
		return fmt.Errorf("failed to build shader program: %w", err)
	}
	g.mesh, err = mesh.New(gl, quadVertices, nil, mesh.Position2DColor)
	if err != nil {
		return fmt.Errorf("failed to upload quad: %w", err)
	}
	if g.program.Valid() {
		if err := g.mesh.Validate(g.program); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) Update(keys graphics.KeyState) {
	g.player.Step(keys)
}

// Render maps the player from the fixed ScreenWidth x ScreenHeight game area
// to clip space. A larger window scales the area rather than widening it.
func (g *Game) Render(gl graphics.GL) {
	g.program.Use()
	g.program.SetMat4("uModel", g.player.Model(game.ScreenWidth, game.ScreenHeight))
	g.mesh.Draw()
	gl.BindVertexArray(0)
}

func (g *Game) Destroy() {
	if g.mesh != nil {
		g.mesh.Delete()
	}
	if g.program != nil {
		g.program.Delete()
	}
}
