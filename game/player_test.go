package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/golearngl/graphics"
	"github.com/stretchr/testify/assert"
)

type keys map[graphics.Key]bool

func (k keys) KeyPressed(key graphics.Key) bool { return k[key] }

func TestNewPlayer(t *testing.T) {
	p := NewPlayer()
	assert.Equal(t, float32(400), p.X)
	assert.Equal(t, float32(300), p.Y)
	assert.Equal(t, float32(0.1), p.Speed)
}

func TestStepWThenA(t *testing.T) {
	p := NewPlayer()

	p.Step(keys{graphics.KeyW: true})
	assert.InDelta(t, 400, p.X, 1e-4)
	assert.InDelta(t, 300.1, p.Y, 1e-4)

	p.Step(keys{graphics.KeyA: true})
	assert.InDelta(t, 399.9, p.X, 1e-4)
	assert.InDelta(t, 300.1, p.Y, 1e-4)
}

func TestStepOpposingKeysCancel(t *testing.T) {
	p := NewPlayer()
	p.Step(keys{graphics.KeyW: true, graphics.KeyS: true, graphics.KeyA: true, graphics.KeyD: true})
	assert.InDelta(t, 400, p.X, 1e-4)
	assert.InDelta(t, 300, p.Y, 1e-4)
}

func TestStepSAndD(t *testing.T) {
	p := &Player{X: 10, Y: 10, Speed: 2}
	p.Step(keys{graphics.KeyS: true, graphics.KeyD: true})
	assert.Equal(t, float32(12), p.X)
	assert.Equal(t, float32(8), p.Y)

	p.Step(keys{graphics.KeyEscape: true})
	assert.Equal(t, float32(12), p.X)
	assert.Equal(t, float32(8), p.Y)
}

func TestModel(t *testing.T) {
	p := NewPlayer()
	m := p.Model(ScreenWidth, ScreenHeight)
	assert.True(t, m.ApproxEqual(mgl32.Ident4()), "centre of the screen is the origin")

	p.X, p.Y = ScreenWidth, 0
	m = p.Model(ScreenWidth, ScreenHeight)
	got := m.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 1, got.X(), 1e-6)
	assert.InDelta(t, -1, got.Y(), 1e-6)

	assert.Equal(t, mgl32.Ident4(), p.Model(0, 600))
}
