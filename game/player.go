// Package game holds the state of the toy WASD game.
package game

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/golearngl/graphics"
)

const (
	ScreenWidth  = 800
	ScreenHeight = 600
	DefaultSpeed = 0.1
)

// Player is the position of the controlled quad in screen units.
type Player struct {
	X, Y  float32
	Speed float32
}

// NewPlayer starts at the centre of the default screen.
func NewPlayer() *Player {
	return &Player{X: ScreenWidth / 2, Y: ScreenHeight / 2, Speed: DefaultSpeed}
}

// Step applies one input poll: each held key moves the player by Speed.
func (p *Player) Step(keys graphics.KeyState) {
	if keys.KeyPressed(graphics.KeyW) {
		p.Y += p.Speed
	}
	if keys.KeyPressed(graphics.KeyS) {
		p.Y -= p.Speed
	}
	if keys.KeyPressed(graphics.KeyA) {
		p.X -= p.Speed
	}
	if keys.KeyPressed(graphics.KeyD) {
		p.X += p.Speed
	}
}

// Model maps the screen position to a clip-space translation; the centre of
// a width×height screen lands on the origin.
func (p *Player) Model(width, height float32) mgl32.Mat4 {
	if width <= 0 || height <= 0 {
		return mgl32.Ident4()
	}
	return mgl32.Translate3D(p.X/width*2-1, p.Y/height*2-1, 0)
}
