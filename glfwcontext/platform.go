package glfwcontext

import (
	"github.com/richinsley/golearngl/gldriver"
	"github.com/richinsley/golearngl/graphics"
)

// Platform pairs GLFW window management with the go-gl function loader.
type Platform struct{}

func (Platform) Init() error { return InitGraphics() }

func (Platform) CreateWindow(cfg graphics.WindowConfig) (graphics.Context, error) {
	c, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// LoadGL loads the GL entry points for the current context.
func (Platform) LoadGL() (graphics.GL, error) {
	d, err := gldriver.New()
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (Platform) Terminate() { TerminateGraphics() }
