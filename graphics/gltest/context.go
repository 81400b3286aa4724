package gltest

import (
	"errors"

	"github.com/richinsley/golearngl/graphics"
)

// Context is a scripted graphics.Context.
type Context struct {
	Width  int
	Height int
	// CloseAfter makes ShouldClose report true once this many frames have
	// ended. Zero means the window only closes through SetShouldClose.
	CloseAfter int
	// Keys is the key state used once Script is exhausted.
	Keys map[graphics.Key]bool
	// Script holds per-frame key states; frame i reads Script[i].
	Script []map[graphics.Key]bool

	Frames       int
	Current      bool
	ShutdownDone bool

	closing  bool
	onResize func(width, height int)
}

var _ graphics.Context = (*Context)(nil)

func NewContext(width, height int) *Context {
	return &Context{Width: width, Height: height, Keys: make(map[graphics.Key]bool)}
}

func (c *Context) KeyPressed(k graphics.Key) bool {
	if c.Frames < len(c.Script) {
		return c.Script[c.Frames][k]
	}
	return c.Keys[k]
}

func (c *Context) MakeCurrent()          { c.Current = true }
func (c *Context) Shutdown()             { c.ShutdownDone = true }
func (c *Context) ShouldClose() bool     { return c.closing }
func (c *Context) SetShouldClose(v bool) { c.closing = v }

func (c *Context) EndFrame() {
	c.Frames++
	if c.CloseAfter > 0 && c.Frames >= c.CloseAfter {
		c.closing = true
	}
}

func (c *Context) GetFramebufferSize() (int, int) { return c.Width, c.Height }

func (c *Context) Time() float64 { return float64(c.Frames) / 60 }

func (c *Context) SetFramebufferSizeCallback(f func(width, height int)) { c.onResize = f }

// Resize changes the framebuffer size and fires the registered callback.
func (c *Context) Resize(width, height int) {
	c.Width, c.Height = width, height
	if c.onResize != nil {
		c.onResize(width, height)
	}
}

// Platform is a fake window system handing out a fixed Context and GL.
type Platform struct {
	InitErr   error
	WindowErr error
	GLErr     error

	Context *Context
	GL      *GL

	Windows    []graphics.WindowConfig
	Terminated bool
}

var (
	// ErrFake is a convenience error for failure injection.
	ErrFake = errors.New("gltest: injected failure")
	// ErrNotCurrent is returned by LoadGL when the context was never made current.
	ErrNotCurrent = errors.New("gltest: no current context")
)

func NewPlatform(ctx *Context) *Platform {
	return &Platform{Context: ctx, GL: NewGL()}
}

func (p *Platform) Init() error { return p.InitErr }

func (p *Platform) CreateWindow(cfg graphics.WindowConfig) (graphics.Context, error) {
	p.Windows = append(p.Windows, cfg)
	if p.WindowErr != nil {
		return nil, p.WindowErr
	}
	return p.Context, nil
}

func (p *Platform) LoadGL() (graphics.GL, error) {
	if p.GLErr != nil {
		return nil, p.GLErr
	}
	if !p.Context.Current {
		return nil, ErrNotCurrent
	}
	return p.GL, nil
}

func (p *Platform) Terminate() { p.Terminated = true }
