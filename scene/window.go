package scene

import "github.com/richinsley/golearngl/graphics"

// Window only opens a window; the loop clears it every frame.
type Window struct{}

func (*Window) Name() string { return "window" }

func (*Window) Window() graphics.WindowConfig { return defaultWindow("OpenGL Window") }

func (*Window) Init(graphics.GL) error   { return nil }
func (*Window) Update(graphics.KeyState) {}
func (*Window) Render(graphics.GL)       {}
func (*Window) Destroy()                 {}
