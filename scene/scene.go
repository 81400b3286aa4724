// Package scene contains the tutorial programs as units the render loop drives.
package scene

import (
	"fmt"
	"sort"

	"github.com/richinsley/golearngl/graphics"
	"github.com/richinsley/golearngl/shader"
)

// Scene is one tutorial program. Init runs once with a current context,
// Update and Render once per frame, Destroy once at shutdown (also after a
// failed Init).
type Scene interface {
	Name() string
	// Window returns the window the program was written for.
	Window() graphics.WindowConfig
	Init(gl graphics.GL) error
	Update(keys graphics.KeyState)
	Render(gl graphics.GL)
	Destroy()
}

// Options carries what scenes need beyond GL.
type Options struct {
	VertexPath   string
	FragmentPath string
	// ShaderOptions are passed to every shader the scene builds.
	ShaderOptions []shader.Option
}

const (
	DefaultVertexPath   = "assets/shaders/triangle.vert"
	DefaultFragmentPath = "assets/shaders/triangle.frag"
)

var registry = map[string]func(Options) Scene{
	"window":   func(Options) Scene { return &Window{} },
	"triangle": func(o Options) Scene { return &Triangle{opts: o} },
	"shaders":  func(o Options) Scene { return &Shaders{opts: o} },
	"game":     func(o Options) Scene { return &Game{opts: o} },
}

// Names lists the registered scenes in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New returns the scene registered under name.
func New(name string, opts Options) (Scene, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %v)", name, Names())
	}
	if opts.VertexPath == "" {
		opts.VertexPath = DefaultVertexPath
	}
	if opts.FragmentPath == "" {
		opts.FragmentPath = DefaultFragmentPath
	}
	return f(opts), nil
}

func defaultWindow(title string) graphics.WindowConfig {
	return graphics.WindowConfig{Width: 800, Height: 600, Title: title, Visible: true}
}
