// Package app runs a scene: it owns the window, the GL context and the render loop.
package app

import (
	"fmt"
	"log"

	"github.com/richinsley/golearngl/graphics"
	"github.com/richinsley/golearngl/scene"
)

// Exit codes returned by Run.
const (
	ExitOK      = 0
	ExitFailure = -1
)

// ClearColor is the background every scene is drawn over.
var ClearColor = [4]float32{0.2, 0.3, 0.3, 1.0}

// Platform is the window system plus the GL function loader.
type Platform interface {
	Init() error
	CreateWindow(cfg graphics.WindowConfig) (graphics.Context, error)
	// LoadGL resolves GL entry points against the current context.
	LoadGL() (graphics.GL, error)
	Terminate()
}

// FrameSink receives a copy of every rendered frame as bottom-up RGBA rows.
type FrameSink interface {
	WriteFrame(pixels []byte, width, height int) error
}

type Config struct {
	Window graphics.WindowConfig
	// MaxFrames closes the window after this many frames when > 0.
	MaxFrames int
	Sink      FrameSink
}

// Run initializes the platform, runs s until its window closes and returns
// the process exit code. Everything acquired is released on every path.
func Run(p Platform, cfg Config, s scene.Scene) int {
	if err := p.Init(); err != nil {
		log.Printf("Failed to initialize window system: %v", err)
		return ExitFailure
	}
	defer p.Terminate()

	ctx, err := p.CreateWindow(cfg.Window)
	if err != nil {
		log.Printf("Failed to create window: %v", err)
		return ExitFailure
	}
	defer ctx.Shutdown()

	ctx.MakeCurrent()
	gl, err := p.LoadGL()
	if err != nil {
		log.Printf("Failed to load OpenGL: %v", err)
		return ExitFailure
	}

	defer s.Destroy()
	if err := s.Init(gl); err != nil {
		log.Printf("Failed to initialize scene %s: %v", s.Name(), err)
		return ExitFailure
	}

	log.Printf("Starting render loop for scene %s", s.Name())
	if err := Loop(ctx, gl, s, cfg); err != nil {
		log.Printf("Render loop failed: %v", err)
		return ExitFailure
	}
	return ExitOK
}

// Loop renders frames until the window is asked to close.
func Loop(ctx graphics.Context, gl graphics.GL, s scene.Scene, cfg Config) error {
	width, height := ctx.GetFramebufferSize()
	gl.Viewport(0, 0, int32(width), int32(height))
	ctx.SetFramebufferSizeCallback(func(width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
	})

	var pixels []byte
	frames := 0
	start := ctx.Time()
	for !ctx.ShouldClose() {
		processInput(ctx)
		s.Update(ctx)

		gl.ClearColor(ClearColor[0], ClearColor[1], ClearColor[2], ClearColor[3])
		gl.Clear(graphics.ColorBufferBit)
		s.Render(gl)

		if cfg.Sink != nil {
			width, height := ctx.GetFramebufferSize()
			size := width * height * 4
			if cap(pixels) < size {
				pixels = make([]byte, size)
			}
			pixels = pixels[:size]
			if size > 0 {
				gl.ReadPixels(0, 0, int32(width), int32(height), pixels)
			}
			if err := cfg.Sink.WriteFrame(pixels, width, height); err != nil {
				return fmt.Errorf("failed to write frame %d: %w", frames, err)
			}
		}

		ctx.EndFrame()
		frames++
		if cfg.MaxFrames > 0 && frames >= cfg.MaxFrames {
			ctx.SetShouldClose(true)
		}
	}
	log.Printf("Render loop finished after %d frames in %.2fs", frames, ctx.Time()-start)
	return nil
}

func processInput(ctx graphics.Context) {
	if ctx.KeyPressed(graphics.KeyEscape) {
		ctx.SetShouldClose(true)
	}
}
