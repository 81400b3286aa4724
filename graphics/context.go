package graphics

// Key identifies a keyboard key independent of the windowing library.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyW
	KeyA
	KeyS
	KeyD
)

func (k Key) String() string {
	switch k {
	case KeyEscape:
		return "Escape"
	case KeyW:
		return "W"
	case KeyA:
		return "A"
	case KeyS:
		return "S"
	case KeyD:
		return "D"
	}
	return "Unknown"
}

// KeyState reports whether a key is held down at the last event poll.
type KeyState interface {
	KeyPressed(k Key) bool
}

// WindowConfig describes the window a scene wants.
type WindowConfig struct {
	Width   int
	Height  int
	Title   string
	Visible bool
}

// Context defines the interface for an OpenGL context.
type Context interface {
	KeyState
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	SetShouldClose(v bool)
	// EndFrame swaps buffers and polls window events.
	EndFrame()
	GetFramebufferSize() (int, int)
	Time() float64
	// SetFramebufferSizeCallback registers f to run when the framebuffer is resized.
	SetFramebufferSizeCallback(f func(width, height int))
}
