package shader

import "fmt"

// Stage is one programmable pipeline stage.
type Stage int

const (
	Vertex Stage = iota
	Fragment
)

func (s Stage) String() string {
	switch s {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// ReadError reports a shader source file that could not be read.
type ReadError struct {
	Stage Stage
	Path  string
	Err   error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s shader %q: %v", e.Stage, e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// CompileError carries the compiler diagnostics for one stage.
type CompileError struct {
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s shader compilation failed: %s", e.Stage, e.Log)
}

// LinkError carries the linker diagnostics for a program.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("failed to link program: %s", e.Log)
}
