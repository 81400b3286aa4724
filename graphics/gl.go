package graphics

import "github.com/go-gl/mathgl/mgl32"

// Enum values match the OpenGL headers so implementations can pass them through.
const (
	False = 0
	True  = 1

	ColorBufferBit = 0x00004000

	Triangles = 0x0004

	Float       = 0x1406
	UnsignedInt = 0x1405

	ArrayBuffer        = 0x8892
	ElementArrayBuffer = 0x8893
	StaticDraw         = 0x88E4
	DynamicDraw        = 0x88E8

	FragmentShader = 0x8B30
	VertexShader   = 0x8B31
	CompileStatus  = 0x8B81
	LinkStatus     = 0x8B82
)

// GL is the subset of OpenGL 3.3 core the tutorial scenes use.
//
// All methods operate on the context current on the calling thread.
type GL interface {
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	Viewport(x, y, width, height int32)

	CreateShader(shaderType uint32) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	// GetShaderiv returns a single shader parameter (e.g. CompileStatus).
	GetShaderiv(shader uint32, pname uint32) int32
	GetShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgramiv(program uint32, pname uint32) int32
	GetProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	// GetCurrentProgram returns the program bound by the last UseProgram.
	GetCurrentProgram() uint32
	DeleteProgram(program uint32)
	GetAttribLocation(program uint32, name string) int32
	GetUniformLocation(program uint32, name string) int32
	UniformMatrix4fv(location int32, m mgl32.Mat4)

	GenVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)
	GenBuffer() uint32
	BindBuffer(target, buffer uint32)
	// BufferData uploads data to the buffer bound to target.
	BufferData(target uint32, data []byte, usage uint32)
	DeleteBuffer(buffer uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int)
	EnableVertexAttribArray(index uint32)

	DrawArrays(mode uint32, first, count int32)
	DrawElements(mode uint32, count int32, xtype uint32, offset int)

	// ReadPixels reads RGBA8 pixels of the default framebuffer into dst.
	ReadPixels(x, y, width, height int32, dst []byte)
}
