// Package gldriver implements graphics.GL on top of the go-gl 3.3 core bindings.
package gldriver

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/golearngl/graphics"
)

var (
	glInitOnce sync.Once
	glInitErr  error
)

// Driver forwards graphics.GL calls to the loaded OpenGL function pointers.
type Driver struct{}

var _ graphics.GL = (*Driver)(nil)

// New loads the OpenGL function pointers for the current context. A context
// must be current on the calling thread.
func New() (*Driver, error) {
	glInitOnce.Do(func() {
		glInitErr = gl.Init()
	})
	if glInitErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", glInitErr)
	}
	log.Printf("OpenGL version %s", gl.GoStr(gl.GetString(gl.VERSION)))
	return &Driver{}, nil
}

func (*Driver) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }
func (*Driver) Clear(mask uint32)             { gl.Clear(mask) }
func (*Driver) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (*Driver) CreateShader(shaderType uint32) uint32 { return gl.CreateShader(shaderType) }

func (*Driver) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (*Driver) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (*Driver) GetShaderiv(shader uint32, pname uint32) int32 {
	var v int32
	gl.GetShaderiv(shader, pname, &v)
	return v
}

func (*Driver) GetShaderInfoLog(shader uint32) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
	return strings.TrimRight(logText, "\x00")
}

func (*Driver) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (*Driver) CreateProgram() uint32              { return gl.CreateProgram() }
func (*Driver) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }
func (*Driver) LinkProgram(program uint32)          { gl.LinkProgram(program) }

func (*Driver) GetProgramiv(program uint32, pname uint32) int32 {
	var v int32
	gl.GetProgramiv(program, pname, &v)
	return v
}

func (*Driver) GetProgramInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
	return strings.TrimRight(logText, "\x00")
}

func (*Driver) UseProgram(program uint32)    { gl.UseProgram(program) }
func (*Driver) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (*Driver) GetCurrentProgram() uint32 {
	var program int32
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &program)
	return uint32(program)
}

func (*Driver) GetAttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (*Driver) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (*Driver) UniformMatrix4fv(location int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (*Driver) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (*Driver) BindVertexArray(vao uint32) { gl.BindVertexArray(vao) }

func (*Driver) DeleteVertexArray(vao uint32) { gl.DeleteVertexArrays(1, &vao) }

func (*Driver) GenBuffer() uint32 {
	var buffer uint32
	gl.GenBuffers(1, &buffer)
	return buffer
}

func (*Driver) BindBuffer(target, buffer uint32) { gl.BindBuffer(target, buffer) }

func (*Driver) BufferData(target uint32, data []byte, usage uint32) {
	if len(data) == 0 {
		gl.BufferData(target, 0, nil, usage)
		return
	}
	gl.BufferData(target, len(data), gl.Ptr(data), usage)
}

func (*Driver) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

func (*Driver) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointerWithOffset(index, size, xtype, normalized, stride, uintptr(offset))
}

func (*Driver) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (*Driver) DrawArrays(mode uint32, first, count int32) { gl.DrawArrays(mode, first, count) }

func (*Driver) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	gl.DrawElementsWithOffset(mode, count, xtype, uintptr(offset))
}

func (*Driver) ReadPixels(x, y, width, height int32, dst []byte) {
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(x, y, width, height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(dst))
}
