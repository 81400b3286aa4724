// Package gltest provides in-memory doubles for graphics.GL and
// graphics.Context. The fake GL keeps enough object state to check binding
// order, resource lifetimes and what each draw call would have rendered.
package gltest

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/golearngl/graphics"
)

var (
	layoutInRe = regexp.MustCompile(`layout\s*\(\s*location\s*=\s*(\d+)\s*\)\s*in\s+\w+\s+(\w+)\s*;`)
	uniformRe  = regexp.MustCompile(`uniform\s+\w+\s+(\w+)\s*;`)
	varyingRe  = regexp.MustCompile(`(?m)^\s*(?:(?:flat|smooth|noperspective|centroid)\s+)*(in|out)\s+(?:(?:highp|mediump|lowp)\s+)?\w+\s+(\w+)\s*;`)
)

// Draw captures the state a single draw call was issued with.
type Draw struct {
	Program  uint32
	VAO      uint32
	Mode     uint32
	First    int32
	Count    int32
	Indexed  bool
	Vertices []byte
	Indices  []byte
}

// AttribPointer is a recorded VertexAttribPointer call.
type AttribPointer struct {
	Buffer uint32
	Size   int32
	Stride int32
	Offset int
}

type shaderObj struct {
	kind     uint32
	source   string
	compiled bool
	log      string
}

type programObj struct {
	attached []uint32
	linked   bool
	log      string
	attribs  map[string]int32
	uniforms map[string]int32
	mat4     map[int32]mgl32.Mat4
}

type vaoObj struct {
	elementBuffer uint32
	attribs       map[uint32]AttribPointer
	enabled       map[uint32]bool
}

// GL is a recording fake of graphics.GL. The zero value is not usable; use NewGL.
type GL struct {
	// Compile returns the info log for a shader source; an empty log means the
	// stage compiles. Defaults to CheckSyntax.
	Compile func(shaderType uint32, source string) string
	// LinkLog, when non-empty, makes every link fail with this log.
	LinkLog string
	// PixelValue fills buffers passed to ReadPixels.
	PixelValue byte

	Calls       []string
	Draws       []Draw
	ClearColors [][4]float32
	Clears      []uint32
	Viewports   [][4]int32

	CurrentProgram uint32
	BoundVAO       uint32
	BoundArray     uint32

	next     uint32
	compiled []string
	shaders  map[uint32]*shaderObj
	programs map[uint32]*programObj
	vaos     map[uint32]*vaoObj
	buffers  map[uint32][]byte
}

var _ graphics.GL = (*GL)(nil)

func NewGL() *GL {
	return &GL{
		Compile:  CheckSyntax,
		shaders:  make(map[uint32]*shaderObj),
		programs: make(map[uint32]*programObj),
		vaos:     make(map[uint32]*vaoObj),
		buffers:  make(map[uint32][]byte),
	}
}

// CheckSyntax is a rough stand-in for a GLSL front end: it requires a
// #version directive, a main function and balanced brackets.
func CheckSyntax(shaderType uint32, source string) string {
	switch {
	case !strings.Contains(source, "#version"):
		return "0:1(1): error: no version directive"
	case !strings.Contains(source, "void main"):
		return "0:1(1): error: missing entry point main"
	case strings.Count(source, "{") != strings.Count(source, "}"),
		strings.Count(source, "(") != strings.Count(source, ")"):
		line := strings.Count(source, "\n") + 1
		return fmt.Sprintf("0:%d(1): error: syntax error, unexpected end of file", line)
	}
	return ""
}

func (g *GL) record(format string, args ...any) {
	g.Calls = append(g.Calls, fmt.Sprintf(format, args...))
}

func (g *GL) gen() uint32 {
	g.next++
	return g.next
}

func (g *GL) ClearColor(r, gg, b, a float32) {
	g.record("ClearColor")
	g.ClearColors = append(g.ClearColors, [4]float32{r, gg, b, a})
}

func (g *GL) Clear(mask uint32) {
	g.record("Clear")
	g.Clears = append(g.Clears, mask)
}

func (g *GL) Viewport(x, y, width, height int32) {
	g.record("Viewport")
	g.Viewports = append(g.Viewports, [4]int32{x, y, width, height})
}

func (g *GL) CreateShader(shaderType uint32) uint32 {
	id := g.gen()
	g.record("CreateShader(%d)", id)
	g.shaders[id] = &shaderObj{kind: shaderType}
	return id
}

func (g *GL) ShaderSource(shader uint32, source string) {
	g.record("ShaderSource(%d)", shader)
	if s, ok := g.shaders[shader]; ok {
		s.source = source
	}
}

func (g *GL) CompileShader(shader uint32) {
	g.record("CompileShader(%d)", shader)
	s, ok := g.shaders[shader]
	if !ok {
		return
	}
	g.compiled = append(g.compiled, s.source)
	s.log = g.Compile(s.kind, s.source)
	s.compiled = s.log == ""
}

func (g *GL) GetShaderiv(shader uint32, pname uint32) int32 {
	s, ok := g.shaders[shader]
	if !ok || pname != graphics.CompileStatus {
		return 0
	}
	if s.compiled {
		return graphics.True
	}
	return graphics.False
}

func (g *GL) GetShaderInfoLog(shader uint32) string {
	if s, ok := g.shaders[shader]; ok {
		return s.log
	}
	return ""
}

func (g *GL) DeleteShader(shader uint32) {
	g.record("DeleteShader(%d)", shader)
	delete(g.shaders, shader)
}

func (g *GL) CreateProgram() uint32 {
	id := g.gen()
	g.record("CreateProgram(%d)", id)
	g.programs[id] = &programObj{}
	return id
}

func (g *GL) AttachShader(program, shader uint32) {
	g.record("AttachShader(%d,%d)", program, shader)
	if p, ok := g.programs[program]; ok {
		p.attached = append(p.attached, shader)
	}
}

func (g *GL) LinkProgram(program uint32) {
	g.record("LinkProgram(%d)", program)
	p, ok := g.programs[program]
	if !ok {
		return
	}
	p.attribs = make(map[string]int32)
	p.uniforms = make(map[string]int32)
	p.mat4 = make(map[int32]mgl32.Mat4)
	p.linked = false

	if g.LinkLog != "" {
		p.log = g.LinkLog
		return
	}
	var uniforms, inputs []string
	outputs := make(map[string]bool)
	for _, id := range p.attached {
		s, ok := g.shaders[id]
		if !ok || !s.compiled {
			p.log = "error: linking with uncompiled shader"
			return
		}
		for _, m := range varyingRe.FindAllStringSubmatch(s.source, -1) {
			switch {
			case s.kind == graphics.VertexShader && m[1] == "out":
				outputs[m[2]] = true
			case s.kind == graphics.FragmentShader && m[1] == "in":
				inputs = append(inputs, m[2])
			}
		}
		if s.kind == graphics.VertexShader {
			for _, m := range layoutInRe.FindAllStringSubmatch(s.source, -1) {
				loc, _ := strconv.Atoi(m[1])
				p.attribs[m[2]] = int32(loc)
			}
		}
		for _, m := range uniformRe.FindAllStringSubmatch(s.source, -1) {
			uniforms = append(uniforms, m[1])
		}
	}
	for _, name := range inputs {
		if !outputs[name] {
			p.log = fmt.Sprintf("error: fragment shader input `%s` has no matching vertex shader output", name)
			return
		}
	}
	sort.Strings(uniforms)
	for _, name := range uniforms {
		if _, ok := p.uniforms[name]; !ok {
			p.uniforms[name] = int32(len(p.uniforms))
		}
	}
	p.linked = true
	p.log = ""
}

func (g *GL) GetProgramiv(program uint32, pname uint32) int32 {
	p, ok := g.programs[program]
	if !ok || pname != graphics.LinkStatus {
		return 0
	}
	if p.linked {
		return graphics.True
	}
	return graphics.False
}

func (g *GL) GetProgramInfoLog(program uint32) string {
	if p, ok := g.programs[program]; ok {
		return p.log
	}
	return ""
}

func (g *GL) UseProgram(program uint32) {
	g.record("UseProgram(%d)", program)
	g.CurrentProgram = program
}

func (g *GL) GetCurrentProgram() uint32 { return g.CurrentProgram }

func (g *GL) DeleteProgram(program uint32) {
	g.record("DeleteProgram(%d)", program)
	delete(g.programs, program)
}

func (g *GL) GetAttribLocation(program uint32, name string) int32 {
	p, ok := g.programs[program]
	if !ok || !p.linked {
		return -1
	}
	if loc, ok := p.attribs[name]; ok {
		return loc
	}
	return -1
}

func (g *GL) GetUniformLocation(program uint32, name string) int32 {
	p, ok := g.programs[program]
	if !ok || !p.linked {
		return -1
	}
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	return -1
}

func (g *GL) UniformMatrix4fv(location int32, m mgl32.Mat4) {
	g.record("UniformMatrix4fv(%d)", location)
	if p, ok := g.programs[g.CurrentProgram]; ok && p.linked && location >= 0 {
		p.mat4[location] = m
	}
}

func (g *GL) GenVertexArray() uint32 {
	id := g.gen()
	g.record("GenVertexArray(%d)", id)
	g.vaos[id] = &vaoObj{attribs: make(map[uint32]AttribPointer), enabled: make(map[uint32]bool)}
	return id
}

func (g *GL) BindVertexArray(vao uint32) {
	g.record("BindVertexArray(%d)", vao)
	g.BoundVAO = vao
}

func (g *GL) DeleteVertexArray(vao uint32) {
	g.record("DeleteVertexArray(%d)", vao)
	delete(g.vaos, vao)
	if g.BoundVAO == vao {
		g.BoundVAO = 0
	}
}

func (g *GL) GenBuffer() uint32 {
	id := g.gen()
	g.record("GenBuffer(%d)", id)
	g.buffers[id] = nil
	return id
}

func (g *GL) BindBuffer(target, buffer uint32) {
	g.record("BindBuffer(%#x,%d)", target, buffer)
	switch target {
	case graphics.ArrayBuffer:
		g.BoundArray = buffer
	case graphics.ElementArrayBuffer:
		if v, ok := g.vaos[g.BoundVAO]; ok {
			v.elementBuffer = buffer
		}
	}
}

func (g *GL) BufferData(target uint32, data []byte, usage uint32) {
	g.record("BufferData(%#x,%d)", target, len(data))
	var id uint32
	switch target {
	case graphics.ArrayBuffer:
		id = g.BoundArray
	case graphics.ElementArrayBuffer:
		if v, ok := g.vaos[g.BoundVAO]; ok {
			id = v.elementBuffer
		}
	}
	if _, ok := g.buffers[id]; ok && id != 0 {
		g.buffers[id] = append([]byte(nil), data...)
	}
}

func (g *GL) DeleteBuffer(buffer uint32) {
	g.record("DeleteBuffer(%d)", buffer)
	delete(g.buffers, buffer)
	if g.BoundArray == buffer {
		g.BoundArray = 0
	}
}

func (g *GL) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	g.record("VertexAttribPointer(%d)", index)
	if v, ok := g.vaos[g.BoundVAO]; ok {
		v.attribs[index] = AttribPointer{Buffer: g.BoundArray, Size: size, Stride: stride, Offset: offset}
	}
}

func (g *GL) EnableVertexAttribArray(index uint32) {
	g.record("EnableVertexAttribArray(%d)", index)
	if v, ok := g.vaos[g.BoundVAO]; ok {
		v.enabled[index] = true
	}
}

func (g *GL) vertexData(v *vaoObj) []byte {
	for _, a := range v.attribs {
		return append([]byte(nil), g.buffers[a.Buffer]...)
	}
	return nil
}

func (g *GL) DrawArrays(mode uint32, first, count int32) {
	g.record("DrawArrays(%d,%d)", first, count)
	d := Draw{Program: g.CurrentProgram, VAO: g.BoundVAO, Mode: mode, First: first, Count: count}
	if v, ok := g.vaos[g.BoundVAO]; ok {
		d.Vertices = g.vertexData(v)
	}
	g.Draws = append(g.Draws, d)
}

func (g *GL) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	g.record("DrawElements(%d)", count)
	d := Draw{Program: g.CurrentProgram, VAO: g.BoundVAO, Mode: mode, Count: count, Indexed: true}
	if v, ok := g.vaos[g.BoundVAO]; ok {
		d.Vertices = g.vertexData(v)
		d.Indices = append([]byte(nil), g.buffers[v.elementBuffer]...)
	}
	g.Draws = append(g.Draws, d)
}

func (g *GL) ReadPixels(x, y, width, height int32, dst []byte) {
	g.record("ReadPixels(%d,%d)", width, height)
	for i := range dst {
		dst[i] = g.PixelValue
	}
}

// LiveShaders returns the number of shader objects not yet deleted.
func (g *GL) LiveShaders() int { return len(g.shaders) }

// LivePrograms returns the number of program objects not yet deleted.
func (g *GL) LivePrograms() int { return len(g.programs) }

// LiveVertexArrays returns the number of vertex array objects not yet deleted.
func (g *GL) LiveVertexArrays() int { return len(g.vaos) }

// LiveBuffers returns the number of buffer objects not yet deleted.
func (g *GL) LiveBuffers() int { return len(g.buffers) }

// CompiledSources returns the sources of every CompileShader call, in order.
func (g *GL) CompiledSources() []string {
	return append([]string(nil), g.compiled...)
}

// Attrib returns the pointer recorded for index in vao.
func (g *GL) Attrib(vao, index uint32) (AttribPointer, bool) {
	v, ok := g.vaos[vao]
	if !ok {
		return AttribPointer{}, false
	}
	a, ok := v.attribs[index]
	return a, ok && v.enabled[index]
}

// Buffer returns the bytes last uploaded to buffer.
func (g *GL) Buffer(buffer uint32) []byte {
	return g.buffers[buffer]
}

// UniformMat4 returns the matrix last set for the named uniform of program.
func (g *GL) UniformMat4(program uint32, name string) (mgl32.Mat4, bool) {
	p, ok := g.programs[program]
	if !ok || !p.linked {
		return mgl32.Mat4{}, false
	}
	loc, ok := p.uniforms[name]
	if !ok {
		return mgl32.Mat4{}, false
	}
	m, ok := p.mat4[loc]
	return m, ok
}
