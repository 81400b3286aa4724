// Package shader builds GPU programs from a vertex and a fragment stage.
package shader

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/golearngl/graphics"
)

// Policy selects what happens when a stage fails to compile or the program
// fails to link.
type Policy int

const (
	// FailFast releases everything created so far and returns the error.
	FailFast Policy = iota
	// Lenient logs the diagnostics and hands back a program that is not Valid.
	Lenient
)

// Translation is a stage rewritten for desktop GLSL.
type Translation struct {
	Source string
	// Names maps the variable names of the original source to the names
	// they carry in Source.
	Names map[string]string
}

// SourceTranslator rewrites GLSL ES 3.00 sources into desktop GLSL.
type SourceTranslator interface {
	Translate(stage, source string) (Translation, error)
}

var interfaceDeclRe = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?(?:(?:flat|smooth|noperspective|centroid)\s+)*(?:in|out|uniform)\s+(?:(?:highp|mediump|lowp)\s+)?\w+\s+(\w+)\s*(?:\[[^\]]*\])?\s*;`)

type config struct {
	policy     Policy
	logger     *log.Logger
	translator SourceTranslator
}

// Option configures program construction.
type Option func(*config)

func WithPolicy(p Policy) Option {
	return func(c *config) { c.policy = p }
}

// WithLogger sends diagnostics to l instead of the standard logger.
func WithLogger(l *log.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithTranslator enables translation of "#version 300 es" sources.
func WithTranslator(t SourceTranslator) Option {
	return func(c *config) { c.translator = t }
}

// Program is a linked vertex+fragment program.
type Program struct {
	gl       graphics.GL
	id       uint32
	valid    bool
	deleted  bool
	names    map[string]string
	uniforms map[string]int32

	VertexPath   string
	FragmentPath string
}

// Load reads both stages from disk and builds a program from them.
func Load(gl graphics.GL, vertexPath, fragmentPath string, opts ...Option) (*Program, error) {
	vs, err := os.ReadFile(vertexPath)
	if err != nil {
		return nil, &ReadError{Stage: Vertex, Path: vertexPath, Err: err}
	}
	fs, err := os.ReadFile(fragmentPath)
	if err != nil {
		return nil, &ReadError{Stage: Fragment, Path: fragmentPath, Err: err}
	}
	p, err := New(gl, string(vs), string(fs), opts...)
	if err != nil {
		return nil, err
	}
	p.VertexPath = vertexPath
	p.FragmentPath = fragmentPath
	return p, nil
}

// New compiles both sources and links them. The per-stage shader objects are
// deleted before New returns whatever the outcome.
func New(gl graphics.GL, vertexSource, fragmentSource string, opts ...Option) (*Program, error) {
	cfg := config{policy: FailFast, logger: log.Default()}
	for _, o := range opts {
		o(&cfg)
	}

	var failures []error
	fail := func(err error) error {
		if cfg.policy == FailFast {
			return err
		}
		cfg.logger.Printf("shader: %v", err)
		failures = append(failures, err)
		return nil
	}

	vertex, err := translate(&cfg, Vertex, vertexSource)
	if err != nil {
		if err = fail(err); err != nil {
			return nil, err
		}
	}
	fragment, err := translate(&cfg, Fragment, fragmentSource)
	if err != nil {
		if err = fail(err); err != nil {
			return nil, err
		}
	}
	// Only one stage went through the translator: the other one has to use
	// the translated names for the variables the two stages share.
	switch {
	case vertex.Names != nil && fragment.Names == nil:
		fragment.Source = adoptNames(fragment.Source, vertex.Names)
	case fragment.Names != nil && vertex.Names == nil:
		vertex.Source = adoptNames(vertex.Source, fragment.Names)
	}

	vertexShader, err := compileShader(gl, Vertex, vertex.Source)
	if vertexShader != 0 {
		defer gl.DeleteShader(vertexShader)
	}
	if err != nil {
		if err = fail(err); err != nil {
			return nil, err
		}
	}
	fragmentShader, err := compileShader(gl, Fragment, fragment.Source)
	if fragmentShader != 0 {
		defer gl.DeleteShader(fragmentShader)
	}
	if err != nil {
		if err = fail(err); err != nil {
			return nil, err
		}
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	if gl.GetProgramiv(program, graphics.LinkStatus) == graphics.False {
		if err := fail(&LinkError{Log: gl.GetProgramInfoLog(program)}); err != nil {
			gl.DeleteProgram(program)
			return nil, err
		}
	}

	return &Program{
		gl:       gl,
		id:       program,
		valid:    len(failures) == 0,
		names:    mergeNames(vertex.Names, fragment.Names),
		uniforms: make(map[string]int32),
	}, nil
}

// translate passes ES sources through the configured translator. Other
// sources, and sources the translator rejects, come back unchanged.
func translate(cfg *config, stage Stage, source string) (Translation, error) {
	if !IsES(source) || cfg.translator == nil {
		return Translation{Source: source}, nil
	}
	t, err := cfg.translator.Translate(stage.String(), source)
	if err != nil {
		return Translation{Source: source}, &CompileError{Stage: stage, Log: fmt.Sprintf("translation failed: %v", err)}
	}
	if t.Names == nil {
		t.Names = map[string]string{}
	}
	return t, nil
}

// adoptNames renames the in, out and uniform variables declared in source
// that names maps to a different identifier.
func adoptNames(source string, names map[string]string) string {
	for _, m := range interfaceDeclRe.FindAllStringSubmatch(source, -1) {
		mapped, ok := names[m[1]]
		if !ok || mapped == m[1] {
			continue
		}
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(m[1]) + `\b`)
		source = re.ReplaceAllLiteralString(source, mapped)
	}
	return source
}

func mergeNames(maps ...map[string]string) map[string]string {
	merged := make(map[string]string)
	for _, m := range maps {
		for k, v := range m {
			merged[k] = v
		}
	}
	return merged
}

func compileShader(gl graphics.GL, stage Stage, source string) (uint32, error) {
	shaderType := uint32(graphics.VertexShader)
	if stage == Fragment {
		shaderType = graphics.FragmentShader
	}
	shader := gl.CreateShader(shaderType)
	gl.ShaderSource(shader, source)
	gl.CompileShader(shader)

	if gl.GetShaderiv(shader, graphics.CompileStatus) == graphics.False {
		return shader, &CompileError{Stage: stage, Log: gl.GetShaderInfoLog(shader)}
	}
	return shader, nil
}

// IsES reports whether source declares GLSL ES 3.00.
func IsES(source string) bool {
	first := strings.TrimSpace(source)
	if i := strings.IndexByte(first, '\n'); i >= 0 {
		first = first[:i]
	}
	return strings.HasPrefix(strings.Join(strings.Fields(first), " "), "#version 300 es")
}

// ID returns the GL program name.
func (p *Program) ID() uint32 { return p.id }

// Valid reports whether both stages compiled and the program linked.
func (p *Program) Valid() bool { return p.valid && !p.deleted }

// Use makes p the current program for subsequent draw calls.
func (p *Program) Use() {
	p.gl.UseProgram(p.id)
}

// Delete releases the program. If p is the current program the binding is
// reset first so no later draw call can pick up a deleted program. Calling
// Delete twice is a no-op.
func (p *Program) Delete() {
	if p.deleted {
		return
	}
	if p.gl.GetCurrentProgram() == p.id {
		p.gl.UseProgram(0)
	}
	p.gl.DeleteProgram(p.id)
	p.deleted = true
}

// GLName returns the identifier name has in the linked program. It differs
// from name only for variables of translated stages.
func (p *Program) GLName(name string) string {
	if mapped, ok := p.names[name]; ok {
		return mapped
	}
	return name
}

func (p *Program) AttribLocation(name string) int32 {
	return p.gl.GetAttribLocation(p.id, p.GLName(name))
}

func (p *Program) UniformLocation(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := p.gl.GetUniformLocation(p.id, p.GLName(name))
	p.uniforms[name] = loc
	return loc
}

// SetMat4 sets a mat4 uniform on p, which must be current.
func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	loc := p.UniformLocation(name)
	if loc < 0 {
		return
	}
	p.gl.UniformMatrix4fv(loc, m)
}
