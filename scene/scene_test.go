package scene

import (
	"bytes"
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/richinsley/golearngl/graphics"
	"github.com/richinsley/golearngl/graphics/gltest"
	"github.com/richinsley/golearngl/shader"
	"github.com/richinsley/golearngl/translator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type keys map[graphics.Key]bool

func (k keys) KeyPressed(key graphics.Key) bool { return k[key] }

func writeShaders(t *testing.T, vertex, fragment string) Options {
	t.Helper()
	dir := t.TempDir()
	o := Options{
		VertexPath:   filepath.Join(dir, "shader.vert"),
		FragmentPath: filepath.Join(dir, "shader.frag"),
	}
	require.NoError(t, os.WriteFile(o.VertexPath, []byte(vertex), 0o644))
	require.NoError(t, os.WriteFile(o.FragmentPath, []byte(fragment), 0o644))
	return o
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"game", "shaders", "triangle", "window"}, Names())
}

func TestNewUnknown(t *testing.T) {
	_, err := New("teapot", Options{})
	assert.ErrorContains(t, err, "teapot")
}

func TestNewDefaultsShaderPaths(t *testing.T) {
	s, err := New("shaders", Options{})
	require.NoError(t, err)
	sh := s.(*Shaders)
	assert.Equal(t, DefaultVertexPath, sh.opts.VertexPath)
	assert.Equal(t, DefaultFragmentPath, sh.opts.FragmentPath)
}

func TestWindowConfigs(t *testing.T) {
	for _, name := range Names() {
		s, err := New(name, Options{})
		require.NoError(t, err)
		w := s.Window()
		assert.Equal(t, 800, w.Width, name)
		assert.Equal(t, 600, w.Height, name)
		assert.NotEmpty(t, w.Title, name)
		assert.Equal(t, name, s.Name())
	}
}

func TestTriangleDrawsIndexedRectangle(t *testing.T) {
	gl := gltest.NewGL()
	s, err := New("triangle", Options{})
	require.NoError(t, err)
	require.NoError(t, s.Init(gl))

	s.Update(keys{})
	s.Render(gl)
	require.Len(t, gl.Draws, 1)
	d := gl.Draws[0]
	assert.True(t, d.Indexed)
	assert.Equal(t, int32(6), d.Count)
	assert.NotZero(t, d.Program)

	s.Destroy()
	assert.Zero(t, gl.LivePrograms())
	assert.Zero(t, gl.LiveBuffers())
	assert.Zero(t, gl.LiveVertexArrays())
}

func TestShadersSceneLoadsFiles(t *testing.T) {
	gl := gltest.NewGL()
	s, err := New("shaders", writeShaders(t, shader.ColoredVertex, shader.ColoredFragment))
	require.NoError(t, err)
	require.NoError(t, s.Init(gl))
	program := gl.CurrentProgram
	assert.NotZero(t, program, "program is activated once at init")

	s.Render(gl)
	s.Render(gl)
	require.Len(t, gl.Draws, 2)
	for _, d := range gl.Draws {
		assert.False(t, d.Indexed)
		assert.Equal(t, int32(3), d.Count)
		assert.Equal(t, program, d.Program)
	}
	s.Destroy()
	assert.Zero(t, gl.LivePrograms())
}

func TestShadersSceneRepoAssets(t *testing.T) {
	gl := gltest.NewGL()
	s, err := New("shaders", Options{
		VertexPath:   filepath.Join("..", DefaultVertexPath),
		FragmentPath: filepath.Join("..", DefaultFragmentPath),
	})
	require.NoError(t, err)
	require.NoError(t, s.Init(gl))
	s.Destroy()
}

func TestShadersSceneTranslatesESAssets(t *testing.T) {
	tr := translator.New()
	asset := func(name string) string { return filepath.Join("..", "assets", "shaders", name) }
	tests := []struct {
		name         string
		vert, frag   string
		renamedInput bool
	}{
		{"es pair", "triangle_es.vert", "triangle_es.frag", true},
		{"es vertex", "triangle_es.vert", "triangle.frag", true},
		{"es fragment", "triangle.vert", "triangle_es.frag", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gl := gltest.NewGL()
			s, err := New("shaders", Options{
				VertexPath:    asset(tt.vert),
				FragmentPath:  asset(tt.frag),
				ShaderOptions: []shader.Option{shader.WithTranslator(tr)},
			})
			require.NoError(t, err)
			require.NoError(t, s.Init(gl))
			defer s.Destroy()

			p := s.(*Shaders).program
			require.True(t, p.Valid())
			assert.Equal(t, int32(0), p.AttribLocation("aPos"))
			assert.Equal(t, int32(1), p.AttribLocation("aColor"))
			if tt.renamedInput {
				assert.NotEqual(t, "aPos", p.GLName("aPos"))
			} else {
				assert.Equal(t, "aPos", p.GLName("aPos"))
			}

			s.Render(gl)
			require.Len(t, gl.Draws, 1)
			assert.Equal(t, p.ID(), gl.Draws[0].Program)
		})
	}
}

func TestShadersSceneMissingFile(t *testing.T) {
	gl := gltest.NewGL()
	s, err := New("shaders", Options{VertexPath: filepath.Join(t.TempDir(), "nope.vert")})
	require.NoError(t, err)

	err = s.Init(gl)
	var re *shader.ReadError
	require.True(t, errors.As(err, &re))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	s.Destroy()
}

func TestShadersSceneLayoutMismatch(t *testing.T) {
	gl := gltest.NewGL()
	s, err := New("shaders", writeShaders(t, shader.OrangeVertex, shader.OrangeFragment))
	require.NoError(t, err)

	err = s.Init(gl)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "aColor")
	s.Destroy()
	assert.Zero(t, gl.LivePrograms())
	assert.Zero(t, gl.LiveBuffers())
}

func TestShadersSceneLenient(t *testing.T) {
	gl := gltest.NewGL()
	var diag bytes.Buffer
	o := writeShaders(t, "#version 330 core\nvoid main() {", shader.ColoredFragment)
	o.ShaderOptions = []shader.Option{shader.WithPolicy(shader.Lenient), shader.WithLogger(log.New(&diag, "", 0))}

	s, err := New("shaders", o)
	require.NoError(t, err)
	require.NoError(t, s.Init(gl))
	assert.Contains(t, diag.String(), "vertex shader compilation failed")

	s.Render(gl)
	assert.Len(t, gl.Draws, 1)
	s.Destroy()
}

func TestGameMovesPlayerAndSetsModel(t *testing.T) {
	gl := gltest.NewGL()
	s, err := New("game", Options{})
	require.NoError(t, err)
	require.NoError(t, s.Init(gl))
	g := s.(*Game)

	s.Update(keys{graphics.KeyW: true})
	s.Render(gl)
	assert.InDelta(t, 300.1, g.Player().Y, 1e-4)

	require.Len(t, gl.Draws, 1)
	d := gl.Draws[0]
	assert.Equal(t, int32(6), d.Count)
	m, ok := gl.UniformMat4(d.Program, "uModel")
	require.True(t, ok)
	assert.True(t, m.ApproxEqualThreshold(g.Player().Model(800, 600), 1e-6))
	assert.InDelta(t, 0.1/300, m.At(1, 3), 1e-5)
	assert.Equal(t, uint32(0), gl.BoundVAO)

	s.Update(keys{graphics.KeyA: true})
	assert.InDelta(t, 399.9, g.Player().X, 1e-4)
	s.Destroy()
	assert.Zero(t, gl.LivePrograms())
}

func TestGameInitFailureReleasesProgram(t *testing.T) {
	gl := gltest.NewGL()
	gl.LinkLog = "error: out of registers"
	s, err := New("game", Options{})
	require.NoError(t, err)

	err = s.Init(gl)
	var le *shader.LinkError
	require.True(t, errors.As(err, &le))
	s.Destroy()
	assert.Zero(t, gl.LivePrograms())
	assert.Zero(t, gl.LiveShaders())
}

func TestWindowSceneDrawsNothing(t *testing.T) {
	gl := gltest.NewGL()
	s, err := New("window", Options{})
	require.NoError(t, err)
	require.NoError(t, s.Init(gl))
	s.Update(keys{graphics.KeyW: true})
	s.Render(gl)
	s.Destroy()
	assert.Empty(t, gl.Calls)
}
