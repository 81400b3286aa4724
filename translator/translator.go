// Package translator converts GLSL ES 3.00 shader sources to desktop GLSL 330.
package translator

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/richinsley/golearngl/shader"
	gst "github.com/richinsley/goshadertranslator"
)

// Translator lazily starts a shader translator on first use and reuses it.
type Translator struct {
	once sync.Once
	t    *gst.ShaderTranslator
	err  error
}

func New() *Translator {
	return &Translator{}
}

func (t *Translator) get() (*gst.ShaderTranslator, error) {
	t.once.Do(func() {
		t.t, t.err = gst.NewShaderTranslator(context.Background())
		if t.err == nil {
			log.Printf("Shader translator initialized")
		}
	})
	return t.t, t.err
}

var _ shader.SourceTranslator = (*Translator)(nil)

// Translate converts source for stage ("vertex" or "fragment"). The
// translator renames user variables (aPos becomes _uaPos), so the result
// carries the mapping from each original name to its new one.
func (t *Translator) Translate(stage, source string) (shader.Translation, error) {
	if stage != "vertex" && stage != "fragment" {
		return shader.Translation{}, fmt.Errorf("unsupported shader stage %q", stage)
	}
	st, err := t.get()
	if err != nil {
		return shader.Translation{}, fmt.Errorf("failed to initialize shader translator: %w", err)
	}
	out, err := st.TranslateShader(source, stage, gst.ShaderSpecWebGL2, gst.OutputFormatGLSL330)
	if err != nil {
		return shader.Translation{}, fmt.Errorf("%s shader translation failed: %w", stage, err)
	}
	names := make(map[string]string, len(out.Variables))
	for name, v := range out.Variables {
		names[name] = v.MappedName
	}
	return shader.Translation{Source: out.Code, Names: names}, nil
}
