package render

import (
	"bytes"
	"fmt"
	"html/template"
	"unicode/utf8"

	sprig "github.com/go-task/slim-sprig/v3"

	"bookr/config"
	"bookr/theme"
)

const (
	indexTemplate = "index"
	headerPartial = "header"
)

// Engine executes theme templates, it is safe to share once loaded.
type Engine struct {
	tmpl *template.Template
}

func funcMap(cfg *config.HTMLConfig) template.FuncMap {
	// template functions from slim-sprig package: https://go-task.github.io/slim-sprig/
	funcs := sprig.FuncMap()
	funcs["toc"] = tocHelper{noSectionLabel: cfg.NoSectionLabel}.render
	funcs["previous"] = previous
	funcs["next"] = next
	return funcs
}

// LoadEngine registers theme index template and header partial together
// with helpers. Either both are loaded or error is returned.
func LoadEngine(t *theme.Theme, cfg *config.HTMLConfig) (*Engine, error) {
	if t == nil {
		t = theme.Default()
	}
	if cfg == nil {
		cfg = config.DefaultHTMLConfig()
	}

	tmpl := template.New(indexTemplate).Funcs(funcMap(cfg))
	if err := parse(tmpl, t.Index); err != nil {
		return nil, err
	}
	if err := parse(tmpl.New(headerPartial), t.Header); err != nil {
		return nil, err
	}
	return &Engine{tmpl: tmpl}, nil
}

func parse(tmpl *template.Template, data []byte) error {
	if !utf8.Valid(data) {
		return &TemplateLoadError{Name: tmpl.Name(), Err: ErrTemplateEncoding}
	}
	if _, err := tmpl.Parse(string(data)); err != nil {
		return &TemplateLoadError{Name: tmpl.Name(), Err: fmt.Errorf("%w: %w", ErrTemplateSyntax, err)}
	}
	return nil
}

// Render executes index template for a single chapter.
func (e *Engine) Render(c *ChapterContext) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.tmpl.ExecuteTemplate(&buf, indexTemplate, c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
