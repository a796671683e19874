package render

import (
	"errors"
	"fmt"
)

var (
	ErrTemplateEncoding = errors.New("template is not valid UTF-8 text")
	ErrTemplateSyntax   = errors.New("template syntax error")
)

// TemplateLoadError is returned when theme templates cannot be registered.
// Err always wraps either ErrTemplateEncoding or ErrTemplateSyntax.
type TemplateLoadError struct {
	Name string
	Err  error
}

func (e *TemplateLoadError) Error() string {
	return fmt.Sprintf("unable to load template %q: %v", e.Name, e.Err)
}

func (e *TemplateLoadError) Unwrap() error {
	return e.Err
}

// RenderError is template execution failure for a particular chapter.
type RenderError struct {
	Chapter string
	Path    string
	Err     error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("unable to render %q (%s): %v", e.Chapter, e.Path, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// WriteError is failure to put rendered page on disk.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing chapter content to %q failed: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
