package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/natefinch/atomic"
	"go.uber.org/zap"

	"bookr/book"
	"bookr/config"
	"bookr/theme"
)

// RenderContext is everything single render needs.
type RenderContext struct {
	// Root is book root, relative theme location is resolved against it.
	Root        string
	Destination string
	Config      *config.Config
	Book        *book.Book
	// LiveReloadURL is set by serving side, never read from configuration.
	LiveReloadURL string
}

type renderState int

const (
	stateInit renderState = iota
	stateContextBuilt
	stateEngineLoaded
	stateRenderingChapter
	stateDone
	stateFailed
)

var stateNames = [...]string{"Init", "ContextBuilt", "EngineLoaded", "RenderingChapter", "Done", "Failed"}

func (s renderState) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("renderState(%d)", int(s))
	}
	return stateNames[s]
}

// Renderer produces HTML page for every chapter of the book.
type Renderer struct {
	log *zap.Logger
	rpt *config.Report
}

// NewRenderer returns renderer, report may be nil.
func NewRenderer(log *zap.Logger, rpt *config.Report) *Renderer {
	return &Renderer{log: log.Named("render"), rpt: rpt}
}

func (r *Renderer) Name() string {
	return "html"
}

// Render renders all chapters in reading order stopping on the first error.
// Output already written stays, but must not be considered valid.
func (r *Renderer) Render(ctx context.Context, rc *RenderContext) (err error) {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("unable to generate render id: %w", err)
	}
	log := r.log.With(zap.Stringer("id", id))

	state := stateInit
	move := func(to renderState, fields ...zap.Field) {
		log.Debug("Render state", append([]zap.Field{zap.Stringer("from", state), zap.Stringer("to", to)}, fields...)...)
		state = to
	}
	defer func() {
		if err != nil {
			move(stateFailed, zap.Error(err))
		}
	}()

	cfg := rc.Config
	if cfg == nil {
		cfg = &config.Config{}
	}
	html, err := cfg.HTML()
	if err != nil {
		return err
	}
	html.LiveReloadURL = rc.LiveReloadURL
	log.Debug("HTML configuration", zap.Any("config", html))

	g := NewGlobalContext(&cfg.Book, html, BuildTOC(rc.Book))
	move(stateContextBuilt, zap.Int("entries", len(g.Chapters)))
	r.report(id, g)

	assets, err := theme.Load(html.ThemeDir(rc.Root), log)
	if err != nil {
		return err
	}
	engine, err := LoadEngine(assets, html)
	if err != nil {
		return err
	}
	move(stateEngineLoaded, zap.String("theme", assets.Source))

	start, count := time.Now(), 0
	if rc.Book != nil {
		for ch := range rc.Book.Chapters() {
			if err := ctx.Err(); err != nil {
				return err
			}
			move(stateRenderingChapter, zap.String("chapter", ch.Name))
			if err := renderChapter(engine, g, ch, rc.Destination); err != nil {
				return err
			}
			count++
		}
	}
	move(stateDone)
	log.Info("Book rendered", zap.Int("chapters", count), zap.String("destination", rc.Destination), zap.Duration("elapsed", time.Since(start)))
	return nil
}

func renderChapter(engine *Engine, g *GlobalContext, ch *book.Chapter, dest string) error {
	content, err := engine.Render(NewChapterContext(g, ch))
	if err != nil {
		return &RenderError{Chapter: ch.Name, Path: ch.Path, Err: err}
	}

	target := filepath.Join(dest, filepath.FromSlash(ch.Path))
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return &WriteError{Path: target, Err: err}
	}
	if err := atomic.WriteFile(target, bytes.NewReader(content)); err != nil {
		return &WriteError{Path: target, Err: err}
	}
	return nil
}
