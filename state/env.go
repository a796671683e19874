// Package state defines shared program state.
package state

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"bookr/config"
)

type envKey struct{}

// BookPaths are absolute locations a single build works with.
type BookPaths struct {
	Root        string // book root, holds configuration
	Source      string // chapter sources and manifest
	Destination string // rendered pages
}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// used by build subcommand
	LiveReloadURL string

	start         time.Time
	restoreStdLog func()
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, &LocalEnv{start: time.Now()})
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
		e.restoreStdLog = nil
	}
}

// ResolvePaths turns command line arguments into absolute book locations.
// Empty root means current directory, empty destination means configured
// build directory under root.
func (e *LocalEnv) ResolvePaths(root, dst string) (BookPaths, error) {
	var (
		p   BookPaths
		err error
	)
	if len(root) == 0 {
		if root, err = os.Getwd(); err != nil {
			return p, fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if p.Root, err = filepath.Abs(root); err != nil {
		return p, err
	}

	src, build := "src", "book"
	if e.Cfg != nil {
		src, build = e.Cfg.Book.Source, e.Cfg.Build.BuildDir
	}
	p.Source = filepath.Join(p.Root, src)

	if len(dst) == 0 {
		p.Destination = filepath.Join(p.Root, build)
		return p, nil
	}
	if p.Destination, err = filepath.Abs(dst); err != nil {
		return p, err
	}
	return p, nil
}
