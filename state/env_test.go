package state

import (
	"bytes"
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"

	"bookr/config"
)

func TestContextWithEnv(t *testing.T) {
	ctx := ContextWithEnv(context.Background())
	env := EnvFromContext(ctx)
	if env == nil {
		t.Fatal("EnvFromContext() returned nil")
	}
	if env.start.IsZero() {
		t.Error("Environment start time not set")
	}
	if env.Cfg != nil || env.Rpt != nil || env.Log != nil {
		t.Error("Fresh environment should be empty")
	}

	// the same instance is shared by everybody holding the context
	env.LiveReloadURL = "ws://localhost:3000/__livereload"
	if EnvFromContext(ctx).LiveReloadURL != env.LiveReloadURL {
		t.Error("Environment is not shared through context")
	}
}

func TestEnvFromContext_PanicsOnMissingEnv(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic when env not in context")
		}
	}()
	EnvFromContext(context.Background())
}

func TestLocalEnv_Uptime(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))

	time.Sleep(10 * time.Millisecond)
	uptime := env.Uptime()

	if uptime < 10*time.Millisecond {
		t.Errorf("Uptime() = %v, expected at least 10ms", uptime)
	}
	if uptime > time.Second {
		t.Errorf("Uptime() = %v, unexpectedly large", uptime)
	}
}

func TestLocalEnv_RedirectStdLog(t *testing.T) {
	t.Run("std log ends up in zap", func(t *testing.T) {
		var buf bytes.Buffer
		core := zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), zapcore.AddSync(&buf), zapcore.DebugLevel)
		env := &LocalEnv{Log: zap.New(core)}

		env.RedirectStdLog()
		log.Print("from std log")
		env.RestoreStdLog()

		if !strings.Contains(buf.String(), "from std log") {
			t.Errorf("std log output not redirected, got %q", buf.String())
		}
		if env.restoreStdLog != nil {
			t.Error("restore function should be cleared after restore")
		}
	})

	t.Run("without logger", func(t *testing.T) {
		env := &LocalEnv{}
		env.RedirectStdLog()
		if env.restoreStdLog != nil {
			t.Error("Expected restoreStdLog to remain nil")
		}
		env.RestoreStdLog()
	})
}

func TestLocalEnv_RedirectAndRestore(t *testing.T) {
	env := &LocalEnv{
		Cfg: &config.Config{Version: 1},
		Log: zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1))),
	}

	for i := range 3 {
		env.RedirectStdLog()
		if env.restoreStdLog == nil {
			t.Errorf("Iteration %d: restoreStdLog not set", i)
		}
		env.RestoreStdLog()
	}
}

func TestLocalEnv_ResolvePaths(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	root := t.TempDir()
	dst := filepath.Join(t.TempDir(), "site")

	cfg := &config.Config{Version: 1}
	cfg.Book.Source = "chapters"
	cfg.Build.BuildDir = "out"

	tests := []struct {
		name      string
		cfg       *config.Config
		root, dst string
		want      BookPaths
	}{
		{
			name: "defaults without configuration",
			root: root,
			want: BookPaths{Root: root, Source: filepath.Join(root, "src"), Destination: filepath.Join(root, "book")},
		},
		{
			name: "configured directories",
			cfg:  cfg,
			root: root,
			want: BookPaths{Root: root, Source: filepath.Join(root, "chapters"), Destination: filepath.Join(root, "out")},
		},
		{
			name: "explicit destination",
			cfg:  cfg,
			root: root,
			dst:  dst,
			want: BookPaths{Root: root, Source: filepath.Join(root, "chapters"), Destination: dst},
		},
		{
			name: "working directory",
			want: BookPaths{Root: wd, Source: filepath.Join(wd, "src"), Destination: filepath.Join(wd, "book")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := &LocalEnv{Cfg: tt.cfg}
			got, err := env.ResolvePaths(tt.root, tt.dst)
			if err != nil {
				t.Fatalf("ResolvePaths() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolvePaths() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
