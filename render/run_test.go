package render

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"bookr/config"
	"bookr/state"
)

func TestRun(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	if err := os.MkdirAll(src, 0755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"SUMMARY.yaml":     "- chapter: Welcome\n  file: welcome.html\n- chapter: Usage\n  file: guide/usage.html\n  numbered: true\n",
		"welcome.html":     "<p>welcome</p>",
		"guide/usage.html": "<p>usage</p>",
	}
	for name, content := range files {
		full := filepath.Join(src, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Cfg = cfg
	env.Log = zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller()))

	run := func(args ...string) error {
		cmd := &cli.Command{Name: "build", Action: Run}
		return cmd.Run(ctx, append([]string{"build"}, args...))
	}

	t.Run("default destination", func(t *testing.T) {
		if err := run(root); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		data, err := os.ReadFile(filepath.Join(root, "book", "guide", "usage.html"))
		if err != nil {
			t.Fatalf("rendered chapter missing: %v", err)
		}
		if !strings.Contains(string(data), `<strong aria-hidden="true">1.</strong> Usage`) {
			t.Errorf("unexpected page:\n%s", data)
		}
	})

	t.Run("explicit destination", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "site")
		if err := run(root, dest); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if _, err := os.Stat(filepath.Join(dest, "welcome.html")); err != nil {
			t.Errorf("rendered chapter missing: %v", err)
		}
	})

	t.Run("missing book", func(t *testing.T) {
		if err := run(t.TempDir()); err == nil {
			t.Error("Run() expected error for directory without book")
		}
	})
}
