package theme

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func TestDefault(t *testing.T) {
	th := Default()
	if !bytes.Contains(th.Index, []byte(`{{ toc . }}`)) {
		t.Errorf("built-in index does not render toc:\n%s", th.Index)
	}
	if !bytes.Contains(th.Index, []byte(`{{ template "header" . }}`)) {
		t.Error("built-in index does not include header partial")
	}
	if len(th.Header) == 0 {
		t.Error("built-in header is empty")
	}
	if th.Source != "built-in" {
		t.Errorf("Source = %q", th.Source)
	}
}

func TestLoad_Empty(t *testing.T) {
	th, err := Load("", zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !bytes.Equal(th.Index, Default().Index) {
		t.Error("empty location must give built-in theme")
	}
}

func TestLoad_Directory(t *testing.T) {
	log := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller()))

	t.Run("full", func(t *testing.T) {
		dir := t.TempDir()
		os.WriteFile(filepath.Join(dir, IndexFile), []byte("custom index"), 0644)
		os.WriteFile(filepath.Join(dir, HeaderFile), []byte("custom header"), 0644)

		th, err := Load(dir, log)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if string(th.Index) != "custom index" || string(th.Header) != "custom header" {
			t.Errorf("unexpected theme: index=%q header=%q", th.Index, th.Header)
		}
		if th.Source != dir {
			t.Errorf("Source = %q, want %q", th.Source, dir)
		}
	})

	t.Run("partial falls back", func(t *testing.T) {
		dir := t.TempDir()
		os.WriteFile(filepath.Join(dir, HeaderFile), []byte("custom header"), 0644)

		th, err := Load(dir, log)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if !bytes.Equal(th.Index, Default().Index) {
			t.Error("missing index must fall back to built-in")
		}
		if string(th.Header) != "custom header" {
			t.Errorf("Header = %q", th.Header)
		}
	})
}

func writeZip(t *testing.T, files map[string]string) string {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		fw.Write([]byte(content))
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	// extension is not what makes it an archive
	name := filepath.Join(t.TempDir(), "theme.bin")
	if err := os.WriteFile(name, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	return name
}

func TestLoad_Archive(t *testing.T) {
	log := zaptest.NewLogger(t)

	name := writeZip(t, map[string]string{
		"mytheme/index.gohtml":        "zipped index",
		"mytheme/nested/index.gohtml": "too deep",
		"mytheme/book.css":            "body {}",
	})
	th, err := Load(name, log)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if string(th.Index) != "zipped index" {
		t.Errorf("Index = %q", th.Index)
	}
	if !bytes.Equal(th.Header, Default().Header) {
		t.Error("missing header must fall back to built-in")
	}
}

func TestLoad_Errors(t *testing.T) {
	log := zaptest.NewLogger(t)

	if _, err := Load(filepath.Join(t.TempDir(), "missing"), log); err == nil {
		t.Error("Load() expected error for missing location")
	}

	plain := filepath.Join(t.TempDir(), "theme.txt")
	os.WriteFile(plain, []byte("just text"), 0644)
	if _, err := Load(plain, log); err == nil {
		t.Error("Load() expected error for regular non-archive file")
	}
}
