// Package theme provides raw template sources used by the HTML renderer.
package theme

import (
	"archive/zip"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"go.uber.org/zap"

	"bookr/archive"
)

const (
	IndexFile  = "index.gohtml"
	HeaderFile = "header.gohtml"
)

//go:embed default/*.gohtml
var defaultFS embed.FS

// Theme keeps page template and header partial as loaded, they are not
// checked here in any way.
type Theme struct {
	Index  []byte
	Header []byte
	// Where theme came from, for diagnostics only.
	Source string
}

// Default returns built-in theme.
func Default() *Theme {
	t := &Theme{Source: "built-in"}
	t.Index, _ = defaultFS.ReadFile(path.Join("default", IndexFile))
	t.Header, _ = defaultFS.ReadFile(path.Join("default", HeaderFile))
	return t
}

// Load reads theme from directory or zip archive at location. Empty
// location means built-in theme. Files missing from the location are taken
// from built-in theme.
func Load(location string, log *zap.Logger) (*Theme, error) {
	log = log.Named("theme")

	if len(location) == 0 {
		log.Debug("Using built-in theme")
		return Default(), nil
	}

	info, err := os.Stat(location)
	if err != nil {
		return nil, fmt.Errorf("unable to access theme: %w", err)
	}

	var found map[string][]byte
	switch {
	case info.IsDir():
		found, err = fromDir(location)
	case isZip(location):
		found, err = fromArchive(location)
	default:
		return nil, fmt.Errorf("theme %s is neither directory nor zip archive", location)
	}
	if err != nil {
		return nil, err
	}

	t := Default()
	t.Source = location
	for name, dst := range map[string]*[]byte{IndexFile: &t.Index, HeaderFile: &t.Header} {
		if data, ok := found[name]; ok {
			*dst = data
			continue
		}
		log.Debug("Theme file is missing, using built-in", zap.String("file", name), zap.String("theme", location))
	}
	return t, nil
}

func fromDir(dir string) (map[string][]byte, error) {
	found := make(map[string][]byte)
	for _, name := range []string{IndexFile, HeaderFile} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("unable to read theme file: %w", err)
		}
		found[name] = data
	}
	return found, nil
}

// fromArchive picks theme files closest to the archive root, so themes
// packed with enclosing directory work too.
func fromArchive(location string) (map[string][]byte, error) {
	var (
		found = make(map[string][]byte)
		depth = make(map[string]int)
	)
	err := archive.Walk(location, "", func(name string, f *zip.File) error {
		base := path.Base(name)
		if base != IndexFile && base != HeaderFile {
			return nil
		}
		d := strings.Count(name, "/")
		if prev, ok := depth[base]; ok && prev <= d {
			return nil
		}
		data, err := archive.ReadFile(f)
		if err != nil {
			return err
		}
		found[base], depth[base] = data, d
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to read theme archive: %w", err)
	}
	return found, nil
}

func isZip(location string) bool {
	f, err := os.Open(location)
	if err != nil {
		return false
	}
	defer f.Close()

	head := make([]byte, 262)
	n, _ := f.Read(head)
	return filetype.Is(head[:n], "zip")
}
