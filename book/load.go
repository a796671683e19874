package book

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"sort"
	"strings"

	"github.com/gosimple/slug"
	"github.com/maruel/natural"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	yaml "gopkg.in/yaml.v3"
)

// ManifestName is the book manifest expected at the root of the book source.
const ManifestName = "SUMMARY.yaml"

const separatorEntry = "separator"

// entry is a single element of the manifest, it is either a chapter, a
// glob expanding into several chapters or a separator.
type entry struct {
	Chapter   string  `yaml:"chapter"`
	File      string  `yaml:"file"`
	Path      string  `yaml:"path"`
	Numbered  *bool   `yaml:"numbered"`
	Sub       []entry `yaml:"sub"`
	Glob      string  `yaml:"glob"`
	separator bool
}

var entryKeys = []string{"chapter", "file", "path", "numbered", "sub", "glob"}

func (e *entry) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Value != separatorEntry {
			return fmt.Errorf("line %d: unexpected manifest entry %q", value.Line, value.Value)
		}
		e.separator = true
		return nil
	case yaml.MappingNode:
		for i := 0; i < len(value.Content); i += 2 {
			if k := value.Content[i]; !slices.Contains(entryKeys, k.Value) {
				return fmt.Errorf("line %d: unknown manifest key %q", k.Line, k.Value)
			}
		}
		type plain entry
		if err := value.Decode((*plain)(e)); err != nil {
			return err
		}
		switch {
		case len(e.Glob) > 0 && (len(e.Chapter) > 0 || len(e.File) > 0 || len(e.Path) > 0 || len(e.Sub) > 0):
			return fmt.Errorf("line %d: glob entry cannot have chapter, file, path or sub", value.Line)
		case len(e.Glob) == 0 && len(e.Chapter) == 0:
			return fmt.Errorf("line %d: chapter name is required", value.Line)
		}
		return nil
	}
	return fmt.Errorf("line %d: manifest entry must be %q or a mapping", value.Line, separatorEntry)
}

type loader struct {
	fsys  fs.FS
	log   *zap.Logger
	paths map[string]string // output path -> chapter name
	files map[string]bool   // content files already used
}

// LoadDir builds book from manifest in the src directory.
func LoadDir(src string, log *zap.Logger) (*Book, error) {
	return Load(os.DirFS(src), log)
}

// Load builds book from manifest at the root of fsys. Content files are read
// verbatim. Output paths are checked to be unique, non-empty and local.
func Load(fsys fs.FS, log *zap.Logger) (*Book, error) {
	data, err := fs.ReadFile(fsys, ManifestName)
	if err != nil {
		return nil, fmt.Errorf("unable to read book manifest: %w", err)
	}

	var entries []entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("unable to parse book manifest: %w", err)
	}

	l := &loader{
		fsys:  fsys,
		log:   log.Named("book"),
		paths: make(map[string]string),
		files: make(map[string]bool),
	}
	// explicitly listed files take precedence over globs wherever they are
	l.collectFiles(entries)

	items, err := l.items(entries, nil, false, 0)
	if err != nil {
		return nil, err
	}
	b := &Book{Sections: items}
	l.log.Debug("Book manifest loaded", zap.Int("chapters", len(l.paths)))
	return b, nil
}

func (l *loader) collectFiles(entries []entry) {
	for _, e := range entries {
		if len(e.File) > 0 {
			l.files[path.Clean(e.File)] = true
		}
		l.collectFiles(e.Sub)
	}
}

// items converts manifest entries of a single level. Numbered chapters get
// their position among numbered siblings appended to parent number, sub items
// inherit numbering from their parent unless told otherwise.
func (l *loader) items(entries []entry, parent SectionNumber, inherited bool, depth int) ([]Item, error) {
	var (
		items   []Item
		counter int
	)
	number := func(ch *Chapter, numbered bool) error {
		if !numbered {
			return nil
		}
		if depth > 0 && parent == nil {
			return fmt.Errorf("numbered chapter %q cannot be nested in unnumbered one", ch.Name)
		}
		counter++
		ch.Number = append(slices.Clone(parent), counter)
		return nil
	}

	for _, e := range entries {
		if e.separator {
			items = append(items, SeparatorItem())
			continue
		}

		numbered := inherited
		if e.Numbered != nil {
			numbered = *e.Numbered
		}

		if len(e.Glob) > 0 {
			chapters, err := l.glob(e.Glob)
			if err != nil {
				return nil, err
			}
			for _, ch := range chapters {
				if err := number(ch, numbered); err != nil {
					return nil, err
				}
				items = append(items, ChapterItem(ch))
			}
			continue
		}

		ch, err := l.chapter(e.Chapter, e.File, e.Path)
		if err != nil {
			return nil, err
		}
		if err := number(ch, numbered); err != nil {
			return nil, err
		}
		if ch.SubItems, err = l.items(e.Sub, ch.Number, numbered, depth+1); err != nil {
			return nil, err
		}
		items = append(items, ChapterItem(ch))
	}
	return items, nil
}

// glob expands pattern into chapters in natural order, files mentioned in
// the manifest explicitly are skipped.
func (l *loader) glob(pattern string) ([]*Chapter, error) {
	matches, err := fs.Glob(l.fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("bad glob pattern %q: %w", pattern, err)
	}
	sort.Sort(natural.StringSlice(matches))

	var chapters []*Chapter
	for _, m := range matches {
		if m == ManifestName || l.files[m] {
			continue
		}
		if info, err := fs.Stat(l.fsys, m); err != nil || !info.Mode().IsRegular() {
			continue
		}
		l.files[m] = true
		ch, err := l.chapter(titleFromFile(m), m, "")
		if err != nil {
			return nil, err
		}
		chapters = append(chapters, ch)
	}
	if len(chapters) == 0 {
		l.log.Warn("Glob pattern matched nothing", zap.String("pattern", pattern))
	}
	return chapters, nil
}

func (l *loader) chapter(name, file, out string) (*Chapter, error) {
	ch := &Chapter{Name: name, Path: chapterPath(name, file, out)}

	if len(ch.Path) == 0 || !fs.ValidPath(ch.Path) || ch.Path == "." {
		return nil, fmt.Errorf("chapter %q: bad output path %q", name, ch.Path)
	}
	if other, exists := l.paths[ch.Path]; exists {
		return nil, fmt.Errorf("chapter %q: output path %q already used by chapter %q", name, ch.Path, other)
	}
	l.paths[ch.Path] = name

	if len(file) == 0 {
		l.log.Debug("Chapter has no content file", zap.String("chapter", name))
		return ch, nil
	}
	data, err := fs.ReadFile(l.fsys, path.Clean(file))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("chapter %q: content file %q does not exist", name, file)
		}
		return nil, fmt.Errorf("chapter %q: %w", name, err)
	}
	ch.Content = string(data)
	return ch, nil
}

// chapterPath derives output path: explicit one wins, then content file name
// with html extension, then slug of the chapter name.
func chapterPath(name, file, out string) string {
	switch {
	case len(out) > 0:
		return path.Clean(strings.ReplaceAll(out, "\\", "/"))
	case len(file) > 0:
		file = path.Clean(file)
		return strings.TrimSuffix(file, path.Ext(file)) + ".html"
	}
	if s := slug.Make(name); len(s) > 0 {
		return s + ".html"
	}
	return ""
}

// titleFromFile names chapters coming from glob entries: "getting_started.html"
// becomes "Getting Started".
func titleFromFile(file string) string {
	base := path.Base(file)
	base = strings.TrimSuffix(base, path.Ext(base))
	base = strings.TrimSpace(strings.NewReplacer("_", " ", "-", " ").Replace(base))
	return cases.Title(language.Und, cases.NoLower).String(base)
}
