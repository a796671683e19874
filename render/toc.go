package render

import (
	"encoding/json"
	"strings"

	"bookr/book"
)

const spacerMarker = "_spacer_"

// TocEntry is flattened representation of a single book item. Separators
// become entries with Spacer set and nothing else.
type TocEntry struct {
	Name    string
	Path    string
	Section *string
	Spacer  bool
}

func (e TocEntry) MarshalJSON() ([]byte, error) {
	if e.Spacer {
		return json.Marshal(struct {
			Spacer string `json:"spacer"`
		}{spacerMarker})
	}
	return json.Marshal(struct {
		Name    string  `json:"name"`
		Path    string  `json:"path"`
		Section *string `json:"section"`
	}{e.Name, e.Path, e.Section})
}

// Level is nesting depth used to lay out table of contents, unnumbered
// chapters are at the top level.
func (e TocEntry) Level() int {
	if e.Section == nil {
		return 1
	}
	return max(strings.Count(*e.Section, "."), 1)
}

// BuildTOC flattens book in reading order: chapter goes before its sub
// items, which go before its next sibling. Nothing is dropped or reordered.
func BuildTOC(b *book.Book) []TocEntry {
	toc := []TocEntry{}
	if b == nil {
		return toc
	}
	for it := range b.Items() {
		if !it.IsChapter() {
			toc = append(toc, TocEntry{Spacer: true})
			continue
		}
		ch := it.Chapter
		e := TocEntry{Name: ch.Name, Path: ch.Path}
		if len(ch.Number) > 0 {
			s := ch.Number.String()
			e.Section = &s
		}
		toc = append(toc, e)
	}
	return toc
}
