package book

import (
	"bookr/utils/debug"
)

type treeWriter struct {
	*debug.TreeWriter
}

// String returns a readable tree of the book without chapter content.
// It exists solely for manual inspection during debugging.
func (b *Book) String() string {
	if b == nil {
		return "<nil Book>"
	}
	tw := treeWriter{debug.NewTreeWriter()}
	tw.Line(0, "Book")
	tw.items(1, b.Sections)
	return tw.String()
}

func (tw treeWriter) items(depth int, items []Item) {
	for i, it := range items {
		switch {
		case it.IsChapter():
			ch := it.Chapter
			tw.Line(depth, "Chapter[%d] number=%q path=%q bytes=%d", i, ch.Number.String(), ch.Path, len(ch.Content))
			tw.TextBlock(depth+1, "Name", ch.Name)
			tw.items(depth+1, ch.SubItems)
		default:
			tw.Line(depth, "Separator[%d]", i)
		}
	}
}
