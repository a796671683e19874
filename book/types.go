// Package book defines in-memory representation of a book to be rendered:
// ordered tree of chapters and separators.
package book

import (
	"iter"
	"strconv"
	"strings"
)

// SectionNumber is hierarchical chapter number, [1 2] stands for "1.2.".
type SectionNumber []int

// String returns dot joined and dot terminated number, empty for nil.
func (n SectionNumber) String() string {
	var sb strings.Builder
	for _, v := range n {
		sb.WriteString(strconv.Itoa(v))
		sb.WriteByte('.')
	}
	return sb.String()
}

// Depth returns nesting level of the numbered chapter, 0 when not numbered.
func (n SectionNumber) Depth() int {
	return len(n)
}

type ItemKind string

const (
	ItemChapter   ItemKind = "chapter"
	ItemSeparator ItemKind = "separator"
)

// Item is a single element of the book: either a chapter (with possible
// nested items) or a separator which carries no data.
type Item struct {
	Kind    ItemKind
	Chapter *Chapter
}

// Chapter is a single page of the book. Content is already rendered and is
// opaque to the rest of the program. Path is output relative and unique.
type Chapter struct {
	Name     string
	Content  string
	Path     string
	Number   SectionNumber
	SubItems []Item
}

// NewChapter creates unnumbered chapter.
func NewChapter(name, content, path string) *Chapter {
	return &Chapter{Name: name, Content: content, Path: path}
}

// ChapterItem wraps chapter into book item.
func ChapterItem(ch *Chapter) Item {
	return Item{Kind: ItemChapter, Chapter: ch}
}

// SeparatorItem returns visual break item.
func SeparatorItem() Item {
	return Item{Kind: ItemSeparator}
}

func (it Item) IsChapter() bool {
	return it.Kind == ItemChapter && it.Chapter != nil
}

// Book is an ordered sequence of items, order defines reading and
// navigation order.
type Book struct {
	Sections []Item
}

func New() *Book {
	return &Book{}
}

// Push appends item to the top level of the book.
func (b *Book) Push(item Item) *Book {
	b.Sections = append(b.Sections, item)
	return b
}

// PushChapter appends chapter to the top level of the book.
func (b *Book) PushChapter(ch *Chapter) *Book {
	return b.Push(ChapterItem(ch))
}

// Items iterates over all book items depth first: chapter is visited before
// its sub items, which are visited before chapter's next sibling.
func (b *Book) Items() iter.Seq[Item] {
	return func(yield func(Item) bool) {
		walkItems(b.Sections, yield)
	}
}

// Chapters iterates over chapters only, in the same order as Items.
func (b *Book) Chapters() iter.Seq[*Chapter] {
	return func(yield func(*Chapter) bool) {
		for it := range b.Items() {
			if !it.IsChapter() {
				continue
			}
			if !yield(it.Chapter) {
				return
			}
		}
	}
}

func walkItems(items []Item, yield func(Item) bool) bool {
	for _, it := range items {
		if !yield(it) {
			return false
		}
		if it.IsChapter() && len(it.Chapter.SubItems) > 0 {
			if !walkItems(it.Chapter.SubItems, yield) {
				return false
			}
		}
	}
	return true
}
