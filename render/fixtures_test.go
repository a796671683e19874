package render

import (
	"bookr/book"
	"bookr/config"
)

// sampleBook is
//
//	Introduction
//	1. First
//	  1.1. Nested
//	  ---
//	2. Second
//	Contributors
func sampleBook() *book.Book {
	nested := book.NewChapter("Nested", "<p>nested</p>", "first/nested.html")
	nested.Number = book.SectionNumber{1, 1}

	first := book.NewChapter("First", "<p>first</p>", "first.html")
	first.Number = book.SectionNumber{1}
	first.SubItems = []book.Item{book.ChapterItem(nested), book.SeparatorItem()}

	second := book.NewChapter("Second", "<p>second</p>", "second.html")
	second.Number = book.SectionNumber{2}

	return book.New().
		PushChapter(book.NewChapter("Introduction", "<p>intro</p>", "intro.html")).
		PushChapter(first).
		PushChapter(second).
		PushChapter(book.NewChapter("Contributors", "<p>people</p>", "contributors.html"))
}

func sampleBookConfig() *config.BookConfig {
	return &config.BookConfig{
		Title:       "Sample",
		Description: "Book used in tests",
		Authors:     []string{"Alice", "Bob"},
		Source:      "src",
	}
}

func ptr(s string) *string {
	return &s
}
