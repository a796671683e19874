package render

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"bookr/book"
)

func chapterContext(t *testing.T, b *book.Book, path string) *ChapterContext {
	t.Helper()
	g := NewGlobalContext(sampleBookConfig(), nil, BuildTOC(b))
	for ch := range b.Chapters() {
		if ch.Path == path {
			return NewChapterContext(g, ch)
		}
	}
	t.Fatalf("no chapter with path %q", path)
	return nil
}

func TestTocHelper(t *testing.T) {
	c := chapterContext(t, sampleBook(), "first/nested.html")

	got, err := tocHelper{}.render(c)
	if err != nil {
		t.Fatalf("render() error = %v", err)
	}
	want := `<ul class="chapter">` +
		`<li class="affix"><a href="../intro.html">Introduction</a></li>` +
		`<li><a href="../first.html"><strong aria-hidden="true">1.</strong> First</a></li>` +
		`<li><ul class="section">` +
		`<li><a href="../first/nested.html" class="active"><strong aria-hidden="true">1.1.</strong> Nested</a></li>` +
		`<li class="spacer"></li>` +
		`</ul></li>` +
		`<li><a href="../second.html"><strong aria-hidden="true">2.</strong> Second</a></li>` +
		`<li class="affix"><a href="../contributors.html">Contributors</a></li>` +
		`</ul>`
	if string(got) != want {
		t.Errorf("render() =\n%s\nwant\n%s", got, want)
	}
}

func TestTocHelper_NoSectionLabel(t *testing.T) {
	c := chapterContext(t, sampleBook(), "intro.html")

	got, err := tocHelper{noSectionLabel: true}.render(c)
	if err != nil {
		t.Fatalf("render() error = %v", err)
	}
	if strings.Contains(string(got), "<strong") {
		t.Errorf("section labels must be suppressed:\n%s", got)
	}
	if !strings.Contains(string(got), `<a href="intro.html" class="active">Introduction</a>`) {
		t.Errorf("active top level chapter not marked:\n%s", got)
	}
	if !strings.Contains(string(got), `<a href="first/nested.html">Nested</a>`) {
		t.Errorf("links from top level page must not climb up:\n%s", got)
	}
}

func TestTocHelper_Snapshot(t *testing.T) {
	b := sampleBook()

	labels, err := tocHelper{}.render(chapterContext(t, b, "second.html"))
	if err != nil {
		t.Fatalf("render() error = %v", err)
	}
	snaps.MatchSnapshot(t, string(labels))

	plain, err := tocHelper{noSectionLabel: true}.render(chapterContext(t, b, "first/nested.html"))
	if err != nil {
		t.Fatalf("render() error = %v", err)
	}
	snaps.MatchSnapshot(t, string(plain))
}

func TestTocHelper_Nesting(t *testing.T) {
	deep := book.NewChapter("Deep", "", "a/b/deep.html")
	deep.Number = book.SectionNumber{1, 1, 1}
	mid := book.NewChapter("Mid", "", "a/mid.html")
	mid.Number = book.SectionNumber{1, 1}
	mid.SubItems = []book.Item{book.ChapterItem(deep)}
	top := book.NewChapter("Top", "", "a.html")
	top.Number = book.SectionNumber{1}
	top.SubItems = []book.Item{book.ChapterItem(mid)}
	draft := book.NewChapter("Draft & <Notes>", "", "")
	draft.Number = book.SectionNumber{2}

	b := book.New().PushChapter(top).PushChapter(draft)
	c := NewChapterContext(NewGlobalContext(nil, nil, BuildTOC(b)), top)

	got, err := tocHelper{}.render(c)
	if err != nil {
		t.Fatalf("render() error = %v", err)
	}
	want := `<ul class="chapter">` +
		`<li><a href="a.html" class="active"><strong aria-hidden="true">1.</strong> Top</a></li>` +
		`<li><ul class="section">` +
		`<li><a href="a/mid.html"><strong aria-hidden="true">1.1.</strong> Mid</a></li>` +
		`<li><ul class="section">` +
		`<li><a href="a/b/deep.html"><strong aria-hidden="true">1.1.1.</strong> Deep</a></li>` +
		`</ul></li>` +
		`</ul></li>` +
		`<li><strong aria-hidden="true">2.</strong> Draft &amp; &lt;Notes&gt;</li>` +
		`</ul>`
	if string(got) != want {
		t.Errorf("render() =\n%s\nwant\n%s", got, want)
	}
}

func TestTocHelper_NilContext(t *testing.T) {
	if _, err := (tocHelper{}).render(nil); err == nil {
		t.Error("render(nil) expected error")
	}
}

func TestPreviousNext(t *testing.T) {
	tests := []struct {
		path     string
		previous *NavLink
		next     *NavLink
	}{
		{"intro.html", nil, &NavLink{"First", "first.html"}},
		{"first.html", &NavLink{"Introduction", "intro.html"}, &NavLink{"Nested", "first/nested.html"}},
		// separator after Nested is transparent
		{"first/nested.html", &NavLink{"First", "first.html"}, &NavLink{"Second", "second.html"}},
		{"second.html", &NavLink{"Nested", "first/nested.html"}, &NavLink{"Contributors", "contributors.html"}},
		{"contributors.html", &NavLink{"Second", "second.html"}, nil},
	}

	b := sampleBook()
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			c := chapterContext(t, b, tt.path)
			if got := previous(c); !equalLinks(got, tt.previous) {
				t.Errorf("previous() = %+v, want %+v", got, tt.previous)
			}
			if got := next(c); !equalLinks(got, tt.next) {
				t.Errorf("next() = %+v, want %+v", got, tt.next)
			}
		})
	}
}

func TestPreviousNext_Unknown(t *testing.T) {
	g := NewGlobalContext(nil, nil, BuildTOC(sampleBook()))
	c := NewChapterContext(g, book.NewChapter("Stray", "", "stray.html"))
	if previous(c) != nil || next(c) != nil {
		t.Error("chapter missing from toc has no neighbours")
	}
	if previous(nil) != nil || next(nil) != nil {
		t.Error("nil context has no neighbours")
	}
}

func equalLinks(a, b *NavLink) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
