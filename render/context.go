package render

import (
	"html/template"
	"path"
	"slices"
	"strings"

	"bookr/book"
	"bookr/config"
)

const (
	language = "en"
	favicon  = "favicon.ico"
)

// EditorAssets are present in context only when playpens are editable.
type EditorAssets struct {
	EditorJS             string `json:"editor_js"`
	AceJS                string `json:"ace_js"`
	ModeRustJS           string `json:"mode_rust_js"`
	ThemeDawnJS          string `json:"theme_dawn_js"`
	ThemeTomorrowNightJS string `json:"theme_tomorrow_night_js"`
}

func editorAssets() *EditorAssets {
	return &EditorAssets{
		EditorJS:             "editor.js",
		AceJS:                "ace.js",
		ModeRustJS:           "mode-rust.js",
		ThemeDawnJS:          "theme-dawn.js",
		ThemeTomorrowNightJS: "theme-tomorrow_night.js",
	}
}

// GlobalContext is shared by all pages of a single render and is never
// modified after creation.
type GlobalContext struct {
	Language         string         `json:"language"`
	BookTitle        string         `json:"book_title"`
	Description      string         `json:"description"`
	Authors          []string       `json:"authors"`
	LiveReload       string         `json:"livereload"`
	GoogleAnalytics  string         `json:"google_analytics"`
	Favicon          string         `json:"favicon"`
	MathJaxSupport   bool           `json:"mathjax_support"`
	Chapters         []TocEntry     `json:"chapters"`
	PlaypensEditable bool           `json:"playpens_editable"`
	AdditionalCSS    []string       `json:"additional_css"`
	AdditionalJS     []string       `json:"additional_js"`
	Extra            map[string]any `json:"extra,omitempty"`

	*EditorAssets
}

// NewGlobalContext merges book metadata, renderer configuration and table of
// contents. Inputs are copied, so callers are free to reuse them.
func NewGlobalContext(bk *config.BookConfig, html *config.HTMLConfig, toc []TocEntry) *GlobalContext {
	if bk == nil {
		bk = &config.BookConfig{}
	}
	if html == nil {
		html = config.DefaultHTMLConfig()
	}

	g := &GlobalContext{
		Language:         language,
		BookTitle:        bk.Title,
		Description:      bk.Description,
		Authors:          append([]string{}, bk.Authors...),
		LiveReload:       html.LiveReloadURL,
		GoogleAnalytics:  html.GoogleAnalytics,
		Favicon:          favicon,
		MathJaxSupport:   html.MathJaxSupport,
		Chapters:         append([]TocEntry{}, toc...),
		PlaypensEditable: html.Playpen.Editable,
		AdditionalCSS:    append([]string{}, html.AdditionalCSS...),
		AdditionalJS:     append([]string{}, html.AdditionalJS...),
	}
	if len(html.ThemeData) > 0 {
		g.Extra = make(map[string]any, len(html.ThemeData))
		for k, v := range html.ThemeData {
			g.Extra[k] = v
		}
	}
	if html.Playpen.Editable {
		g.EditorAssets = editorAssets()
	}
	return g
}

// ChapterContext is what index template is executed with.
type ChapterContext struct {
	*GlobalContext

	Path         string        `json:"path"`
	Content      template.HTML `json:"content"`
	ChapterTitle string        `json:"chapter_title"`
	Title        string        `json:"title"`
	PathToRoot   string        `json:"path_to_root"`
}

func NewChapterContext(g *GlobalContext, ch *book.Chapter) *ChapterContext {
	title := ch.Name
	if len(g.BookTitle) > 0 {
		title = g.BookTitle + " - " + ch.Name
	}
	return &ChapterContext{
		GlobalContext: g,
		Path:          ch.Path,
		// chapter content arrives already rendered
		Content:      template.HTML(ch.Content),
		ChapterTitle: ch.Name,
		Title:        title,
		PathToRoot:   PathToRoot(ch.Path),
	}
}

// PathToRoot returns relative path from the directory of output file back
// to the output root: "first/nested.html" gives "../", "first.html" gives "".
func PathToRoot(p string) string {
	dir := path.Dir(path.Clean(strings.ReplaceAll(p, `\`, "/")))
	if dir == "." || dir == "/" {
		return ""
	}
	parts := slices.DeleteFunc(strings.Split(dir, "/"), func(s string) bool {
		return s == "" || s == "."
	})
	return strings.Repeat("../", len(parts))
}
