package render

import (
	"fmt"
	"html/template"

	"github.com/beevik/etree"
)

// NavLink points to adjacent chapter. Link is output relative path of the
// chapter, templates prefix it with PathToRoot.
type NavLink struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

// tocHelper renders table of contents. Its settings are captured once when
// engine is loaded.
type tocHelper struct {
	noSectionLabel bool
}

// render produces nested list of chapters, marking the one being rendered.
// Nesting follows section depth: deeper levels are opened as
// <li><ul class="section"> inside the current list.
func (h tocHelper) render(c *ChapterContext) (template.HTML, error) {
	if c == nil || c.GlobalContext == nil {
		return "", fmt.Errorf("toc: no chapter context")
	}

	root := etree.NewElement("ul")
	root.CreateAttr("class", "chapter")

	var (
		lists   = []*etree.Element{root}
		current = 1
		toRoot  = PathToRoot(c.Path)
	)
	for _, e := range c.Chapters {
		list := lists[len(lists)-1]
		if e.Spacer {
			list.CreateElement("li").CreateAttr("class", "spacer")
			continue
		}

		level := e.Level()
		// unnumbered items get affix class unless they change nesting level
		affix := e.Section == nil && level == current
		for ; current < level; current++ {
			list = list.CreateElement("li").CreateElement("ul")
			list.CreateAttr("class", "section")
			lists = append(lists, list)
		}
		for ; current > level; current-- {
			lists = lists[:len(lists)-1]
			list = lists[len(lists)-1]
		}

		li := list.CreateElement("li")
		if affix {
			li.CreateAttr("class", "affix")
		}

		holder := li
		if len(e.Path) > 0 {
			holder = li.CreateElement("a")
			holder.CreateAttr("href", toRoot+e.Path)
			if e.Path == c.Path {
				holder.CreateAttr("class", "active")
			}
		}
		if !h.noSectionLabel && e.Section != nil {
			strong := holder.CreateElement("strong")
			strong.CreateAttr("aria-hidden", "true")
			strong.SetText(*e.Section)
			holder.CreateText(" ")
		}
		holder.CreateText(e.Name)
	}

	doc := etree.NewDocument()
	doc.WriteSettings = etree.WriteSettings{
		CanonicalEndTags: true,
		CanonicalText:    true,
		CanonicalAttrVal: true,
	}
	doc.SetRoot(root)
	out, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("toc: %w", err)
	}
	return template.HTML(out), nil
}

// previous returns link to the chapter before current one in reading order,
// separators are skipped. Nil means there is none.
func previous(c *ChapterContext) *NavLink {
	return neighbour(c, -1)
}

// next returns link to the chapter after current one in reading order,
// separators are skipped. Nil means there is none.
func next(c *ChapterContext) *NavLink {
	return neighbour(c, 1)
}

func neighbour(c *ChapterContext, step int) *NavLink {
	if c == nil || c.GlobalContext == nil {
		return nil
	}
	chapters := make([]TocEntry, 0, len(c.Chapters))
	for _, e := range c.Chapters {
		if !e.Spacer && len(e.Path) > 0 {
			chapters = append(chapters, e)
		}
	}
	for i, e := range chapters {
		if e.Path != c.Path {
			continue
		}
		j := i + step
		if j < 0 || j >= len(chapters) {
			return nil
		}
		return &NavLink{Name: chapters[j].Name, Link: chapters[j].Path}
	}
	return nil
}
