package render

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"sort"

	"github.com/google/uuid"
	"github.com/maruel/natural"

	"bookr/utils/debug"
)

// report saves global context as templates see it, debug runs only.
func (r *Renderer) report(id uuid.UUID, g *GlobalContext) {
	if r.rpt == nil {
		return
	}
	if data, err := json.MarshalIndent(g, "", "  "); err == nil {
		r.rpt.StoreData(fmt.Sprintf("render/%s/context.json", id), data)
	}
	r.rpt.StoreData(fmt.Sprintf("render/%s/toc.txt", id), dumpContext(g))
}

// dumpContext is a readable version of table of contents and theme data.
func dumpContext(g *GlobalContext) []byte {
	tw := debug.NewTreeWriter()

	tw.Line(0, "TOC entries=%d", len(g.Chapters))
	for i, e := range g.Chapters {
		if e.Spacer {
			tw.Line(1, "Spacer[%d]", i)
			continue
		}
		section := "-"
		if e.Section != nil {
			section = *e.Section
		}
		tw.Line(e.Level(), "Entry[%d] section=%s path=%q", i, section, e.Path)
		tw.TextBlock(e.Level()+1, "Name", e.Name)
	}

	if len(g.Extra) > 0 {
		keys := slices.Collect(maps.Keys(g.Extra))
		sort.Sort(natural.StringSlice(keys))
		tw.Line(0, "Extra")
		for _, k := range keys {
			tw.TextBlock(1, k, fmt.Sprint(g.Extra[k]))
		}
	}
	return tw.Bytes()
}
