package tree

import (
	"html/template"
	"io"
	"strings"

	"github.com/fekuna/omnipos-backoffice/internal/model"
)

var nodeTmpl = template.Must(template.New("categoryNode").Parse(
	`<li class="category-node" data-id="{{.ID}}" data-level="{{.Level}}"><span class="category-name">{{.Name}}</span> <span class="category-status status-{{.Status}}">{{.Status}}</span>`,
))

type nodeData struct {
	ID     string
	Level  int
	Name   string
	Status string
}

// RenderHTML writes the tree as nested lists down to displayDepth below the
// roots. Children deeper than that are not expanded even when fetched.
func RenderHTML(w io.Writer, nodes []model.CategoryNode, displayDepth int) error {
	var b strings.Builder
	if len(nodes) == 0 {
		b.WriteString(`<p class="category-empty">No categories</p>`)
	} else if err := renderLevel(&b, nodes, 0, displayDepth); err != nil {
		return err
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func renderLevel(b *strings.Builder, nodes []model.CategoryNode, depth, limit int) error {
	b.WriteString(`<ul class="category-level">`)
	for _, n := range nodes {
		data := nodeData{ID: n.ID, Level: n.Level, Name: n.Name, Status: strings.ToLower(n.CategoryStatus)}
		if err := nodeTmpl.Execute(b, data); err != nil {
			return err
		}
		if depth < limit && len(n.Children) > 0 {
			if err := renderLevel(b, n.Children, depth+1, limit); err != nil {
				return err
			}
		}
		b.WriteString(`</li>`)
	}
	b.WriteString(`</ul>`)
	return nil
}
