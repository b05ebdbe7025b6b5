package web

import (
	"fmt"
	"html/template"
	"io/fs"

	"github.com/gin-gonic/gin/render"
)

// Renderer implements gin's render.HTMLRender over one template set per
// page, so every page can define its own "content" block.
type Renderer struct {
	Templates map[string]*template.Template
}

var _ render.HTMLRender = (*Renderer)(nil)

// NewRenderer parses the embedded layout with every page in Pages.
func NewRenderer() (*Renderer, error) {
	return ParseRenderer(templateFS, "templates", Pages)
}

// ParseRenderer builds a Renderer from fsys, where dir holds layout.html,
// partials.html and the named pages.
func ParseRenderer(fsys fs.FS, dir string, pages []string) (*Renderer, error) {
	base, err := template.New(layoutName).Funcs(Funcs()).
		ParseFS(fsys, dir+"/"+layoutName, dir+"/"+partialsName)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	r := &Renderer{Templates: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", name, err)
		}
		if _, err := t.ParseFS(fsys, dir+"/"+name); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.Templates[name] = t
	}
	return r, nil
}

// Instance returns the renderer for page name. Unknown names panic inside
// gin's HTML render, which the recovery middleware turns into a 500.
func (r *Renderer) Instance(name string, data any) render.Render {
	t, ok := r.Templates[name]
	if !ok {
		return render.HTML{Template: template.New(name), Name: name, Data: data}
	}
	if t.Lookup(layoutName) != nil {
		return render.HTML{Template: t, Name: layoutName, Data: data}
	}
	return render.HTML{Template: t, Data: data}
}
