package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// pageFiles maps a page name to the template files that assemble it. Every
// page hangs off the shared layout.
var pageFiles = map[string][]string{
	"index":    {"templates/layout.html", "templates/index.html"},
	"detail":   {"templates/layout.html", "templates/arc_detail.html"},
	"notfound": {"templates/layout.html", "templates/notfound.html"},
	"error":    {"templates/layout.html", "templates/error.html"},
}

// Templates holds the parsed page templates. Templates carry no logic
// beyond ranging over prepared view models; anything resembling a decision
// lives in the viewmodel package.
type Templates struct {
	pages map[string]*template.Template
}

// ParseTemplates parses every page from the embedded template files.
func ParseTemplates() (*Templates, error) {
	funcs := template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}

	parsed := make(map[string]*template.Template, len(pageFiles))
	for name, files := range pageFiles {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, files...)
		if err != nil {
			return nil, fmt.Errorf("parse page %q: %w", name, err)
		}
		parsed[name] = t
	}
	return &Templates{pages: parsed}, nil
}

// Render executes the named page into w.
func (t *Templates) Render(w io.Writer, page string, data interface{}) error {
	tmpl, ok := t.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	return tmpl.ExecuteTemplate(w, "layout.html", data)
}
