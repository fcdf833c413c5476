package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"minimarks/internal/domain"
)

//go:embed templates/*.html static
var files embed.FS

// Page is the data handed to every template.
type Page struct {
	Title     string
	Viewer    domain.Viewer
	Bookmarks []domain.Bookmark

	// Error renders inline above the form (validation and login failures).
	Error string

	// ShowAddForm enables the add-bookmark form (own feed only).
	ShowAddForm bool

	// Form echoes submitted values back into form fields after an error.
	Form map[string]string
}

// FormValue returns the echoed form value for key, empty when none.
func (p Page) FormValue(key string) string {
	return p.Form[key]
}

var funcs = template.FuncMap{
	"datetime": func(t time.Time) string {
		return t.UTC().Format("2006-01-02 @ 15:04")
	},
}

// Renderer holds the parsed page templates.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page template against the shared layout.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, name := range []string{"feed", "login", "register"} {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(files,
			"templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render writes the named page with the given status code.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return t.ExecuteTemplate(w, "layout.html", page)
}

// StaticHandler serves the embedded static assets (placeholder thumbnail).
func StaticHandler() http.Handler {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
