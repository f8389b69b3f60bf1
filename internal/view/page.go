package view

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"io/fs"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// SystemOption is one entry of the star system selector
type SystemOption struct {
	ID   string
	Name string
}

// PageData feeds the console template
type PageData struct {
	Title   string
	Version string
	Systems []SystemOption
	Fact    string
	// State is the console state at render time, marshalled into the page
	State interface{}
}

// Renderer renders the console page
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"json": func(v interface{}) (template.JS, error) {
			b, err := json.Marshal(v)
			if err != nil {
				return "", err
			}
			return template.JS(b), nil
		},
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Page writes the console page
func (r *Renderer) Page(w io.Writer, data PageData) error {
	if data.Title == "" {
		data.Title = "The Echo Lens"
	}
	if err := r.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}

// Static returns the embedded stylesheet and script files
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
