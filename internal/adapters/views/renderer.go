// Package views renders the HTML pages from the current catalogue.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"travelguide/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

type Renderer struct{ t *template.Template }

func New() (*Renderer, error) {
	t, err := template.New("").Funcs(template.FuncMap{"deref": deref}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{t: t}, nil
}

func deref(p any) any {
	switch v := p.(type) {
	case *string:
		if v == nil {
			return ""
		}
		return *v
	case *int64:
		if v == nil {
			return ""
		}
		return *v
	}
	return p
}

type IndexPage struct {
	Query        string
	Destinations []domain.Destination
}

type DestinationPage struct {
	Destination domain.Destination
	Comments    []domain.Comment
}

func (r *Renderer) render(w io.Writer, name string, data any) error {
	if err := r.t.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}

func (r *Renderer) Index(w io.Writer, p IndexPage) error { return r.render(w, "index", p) }

func (r *Renderer) Destination(w io.Writer, p DestinationPage) error {
	return r.render(w, "destination", p)
}

func (r *Renderer) Users(w io.Writer, us []domain.User) error { return r.render(w, "users", us) }

func (r *Renderer) Comments(w io.Writer, cs []domain.Comment) error {
	return r.render(w, "comments", cs)
}

func (r *Renderer) NotFound(w io.Writer, msg string) error { return r.render(w, "notfound", msg) }
