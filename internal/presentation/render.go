package presentation

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

type Page struct {
	Title      string
	View       View
	Theme      Theme
	Palette    Palette
	City       string
	AutoLocate bool
}

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("widget.html").ParseFS(templateFS, "templates/widget.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse widget template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the widget page. With autoLocate the page reports the browser
// position as soon as it loads.
func (r *Renderer) Render(w io.Writer, view View, theme Theme, city string, autoLocate bool) error {
	page := Page{
		Title:      "Météo",
		View:       view,
		Theme:      theme,
		Palette:    theme.Palette(),
		City:       city,
		AutoLocate: autoLocate,
	}
	if err := r.tmpl.Execute(w, page); err != nil {
		return fmt.Errorf("failed to render widget: %w", err)
	}
	return nil
}
