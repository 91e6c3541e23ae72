package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templateFS embed.FS

// templates holds the parsed page templates, keyed by file name.
type templates struct {
	list     *template.Template
	detail   *template.Template
	notFound *template.Template
}

func parseTemplates() (*templates, error) {
	parse := func(name string) (*template.Template, error) {
		t, err := template.ParseFS(templateFS, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		return t, nil
	}

	list, err := parse("list.html")
	if err != nil {
		return nil, err
	}
	detail, err := parse("detail.html")
	if err != nil {
		return nil, err
	}
	notFound, err := parse("notfound.html")
	if err != nil {
		return nil, err
	}

	return &templates{list: list, detail: detail, notFound: notFound}, nil
}

// render writes a page template with status. Render failures past the
// header write can only be logged.
func render(w http.ResponseWriter, logger zerolog.Logger, t *template.Template, status int, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.Execute(w, data); err != nil {
		logger.Error().Err(err).Str("template", t.Name()).Msg("Template render failed")
	}
}
