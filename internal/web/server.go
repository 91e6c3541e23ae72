// Package web is the HTTP presentation shell: HTML list and detail views
// over the catalog service, spreadsheet download, and email export.
package web

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/tbeier/pokedex-web/pkg/catalog"
	"github.com/tbeier/pokedex-web/pkg/logging"
)

// Catalog is the core surface the shell renders. *catalog.Service
// satisfies it.
type Catalog interface {
	FetchPage(ctx context.Context, page, pageSize int, nameFilter, speciesFilter string) (catalog.PageResult, error)
	SpeciesNames(ctx context.Context) ([]string, error)
	Detail(ctx context.Context, name string) (*catalog.Detail, error)
}

// Mailer delivers a spreadsheet export to a recipient.
type Mailer interface {
	Send(ctx context.Context, to string, attachment []byte) error
}

// Config holds the shell configuration.
type Config struct {
	// DefaultPageSize is used when the request carries no pageSize.
	DefaultPageSize int
}

// Server holds the shell's dependencies and handlers.
type Server struct {
	catalog   Catalog
	mailer    Mailer // nil when outgoing mail is not configured
	cfg       Config
	templates *templates
	logger    zerolog.Logger
}

// New creates the shell. mailer may be nil; the email endpoint then reports
// a generic failure.
func New(cat Catalog, mailer Mailer, cfg Config) (*Server, error) {
	if cfg.DefaultPageSize < 1 {
		cfg.DefaultPageSize = 20
	}

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	return &Server{
		catalog:   cat,
		mailer:    mailer,
		cfg:       cfg,
		templates: tmpl,
		logger:    logging.NewLogger("web"),
	}, nil
}

// Router builds the HTTP handler with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Get("/", s.handleList)
	r.Get("/pokemon/{name}", s.handleDetail)
	r.Get("/export.xlsx", s.handleExport)
	r.Post("/email", s.handleEmail)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}
