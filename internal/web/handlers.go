package web

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tbeier/pokedex-web/internal/export"
	"github.com/tbeier/pokedex-web/pkg/catalog"
	"github.com/tbeier/pokedex-web/pkg/pokeapi"
)

// pageQuery is the filter/pagination state carried through every route.
type pageQuery struct {
	Page     int
	PageSize int
	Name     string
	Species  string
}

// parsePageQuery reads the common query parameters, falling back to page 1
// and the configured default page size on absent or malformed values.
func (s *Server) parsePageQuery(r *http.Request) pageQuery {
	q := r.URL.Query()
	return pageQuery{
		Page:     positiveInt(q.Get("page"), 1),
		PageSize: positiveInt(q.Get("pageSize"), s.cfg.DefaultPageSize),
		Name:     q.Get("name"),
		Species:  q.Get("species"),
	}
}

func positiveInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// values encodes the query state, omitting empty filters.
func (p pageQuery) values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(p.Page))
	v.Set("pageSize", strconv.Itoa(p.PageSize))
	if p.Name != "" {
		v.Set("name", p.Name)
	}
	if p.Species != "" {
		v.Set("species", p.Species)
	}
	return v
}

func (p pageQuery) url(path string) string {
	return path + "?" + p.values().Encode()
}

func (p pageQuery) withPage(page int) pageQuery {
	p.Page = page
	return p
}

// listViewData feeds the list template.
type listViewData struct {
	Page         int
	PageSize     int
	Name         string
	Species      string
	Items        []catalog.Summary
	Total        int
	SpeciesNames []string
	HasPrev      bool
	HasNext      bool
	PrevURL      string
	NextURL      string
	ExportURL    string
	Sent         bool
	FlashErr     string
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	query := s.parsePageQuery(r)

	result, err := s.catalog.FetchPage(r.Context(), query.Page, query.PageSize, query.Name, query.Species)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	// The filter dropdown is decoration; an empty list is better than a
	// failed page.
	speciesNames, err := s.catalog.SpeciesNames(r.Context())
	if err != nil {
		s.logger.Warn().Err(err).Msg("Species dropdown unavailable")
		speciesNames = nil
	}

	data := listViewData{
		Page:         query.Page,
		PageSize:     query.PageSize,
		Name:         query.Name,
		Species:      query.Species,
		Items:        result.Items,
		Total:        result.Total,
		SpeciesNames: speciesNames,
		HasPrev:      query.Page > 1,
		HasNext:      query.Page*query.PageSize < result.Total,
		PrevURL:      query.withPage(query.Page - 1).url("/"),
		NextURL:      query.withPage(query.Page + 1).url("/"),
		ExportURL:    query.url("/export.xlsx"),
		Sent:         r.URL.Query().Get("sent") == "1",
		FlashErr:     r.URL.Query().Get("err"),
	}

	render(w, s.logger, s.templates.list, http.StatusOK, data)
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	detail, err := s.catalog.Detail(r.Context(), name)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	if detail == nil {
		render(w, s.logger, s.templates.notFound, http.StatusNotFound, struct{ Name string }{Name: name})
		return
	}

	render(w, s.logger, s.templates.detail, http.StatusOK, detail)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	query := s.parsePageQuery(r)

	result, err := s.catalog.FetchPage(r.Context(), query.Page, query.PageSize, query.Name, query.Species)
	if err != nil {
		webExportsTotal.WithLabelValues("download", "error").Inc()
		s.renderError(w, r, err)
		return
	}

	// Build the workbook fully before writing headers, so a failure never
	// leaves a truncated download behind.
	var buf bytes.Buffer
	if err := export.Write(&buf, result.Items); err != nil {
		webExportsTotal.WithLabelValues("download", "error").Inc()
		s.renderError(w, r, err)
		return
	}

	webExportsTotal.WithLabelValues("download", "ok").Inc()

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Warn().Err(err).Msg("Export download interrupted")
	}
}

func (s *Server) handleEmail(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.redirectFlash(w, r, pageQuery{Page: 1, PageSize: s.cfg.DefaultPageSize}, "invalid form")
		return
	}

	query := pageQuery{
		Page:     positiveInt(r.PostFormValue("page"), 1),
		PageSize: positiveInt(r.PostFormValue("pageSize"), s.cfg.DefaultPageSize),
		Name:     r.PostFormValue("name"),
		Species:  r.PostFormValue("species"),
	}

	to := r.PostFormValue("to")
	if to == "" {
		s.redirectFlash(w, r, query, "recipient address is required")
		return
	}

	if s.mailer == nil {
		webExportsTotal.WithLabelValues("email", "error").Inc()
		s.redirectFlash(w, r, query, "email is not configured")
		return
	}

	result, err := s.catalog.FetchPage(r.Context(), query.Page, query.PageSize, query.Name, query.Species)
	if err != nil {
		webExportsTotal.WithLabelValues("email", "error").Inc()
		s.logger.Error().Err(err).Msg("Email export page fetch failed")
		s.redirectFlash(w, r, query, "export failed")
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, result.Items); err != nil {
		webExportsTotal.WithLabelValues("email", "error").Inc()
		s.logger.Error().Err(err).Msg("Email export workbook build failed")
		s.redirectFlash(w, r, query, "export failed")
		return
	}

	if err := s.mailer.Send(r.Context(), to, buf.Bytes()); err != nil {
		webExportsTotal.WithLabelValues("email", "error").Inc()
		s.logger.Error().Err(err).Msg("Email export delivery failed")
		s.redirectFlash(w, r, query, "export failed")
		return
	}

	webExportsTotal.WithLabelValues("email", "ok").Inc()

	v := query.values()
	v.Set("sent", "1")
	http.Redirect(w, r, "/?"+v.Encode(), http.StatusSeeOther)
}

// redirectFlash sends the caller back to the list view with a short generic
// failure message; internals never leak to the flash.
func (s *Server) redirectFlash(w http.ResponseWriter, r *http.Request, query pageQuery, message string) {
	v := query.values()
	v.Set("err", message)
	http.Redirect(w, r, "/?"+v.Encode(), http.StatusSeeOther)
}

// renderError maps a failure to a terse response: 502 for upstream catalog
// faults, 500 for everything else. Detail stays in the log.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	var apiErr *pokeapi.APIError
	if errors.As(err, &apiErr) {
		status = http.StatusBadGateway
		message = "upstream catalog unavailable"
	}

	s.logger.Error().
		Err(err).
		Str("path", r.URL.Path).
		Int("status", status).
		Msg("Request failed")

	http.Error(w, message, status)
}
