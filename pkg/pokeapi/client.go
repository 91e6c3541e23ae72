// Package pokeapi provides the HTTP client for the upstream creature
// catalog API. It exposes the four read-only endpoints the catalog service
// consumes and classifies failures for logging and metrics.
//
// The client performs each request exactly once: retry and backoff are
// intentionally absent, and callers bound waiting via the request context
// or the configured transport timeout.
package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for upstream catalog requests.
var (
	apiRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pokeapi_requests_total",
		Help: "Total upstream catalog requests by endpoint and status",
	}, []string{"endpoint", "status"})

	apiRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pokeapi_request_duration_seconds",
		Help:    "Upstream catalog request duration in seconds by endpoint",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"endpoint"})

	apiErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pokeapi_errors_total",
		Help: "Total upstream catalog errors by class",
	}, []string{"class"})
)

// Logical endpoint names used as low-cardinality metric labels.
const (
	endpointListPokemon = "/pokemon"
	endpointGetPokemon  = "/pokemon/{name}"
	endpointListSpecies = "/pokemon-species"
	endpointGetSpecies  = "/pokemon-species/{id}"
)

// DefaultBaseURL is the public catalog API.
const DefaultBaseURL = "https://pokeapi.co/api/v2"

// Client is the upstream catalog API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL of the catalog API, without trailing slash.
	BaseURL string

	// UserAgent header sent with every request.
	UserAgent string

	// Timeout for a single upstream request. Zero means no client-side
	// timeout; callers then rely on the request context.
	Timeout time.Duration

	// HTTPClient overrides the default transport (for testing).
	HTTPClient *http.Client
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		UserAgent: "pokedex-web/1.0",
		Timeout:   10 * time.Second,
	}
}

// New creates a new catalog API client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		logger:     log.With().Str("component", "pokeapi").Logger(),
	}, nil
}

// ListPokemon returns one page of the catalog listing, starting at offset.
// The envelope's Count is the size of the full unfiltered catalog.
func (c *Client) ListPokemon(ctx context.Context, limit, offset int) (*NamedResourceList, error) {
	query := url.Values{
		"limit":  []string{strconv.Itoa(limit)},
		"offset": []string{strconv.Itoa(offset)},
	}

	var list NamedResourceList
	if err := c.get(ctx, endpointListPokemon, "/pokemon", query, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetPokemon fetches the primary detail record for the named entry.
// Returns ErrNotFound when the catalog has no such entry.
func (c *Client) GetPokemon(ctx context.Context, name string) (*Pokemon, error) {
	var p Pokemon
	if err := c.get(ctx, endpointGetPokemon, "/pokemon/"+url.PathEscape(name), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetSpecies fetches the species record by numeric identifier.
// Returns ErrNotFound when the catalog has no such species.
func (c *Client) GetSpecies(ctx context.Context, id int) (*Species, error) {
	var s Species
	if err := c.get(ctx, endpointGetSpecies, "/pokemon-species/"+strconv.Itoa(id), nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListSpecies returns up to limit species references in upstream order.
func (c *Client) ListSpecies(ctx context.Context, limit int) (*NamedResourceList, error) {
	query := url.Values{
		"limit": []string{strconv.Itoa(limit)},
	}

	var list NamedResourceList
	if err := c.get(ctx, endpointListSpecies, "/pokemon-species", query, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// get performs a single GET request against path and decodes the JSON body
// into v. There is exactly one attempt per call.
func (c *Client) get(ctx context.Context, endpoint, path string, query url.Values, v any) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	start := time.Now()
	defer func() {
		apiRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("url", reqURL).
		Msg("Executing catalog request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("Catalog request failed")
		apiErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		apiRequestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		return &APIError{Endpoint: endpoint, Class: ErrorClassNetwork, Err: err}
	}
	defer resp.Body.Close()

	apiRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode == http.StatusNotFound {
		c.logger.Debug().Str("endpoint", endpoint).Msg("Catalog entry not found")
		return ErrNotFound
	}

	if resp.StatusCode >= 400 {
		class := classifyStatus(resp.StatusCode)
		apiErrorsTotal.WithLabelValues(string(class)).Inc()

		c.logger.Warn().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Str("error_class", string(class)).
			Msg("Catalog request error")

		return &APIError{
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Class:      class,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		apiErrorsTotal.WithLabelValues(string(ErrorClassDecode)).Inc()

		c.logger.Warn().
			Err(err).
			Str("endpoint", endpoint).
			Msg("Catalog response decode failed")

		return &APIError{
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Class:      ErrorClassDecode,
			Err:        err,
		}
	}

	return nil
}
