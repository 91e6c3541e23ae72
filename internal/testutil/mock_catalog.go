// Package testutil provides a configurable mock upstream catalog server
// for tests.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
)

// MockResponse defines the behavior of one mock endpoint.
type MockResponse struct {
	StatusCode int
	Body       string
}

// MockCatalog is a configurable mock catalog API server. Paths without a
// registered handler return 404, matching the upstream's behavior for
// unknown resources.
type MockCatalog struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]http.HandlerFunc
	requests map[string]int
}

// NewMockCatalog creates a mock catalog server with no registered endpoints.
func NewMockCatalog() *MockCatalog {
	mock := &MockCatalog{
		handlers: make(map[string]http.HandlerFunc),
		requests: make(map[string]int),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.requests[r.URL.Path]++
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, ok := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if ok {
			handler(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`"Not Found"`))
	}))

	return mock
}

// URL returns the mock server base URL.
func (m *MockCatalog) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockCatalog) Close() {
	m.server.Close()
}

// Reset clears all handlers and request counters.
func (m *MockCatalog) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers = make(map[string]http.HandlerFunc)
	m.requests = make(map[string]int)
}

// SetHandler registers a custom handler for path.
func (m *MockCatalog) SetHandler(path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse registers a fixed response for path.
func (m *MockCatalog) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			_, _ = w.Write([]byte(resp.Body))
		}
	})
}

// RequestCount returns how many requests hit path so far.
func (m *MockCatalog) RequestCount(path string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.requests[path]
}

// TotalRequests returns the number of requests across all paths.
func (m *MockCatalog) TotalRequests() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := 0
	for _, n := range m.requests {
		total += n
	}
	return total
}

// SetPokemonList serves GET /pokemon with the given entry names and reported
// total count. The limit/offset query parameters are applied to names, so a
// single call covers every page the test touches.
func (m *MockCatalog) SetPokemonList(count int, names ...string) {
	base := m.URL()
	m.SetHandler("/pokemon", func(w http.ResponseWriter, r *http.Request) {
		limit := queryInt(r, "limit", 20)
		offset := queryInt(r, "offset", 0)

		page := names
		if offset < len(page) {
			page = page[offset:]
		} else {
			page = nil
		}
		if limit < len(page) {
			page = page[:limit]
		}

		results := make([]string, 0, len(page))
		for _, name := range page {
			results = append(results,
				fmt.Sprintf(`{"name":%q,"url":"%s/pokemon/%s/"}`, name, base, name))
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"count":%d,"next":null,"previous":null,"results":[%s]}`,
			count, strings.Join(results, ","))
	})
}

// SetPokemon serves GET /pokemon/{name} with a minimal well-formed detail
// record pointing at species speciesID.
func (m *MockCatalog) SetPokemon(name string, id, speciesID int) {
	body := fmt.Sprintf(`{
		"id": %d,
		"name": %q,
		"height": 7,
		"weight": 69,
		"sprites": {"front_default": "https://img.example/%s.png"},
		"abilities": [{"ability": {"name": "overgrow", "url": ""}, "is_hidden": false, "slot": 1}],
		"types": [{"type": {"name": "grass", "url": ""}, "slot": 1}],
		"species": {"name": %q, "url": "%s/pokemon-species/%d/"}
	}`, id, name, name, name, m.URL(), speciesID)
	m.SetResponse("/pokemon/"+name, MockResponse{StatusCode: http.StatusOK, Body: body})
}

// SetSpecies serves GET /pokemon-species/{id} with the given display name.
func (m *MockCatalog) SetSpecies(id int, name string) {
	m.SetResponse("/pokemon-species/"+strconv.Itoa(id), MockResponse{
		StatusCode: http.StatusOK,
		Body:       fmt.Sprintf(`{"id":%d,"name":%q}`, id, name),
	})
}

// SetSpeciesList serves GET /pokemon-species with the given names.
func (m *MockCatalog) SetSpeciesList(names ...string) {
	results := make([]string, 0, len(names))
	for i, name := range names {
		results = append(results,
			fmt.Sprintf(`{"name":%q,"url":"%s/pokemon-species/%d/"}`, name, m.URL(), i+1))
	}
	m.SetResponse("/pokemon-species", MockResponse{
		StatusCode: http.StatusOK,
		Body: fmt.Sprintf(`{"count":%d,"next":null,"previous":null,"results":[%s]}`,
			len(names), strings.Join(results, ",")),
	})
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
