package pokeapi

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/tbeier/pokedex-web/internal/testutil"
)

func newTestClient(t *testing.T, mock *testutil.MockCatalog) *Client {
	t.Helper()

	cfg := DefaultConfig()
	cfg.BaseURL = mock.URL()

	client, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return client
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "defaults", cfg: DefaultConfig(), wantErr: false},
		{name: "missing base url", cfg: Config{}, wantErr: true},
		{name: "custom base url", cfg: Config{BaseURL: "http://localhost:1234"}, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestListPokemon(t *testing.T) {
	mock := testutil.NewMockCatalog()
	defer mock.Close()
	mock.SetPokemonList(1302, "bulbasaur", "ivysaur", "venusaur")

	client := newTestClient(t, mock)

	list, err := client.ListPokemon(context.Background(), 2, 1)
	if err != nil {
		t.Fatalf("ListPokemon failed: %v", err)
	}

	if list.Count != 1302 {
		t.Errorf("Count = %d, want 1302", list.Count)
	}
	if len(list.Results) != 2 {
		t.Fatalf("len(Results) = %d, want 2", len(list.Results))
	}
	if list.Results[0].Name != "ivysaur" || list.Results[1].Name != "venusaur" {
		t.Errorf("Results = %+v, want ivysaur, venusaur", list.Results)
	}
}

func TestGetPokemon(t *testing.T) {
	mock := testutil.NewMockCatalog()
	defer mock.Close()
	mock.SetPokemon("bulbasaur", 1, 1)

	client := newTestClient(t, mock)

	p, err := client.GetPokemon(context.Background(), "bulbasaur")
	if err != nil {
		t.Fatalf("GetPokemon failed: %v", err)
	}

	if p.Name != "bulbasaur" {
		t.Errorf("Name = %q, want bulbasaur", p.Name)
	}
	if p.Height != 7 || p.Weight != 69 {
		t.Errorf("Height/Weight = %d/%d, want 7/69", p.Height, p.Weight)
	}
	if p.Sprites.FrontDefault == "" {
		t.Error("Expected frontal sprite URL")
	}
	if len(p.Abilities) != 1 || p.Abilities[0].Ability.Name != "overgrow" {
		t.Errorf("Abilities = %+v, want [overgrow]", p.Abilities)
	}
	if len(p.Types) != 1 || p.Types[0].Type.Name != "grass" {
		t.Errorf("Types = %+v, want [grass]", p.Types)
	}
}

func TestGetPokemon_NotFound(t *testing.T) {
	mock := testutil.NewMockCatalog()
	defer mock.Close()

	client := newTestClient(t, mock)

	_, err := client.GetPokemon(context.Background(), "missingno")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestGetSpecies(t *testing.T) {
	mock := testutil.NewMockCatalog()
	defer mock.Close()
	mock.SetSpecies(1, "bulbasaur")

	client := newTestClient(t, mock)

	s, err := client.GetSpecies(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetSpecies failed: %v", err)
	}
	if s.Name != "bulbasaur" {
		t.Errorf("Name = %q, want bulbasaur", s.Name)
	}
}

func TestListSpecies(t *testing.T) {
	mock := testutil.NewMockCatalog()
	defer mock.Close()
	mock.SetSpeciesList("bulbasaur", "ivysaur")

	client := newTestClient(t, mock)

	list, err := client.ListSpecies(context.Background(), 10000)
	if err != nil {
		t.Fatalf("ListSpecies failed: %v", err)
	}
	if len(list.Results) != 2 {
		t.Fatalf("len(Results) = %d, want 2", len(list.Results))
	}
	if list.Results[0].Name != "bulbasaur" || list.Results[1].Name != "ivysaur" {
		t.Errorf("Results = %+v, want bulbasaur, ivysaur in upstream order", list.Results)
	}
}

func TestGet_ErrorClassification(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantClass  ErrorClass
	}{
		{name: "server error", statusCode: http.StatusInternalServerError, wantClass: ErrorClassServer},
		{name: "bad gateway", statusCode: http.StatusBadGateway, wantClass: ErrorClassServer},
		{name: "client error", statusCode: http.StatusTooManyRequests, wantClass: ErrorClassClient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := testutil.NewMockCatalog()
			defer mock.Close()
			mock.SetResponse("/pokemon/bulbasaur", testutil.MockResponse{StatusCode: tt.statusCode})

			client := newTestClient(t, mock)

			_, err := client.GetPokemon(context.Background(), "bulbasaur")
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("Expected *APIError, got %v", err)
			}
			if apiErr.Class != tt.wantClass {
				t.Errorf("Class = %s, want %s", apiErr.Class, tt.wantClass)
			}
			if apiErr.StatusCode != tt.statusCode {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.statusCode)
			}
		})
	}
}

func TestGet_DecodeFailure(t *testing.T) {
	mock := testutil.NewMockCatalog()
	defer mock.Close()
	mock.SetResponse("/pokemon/bulbasaur", testutil.MockResponse{
		StatusCode: http.StatusOK,
		Body:       `{"name": "bulbasaur", "height": "not-a-number"}`,
	})

	client := newTestClient(t, mock)

	_, err := client.GetPokemon(context.Background(), "bulbasaur")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *APIError, got %v", err)
	}
	if apiErr.Class != ErrorClassDecode {
		t.Errorf("Class = %s, want %s", apiErr.Class, ErrorClassDecode)
	}
}

func TestGet_NetworkFailure(t *testing.T) {
	mock := testutil.NewMockCatalog()
	mock.Close() // connection refused from here on

	client := newTestClient(t, mock)

	_, err := client.ListPokemon(context.Background(), 20, 0)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *APIError, got %v", err)
	}
	if apiErr.Class != ErrorClassNetwork {
		t.Errorf("Class = %s, want %s", apiErr.Class, ErrorClassNetwork)
	}
}

func TestGet_SendsHeaders(t *testing.T) {
	mock := testutil.NewMockCatalog()
	defer mock.Close()

	var gotUA, gotAccept string
	mock.SetHandler("/pokemon", func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count":0,"results":[]}`))
	})

	client := newTestClient(t, mock)

	if _, err := client.ListPokemon(context.Background(), 1, 0); err != nil {
		t.Fatalf("ListPokemon failed: %v", err)
	}
	if gotUA != "pokedex-web/1.0" {
		t.Errorf("User-Agent = %q, want pokedex-web/1.0", gotUA)
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q, want application/json", gotAccept)
	}
}

func TestNamedResource_ID(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    int
		wantErr bool
	}{
		{name: "trailing slash", url: "https://pokeapi.co/api/v2/pokemon-species/1/", want: 1},
		{name: "no trailing slash", url: "https://pokeapi.co/api/v2/pokemon-species/42", want: 42},
		{name: "not numeric", url: "https://pokeapi.co/api/v2/pokemon-species/abc/", wantErr: true},
		{name: "empty", url: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NamedResource{URL: tt.url}.ID()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ID() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ID() = %d, want %d", got, tt.want)
			}
		})
	}
}
