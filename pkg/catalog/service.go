package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tbeier/pokedex-web/pkg/cache"
	"github.com/tbeier/pokedex-web/pkg/fanout"
	"github.com/tbeier/pokedex-web/pkg/logging"
	"github.com/tbeier/pokedex-web/pkg/pokeapi"
)

// Cache TTLs and keys. The TTLs are part of the service contract, not
// configuration.
const (
	speciesListTTL = 6 * time.Hour
	detailTTL      = 30 * time.Minute

	speciesListKey  = "species:all"
	detailKeyPrefix = "pokemon:"

	// speciesListLimit is the page size for the one-shot species listing.
	// Large enough to cover the whole catalog in a single request.
	speciesListLimit = 10000
)

// API is the upstream surface the service consumes. *pokeapi.Client
// satisfies it; tests substitute their own.
type API interface {
	ListPokemon(ctx context.Context, limit, offset int) (*pokeapi.NamedResourceList, error)
	GetPokemon(ctx context.Context, name string) (*pokeapi.Pokemon, error)
	GetSpecies(ctx context.Context, id int) (*pokeapi.Species, error)
	ListSpecies(ctx context.Context, limit int) (*pokeapi.NamedResourceList, error)
}

// Summary is the minimal projection of a catalog entry used in list views.
// SpeciesName and ImageURL are empty when the upstream has none.
type Summary struct {
	Name        string `json:"name"`
	SpeciesName string `json:"species_name,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// Detail is the full record for one catalog entry.
type Detail struct {
	Name        string   `json:"name"`
	SpeciesName string   `json:"species_name,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
	Height      int      `json:"height"`
	Weight      int      `json:"weight"`
	Abilities   []string `json:"abilities"`
	Types       []string `json:"types"`
}

// Summary projects the detail record into its list-view form.
func (d *Detail) Summary() Summary {
	return Summary{
		Name:        d.Name,
		SpeciesName: d.SpeciesName,
		ImageURL:    d.ImageURL,
	}
}

// PageResult is one filtered page of the catalog. Total is the size of the
// FULL unfiltered catalog as reported by the upstream, independent of the
// active filters; callers presenting it next to a filtered page should say
// so in their wording.
type PageResult struct {
	Items []Summary `json:"items"`
	Total int       `json:"total"`
}

// cachedDetail is the cache representation of a detail lookup. Found=false
// records a not-found result so unknown names do not hit the upstream on
// every request.
type cachedDetail struct {
	Found  bool    `json:"found"`
	Detail *Detail `json:"detail,omitempty"`
}

// Config holds the service configuration.
type Config struct {
	// DetailConcurrency is the number of per-entry detail resolutions
	// running at once during a page fetch. 1 (the default) resolves
	// entries strictly in sequence.
	DetailConcurrency int
}

// DefaultConfig returns the default service configuration.
func DefaultConfig() Config {
	return Config{DetailConcurrency: 1}
}

// Service is the cache-backed catalog aggregation service. Safe for
// concurrent use.
type Service struct {
	api    API
	store  cache.Store
	cfg    Config
	logger zerolog.Logger
	group  singleflight.Group
}

// New creates a catalog service on top of the upstream API and a cache
// store.
func New(api API, store cache.Store, cfg Config) (*Service, error) {
	if api == nil {
		return nil, fmt.Errorf("upstream API is required")
	}
	if store == nil {
		return nil, fmt.Errorf("cache store is required")
	}
	if cfg.DetailConcurrency <= 0 {
		cfg.DetailConcurrency = 1
	}

	return &Service{
		api:    api,
		store:  store,
		cfg:    cfg,
		logger: logging.NewLogger("catalog"),
	}, nil
}

// FetchPage returns one page of the catalog, filtered by name and species.
//
// The name filter is applied to the raw listing before any detail is
// resolved; the species filter is applied to the resolved species name.
// Both are case-insensitive substring matches, and an entry without a
// species never matches a non-empty species filter. Entries whose detail
// resolution fails are dropped from the page without failing the call.
// Upstream order is preserved. With filters active the page may hold fewer
// than pageSize items even though more pages exist upstream.
func (s *Service) FetchPage(ctx context.Context, page, pageSize int, nameFilter, speciesFilter string) (PageResult, error) {
	if page < 1 {
		return PageResult{}, fmt.Errorf("page must be >= 1, got %d", page)
	}
	if pageSize < 1 {
		return PageResult{}, fmt.Errorf("page size must be >= 1, got %d", pageSize)
	}

	offset := (page - 1) * pageSize

	list, err := s.api.ListPokemon(ctx, pageSize, offset)
	if err != nil {
		return PageResult{}, fmt.Errorf("list catalog page %d: %w", page, err)
	}

	// Name filtering happens before detail resolution, so filtered-out
	// entries never cost a detail fetch.
	names := make([]string, 0, len(list.Results))
	for _, ref := range list.Results {
		if nameFilter != "" && !containsFold(ref.Name, nameFilter) {
			continue
		}
		names = append(names, ref.Name)
	}

	items := fanout.Resolve(ctx, names, s.cfg.DetailConcurrency,
		func(ctx context.Context, name string) (Summary, bool) {
			detail, err := s.Detail(ctx, name)
			if err != nil {
				s.logger.Warn().
					Err(err).
					Str("name", name).
					Int("page", page).
					Msg("Dropping entry, detail resolution failed")
				return Summary{}, false
			}
			if detail == nil {
				s.logger.Debug().
					Str("name", name).
					Msg("Dropping entry, unknown upstream")
				return Summary{}, false
			}
			if speciesFilter != "" {
				if detail.SpeciesName == "" || !containsFold(detail.SpeciesName, speciesFilter) {
					return Summary{}, false
				}
			}
			return detail.Summary(), true
		})
	if items == nil {
		items = []Summary{}
	}

	total := s.catalogTotal(ctx)
	if total < 0 {
		total = len(items)
	}

	s.logger.Debug().
		Int("page", page).
		Int("page_size", pageSize).
		Int("items", len(items)).
		Int("total", total).
		Msg("Page assembled")

	return PageResult{Items: items, Total: total}, nil
}

// catalogTotal reads the full catalog size with a minimal listing request.
// Returns -1 when the upstream is unavailable; FetchPage then falls back to
// the count of items actually returned.
func (s *Service) catalogTotal(ctx context.Context) int {
	list, err := s.api.ListPokemon(ctx, 1, 0)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Catalog total unavailable, falling back to page item count")
		return -1
	}
	return list.Count
}

// SpeciesNames returns all species display names in upstream order, cached
// for 6 hours. Fetch failures propagate and are not cached, so the next
// call retries the live fetch. The result is never nil.
func (s *Service) SpeciesNames(ctx context.Context) ([]string, error) {
	v, err, _ := s.group.Do(speciesListKey, func() (any, error) {
		if data, err := s.store.Get(ctx, speciesListKey); err == nil {
			var names []string
			if err := json.Unmarshal(data, &names); err == nil {
				s.logger.Debug().Str("key", speciesListKey).Bool("cache_hit", true).Msg("Species list served from cache")
				return names, nil
			}
			s.logger.Warn().Str("key", speciesListKey).Msg("Discarding undecodable species cache entry")
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn().Err(err).Str("key", speciesListKey).Msg("Species cache read failed, fetching live")
		}

		list, err := s.api.ListSpecies(ctx, speciesListLimit)
		if err != nil {
			return nil, fmt.Errorf("list species: %w", err)
		}

		names := make([]string, 0, len(list.Results))
		for _, ref := range list.Results {
			names = append(names, ref.Name)
		}

		if data, err := json.Marshal(names); err == nil {
			if err := s.store.Set(ctx, speciesListKey, data, speciesListTTL); err != nil {
				s.logger.Warn().Err(err).Str("key", speciesListKey).Msg("Species cache write failed")
			}
		}

		return names, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

// Detail returns the full record for name, cached for 30 minutes. Returns
// (nil, nil) when the catalog has no such entry; the negative result is
// cached too. Transport and decode failures propagate and are not cached.
func (s *Service) Detail(ctx context.Context, name string) (*Detail, error) {
	key := detailKeyPrefix + strings.ToLower(name)

	v, err, _ := s.group.Do(key, func() (any, error) {
		if data, err := s.store.Get(ctx, key); err == nil {
			var cached cachedDetail
			if err := json.Unmarshal(data, &cached); err == nil {
				s.logger.Debug().Str("key", key).Bool("cache_hit", true).Msg("Detail served from cache")
				return cached.Detail, nil
			}
			s.logger.Warn().Str("key", key).Msg("Discarding undecodable detail cache entry")
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn().Err(err).Str("key", key).Msg("Detail cache read failed, fetching live")
		}

		detail, err := s.fetchDetail(ctx, name)
		if err != nil {
			return nil, err
		}

		if data, err := json.Marshal(cachedDetail{Found: detail != nil, Detail: detail}); err == nil {
			if err := s.store.Set(ctx, key, data, detailTTL); err != nil {
				s.logger.Warn().Err(err).Str("key", key).Msg("Detail cache write failed")
			}
		}

		return detail, nil
	})
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	return v.(*Detail), nil
}

// fetchDetail composes the detail record from the primary record and the
// secondary species lookup. A nil record with nil error means not-found.
func (s *Service) fetchDetail(ctx context.Context, name string) (*Detail, error) {
	p, err := s.api.GetPokemon(ctx, name)
	if err != nil {
		if errors.Is(err, pokeapi.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pokemon %q: %w", name, err)
	}

	// Species resolution is best-effort: on any failure the entry keeps an
	// empty species name instead of failing the whole lookup.
	speciesName := ""
	if id, err := p.Species.ID(); err != nil {
		s.logger.Warn().Err(err).Str("name", name).Msg("Species reference unparseable, leaving species empty")
	} else if species, err := s.api.GetSpecies(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("name", name).Int("species_id", id).Msg("Species lookup failed, leaving species empty")
	} else {
		speciesName = species.Name
	}

	abilities := make([]string, 0, len(p.Abilities))
	for _, a := range p.Abilities {
		abilities = append(abilities, a.Ability.Name)
	}

	types := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		types = append(types, t.Type.Name)
	}

	return &Detail{
		Name:        p.Name,
		SpeciesName: speciesName,
		ImageURL:    p.Sprites.FrontDefault,
		Height:      p.Height,
		Weight:      p.Weight,
		Abilities:   abilities,
		Types:       types,
	}, nil
}

// containsFold reports whether s contains substr, ignoring case.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
