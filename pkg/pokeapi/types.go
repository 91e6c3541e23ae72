package pokeapi

import (
	"fmt"
	"strconv"
	"strings"
)

// NamedResource is the {name, url} pair the catalog uses to reference other
// resources.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ID extracts the numeric resource identifier from the trailing path segment
// of the resource URL (e.g. ".../pokemon-species/1/" -> 1).
func (r NamedResource) ID() (int, error) {
	trimmed := strings.TrimRight(r.URL, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 || idx == len(trimmed)-1 {
		return 0, fmt.Errorf("no id segment in resource url %q", r.URL)
	}

	id, err := strconv.Atoi(trimmed[idx+1:])
	if err != nil {
		return 0, fmt.Errorf("parse id segment of %q: %w", r.URL, err)
	}
	return id, nil
}

// NamedResourceList is the paged listing envelope returned by the catalog's
// collection endpoints.
type NamedResourceList struct {
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []NamedResource `json:"results"`
}

// Sprites holds the image references of a catalog entry. Only the frontal
// default sprite is used; the upstream serves null when an entry has none.
type Sprites struct {
	FrontDefault string `json:"front_default"`
}

// AbilitySlot is one entry of a Pokemon's ordered ability list.
type AbilitySlot struct {
	Ability  NamedResource `json:"ability"`
	IsHidden bool          `json:"is_hidden"`
	Slot     int           `json:"slot"`
}

// TypeSlot is one entry of a Pokemon's ordered type list.
type TypeSlot struct {
	Type NamedResource `json:"type"`
	Slot int           `json:"slot"`
}

// Pokemon is the primary detail record of a catalog entry as served by
// GET /pokemon/{name}.
type Pokemon struct {
	ID        int           `json:"id"`
	Name      string        `json:"name"`
	Height    int           `json:"height"`
	Weight    int           `json:"weight"`
	Sprites   Sprites       `json:"sprites"`
	Abilities []AbilitySlot `json:"abilities"`
	Types     []TypeSlot    `json:"types"`
	Species   NamedResource `json:"species"`
}

// Species is the record served by GET /pokemon-species/{id}. Only the name
// is consumed; it is the display name resolved for detail views.
type Species struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
