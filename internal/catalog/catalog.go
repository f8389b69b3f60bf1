// Package catalog holds the read-only table of star systems offered by the console.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	lev "github.com/agnivade/levenshtein"

	"echolens/internal/models"
)

// ErrUnknownSystem is returned when an identifier is not in the catalog
var ErrUnknownSystem = errors.New("unknown star system")

// maxSuggestDistance bounds how far a typo may be from a real identifier
const maxSuggestDistance = 3

// UnknownSystemError carries the rejected identifier and the closest known one, if any.
type UnknownSystemError struct {
	ID         string
	Suggestion string
}

func (e *UnknownSystemError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown star system %q (did you mean %q?)", e.ID, e.Suggestion)
	}
	return fmt.Sprintf("unknown star system %q", e.ID)
}

func (e *UnknownSystemError) Unwrap() error { return ErrUnknownSystem }

// Entry pairs a catalog identifier with its record
type Entry struct {
	ID     string                  `json:"id"`
	Record models.StarSystemRecord `json:"record"`
}

// Catalog is an immutable keyed table of star systems. Order is declaration order.
type Catalog struct {
	entries []Entry
	index   map[string]int
}

// New builds a catalog from entries. Duplicate identifiers and invalid records are rejected.
func New(entries []Entry) (*Catalog, error) {
	c := &Catalog{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		id := strings.TrimSpace(e.ID)
		if id == "" {
			return nil, fmt.Errorf("catalog entry %q has an empty id", e.Record.Name)
		}
		if _, dup := c.index[id]; dup {
			return nil, fmt.Errorf("duplicate catalog id %q", id)
		}
		if err := e.Record.Validate(); err != nil {
			return nil, fmt.Errorf("catalog entry %q: %w", id, err)
		}
		c.index[id] = len(c.entries)
		c.entries = append(c.entries, Entry{ID: id, Record: e.Record})
	}
	return c, nil
}

// Default returns the built-in catalog
func Default() *Catalog {
	c, err := New(builtinSystems)
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return c
}

// Lookup returns a copy of the record for id.
func (c *Catalog) Lookup(id string) (models.StarSystemRecord, error) {
	if i, ok := c.index[id]; ok {
		return c.entries[i].Record, nil
	}
	suggestion, _ := c.Suggest(id)
	return models.StarSystemRecord{}, &UnknownSystemError{ID: id, Suggestion: suggestion}
}

// Contains reports whether id is a known identifier
func (c *Catalog) Contains(id string) bool {
	_, ok := c.index[id]
	return ok
}

// IDs returns identifiers in declaration order
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.entries))
	for i, e := range c.entries {
		ids[i] = e.ID
	}
	return ids
}

// Systems returns a copy of all entries in declaration order
func (c *Catalog) Systems() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of systems
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Suggest returns the closest known identifier within a small edit distance.
func (c *Catalog) Suggest(id string) (string, bool) {
	needle := strings.ToLower(strings.TrimSpace(id))
	if needle == "" {
		return "", false
	}

	type candidate struct {
		id   string
		dist int
	}
	var candidates []candidate
	for _, e := range c.entries {
		d := lev.ComputeDistance(needle, e.ID)
		if d <= maxSuggestDistance {
			candidates = append(candidates, candidate{id: e.ID, dist: d})
		}
	}
	if len(candidates) == 0 {
		return "", false
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].dist < candidates[j].dist
	})
	return candidates[0].id, true
}

// Merge returns a new catalog where overlay entries replace same-id entries in place
// and new ids are appended.
func (c *Catalog) Merge(overlay []Entry) (*Catalog, error) {
	merged := c.Systems()
	for _, e := range overlay {
		if i, ok := c.index[e.ID]; ok {
			merged[i] = e
			continue
		}
		merged = append(merged, e)
	}
	return New(merged)
}
