// Package catalog holds the schema catalogue: every schema known to a
// render pass, keyed by id, with the tolerant id matching the flattener
// relies on. Schemas are registered at load time and read-only afterwards.
package catalog

import (
	"strings"
	"sync"

	"github.com/gridworks/dataview/internal/field"
)

// Catalog is the schema registry. Safe for concurrent reads once loading is
// done.
type Catalog struct {
	mu      sync.RWMutex
	schemas map[string]*field.Schema
	order   []string
}

// New creates an empty catalogue.
func New() *Catalog {
	return &Catalog{schemas: make(map[string]*field.Schema)}
}

// Register adds a schema, resolving its field enumerations. Re-registering
// an id replaces the previous schema.
func (c *Catalog) Register(s *field.Schema) {
	s.Resolve()
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.schemas[s.ID]; !exists {
		c.order = append(c.order, s.ID)
	}
	c.schemas[s.ID] = s
}

// Schema returns the schema registered under exactly the given id, or nil.
func (c *Catalog) Schema(id string) *field.Schema {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.schemas[id]
}

// SchemaIDs returns all registered ids in registration order.
func (c *Catalog) SchemaIDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Resolve matches a schema id tolerantly: exact match first, then
// hyphen-insensitive comparison, then substring containment in either
// direction. Accounts for id aliasing between API responses and the schema
// catalogue. Returns nil when nothing matches.
func (c *Catalog) Resolve(id string) *field.Schema {
	if id == "" {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	if s, ok := c.schemas[id]; ok {
		return s
	}

	want := normalizeID(id)
	for _, candidate := range c.order {
		if normalizeID(candidate) == want {
			return c.schemas[candidate]
		}
	}
	for _, candidate := range c.order {
		have := normalizeID(candidate)
		if strings.Contains(have, want) || strings.Contains(want, have) {
			return c.schemas[candidate]
		}
	}
	return nil
}

func normalizeID(id string) string {
	id = strings.ToLower(id)
	id = strings.ReplaceAll(id, "-", "")
	id = strings.ReplaceAll(id, "_", "")
	return id
}

// IDMatch reports whether two schema ids refer to the same schema under the
// tolerant rules: hyphen-insensitive equality or substring containment in
// either direction.
func IDMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	na, nb := normalizeID(a), normalizeID(b)
	return na == nb || strings.Contains(na, nb) || strings.Contains(nb, na)
}
