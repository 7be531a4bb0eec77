// Package flatten implements the nested-table algorithm: it separates a
// row's one-to-many children into flattened groups (pivoted into sibling
// columns on the parent's rows) and nested groups (kept as an expandable
// sub-table at the next depth), and produces the cross-product row
// expansion with index alignment across heterogeneous child collections.
//
// The whole computation is pure over its inputs and returns a plain data
// structure; the presentation layer walks the tree, the core never sees a
// component.
package flatten

import (
	"strconv"

	"github.com/gridworks/dataview/internal/catalog"
	"github.com/gridworks/dataview/internal/column"
	"github.com/gridworks/dataview/internal/field"
)

// DepthConfig scopes a set of schema ids to one recursion depth.
type DepthConfig struct {
	Depth   int      `json:"depth"`
	Schemas []string `json:"schemas"`
}

// Config selects which child schemas are flattened. Either Schemas (applies
// at every depth) or PerDepth (applies only at the stated depth) is set;
// PerDepth wins when both are present.
type Config struct {
	Schemas  []string      `json:"schemas,omitempty"`
	PerDepth []DepthConfig `json:"perDepth,omitempty"`
}

// schemasAt returns the schema ids to flatten at the given depth.
func (c Config) schemasAt(depth int) []string {
	if len(c.PerDepth) > 0 {
		for _, dc := range c.PerDepth {
			if dc.Depth == depth {
				return dc.Schemas
			}
		}
		return nil
	}
	return c.Schemas
}

// FlattenAt reports whether a child schema id is flattened at the depth.
// Matching is tolerant of the id aliasing between API and catalogue.
func (c Config) FlattenAt(depth int, schemaID string) bool {
	for _, id := range c.schemasAt(depth) {
		if catalog.IDMatch(id, schemaID) {
			return true
		}
	}
	return false
}

// Group is one flattened child schema with its concatenated items.
type Group struct {
	Schema *field.Schema
	Items  []field.Row
}

// NestedGroup is a child relation kept as an expandable sub-table at
// depth+1. Schema is nil — and Placeholder set — when the child's schema id
// could not be resolved against the catalogue.
type NestedGroup struct {
	SchemaID    string      `json:"schema"`
	Label       string      `json:"label,omitempty"`
	Rows        []field.Row `json:"rows"`
	Placeholder string      `json:"placeholder,omitempty"`

	Schema *field.Schema `json:"-"`

	// Rendered holds the recursively flattened sub-table when the tree form
	// is requested.
	Rendered *Result `json:"rendered,omitempty"`
}

// ProcessedRow is one expanded output row. All expanded rows of a parent
// share OriginalIndex — the expand/collapse key — and the parent's
// non-flattened values; flattened child values are merged under
// "<childSchemaId>.<fieldName>" keys, absent when the group has no item at
// this expansion index.
type ProcessedRow struct {
	Key            string         `json:"key"`
	Values         map[string]any `json:"values"`
	OriginalIndex  int            `json:"originalIndex"`
	ExpansionIndex int            `json:"expansionIndex"`
	ExpansionCount int            `json:"expansionCount"`
	FirstOfParent  bool           `json:"firstOfParent"`
	LastOfParent   bool           `json:"lastOfParent"`

	// Nested is attached to the first expanded row of each parent only, so
	// the sub-table panel renders once per parent.
	Nested []NestedGroup `json:"nested,omitempty"`
}

// ColumnGroup is the set of columns one schema contributes to the composite
// table: group 0 is the base schema, subsequent groups are flattened child
// schemas in first-seen order, StartIndex continuing the running offset.
type ColumnGroup struct {
	SchemaID   string          `json:"schema"`
	Label      string          `json:"label,omitempty"`
	StartIndex int             `json:"startIndex"`
	Columns    []column.Column `json:"columns"`
}

// Result is the flattener's output for one schema level.
type Result struct {
	Rows   []ProcessedRow `json:"rows"`
	Groups []ColumnGroup  `json:"groups"`
}

// Flatten processes one level: partitions each root row's children into
// flattened and nested, re-homes grandchildren of flattened items into the
// parent's nested set, computes column groups, and expands rows. depth is
// the current recursion depth, root = 0.
func Flatten(rows []field.Row, schema *field.Schema, cat *catalog.Catalog, cfg Config, depth int) Result {
	baseCols := column.Build(schema, column.Options{})
	groups := []ColumnGroup{{
		SchemaID: schema.ID,
		Label:    schema.Label,
		Columns:  baseCols,
	}}
	offset := len(baseCols)
	groupSeen := map[string]bool{}

	var out []ProcessedRow
	for origIdx := range rows {
		row := rows[origIdx]
		flattened, nested := partition(row, cat, cfg, depth)

		// Flattened items' own children are re-homed into the parent's
		// nested set rather than dropped: at depth+1 the same flattening
		// decision is re-evaluated against the next depth's configuration.
		for _, g := range flattened {
			for _, item := range g.Items {
				for _, cg := range item.Children {
					if len(cg.Data) == 0 {
						continue
					}
					nested = mergeNested(nested, cg.Schema, cat.Resolve(cg.Schema), cg.Data)
				}
			}
		}

		// Register column groups for newly seen flattened schemas.
		for _, g := range flattened {
			if groupSeen[g.Schema.ID] {
				continue
			}
			groupSeen[g.Schema.ID] = true
			cols := make([]column.Column, 0, len(g.Schema.Fields))
			for _, f := range g.Schema.Fields {
				cols = append(cols, column.FromField(f, g.Schema.ID))
			}
			groups = append(groups, ColumnGroup{
				SchemaID:   g.Schema.ID,
				Label:      g.Schema.Label,
				StartIndex: offset,
				Columns:    cols,
			})
			offset += len(cols)
		}

		out = append(out, expand(row, origIdx, flattened, nested)...)
	}

	return Result{Rows: out, Groups: groups}
}

// FlattenTree is the recursive form: nested groups carry their own
// flattened Result for depth+1, producing the full presentation data tree.
func FlattenTree(rows []field.Row, schema *field.Schema, cat *catalog.Catalog, cfg Config, depth int) Result {
	res := Flatten(rows, schema, cat, cfg, depth)
	for ri := range res.Rows {
		for ni := range res.Rows[ri].Nested {
			ng := &res.Rows[ri].Nested[ni]
			if ng.Schema == nil {
				continue
			}
			sub := FlattenTree(ng.Rows, ng.Schema, cat, cfg, depth+1)
			ng.Rendered = &sub
		}
	}
	return res
}

// partition splits a row's children into flattened and nested groups,
// merging groups that resolve to the same schema. Empty child groups are
// ignored entirely; unresolvable schema ids become explicit placeholders in
// the nested set, never a silent drop.
func partition(row field.Row, cat *catalog.Catalog, cfg Config, depth int) ([]Group, []NestedGroup) {
	var flattened []Group
	var nested []NestedGroup

	for _, cg := range row.Children {
		if len(cg.Data) == 0 {
			continue
		}
		s := cat.Resolve(cg.Schema)
		if s == nil {
			nested = mergeNested(nested, cg.Schema, nil, cg.Data)
			continue
		}
		if cfg.FlattenAt(depth, s.ID) || cfg.FlattenAt(depth, cg.Schema) {
			flattened = mergeFlattened(flattened, s, cg.Data)
		} else {
			nested = mergeNested(nested, cg.Schema, s, cg.Data)
		}
	}
	return flattened, nested
}

func mergeFlattened(groups []Group, s *field.Schema, data []field.Row) []Group {
	for i := range groups {
		if groups[i].Schema.ID == s.ID {
			groups[i].Items = append(groups[i].Items, data...)
			return groups
		}
	}
	return append(groups, Group{Schema: s, Items: data})
}

// mergeNested merges by schema id, concatenating data arrays. Parent-direct
// children come first, re-homed grandchildren follow in flattened-group
// order.
func mergeNested(groups []NestedGroup, rawID string, s *field.Schema, data []field.Row) []NestedGroup {
	id := rawID
	if s != nil {
		id = s.ID
	}
	for i := range groups {
		if groups[i].SchemaID == id || (s != nil && groups[i].Schema != nil && groups[i].Schema.ID == s.ID) {
			groups[i].Rows = append(groups[i].Rows, data...)
			return groups
		}
	}
	ng := NestedGroup{SchemaID: id, Schema: s, Rows: data}
	if s != nil {
		ng.Label = s.Label
	} else {
		ng.Placeholder = "schema not found for " + rawID
	}
	return append(groups, ng)
}

// expand emits max(1, max group size) rows for one parent. For expansion
// index i, each group contributes item i if present; shorter groups leave
// their keys absent, which formats as empty.
func expand(row field.Row, origIdx int, flattened []Group, nested []NestedGroup) []ProcessedRow {
	maxItems := 1
	for _, g := range flattened {
		if len(g.Items) > maxItems {
			maxItems = len(g.Items)
		}
	}

	out := make([]ProcessedRow, 0, maxItems)
	for i := 0; i < maxItems; i++ {
		values := make(map[string]any, len(row.Values))
		for k, v := range row.Values {
			values[k] = v
		}
		for _, g := range flattened {
			if i >= len(g.Items) {
				continue
			}
			for k, v := range g.Items[i].Values {
				values[g.Schema.ID+"."+k] = v
			}
		}
		pr := ProcessedRow{
			Key:            rowKey(row, origIdx, i),
			Values:         values,
			OriginalIndex:  origIdx,
			ExpansionIndex: i,
			ExpansionCount: maxItems,
			FirstOfParent:  i == 0,
			LastOfParent:   i == maxItems-1,
		}
		if i == 0 {
			pr.Nested = nested
		}
		out = append(out, pr)
	}
	return out
}

// rowKey derives a stable key for an expanded row. Deterministic so the
// whole computation stays memoizable by input identity.
func rowKey(row field.Row, origIdx, expIdx int) string {
	base := row.String("id")
	if base == "" {
		base = strconv.Itoa(origIdx)
	}
	return base + ":" + strconv.Itoa(expIdx)
}

// AsRow adapts a processed row's merged values back to a Row so column
// accessors and the formatter can read prefixed keys uniformly.
func (p ProcessedRow) AsRow() field.Row {
	return field.Row{Values: p.Values}
}
