// Package option normalizes heterogeneous option-like values — raw ids,
// id/label pairs, arrays, single objects — into a uniform ordered list of
// badge items. Normalization never drops an entry: unresolvable ids degrade
// to id-as-label.
package option

import (
	"github.com/gridworks/dataview/internal/field"
)

// Item is the normalized unit produced by Normalize and consumed by badge
// rendering and click navigation.
type Item struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Color string `json:"color,omitempty"`
	Icon  string `json:"icon,omitempty"`

	// TargetSchema is set by the formatter for relational values so a
	// consumer can build a navigation link.
	TargetSchema string `json:"clickableTargetSchema,omitempty"`

	// Raw retains the original entry's properties.
	Raw any `json:"-"`
}

// Normalize turns any option-like value into an ordered item list, resolving
// labels, colors and icons against the catalogue by identity match. A value
// that already carries a non-empty label is authoritative and wins over the
// catalogue. Output length always equals the number of atomic entries in the
// input.
func Normalize(value any, catalogue []field.Option) []Item {
	if value == nil {
		return nil
	}
	entries, ok := value.([]any)
	if !ok {
		return []Item{normalizeOne(value, catalogue)}
	}
	items := make([]Item, 0, len(entries))
	for _, entry := range entries {
		items = append(items, normalizeOne(entry, catalogue))
	}
	return items
}

func normalizeOne(entry any, catalogue []field.Option) Item {
	item := Item{Raw: entry}
	switch v := entry.(type) {
	case map[string]any:
		item.ID = field.Stringify(firstOf(v, "id", "value"))
		item.Label = field.Stringify(firstOf(v, "label", "name", "title"))
		item.Color = field.Stringify(v["color"])
		item.Icon = field.Stringify(v["icon"])
	case field.Option:
		item.ID = v.ID
		item.Label = v.Label
		item.Color = v.Color
		item.Icon = v.Icon
	default:
		item.ID = field.Stringify(entry)
	}

	// A carried label is authoritative; only fill gaps from the catalogue.
	if match := lookup(catalogue, item.ID); match != nil {
		if item.Label == "" {
			item.Label = match.Label
		}
		if item.Color == "" {
			item.Color = match.Color
		}
		if item.Icon == "" {
			item.Icon = match.Icon
		}
	}
	if item.Label == "" {
		item.Label = item.ID
	}
	return item
}

// lookup matches an id against the catalogue. Case-sensitive, string-compare
// on the stringified ids.
func lookup(catalogue []field.Option, id string) *field.Option {
	if id == "" {
		return nil
	}
	for i := range catalogue {
		if catalogue[i].ID == id {
			return &catalogue[i]
		}
	}
	return nil
}

func firstOf(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil && v != "" {
			return v
		}
	}
	return nil
}
