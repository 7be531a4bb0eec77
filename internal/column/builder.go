// Package column turns a schema's field list into an ordered list of table
// columns with accessors, alignment, and width/wrap policy keyed by
// component kind.
package column

import (
	"strings"

	"github.com/gridworks/dataview/internal/field"
)

// Align is a column's horizontal alignment.
type Align string

const (
	AlignLeft   Align = "left"
	AlignRight  Align = "right"
	AlignCenter Align = "center"
)

// Column is one renderable table column. Accessor reads the cell's raw value
// from a row; it is excluded from serialization.
type Column struct {
	ID       string           `json:"id"`
	Label    string           `json:"label"`
	FieldID  string           `json:"fieldId,omitempty"`
	Align    Align            `json:"align"`
	Sortable bool             `json:"sortable"`
	MinWidth int              `json:"minWidth"`
	MaxWidth int              `json:"maxWidth"`
	Wrap     bool             `json:"wrap"`
	Field    field.Descriptor `json:"-"`

	Accessor func(field.Row) any `json:"-"`
}

// Options controls column building. Columns, when non-empty, is an explicit
// ordered list of field names to display; otherwise the schema's field list
// is used, filtered to SectionID when set.
type Options struct {
	Columns   []string
	SectionID string
	ShowIDs   bool
}

// Build produces the ordered column list for a schema.
func Build(s *field.Schema, opts Options) []Column {
	fields := selectFields(s, opts)

	cols := make([]Column, 0, len(fields)+1)
	for _, f := range fields {
		cols = append(cols, FromField(f, ""))
	}

	return applyIDColumn(cols, opts.ShowIDs)
}

// FromField builds a single column for a descriptor. prefix, when non-empty,
// namespaces the column id and accessor key ("<childSchema>.<name>") for
// flattened child columns.
func FromField(f field.Descriptor, prefix string) Column {
	key := f.Name
	if prefix != "" {
		key = prefix + "." + f.Name
	}
	col := Column{
		ID:       key,
		Label:    f.DisplayLabel(),
		FieldID:  f.ID,
		Align:    alignFor(f),
		Sortable: sortableFor(f),
		Field:    f,
		Accessor: func(r field.Row) any { return r.Value(key) },
	}
	col.MinWidth, col.MaxWidth, col.Wrap = widthPolicy(f)
	return col
}

func selectFields(s *field.Schema, opts Options) []field.Descriptor {
	if len(opts.Columns) > 0 {
		out := make([]field.Descriptor, 0, len(opts.Columns))
		for _, name := range opts.Columns {
			if f := s.Field(name); f != nil {
				out = append(out, *f)
			}
		}
		return out
	}
	if opts.SectionID == "" {
		return s.Fields
	}
	out := make([]field.Descriptor, 0, len(s.Fields))
	for _, f := range s.Fields {
		if f.SectionID == opts.SectionID {
			out = append(out, f)
		}
	}
	return out
}

func alignFor(f field.Descriptor) Align {
	switch f.Component {
	case field.ComponentNumber, field.ComponentCurrency, field.ComponentPercentage,
		field.ComponentSlider:
		return AlignRight
	case field.ComponentCheckbox, field.ComponentToggle, field.ComponentSwitch,
		field.ComponentRating:
		return AlignCenter
	default:
		return AlignLeft
	}
}

func sortableFor(f field.Descriptor) bool {
	switch f.Component {
	case field.ComponentJSON, field.ComponentChecklist, field.ComponentListInput,
		field.ComponentArray, field.ComponentPassword:
		return false
	default:
		return true
	}
}

// addressNameParts flag free-text fields that hold postal data and should be
// given generous wrappable widths.
var addressNameParts = []string{"address", "street"}

var addressNames = map[string]bool{
	"city":    true,
	"state":   true,
	"zip":     true,
	"zipcode": true,
	"postal":  true,
	"country": true,
}

func isAddressLike(name string) bool {
	n := strings.ToLower(name)
	if addressNames[n] {
		return true
	}
	for _, part := range addressNameParts {
		if strings.Contains(n, part) {
			return true
		}
	}
	return false
}

// widthPolicy returns (minWidth, maxWidth, wrap) for a field. Numeric, date,
// badge and status columns get short fixed widths with wrapping disallowed;
// free text and address-like columns get generous wrappable widths.
func widthPolicy(f field.Descriptor) (int, int, bool) {
	if f.Role == field.RoleStatus || f.Role == field.RoleEntityType {
		return 100, 160, false
	}
	if f.Role == field.RoleBadge || isAddressLike(f.Name) {
		return 160, 420, true
	}
	switch f.Component {
	case field.ComponentNumber, field.ComponentSlider, field.ComponentRating,
		field.ComponentCurrency, field.ComponentPercentage:
		return 90, 140, false
	case field.ComponentDate:
		return 110, 140, false
	case field.ComponentDateTime, field.ComponentDateTimeLocal:
		return 150, 190, false
	case field.ComponentCheckbox, field.ComponentToggle, field.ComponentSwitch:
		return 70, 110, false
	case field.ComponentSelect, field.ComponentRadio, field.ComponentToggleGroup:
		return 110, 180, false
	case field.ComponentTextarea, field.ComponentMarkdown, field.ComponentJSON:
		return 200, 480, true
	default:
		return 160, 420, true
	}
}

// applyIDColumn injects an id pseudo-column at the front when identifiers
// are requested, or removes id columns otherwise. A real id field is
// relocated rather than duplicated.
func applyIDColumn(cols []Column, show bool) []Column {
	idx := -1
	for i, c := range cols {
		if c.ID == "id" {
			idx = i
			break
		}
	}

	if !show {
		if idx < 0 {
			return cols
		}
		return append(cols[:idx:idx], cols[idx+1:]...)
	}

	var idCol Column
	if idx >= 0 {
		idCol = cols[idx]
		cols = append(cols[:idx:idx], cols[idx+1:]...)
	} else {
		idCol = Column{
			ID:       "id",
			Label:    "ID",
			Align:    AlignLeft,
			Sortable: true,
			MinWidth: 80,
			MaxWidth: 140,
			Accessor: func(r field.Row) any { return r.Value("id") },
		}
	}
	return append([]Column{idCol}, cols...)
}
