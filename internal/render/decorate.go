package render

import (
	"strings"

	"github.com/gridworks/dataview/internal/field"
	"github.com/gridworks/dataview/internal/option"
)

// RowInactive reports whether a row should render struck through: an
// explicit inactive boolean, or a status value whose label is "inactive".
// statusField is the row's status-role descriptor, nil when the schema has
// none.
func RowInactive(row field.Row, statusField *field.Descriptor) bool {
	if row.Bool("inactive") {
		return true
	}
	if statusField == nil {
		return false
	}
	items := option.Normalize(row.Value(statusField.Name), statusField.Options)
	for _, it := range items {
		if strings.EqualFold(it.Label, "inactive") {
			return true
		}
	}
	return false
}

// Decorate applies presentational wrapping to an already-formatted spec:
// bold and copy affordance for title-role content, strike-through for
// inactive rows, and the force indicator — surfaced only on title-role
// cells, including empty ones. Decoration merges with whatever the base
// formatter already attached.
func Decorate(spec Spec, f field.Descriptor, row field.Row, inactive bool) Spec {
	d := Decoration{}
	if spec.Decor != nil {
		d = *spec.Decor
	}

	if f.Role == field.RoleTitle {
		d.Bold = true
		d.Copyable = true
		if row.Forced() {
			d.Force = true
			d.ForceReason = row.ForceReason()
		}
	}
	if inactive {
		d.Strikethrough = true
	}

	if d == (Decoration{}) {
		spec.Decor = nil
		return spec
	}
	spec.Decor = &d
	return spec
}
