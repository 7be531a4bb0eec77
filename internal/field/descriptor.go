package field

import (
	"encoding/json"
	"strings"
)

// Option is one entry of a field's option catalogue.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
	Color string `json:"color,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

// UnmarshalJSON coerces numeric and boolean ids to their string form so the
// catalogue can be matched against raw values with a single string compare.
func (o *Option) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID    any    `json:"id"`
		Label string `json:"label"`
		Color string `json:"color"`
		Icon  string `json:"icon"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	o.ID = Stringify(raw.ID)
	o.Label = raw.Label
	o.Color = raw.Color
	o.Icon = raw.Icon
	return nil
}

// Descriptor describes a single schema field. RawComponent and RawRole hold
// the document strings; Component and Role are resolved once by Resolve and
// are what the rest of the core dispatches on.
type Descriptor struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Label        string         `json:"label,omitempty"`
	RawComponent string         `json:"component"`
	RawRole      string         `json:"role,omitempty"`
	RoleColor    string         `json:"roleColor,omitempty"`
	Options      []Option       `json:"options,omitempty"`
	TargetSchema string         `json:"targetSchema,omitempty"`
	Translatable bool           `json:"translations,omitempty"`
	SectionID    string         `json:"sectionId,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`

	Component ComponentKind `json:"-"`
	Role      Role          `json:"-"`
}

// Resolve maps the raw component and role strings to their enumerations.
// Idempotent; safe to call more than once.
func (d *Descriptor) Resolve() {
	d.Component = ParseComponent(d.RawComponent)
	d.Role = ParseRole(d.RawRole)
}

// DisplayLabel returns the label to show for the field, falling back to a
// title-cased form of the name.
func (d *Descriptor) DisplayLabel() string {
	if d.Label != "" {
		return d.Label
	}
	return labelFromName(d.Name)
}

// labelFromName converts snake_case or dotted field names to a display label.
func labelFromName(s string) string {
	if s == "" {
		return ""
	}
	clean := strings.TrimSuffix(strings.TrimSuffix(s, "_ids"), "_id")
	clean = strings.ReplaceAll(clean, ".", " ")
	clean = strings.ReplaceAll(clean, "-", " ")
	parts := strings.Split(clean, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// Section groups fields within a schema for form layout.
type Section struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
}

// Schema is an immutable field list identified by id. Schemas form a directed
// graph via TargetSchema references on picker-like fields.
type Schema struct {
	ID                  string       `json:"id"`
	Label               string       `json:"label,omitempty"`
	Fields              []Descriptor `json:"fields"`
	Sections            []Section    `json:"sections,omitempty"`
	StatusGroup         string       `json:"statusGroup,omitempty"`
	EntityTypeGroup     string       `json:"entityTypeGroup,omitempty"`
	AllowDataAssignedTo bool         `json:"allowDataAssignedTo,omitempty"`
	AllowDataDueDate    bool         `json:"allowDataDueDate,omitempty"`
}

// Resolve resolves component and role enumerations on every field.
func (s *Schema) Resolve() {
	for i := range s.Fields {
		s.Fields[i].Resolve()
	}
}

// Field returns the descriptor with the given name, or nil.
func (s *Schema) Field(name string) *Descriptor {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}
	return nil
}

// TitleField returns the first field carrying the title role, or nil.
func (s *Schema) TitleField() *Descriptor {
	for i := range s.Fields {
		if s.Fields[i].Role == RoleTitle {
			return &s.Fields[i]
		}
	}
	return nil
}
