// Package field defines the schema vocabulary consumed by every other
// package in the rendering core: field descriptors, component and role
// enumerations, schemas, and raw data rows.
//
// Component and role strings arrive free-form from schema documents and are
// resolved to closed enumerations once at load time. All downstream dispatch
// works on the resolved values, never on raw strings.
package field

import "strings"

// ComponentKind classifies the concrete widget kind a field declares.
// It is the primary formatter dispatch key.
type ComponentKind int

const (
	ComponentUnknown ComponentKind = iota

	// Text-like
	ComponentText
	ComponentEmail
	ComponentTextarea
	ComponentPhone
	ComponentURL
	ComponentMarkdown

	// Numeric
	ComponentNumber
	ComponentSlider
	ComponentRating
	ComponentCurrency
	ComponentPercentage

	// Temporal
	ComponentDate
	ComponentDateTime
	ComponentDateTimeLocal

	// Option-bearing
	ComponentSelect
	ComponentMultiSelect
	ComponentCheckboxList
	ComponentToggleGroup
	ComponentRadio
	ComponentTag
	ComponentLanguage

	// Relational
	ComponentPicker
	ComponentPopupPicker

	// Boolean
	ComponentCheckbox
	ComponentToggle
	ComponentSwitch

	// Structured / special
	ComponentPassword
	ComponentColorPicker
	ComponentJSON
	ComponentFormula
	ComponentChecklist
	ComponentListInput
	ComponentArray
)

// componentNames maps kinds back to their canonical string form.
var componentNames = map[ComponentKind]string{
	ComponentUnknown:       "unknown",
	ComponentText:          "text",
	ComponentEmail:         "email",
	ComponentTextarea:      "textarea",
	ComponentPhone:         "phone",
	ComponentURL:           "url",
	ComponentMarkdown:      "markdown",
	ComponentNumber:        "number",
	ComponentSlider:        "slider",
	ComponentRating:        "rating",
	ComponentCurrency:      "currency",
	ComponentPercentage:    "percentage",
	ComponentDate:          "date",
	ComponentDateTime:      "datetime",
	ComponentDateTimeLocal: "datetime-local",
	ComponentSelect:        "select",
	ComponentMultiSelect:   "multiselect",
	ComponentCheckboxList:  "checkbox-list",
	ComponentToggleGroup:   "toggle-group",
	ComponentRadio:         "radio",
	ComponentTag:           "tag",
	ComponentLanguage:      "language",
	ComponentPicker:        "picker",
	ComponentPopupPicker:   "popup-picker",
	ComponentCheckbox:      "checkbox",
	ComponentToggle:        "toggle",
	ComponentSwitch:        "switch",
	ComponentPassword:      "password",
	ComponentColorPicker:   "color-picker",
	ComponentJSON:          "json",
	ComponentFormula:       "formula",
	ComponentChecklist:     "checklist",
	ComponentListInput:     "list-input",
	ComponentArray:         "array",
}

// componentAliases maps normalized free-form strings to kinds. Keys are
// normalized with normalizeKindName, so "checkbox_list", "CheckboxList" and
// "checkbox-list" all resolve to the same entry.
var componentAliases = map[string]ComponentKind{
	"text":          ComponentText,
	"string":        ComponentText,
	"input":         ComponentText,
	"textinput":     ComponentText,
	"email":         ComponentEmail,
	"textarea":      ComponentTextarea,
	"phone":         ComponentPhone,
	"tel":           ComponentPhone,
	"url":           ComponentURL,
	"link":          ComponentURL,
	"markdown":      ComponentMarkdown,
	"number":        ComponentNumber,
	"numeric":       ComponentNumber,
	"int":           ComponentNumber,
	"float":         ComponentNumber,
	"slider":        ComponentSlider,
	"rating":        ComponentRating,
	"currency":      ComponentCurrency,
	"money":         ComponentCurrency,
	"percentage":    ComponentPercentage,
	"percent":       ComponentPercentage,
	"date":          ComponentDate,
	"dateinput":     ComponentDate,
	"calendar":      ComponentDate,
	"datetime":      ComponentDateTime,
	"datetimeinput": ComponentDateTime,
	"datetimelocal": ComponentDateTimeLocal,
	"select":        ComponentSelect,
	"dropdown":      ComponentSelect,
	"multiselect":   ComponentMultiSelect,
	"checkboxlist":  ComponentCheckboxList,
	"togglegroup":   ComponentToggleGroup,
	"radio":         ComponentRadio,
	"radiogroup":    ComponentRadio,
	"tag":           ComponentTag,
	"tags":          ComponentTag,
	"language":      ComponentLanguage,
	"picker":        ComponentPicker,
	"popuppicker":   ComponentPopupPicker,
	"checkbox":      ComponentCheckbox,
	"bool":          ComponentCheckbox,
	"toggle":        ComponentToggle,
	"switch":        ComponentSwitch,
	"password":      ComponentPassword,
	"secret":        ComponentPassword,
	"colorpicker":   ComponentColorPicker,
	"color":         ComponentColorPicker,
	"json":          ComponentJSON,
	"formula":       ComponentFormula,
	"computed":      ComponentFormula,
	"checklist":     ComponentChecklist,
	"listinput":     ComponentListInput,
	"list":          ComponentListInput,
	"array":         ComponentArray,
}

// normalizeKindName lowercases and strips separators so free-form component
// and role strings compare structurally.
func normalizeKindName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	s = strings.ReplaceAll(s, " ", "")
	return s
}

// ParseComponent resolves a free-form component string to a ComponentKind.
// Unrecognized strings resolve to ComponentUnknown, never an error.
func ParseComponent(s string) ComponentKind {
	if kind, ok := componentAliases[normalizeKindName(s)]; ok {
		return kind
	}
	return ComponentUnknown
}

// String returns the canonical name for the kind.
func (k ComponentKind) String() string {
	if name, ok := componentNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsOptionBearing reports whether values of this kind resolve against the
// field's option catalogue.
func (k ComponentKind) IsOptionBearing() bool {
	switch k {
	case ComponentSelect, ComponentMultiSelect, ComponentCheckboxList,
		ComponentToggleGroup, ComponentRadio, ComponentTag, ComponentLanguage:
		return true
	default:
		return false
	}
}

// IsRelational reports whether values of this kind reference rows in a
// target schema.
func (k ComponentKind) IsRelational() bool {
	return k == ComponentPicker || k == ComponentPopupPicker
}

// IsTemporal reports whether the kind carries date or datetime values.
func (k ComponentKind) IsTemporal() bool {
	switch k {
	case ComponentDate, ComponentDateTime, ComponentDateTimeLocal:
		return true
	default:
		return false
	}
}
