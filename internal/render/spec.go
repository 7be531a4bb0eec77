// Package render maps a field descriptor plus a raw value into a renderable
// specification. The output is a pure description of what to show; how it is
// drawn belongs to the presentation layer. Formatting never fails: malformed
// input degrades to a visible-but-harmless placeholder.
package render

import "github.com/gridworks/dataview/internal/option"

// Kind discriminates the Spec union.
type Kind string

const (
	KindText       Kind = "text"
	KindEmpty      Kind = "empty"
	KindBadges     Kind = "badges"
	KindLink       Kind = "link"
	KindMasked     Kind = "masked"
	KindSwatch     Kind = "swatch"
	KindRating     Kind = "rating"
	KindPerson     Kind = "person"
	KindCurrency   Kind = "currency"
	KindNumber     Kind = "number"
	KindPercentage Kind = "percentage"
	KindDateTime   Kind = "datetime"
	KindList       Kind = "list"
	KindJSON       Kind = "json"
	KindIcon       Kind = "icon"
	KindImage      Kind = "image"
)

// PersonRef is a rendered reference to a person: label and avatar, never the
// raw id alone.
type PersonRef struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// ListItem is one entry of a list or checklist spec.
type ListItem struct {
	Label string `json:"label"`
	Done  bool   `json:"done,omitempty"`
}

// Decoration is presentational wrapping applied after the base spec is
// produced: bold titles, strike-through for inactive rows, the force
// indicator, and the copy affordance. Kept separate from formatting so the
// two are independently testable.
type Decoration struct {
	Bold          bool   `json:"bold,omitempty"`
	Strikethrough bool   `json:"strikethrough,omitempty"`
	Monospace     bool   `json:"monospace,omitempty"`
	Copyable      bool   `json:"copyable,omitempty"`
	Force         bool   `json:"force,omitempty"`
	ForceReason   string `json:"forceReason,omitempty"`
}

// Spec is the formatter's output: a tagged description of what to show.
// Only the fields relevant to Kind are populated.
type Spec struct {
	Kind Kind `json:"kind"`

	// KindText, and the display string for most other kinds.
	Text string `json:"text,omitempty"`

	// KindBadges
	Badges []option.Item `json:"badges,omitempty"`

	// KindLink
	URL   string `json:"url,omitempty"`
	Label string `json:"label,omitempty"`

	// KindMasked: placeholder glyph count, clamped so the true secret
	// length is never revealed.
	MaskLength int `json:"maskLength,omitempty"`

	// KindSwatch
	ColorHex string `json:"colorHex,omitempty"`

	// KindRating
	Rating    float64 `json:"rating,omitempty"`
	RatingMax int     `json:"ratingMax,omitempty"`

	// KindPerson
	Person *PersonRef `json:"person,omitempty"`

	// KindCurrency, KindNumber, KindPercentage
	Value float64 `json:"value,omitempty"`

	// KindDateTime
	ISO           string `json:"iso,omitempty"`
	DisplayFormat string `json:"displayFormat,omitempty"`

	// KindList
	Items []ListItem `json:"items,omitempty"`

	// KindJSON
	Preview string `json:"preview,omitempty"`
	Full    any    `json:"full,omitempty"`

	// KindIcon / KindImage
	Icon string `json:"icon,omitempty"`

	Decor *Decoration `json:"decor,omitempty"`
}

// Empty is the spec for missing values, displayed as an em-dash.
func Empty() Spec { return Spec{Kind: KindEmpty} }

// Text is the plain string spec.
func Text(s string) Spec { return Spec{Kind: KindText, Text: s} }
