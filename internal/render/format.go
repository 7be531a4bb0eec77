package render

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/gridworks/dataview/internal/field"
	"github.com/gridworks/dataview/internal/option"
)

const (
	dateDisplayFormat     = "Jan 2, 2006"
	dateTimeDisplayFormat = "Jan 2, 2006 3:04 PM"

	jsonPreviewLimit = 120

	maskMin = 8
	maskMax = 20
)

// Format produces the RenderSpec for a field value. Pure: no I/O, no hidden
// state, identical inputs yield identical output.
//
// Dispatch order, first match wins: empty check, translation resolution,
// role-based formatters, component-based formatters, default degradation.
// Role carries more semantic intent than component, so it dispatches first —
// except the title role, which only affects decoration.
func Format(f field.Descriptor, value any, row field.Row, ctx Context) Spec {
	ctx = ctx.normalized()

	if isEmptyValue(value) {
		return Empty()
	}

	// Translation-bearing values collapse to the active language before any
	// other dispatch step, so everything below sees a plain scalar.
	value = resolveTranslations(value, ctx)
	if isEmptyValue(value) {
		return Empty()
	}

	if spec, ok := formatByRole(f, value, ctx); ok {
		return spec
	}
	if spec, ok := formatByComponent(f, value, ctx); ok {
		return spec
	}
	return formatDefault(f, value)
}

func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	default:
		return false
	}
}

// ── Role dispatch ────────────────────────────────────────────────────────────

func formatByRole(f field.Descriptor, value any, ctx Context) (Spec, bool) {
	switch f.Role {
	case field.RoleStatus, field.RoleEntityType, field.RoleBadge:
		return formatBadges(f, value, ""), true
	case field.RoleRating:
		return formatRating(f, value), true
	case field.RoleCode:
		return Spec{
			Kind:  KindText,
			Text:  field.Stringify(value),
			Decor: &Decoration{Monospace: true, Copyable: true},
		}, true
	case field.RoleDueDate:
		// Date-only vs date-time is governed by the component, not the role.
		return formatDate(f, value), true
	case field.RolePerson:
		return formatPerson(value), true
	case field.RoleIcon:
		return Spec{Kind: KindIcon, Icon: field.Stringify(value)}, true
	case field.RoleAvatar:
		return Spec{Kind: KindImage, URL: field.Stringify(value)}, true
	default:
		return Spec{}, false
	}
}

// formatBadges normalizes the value to badge items and resolves each badge's
// color. Priority: color carried on the raw value item (including colors the
// normalizer filled from the catalogue), then the field-level default, then
// the generic fallback inside ResolveColor.
func formatBadges(f field.Descriptor, value any, targetSchema string) Spec {
	items := option.Normalize(value, f.Options)
	for i := range items {
		if items[i].Color == "" {
			items[i].Color = f.RoleColor
		}
		items[i].Color = ResolveColor(items[i].Color)
		if targetSchema != "" {
			items[i].TargetSchema = targetSchema
		}
	}
	return Spec{Kind: KindBadges, Badges: items}
}

func formatRating(f field.Descriptor, value any) Spec {
	max := 5
	if m, ok := f.Metadata["max"]; ok {
		if n := parseNumeric(m); n > 0 {
			max = int(n)
		}
	}
	return Spec{Kind: KindRating, Rating: parseNumeric(value), RatingMax: max}
}

func formatPerson(value any) Spec {
	// Multi-person values render the first reference; the badge role covers
	// the list presentation.
	if list, ok := value.([]any); ok {
		if len(list) == 0 {
			return Empty()
		}
		value = list[0]
	}

	ref := PersonRef{}
	switch v := value.(type) {
	case map[string]any:
		ref.ID = field.Stringify(firstKey(v, "id", "userId"))
		ref.Label = field.Stringify(firstKey(v, "label", "name", "displayName", "email"))
		ref.AvatarURL = field.Stringify(firstKey(v, "avatarUrl", "avatar", "image"))
	default:
		ref.ID = field.Stringify(value)
	}
	if ref.Label == "" {
		ref.Label = ref.ID
	}
	return Spec{Kind: KindPerson, Person: &ref}
}

// ── Component dispatch ───────────────────────────────────────────────────────

func formatByComponent(f field.Descriptor, value any, ctx Context) (Spec, bool) {
	switch {
	case f.Component.IsRelational():
		return formatBadges(f, value, navigableTarget(f.TargetSchema)), true
	case f.Component.IsOptionBearing():
		return formatBadges(f, value, ""), true
	case f.Component.IsTemporal():
		return formatDate(f, value), true
	}

	switch f.Component {
	case field.ComponentChecklist:
		return formatChecklist(value), true

	case field.ComponentListInput:
		return formatList(value, f.Options), true

	case field.ComponentJSON:
		return formatJSON(value), true

	case field.ComponentFormula:
		// The formula evaluator lives outside the core; the value carries its
		// already-computed result.
		return formatDefault(f, value), true

	case field.ComponentPassword:
		return Spec{Kind: KindMasked, MaskLength: maskLength(value)}, true

	case field.ComponentColorPicker:
		raw := field.Stringify(value)
		return Spec{Kind: KindSwatch, ColorHex: ResolveColor(raw), Label: raw}, true

	case field.ComponentCurrency:
		v := parseNumeric(value)
		code := field.Stringify(f.Metadata["currency"])
		if code == "" {
			code = "USD"
		}
		return Spec{Kind: KindCurrency, Value: v, Text: formatCurrency(v, code, ctx.Language)}, true

	case field.ComponentNumber, field.ComponentSlider:
		v := parseNumeric(value)
		return Spec{Kind: KindNumber, Value: v, Text: formatNumber(v, ctx.Language)}, true

	case field.ComponentPercentage:
		v := parseNumeric(value)
		return Spec{Kind: KindPercentage, Value: v, Text: formatPercent(v, ctx.Language)}, true

	case field.ComponentRating:
		return formatRating(f, value), true

	case field.ComponentURL:
		return formatURL(value), true

	case field.ComponentArray, field.ComponentCheckbox:
		return formatJoined(value), true

	case field.ComponentText, field.ComponentEmail, field.ComponentTextarea,
		field.ComponentPhone, field.ComponentMarkdown:
		return Text(field.Stringify(value)), true

	default:
		return Spec{}, false
	}
}

// navigableTarget returns the target schema for click navigation, or empty
// when the template still carries an unexpanded placeholder token — the badge
// then renders without a link rather than producing a broken one.
func navigableTarget(targetSchema string) string {
	if strings.ContainsAny(targetSchema, "{}$") {
		return ""
	}
	return targetSchema
}

func formatChecklist(value any) Spec {
	entries, ok := value.([]any)
	if !ok {
		return formatList(value, nil)
	}
	items := make([]ListItem, 0, len(entries))
	for _, entry := range entries {
		if rec, ok := entry.(map[string]any); ok {
			items = append(items, ListItem{
				Label: field.Stringify(firstKey(rec, "label", "name", "title", "value")),
				Done:  boolOf(firstKey(rec, "done", "checked", "completed")),
			})
			continue
		}
		items = append(items, ListItem{Label: field.Stringify(entry)})
	}
	return Spec{Kind: KindList, Items: items}
}

func formatList(value any, catalogue []field.Option) Spec {
	items := option.Normalize(value, catalogue)
	out := make([]ListItem, 0, len(items))
	for _, it := range items {
		out = append(out, ListItem{Label: it.Label})
	}
	return Spec{Kind: KindList, Items: out}
}

func formatJSON(value any) Spec {
	preview := field.Stringify(value)
	if s, ok := value.(string); ok {
		preview = s
	} else if b, err := json.Marshal(value); err == nil {
		preview = string(b)
	}
	if len(preview) > jsonPreviewLimit {
		preview = preview[:jsonPreviewLimit] + "…"
	}
	return Spec{Kind: KindJSON, Preview: preview, Full: value}
}

// maskLength clamps the placeholder glyph count so the true secret length is
// never revealed exactly.
func maskLength(value any) int {
	n := len(field.Stringify(value))
	if n < maskMin {
		return maskMin
	}
	if n > maskMax {
		return maskMax
	}
	return n
}

// dateLayouts are tried in order when parsing raw date strings.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
}

func parseDate(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// formatDate renders a temporal value. Invalid date strings echo the raw
// string verbatim rather than an invalid-date artifact.
func formatDate(f field.Descriptor, value any) Spec {
	raw := field.Stringify(value)
	t, ok := parseDate(raw)
	if !ok {
		return Text(raw)
	}
	display := dateTimeDisplayFormat
	if f.Component == field.ComponentDate {
		display = dateDisplayFormat
	}
	return Spec{
		Kind:          KindDateTime,
		ISO:           t.Format(time.RFC3339),
		DisplayFormat: display,
		Text:          t.Format(display),
	}
}

// formatURL renders a hyperlink only for scheme-qualified strings; anything
// else shows as plain text.
func formatURL(value any) Spec {
	raw := field.Stringify(value)
	if i := strings.Index(raw, "://"); i > 0 {
		return Spec{Kind: KindLink, URL: raw, Label: raw}
	}
	return Text(raw)
}

func formatJoined(value any) Spec {
	entries, ok := value.([]any)
	if !ok {
		return Text(field.Stringify(value))
	}
	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		parts = append(parts, field.Stringify(entry))
	}
	return Text(strings.Join(parts, ", "))
}

// ── Default degradation ──────────────────────────────────────────────────────

var isoDateShape = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}([T ].*)?$`)

// formatDefault handles unknown components: structured-option join, then
// single-option label, then an ISO datetime heuristic, then the value's
// string form.
func formatDefault(f field.Descriptor, value any) Spec {
	switch v := value.(type) {
	case []any:
		if allStructured(v) {
			items := option.Normalize(v, f.Options)
			labels := make([]string, 0, len(items))
			for _, it := range items {
				labels = append(labels, it.Label)
			}
			return Text(strings.Join(labels, ", "))
		}
		return formatJoined(v)
	case map[string]any:
		items := option.Normalize(v, f.Options)
		if len(items) == 1 && items[0].Label != "" {
			return Text(items[0].Label)
		}
	case string:
		if isoDateShape.MatchString(v) {
			if t, ok := parseDate(v); ok {
				return Spec{
					Kind:          KindDateTime,
					ISO:           t.Format(time.RFC3339),
					DisplayFormat: dateDisplayFormat,
					Text:          t.Format(dateDisplayFormat),
				}
			}
		}
	}
	return Text(field.Stringify(value))
}

func allStructured(entries []any) bool {
	if len(entries) == 0 {
		return false
	}
	for _, entry := range entries {
		if _, ok := entry.(map[string]any); !ok {
			return false
		}
	}
	return true
}

func boolOf(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true" || t == "1"
	case float64:
		return t != 0
	default:
		return false
	}
}
