package render

import "github.com/gridworks/dataview/internal/field"

// Context carries the per-render language settings. The zero value formats
// with the default language only.
type Context struct {
	Language        string
	DefaultLanguage string
}

// DefaultContext is the context used when callers pass the zero value.
var DefaultContext = Context{Language: "en", DefaultLanguage: "en"}

func (c Context) normalized() Context {
	if c.Language == "" {
		c.Language = DefaultContext.Language
	}
	if c.DefaultLanguage == "" {
		c.DefaultLanguage = DefaultContext.DefaultLanguage
	}
	return c
}

// resolveTranslations collapses a translation-bearing value — a list of
// per-language records — to the active language's string, with
// default-language fallback, so downstream formatting operates on a plain
// scalar. Values that are not translation-shaped pass through untouched.
func resolveTranslations(value any, ctx Context) any {
	entries, ok := value.([]any)
	if !ok || len(entries) == 0 {
		return value
	}

	var active, fallback, first any
	seen := false
	for _, entry := range entries {
		rec, ok := entry.(map[string]any)
		if !ok {
			return value
		}
		lang := field.Stringify(firstKey(rec, "language", "lang", "locale"))
		text, hasText := translationText(rec)
		if lang == "" || !hasText {
			return value
		}
		if !seen {
			first = text
			seen = true
		}
		if lang == ctx.Language && active == nil {
			active = text
		}
		if lang == ctx.DefaultLanguage && fallback == nil {
			fallback = text
		}
	}

	if active != nil {
		return active
	}
	if fallback != nil {
		return fallback
	}
	return first
}

func translationText(rec map[string]any) (any, bool) {
	for _, k := range []string{"value", "text", "label"} {
		if v, ok := rec[k]; ok {
			return v, true
		}
	}
	return nil, false
}

func firstKey(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v
		}
	}
	return nil
}
