package render

import (
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// neutralGray is the degradation swatch for unresolvable color strings.
const neutralGray = "#9ca3af"

// tailwindPalette maps Tailwind color names at the 500 shade to hex. Status
// and badge colors in schema documents use these names.
var tailwindPalette = map[string]string{
	"slate":   "#64748b",
	"gray":    "#6b7280",
	"zinc":    "#71717a",
	"neutral": "#737373",
	"stone":   "#78716c",
	"red":     "#ef4444",
	"orange":  "#f97316",
	"amber":   "#f59e0b",
	"yellow":  "#eab308",
	"lime":    "#84cc16",
	"green":   "#22c55e",
	"emerald": "#10b981",
	"teal":    "#14b8a6",
	"cyan":    "#06b6d4",
	"sky":     "#0ea5e9",
	"blue":    "#3b82f6",
	"indigo":  "#6366f1",
	"violet":  "#8b5cf6",
	"purple":  "#a855f7",
	"fuchsia": "#d946ef",
	"pink":    "#ec4899",
	"rose":    "#f43f5e",
}

// ResolveColor turns a Tailwind-style color name or a hex string into a
// normalized lowercase hex value. Unknown strings degrade to a neutral gray
// rather than failing.
func ResolveColor(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return neutralGray
	}

	// Shade-suffixed names ("emerald-500") resolve by base name.
	name := s
	if i := strings.IndexAny(name, "-/"); i > 0 {
		name = name[:i]
	}
	if hex, ok := tailwindPalette[name]; ok {
		return hex
	}

	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if c, err := colorful.Hex(s); err == nil {
		return c.Hex()
	}
	return neutralGray
}
