package render

import (
	"strconv"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// parseNumeric coerces a raw value to a float64 with fallback 0 for
// non-numeric input. Strings tolerate grouping commas and currency symbols.
func parseNumeric(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case bool:
		if t {
			return 1
		}
		return 0
	case string:
		s := strings.TrimSpace(t)
		s = strings.ReplaceAll(s, ",", "")
		s = strings.TrimLeft(s, "$€£¥")
		s = strings.TrimSuffix(s, "%")
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// printer builds a locale-aware message printer for the active language.
// Unparseable language tags fall back to the undetermined tag, which formats
// with root-locale conventions.
func printer(lang string) *message.Printer {
	return message.NewPrinter(language.Make(lang))
}

// formatNumber renders v with locale grouping separators.
func formatNumber(v float64, lang string) string {
	return printer(lang).Sprintf("%v", number.Decimal(v))
}

// formatPercent renders v (expressed as 0-100) as a locale percentage.
func formatPercent(v float64, lang string) string {
	return printer(lang).Sprintf("%v", number.Percent(v/100))
}

// formatCurrency renders v in the given ISO 4217 currency. Unknown codes
// fall back to USD.
func formatCurrency(v float64, code, lang string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.USD
	}
	return printer(lang).Sprint(currency.Symbol(unit.Amount(v)))
}
