package filter

import (
	"errors"
	"fmt"
	"strings"
)

// Item is one authored filter. Value shape depends on the operator: scalar,
// Range for between, or an array for in/not_in.
type Item struct {
	ID       string   `json:"id"`
	Column   string   `json:"column"`
	Operator Operator `json:"operator"`
	Value    any      `json:"value"`
}

// Range is the between value shape.
type Range struct {
	From any `json:"from"`
	To   any `json:"to"`
}

// ToggleExact swaps a numeric or date filter between the exact (eq) and
// range (between) operators, reshaping the stored value consistently. The
// range shape is retained through the round trip so a previously entered
// upper bound is not silently discarded.
func ToggleExact(item Item) Item {
	switch item.Operator {
	case OpBetween:
		item.Operator = OpEq
		r := asRange(item.Value)
		if r.To == nil {
			r.To = r.From
		}
		item.Value = r
	case OpEq:
		item.Operator = OpBetween
		item.Value = asRange(item.Value)
	}
	return item
}

// asRange coerces a stored value to the Range shape. Scalars become
// {from: x, to: x}.
func asRange(v any) Range {
	switch t := v.(type) {
	case Range:
		return t
	case *Range:
		if t != nil {
			return *t
		}
		return Range{}
	case map[string]any:
		return Range{From: t["from"], To: t["to"]}
	case nil:
		return Range{}
	default:
		return Range{From: t, To: t}
	}
}

// ExactValue returns the scalar an eq filter compares against: the range's
// lower bound when the value kept its range shape.
func ExactValue(item Item) any {
	r := asRange(item.Value)
	return r.From
}

// emptyValue reports whether a filter value counts as unset for validation.
func emptyValue(op Operator, v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case Range:
		return t.From == nil && t.To == nil
	case map[string]any:
		if op == OpBetween {
			return t["from"] == nil && t["to"] == nil
		}
		return len(t) == 0
	default:
		return false
	}
}

// ValidateSet checks that every operator other than is_empty/is_not_empty
// carries a non-empty value. Violations aggregate into a single error naming
// the offending columns.
func ValidateSet(items []Item) error {
	var missing []string
	for _, item := range items {
		if item.Operator == OpIsEmpty || item.Operator == OpIsNotEmpty {
			continue
		}
		if emptyValue(item.Operator, item.Value) {
			missing = append(missing, item.Column)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	if len(missing) == 1 {
		return errors.New("filter on " + missing[0] + " requires a value")
	}
	return fmt.Errorf("filters require a value: %s", strings.Join(missing, ", "))
}
