// Package filter maintains the per-field-type filter semantics: supported
// operators, default operator, and value shape. Lookup never fails — kinds
// without a registered strategy resolve to the text strategy.
package filter

import (
	"sync"

	"github.com/gridworks/dataview/internal/field"
)

// Operator identifies a filter comparison.
type Operator string

const (
	OpEq         Operator = "eq"
	OpNe         Operator = "ne"
	OpContains   Operator = "contains"
	OpStartsWith Operator = "startsWith"
	OpEndsWith   Operator = "endsWith"
	OpIsEmpty    Operator = "is_empty"
	OpIsNotEmpty Operator = "is_not_empty"
	OpGt         Operator = "gt"
	OpGte        Operator = "gte"
	OpLt         Operator = "lt"
	OpLte        Operator = "lte"
	OpBetween    Operator = "between"
	OpIn         Operator = "in"
	OpNotIn      Operator = "not_in"
)

// OperatorDescriptor pairs an operator with its UI label and whether a value
// must be supplied before a filter set may be applied.
type OperatorDescriptor struct {
	Op            Operator `json:"op"`
	Label         string   `json:"label"`
	RequiresValue bool     `json:"requiresValue"`
}

// Strategy is the filter vocabulary for one component kind.
type Strategy struct {
	Operators       []OperatorDescriptor `json:"operators"`
	DefaultOperator Operator             `json:"defaultOperator"`
}

// Supports reports whether the strategy offers the operator.
func (s Strategy) Supports(op Operator) bool {
	for _, d := range s.Operators {
		if d.Op == op {
			return true
		}
	}
	return false
}

func textStrategy() Strategy {
	return Strategy{
		Operators: []OperatorDescriptor{
			{Op: OpEq, Label: "equals", RequiresValue: true},
			{Op: OpNe, Label: "not equals", RequiresValue: true},
			{Op: OpContains, Label: "contains", RequiresValue: true},
			{Op: OpStartsWith, Label: "starts with", RequiresValue: true},
			{Op: OpEndsWith, Label: "ends with", RequiresValue: true},
			{Op: OpIsEmpty, Label: "is empty"},
			{Op: OpIsNotEmpty, Label: "is not empty"},
		},
		DefaultOperator: OpContains,
	}
}

func numberStrategy() Strategy {
	return Strategy{
		Operators: []OperatorDescriptor{
			{Op: OpEq, Label: "equals", RequiresValue: true},
			{Op: OpNe, Label: "not equals", RequiresValue: true},
			{Op: OpGt, Label: "greater than", RequiresValue: true},
			{Op: OpGte, Label: "at least", RequiresValue: true},
			{Op: OpLt, Label: "less than", RequiresValue: true},
			{Op: OpLte, Label: "at most", RequiresValue: true},
			{Op: OpBetween, Label: "between", RequiresValue: true},
		},
		DefaultOperator: OpBetween,
	}
}

// dateStrategy reuses the numeric operator set, semantically reinterpreted:
// gt reads as "after", lt as "before".
func dateStrategy() Strategy {
	return Strategy{
		Operators: []OperatorDescriptor{
			{Op: OpEq, Label: "on", RequiresValue: true},
			{Op: OpNe, Label: "not on", RequiresValue: true},
			{Op: OpGt, Label: "after", RequiresValue: true},
			{Op: OpGte, Label: "on or after", RequiresValue: true},
			{Op: OpLt, Label: "before", RequiresValue: true},
			{Op: OpLte, Label: "on or before", RequiresValue: true},
			{Op: OpBetween, Label: "between", RequiresValue: true},
		},
		DefaultOperator: OpBetween,
	}
}

func selectStrategy() Strategy {
	return Strategy{
		Operators: []OperatorDescriptor{
			{Op: OpEq, Label: "is", RequiresValue: true},
			{Op: OpNe, Label: "is not", RequiresValue: true},
			{Op: OpIn, Label: "is any of", RequiresValue: true},
			{Op: OpNotIn, Label: "is none of", RequiresValue: true},
		},
		DefaultOperator: OpEq,
	}
}

func boolStrategy() Strategy {
	return Strategy{
		Operators: []OperatorDescriptor{
			{Op: OpEq, Label: "is", RequiresValue: true},
			{Op: OpNe, Label: "is not", RequiresValue: true},
		},
		DefaultOperator: OpEq,
	}
}

// Registry maps component kinds to strategies. Consumers may register or
// override strategies at startup; reads are safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byKind map[field.ComponentKind]Strategy
}

// NewRegistry builds a registry pre-populated with the five canonical
// strategies.
func NewRegistry() *Registry {
	r := &Registry{byKind: make(map[field.ComponentKind]Strategy)}

	text := textStrategy()
	for _, k := range []field.ComponentKind{
		field.ComponentText, field.ComponentEmail, field.ComponentTextarea,
		field.ComponentURL, field.ComponentPhone, field.ComponentJSON,
		field.ComponentMarkdown, field.ComponentFormula,
		field.ComponentListInput, field.ComponentChecklist, field.ComponentArray,
	} {
		r.byKind[k] = text
	}

	num := numberStrategy()
	for _, k := range []field.ComponentKind{
		field.ComponentNumber, field.ComponentSlider, field.ComponentRating,
		field.ComponentCurrency, field.ComponentPercentage,
	} {
		r.byKind[k] = num
	}

	date := dateStrategy()
	for _, k := range []field.ComponentKind{
		field.ComponentDate, field.ComponentDateTime, field.ComponentDateTimeLocal,
	} {
		r.byKind[k] = date
	}

	sel := selectStrategy()
	for _, k := range []field.ComponentKind{
		field.ComponentSelect, field.ComponentMultiSelect, field.ComponentCheckboxList,
		field.ComponentToggleGroup, field.ComponentRadio, field.ComponentPicker,
		field.ComponentPopupPicker, field.ComponentTag, field.ComponentLanguage,
	} {
		r.byKind[k] = sel
	}

	boolean := boolStrategy()
	for _, k := range []field.ComponentKind{
		field.ComponentCheckbox, field.ComponentToggle, field.ComponentSwitch,
	} {
		r.byKind[k] = boolean
	}

	return r
}

// Get returns the strategy for a component kind, falling back to the text
// strategy for unregistered kinds.
func (r *Registry) Get(kind field.ComponentKind) Strategy {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.byKind[kind]; ok {
		return s
	}
	return textStrategy()
}

// GetByName resolves a free-form component string and returns its strategy.
// Unknown strings resolve through ComponentUnknown to the text strategy.
func (r *Registry) GetByName(component string) Strategy {
	return r.Get(field.ParseComponent(component))
}

// Register installs or overrides the strategy for a kind.
func (r *Registry) Register(kind field.ComponentKind, s Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byKind[kind] = s
}
