package filter

import (
	"testing"

	"github.com/gridworks/dataview/internal/field"
)

func TestRegistryDefaults(t *testing.T) {
	r := NewRegistry()

	cases := []struct {
		kind field.ComponentKind
		want Operator
	}{
		{field.ComponentText, OpContains},
		{field.ComponentTextarea, OpContains},
		{field.ComponentNumber, OpBetween},
		{field.ComponentCurrency, OpBetween},
		{field.ComponentDate, OpBetween},
		{field.ComponentDateTime, OpBetween},
		{field.ComponentSelect, OpEq},
		{field.ComponentPicker, OpEq},
		{field.ComponentCheckbox, OpEq},
		{field.ComponentToggle, OpEq},
	}
	for _, tc := range cases {
		got := r.Get(tc.kind)
		if got.DefaultOperator != tc.want {
			t.Errorf("Get(%v).DefaultOperator = %q, want %q", tc.kind, got.DefaultOperator, tc.want)
		}
		if !got.Supports(got.DefaultOperator) {
			t.Errorf("Get(%v) default operator not in operator list", tc.kind)
		}
	}
}

func TestRegistryUnknownFallsBackToText(t *testing.T) {
	r := NewRegistry()

	s := r.GetByName("holographic-display")
	if s.DefaultOperator != OpContains {
		t.Fatalf("unknown component default = %q, want %q", s.DefaultOperator, OpContains)
	}
	if !s.Supports(OpIsEmpty) {
		t.Fatal("fallback strategy missing is_empty")
	}
}

func TestRegistryDateLabels(t *testing.T) {
	r := NewRegistry()
	s := r.Get(field.ComponentDate)
	labels := map[Operator]string{}
	for _, d := range s.Operators {
		labels[d.Op] = d.Label
	}
	if labels[OpGt] != "after" || labels[OpLt] != "before" {
		t.Fatalf("date labels gt=%q lt=%q, want after/before", labels[OpGt], labels[OpLt])
	}
}

func TestRegistryEmptinessOperatorsNeedNoValue(t *testing.T) {
	r := NewRegistry()
	for _, d := range r.Get(field.ComponentText).Operators {
		wantValue := d.Op != OpIsEmpty && d.Op != OpIsNotEmpty
		if d.RequiresValue != wantValue {
			t.Errorf("%s RequiresValue = %v, want %v", d.Op, d.RequiresValue, wantValue)
		}
	}
}

func TestRegistryRegisterOverrides(t *testing.T) {
	r := NewRegistry()
	custom := Strategy{
		Operators:       []OperatorDescriptor{{Op: OpEq, Label: "is", RequiresValue: true}},
		DefaultOperator: OpEq,
	}
	r.Register(field.ComponentText, custom)
	if got := r.Get(field.ComponentText).DefaultOperator; got != OpEq {
		t.Fatalf("after override default = %q, want %q", got, OpEq)
	}
}
