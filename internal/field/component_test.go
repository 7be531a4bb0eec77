package field

import "testing"

func TestParseComponent_CanonicalNames(t *testing.T) {
	cases := map[string]ComponentKind{
		"text":           ComponentText,
		"checkbox-list":  ComponentCheckboxList,
		"popup-picker":   ComponentPopupPicker,
		"datetime-local": ComponentDateTimeLocal,
		"color-picker":   ComponentColorPicker,
		"list-input":     ComponentListInput,
	}
	for in, want := range cases {
		if got := ParseComponent(in); got != want {
			t.Errorf("ParseComponent(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseComponent_SeparatorAndCaseTolerance(t *testing.T) {
	if got := ParseComponent("Checkbox_List"); got != ComponentCheckboxList {
		t.Errorf("ParseComponent(Checkbox_List) = %v, want checkbox-list", got)
	}
	if got := ParseComponent("PopupPicker"); got != ComponentPopupPicker {
		t.Errorf("ParseComponent(PopupPicker) = %v, want popup-picker", got)
	}
}

func TestParseComponent_UnknownFallsBack(t *testing.T) {
	if got := ParseComponent("made-up-widget"); got != ComponentUnknown {
		t.Errorf("ParseComponent(made-up-widget) = %v, want unknown", got)
	}
	if got := ParseComponent(""); got != ComponentUnknown {
		t.Errorf("ParseComponent(empty) = %v, want unknown", got)
	}
}

func TestParseRole(t *testing.T) {
	if got := ParseRole("status"); got != RoleStatus {
		t.Errorf("ParseRole(status) = %v, want RoleStatus", got)
	}
	if got := ParseRole("entityType"); got != RoleEntityType {
		t.Errorf("ParseRole(entityType) = %v, want RoleEntityType", got)
	}
	if got := ParseRole("unheard-of"); got != RoleNone {
		t.Errorf("ParseRole(unheard-of) = %v, want RoleNone", got)
	}
}

func TestComponentString_RoundTrip(t *testing.T) {
	for kind, name := range componentNames {
		if kind == ComponentUnknown {
			continue
		}
		if got := ParseComponent(name); got != kind {
			t.Errorf("ParseComponent(%q) = %v, want %v", name, got, kind)
		}
	}
}

func TestDescriptorResolve(t *testing.T) {
	d := Descriptor{RawComponent: "picker", RawRole: "title"}
	d.Resolve()
	if d.Component != ComponentPicker {
		t.Errorf("Component = %v, want picker", d.Component)
	}
	if d.Role != RoleTitle {
		t.Errorf("Role = %v, want title", d.Role)
	}
}

func TestDisplayLabel(t *testing.T) {
	d := Descriptor{Name: "billing_address_line"}
	if got := d.DisplayLabel(); got != "Billing Address Line" {
		t.Errorf("DisplayLabel = %q", got)
	}
	d = Descriptor{Name: "owner_id", Label: "Owner"}
	if got := d.DisplayLabel(); got != "Owner" {
		t.Errorf("DisplayLabel with explicit label = %q", got)
	}
}

func TestComponentClassification(t *testing.T) {
	cases := []struct {
		kind          ComponentKind
		optionBearing bool
		relational    bool
		temporal      bool
	}{
		{ComponentSelect, true, false, false},
		{ComponentCheckboxList, true, false, false},
		{ComponentPicker, false, true, false},
		{ComponentPopupPicker, false, true, false},
		{ComponentDate, false, false, true},
		{ComponentDateTimeLocal, false, false, true},
		{ComponentText, false, false, false},
		{ComponentUnknown, false, false, false},
	}
	for _, tc := range cases {
		if got := tc.kind.IsOptionBearing(); got != tc.optionBearing {
			t.Errorf("%v.IsOptionBearing() = %v, want %v", tc.kind, got, tc.optionBearing)
		}
		if got := tc.kind.IsRelational(); got != tc.relational {
			t.Errorf("%v.IsRelational() = %v, want %v", tc.kind, got, tc.relational)
		}
		if got := tc.kind.IsTemporal(); got != tc.temporal {
			t.Errorf("%v.IsTemporal() = %v, want %v", tc.kind, got, tc.temporal)
		}
	}
}

func TestTitleField(t *testing.T) {
	s := Schema{Fields: []Descriptor{
		{Name: "status", RawComponent: "select", RawRole: "status"},
		{Name: "number", RawComponent: "text", RawRole: "title"},
	}}
	s.Resolve()
	tf := s.TitleField()
	if tf == nil || tf.Name != "number" {
		t.Fatalf("TitleField = %v, want number", tf)
	}

	none := Schema{Fields: []Descriptor{{Name: "x", RawComponent: "text"}}}
	none.Resolve()
	if none.TitleField() != nil {
		t.Fatal("TitleField on schema without title role should be nil")
	}
}
