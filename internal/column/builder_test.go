package column

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridworks/dataview/internal/field"
)

func orderSchema() *field.Schema {
	s := &field.Schema{
		ID:    "orders",
		Label: "Orders",
		Fields: []field.Descriptor{
			{ID: "f-num", Name: "orderNumber", Label: "Order #", RawComponent: "text", RawRole: "title", SectionID: "main"},
			{ID: "f-status", Name: "status", RawComponent: "select", RawRole: "status", SectionID: "main"},
			{ID: "f-total", Name: "total", RawComponent: "currency", SectionID: "main"},
			{ID: "f-done", Name: "paid", RawComponent: "checkbox", SectionID: "billing"},
			{ID: "f-ship", Name: "shippingAddress", RawComponent: "text", SectionID: "billing"},
			{ID: "f-notes", Name: "notes", RawComponent: "textarea", SectionID: "billing"},
			{ID: "f-meta", Name: "meta", RawComponent: "json", SectionID: "billing"},
		},
	}
	s.Resolve()
	return s
}

func TestBuildAllFields(t *testing.T) {
	cols := Build(orderSchema(), Options{})
	require.Len(t, cols, 7)
	assert.Equal(t, "orderNumber", cols[0].ID)
	assert.Equal(t, "Order #", cols[0].Label)

	// Fields without an explicit label derive one from the name.
	assert.Equal(t, "Status", cols[1].Label)
}

func TestBuildExplicitColumnOrder(t *testing.T) {
	cols := Build(orderSchema(), Options{Columns: []string{"total", "orderNumber", "missing"}})
	require.Len(t, cols, 2)
	assert.Equal(t, "total", cols[0].ID)
	assert.Equal(t, "orderNumber", cols[1].ID)
}

func TestBuildSectionFilter(t *testing.T) {
	cols := Build(orderSchema(), Options{SectionID: "billing"})
	require.Len(t, cols, 4)
	assert.Equal(t, "paid", cols[0].ID)
}

func TestAlignment(t *testing.T) {
	byID := map[string]Column{}
	for _, c := range Build(orderSchema(), Options{}) {
		byID[c.ID] = c
	}
	assert.Equal(t, AlignRight, byID["total"].Align)
	assert.Equal(t, AlignCenter, byID["paid"].Align)
	assert.Equal(t, AlignLeft, byID["orderNumber"].Align)
}

func TestSortability(t *testing.T) {
	byID := map[string]Column{}
	for _, c := range Build(orderSchema(), Options{}) {
		byID[c.ID] = c
	}
	assert.False(t, byID["meta"].Sortable)
	assert.True(t, byID["total"].Sortable)
}

func TestWidthPolicy(t *testing.T) {
	byID := map[string]Column{}
	for _, c := range Build(orderSchema(), Options{}) {
		byID[c.ID] = c
	}

	// Status columns stay narrow and unwrapped.
	assert.Equal(t, 100, byID["status"].MinWidth)
	assert.False(t, byID["status"].Wrap)

	// Address-like names get generous wrappable widths regardless of component.
	assert.Equal(t, 420, byID["shippingAddress"].MaxWidth)
	assert.True(t, byID["shippingAddress"].Wrap)

	// Numeric columns are narrow.
	assert.Equal(t, 90, byID["total"].MinWidth)
	assert.False(t, byID["total"].Wrap)

	// Long-form text wraps wide.
	assert.True(t, byID["notes"].Wrap)
	assert.Equal(t, 480, byID["notes"].MaxWidth)
}

func TestIDColumnInjected(t *testing.T) {
	cols := Build(orderSchema(), Options{ShowIDs: true})
	require.Equal(t, "id", cols[0].ID)
	assert.Equal(t, "ID", cols[0].Label)

	row := field.Row{Values: map[string]any{"id": "ord-1"}}
	assert.Equal(t, "ord-1", cols[0].Accessor(row))
}

func TestIDColumnRelocatedNotDuplicated(t *testing.T) {
	s := orderSchema()
	s.Fields = append(s.Fields, field.Descriptor{ID: "f-id", Name: "id", Label: "Identifier", RawComponent: "text"})
	s.Resolve()

	cols := Build(s, Options{ShowIDs: true})
	require.Equal(t, "id", cols[0].ID)
	assert.Equal(t, "Identifier", cols[0].Label)

	count := 0
	for _, c := range cols {
		if c.ID == "id" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestIDColumnRemovedWhenHidden(t *testing.T) {
	s := orderSchema()
	s.Fields = append([]field.Descriptor{{ID: "f-id", Name: "id", RawComponent: "text"}}, s.Fields...)
	s.Resolve()

	for _, c := range Build(s, Options{}) {
		if c.ID == "id" {
			t.Fatal("id column present with ShowIDs false")
		}
	}
}

func TestFromFieldPrefix(t *testing.T) {
	f := field.Descriptor{ID: "f-qty", Name: "quantity", RawComponent: "number"}
	f.Resolve()
	col := FromField(f, "line-items")
	assert.Equal(t, "line-items.quantity", col.ID)

	row := field.Row{Values: map[string]any{"line-items.quantity": float64(3)}}
	assert.Equal(t, float64(3), col.Accessor(row))
}

func TestAccessorReadsRowValue(t *testing.T) {
	cols := Build(orderSchema(), Options{Columns: []string{"total"}})
	require.Len(t, cols, 1)
	row := field.Row{Values: map[string]any{"total": 19.99}}
	assert.Equal(t, 19.99, cols[0].Accessor(row))
}
