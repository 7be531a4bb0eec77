// Package table composes the rendering core end to end: column building,
// relational flattening, and per-cell formatting, producing the payload a
// flat grid UI consumes without ever inspecting raw rows.
package table

import (
	"fmt"

	"github.com/gridworks/dataview/internal/catalog"
	"github.com/gridworks/dataview/internal/column"
	"github.com/gridworks/dataview/internal/field"
	"github.com/gridworks/dataview/internal/flatten"
	"github.com/gridworks/dataview/internal/render"
)

// Request describes one table render pass.
type Request struct {
	Schema    string         `json:"schema"`
	Rows      []field.Row    `json:"rows"`
	Columns   []string       `json:"columns,omitempty"`
	SectionID string         `json:"sectionId,omitempty"`
	Flatten   flatten.Config `json:"flatten,omitempty"`
	Language  string         `json:"language,omitempty"`
	ShowIDs   bool           `json:"showIds,omitempty"`
}

// Response is the complete render payload: base columns, column groups from
// flattened child schemas, expanded rows, and a RenderSpec per cell aligned
// with the flattened column order.
type Response struct {
	Columns []column.Column        `json:"columns"`
	Groups  []flatten.ColumnGroup  `json:"groups"`
	Rows    []flatten.ProcessedRow `json:"rows"`
	Cells   [][]render.Spec        `json:"cells"`

	// TitleColumn is the column id of the schema's title-role field, the
	// anchor for expand/collapse affordances. Empty when the schema has none.
	TitleColumn string `json:"titleColumn,omitempty"`
}

// Build renders a full table for the request. The only error condition is an
// unknown root schema; malformed rows and values degrade per the formatter's
// rules instead of failing.
func Build(cat *catalog.Catalog, req Request) (*Response, error) {
	schema := cat.Resolve(req.Schema)
	if schema == nil {
		return nil, fmt.Errorf("schema not found for %s", req.Schema)
	}

	ctx := render.Context{Language: req.Language}
	res := flatten.FlattenTree(req.Rows, schema, cat, req.Flatten, 0)

	// The base group reflects the column override and id visibility; the
	// flattener builds it with defaults, so rebuild group 0 here.
	baseCols := column.Build(schema, column.Options{
		Columns:   req.Columns,
		SectionID: req.SectionID,
		ShowIDs:   req.ShowIDs,
	})
	if len(res.Groups) > 0 {
		res.Groups[0].Columns = baseCols
		reindexGroups(res.Groups)
	}

	statusField := statusFieldOf(schema)
	cells := make([][]render.Spec, 0, len(res.Rows))
	for _, pr := range res.Rows {
		row := pr.AsRow()
		inactive := render.RowInactive(row, statusField)
		var specs []render.Spec
		for _, g := range res.Groups {
			for _, col := range g.Columns {
				spec := render.Format(col.Field, col.Accessor(row), row, ctx)
				spec = render.Decorate(spec, col.Field, row, inactive)
				specs = append(specs, spec)
			}
		}
		cells = append(cells, specs)
	}

	resp := &Response{
		Columns: baseCols,
		Groups:  res.Groups,
		Rows:    res.Rows,
		Cells:   cells,
	}
	if tf := schema.TitleField(); tf != nil {
		resp.TitleColumn = tf.Name
	}
	return resp, nil
}

// Cell formats a single field value with decoration, the per-cell analogue
// of Build.
func Cell(cat *catalog.Catalog, schemaID, fieldName string, value any, row field.Row, lang string) (render.Spec, error) {
	schema := cat.Resolve(schemaID)
	if schema == nil {
		return render.Spec{}, fmt.Errorf("schema not found for %s", schemaID)
	}
	f := schema.Field(fieldName)
	if f == nil {
		return render.Spec{}, fmt.Errorf("field not found: %s.%s", schemaID, fieldName)
	}
	ctx := render.Context{Language: lang}
	spec := render.Format(*f, value, row, ctx)
	inactive := render.RowInactive(row, statusFieldOf(schema))
	return render.Decorate(spec, *f, row, inactive), nil
}

func statusFieldOf(s *field.Schema) *field.Descriptor {
	for i := range s.Fields {
		if s.Fields[i].Role == field.RoleStatus {
			return &s.Fields[i]
		}
	}
	return nil
}

// reindexGroups recomputes start offsets after the base group's column list
// changed.
func reindexGroups(groups []flatten.ColumnGroup) {
	offset := 0
	for i := range groups {
		groups[i].StartIndex = offset
		offset += len(groups[i].Columns)
	}
}
