package field

import (
	"encoding/json"
	"strconv"
)

// ChildGroup is a one-to-many relation fetched alongside a row: the child
// schema id plus the rows belonging to it. Direction and RelationType carry
// the relation-fetch metadata when present.
type ChildGroup struct {
	Schema       string `json:"schema"`
	Direction    string `json:"direction,omitempty"`
	RelationType string `json:"relation_type,omitempty"`
	Data         []Row  `json:"data"`
}

// UnmarshalJSON accepts data as either an array of rows or a single row
// object. Relation endpoints emit the grouped array form; flat per-row
// children sometimes carry a single object.
func (g *ChildGroup) UnmarshalJSON(b []byte) error {
	var raw struct {
		Schema       string          `json:"schema"`
		Direction    string          `json:"direction"`
		RelationType string          `json:"relation_type"`
		Data         json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	g.Schema = raw.Schema
	g.Direction = raw.Direction
	g.RelationType = raw.RelationType
	g.Data = nil
	if len(raw.Data) == 0 {
		return nil
	}
	if raw.Data[0] == '[' {
		return json.Unmarshal(raw.Data, &g.Data)
	}
	var single Row
	if err := json.Unmarshal(raw.Data, &single); err != nil {
		return err
	}
	g.Data = []Row{single}
	return nil
}

// Row is an opaque key/value record plus its one-to-many children. Values
// holds everything the API returned except the children key.
type Row struct {
	Values   map[string]any
	Children []ChildGroup
}

// UnmarshalJSON splits the children key out of the raw record.
func (r *Row) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	r.Values = make(map[string]any, len(raw))
	r.Children = nil
	for k, v := range raw {
		if k == "children" {
			if err := json.Unmarshal(v, &r.Children); err != nil {
				return err
			}
			continue
		}
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return err
		}
		r.Values[k] = val
	}
	return nil
}

// MarshalJSON re-embeds children alongside the plain values.
func (r Row) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Values)+1)
	for k, v := range r.Values {
		out[k] = v
	}
	if len(r.Children) > 0 {
		out["children"] = r.Children
	}
	return json.Marshal(out)
}

// Value returns the raw value for a key, or nil.
func (r Row) Value(key string) any {
	if r.Values == nil {
		return nil
	}
	return r.Values[key]
}

// Bool reads a boolean value, tolerating string forms.
func (r Row) Bool(key string) bool {
	switch v := r.Value(key).(type) {
	case bool:
		return v
	case string:
		return v == "true" || v == "1"
	case float64:
		return v != 0
	default:
		return false
	}
}

// String reads a value in its display string form.
func (r Row) String(key string) string {
	return Stringify(r.Value(key))
}

// Forced reports the row-level force flag.
func (r Row) Forced() bool {
	return r.Bool("isForce")
}

// ForceReason returns the reason attached to a forced row.
func (r Row) ForceReason() string {
	return r.String("forceReason")
}

// Stringify converts a raw JSON value to its display string. Numbers drop
// insignificant fraction digits; nil becomes the empty string.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case json.Number:
		return t.String()
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
