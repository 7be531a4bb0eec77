package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/gridworks/dataview/internal/field"
)

// documentDef is the CUE definition every incoming schema document must
// satisfy before registration. Structs stay open so documents may carry
// extra metadata.
const documentDef = `
#Option: {
	id:     string | number | bool
	label?: string
	color?: string
	icon?:  string
	...
}

#Field: {
	id:            string
	name:          string
	label?:        string
	component:     string
	role?:         string
	roleColor?:    string
	options?:      [...#Option]
	targetSchema?: string
	translations?: bool
	sectionId?:    string
	metadata?:     {...}
	...
}

#Document: {
	id?:                  string
	label?:               string
	fields:               [...#Field]
	sections?:            [...{id: string, label?: string, ...}]
	statusGroup?:         string
	entityTypeGroup?:     string
	allowDataAssignedTo?: bool
	allowDataDueDate?:    bool
	...
}
`

var (
	defOnce sync.Once
	defVal  cue.Value
	defErr  error
)

func documentValue() (cue.Value, error) {
	defOnce.Do(func() {
		ctx := cuecontext.New()
		compiled := ctx.CompileString(documentDef)
		if err := compiled.Err(); err != nil {
			defErr = fmt.Errorf("compiling document definition: %w", err)
			return
		}
		defVal = compiled.LookupPath(cue.ParsePath("#Document"))
		if err := defVal.Err(); err != nil {
			defErr = fmt.Errorf("looking up document definition: %w", err)
		}
	})
	return defVal, defErr
}

// ValidateDocument checks a raw schema document against the CUE definition.
// All violations are joined into a single error.
func ValidateDocument(raw []byte) error {
	def, err := documentValue()
	if err != nil {
		return err
	}
	ctx := def.Context()
	data := ctx.CompileBytes(raw)
	if err := data.Err(); err != nil {
		return fmt.Errorf("parsing schema document: %w", err)
	}
	unified := def.Unify(data)
	if err := unified.Validate(cue.Final()); err != nil {
		msgs := make([]string, 0, 4)
		for _, e := range cueerrors.Errors(err) {
			msgs = append(msgs, e.Error())
		}
		return fmt.Errorf("invalid schema document: %s", strings.Join(msgs, "; "))
	}
	return nil
}

// LoadDocument validates and parses a schema-fetch payload, resolves the
// component and role enumerations, and returns the schema ready for
// registration. The document's id falls back to fallbackID when absent.
func LoadDocument(raw []byte, fallbackID string) (*field.Schema, error) {
	if err := ValidateDocument(raw); err != nil {
		return nil, err
	}
	var s field.Schema
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decoding schema document: %w", err)
	}
	if s.ID == "" {
		s.ID = fallbackID
	}
	s.Resolve()
	return &s, nil
}

// LoadDir registers every *.json document in dir. The file name, minus the
// extension, is the fallback schema id.
func LoadDir(cat *Catalog, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return err
		}
		id := strings.TrimSuffix(entry.Name(), ".json")
		s, err := LoadDocument(raw, id)
		if err != nil {
			return err
		}
		cat.Register(s)
	}
	return nil
}
