// cmd/gridrender renders a table offline: it reads a schema catalogue
// directory and a rows file, runs the column-build, flatten and format pass,
// and writes the same payload the render service returns from
// POST /v1/render/table.
//
// Usage:
//
//	gridrender -schemas ./schemas -rows ./rows.json -schema invoice \
//	    -flatten line-item,payment -out out.json
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/gridworks/dataview/internal/catalog"
	"github.com/gridworks/dataview/internal/field"
	"github.com/gridworks/dataview/internal/flatten"
	"github.com/gridworks/dataview/internal/table"
)

func main() {
	schemaDir := flag.String("schemas", "schemas", "directory of schema JSON documents")
	rowsFile := flag.String("rows", "", "JSON file with the row array")
	schemaID := flag.String("schema", "", "root schema id")
	flattenIDs := flag.String("flatten", "", "comma-separated child schema ids to flatten at all depths")
	language := flag.String("lang", "en", "active language for translations and numerics")
	showIDs := flag.Bool("ids", false, "inject the id pseudo-column")
	out := flag.String("out", "", "output file (default stdout)")
	flag.Parse()

	if *rowsFile == "" || *schemaID == "" {
		flag.Usage()
		os.Exit(2)
	}

	cat := catalog.New()
	if err := catalog.LoadDir(cat, *schemaDir); err != nil {
		log.Fatalf("loading schemas: %v", err)
	}

	raw, err := os.ReadFile(*rowsFile)
	if err != nil {
		log.Fatalf("reading rows: %v", err)
	}
	var rows []field.Row
	if err := json.Unmarshal(raw, &rows); err != nil {
		log.Fatalf("decoding rows: %v", err)
	}

	var cfg flatten.Config
	if *flattenIDs != "" {
		cfg.Schemas = strings.Split(*flattenIDs, ",")
	}

	resp, err := table.Build(cat, table.Request{
		Schema:   *schemaID,
		Rows:     rows,
		Flatten:  cfg,
		Language: *language,
		ShowIDs:  *showIDs,
	})
	if err != nil {
		log.Fatalf("rendering: %v", err)
	}

	encoded, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		log.Fatalf("encoding output: %v", err)
	}
	encoded = append(encoded, '\n')

	if *out == "" {
		os.Stdout.Write(encoded)
		return
	}
	if err := os.WriteFile(*out, encoded, 0o644); err != nil {
		log.Fatalf("writing output: %v", err)
	}
}
