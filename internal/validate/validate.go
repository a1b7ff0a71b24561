// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package validate checks resume documents against the embedded JSON
// Schema.
package validate

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/pdiddy/resume-engine/pkg/types"
)

//go:embed resume.schema.json
var schemaJSON []byte

var loadSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
})

// Error lists every schema violation found in a document.
type Error struct {
	Violations []string
}

func (e *Error) Error() string {
	return "schema validation failed: " + strings.Join(e.Violations, "; ")
}

// Schema returns the raw JSON Schema that documents are checked against.
func Schema() []byte {
	return schemaJSON
}

// Resume checks r. It returns *Error when the document does not conform.
func Resume(r types.Resume) error {
	return check(gojsonschema.NewGoLoader(r))
}

// Document checks raw JSON, such as a file written by an earlier import.
func Document(data []byte) error {
	return check(gojsonschema.NewBytesLoader(data))
}

func check(doc gojsonschema.JSONLoader) error {
	schema, err := loadSchema()
	if err != nil {
		return fmt.Errorf("loading resume schema: %w", err)
	}

	res, err := schema.Validate(doc)
	if err != nil {
		return fmt.Errorf("validating resume: %w", err)
	}
	if res.Valid() {
		return nil
	}

	verr := &Error{}
	for _, e := range res.Errors() {
		verr.Violations = append(verr.Violations, e.String())
	}
	return verr
}
