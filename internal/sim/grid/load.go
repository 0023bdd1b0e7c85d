package grid

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed grid_info.schema.json
var schemaJSON string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("grid_info.schema.json", schemaJSON)
	})
	return schema, schemaErr
}

// Load reads, validates and builds grid_info.json.
func Load(path string) (Summary, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Summary{}, err
	}
	return Parse(raw)
}

func Parse(raw []byte) (Summary, error) {
	s, err := compiledSchema()
	if err != nil {
		return Summary{}, fmt.Errorf("grid_info schema: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Summary{}, fmt.Errorf("grid_info.json: %w", err)
	}
	if err := s.Validate(doc); err != nil {
		return Summary{}, fmt.Errorf("grid_info.json: %w", err)
	}

	var in Info
	if err := json.Unmarshal(raw, &in); err != nil {
		return Summary{}, fmt.Errorf("grid_info.json: %w", err)
	}
	sum, err := Build(in)
	if err != nil {
		return Summary{}, fmt.Errorf("grid_info.json: %w", err)
	}
	return sum, nil
}
