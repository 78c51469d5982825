package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// DocumentValidator validates exported preset documents before import.
type DocumentValidator interface {
	Validate(doc map[string]any) error
}

var presetDocumentSchema = map[string]any{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type":    "object",
	"properties": map[string]any{
		"version": map[string]any{"type": "string"},
		"charts": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"name", "widgets"},
				"properties": map[string]any{
					"id":      map[string]any{"type": "string"},
					"name":    map[string]any{"type": "string", "minLength": 1},
					"widgets": map[string]any{"type": "array"},
					"row":     map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"column":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"savedAt": map[string]any{"type": "string"},
				},
			},
		},
		"tiles": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"name"},
				"properties": map[string]any{
					"id":      map[string]any{"type": "string"},
					"name":    map[string]any{"type": "string", "minLength": 1},
					"visible": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"order":   map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"savedAt": map[string]any{"type": "string"},
				},
			},
		},
		"grids": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type": "object",
				"additionalProperties": map[string]any{
					"type":     "object",
					"required": []any{"name", "state"},
				},
			},
		},
	},
	"required": []any{"version"},
}

// JSONSchemaValidator compiles the preset document schema once and validates
// decoded documents against it.
type JSONSchemaValidator struct {
	once     sync.Once
	compiled *jsonschema.Schema
	compileE error
}

// NewJSONSchemaValidator builds a validator backed by jsonschema v5.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{}
}

// Validate ensures the document satisfies the preset export schema.
func (v *JSONSchemaValidator) Validate(doc map[string]any) error {
	schema, err := v.schema()
	if err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("dashboard: preset document failed validation: %w", err)
	}
	return nil
}

func (v *JSONSchemaValidator) schema() (*jsonschema.Schema, error) {
	v.once.Do(func() {
		data, err := json.Marshal(presetDocumentSchema)
		if err != nil {
			v.compileE = fmt.Errorf("dashboard: marshal preset schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		const name = "presets.json"
		if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
			v.compileE = fmt.Errorf("dashboard: load preset schema: %w", err)
			return
		}
		v.compiled, v.compileE = compiler.Compile(name)
	})
	return v.compiled, v.compileE
}

type noopDocumentValidator struct{}

func (noopDocumentValidator) Validate(map[string]any) error { return nil }
