package quiz

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const catalogSchemaURL = "schema://intake-catalog.json"

// catalogSchema describes the on-disk catalog document.
var catalogSchema = map[string]any{
	"type":     "object",
	"required": []any{"questions"},
	"properties": map[string]any{
		"title": map[string]any{"type": "string"},
		"questions": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items":    map[string]any{"$ref": "#/$defs/question"},
		},
	},
	"additionalProperties": false,
	"$defs": map[string]any{
		"labels": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string", "minLength": 1},
		},
		"question": map[string]any{
			"type":     "object",
			"required": []any{"id", "question"},
			"properties": map[string]any{
				"id":          map[string]any{"type": "integer", "minimum": 0},
				"question":    map[string]any{"type": "string", "minLength": 1},
				"description": map[string]any{"type": "string"},
				"options":     map[string]any{"$ref": "#/$defs/labels"},
				"prefer":      map[string]any{"type": "string", "minLength": 1},
				"last_step":   map[string]any{"type": "boolean"},
				"sub_questions": map[string]any{
					"type":  "array",
					"items": map[string]any{"$ref": "#/$defs/subQuestion"},
				},
			},
			"additionalProperties": false,
		},
		"subQuestion": map[string]any{
			"type":     "object",
			"required": []any{"id", "question", "options"},
			"properties": map[string]any{
				"id":          map[string]any{"type": "string", "minLength": 1},
				"question":    map[string]any{"type": "string", "minLength": 1},
				"description": map[string]any{"type": "string"},
				"options": map[string]any{
					"allOf": []any{
						map[string]any{"$ref": "#/$defs/labels"},
						map[string]any{"minItems": 1},
					},
				},
			},
			"additionalProperties": false,
		},
	},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func getCompiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants parsed JSON values, not Go ints.
		defBytes, err := json.Marshal(catalogSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(catalogSchemaURL, defParsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(catalogSchemaURL)
	})
	return compiledSchema, compileErr
}

// validateDocument checks a decoded YAML document against catalogSchema.
func validateDocument(doc any) error {
	// Round-trip through JSON so the validator only sees JSON value types.
	raw, err := json.Marshal(doc)
	if err != nil {
		return &ConfigError{Msg: "document is not representable as JSON", Err: err}
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &ConfigError{Msg: "document is not representable as JSON", Err: err}
	}

	compiled, err := getCompiledSchema()
	if err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return &ConfigError{Msg: "schema validation failed", Err: err}
	}
	return nil
}
