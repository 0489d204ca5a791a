package builder

import (
	"bytes"
	"encoding/json"
	"errors"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ConfigSchema documents the JSON wire shape accepted for persisted screen
// configurations. It is enforced before every create/update so malformed
// documents never reach storage; the Normalizer runs first, so in practice
// the schema guards against programmer error, not user input.
var ConfigSchema = map[string]any{
	"type":     "object",
	"required": []string{"name", "sections"},
	"properties": map[string]any{
		"id":        map[string]any{"type": "string"},
		"name":      map[string]any{"type": "string", "minLength": 1},
		"isActive":  map[string]any{"type": "boolean"},
		"version":   map[string]any{"type": "integer", "minimum": 1},
		"createdAt": map[string]any{"type": "string"},
		"updatedAt": map[string]any{"type": "string"},
		"sections": map[string]any{
			"type":  "array",
			"items": map[string]any{"$ref": "#/$defs/section"},
		},
	},
	"$defs": map[string]any{
		"section": map[string]any{
			"type":     "object",
			"required": []string{"id", "type", "items"},
			"properties": map[string]any{
				"id": map[string]any{"type": "string", "minLength": 1},
				"type": map[string]any{
					"enum": []string{"banner", "verticalList", "horizontalList", "grid", "hero"},
				},
				"title": map[string]any{"type": "string"},
				"items": map[string]any{
					"type":  "array",
					"items": map[string]any{"$ref": "#/$defs/item"},
				},
				"settings": map[string]any{
					"type":                 "object",
					"additionalProperties": true,
				},
			},
		},
		"item": map[string]any{
			"type":     "object",
			"required": []string{"id", "type", "content"},
			"properties": map[string]any{
				"id": map[string]any{"type": "string", "minLength": 1},
				"type": map[string]any{
					"enum": []string{"image", "text", "button", "product", "category"},
				},
				"content": map[string]any{
					"type":                 "object",
					"additionalProperties": true,
				},
			},
		},
	},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func compiledConfigSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		encoded, err := json.Marshal(ConfigSchema)
		if err != nil {
			compileErr = err
			return
		}
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("screen_config.json", bytes.NewReader(encoded)); err != nil {
			compileErr = err
			return
		}
		compiledSchema, compileErr = compiler.Compile("screen_config.json")
	})
	return compiledSchema, compileErr
}

// ValidateConfig checks a configuration against ConfigSchema. Failures are
// reported as a DocumentValidationError wrapping ErrDocumentInvalid.
func ValidateConfig(cfg *ScreenConfig) error {
	if cfg == nil {
		return nil
	}

	schema, err := compiledConfigSchema()
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(cfg)
	if err != nil {
		return &DocumentValidationError{Issues: []string{err.Error()}, Cause: err}
	}
	var doc any
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return &DocumentValidationError{Issues: []string{err.Error()}, Cause: err}
	}

	if err := schema.Validate(doc); err != nil {
		return &DocumentValidationError{Issues: collectIssues(err), Cause: err}
	}
	return nil
}

func collectIssues(err error) []string {
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return []string{err.Error()}
	}

	issues := []string{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			location := node.InstanceLocation
			if location == "" {
				location = "#"
			}
			issues = append(issues, location+": "+node.Message)
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(validationErr)
	return issues
}
