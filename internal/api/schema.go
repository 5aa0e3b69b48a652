package api

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// The exam endpoints are backed by LLM generation server-side, so a
// structurally broken payload is an expected failure, not a programming
// error. Generate responses are validated against these schemas before any
// field is trusted.

var topicExamSchema = map[string]any{
	"type":     "object",
	"required": []any{"exam_id", "questions"},
	"properties": map[string]any{
		"exam_id": map[string]any{},
		"topic":   map[string]any{"type": "string"},
		"questions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"question", "options", "correct_answer"},
				"properties": map[string]any{
					"question":       map[string]any{"type": "string"},
					"options":        map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "minItems": 2},
					"correct_answer": map[string]any{"type": "string"},
				},
			},
		},
	},
}

var subjectExamSchema = map[string]any{
	"type":     "object",
	"required": []any{"id", "questions"},
	"properties": map[string]any{
		"id": map[string]any{},
		"questions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "question_text", "options"},
				"properties": map[string]any{
					"id":            map[string]any{},
					"question_text": map[string]any{"type": "string"},
					"options":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "minItems": 2},
					"topic_title":   map[string]any{"type": "string"},
				},
			},
		},
	},
}

var schemaCache sync.Map // map[string]*jsonschema.Schema

// validatePayload checks raw JSON against a named schema definition,
// compiling and caching on first use.
func validatePayload(name string, def map[string]any, raw []byte, fallback string) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return callErr(fallback, fmt.Errorf("invalid JSON: %w", err))
	}

	compiled, err := compiledSchema(name, def)
	if err != nil {
		return callErr(fallback, fmt.Errorf("compile schema %q: %w", name, err))
	}

	if err := compiled.Validate(parsed); err != nil {
		return callErr(fallback, fmt.Errorf("schema validation failed: %w", err))
	}
	return nil
}

func compiledSchema(name string, def map[string]any) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a parsed JSON value, so round-trip the definition.
	defBytes, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(name, compiled)
	return compiled, nil
}
