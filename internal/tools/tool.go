// Package tools exposes the agent's callable tools through a fixed,
// name-keyed registry.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/stoewer/go-strcase"
)

// Tool is a named capability the model can invoke. Each tool takes a
// single string argument, described by its JSON schema, and always
// produces a string result.
type Tool struct {
	name        string
	description string
	parameters  map[string]interface{}
	call        func(ctx context.Context, args map[string]interface{}) (string, error)
}

// New builds a tool whose parameters are reflected from A. The fields of
// A are exposed under snake_case keys.
func New[A any](name, description string, fn func(ctx context.Context, args A) string) (*Tool, error) {
	var zero A
	parameters, err := createSchema(zero)
	if err != nil {
		return nil, fmt.Errorf("failed to build schema for tool %s: %w", name, err)
	}

	return &Tool{
		name:        name,
		description: description,
		parameters:  parameters,
		call: func(ctx context.Context, raw map[string]interface{}) (string, error) {
			var args A
			if err := decodeArgs(raw, &args); err != nil {
				return "", fmt.Errorf("invalid arguments for %s: %w", name, err)
			}
			return fn(ctx, args), nil
		},
	}, nil
}

// Name returns the tool name.
func (t *Tool) Name() string { return t.name }

// Description returns the natural-language description given to the model.
func (t *Tool) Description() string { return t.description }

// Parameters returns the JSON schema for the tool's arguments.
func (t *Tool) Parameters() map[string]interface{} { return t.parameters }

// Invoke runs the tool with the arguments the model supplied.
func (t *Tool) Invoke(ctx context.Context, args map[string]interface{}) (string, error) {
	return t.call(ctx, args)
}

func createSchema(v any) (map[string]interface{}, error) {
	r := &jsonschema.Reflector{
		KeyNamer:       strcase.SnakeCase,
		DoNotReference: true,
		ExpandedStruct: true,
	}

	schema := r.Reflect(v)
	if schema == nil {
		return nil, fmt.Errorf("failed to generate schema")
	}

	schemaBytes, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(schemaBytes, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}

	delete(result, "$schema")
	delete(result, "$id")
	return result, nil
}

func decodeArgs(raw map[string]interface{}, out any) error {
	if raw == nil {
		raw = map[string]interface{}{}
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
