package mcpservice

import (
	"encoding/json"
	"fmt"

	gschema "github.com/google/jsonschema-go/jsonschema"
	"github.com/invopop/jsonschema"
)

// reflectSchema reflects a Go type A into an inlined object schema using
// invopop/jsonschema.
func reflectSchema[A any](allowAdditional bool) *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference:            true, // inline defs
		ExpandedStruct:            true, // put struct at root
		AllowAdditionalProperties: allowAdditional,
	}
	s := r.Reflect(new(A))
	// The runtime resolves schemas without a meta-schema; drop the identifiers
	// the reflector adds for standalone documents.
	s.Version = ""
	s.ID = ""
	return s
}

// reflectInputSchema reflects A and converts the result into the schema type
// the go-sdk validates tool arguments against. Only object schemas are
// accepted as tool input.
func reflectInputSchema[A any](allowAdditional bool) (*gschema.Schema, error) {
	s := reflectSchema[A](allowAdditional)
	if s.Type != "object" {
		return nil, fmt.Errorf("tool input type %T must reflect to an object schema, got %q", *new(A), s.Type)
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal reflected schema: %w", err)
	}
	var out gschema.Schema
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("convert reflected schema: %w", err)
	}
	return &out, nil
}
