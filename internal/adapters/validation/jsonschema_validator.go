package validation

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"imobcrm/internal/ports"
)

//go:embed schemas/property.schema.json
var propertySchema []byte

// DocumentProperty selects the property create/update payload schema.
const DocumentProperty = "property"

// JSONSchemaValidator implements ports.SchemaValidator using compiled JSON
// Schemas for the structured request payloads.
type JSONSchemaValidator struct {
	schemas map[string]*jsonschema.Schema
}

// NewJSONSchemaValidator compiles all embedded schemas.
func NewJSONSchemaValidator() (ports.SchemaValidator, error) {
	compiler := jsonschema.NewCompiler()
	schemas := make(map[string]*jsonschema.Schema)

	if err := compiler.AddResource("property.schema.json", strings.NewReader(string(propertySchema))); err != nil {
		return nil, fmt.Errorf("failed to load property schema: %w", err)
	}
	compiled, err := compiler.Compile("property.schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile property schema: %w", err)
	}
	schemas[DocumentProperty] = compiled

	return &JSONSchemaValidator{schemas: schemas}, nil
}

func (v *JSONSchemaValidator) Validate(ctx context.Context, document string, payload []byte) error {
	schema, exists := v.schemas[document]
	if !exists {
		return fmt.Errorf("no schema registered for document %q", document)
	}

	var data interface{}
	if err := json.Unmarshal(payload, &data); err != nil {
		return fmt.Errorf("invalid JSON payload: %w", err)
	}

	if err := schema.Validate(data); err != nil {
		return fmt.Errorf("validation failed for %s: %w", document, err)
	}
	return nil
}
