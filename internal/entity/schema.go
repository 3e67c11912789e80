package entity

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildVoucherJSONSchema returns a JSON-Schema (draft 2020-12 subset) as
// a generic map. Save requests are validated against it before anything
// touches the database.
func BuildVoucherJSONSchema() map[string]any {
	item := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"description": map[string]any{"type": "string", "minLength": 1},
			"quantity":    map[string]any{"type": "number", "minimum": 0.0},
			"unitPrice":   map[string]any{"type": "number", "minimum": 0.0},
			"totalPrice":  map[string]any{"type": "number", "minimum": 0.0},
		},
		"required": []string{"description"},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"amount":            map[string]any{"type": "number", "minimum": 0.0},
			"transactionDate":   map[string]any{"type": "string"},
			"transactionNumber": map[string]any{"type": "string", "pattern": `^\d+$`},
			"merchantName":      map[string]any{"type": "string"},
			"items":             map[string]any{"type": []any{"array", "null"}, "items": item},
			"totalAmount":       map[string]any{"type": "number", "minimum": 0.0},
			"taxAmount":         map[string]any{"type": "number", "minimum": 0.0},
			"currency":          map[string]any{"type": "string", "minLength": 3, "maxLength": 3},
			"rawText":           map[string]any{"type": "string", "minLength": 1},
		},
		"required": []string{"rawText", "currency"},
	}
}

// ValidateVoucherJSON validates raw extractedData JSON against the
// voucher schema.
func ValidateVoucherJSON(data []byte) error {
	b, err := json.Marshal(BuildVoucherJSONSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("voucher.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("voucher.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
