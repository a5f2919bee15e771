package config

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// configSchema is the JSON Schema every configuration document must
// satisfy before it is decoded.
const configSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["baseUrl"],
  "additionalProperties": false,
  "properties": {
    "baseUrl": {"type": "string", "minLength": 1},
    "timeout": {"type": "number", "exclusiveMinimum": 0},
    "headers": {
      "type": "object",
      "additionalProperties": {"type": "string"}
    },
    "auth": {
      "type": "object",
      "required": ["type"],
      "additionalProperties": false,
      "properties": {
        "type": {"enum": ["basic", "bearer"]},
        "username": {"type": "string"},
        "password": {"type": "string"},
        "token": {"type": "string"}
      }
    },
    "raiseForStatus": {"type": "boolean"},
    "logging": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "headers": {"type": "boolean"},
        "bodyPreview": {"type": "boolean"}
      }
    }
  }
}`

var compiledSchema = jsonschema.MustCompileString("config.json", configSchema)

// validateDocument checks a JSON document against the config schema.
func validateDocument(data []byte) error {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("config is not valid JSON: %w", err)
	}
	if err := compiledSchema.Validate(doc); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
