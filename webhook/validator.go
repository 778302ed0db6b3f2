package webhook

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// configSetSchema is the shape every hydrated workspace configuration
// document must satisfy before decoding. Extra fields are tolerated so that
// documents written by newer control planes still decode.
const configSetSchema = `{
	"type": "object",
	"required": ["webhookConfigs"],
	"properties": {
		"webhookConfigs": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "name"],
				"properties": {
					"id": {"type": "string", "minLength": 1},
					"name": {"type": "string", "minLength": 1},
					"authToken": {"type": "string"},
					"properties": {
						"type": "object",
						"additionalProperties": {"type": "string"}
					}
				}
			}
		}
	}
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func compileSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var doc any
		if err := json.Unmarshal([]byte(configSetSchema), &doc); err != nil {
			schemaErr = fmt.Errorf("webhook: unmarshal schema: %w", err)

			return
		}

		const url = "hookwire://schema/config-set"

		c := jsonschema.NewCompiler()
		if err := c.AddResource(url, doc); err != nil {
			schemaErr = fmt.Errorf("webhook: add schema resource: %w", err)

			return
		}

		compiledSchema, schemaErr = c.Compile(url)
	})

	return compiledSchema, schemaErr
}

// validateDocument checks a hydrated configuration document against the
// config set schema.
func validateDocument(doc json.RawMessage) error {
	schema, err := compileSchema()
	if err != nil {
		return err
	}

	var decoded any
	if err := json.Unmarshal(doc, &decoded); err != nil {
		return fmt.Errorf("webhook: decode document: %w", err)
	}

	if err := schema.Validate(decoded); err != nil {
		return fmt.Errorf("webhook: invalid config set document: %w", err)
	}

	return nil
}
