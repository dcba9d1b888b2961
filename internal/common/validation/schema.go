// Package validation validates inbound request bodies against JSON schemas.
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// AssistRequestSchema constrains the /api/assist request body.
const AssistRequestSchema = `{
	"type": "object",
	"properties": {
		"query":     { "type": "string", "maxLength": 4096 },
		"styleLock": { "type": "string", "enum": ["auto", "friendly", "formal"] }
	},
	"required": ["query"],
	"additionalProperties": false
}`

var assistRequestSchema = gojsonschema.NewStringLoader(AssistRequestSchema)

// ValidateAssistRequest checks a raw JSON body against the assist schema and
// returns a single aggregated error message when it does not conform.
func ValidateAssistRequest(body []byte) error {
	result, err := gojsonschema.Validate(assistRequestSchema, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("request is not valid JSON: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
}
