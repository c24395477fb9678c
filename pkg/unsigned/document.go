package unsigned

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// documentSchema is the embedded JSON Schema every assembled document must
// satisfy. This is a local structural self-check: nothing is fetched from a
// schema registry.
const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["issuer", "subject", "badge", "recipient", "extra", "app_name"],
  "properties": {
    "issuer": {
      "type": "object",
      "required": ["name", "url", "email", "id", "profile", "revocation_list", "public_key", "image"],
      "properties": {
        "name": {"type": "string", "minLength": 1},
        "url": {"type": "string"},
        "email": {"type": "string"},
        "id": {"type": "string", "pattern": "^did:[a-z0-9]+:.+"},
        "profile": {"type": "string"},
        "revocation_list": {"type": "string"},
        "public_key": {"type": "string"},
        "image": {"$ref": "#/definitions/image"}
      }
    },
    "subject": {
      "type": "object",
      "required": ["id", "profile", "title", "image"],
      "properties": {
        "id": {"type": "string", "pattern": "^did:[a-z0-9]+:.+"},
        "profile": {"type": "string"},
        "title": {"type": "string", "minLength": 1},
        "image": {"$ref": "#/definitions/image"}
      }
    },
    "badge": {
      "type": "object",
      "required": ["criteria", "criteria_narrative"]
    },
    "recipient": {"type": "object"},
    "extra": {"type": "object"},
    "app_name": {"type": "string", "minLength": 1}
  },
  "not": {
    "anyOf": [
      {"required": ["proof"]},
      {"required": ["signature"]}
    ]
  },
  "definitions": {
    "image": {
      "type": "object",
      "required": ["format", "value"],
      "properties": {
        "format": {"enum": ["reference", "data-uri"]},
        "value": {"type": "string", "minLength": 1}
      }
    }
  }
}`

// ValidateDocument checks an assembled document against the embedded
// structural schema. Generator output always passes; the check exists for
// callers that round-trip documents through storage or transport before
// signing.
func ValidateDocument(doc Document) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(documentSchema),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return WrapError(ErrCodeValidation, "document schema check failed to run", err)
	}
	if result.Valid() {
		return nil
	}

	descriptions := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		descriptions = append(descriptions, fmt.Sprintf("%v", desc))
	}
	return Errorf(ErrCodeValidation,
		"document failed schema check: %s", strings.Join(descriptions, "; "))
}
