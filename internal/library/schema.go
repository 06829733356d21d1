package library

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// wordListSchema describes a JSON import file: an array of {en, zh} objects.
// Extra properties are allowed so richer dictionary dumps still import.
const wordListSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "en": {"type": "string"},
      "zh": {"type": "string"}
    },
    "required": ["en", "zh"]
  }
}`

// backupSchema describes an export file. Only libraries are restored, so
// progressStats is loosely typed.
const backupSchema = `{
  "type": "object",
  "properties": {
    "version": {"type": "string"},
    "exportDate": {"type": "string"},
    "libraries": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "words": {
            "type": "array",
            "items": {
              "type": "object",
              "properties": {
                "en": {"type": "string"},
                "zh": {"type": "string"}
              }
            }
          }
        },
        "required": ["name"]
      }
    },
    "progressStats": {"type": "object"}
  },
  "required": ["libraries"]
}`

// schemaCache caches compiled schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// compiledSchema returns a cached compiled schema or compiles and caches it.
func compiledSchema(name, def string) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader([]byte(def)))
	if err != nil {
		return nil, fmt.Errorf("parse schema %q: %w", name, err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(name, compiled)
	return compiled, nil
}

// validate checks raw JSON against the named schema and returns the decoded
// document on success.
func validate(name, def string, raw []byte) (any, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	compiled, err := compiledSchema(name, def)
	if err != nil {
		return nil, err
	}
	if err := compiled.Validate(doc); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}
	return doc, nil
}
