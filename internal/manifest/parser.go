package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Parse decodes a manifest from YAML or JSON bytes. YAML is a superset of
// JSON, so a single decode path covers both input formats.
func Parse(data []byte) (*Document, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}

	root, ok := normalize(raw).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("manifest root must be a mapping, got %T", raw)
	}

	// Round-trip through JSON to populate the typed view. The normalized map
	// stays attached for schema validation.
	jsonData, err := json.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("converting manifest to JSON: %w", err)
	}

	// The typed view is best-effort: a wrong-typed field keeps its zero value
	// here and is reported by schema validation over the raw form. Only a
	// decode failure that is not a type mismatch is a hard error.
	var doc Document
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return nil, fmt.Errorf("decoding manifest fields: %w", err)
		}
	}
	doc.raw = root
	return &doc, nil
}

// ParseFile reads path and parses it as a manifest.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// normalize recursively converts YAML-decoded values to JSON-compatible
// types. YAML v3 can produce map[any]any for mappings with non-string keys;
// those are stringified so the document can be validated as JSON.
func normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, v := range val {
			m[k] = normalize(v)
		}
		return m
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, v := range val {
			m[fmt.Sprintf("%v", k)] = normalize(v)
		}
		return m
	case []any:
		a := make([]any, len(val))
		for i, v := range val {
			a[i] = normalize(v)
		}
		return a
	default:
		return val
	}
}
