package registry

import (
	"fmt"

	"go.yaml.in/yaml/v3"
)

// Decode parses a registry document. JSON and YAML are both accepted.
// Categories absent from the document come back as empty mappings, and an
// empty document decodes to the neutral registry.
func Decode(data []byte) (Registry, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Registry{}, fmt.Errorf("parsing registry document: %w", err)
	}
	return FromValue(raw)
}

// FromValue builds a Registry from an already decoded document, such as a
// sub-tree of a project file. A nil value yields the neutral registry.
func FromValue(raw any) (Registry, error) {
	if raw == nil {
		return Empty(), nil
	}
	if err := ValidateShape(raw); err != nil {
		return Registry{}, err
	}

	doc := normalize(raw).(map[string]any)
	r := Empty()
	for _, c := range Categories {
		if m, ok := doc[string(c)].(map[string]any); ok {
			r.set(c, m)
		}
	}
	return r, nil
}
