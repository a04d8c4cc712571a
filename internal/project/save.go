package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"go.yaml.in/yaml/v3"
)

// AddPreset appends a preset name to registryPresets in the project file
// that governs dir. It returns the path of the updated file and whether the
// name was added; a name that is already listed leaves the file untouched.
//
// The file is edited as a document tree, so the other keys keep their
// order and number literals keep their spelling. YAML comments survive; a
// JSON file is re-indented with two spaces.
func AddPreset(dir, name string) (string, bool, error) {
	path, err := FindFile(dir)
	if err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", false, fmt.Errorf("reading project file: %w", err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return "", false, fmt.Errorf("parsing project file %s: %w", path, err)
	}
	if doc.Kind == 0 {
		doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}}
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return "", false, fmt.Errorf("project file %s is not a mapping", path)
	}

	list := mappingValue(root, presetsKey)
	if list != nil && list.ShortTag() != "!!null" {
		var v any
		if err := list.Decode(&v); err != nil {
			return "", false, fmt.Errorf("reading %s in %s: %w", presetsKey, path, err)
		}
		presets, err := presetNames(v)
		if err != nil {
			return "", false, fmt.Errorf("reading %s in %s: %w", presetsKey, path, err)
		}
		if slices.Contains(presets, name) {
			return path, false, nil
		}
	} else {
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if list != nil {
			*list = *seq
		} else {
			root.Content = append(root.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: presetsKey},
				seq)
		}
		list = mappingValue(root, presetsKey)
	}
	list.Content = append(list.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name})

	if err := writeFile(path, &doc); err != nil {
		return "", false, err
	}
	return path, true, nil
}

func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

// writeFile encodes the document in the format implied by the file extension.
func writeFile(path string, doc *yaml.Node) error {
	var (
		data []byte
		err  error
	)
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(doc)
	default:
		data, err = encodeJSON(doc)
	}
	if err != nil {
		return fmt.Errorf("marshaling project file: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing project file %s: %w", path, err)
	}
	return nil
}

// encodeJSON writes a node tree as indented JSON in document order.
func encodeJSON(doc *yaml.Node) ([]byte, error) {
	compact, err := appendJSON(nil, doc)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func appendJSON(buf []byte, n *yaml.Node) ([]byte, error) {
	var err error
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return append(buf, "null"...), nil
		}
		return appendJSON(buf, n.Content[0])
	case yaml.AliasNode:
		return appendJSON(buf, n.Alias)
	case yaml.MappingNode:
		buf = append(buf, '{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf = append(buf, ',')
			}
			key, err := json.Marshal(n.Content[i].Value)
			if err != nil {
				return nil, err
			}
			buf = append(append(buf, key...), ':')
			if buf, err = appendJSON(buf, n.Content[i+1]); err != nil {
				return nil, err
			}
		}
		return append(buf, '}'), nil
	case yaml.SequenceNode:
		buf = append(buf, '[')
		for i, item := range n.Content {
			if i > 0 {
				buf = append(buf, ',')
			}
			if buf, err = appendJSON(buf, item); err != nil {
				return nil, err
			}
		}
		return append(buf, ']'), nil
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return append(buf, "null"...), nil
		case "!!bool":
			b, err := strconv.ParseBool(n.Value)
			if err != nil {
				break
			}
			return strconv.AppendBool(buf, b), nil
		case "!!int", "!!float":
			// Keep the literal as written, e.g. 61.0.
			if json.Valid([]byte(n.Value)) {
				return append(buf, n.Value...), nil
			}
		}
		s, err := json.Marshal(n.Value)
		if err != nil {
			return nil, err
		}
		return append(buf, s...), nil
	}
	return nil, fmt.Errorf("unsupported node kind %d at line %d", n.Kind, n.Line)
}
