package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads an endpoint table from a JSON or YAML file.
// The format is detected from the extension (.yaml, .yml for YAML, otherwise JSON).
func LoadFile(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		return ParseYAML(data)
	}
	return ParseJSON(data)
}

// ParseYAML parses and validates a YAML endpoint table.
func ParseYAML(data []byte) (*File, error) {
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	return parseTree(tree)
}

// ParseJSON parses and validates a JSON endpoint table.
func ParseJSON(data []byte) (*File, error) {
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return parseTree(tree)
}

// parseTree validates a decoded document and converts it into a File.
func parseTree(tree any) (*File, error) {
	if tree == nil {
		return nil, ErrEmptyFile
	}
	tree = normalize(tree)
	if err := lowerMethods(tree); err != nil {
		return nil, err
	}

	doc, err := toJSON(tree)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	if err := validateSchema(doc); err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(doc, &f); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// normalize converts YAML-decoded trees into JSON-compatible ones:
// mappings become map[string]any with stringified keys.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	default:
		return v
	}
}

// lowerMethods lower-cases the method keys under every path in place.
// Shapes it does not recognize are left for schema validation to report.
func lowerMethods(tree any) error {
	root, ok := tree.(map[string]any)
	if !ok {
		return nil
	}
	paths, ok := root["paths"].(map[string]any)
	if !ok {
		return nil
	}

	result := &ValidationError{}
	for path, v := range paths {
		methods, ok := v.(map[string]any)
		if !ok {
			continue
		}
		lowered := make(map[string]any, len(methods))
		for m, ep := range methods {
			key := strings.ToLower(m)
			if _, dup := lowered[key]; dup {
				result.Add(fieldPath("paths", path, key), "method is declared more than once")
				continue
			}
			lowered[key] = ep
		}
		paths[path] = lowered
	}
	return result.errOrNil()
}
