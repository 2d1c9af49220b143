package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrEmptyKey is returned when no configuration key is given.
var ErrEmptyKey = errors.New("configuration key cannot be empty")

// SetConfigValue validates value against the schema for key and writes it
// into the YAML config at configPath. The file and its directory are created
// when missing. Other keys and comments are kept.
func SetConfigValue(configPath, key, value string) (ParsedValue, error) {
	if key == "" {
		return ParsedValue{}, ErrEmptyKey
	}
	parsed, err := ValidateValue(key, value)
	if err != nil {
		return ParsedValue{}, err
	}

	var root yaml.Node
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := ValidateYAMLSyntaxFromBytes(data, configPath); err != nil {
			return ParsedValue{}, err
		}
		if err := yaml.Unmarshal(data, &root); err != nil {
			return ParsedValue{}, fmt.Errorf("parsing %s: %w", configPath, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return ParsedValue{}, fmt.Errorf("reading %s: %w", configPath, err)
	}

	if err := setTopLevelValue(&root, key, parsed.Parsed); err != nil {
		return ParsedValue{}, fmt.Errorf("updating %s: %w", configPath, err)
	}

	out, err := yaml.Marshal(&root)
	if err != nil {
		return ParsedValue{}, fmt.Errorf("encoding %s: %w", configPath, err)
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return ParsedValue{}, fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, out, 0o644); err != nil {
		return ParsedValue{}, fmt.Errorf("writing %s: %w", configPath, err)
	}
	return parsed, nil
}

// setTopLevelValue sets key in the top-level mapping of a YAML document,
// replacing an existing value in place.
func setTopLevelValue(root *yaml.Node, key string, value interface{}) error {
	if root.Kind == 0 {
		root.Kind = yaml.DocumentNode
	}
	if root.Kind != yaml.DocumentNode {
		return fmt.Errorf("unexpected YAML node kind %d at root", root.Kind)
	}

	if len(root.Content) == 0 {
		root.Content = []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}
	}
	mapping := root.Content[0]
	if mapping.Kind == yaml.ScalarNode && mapping.Tag == "!!null" {
		mapping.Kind = yaml.MappingNode
		mapping.Tag = "!!map"
		mapping.Value = ""
	}
	if mapping.Kind != yaml.MappingNode {
		return errors.New("config file must contain a mapping of keys")
	}

	var valueNode yaml.Node
	if err := valueNode.Encode(value); err != nil {
		return err
	}

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value != key {
			continue
		}
		valueNode.LineComment = mapping.Content[i+1].LineComment
		mapping.Content[i+1] = &valueNode
		return nil
	}

	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		&valueNode,
	)
	return nil
}
