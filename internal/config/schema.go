package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ConfigValueType defines the expected type for a configuration value.
type ConfigValueType int

const (
	TypeBool ConfigValueType = iota
	TypeDuration
	TypeString
)

// String returns the string representation of ConfigValueType.
func (t ConfigValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeDuration:
		return "duration"
	case TypeString:
		return "string"
	default:
		return "unknown"
	}
}

// ConfigKeySchema describes a known configuration key.
type ConfigKeySchema struct {
	Path        string          // Key name as written in config files (e.g., "git_timeout")
	Type        ConfigValueType // Expected value type
	Description string          // Human-readable description for help text
	Default     interface{}     // Default value
	check       func(string) error
}

// KnownKeys is the registry of all configuration keys.
var KnownKeys = map[string]ConfigKeySchema{
	"changelog_dir": {
		Path:        "changelog_dir",
		Type:        TypeString,
		Description: "Changelog directory, relative to the project root",
		Default:     "docs",
		check:       checkRelativeDir,
	},
	"changelog_file": {
		Path:        "changelog_file",
		Type:        TypeString,
		Description: "Changelog file name",
		Default:     "AI_CHANGELOG.md",
		check:       checkBareFilename,
	},
	"git_timeout": {
		Path:        "git_timeout",
		Type:        TypeDuration,
		Description: "Max wait for 'git rev-parse --show-toplevel'",
		Default:     "5s",
	},
	"plain": {
		Path:        "plain",
		Type:        TypeBool,
		Description: "Disable colored output",
		Default:     false,
	},
}

// KeyNames returns the known key names in sorted order.
func KeyNames() []string {
	names := make([]string, 0, len(KnownKeys))
	for name := range KnownKeys {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ErrUnknownKey is returned when trying to access an unknown configuration key.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return fmt.Sprintf("unknown configuration key: %s (known keys: %s)", e.Key, strings.Join(KeyNames(), ", "))
}

// GetKeySchema returns the schema for a known configuration key.
// Returns ErrUnknownKey if the key is not in the registry.
func GetKeySchema(path string) (ConfigKeySchema, error) {
	schema, ok := KnownKeys[path]
	if !ok {
		return ConfigKeySchema{}, ErrUnknownKey{Key: path}
	}
	return schema, nil
}

// ParsedValue represents a configuration value after validation.
type ParsedValue struct {
	Raw    string      // Original string input from user
	Parsed interface{} // Value converted to correct type
	Type   ConfigValueType
}

// ValidateValue validates a value against the schema for a given key.
// Returns the parsed value or an error with details about what's wrong.
func ValidateValue(key, value string) (ParsedValue, error) {
	schema, err := GetKeySchema(key)
	if err != nil {
		return ParsedValue{}, err
	}
	return validateAgainstSchema(schema, value)
}

func validateAgainstSchema(schema ConfigKeySchema, value string) (ParsedValue, error) {
	switch schema.Type {
	case TypeBool:
		return parseBoolValue(value)
	case TypeDuration:
		return parseDurationValue(value)
	case TypeString:
		if strings.TrimSpace(value) == "" {
			return ParsedValue{}, fmt.Errorf("%s cannot be empty", schema.Path)
		}
		if schema.check != nil {
			if err := schema.check(value); err != nil {
				return ParsedValue{}, err
			}
		}
		return ParsedValue{Raw: value, Parsed: value, Type: TypeString}, nil
	default:
		return ParsedValue{}, fmt.Errorf("unsupported type: %v", schema.Type)
	}
}

func parseBoolValue(value string) (ParsedValue, error) {
	b, err := strconv.ParseBool(strings.ToLower(value))
	if err != nil {
		return ParsedValue{}, fmt.Errorf("invalid boolean: %q (expected true or false)", value)
	}
	return ParsedValue{Raw: value, Parsed: b, Type: TypeBool}, nil
}

func parseDurationValue(value string) (ParsedValue, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return ParsedValue{}, fmt.Errorf("invalid duration: %q (examples: 500ms, 5s, 1m)", value)
	}
	if d <= 0 {
		return ParsedValue{}, fmt.Errorf("duration must be positive, got %q", value)
	}
	return ParsedValue{Raw: value, Parsed: d.String(), Type: TypeDuration}, nil
}

func checkBareFilename(value string) error {
	if filepath.Base(value) != value || value == "." || value == ".." || strings.ContainsAny(value, `/\`) {
		return fmt.Errorf("must be a file name without directories, got %q", value)
	}
	return nil
}

func checkRelativeDir(value string) error {
	if filepath.IsAbs(value) {
		return fmt.Errorf("must be relative to the project root, got %q", value)
	}
	clean := filepath.ToSlash(filepath.Clean(value))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("must stay inside the project root, got %q", value)
	}
	return nil
}
