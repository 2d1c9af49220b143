// Package config provides hierarchical configuration management for flightlog using koanf.
// Configuration is loaded with priority: environment variables (FLIGHTLOG_*) > project config
// (.flightlog/config.yml, or config.json) > user config (~/.config/flightlog/config.yml) > defaults.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FLIGHTLOG_"

// ConfigSource tracks where a configuration value came from
type ConfigSource string

const (
	SourceDefault ConfigSource = "default"
	SourceUser    ConfigSource = "user"
	SourceProject ConfigSource = "project"
	SourceEnv     ConfigSource = "env"
)

// Configuration represents the flightlog CLI configuration
type Configuration struct {
	// ChangelogDir is the changelog subdirectory under the project root.
	ChangelogDir string `koanf:"changelog_dir" yaml:"changelog_dir" validate:"required"`
	// ChangelogFile is the changelog file name.
	ChangelogFile string `koanf:"changelog_file" yaml:"changelog_file" validate:"required"`
	// GitTimeout bounds the `git rev-parse` query (e.g. "5s").
	GitTimeout time.Duration `koanf:"git_timeout" yaml:"git_timeout"`
	// Plain disables colored output. Also enabled by NO_COLOR.
	Plain bool `koanf:"plain" yaml:"plain"`

	// Sources lists the config files that were loaded, lowest priority first.
	Sources []string `koanf:"-" yaml:"-"`
	// ProjectDir is the project root the project config was looked up in.
	ProjectDir string `koanf:"-" yaml:"-"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: <ProjectDir>/.flightlog/config.yml)
	ProjectConfigPath string
	// ProjectDir is the project root searched for .flightlog/ (default: current directory)
	ProjectDir string
	// SkipProjectConfig ignores the project config entirely
	SkipProjectConfig bool
	// UserConfigPath overrides the user config path (default: ~/.config/flightlog/config.yml)
	UserConfigPath string
	// SkipUserConfig ignores the user config entirely
	SkipUserConfig bool
}

// Load loads configuration from user, project, and environment sources.
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	var sources []string

	loadDefaults(k)

	if !opts.SkipUserConfig {
		path, err := loadUserConfig(k, opts.UserConfigPath)
		if err != nil {
			return nil, err
		}
		if path != "" {
			sources = append(sources, path)
		}
	}

	if !opts.SkipProjectConfig {
		path, err := loadProjectConfig(k, opts.ProjectDir, opts.ProjectConfigPath)
		if err != nil {
			return nil, err
		}
		if path != "" {
			sources = append(sources, path)
		}
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	cfg, err := finalizeConfig(k)
	if err != nil {
		return nil, err
	}
	cfg.Sources = sources
	cfg.ProjectDir = opts.ProjectDir
	return cfg, nil
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads the user-level config if present and returns its path.
func loadUserConfig(k *koanf.Koanf, override string) (string, error) {
	path := override
	if path == "" {
		var err error
		path, err = UserConfigPath()
		if err != nil {
			return "", nil
		}
	}
	return loadConfigFile(k, path, SourceUser)
}

// loadProjectConfig loads project-level config from projectDir, YAML preferred
// over JSON. Returns the path that was loaded, if any.
func loadProjectConfig(k *koanf.Koanf, projectDir, customPath string) (string, error) {
	if customPath != "" {
		if !fileExists(customPath) {
			return "", fmt.Errorf("config file not found: %s", customPath)
		}
		return loadConfigFile(k, customPath, SourceProject)
	}

	for _, candidate := range []string{ProjectConfigPath(projectDir), ProjectJSONConfigPath(projectDir)} {
		if fileExists(candidate) {
			return loadConfigFile(k, candidate, SourceProject)
		}
	}
	return "", nil
}

// loadConfigFile loads a YAML or JSON file based on its extension.
func loadConfigFile(k *koanf.Koanf, path string, source ConfigSource) (string, error) {
	if !fileExists(path) {
		return "", nil
	}

	if strings.HasSuffix(path, ".json") {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return "", fmt.Errorf("failed to load %s config %s: %w", source, path, err)
		}
		return path, nil
	}

	if err := ValidateYAMLSyntax(path); err != nil {
		return "", fmt.Errorf("validating YAML syntax for %s config: %w", source, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return "", fmt.Errorf("failed to load %s config %s: %w", source, path, err)
	}
	return path, nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals, validates, and applies final transformations
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if os.Getenv("NO_COLOR") != "" {
		cfg.Plain = true
	}

	return &cfg, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: FLIGHTLOG_GIT_TIMEOUT -> git_timeout
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}
