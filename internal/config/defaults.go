package config

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# flightlog configuration
# Precedence: FLIGHTLOG_* env vars > .flightlog/config.yml > ~/.config/flightlog/config.yml > defaults

changelog_dir: docs                   # Changelog directory, relative to the project root
changelog_file: AI_CHANGELOG.md       # Changelog file name
git_timeout: 5s                       # Max wait for 'git rev-parse --show-toplevel'
plain: false                          # Disable colored output (NO_COLOR also works)
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"changelog_dir":  "docs",
		"changelog_file": "AI_CHANGELOG.md",
		"git_timeout":    "5s",
		"plain":          false,
	}
}
