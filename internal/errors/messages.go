package errors

import (
	"fmt"
	"strings"
)

// Common error messages for the flightlog CLI.
// These templates keep wording and remediation consistent across commands.

// UsageLine is the canonical invocation shown with usage errors.
const UsageLine = `flightlog <ChangeType> "<Summary>" "<RiskAnalysis>"`

// MissingArguments creates an error for fewer than three positional arguments.
func MissingArguments(got int) *CLIError {
	return NewUsageError(
		fmt.Sprintf("expected 3 arguments (type, summary, risk analysis), got %d", got),
		UsageLine,
		`Example: flightlog Feature "Add message handler" "May affect existing API responses"`,
		"Run 'flightlog types' to list the valid change types",
	)
}

// InvalidChangeType creates an error for a change type outside the fixed set.
func InvalidChangeType(provided string, valid []string, cause error) *CLIError {
	return &CLIError{
		Category: Validation,
		Message:  fmt.Sprintf("invalid change type '%s'", provided),
		Remediation: []string{
			"Valid types: " + strings.Join(valid, ", "),
			"Change types are case-sensitive (e.g., Critical-Fix, not critical-fix)",
		},
		Cause: cause,
	}
}

// EmptySummary creates an error for a blank summary.
func EmptySummary(cause error) *CLIError {
	return &CLIError{
		Category:    Validation,
		Message:     "summary cannot be empty",
		Remediation: []string{"Describe the change in one line, in quotes"},
		Cause:       cause,
	}
}

// EmptyRiskAnalysis creates an error for a blank risk analysis.
func EmptyRiskAnalysis(cause error) *CLIError {
	return &CLIError{
		Category: Validation,
		Message:  "risk analysis cannot be empty - this is the most important field!",
		Remediation: []string{
			"State what could break and who is affected",
			`Use "none expected" only when you have checked`,
		},
		Cause: cause,
	}
}

// DirectoryNotCreatable creates an error when the changelog directory cannot be created.
func DirectoryNotCreatable(dir string, cause error) *CLIError {
	return WrapWithMessage(cause, Filesystem,
		fmt.Sprintf("creating directory %s", dir),
		"Check permissions on the parent directory: ls -ld "+dir+"/..",
	)
}

// FileNotWritable creates an error when the changelog cannot be opened or written.
func FileNotWritable(path string, cause error) *CLIError {
	return WrapWithMessage(cause, Filesystem,
		fmt.Sprintf("appending log to %s", path),
		"Check file permissions: ls -la "+path,
		"Ensure the parent directory is writable",
	)
}

// ChangelogNotFound creates an error when a read-only command finds no changelog.
func ChangelogNotFound(path string) *CLIError {
	return New(Filesystem,
		fmt.Sprintf("changelog not found: %s", path),
		`Record the first entry with: flightlog Feature "<summary>" "<risk analysis>"`,
	)
}

// ConfigLoadError creates an error for an unreadable or invalid config file.
func ConfigLoadError(cause error) *CLIError {
	return WrapWithMessage(cause, Configuration,
		"loading configuration",
		"Check .flightlog/config.yml and ~/.config/flightlog/config.yml for syntax errors",
		"Inspect the effective values with: flightlog config show",
	)
}
