package errors

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fatih/color"
)

// detailIndent lines up detail lines under the message after "❌ ".
const detailIndent = "   "

var (
	headlineColor = color.New(color.FgRed, color.Bold)
	usageColor    = color.New(color.FgCyan)
)

// FormatError renders a CLIError as a diagnostic block:
//
//	❌ Error: Invalid change type 'Chore'
//	   Valid types: Feature, Bugfix, Refactor, Perf, Docs, Critical-Fix
//	   Usage: flightlog <ChangeType> "<Summary>" "<RiskAnalysis>"
//
// Input mistakes are headed "Error"; configuration and filesystem problems
// carry their category name. Colors follow color.NoColor.
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}
	return formatError(err, !color.NoColor)
}

func formatError(err *CLIError, useColors bool) string {
	paint := func(c *color.Color, s string) string {
		if !useColors {
			return s
		}
		return c.Sprint(s)
	}

	var sb strings.Builder
	sb.WriteString(paint(headlineColor, "❌ "+headline(err.Category)+":"))
	sb.WriteString(" ")
	sb.WriteString(sentence(err.Message))
	sb.WriteString("\n")

	for _, line := range err.Remediation {
		sb.WriteString(detailIndent)
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	if err.Usage != "" {
		sb.WriteString(detailIndent)
		sb.WriteString(paint(usageColor, "Usage: "+err.Usage))
		sb.WriteString("\n")
	}
	return sb.String()
}

func headline(c ErrorCategory) string {
	switch c {
	case Configuration, Filesystem:
		return c.String()
	default:
		return "Error"
	}
}

// sentence upper-cases the first letter of an error string for display.
func sentence(msg string) string {
	r, size := utf8.DecodeRuneInString(msg)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return msg
	}
	return string(unicode.ToUpper(r)) + msg[size:]
}

// FprintAny prints err to w, formatting it as a CLIError when it carries one
// and as a plain error of the given fallback category otherwise.
func FprintAny(w io.Writer, err error, fallback ErrorCategory) {
	if err == nil {
		return
	}
	cliErr := AsCLIError(err)
	if cliErr == nil {
		cliErr = Wrap(err, fallback)
	}
	FprintError(w, cliErr)
}

// FprintError prints a formatted CLIError to w.
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatError(err))
}
