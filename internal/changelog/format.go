package changelog

import (
	"fmt"
	"strings"
)

// TimestampLayout is the minute-resolution heading timestamp.
const TimestampLayout = "2006-01-02 15:04"

// Header is written once, when the changelog file is created.
const Header = `# AI_CHANGELOG

> Automated flight recorder - the single source of truth for code changes
> Generated automatically, do not edit by hand

`

// Markdown labels for the entry bullets.
const (
	changeLabel = "Change"
	riskLabel   = "Risk Analysis"
	ruleLine    = "---"
)

// FormatEntry renders e as a markdown block:
//
//	(blank)
//	## [2006-01-02 15:04] [Feature] ✨
//	(blank)
//	- Change: <summary>
//	- Risk Analysis: <risk analysis>
//	(blank)
//	---
func FormatEntry(e Entry) string {
	var sb strings.Builder
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "## [%s] %s\n", e.Timestamp.Format(TimestampLayout), e.Type.Display())
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "- %s: %s\n", changeLabel, e.Summary)
	fmt.Fprintf(&sb, "- %s: %s\n", riskLabel, e.RiskAnalysis)
	sb.WriteString("\n")
	sb.WriteString(ruleLine + "\n")
	return sb.String()
}
