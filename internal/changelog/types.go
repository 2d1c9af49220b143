package changelog

import (
	"fmt"
	"time"
)

// ChangeType is the category label attached to a changelog entry.
type ChangeType string

const (
	Feature     ChangeType = "Feature"
	Bugfix      ChangeType = "Bugfix"
	Refactor    ChangeType = "Refactor"
	CriticalFix ChangeType = "Critical-Fix"
	Docs        ChangeType = "Docs"
	Perf        ChangeType = "Perf"
)

// fallbackGlyph is shown for types outside the fixed set.
const fallbackGlyph = "📦"

// changeTypes lists the valid types in display order.
var changeTypes = []ChangeType{Feature, Bugfix, Refactor, CriticalFix, Docs, Perf}

var glyphs = map[ChangeType]string{
	Feature:     "✨",
	Bugfix:      "🐛",
	Refactor:    "♻️",
	CriticalFix: "🚨",
	Docs:        "📝",
	Perf:        "⚡",
}

var descriptions = map[ChangeType]string{
	Feature:     "New capability or behaviour",
	Bugfix:      "Fix for incorrect behaviour",
	Refactor:    "Restructuring with no behaviour change",
	CriticalFix: "Urgent fix for security, data loss or outages",
	Docs:        "Documentation only",
	Perf:        "Performance improvement",
}

// ChangeTypes returns the valid change types in display order.
func ChangeTypes() []ChangeType {
	out := make([]ChangeType, len(changeTypes))
	copy(out, changeTypes)
	return out
}

// ChangeTypeNames returns the valid change types as strings.
func ChangeTypeNames() []string {
	names := make([]string, len(changeTypes))
	for i, ct := range changeTypes {
		names[i] = string(ct)
	}
	return names
}

// IsValid reports whether ct is one of the fixed change types.
// Matching is case-sensitive.
func (ct ChangeType) IsValid() bool {
	_, ok := glyphs[ct]
	return ok
}

// Glyph returns the emoji for ct, or the fallback glyph for unknown types.
func (ct ChangeType) Glyph() string {
	if g, ok := glyphs[ct]; ok {
		return g
	}
	return fallbackGlyph
}

// Description returns a one-line explanation of when to use ct.
func (ct ChangeType) Description() string {
	return descriptions[ct]
}

// Display returns the heading label, e.g. "[Feature] ✨".
func (ct ChangeType) Display() string {
	return fmt.Sprintf("[%s] %s", string(ct), ct.Glyph())
}

// Entry is a single validated changelog record.
type Entry struct {
	Timestamp    time.Time
	Type         ChangeType
	Summary      string
	RiskAnalysis string
}

// ParsedEntry is an entry read back from an existing changelog file.
type ParsedEntry struct {
	Timestamp    string `yaml:"timestamp"`
	Type         string `yaml:"type"`
	Summary      string `yaml:"summary"`
	RiskAnalysis string `yaml:"risk_analysis"`
}
