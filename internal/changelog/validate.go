package changelog

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidChangeType is returned for a type outside the fixed set.
	ErrInvalidChangeType = errors.New("invalid change type")
	// ErrEmptySummary is returned for an empty or whitespace-only summary.
	ErrEmptySummary = errors.New("summary cannot be empty")
	// ErrEmptyRiskAnalysis is returned for an empty or whitespace-only risk analysis.
	ErrEmptyRiskAnalysis = errors.New("risk analysis cannot be empty")
)

// ValidationError describes which input field was rejected.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewEntry validates the raw inputs and builds an Entry stamped with now.
// Checks run in order: change type, summary, risk analysis. Free-text fields
// are trimmed.
func NewEntry(changeType, summary, riskAnalysis string, now time.Time) (Entry, error) {
	ct := ChangeType(changeType)
	if !ct.IsValid() {
		return Entry{}, &ValidationError{Field: "type", Value: changeType, Err: ErrInvalidChangeType}
	}

	summary = strings.TrimSpace(summary)
	if summary == "" {
		return Entry{}, &ValidationError{Field: "summary", Err: ErrEmptySummary}
	}

	riskAnalysis = strings.TrimSpace(riskAnalysis)
	if riskAnalysis == "" {
		return Entry{}, &ValidationError{Field: "risk_analysis", Err: ErrEmptyRiskAnalysis}
	}

	return Entry{
		Timestamp:    now,
		Type:         ct,
		Summary:      summary,
		RiskAnalysis: riskAnalysis,
	}, nil
}
