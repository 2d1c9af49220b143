package changelog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

var (
	headingPattern = regexp.MustCompile(`^## \[(\d{4}-\d{2}-\d{2} \d{2}:\d{2})\] \[([^\]]+)\]`)
	// Bullets are accepted with or without bold labels so older files still parse.
	changePattern = regexp.MustCompile(`^- (?:\*\*)?Change(?:\*\*)?: ?(.*)$`)
	riskPattern   = regexp.MustCompile(`^- (?:\*\*)?Risk Analysis(?:\*\*)?: ?(.*)$`)
)

// maxLineSize bounds a single changelog line.
const maxLineSize = 1024 * 1024

// Load reads all entries from the changelog at path.
func Load(path string) ([]ParsedEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening changelog file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads entries from changelog markdown in file order. Text outside
// entry blocks (the header, free-form notes) is ignored, as are headings that
// do not match the entry format.
func Parse(r io.Reader) ([]ParsedEntry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		entries []ParsedEntry
		current *ParsedEntry
	)

	flush := func() {
		if current != nil {
			entries = append(entries, *current)
			current = nil
		}
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")

		if m := headingPattern.FindStringSubmatch(line); m != nil {
			flush()
			current = &ParsedEntry{Timestamp: m[1], Type: m[2]}
			continue
		}
		if current == nil {
			continue
		}

		switch {
		case line == ruleLine:
			flush()
		case changePattern.MatchString(line):
			current.Summary = changePattern.FindStringSubmatch(line)[1]
		case riskPattern.MatchString(line):
			current.RiskAnalysis = riskPattern.FindStringSubmatch(line)[1]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading changelog: %w", err)
	}
	flush()

	return entries, nil
}

// Filter returns the entries whose type equals changeType, or all entries
// when changeType is empty.
func Filter(entries []ParsedEntry, changeType string) []ParsedEntry {
	if changeType == "" {
		return entries
	}
	var out []ParsedEntry
	for _, e := range entries {
		if e.Type == changeType {
			out = append(out, e)
		}
	}
	return out
}

// LastN returns the newest n entries in file order. n <= 0 returns all entries.
func LastN(entries []ParsedEntry, n int) []ParsedEntry {
	if n <= 0 || n >= len(entries) {
		return entries
	}
	return entries[len(entries)-n:]
}
