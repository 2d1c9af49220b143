package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// typeColors maps change types to their terminal color.
var typeColors = map[ChangeType]*color.Color{
	Feature:     color.New(color.FgGreen),
	Bugfix:      color.New(color.FgYellow),
	Refactor:    color.New(color.FgBlue),
	CriticalFix: color.New(color.FgRed, color.Bold),
	Docs:        color.New(color.FgCyan),
	Perf:        color.New(color.FgMagenta),
}

var defaultTypeColor = color.New(color.FgWhite)

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and glyphs
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatTerminal writes entries to w, one block per entry:
//
//	[2006-01-02 15:04] ✨ Feature  Add X
//	    risk: low risk
func FormatTerminal(entries []ParsedEntry, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	for i, e := range entries {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := writeTerminalEntry(e, w, opts, width); err != nil {
			return fmt.Errorf("formatting entry %s: %w", e.Timestamp, err)
		}
	}
	return nil
}

func writeTerminalEntry(e ParsedEntry, w io.Writer, opts FormatOptions, width int) error {
	const indent = "    "
	ct := ChangeType(e.Type)

	if opts.Plain {
		if _, err := fmt.Fprintf(w, "[%s] [%s] %s\n", e.Timestamp, e.Type, e.Summary); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "%sRisk: %s\n", indent, e.RiskAnalysis)
		return err
	}

	c, ok := typeColors[ct]
	if !ok {
		c = defaultTypeColor
	}
	bold := color.New(color.Bold).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	if _, err := fmt.Fprintf(w, "%s %s %s  %s\n",
		faint("["+e.Timestamp+"]"), ct.Glyph(), c.Sprint(e.Type), bold(e.Summary)); err != nil {
		return err
	}

	risk := wrapText("risk: "+e.RiskAnalysis, width-len(indent), indent)
	_, err := fmt.Fprintf(w, "%s%s\n", indent, risk)
	return err
}

// WriteYAML writes entries to w as a YAML sequence.
func WriteYAML(entries []ParsedEntry, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if entries == nil {
		entries = []ParsedEntry{}
	}
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encoding entries: %w", err)
	}
	return enc.Close()
}

// FormatEntrySummary returns a brief one-line summary of an entry.
func FormatEntrySummary(e ParsedEntry, opts FormatOptions) string {
	text := truncateText(e.Summary, 60)
	if opts.Plain {
		return fmt.Sprintf("[%s] %s", e.Type, text)
	}
	return fmt.Sprintf("%s %s", ChangeType(e.Type).Glyph(), text)
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text

	for len(remaining) > maxWidth {
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}

	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}

	return strings.Join(lines, "\n"+indent)
}

// truncateText truncates text to maxLen runes, adding ellipsis if needed.
func truncateText(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen-3]) + "..."
}
