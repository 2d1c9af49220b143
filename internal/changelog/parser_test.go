package changelog

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input string
		want  []ParsedEntry
	}{
		"header only": {
			input: Header,
			want:  nil,
		},
		"entries written by FormatEntry": {
			input: Header +
				FormatEntry(Entry{Timestamp: time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC), Type: Feature, Summary: "Add X", RiskAnalysis: "low risk"}) +
				FormatEntry(Entry{Timestamp: time.Date(2026, 1, 3, 3, 4, 0, 0, time.UTC), Type: CriticalFix, Summary: "Fix auth: token leak", RiskAnalysis: "rotates keys"}),
			want: []ParsedEntry{
				{Timestamp: "2026-01-02 03:04", Type: "Feature", Summary: "Add X", RiskAnalysis: "low risk"},
				{Timestamp: "2026-01-03 03:04", Type: "Critical-Fix", Summary: "Fix auth: token leak", RiskAnalysis: "rotates keys"},
			},
		},
		"bold labels from older files": {
			input: "\n## [2025-12-31 23:59] [Bugfix] 🐛\n\n- **Change**: Fix Y\n- **Risk Analysis**: none\n\n---\n",
			want: []ParsedEntry{
				{Timestamp: "2025-12-31 23:59", Type: "Bugfix", Summary: "Fix Y", RiskAnalysis: "none"},
			},
		},
		"crlf line endings": {
			input: "## [2025-12-31 23:59] [Docs] 📝\r\n\r\n- Change: readme\r\n- Risk Analysis: none\r\n\r\n---\r\n",
			want: []ParsedEntry{
				{Timestamp: "2025-12-31 23:59", Type: "Docs", Summary: "readme", RiskAnalysis: "none"},
			},
		},
		"unrelated headings and notes ignored": {
			input: "# AI_CHANGELOG\n\n## Notes\n\n- Change: not an entry\n\n## [2026-02-02 02:02] [Perf] ⚡\n\n- Change: cache\n",
			want: []ParsedEntry{
				{Timestamp: "2026-02-02 02:02", Type: "Perf", Summary: "cache"},
			},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(t.TempDir() + "/missing.md")
	assert.Error(t, err)
}

func TestFilterAndLastN(t *testing.T) {
	t.Parallel()

	entries := []ParsedEntry{
		{Type: "Feature", Summary: "a"},
		{Type: "Bugfix", Summary: "b"},
		{Type: "Feature", Summary: "c"},
		{Type: "Docs", Summary: "d"},
	}

	assert.Equal(t, entries, Filter(entries, ""))
	assert.Equal(t, []ParsedEntry{entries[0], entries[2]}, Filter(entries, "Feature"))
	assert.Empty(t, Filter(entries, "Perf"))

	assert.Equal(t, entries[2:], LastN(entries, 2))
	assert.Equal(t, entries, LastN(entries, 10))
	assert.Equal(t, entries, LastN(entries, 0))
}
