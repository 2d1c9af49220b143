// Package changelog implements the AI changelog "flight recorder".
//
// This package implements:
//   - the closed set of change types and their display glyphs
//   - validation and markdown formatting of a single entry
//   - changelog path resolution (./docs first, then the repository root)
//   - append-only writes that create the file with a fixed header on first use
//   - reading entries back from an existing changelog, for display and following
//
// The changelog file is never rewritten or truncated by this package.
package changelog
