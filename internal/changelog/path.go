package changelog

import (
	"context"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/flightlog/internal/git"
)

// Default location of the changelog relative to the project root.
const (
	DefaultDir      = "docs"
	DefaultFilename = "AI_CHANGELOG.md"
)

// RootFunc returns the project root for a starting directory.
type RootFunc func(ctx context.Context, startDir string) string

// PathResolver finds the changelog file, preferring an existing file over a
// computed default.
type PathResolver struct {
	// Dir is the changelog subdirectory (default "docs").
	Dir string
	// Filename is the changelog file name (default "AI_CHANGELOG.md").
	Filename string
	// FindRoot resolves the project root (default git.FindProjectRoot).
	FindRoot RootFunc
}

// NewPathResolver creates a resolver for <root>/<dir>/<filename>. A nil
// findRoot discovers the root with git.FindProjectRoot.
func NewPathResolver(dir, filename string, findRoot RootFunc) *PathResolver {
	return &PathResolver{Dir: dir, Filename: filename, FindRoot: findRoot}
}

// FixedRoot returns a RootFunc for a project root that is already known.
func FixedRoot(root string) RootFunc {
	return func(context.Context, string) string { return root }
}

// Resolve returns the changelog path for the working directory cwd:
// <cwd>/<dir>/<file> when it exists, otherwise <root>/<dir>/<file>, whether
// or not that file exists yet.
func (r *PathResolver) Resolve(ctx context.Context, cwd string) string {
	local := r.pathUnder(cwd)
	if fileExists(local) {
		logDebug("[changelog] using changelog in working directory: %s", local)
		return local
	}

	root := r.root(ctx, cwd)
	path := r.pathUnder(root)
	logDebug("[changelog] using changelog under project root: %s (exists=%v)", path, fileExists(path))
	return path
}

func (r *PathResolver) pathUnder(base string) string {
	dir := r.Dir
	if dir == "" {
		dir = DefaultDir
	}
	name := r.Filename
	if name == "" {
		name = DefaultFilename
	}
	return filepath.Join(base, dir, name)
}

func (r *PathResolver) root(ctx context.Context, cwd string) string {
	if r.FindRoot == nil {
		return git.FindProjectRoot(ctx, cwd, git.RootOptions{})
	}
	return r.FindRoot(ctx, cwd)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
