// Package git locates the root of the enclosing git working tree for flightlog.
// Lookup degrades through three tiers: the git CLI (`git rev-parse --show-toplevel`),
// go-git's own .git detection for machines without a usable git binary, and
// finally a plain upward walk looking for a .git entry. No tier ever returns an
// error to the caller; the starting directory is the last resort.
package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
)

// DefaultQueryTimeout bounds the git CLI query.
const DefaultQueryTimeout = 5 * time.Second

// waitDelay caps how long a killed git process may hold its output pipes.
const waitDelay = 500 * time.Millisecond

// metadataDir is the name of the version-control metadata entry.
const metadataDir = ".git"

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// RootOptions tunes repository root discovery.
type RootOptions struct {
	// Timeout bounds the git CLI query. Zero means DefaultQueryTimeout.
	Timeout time.Duration
	// GitBinary is the git executable to run. Empty means "git".
	GitBinary string
	// HomeDir stops the upward walk. Empty means os.UserHomeDir().
	HomeDir string
	// SkipLibrary disables the go-git tier.
	SkipLibrary bool
}

func (o RootOptions) timeout() time.Duration {
	if o.Timeout <= 0 {
		return DefaultQueryTimeout
	}
	return o.Timeout
}

func (o RootOptions) binary() string {
	if o.GitBinary == "" {
		return "git"
	}
	return o.GitBinary
}

func (o RootOptions) home() string {
	if o.HomeDir != "" {
		return o.HomeDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		logDebug("[git] resolving home directory: %v", err)
		return ""
	}
	return home
}

// FindProjectRoot returns the best-guess project root for startDir.
// It never fails: when no repository is found, startDir is returned unchanged.
func FindProjectRoot(ctx context.Context, startDir string, opts RootOptions) string {
	root, err := QueryTopLevel(ctx, startDir, opts)
	if err == nil {
		logDebug("[git] FindProjectRoot: git CLI reported %s", root)
		return root
	}
	logDebug("[git] FindProjectRoot: git CLI query failed: %v", err)

	home := opts.home()

	if !opts.SkipLibrary {
		root, err := openWorktreeRoot(startDir)
		switch {
		case err != nil:
			logDebug("[git] FindProjectRoot: go-git detection failed: %v", err)
		case !withinBoundary(root, startDir, home):
			logDebug("[git] FindProjectRoot: go-git found %s outside the search boundary", root)
		default:
			logDebug("[git] FindProjectRoot: go-git detected %s", root)
			return root
		}
	}

	if root, ok := WalkForMetadata(startDir, home); ok {
		logDebug("[git] FindProjectRoot: found %s in %s", metadataDir, root)
		return root
	}

	logDebug("[git] FindProjectRoot: no repository found, using %s", startDir)
	return startDir
}

// QueryTopLevel asks the git CLI for the top-level directory of the working tree
// containing dir. The call is bounded by opts.Timeout.
func QueryTopLevel(ctx context.Context, dir string, opts RootOptions) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, opts.timeout())
	defer cancel()

	cmd := exec.CommandContext(ctx, opts.binary(), "rev-parse", "--show-toplevel")
	cmd.Dir = dir
	cmd.WaitDelay = waitDelay

	output, err := cmd.Output()
	if ctx.Err() != nil {
		return "", fmt.Errorf("git rev-parse timed out after %s: %w", opts.timeout(), ctx.Err())
	}
	if err != nil {
		return "", fmt.Errorf("running git rev-parse: %w", err)
	}

	root := strings.TrimSpace(string(output))
	if root == "" {
		return "", errors.New("git rev-parse returned no output")
	}
	return root, nil
}

// openWorktreeRoot uses go-git's .git detection, which walks up from dir.
func openWorktreeRoot(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return "", fmt.Errorf("opening repository at %s: %w", dir, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}
	return worktree.Filesystem.Root(), nil
}

// WalkForMetadata walks upward from the absolute form of startDir looking for a
// directory that contains a .git entry. The walk stops at home (which is not
// itself checked) or at the filesystem root.
func WalkForMetadata(startDir, home string) (string, bool) {
	current, err := filepath.Abs(startDir)
	if err != nil {
		logDebug("[git] WalkForMetadata: %v", err)
		return "", false
	}
	if home != "" {
		if abs, err := filepath.Abs(home); err == nil {
			home = abs
		}
	}

	for current != home {
		if _, err := os.Stat(filepath.Join(current, metadataDir)); err == nil {
			return current, true
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return "", false
}

// withinBoundary reports whether root is a result the upward walk from start
// could also have produced: when start lies inside home, root must lie
// strictly inside home too.
func withinBoundary(root, start, home string) bool {
	if home == "" {
		return true
	}
	absStart, err := filepath.Abs(start)
	if err != nil {
		return true
	}
	if !isStrictlyInside(absStart, home) {
		return true
	}
	return isStrictlyInside(root, home)
}

func isStrictlyInside(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
