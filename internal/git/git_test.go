package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// missingBinary forces the git CLI tier to fail.
const missingBinary = "flightlog-no-such-git-binary"

// realPath resolves symlinks so paths from git, go-git and t.TempDir compare equal.
func realPath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	return resolved
}

func mkdirs(t *testing.T, parts ...string) string {
	t.Helper()
	dir := filepath.Join(parts...)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	return dir
}

func TestWalkForMetadata(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		setup    func(t *testing.T, base string) (start, home string)
		wantRoot func(base string) string
		wantOK   bool
	}{
		"metadata in start directory": {
			setup: func(t *testing.T, base string) (string, string) {
				mkdirs(t, base, "proj", ".git")
				return filepath.Join(base, "proj"), base
			},
			wantRoot: func(base string) string { return filepath.Join(base, "proj") },
			wantOK:   true,
		},
		"metadata in ancestor": {
			setup: func(t *testing.T, base string) (string, string) {
				mkdirs(t, base, "proj", ".git")
				return mkdirs(t, base, "proj", "a", "b", "c"), base
			},
			wantRoot: func(base string) string { return filepath.Join(base, "proj") },
			wantOK:   true,
		},
		"metadata file for linked worktree": {
			setup: func(t *testing.T, base string) (string, string) {
				dir := mkdirs(t, base, "wt")
				require.NoError(t, os.WriteFile(filepath.Join(dir, ".git"), []byte("gitdir: /elsewhere\n"), 0o644))
				return mkdirs(t, base, "wt", "pkg"), base
			},
			wantRoot: func(base string) string { return filepath.Join(base, "wt") },
			wantOK:   true,
		},
		"stops at home without checking it": {
			setup: func(t *testing.T, base string) (string, string) {
				home := mkdirs(t, base, "home")
				mkdirs(t, home, ".git")
				return mkdirs(t, home, "work", "proj"), home
			},
			wantOK: false,
		},
		"nothing found": {
			setup: func(t *testing.T, base string) (string, string) {
				return mkdirs(t, base, "x", "y"), base
			},
			wantOK: false,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			base := t.TempDir()
			start, home := tt.setup(t, base)

			root, ok := WalkForMetadata(start, home)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantRoot(base), root)
			}
		})
	}
}

func TestFindProjectRoot_FallsBackToWalk(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	// An empty .git directory is invisible to both git and go-git, but the walk sees it.
	mkdirs(t, base, "proj", ".git")
	start := mkdirs(t, base, "proj", "internal")

	root := FindProjectRoot(context.Background(), start, RootOptions{
		GitBinary: missingBinary,
		HomeDir:   base,
	})
	assert.Equal(t, filepath.Join(base, "proj"), root)
}

func TestFindProjectRoot_ReturnsStartWhenNothingFound(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	start := mkdirs(t, base, "loose", "dir")

	root := FindProjectRoot(context.Background(), start, RootOptions{
		GitBinary:   missingBinary,
		HomeDir:     base,
		SkipLibrary: true,
	})
	assert.Equal(t, start, root)
}

func TestFindProjectRoot_LibraryTier(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	repoDir := mkdirs(t, base, "repo")
	_, err := gogit.PlainInit(repoDir, false)
	require.NoError(t, err)
	start := mkdirs(t, repoDir, "docs", "nested")

	root := FindProjectRoot(context.Background(), start, RootOptions{
		GitBinary: missingBinary,
		HomeDir:   base,
	})
	assert.Equal(t, realPath(t, repoDir), realPath(t, root))
}

func TestFindProjectRoot_LibraryResultAboveHomeIsIgnored(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	_, err := gogit.PlainInit(base, false)
	require.NoError(t, err)
	home := mkdirs(t, base, "home")
	start := mkdirs(t, home, "proj")

	root := FindProjectRoot(context.Background(), start, RootOptions{
		GitBinary: missingBinary,
		HomeDir:   home,
	})
	assert.Equal(t, start, root)
}

func TestQueryTopLevel(t *testing.T) {
	t.Parallel()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}

	repoDir := t.TempDir()
	_, err := gogit.PlainInit(repoDir, false)
	require.NoError(t, err)
	sub := mkdirs(t, repoDir, "a", "b")

	root, err := QueryTopLevel(context.Background(), sub, RootOptions{})
	require.NoError(t, err)
	assert.Equal(t, realPath(t, repoDir), realPath(t, root))
}

func TestQueryTopLevel_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing binary", func(t *testing.T) {
		t.Parallel()
		_, err := QueryTopLevel(context.Background(), t.TempDir(), RootOptions{GitBinary: missingBinary})
		assert.Error(t, err)
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()
		if runtime.GOOS == "windows" {
			t.Skip("shell script fixture requires a POSIX shell")
		}

		dir := t.TempDir()
		script := filepath.Join(dir, "slow-git")
		require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nexec sleep 5\n"), 0o755))

		started := time.Now()
		_, err := QueryTopLevel(context.Background(), dir, RootOptions{
			GitBinary: script,
			Timeout:   100 * time.Millisecond,
		})
		assert.Error(t, err)
		assert.Less(t, time.Since(started), 3*time.Second)
	})
}

func TestWithinBoundary(t *testing.T) {
	t.Parallel()

	home := filepath.Join(string(filepath.Separator), "home", "dev")

	tests := map[string]struct {
		root  string
		start string
		want  bool
	}{
		"root inside home":            {root: filepath.Join(home, "proj"), start: filepath.Join(home, "proj", "x"), want: true},
		"root is home":                {root: home, start: filepath.Join(home, "proj"), want: false},
		"root above home":             {root: string(filepath.Separator), start: filepath.Join(home, "proj"), want: false},
		"start outside home accepted": {root: string(filepath.Separator), start: filepath.Join(string(filepath.Separator), "srv", "x"), want: true},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, withinBoundary(tt.root, tt.start, home))
		})
	}
}
