package changelog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// PathSource resolves the changelog path for a working directory.
type PathSource interface {
	Resolve(ctx context.Context, cwd string) string
}

// DirError reports a failure to create the changelog directory.
type DirError struct {
	Dir string
	Err error
}

func (e *DirError) Error() string {
	return fmt.Sprintf("creating directory %s: %v", e.Dir, e.Err)
}

func (e *DirError) Unwrap() error { return e.Err }

// WriteError reports a failure to open or write the changelog file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("appending to %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// AppendResult describes what an append did on disk.
type AppendResult struct {
	Path        string
	Entry       Entry
	CreatedDir  bool
	CreatedFile bool
}

// Appender validates entries and appends them to the changelog.
type Appender struct {
	// Paths resolves the target file.
	Paths PathSource
	// WorkDir is the directory the lookup starts from. Empty means os.Getwd().
	WorkDir string
	// Now stamps entries. Nil means time.Now.
	Now func() time.Time
}

// NewAppender creates an Appender that resolves paths with paths.
func NewAppender(paths PathSource) *Appender {
	return &Appender{Paths: paths, Now: time.Now}
}

// Append validates the inputs and appends one formatted entry to the changelog.
// Nothing is written when validation fails.
func (a *Appender) Append(ctx context.Context, changeType, summary, riskAnalysis string) (*AppendResult, error) {
	entry, err := NewEntry(changeType, summary, riskAnalysis, a.now())
	if err != nil {
		return nil, err
	}

	cwd := a.WorkDir
	if cwd == "" {
		cwd, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	return AppendTo(a.Paths.Resolve(ctx, cwd), entry)
}

func (a *Appender) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

// AppendTo appends entry to the file at path. Missing parent directories are
// created; a missing file is created with Header before the entry. Each call
// issues a single write, so the file only ever grows by whole entries.
func AppendTo(path string, entry Entry) (*AppendResult, error) {
	result := &AppendResult{Path: path, Entry: entry}

	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &DirError{Dir: dir, Err: err}
		}
		result.CreatedDir = true
		logDebug("[changelog] created directory %s", dir)
	}

	block := FormatEntry(entry)

	f, created, err := openForAppend(path)
	if err != nil {
		return nil, &WriteError{Path: path, Err: err}
	}
	defer f.Close()

	content := block
	if created {
		content = Header + block
	}
	if _, err := f.WriteString(content); err != nil {
		return nil, &WriteError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return nil, &WriteError{Path: path, Err: err}
	}

	result.CreatedFile = created
	logDebug("[changelog] appended %d bytes to %s (created=%v)", len(content), path, created)
	return result, nil
}

// openForAppend opens path in append mode. created is true only when this
// call created the file, so exactly one writer ever emits the header.
func openForAppend(path string) (f *os.File, created bool, err error) {
	f, err = os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL|os.O_APPEND, 0o644)
	if err == nil {
		return f, true, nil
	}
	if !errors.Is(err, fs.ErrExist) {
		return nil, false, err
	}

	f, err = os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, false, err
	}
	return f, false, nil
}
