package changelog

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// pollInterval is the backup poll period for missed fsnotify events.
const pollInterval = 200 * time.Millisecond

// blockTerminator ends every entry block written by FormatEntry.
const blockTerminator = "\n" + ruleLine + "\n"

// Follower streams entries appended to a changelog after it starts.
// It watches the parent directory, so the changelog may not exist yet.
type Follower struct {
	path    string
	watcher *fsnotify.Watcher
	mu      sync.Mutex
	closed  bool
}

// NewFollower creates a Follower for the changelog at path.
// The parent directory must already exist.
func NewFollower(path string) (*Follower, error) {
	dir := filepath.Dir(path)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("changelog directory %s does not exist", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	return &Follower{path: path, watcher: watcher}, nil
}

// Follow starts streaming entries appended from now on. The returned channel
// is closed when ctx is cancelled or Close is called.
func (f *Follower) Follow(ctx context.Context) <-chan ParsedEntry {
	out := make(chan ParsedEntry, 16)
	offset := currentSize(f.path)

	go f.followLoop(ctx, out, offset)

	return out
}

func (f *Follower) followLoop(ctx context.Context, out chan<- ParsedEntry, offset int64) {
	defer close(out)

	var pending strings.Builder

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-f.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(f.path) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				offset = f.readNew(ctx, out, offset, &pending)
			}
		case <-ticker.C:
			offset = f.readNew(ctx, out, offset, &pending)
		case err, ok := <-f.watcher.Errors:
			if !ok {
				return
			}
			logDebug("[changelog] watcher error: %v", err)
		}
	}
}

// readNew reads bytes past offset, emits every complete entry block and keeps
// the incomplete tail in pending. Returns the new offset.
func (f *Follower) readNew(ctx context.Context, out chan<- ParsedEntry, offset int64, pending *strings.Builder) int64 {
	file, err := os.Open(f.path)
	if err != nil {
		return offset
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return offset
	}
	if info.Size() < offset {
		logDebug("[changelog] %s shrank, rereading from start", f.path)
		offset = 0
		pending.Reset()
	}
	if info.Size() == offset {
		return offset
	}

	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return offset
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return offset
	}
	offset += int64(len(data))
	pending.Write(data)

	text := pending.String()
	cut := strings.LastIndex(text, blockTerminator)
	if cut < 0 {
		return offset
	}
	complete := text[:cut+len(blockTerminator)]
	pending.Reset()
	pending.WriteString(text[cut+len(blockTerminator):])

	entries, err := Parse(strings.NewReader(complete))
	if err != nil {
		logDebug("[changelog] parsing appended content: %v", err)
		return offset
	}
	for _, e := range entries {
		select {
		case <-ctx.Done():
			return offset
		case out <- e:
		}
	}
	return offset
}

// Close stops the follower and releases the watcher.
func (f *Follower) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true
	return f.watcher.Close()
}

func currentSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
