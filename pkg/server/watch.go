package server

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/vango-dev/markup/pkg/source"
)

// change is a document file that was created, modified or removed.
type change struct {
	Path    string
	Removed bool
}

// watcher polls a directory tree for document changes.
type watcher struct {
	root     string
	interval time.Duration

	mu         sync.Mutex
	timestamps map[string]time.Time
}

func newWatcher(root string, interval time.Duration) *watcher {
	w := &watcher{
		root:       root,
		interval:   interval,
		timestamps: make(map[string]time.Time),
	}
	w.scan()
	return w
}

// run calls fn for every change until ctx is done.
func (w *watcher) run(ctx context.Context, fn func(change)) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			for _, c := range w.scan() {
				fn(c)
			}
		}
	}
}

// scan walks the tree and returns the changes since the previous scan.
func (w *watcher) scan() []change {
	w.mu.Lock()
	defer w.mu.Unlock()

	var changes []change
	seen := make(map[string]bool, len(w.timestamps))

	filepath.WalkDir(w.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if p != w.root && ignored(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if ignored(d.Name()) || !source.IsDocument(p) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		seen[p] = true
		last, ok := w.timestamps[p]
		if !ok || info.ModTime().After(last) {
			w.timestamps[p] = info.ModTime()
			changes = append(changes, change{Path: p})
		}
		return nil
	})

	for p := range w.timestamps {
		if seen[p] {
			continue
		}
		if _, err := os.Stat(p); os.IsNotExist(err) {
			delete(w.timestamps, p)
			changes = append(changes, change{Path: p, Removed: true})
		}
	}
	return changes
}

// ignored skips hidden entries and editor temporaries.
func ignored(name string) bool {
	return strings.HasPrefix(name, ".") ||
		strings.HasSuffix(name, "~") ||
		strings.HasSuffix(name, ".swp") ||
		name == "node_modules"
}
