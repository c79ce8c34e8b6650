// Package file backs tweak targets with a JSON or YAML document on disk and
// follows the file for external edits.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/zoobzio/tweak"
)

// Watcher follows a file through its parent directory, so the file may be
// missing at first and editors that save by renaming a temporary file are
// picked up.
type Watcher struct {
	path string
}

// New creates a Watcher for path.
func New(path string) *Watcher {
	return &Watcher{path: filepath.Clean(path)}
}

// Watch emits the current file contents when the file exists, then the
// contents after every write to or creation of the file.
func (w *Watcher) Watch(ctx context.Context) (<-chan []byte, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", w.path, err)
	}

	out := make(chan []byte)
	go w.run(ctx, fw, out)
	return out, nil
}

func (w *Watcher) run(ctx context.Context, fw *fsnotify.Watcher, out chan<- []byte) {
	defer close(out)
	defer fw.Close()

	if !w.send(ctx, out) {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if !w.send(ctx, out) {
				return
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			failed(w.path, err)
		}
	}
}

// send emits the file contents. It reports false once ctx is done; an
// unreadable file is skipped.
func (w *Watcher) send(ctx context.Context, out chan<- []byte) bool {
	data, err := os.ReadFile(w.path)
	if err != nil {
		return true
	}
	select {
	case out <- data:
		return true
	case <-ctx.Done():
		return false
	}
}

var _ tweak.Watcher = (*Watcher)(nil)
