package file

import (
	"context"
	"log"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/sentinel/internal/core/ports/driven"
)

// PromptWatcher reloads a PromptStore whenever a template file in its
// directory is created, written, removed or renamed.
type PromptWatcher struct {
	store   driven.PromptStore
	dir     string
	watcher *fsnotify.Watcher
}

// NewPromptWatcher starts watching dir. The directory must exist.
func NewPromptWatcher(store driven.PromptStore, dir string) (*PromptWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, err
	}
	return &PromptWatcher{store: store, dir: dir, watcher: w}, nil
}

// Run processes events until ctx is done, then closes the watcher.
func (p *PromptWatcher) Run(ctx context.Context) {
	defer p.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-p.watcher.Events:
			if !ok {
				return
			}
			if !isPromptEvent(event) {
				continue
			}
			p.store.Reload()
		case err, ok := <-p.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("prompts: watch %s: %v", p.dir, err)
		}
	}
}

// isPromptEvent reports whether event changes the content of a template.
func isPromptEvent(event fsnotify.Event) bool {
	if !strings.HasSuffix(event.Name, promptExt) {
		return false
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}
