// Package watch keeps loaded folders of the tree in sync with the disk.
package watch

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/justyntemme/foldernav/internal/debug"
	"github.com/justyntemme/foldernav/internal/tree"
)

// DefaultDebounce is used when a non-positive debounce is given.
const DefaultDebounce = 200 * time.Millisecond

// Watcher watches every loaded folder of a tree, plus the folder whose files
// are shown even when it has no subfolders. Structural changes (a child
// created, removed or renamed) refresh that folder in the tree; any change,
// including file writes, is reported on Changed.
type Watcher struct {
	watcher  *fsnotify.Watcher
	tree     *tree.Tree
	mu       sync.Mutex
	watching map[string]bool
	focus    string
	changed  chan string
	done     chan struct{}
	debounce time.Duration
}

// New starts a watcher for t.
func New(t *tree.Tree, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		watcher:  fw,
		tree:     t,
		watching: make(map[string]bool),
		changed:  make(chan string, 16),
		done:     make(chan struct{}),
		debounce: debounce,
	}
	go w.run()
	return w, nil
}

type pendingChange struct {
	last       time.Time
	structural bool
}

// run collects events per folder and fires once a folder has been quiet for
// the debounce interval.
func (w *Watcher) run() {
	pending := make(map[string]*pendingChange)
	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Write) {
				continue
			}

			dir := w.watchedDir(event.Name)
			if dir == "" {
				continue
			}
			pc := pending[dir]
			if pc == nil {
				pc = &pendingChange{}
				pending[dir] = pc
			}
			pc.last = time.Now()
			if !event.Has(fsnotify.Write) {
				pc.structural = true
			}
			debug.Log(debug.WATCH, "event: %s on %s (folder %s)", event.Op, event.Name, dir)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			debug.Log(debug.WATCH, "fsnotify error: %v", err)

		case now := <-ticker.C:
			for dir, pc := range pending {
				if now.Sub(pc.last) < w.debounce {
					continue
				}
				delete(pending, dir)
				w.fire(dir, pc.structural)
			}
		}
	}
}

// watchedDir maps an event path to the watched folder it belongs to.
func (w *Watcher) watchedDir(name string) string {
	w.mu.Lock()
	defer w.mu.Unlock()

	if parent := filepath.Dir(name); w.watching[parent] {
		return parent
	}
	if w.watching[name] {
		return name
	}
	return ""
}

func (w *Watcher) fire(dir string, structural bool) {
	if structural {
		if w.tree.Refresh(dir) {
			debug.Log(debug.WATCH, "refreshed %s", dir)
		}
		// Refreshing may have dropped folders or loaded new ones.
		w.Sync()
	}

	select {
	case w.changed <- dir:
	default:
		debug.Log(debug.WATCH, "change for %s dropped, channel full", dir)
	}
}

// SetFocus sets the folder whose files are shown and syncs the watch list.
// A leaf folder is watched only while it has the focus.
func (w *Watcher) SetFocus(path string) {
	w.mu.Lock()
	w.focus = path
	w.mu.Unlock()
	w.Sync()
}

// Sync watches every loaded folder of the tree and the focused folder, and
// stops watching everything else.
func (w *Watcher) Sync() {
	paths := w.tree.LoadedPaths()

	w.mu.Lock()
	focus := w.focus
	w.mu.Unlock()
	if focus != "" {
		// The focus may have been dropped from the tree by a refresh.
		if chain, complete := w.tree.Chain(focus); complete {
			paths = append(paths, chain[len(chain)-1].Path)
		}
	}

	want := make(map[string]bool, len(paths))
	for _, p := range paths {
		want[p] = true
	}

	w.mu.Lock()
	var stale []string
	for p := range w.watching {
		if !want[p] {
			stale = append(stale, p)
		}
	}
	w.mu.Unlock()

	for _, p := range stale {
		w.Unwatch(p)
	}
	for _, p := range paths {
		if err := w.Watch(p); err != nil {
			debug.Log(debug.WATCH, "cannot watch %s: %v", p, err)
		}
	}
}

// Watch adds a folder to the watch list.
func (w *Watcher) Watch(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watching[path] {
		return nil
	}
	if err := w.watcher.Add(path); err != nil {
		return err
	}
	w.watching[path] = true
	debug.Log(debug.WATCH, "watching %s", path)
	return nil
}

// Unwatch removes a folder from the watch list.
func (w *Watcher) Unwatch(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.watching[path] {
		return
	}
	if err := w.watcher.Remove(path); err != nil {
		// The folder may already be gone.
		debug.Log(debug.WATCH, "unwatch %s: %v", path, err)
	}
	delete(w.watching, path)
}

// Watching returns the number of watched folders.
func (w *Watcher) Watching() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.watching)
}

// Changed receives the folders that changed on disk.
func (w *Watcher) Changed() <-chan string {
	return w.changed
}

// Close shuts the watcher down.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
