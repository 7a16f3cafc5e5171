package app

import (
	"sync"

	"github.com/justyntemme/foldernav/internal/files"
	"github.com/justyntemme/foldernav/internal/ui"
)

// StateOwner is the single source of truth for what the window displays.
//
// Navigation, the store worker and the watcher all write through StateOwner
// methods, which hold the mutex. The frame goroutine reads and lays out the
// state inside Frame, under the same mutex.
type StateOwner struct {
	mu    sync.Mutex
	state ui.State

	// Called after every mutation so the window repaints.
	invalidate func()
}

// NewStateOwner creates an empty state. invalidate may be nil.
func NewStateOwner(invalidate func()) *StateOwner {
	if invalidate == nil {
		invalidate = func() {}
	}
	return &StateOwner{
		state:      ui.State{SelectedIndex: -1},
		invalidate: invalidate,
	}
}

// Frame runs fn with exclusive access to the state. The renderer keeps
// widget state inside the rows, so fn may mutate it.
func (s *StateOwner) Frame(fn func(*ui.State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
}

// Snapshot returns a copy of the plain fields, without widget state.
func (s *StateOwner) Snapshot() (path string, entries []files.Entry, selected int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries = make([]files.Entry, len(s.state.Files))
	for i := range s.state.Files {
		entries[i] = s.state.Files[i].Entry
	}
	return s.state.CurrentPath, entries, s.state.SelectedIndex
}

// CurrentPath returns the folder whose files are listed.
func (s *StateOwner) CurrentPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.CurrentPath
}

// SetListing replaces the file list. Reloading the same folder keeps the
// selected file when it is still there.
func (s *StateOwner) SetListing(path string, entries []files.Entry, canBack, canForward bool) {
	s.mu.Lock()
	keep := ""
	if path == s.state.CurrentPath && s.state.SelectedIndex >= 0 && s.state.SelectedIndex < len(s.state.Files) {
		keep = s.state.Files[s.state.SelectedIndex].Path
	}

	rows := make([]ui.FileRow, len(entries))
	selected := -1
	for i, e := range entries {
		rows[i].Entry = e
		if keep != "" && e.Path == keep {
			selected = i
		}
	}
	s.state.CurrentPath = path
	s.state.Files = rows
	s.state.SelectedIndex = selected
	s.state.CanBack = canBack
	s.state.CanForward = canForward
	s.state.Status = ""
	s.mu.Unlock()
	s.invalidate()
}

// SelectFile marks the file at index as selected and returns it. ok is false
// when index is out of range, in which case the selection is cleared.
func (s *StateOwner) SelectFile(index int) (entry files.Entry, ok bool) {
	s.mu.Lock()
	if index >= 0 && index < len(s.state.Files) {
		s.state.SelectedIndex = index
		entry, ok = s.state.Files[index].Entry, true
	} else {
		s.state.SelectedIndex = -1
	}
	s.mu.Unlock()
	s.invalidate()
	return entry, ok
}

// SetStatus sets the status line text.
func (s *StateOwner) SetStatus(status string) {
	s.mu.Lock()
	s.state.Status = status
	s.mu.Unlock()
	s.invalidate()
}

// SetRecent replaces the recent folders strip, keeping the click state of
// folders that stay in it.
func (s *StateOwner) SetRecent(paths []string) {
	s.mu.Lock()
	old := make(map[string]*ui.RecentItem, len(s.state.Recent))
	for i := range s.state.Recent {
		old[s.state.Recent[i].Path] = &s.state.Recent[i]
	}
	recent := make([]ui.RecentItem, len(paths))
	for i, p := range paths {
		recent[i].Path = p
		if prev, ok := old[p]; ok {
			recent[i].Clickable = prev.Clickable
		}
	}
	s.state.Recent = recent
	s.mu.Unlock()
	s.invalidate()
}

// SetConfigError shows (or, with "", hides) the config error banner.
func (s *StateOwner) SetConfigError(msg string) {
	s.mu.Lock()
	s.state.ConfigError = msg
	s.mu.Unlock()
	s.invalidate()
}
