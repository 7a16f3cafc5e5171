// Package files builds the file list shown for the selected folder.
package files

import (
	"strings"
	"time"

	"github.com/justyntemme/foldernav/internal/debug"
	"github.com/justyntemme/foldernav/internal/fs"
)

// Entry is one file in a folder listing. Entries are created fresh for every
// listing and never modified.
type Entry struct {
	Path    string
	Name    string
	Ext     string // lower-cased, with the leading dot, or empty
	IconKey string
	Size    int64
	ModTime time.Time
}

// Loader lists the files of a folder.
type Loader struct {
	probe fs.Probe
}

// NewLoader returns a loader reading through probe.
func NewLoader(probe fs.Probe) *Loader {
	return &Loader{probe: probe}
}

// List returns the files directly inside path, in probe order. Unreadable
// folders yield an empty listing.
func (l *Loader) List(path string) []Entry {
	raw := l.probe.ListFiles(path)
	entries := make([]Entry, 0, len(raw))
	for _, f := range raw {
		ext := strings.ToLower(f.Ext)
		entries = append(entries, Entry{
			Path:    f.Path,
			Name:    f.Name,
			Ext:     ext,
			IconKey: IconKey(ext),
			Size:    f.Size,
			ModTime: f.ModTime,
		})
	}
	debug.Log(debug.FS, "List: %q -> %d files", path, len(entries))
	return entries
}
