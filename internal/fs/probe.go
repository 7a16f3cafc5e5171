package fs

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"
	"github.com/justyntemme/foldernav/internal/debug"
)

// Dir is a subdirectory reported by a Probe.
type Dir struct {
	Path string
	Name string
}

// File is a regular file reported by a Probe. Ext is the raw extension as it
// appears in the name, including the leading dot.
type File struct {
	Path    string
	Name    string
	Ext     string
	Size    int64
	ModTime time.Time
}

// Probe isolates the fallible OS calls the tree and the file list depend on.
// Implementations never return errors: access-denied and I/O failures degrade
// to empty results.
type Probe interface {
	ListSubdirectories(path string) []Dir
	ListFiles(path string) []File
	DirectoryExists(path string) bool
}

// OSProbe reads the real filesystem one level at a time.
type OSProbe struct {
	// ShowHidden includes dot-prefixed entries.
	ShowHidden bool
}

// NewOSProbe returns a probe over the local filesystem.
func NewOSProbe(showHidden bool) *OSProbe {
	return &OSProbe{ShowHidden: showHidden}
}

type entry struct {
	name    string
	path    string
	isDir   bool
	size    int64
	modTime time.Time
}

// ListSubdirectories returns the immediate subdirectories of path.
func (p *OSProbe) ListSubdirectories(path string) []Dir {
	entries := p.readDir(path)
	dirs := make([]Dir, 0, len(entries))
	for _, e := range entries {
		if e.isDir {
			dirs = append(dirs, Dir{Path: e.path, Name: e.name})
		}
	}
	return dirs
}

// ListFiles returns the regular files directly inside path.
func (p *OSProbe) ListFiles(path string) []File {
	entries := p.readDir(path)
	files := make([]File, 0, len(entries))
	for _, e := range entries {
		if e.isDir {
			continue
		}
		files = append(files, File{
			Path:    e.path,
			Name:    e.name,
			Ext:     filepath.Ext(e.name),
			Size:    e.size,
			ModTime: e.modTime,
		})
	}
	return files
}

// DirectoryExists reports whether path names an existing directory.
func (p *OSProbe) DirectoryExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// readDir lists a single directory level. Entries come back sorted by
// case-insensitive name since fastwalk dispatches them concurrently.
func (p *OSProbe) readDir(path string) []entry {
	debug.Log(debug.FS, "readDir: reading %q", path)

	var result []entry
	var mu sync.Mutex

	conf := &fastwalk.Config{
		Follow: true, // Follow symlinks to get target info
	}

	root := path
	err := fastwalk.Walk(conf, root, func(fullPath string, d fs.DirEntry, err error) error {
		if err != nil {
			debug.Log(debug.FS, "readDir: walk error at %q: %v", fullPath, err)
			return nil
		}

		if fullPath == root {
			return nil
		}

		// Only direct children: anything with a separator after the root is nested.
		if strings.ContainsAny(relative(root, fullPath), "/\\") {
			if d.IsDir() {
				return fastwalk.SkipDir
			}
			return nil
		}

		if !p.ShowHidden && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fastwalk.SkipDir
			}
			return nil
		}

		info, err := fastwalk.StatDirEntry(fullPath, d)
		if err != nil {
			// Broken symlink: fall back to the link itself
			info, err = os.Lstat(fullPath)
			if err != nil {
				debug.Log(debug.FS, "readDir: skipping %q: stat error: %v", d.Name(), err)
				return nil
			}
		}

		if !info.IsDir() && !info.Mode().IsRegular() {
			// devices, sockets, pipes, dangling links
			return nil
		}

		mu.Lock()
		result = append(result, entry{
			name:    d.Name(),
			path:    fullPath,
			isDir:   info.IsDir(),
			size:    info.Size(),
			modTime: info.ModTime(),
		})
		mu.Unlock()

		if d.IsDir() {
			return fastwalk.SkipDir
		}
		return nil
	})
	if err != nil {
		debug.Log(debug.FS, "readDir: %q: %v", path, err)
		return nil
	}

	slices.SortFunc(result, func(a, b entry) int {
		if c := strings.Compare(strings.ToLower(a.name), strings.ToLower(b.name)); c != 0 {
			return c
		}
		return strings.Compare(a.name, b.name)
	})
	return result
}

// relative returns fullPath with the root prefix and one separator removed.
func relative(root, fullPath string) string {
	rel := fullPath[len(root):]
	if len(rel) > 0 && (rel[0] == '/' || rel[0] == '\\') {
		rel = rel[1:]
	}
	return rel
}
