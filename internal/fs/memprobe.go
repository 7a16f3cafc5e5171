package fs

import (
	"strings"
	"sync"
	"time"
)

// MemProbe is an in-memory Probe. Paths use the separator given to
// NewMemProbe, so Windows-style trees can be modelled on any OS.
type MemProbe struct {
	mu     sync.Mutex
	sep    byte
	dirs   map[string][]Dir
	files  map[string][]File
	exists map[string]bool
	denied map[string]bool
	calls  map[string]int
	gates  map[string]*gate
}

type gate struct {
	entered chan struct{}
	release chan struct{}
}

// NewMemProbe returns an empty in-memory filesystem.
func NewMemProbe(sep byte) *MemProbe {
	return &MemProbe{
		sep:    sep,
		dirs:   make(map[string][]Dir),
		files:  make(map[string][]File),
		exists: make(map[string]bool),
		denied: make(map[string]bool),
		calls:  make(map[string]int),
		gates:  make(map[string]*gate),
	}
}

// Join appends name to dir with a single separator.
func (m *MemProbe) Join(dir, name string) string {
	if strings.HasSuffix(dir, string(m.sep)) {
		return dir + name
	}
	return dir + string(m.sep) + name
}

// AddRoot registers a volume root such as `C:\` or "/".
func (m *MemProbe) AddRoot(path string) {
	m.mu.Lock()
	m.exists[path] = true
	m.mu.Unlock()
}

// AddDir creates name under parent and returns its path.
func (m *MemProbe) AddDir(parent, name string) string {
	path := m.Join(parent, name)
	m.mu.Lock()
	m.dirs[parent] = append(m.dirs[parent], Dir{Path: path, Name: name})
	m.exists[path] = true
	m.mu.Unlock()
	return path
}

// AddFile creates a file of the given size in dir and returns its path.
func (m *MemProbe) AddFile(dir, name string, size int64) string {
	path := m.Join(dir, name)
	ext := ""
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		ext = name[i:]
	}
	m.mu.Lock()
	m.files[dir] = append(m.files[dir], File{Path: path, Name: name, Ext: ext, Size: size, ModTime: time.Unix(0, 0)})
	m.mu.Unlock()
	return path
}

// RemoveDir deletes the directory at path from its parent listing.
func (m *MemProbe) RemoveDir(parent, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.dirs[parent][:0]
	for _, d := range m.dirs[parent] {
		if d.Name == name {
			delete(m.exists, d.Path)
			continue
		}
		kept = append(kept, d)
	}
	m.dirs[parent] = kept
}

// Deny makes listings of path fail as if access were denied.
func (m *MemProbe) Deny(path string) {
	m.mu.Lock()
	m.denied[path] = true
	m.mu.Unlock()
}

// Calls returns how many times ListSubdirectories was called for path.
func (m *MemProbe) Calls(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[path]
}

// Gate makes the next listing of path's subdirectories block until release
// is called. entered is closed once that listing has started.
func (m *MemProbe) Gate(path string) (entered <-chan struct{}, release func()) {
	g := &gate{entered: make(chan struct{}), release: make(chan struct{})}
	m.mu.Lock()
	m.gates[path] = g
	m.mu.Unlock()
	var once sync.Once
	return g.entered, func() { once.Do(func() { close(g.release) }) }
}

// ListSubdirectories implements Probe.
func (m *MemProbe) ListSubdirectories(path string) []Dir {
	m.mu.Lock()
	m.calls[path]++
	g := m.gates[path]
	delete(m.gates, path)
	m.mu.Unlock()
	if g != nil {
		close(g.entered)
		<-g.release
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.denied[path] {
		return nil
	}
	return append([]Dir(nil), m.dirs[path]...)
}

// ListFiles implements Probe.
func (m *MemProbe) ListFiles(path string) []File {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.denied[path] {
		return nil
	}
	return append([]File(nil), m.files[path]...)
}

// DirectoryExists implements Probe. Like Windows and macOS volumes, lookups
// ignore case and trailing separators.
func (m *MemProbe) DirectoryExists(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sep == '\\' {
		path = strings.ReplaceAll(path, "/", `\`)
	}
	want := strings.TrimRight(path, string(m.sep))
	for p, ok := range m.exists {
		if ok && strings.EqualFold(strings.TrimRight(p, string(m.sep)), want) {
			return true
		}
	}
	return false
}
