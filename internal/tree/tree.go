package tree

import (
	"path/filepath"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/justyntemme/foldernav/internal/debug"
	"github.com/justyntemme/foldernav/internal/fs"
)

// Notifier is told when a folder's children change so the view can refresh.
type Notifier interface {
	NotifyChildrenChanged(n *Node)
}

// Tree is the single owner of all folder nodes. Every structural edit goes
// through Tree methods, which hold the mutex; the view reads via Rows.
type Tree struct {
	mu       sync.Mutex
	roots    []*Node
	probe    fs.Probe
	sep      byte
	notifier Notifier

	// Concurrent expansions of the same path share one probe.
	probes singleflight.Group
}

// Option configures a Tree.
type Option func(*Tree)

// WithSeparator sets the path separator used for splitting and matching.
// Defaults to the OS separator.
func WithSeparator(sep byte) Option {
	return func(t *Tree) { t.sep = sep }
}

// WithNotifier registers the view to be told about child changes.
func WithNotifier(n Notifier) Option {
	return func(t *Tree) { t.notifier = n }
}

// New creates an empty tree backed by probe.
func New(probe fs.Probe, opts ...Option) *Tree {
	t := &Tree{
		probe: probe,
		sep:   filepath.Separator,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Separator returns the path separator the tree matches with.
func (t *Tree) Separator() byte {
	return t.sep
}

// SetNotifier replaces the change notifier.
func (t *Tree) SetNotifier(n Notifier) {
	t.mu.Lock()
	t.notifier = n
	t.mu.Unlock()
}

// SetRoots replaces the root list with one Unloaded node per ready volume.
// Roots are seeded optimistically: the disk is not touched until a root is expanded.
func (t *Tree) SetRoots(vols []fs.Volume) {
	roots := make([]*Node, 0, len(vols))
	for _, v := range vols {
		if !v.Ready {
			debug.Log(debug.TREE, "SetRoots: skipping volume %q (not ready)", v.Path)
			continue
		}
		roots = append(roots, &Node{Path: v.Path, Name: v.Name, State: Unloaded})
	}

	t.mu.Lock()
	t.roots = roots
	t.mu.Unlock()
	debug.Log(debug.TREE, "SetRoots: %d roots", len(roots))
}

// Roots returns the current root nodes.
func (t *Tree) Roots() []*Node {
	t.mu.Lock()
	defer t.mu.Unlock()
	roots := make([]*Node, len(t.roots))
	copy(roots, t.roots)
	return roots
}

// State returns n's load state.
func (t *Tree) State(n *Node) LoadState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return n.State
}

// Children returns a copy of n's children.
func (t *Tree) Children(n *Node) []*Node {
	t.mu.Lock()
	defer t.mu.Unlock()
	children := make([]*Node, len(n.Children))
	copy(children, n.Children)
	return children
}

// IsExpanded returns n's expansion flag.
func (t *Tree) IsExpanded(n *Node) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return n.Expanded
}

// SetExpanded records whether the view shows n's children. Expanding an
// Unloaded node loads it first.
func (t *Tree) SetExpanded(n *Node, expanded bool) {
	if expanded {
		t.Expand(n)
	}
	t.mu.Lock()
	changed := n.Expanded != expanded
	n.Expanded = expanded
	notifier := t.notifier
	t.mu.Unlock()

	if changed && notifier != nil {
		notifier.NotifyChildrenChanged(n)
	}
}

// Rows flattens the visible part of the tree: every root, plus the children of
// every expanded and loaded folder, depth first.
func (t *Tree) Rows() []Row {
	t.mu.Lock()
	defer t.mu.Unlock()

	var rows []Row
	var walk func(nodes []*Node, depth int)
	walk = func(nodes []*Node, depth int) {
		for _, n := range nodes {
			rows = append(rows, Row{
				Node:       n,
				Path:       n.Path,
				Name:       n.Name,
				Depth:      depth,
				Expanded:   n.Expanded,
				Expandable: n.Expandable(),
			})
			if n.Expanded && n.State == Loaded {
				walk(n.Children, depth+1)
			}
		}
	}
	walk(t.roots, 0)
	return rows
}

// Count returns the number of materialized nodes.
func (t *Tree) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	var count func(nodes []*Node) int
	count = func(nodes []*Node) int {
		c := len(nodes)
		for _, n := range nodes {
			c += count(n.Children)
		}
		return c
	}
	return count(t.roots)
}
