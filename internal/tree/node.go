// Package tree holds the lazily materialized folder tree.
//
// Folders are loaded one level at a time as they are expanded. Each node owns
// its children exclusively and there are no parent pointers: ancestry is
// recovered by splitting a path into segments and walking down from a root.
package tree

// LoadState records how much of a folder's subtree has been read from disk.
type LoadState int

const (
	// Unloaded folders are known (or, for volume roots, assumed) to have at
	// least one subdirectory that has not been enumerated yet.
	Unloaded LoadState = iota
	// Loaded folders hold at least one child.
	Loaded
	// Empty folders were probed and have no subdirectories, or could not be read.
	Empty
)

func (s LoadState) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Loaded:
		return "loaded"
	case Empty:
		return "empty"
	}
	return "unknown"
}

// Node is a folder in the tree. Path and Name never change after creation;
// State, Children and Expanded are guarded by the owning Tree.
type Node struct {
	Path     string
	Name     string
	State    LoadState
	Children []*Node
	Expanded bool
}

// Expandable reports whether the view should offer an expand affordance.
func (n *Node) Expandable() bool {
	return n.State != Empty
}

// Row is one visible line of the tree, as the view renders it.
type Row struct {
	Node       *Node
	Path       string
	Name       string
	Depth      int
	Expanded   bool
	Expandable bool
}
