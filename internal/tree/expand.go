package tree

import "github.com/justyntemme/foldernav/internal/debug"

type childSpec struct {
	path    string
	name    string
	hasDirs bool
}

// Expand loads n's immediate children if n is Unloaded, and is a no-op
// otherwise. Each child is probed once more so that only folders with
// subdirectories of their own start out Unloaded; the rest start Empty.
// A failed probe leaves n Empty.
func (t *Tree) Expand(n *Node) {
	if n == nil {
		return
	}

	t.mu.Lock()
	state := n.State
	t.mu.Unlock()
	if state != Unloaded {
		return
	}

	// Probe without holding the lock so rendering can keep reading Rows.
	v, _, shared := t.probes.Do(n.Path, func() (interface{}, error) {
		return t.probeChildren(n.Path), nil
	})
	specs := v.([]childSpec)

	t.mu.Lock()
	if n.State != Unloaded {
		// Another caller applied this probe first.
		t.mu.Unlock()
		return
	}
	n.Children = make([]*Node, 0, len(specs))
	for _, s := range specs {
		child := &Node{Path: s.path, Name: s.name, State: Empty}
		if s.hasDirs {
			child.State = Unloaded
		}
		n.Children = append(n.Children, child)
	}
	if len(n.Children) > 0 {
		n.State = Loaded
	} else {
		n.Children = nil
		n.State = Empty
	}
	notifier := t.notifier
	t.mu.Unlock()

	debug.Log(debug.TREE, "Expand: %q -> %d children (shared=%v)", n.Path, len(specs), shared)
	if notifier != nil {
		notifier.NotifyChildrenChanged(n)
	}
}

func (t *Tree) probeChildren(path string) []childSpec {
	dirs := t.probe.ListSubdirectories(path)
	specs := make([]childSpec, 0, len(dirs))
	for _, d := range dirs {
		specs = append(specs, childSpec{
			path:    d.Path,
			name:    d.Name,
			hasDirs: len(t.probe.ListSubdirectories(d.Path)) > 0,
		})
	}
	return specs
}

// Refresh re-reads the children of the folder at path and merges them into
// the tree: children that still exist keep their node, state and expansion;
// new ones are added and vanished ones dropped. An Unloaded folder is left
// alone, since its next Expand reads the disk anyway. It reports false when
// the folder is not materialized.
func (t *Tree) Refresh(path string) bool {
	chain, complete := t.Chain(path)
	if !complete {
		return false
	}
	n := chain[len(chain)-1]
	if t.State(n) == Unloaded {
		return true
	}

	specs := t.probeChildren(n.Path)

	t.mu.Lock()
	old := make(map[string]*Node, len(n.Children))
	for _, c := range n.Children {
		old[c.Name] = c
	}
	children := make([]*Node, 0, len(specs))
	for _, s := range specs {
		c, ok := old[s.name]
		if !ok {
			c = &Node{Path: s.path, Name: s.name, State: Empty}
			if s.hasDirs {
				c.State = Unloaded
			}
		} else if c.State == Empty && s.hasDirs {
			c.State = Unloaded
		} else if c.State != Empty && !s.hasDirs {
			c.State = Empty
			c.Children = nil
			c.Expanded = false
		}
		children = append(children, c)
	}
	if len(children) > 0 {
		n.Children = children
		n.State = Loaded
	} else {
		n.Children = nil
		n.State = Empty
	}
	notifier := t.notifier
	t.mu.Unlock()

	debug.Log(debug.TREE, "Refresh: %q -> %d children", n.Path, len(specs))
	if notifier != nil {
		notifier.NotifyChildrenChanged(n)
	}
	return true
}

// LoadedPaths returns the paths of every folder whose children are in memory.
func (t *Tree) LoadedPaths() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var paths []string
	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			if n.State == Loaded {
				paths = append(paths, n.Path)
				walk(n.Children)
			}
		}
	}
	walk(t.roots)
	return paths
}
