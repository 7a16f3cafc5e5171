package tree

import (
	"strings"

	"github.com/justyntemme/foldernav/internal/debug"
)

// matchRoot finds the root with the longest path that contains target, and
// returns the remaining segments below it. Must be called with t.mu held.
func (t *Tree) matchRoot(target string) (*Node, []string) {
	tn := normalize(target, t.sep)

	var best *Node
	var bestRest string
	bestLen := -1
	for _, r := range t.roots {
		rn := normalize(r.Path, t.sep)
		// "/" normalizes to "", so every absolute path lies under it.
		rest, ok := cutRoot(tn, rn, t.sep)
		if ok && len(rn) > bestLen {
			best, bestRest, bestLen = r, rest, len(rn)
		}
	}
	if best == nil {
		return nil, nil
	}
	return best, splitSegments(bestRest, t.sep)
}

// childNamed prefers an exact name match and falls back to a case-insensitive
// one. Must be called with t.mu held.
func childNamed(n *Node, name string) *Node {
	var folded *Node
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
		if folded == nil && strings.EqualFold(c.Name, name) {
			folded = c
		}
	}
	return folded
}

// Resolve walks from the matching root down to the folder at path, expanding
// any Unloaded folder on the way so its children can be searched. It reports
// false when some segment has no matching child.
func (t *Tree) Resolve(path string) (*Node, bool) {
	t.mu.Lock()
	cur, segs := t.matchRoot(path)
	t.mu.Unlock()
	if cur == nil {
		debug.Log(debug.TREE, "Resolve: %q: no root matches", path)
		return nil, false
	}

	for _, seg := range segs {
		t.Expand(cur)

		t.mu.Lock()
		next := childNamed(cur, seg)
		t.mu.Unlock()
		if next == nil {
			debug.Log(debug.TREE, "Resolve: %q: no child %q under %q", path, seg, cur.Path)
			return nil, false
		}
		cur = next
	}

	debug.Log(debug.TREE, "Resolve: %q -> %q", path, cur.Path)
	return cur, true
}

// Chain returns the materialized nodes from the root down to path, without
// loading anything. complete is false when the walk stopped early; the
// returned slice then holds the ancestors that were found.
func (t *Tree) Chain(path string) (chain []*Node, complete bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	cur, segs := t.matchRoot(path)
	if cur == nil {
		return nil, false
	}
	chain = append(chain, cur)
	for _, seg := range segs {
		next := childNamed(cur, seg)
		if next == nil {
			return chain, false
		}
		chain = append(chain, next)
		cur = next
	}
	return chain, true
}
