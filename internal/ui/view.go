package ui

import (
	"github.com/justyntemme/foldernav/internal/debug"
	"github.com/justyntemme/foldernav/internal/tree"
)

// The renderer is the tree view that navigation drives. Requests made from
// the navigation goroutine are queued under r.mu and applied by the next
// frame; rows become realized only once a frame has laid them out.

// NotifyChildrenChanged schedules a frame so the new rows get laid out.
func (r *Renderer) NotifyChildrenChanged(n *tree.Node) {
	debug.Log(debug.UI, "children changed: %s", n.Path)
	r.invalidate()
}

// RequestExpand schedules a frame showing n's children. The expansion flag
// itself lives in the tree.
func (r *Renderer) RequestExpand(n *tree.Node) {
	r.invalidate()
}

// RequestSelect highlights n from the next frame on.
func (r *Renderer) RequestSelect(n *tree.Node) {
	r.mu.Lock()
	r.selected = n
	r.mu.Unlock()
	r.invalidate()
}

// RequestBringIntoView scrolls the tree pane to n on the next frame.
func (r *Renderer) RequestBringIntoView(n *tree.Node) {
	r.mu.Lock()
	r.scrollTo = n
	r.mu.Unlock()
	r.invalidate()
}

// Realized reports whether the last frame laid out a row for n.
func (r *Renderer) Realized(n *tree.Node) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.realized[n]
}

// Settled returns a channel closed once the next frame has been laid out.
func (r *Renderer) Settled() <-chan struct{} {
	r.mu.Lock()
	ch := r.settle
	r.mu.Unlock()
	r.invalidate()
	return ch
}

// Selected returns the highlighted tree folder.
func (r *Renderer) Selected() *tree.Node {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.selected
}

// beginFrame takes the pending scroll request and returns the row index to
// scroll to, or -1.
func (r *Renderer) beginFrame(rows []tree.Row) int {
	r.mu.Lock()
	target := r.scrollTo
	r.scrollTo = nil
	r.mu.Unlock()

	if target == nil {
		return -1
	}
	for i, row := range rows {
		if row.Node == target {
			return i
		}
	}
	// Not laid out yet; try again next frame.
	r.mu.Lock()
	if r.scrollTo == nil {
		r.scrollTo = target
	}
	r.mu.Unlock()
	return -1
}

// endFrame records the rows this frame laid out and releases Settled waiters.
func (r *Renderer) endFrame(rows []tree.Row) {
	realized := make(map[*tree.Node]bool, len(rows))
	for _, row := range rows {
		realized[row.Node] = true
	}

	r.mu.Lock()
	r.realized = realized
	settle := r.settle
	r.settle = make(chan struct{})
	r.mu.Unlock()
	close(settle)

	// Drop widget state for rows that are gone.
	for n := range r.treeRows {
		if !realized[n] {
			delete(r.treeRows, n)
		}
	}
}

func (r *Renderer) invalidate() {
	r.mu.Lock()
	inv := r.invalidator
	r.mu.Unlock()
	if inv != nil {
		inv()
	}
}
