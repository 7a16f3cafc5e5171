package nav

import (
	"context"
	"time"

	"github.com/justyntemme/foldernav/internal/debug"
	"github.com/justyntemme/foldernav/internal/tree"
)

// reveal walks the ancestor chain of target, re-derived from its path, and
// asks the view to expand each ancestor once the view has a row for it.
// Rows for children only appear after the view renders the expansion, so
// each level waits for the view. Revealing is best effort: when a level
// never appears the loop stops and timedOut is set. ok is false when target
// was dropped from the tree (by a refresh) after it was resolved.
func (c *Controller) reveal(ctx context.Context, target *tree.Node) (revealed int, timedOut, ok bool) {
	chain, complete := c.tree.Chain(target.Path)
	if !complete || chain[len(chain)-1] != target {
		debug.Log(debug.NAV, "reveal: %q no longer in tree", target.Path)
		return 0, false, false
	}

	for i, n := range chain {
		if !c.awaitRealized(ctx, n) {
			debug.Log(debug.NAV, "reveal: gave up waiting for %q", n.Path)
			return revealed, true, true
		}
		revealed++

		if i < len(chain)-1 {
			c.tree.SetExpanded(n, true)
			c.view.RequestExpand(n)
		}
	}
	return revealed, false, true
}

// awaitRealized polls the view, waiting between checks with a doubling delay,
// or for the view's settle signal when it has one. It gives up after
// RevealAttempts waits or when ctx is done.
func (c *Controller) awaitRealized(ctx context.Context, n *tree.Node) bool {
	if c.view.Realized(n) {
		return true
	}

	delay := c.opts.RevealDelay
	for attempt := 1; attempt <= c.opts.RevealAttempts; attempt++ {
		if err := c.wait(ctx, delay); err != nil {
			return false
		}
		if c.view.Realized(n) {
			debug.Log(debug.NAV, "reveal: %q realized after %d waits", n.Path, attempt)
			return true
		}
		delay *= 2
		if delay > c.opts.RevealMaxDelay {
			delay = c.opts.RevealMaxDelay
		}
	}
	return false
}

// wait returns after delay, or earlier when the view reports it has settled.
func (c *Controller) wait(ctx context.Context, delay time.Duration) error {
	var settled <-chan struct{}
	if s, ok := c.view.(Settler); ok {
		settled = s.Settled()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-settled:
		return nil
	case <-timer.C:
		return nil
	}
}
