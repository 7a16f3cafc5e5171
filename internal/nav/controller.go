// Package nav implements "go to path": validate the path on disk, resolve it
// in the lazy folder tree, reveal each ancestor in the view, select the
// folder and publish its file list.
package nav

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/justyntemme/foldernav/internal/debug"
	"github.com/justyntemme/foldernav/internal/files"
	"github.com/justyntemme/foldernav/internal/fs"
	"github.com/justyntemme/foldernav/internal/tree"
)

// View is the tree widget as the controller sees it. Requests are
// fire-and-forget: their effect may only show up after the next frame.
type View interface {
	tree.Notifier
	RequestExpand(n *tree.Node)
	RequestSelect(n *tree.Node)
	RequestBringIntoView(n *tree.Node)
	// Realized reports whether the view currently has a rendered row for n.
	Realized(n *tree.Node) bool
}

// Settler is implemented by views that can signal when pending rendering
// work has been done. The returned channel is closed after the next frame.
type Settler interface {
	Settled() <-chan struct{}
}

// Publisher receives the outcome of a navigation.
type Publisher interface {
	ShowFiles(path string, entries []files.Entry)
	ShowError(msg string)
}

// Options tunes the reveal loop and history.
type Options struct {
	RevealDelay    time.Duration // first wait for the view to realize a row
	RevealMaxDelay time.Duration // cap for the doubled wait
	RevealAttempts int           // waits per ancestor before giving up
	HistorySize    int
	HomePath       string
}

// DefaultOptions returns the delays used by the desktop app.
func DefaultOptions() Options {
	return Options{
		RevealDelay:    100 * time.Millisecond,
		RevealMaxDelay: 800 * time.Millisecond,
		RevealAttempts: 4,
		HistorySize:    100,
	}
}

// State is the transient navigation state, recomputed on every navigation.
type State struct {
	CurrentPath string
	Selected    *tree.Node
}

// Result describes a navigation that got past validation and resolution.
type Result struct {
	Path          string
	Node          *tree.Node
	Revealed      int  // ancestors (including the target) the view realized
	RevealTimeout bool // the view never produced a row for some ancestor
	Stale         bool // a newer navigation started; nothing was selected or listed
	Files         []files.Entry
}

// Err reports an incomplete reveal as an error value. Navigation still
// selects and lists the folder in that case.
func (r Result) Err() error {
	if r.RevealTimeout {
		return &Error{Op: "reveal", Path: r.Path, Err: ErrRevealTimeout}
	}
	return nil
}

// Controller runs navigations against one tree and one view.
type Controller struct {
	tree   *tree.Tree
	probe  fs.Probe
	loader *files.Loader
	view   View
	pub    Publisher
	opts   Options

	gen atomic.Int64

	mu           sync.Mutex
	state        State
	history      []string
	historyIndex int
}

// NewController wires a controller. view and pub may be nil in headless use.
func NewController(t *tree.Tree, probe fs.Probe, view View, pub Publisher, opts Options) *Controller {
	if opts.RevealAttempts <= 0 {
		opts.RevealAttempts = 1
	}
	if opts.RevealMaxDelay < opts.RevealDelay {
		opts.RevealMaxDelay = opts.RevealDelay
	}
	if opts.HistorySize <= 0 {
		opts.HistorySize = DefaultOptions().HistorySize
	}
	if view == nil {
		view = headlessView{}
	}
	if pub == nil {
		pub = discardPublisher{}
	}
	return &Controller{
		tree:         t,
		probe:        probe,
		loader:       files.NewLoader(probe),
		view:         view,
		pub:          pub,
		opts:         opts,
		historyIndex: -1,
	}
}

// State returns a copy of the current navigation state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Navigate moves the selection to the folder at path. Failures are reported
// to the publisher as one message and returned. Expansions done before a
// failure are kept.
func (c *Controller) Navigate(ctx context.Context, path string) (Result, error) {
	return c.navigate(ctx, path, true)
}

func (c *Controller) navigate(ctx context.Context, path string, record bool) (res Result, err error) {
	gen := c.gen.Add(1)
	path = strings.TrimSpace(path)
	debug.Log(debug.NAV, "navigate: %q gen=%d", path, gen)

	defer func() {
		if r := recover(); r != nil {
			err = &Error{Op: "navigate", Path: path, Err: fmt.Errorf("panic: %v", r)}
		}
		if err != nil {
			debug.Log(debug.NAV, "navigate: %v", err)
			c.pub.ShowError(UserMessage(err))
		}
	}()

	// Validate against the disk first: the tree may not have discovered the folder yet.
	if path == "" {
		return Result{}, &Error{Op: "validate", Err: ErrEmptyPath}
	}
	if !c.probe.DirectoryExists(path) {
		return Result{}, &Error{Op: "validate", Path: path, Err: ErrPathNotFound}
	}

	node, ok := c.tree.Resolve(path)
	if !ok {
		return Result{}, &Error{Op: "resolve", Path: path, Err: ErrNodeNotInTree}
	}
	res = Result{Path: node.Path, Node: node}

	var inTree bool
	res.Revealed, res.RevealTimeout, inTree = c.reveal(ctx, node)
	if !inTree {
		return Result{}, &Error{Op: "reveal", Path: node.Path, Err: ErrNodeNotInTree}
	}
	if res.RevealTimeout {
		debug.Log(debug.NAV, "navigate: %q revealed %d levels before timing out", node.Path, res.Revealed)
	}

	if c.gen.Load() != gen {
		debug.Log(debug.NAV, "navigate: %q superseded", node.Path)
		res.Stale = true
		return res, nil
	}

	c.view.RequestSelect(node)
	c.view.RequestBringIntoView(node)

	c.mu.Lock()
	c.state = State{CurrentPath: node.Path, Selected: node}
	if record {
		c.pushHistoryLocked(node.Path)
	}
	c.mu.Unlock()

	res.Files = c.loader.List(node.Path)
	c.pub.ShowFiles(node.Path, res.Files)
	return res, nil
}

// Reload lists the current folder again without touching the tree.
func (c *Controller) Reload() {
	st := c.State()
	if st.CurrentPath == "" {
		return
	}
	c.pub.ShowFiles(st.CurrentPath, c.loader.List(st.CurrentPath))
}

type headlessView struct{}

func (headlessView) NotifyChildrenChanged(*tree.Node) {}
func (headlessView) RequestExpand(*tree.Node)         {}
func (headlessView) RequestSelect(*tree.Node)         {}
func (headlessView) RequestBringIntoView(*tree.Node)  {}
func (headlessView) Realized(*tree.Node) bool         { return true }

type discardPublisher struct{}

func (discardPublisher) ShowFiles(string, []files.Entry) {}
func (discardPublisher) ShowError(string)                {}
