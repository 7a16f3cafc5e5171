// Package app wires the tree, navigation, store and watcher to a gioui window.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/unit"

	"github.com/justyntemme/foldernav/internal/config"
	"github.com/justyntemme/foldernav/internal/debug"
	"github.com/justyntemme/foldernav/internal/files"
	"github.com/justyntemme/foldernav/internal/fs"
	"github.com/justyntemme/foldernav/internal/nav"
	"github.com/justyntemme/foldernav/internal/store"
	"github.com/justyntemme/foldernav/internal/tree"
	"github.com/justyntemme/foldernav/internal/ui"
	"github.com/justyntemme/foldernav/internal/watch"
)

var (
	_ nav.View    = (*ui.Renderer)(nil)
	_ nav.Settler = (*ui.Renderer)(nil)
)

// Options are the command line settings.
type Options struct {
	Debug      bool
	StartPath  string
	ConfigPath string
}

type Orchestrator struct {
	window  *app.Window
	cfg     *config.Manager
	probe   *fs.OSProbe
	tree    *tree.Tree
	ui      *ui.Renderer
	nav     *nav.Controller
	store   *store.DB // nil when the database could not be opened
	watcher *watch.Watcher
	state   *StateOwner

	ctx    context.Context
	cancel context.CancelFunc
}

// NewOrchestrator builds every component from cfg. The window is created
// but not shown until Run.
func NewOrchestrator(cfg *config.Manager) *Orchestrator {
	c := cfg.Get()
	window := new(app.Window)

	o := &Orchestrator{
		window: window,
		cfg:    cfg,
		probe:  fs.NewOSProbe(c.UI.ShowHidden),
		state:  NewStateOwner(window.Invalidate),
	}
	o.ctx, o.cancel = context.WithCancel(context.Background())

	o.tree = tree.New(o.probe)
	o.tree.SetRoots(fs.ReadyVolumes(fs.ListVolumes()))

	o.ui = ui.NewRenderer(o.tree)
	o.ui.SetInvalidator(window.Invalidate)
	o.ui.SetDarkMode(cfg.IsDarkMode())
	if c.UI.TreeWidth > 0 {
		o.ui.TreeWidth = unit.Dp(c.UI.TreeWidth)
	}
	o.tree.SetNotifier(o.ui)

	o.nav = nav.NewController(o.tree, o.probe, o.ui, publisher{o}, navOptions(c))

	if err := cfg.ParseError(); err != nil {
		o.state.SetConfigError(err.Error())
	}
	return o
}

func navOptions(c config.Config) nav.Options {
	opts := nav.DefaultOptions()
	opts.RevealDelay, opts.RevealMaxDelay, opts.RevealAttempts = c.RevealTiming()
	if c.Navigation.HistorySize > 0 {
		opts.HistorySize = c.Navigation.HistorySize
	}
	if home, err := os.UserHomeDir(); err == nil {
		opts.HomePath = home
	}
	return opts
}

// startPath picks the first folder to show: the command line path, then the
// last visited folder, then the configured start path, then home.
func startPath(flagPath, lastPath string, c config.Config, home string) string {
	switch {
	case flagPath != "":
		return flagPath
	case c.Navigation.RestoreLastPath && lastPath != "":
		return lastPath
	case c.Navigation.StartPath != "":
		return c.Navigation.StartPath
	}
	return home
}

// openStore opens the database and reads the settings before the worker
// loop takes over the response channel.
func (o *Orchestrator) openStore() map[string]string {
	db := store.NewDB()
	if err := db.Open(o.cfg.StorePath()); err != nil {
		debug.Errorf(debug.STORE, "Failed to open DB: %v", err)
		return nil
	}
	o.store = db
	go db.Start()

	db.RequestChan <- store.Request{Op: store.FetchSettings}
	resp := <-db.ResponseChan
	if resp.Err != nil {
		debug.Errorf(debug.STORE, "Failed to read settings: %v", resp.Err)
	}
	db.RequestChan <- store.Request{Op: store.FetchRecent}
	return resp.Settings
}

func (o *Orchestrator) startWatcher() {
	c := o.cfg.Get()
	if !c.Watch.Enabled {
		return
	}
	w, err := watch.New(o.tree, time.Duration(c.Watch.DebounceMs)*time.Millisecond)
	if err != nil {
		debug.Errorf(debug.WATCH, "Failed to start watcher: %v", err)
		return
	}
	o.watcher = w
}

func (o *Orchestrator) Run(flagPath string) error {
	debug.Infof(debug.APP, "Starting foldernav, config %s, debug categories %v", o.cfg.Path(), debug.ListEnabled())

	settings := o.openStore()
	o.startWatcher()
	defer o.shutdown()

	go o.processEvents()

	home, _ := os.UserHomeDir()
	start := startPath(flagPath, settings[store.KeyLastPath], o.cfg.Get(), home)
	o.goAsync(func(ctx context.Context) (nav.Result, error) {
		return o.nav.Go(ctx, start)
	})

	var ops op.Ops
	for {
		switch e := o.window.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			var evt ui.UIEvent
			o.state.Frame(func(s *ui.State) {
				evt = o.ui.Layout(gtx, s)
			})
			if evt.Action != ui.ActionNone {
				debug.Log(debug.UI, "Action: %d, Path: %s, Index: %d", evt.Action, evt.Path, evt.NewIndex)
			}
			o.handleUIEvent(evt)
			e.Frame(gtx.Ops)
		}
	}
}

func (o *Orchestrator) shutdown() {
	o.cancel()
	if o.watcher != nil {
		o.watcher.Close()
	}
	if o.store != nil {
		o.store.Close()
	}
	debug.Sync()
}

// goAsync runs a navigation off the frame goroutine: the reveal loop waits
// for frames to be laid out.
func (o *Orchestrator) goAsync(fn func(ctx context.Context) (nav.Result, error)) {
	go func() {
		res, err := fn(o.ctx)
		if err != nil || res.Stale {
			return
		}
		if rerr := res.Err(); rerr != nil {
			o.ui.ShowToast(nav.UserMessage(rerr), ui.ToastWarning)
		}
		if o.watcher != nil {
			o.watcher.SetFocus(res.Path)
		}
	}()
}

func (o *Orchestrator) handleUIEvent(evt ui.UIEvent) {
	switch evt.Action {
	case ui.ActionNavigate:
		input := evt.Path
		o.goAsync(func(ctx context.Context) (nav.Result, error) { return o.nav.Go(ctx, input) })
	case ui.ActionBack:
		o.goAsync(o.nav.Back)
	case ui.ActionForward:
		o.goAsync(o.nav.Forward)
	case ui.ActionUp:
		o.goAsync(o.nav.Up)
	case ui.ActionRefresh:
		go o.refresh()
	case ui.ActionToggleExpand:
		n := evt.Node
		go func() {
			o.tree.SetExpanded(n, !o.tree.IsExpanded(n))
			if o.watcher != nil {
				o.watcher.Sync()
			}
		}()
	case ui.ActionSelectFile:
		if entry, ok := o.state.SelectFile(evt.NewIndex); ok {
			go o.describe(entry)
		}
	case ui.ActionOpen:
		if err := platformOpen(evt.Path); err != nil {
			debug.Errorf(debug.APP, "Error opening file: %v", err)
			o.ui.ShowError("Could not open " + evt.Path)
		}
	case ui.ActionToggleTheme:
		dark := !o.cfg.IsDarkMode()
		theme := "light"
		if dark {
			theme = "dark"
		}
		if err := o.cfg.SetTheme(theme); err != nil {
			debug.Errorf(debug.APP, "Failed to save theme: %v", err)
		}
		o.ui.SetDarkMode(dark)
		o.window.Invalidate()
	case ui.ActionPaste:
		paths := evt.Paths
		go o.paste(paths)
	}
}

// refresh re-reads the current folder's subfolders and files.
func (o *Orchestrator) refresh() {
	if cur := o.nav.State().CurrentPath; cur != "" {
		o.tree.Refresh(cur)
	}
	o.nav.Reload()
	if o.watcher != nil {
		o.watcher.Sync()
	}
}

// describe puts details of the selected file in the status line.
func (o *Orchestrator) describe(e files.Entry) {
	status := fmt.Sprintf("%s, %s", e.Name, files.FormatSize(e.Size))
	if e.IconKey == files.IconImage {
		if w, h, ok := files.ImageSize(e.Path); ok {
			status = fmt.Sprintf("%s, %d x %d", status, w, h)
		}
	}
	o.state.SetStatus(status)
}

func (o *Orchestrator) paste(paths []string) {
	dst := o.nav.State().CurrentPath
	if dst == "" {
		return
	}
	res := files.CopyInto(dst, paths)
	switch {
	case len(res.Failed) > 0:
		o.ui.ShowToast(fmt.Sprintf("%d copied, %d failed", len(res.Copied), len(res.Failed)), ui.ToastError)
	case len(res.Skipped) > 0:
		o.ui.ShowToast(fmt.Sprintf("%d copied, %d already there", len(res.Copied), len(res.Skipped)), ui.ToastWarning)
	default:
		o.ui.ShowToast(fmt.Sprintf("%d copied", len(res.Copied)), ui.ToastInfo)
	}
	o.nav.Reload()
}

// processEvents drains the store and watcher until shutdown.
func (o *Orchestrator) processEvents() {
	var storeResp <-chan store.Response
	if o.store != nil {
		storeResp = o.store.ResponseChan
	}
	var changed <-chan string
	if o.watcher != nil {
		changed = o.watcher.Changed()
	}
	for {
		select {
		case <-o.ctx.Done():
			return
		case resp := <-storeResp:
			o.handleStoreResponse(resp)
		case dir := <-changed:
			if tree.SamePath(dir, o.nav.State().CurrentPath, o.tree.Separator()) {
				debug.Log(debug.WATCH, "current folder changed: %s", dir)
				go o.nav.Reload()
			}
		}
	}
}

func (o *Orchestrator) handleStoreResponse(resp store.Response) {
	if resp.Err != nil {
		debug.Errorf(debug.STORE, "Store error (op %d): %v", resp.Op, resp.Err)
		return
	}
	switch resp.Op {
	case store.RecordVisit, store.FetchRecent:
		o.state.SetRecent(resp.Recent)
	}
}

// publisher forwards navigation outcomes to the window and the store.
type publisher struct{ o *Orchestrator }

func (p publisher) ShowFiles(path string, entries []files.Entry) {
	o := p.o
	o.state.SetListing(path, entries, o.nav.CanBack(), o.nav.CanForward())
	if o.store == nil {
		return
	}
	if path != o.lastRecorded() {
		o.store.RequestChan <- store.Request{Op: store.RecordVisit, Path: path}
		o.store.RequestChan <- store.Request{Op: store.SaveSetting, Key: store.KeyLastPath, Value: path}
	}
}

func (p publisher) ShowError(msg string) {
	p.o.ui.ShowError(msg)
	p.o.state.SetStatus(msg)
}

// lastRecorded is the newest recent folder, so reloads are not recorded as
// visits.
func (o *Orchestrator) lastRecorded() string {
	var last string
	o.state.Frame(func(s *ui.State) {
		if len(s.Recent) > 0 {
			last = s.Recent[0].Path
		}
	})
	return last
}

// Main loads the config and runs the window until it is closed.
func Main(opts Options) {
	if opts.Debug {
		debug.SetVerbose(true)
	}

	cfg := config.NewManager()
	if err := cfg.Load(opts.ConfigPath); err != nil {
		debug.Errorf(debug.APP, "Failed to load config: %v", err)
	}

	o := NewOrchestrator(cfg)
	o.window.Option(app.Title("foldernav"), app.Size(unit.Dp(1100), unit.Dp(700)))
	go func() {
		if err := o.Run(opts.StartPath); err != nil {
			debug.Errorf(debug.APP, "%v", err)
			os.Exit(1)
		}
		os.Exit(0)
	}()
	app.Main()
}
