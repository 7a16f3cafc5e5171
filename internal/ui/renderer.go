package ui

import (
	"sync"

	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/justyntemme/foldernav/internal/tree"
)

// treeRowWidgets holds the clickables of one visible tree row.
type treeRowWidgets struct {
	row     widget.Clickable
	chevron widget.Clickable
}

type Renderer struct {
	Theme     *material.Theme
	TreeWidth unit.Dp
	DarkMode  bool

	tree *tree.Tree

	// Shared with the navigation goroutine.
	mu          sync.Mutex
	realized    map[*tree.Node]bool
	settle      chan struct{}
	selected    *tree.Node
	scrollTo    *tree.Node
	invalidator func()
	toast       toast

	// Frame goroutine only.
	treeList    layout.List
	fileList    layout.List
	treeRows    map[*tree.Node]*treeRowWidgets
	crumbClicks []widget.Clickable
	backBtn     widget.Clickable
	fwdBtn      widget.Clickable
	upBtn       widget.Clickable
	refreshBtn  widget.Clickable
	themeBtn    widget.Clickable
	goBtn       widget.Clickable
	pathEditor  widget.Editor
	pathClick   widget.Clickable
	isEditing   bool
	focused     bool
}

func NewRenderer(t *tree.Tree) *Renderer {
	r := &Renderer{
		Theme:     material.NewTheme(),
		TreeWidth: unit.Dp(280),
		tree:      t,
		realized:  make(map[*tree.Node]bool),
		settle:    make(chan struct{}),
		treeRows:  make(map[*tree.Node]*treeRowWidgets),
	}
	r.treeList.Axis = layout.Vertical
	r.fileList.Axis = layout.Vertical
	r.pathEditor.SingleLine = true
	r.pathEditor.Submit = true
	r.applyTheme()
	return r
}

// SetInvalidator sets the function used to request a new frame.
func (r *Renderer) SetInvalidator(fn func()) {
	r.mu.Lock()
	r.invalidator = fn
	r.mu.Unlock()
}

func (r *Renderer) SetDarkMode(dark bool) {
	r.DarkMode = dark
	r.applyTheme()
}

func (r *Renderer) applyTheme() {
	p := lightPalette
	if r.DarkMode {
		p = darkPalette
	}
	applyPalette(p)
	r.Theme.Palette.Bg = colBg
	r.Theme.Palette.Fg = colText
	r.Theme.Palette.ContrastBg = colAccent
	r.Theme.Palette.ContrastFg = colWhite
}

// BeginEditPath puts the path bar into edit mode with text.
func (r *Renderer) BeginEditPath(text string) {
	r.isEditing = true
	r.pathEditor.SetText(text)
}

func (r *Renderer) rowWidgets(n *tree.Node) *treeRowWidgets {
	w, ok := r.treeRows[n]
	if !ok {
		w = &treeRowWidgets{}
		r.treeRows[n] = w
	}
	return w
}
