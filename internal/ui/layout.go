package ui

import (
	"image"
	"io"
	"strings"

	"gioui.org/io/clipboard"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/transfer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/dustin/go-humanize"
)

// Layout draws one frame and returns the user action it produced, if any.
func (r *Renderer) Layout(gtx layout.Context, state *State) UIEvent {
	defer clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops).Pop()
	paint.Fill(gtx.Ops, colBg)

	rows := r.tree.Rows()
	if i := r.beginFrame(rows); i >= 0 {
		r.scrollTreeTo(i)
	}

	// ===== KEYBOARD FOCUS =====
	keyTag := &r.fileList
	event.Op(gtx.Ops, keyTag)
	if !r.focused {
		gtx.Execute(key.FocusCmd{Tag: keyTag})
		r.focused = true
	}

	eventOut := r.processGlobalInput(gtx, state)

	layout.Stack{}.Layout(gtx,
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return layout.Inset{Top: unit.Dp(8), Bottom: unit.Dp(4), Left: unit.Dp(8), Right: unit.Dp(8)}.Layout(gtx,
						func(gtx layout.Context) layout.Dimensions {
							return r.layoutNavBar(gtx, state, keyTag, &eventOut)
						})
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return r.layoutRecent(gtx, state, &eventOut)
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return r.layoutConfigErrorBanner(gtx, state)
				}),
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							w := gtx.Dp(r.TreeWidth)
							gtx.Constraints.Min.X, gtx.Constraints.Max.X = w, w
							paint.FillShape(gtx.Ops, colSidebar, clip.Rect{Max: gtx.Constraints.Max}.Op())
							return r.layoutTree(gtx, rows, &eventOut)
						}),
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							size := image.Pt(gtx.Dp(1), gtx.Constraints.Max.Y)
							paint.FillShape(gtx.Ops, colDivider, clip.Rect{Max: size}.Op())
							return layout.Dimensions{Size: size}
						}),
						layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
							return r.layoutFileList(gtx, state, keyTag, &eventOut)
						}),
					)
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return r.layoutStatusBar(gtx, state)
				}),
			)
		}),
		layout.Expanded(r.layoutToast),
	)

	r.endFrame(rows)
	return eventOut
}

// processGlobalInput handles keyboard shortcuts
func (r *Renderer) processGlobalInput(gtx layout.Context, state *State) UIEvent {
	var eventOut UIEvent
	filters := []event.Filter{
		key.Filter{Name: key.NameLeftArrow, Required: key.ModAlt},
		key.Filter{Name: key.NameRightArrow, Required: key.ModAlt},
		key.Filter{Name: key.NameUpArrow, Required: key.ModAlt},
		key.Filter{Name: key.NameF5},
		key.Filter{Name: "L", Required: key.ModShortcut},
		key.Filter{Focus: &r.fileList, Name: "C", Required: key.ModShortcut},
		key.Filter{Focus: &r.fileList, Name: "V", Required: key.ModShortcut},
		key.Filter{Focus: &r.fileList, Name: key.NameUpArrow},
		key.Filter{Focus: &r.fileList, Name: key.NameDownArrow},
		key.Filter{Focus: &r.fileList, Name: key.NameReturn},
	}
	for {
		e, ok := gtx.Event(filters...)
		if !ok {
			break
		}
		k, ok := e.(key.Event)
		if !ok || k.State != key.Press {
			continue
		}
		switch {
		case k.Name == "C":
			if path := selectionText(state); path != "" {
				gtx.Execute(clipboard.WriteCmd{Type: "application/text", Data: io.NopCloser(strings.NewReader(path))})
				r.ShowToast("Copied path", ToastInfo)
			}
		case k.Name == "V":
			gtx.Execute(clipboard.ReadCmd{Tag: &r.fileList})
		case k.Name == key.NameLeftArrow && k.Modifiers.Contain(key.ModAlt):
			if state.CanBack {
				eventOut = UIEvent{Action: ActionBack}
			}
		case k.Name == key.NameRightArrow && k.Modifiers.Contain(key.ModAlt):
			if state.CanForward {
				eventOut = UIEvent{Action: ActionForward}
			}
		case k.Name == key.NameUpArrow && k.Modifiers.Contain(key.ModAlt):
			eventOut = UIEvent{Action: ActionUp}
		case k.Name == key.NameF5:
			eventOut = UIEvent{Action: ActionRefresh}
		case k.Name == "L":
			r.BeginEditPath(state.CurrentPath)
			gtx.Execute(key.FocusCmd{Tag: &r.pathEditor})
		case k.Name == key.NameUpArrow:
			if state.SelectedIndex > 0 {
				eventOut = UIEvent{Action: ActionSelectFile, NewIndex: state.SelectedIndex - 1}
				r.fileList.ScrollTo(state.SelectedIndex - 1)
			}
		case k.Name == key.NameDownArrow:
			if state.SelectedIndex < len(state.Files)-1 {
				eventOut = UIEvent{Action: ActionSelectFile, NewIndex: state.SelectedIndex + 1}
				r.fileList.ScrollTo(state.SelectedIndex + 1)
			}
		case k.Name == key.NameReturn:
			if state.SelectedIndex >= 0 && state.SelectedIndex < len(state.Files) {
				eventOut = UIEvent{Action: ActionOpen, Path: state.Files[state.SelectedIndex].Path}
			}
		}
	}

	// Clipboard contents requested by Shortcut+V
	for {
		e, ok := gtx.Event(transfer.TargetFilter{Target: &r.fileList, Type: "application/text"})
		if !ok {
			break
		}
		de, ok := e.(transfer.DataEvent)
		if !ok {
			continue
		}
		rc := de.Open()
		data, _ := io.ReadAll(rc)
		rc.Close()
		if paths := parsePastedPaths(string(data)); len(paths) > 0 && state.CurrentPath != "" {
			eventOut = UIEvent{Action: ActionPaste, Paths: paths}
		}
	}
	return eventOut
}

func (r *Renderer) layoutNavBar(gtx layout.Context, state *State, keyTag *layout.List, eventOut *UIEvent) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return r.navButton(gtx, &r.backBtn, "◀", state.CanBack, func() { *eventOut = UIEvent{Action: ActionBack} }, keyTag)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return r.navButton(gtx, &r.fwdBtn, "▶", state.CanForward, func() { *eventOut = UIEvent{Action: ActionForward} }, keyTag)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return r.navButton(gtx, &r.upBtn, "▲", state.CurrentPath != "", func() { *eventOut = UIEvent{Action: ActionUp} }, keyTag)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return r.navButton(gtx, &r.refreshBtn, "⟳", true, func() { *eventOut = UIEvent{Action: ActionRefresh} }, keyTag)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),

		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			defer clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops).Pop()
			return r.layoutPathBar(gtx, state, keyTag, eventOut)
		}),

		layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if r.goBtn.Clicked(gtx) {
				path := state.CurrentPath
				if r.isEditing {
					path = strings.TrimSpace(r.pathEditor.Text())
				}
				r.isEditing = false
				*eventOut = UIEvent{Action: ActionNavigate, Path: path}
				gtx.Execute(key.FocusCmd{Tag: keyTag})
			}
			return material.Button(r.Theme, &r.goBtn, "Go").Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			label := "☾"
			if r.DarkMode {
				label = "☀"
			}
			return r.navButton(gtx, &r.themeBtn, label, true, func() { *eventOut = UIEvent{Action: ActionToggleTheme} }, keyTag)
		}),
	)
}

// layoutPathBar shows breadcrumbs, or the path editor while editing.
func (r *Renderer) layoutPathBar(gtx layout.Context, state *State, keyTag *layout.List, eventOut *UIEvent) layout.Dimensions {
	if r.isEditing {
		for {
			evt, ok := r.pathEditor.Update(gtx)
			if !ok {
				break
			}
			if s, ok := evt.(widget.SubmitEvent); ok {
				r.isEditing = false
				*eventOut = UIEvent{Action: ActionNavigate, Path: strings.TrimSpace(s.Text)}
				gtx.Execute(key.FocusCmd{Tag: keyTag})
			}
		}
		for {
			e, ok := gtx.Event(key.Filter{Focus: &r.pathEditor, Name: key.NameEscape})
			if !ok {
				break
			}
			if k, ok := e.(key.Event); ok && k.State == key.Press {
				r.isEditing = false
				gtx.Execute(key.FocusCmd{Tag: keyTag})
			}
		}
		ed := material.Editor(r.Theme, &r.pathEditor, "Folder path")
		ed.Color = colText
		return ed.Layout(gtx)
	}

	if r.pathClick.Clicked(gtx) {
		r.BeginEditPath(state.CurrentPath)
		gtx.Execute(key.FocusCmd{Tag: &r.pathEditor})
	}

	segments := parseBreadcrumbSegments(state.CurrentPath, r.tree.Separator())
	if len(r.crumbClicks) < len(segments) {
		r.crumbClicks = make([]widget.Clickable, len(segments))
	}

	children := make([]layout.FlexChild, 0, 2*len(segments)+1)
	for i := range segments {
		seg := segments[i]
		btn := &r.crumbClicks[i]
		if btn.Clicked(gtx) {
			*eventOut = UIEvent{Action: ActionNavigate, Path: seg.Path}
		}
		if i > 0 {
			children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				lbl := material.Body2(r.Theme, "›")
				lbl.Color = colGray
				return layout.Inset{Left: unit.Dp(2), Right: unit.Dp(2)}.Layout(gtx, lbl.Layout)
			}))
		}
		children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return material.Clickable(gtx, btn, func(gtx layout.Context) layout.Dimensions {
				return layout.UniformInset(unit.Dp(4)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					lbl := material.Body1(r.Theme, seg.Name)
					lbl.Color = colDirBlue
					lbl.MaxLines = 1
					return lbl.Layout(gtx)
				})
			})
		}))
	}
	// Clicking the empty part of the bar starts editing.
	children = append(children, layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
		return material.Clickable(gtx, &r.pathClick, func(gtx layout.Context) layout.Dimensions {
			return layout.Dimensions{Size: image.Pt(gtx.Constraints.Max.X, gtx.Dp(28))}
		})
	}))

	return widget.Border{Color: colLightGray, Width: unit.Dp(1), CornerRadius: unit.Dp(4)}.Layout(gtx,
		func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx, children...)
		})
}

func (r *Renderer) navButton(gtx layout.Context, btn *widget.Clickable, label string, enabled bool, action func(), keyTag *layout.List) layout.Dimensions {
	if enabled && btn.Clicked(gtx) {
		action()
		gtx.Execute(key.FocusCmd{Tag: keyTag})
	}
	b := material.Button(r.Theme, btn, label)
	b.Inset = layout.UniformInset(unit.Dp(8))
	if !enabled {
		b.Background, b.Color = colLightGray, colDisabled
	}
	return b.Layout(gtx)
}

// layoutRecent shows recently visited folders as a row of links.
func (r *Renderer) layoutRecent(gtx layout.Context, state *State, eventOut *UIEvent) layout.Dimensions {
	if len(state.Recent) == 0 {
		return layout.Dimensions{}
	}
	sep := r.tree.Separator()

	children := []layout.FlexChild{
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			lbl := material.Caption(r.Theme, "Recent:")
			lbl.Color = colGray
			return layout.Inset{Right: unit.Dp(6)}.Layout(gtx, lbl.Layout)
		}),
	}
	for i := range state.Recent {
		item := &state.Recent[i]
		if item.Clickable.Clicked(gtx) {
			*eventOut = UIEvent{Action: ActionNavigate, Path: item.Path}
		}
		children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return material.Clickable(gtx, &item.Clickable, func(gtx layout.Context) layout.Dimensions {
				return layout.Inset{Left: unit.Dp(6), Right: unit.Dp(6), Top: unit.Dp(2), Bottom: unit.Dp(2)}.Layout(gtx,
					func(gtx layout.Context) layout.Dimensions {
						lbl := material.Caption(r.Theme, truncatePathMiddle(item.Path, sep, 32))
						lbl.Color = colAccent
						lbl.MaxLines = 1
						return lbl.Layout(gtx)
					})
			})
		}))
	}

	return layout.Inset{Left: unit.Dp(8), Right: unit.Dp(8), Bottom: unit.Dp(4)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx, children...)
	})
}

func (r *Renderer) layoutConfigErrorBanner(gtx layout.Context, state *State) layout.Dimensions {
	if state.ConfigError == "" {
		return layout.Dimensions{}
	}
	return layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			paint.FillShape(gtx.Ops, colDanger, clip.Rect{Max: gtx.Constraints.Min}.Op())
			return layout.Dimensions{Size: gtx.Constraints.Min}
		}),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min.X = gtx.Constraints.Max.X
			return layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				lbl := material.Body2(r.Theme, "Config error (using defaults): "+state.ConfigError)
				lbl.Color = colWhite
				return lbl.Layout(gtx)
			})
		}),
	)
}

func (r *Renderer) layoutStatusBar(gtx layout.Context, state *State) layout.Dimensions {
	return layout.Inset{Top: unit.Dp(4), Bottom: unit.Dp(4), Left: unit.Dp(12), Right: unit.Dp(12)}.Layout(gtx,
		func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					lbl := material.Caption(r.Theme, state.Status)
					lbl.Color = colGray
					lbl.MaxLines = 1
					return lbl.Layout(gtx)
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					lbl := material.Caption(r.Theme, fileCount(len(state.Files)))
					lbl.Color = colGray
					lbl.Alignment = text.End
					return lbl.Layout(gtx)
				}),
			)
		})
}

func fileCount(n int) string {
	if n == 1 {
		return "1 file"
	}
	return humanize.Comma(int64(n)) + " files"
}
