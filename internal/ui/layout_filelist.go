package ui

import (
	"image/color"
	"strings"
	"time"

	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/justyntemme/foldernav/internal/files"
)

const doubleClickInterval = 500 * time.Millisecond

func (r *Renderer) renderColumns(gtx layout.Context) layout.Dimensions {
	header := func(label string, align text.Alignment) layout.Widget {
		return func(gtx layout.Context) layout.Dimensions {
			lbl := material.Body2(r.Theme, label)
			lbl.Color = colGray
			lbl.Alignment = align
			return lbl.Layout(gtx)
		}
	}
	return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceBetween}.Layout(gtx,
		layout.Flexed(0.5, header("Name", text.Start)),
		layout.Flexed(0.25, header("Date Modified", text.Start)),
		layout.Flexed(0.15, header("Type", text.Start)),
		layout.Flexed(0.10, header("Size", text.End)),
	)
}

func (r *Renderer) layoutFileList(gtx layout.Context, state *State, keyTag *layout.List, eventOut *UIEvent) layout.Dimensions {
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Inset{Top: unit.Dp(4), Bottom: unit.Dp(4), Left: unit.Dp(12), Right: unit.Dp(12)}.Layout(gtx, r.renderColumns)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return widget.Border{Color: colDivider, Width: unit.Dp(1)}.Layout(gtx,
				func(gtx layout.Context) layout.Dimensions {
					return layout.Spacer{Height: unit.Dp(1), Width: unit.Dp(1)}.Layout(gtx)
				})
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			if len(state.Files) == 0 {
				return layout.UniformInset(unit.Dp(16)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					msg := "This folder has no files."
					if state.CurrentPath == "" {
						msg = "Enter a path or pick a folder."
					}
					lbl := material.Body2(r.Theme, msg)
					lbl.Color = colGray
					return lbl.Layout(gtx)
				})
			}

			return r.fileList.Layout(gtx, len(state.Files), func(gtx layout.Context, i int) layout.Dimensions {
				item := &state.Files[i]
				if item.Clickable.Clicked(gtx) {
					*eventOut = UIEvent{Action: ActionSelectFile, NewIndex: i}
					gtx.Execute(key.FocusCmd{Tag: keyTag})
					if now := gtx.Now; !item.LastClick.IsZero() && now.Sub(item.LastClick) < doubleClickInterval {
						*eventOut = UIEvent{Action: ActionOpen, Path: item.Path}
					}
					item.LastClick = gtx.Now
				}
				return r.renderFileRow(gtx, item, i == state.SelectedIndex)
			})
		}),
	)
}

func (r *Renderer) renderFileRow(gtx layout.Context, item *FileRow, selected bool) layout.Dimensions {
	return material.Clickable(gtx, &item.Clickable, func(gtx layout.Context) layout.Dimensions {
		return layout.Stack{}.Layout(gtx,
			layout.Expanded(func(gtx layout.Context) layout.Dimensions {
				if selected {
					paint.FillShape(gtx.Ops, colSelected, clip.Rect{Max: gtx.Constraints.Min}.Op())
				}
				return layout.Dimensions{}
			}),
			layout.Stacked(func(gtx layout.Context) layout.Dimensions {
				cell := func(s string, align text.Alignment, c color.NRGBA) layout.Widget {
					return func(gtx layout.Context) layout.Dimensions {
						lbl := material.Body2(r.Theme, s)
						lbl.Color = c
						lbl.Alignment = align
						lbl.MaxLines = 1
						return lbl.Layout(gtx)
					}
				}
				name := files.IconGlyph(item.IconKey) + "  " + item.Name

				return layout.Inset{
					Top: unit.Dp(6), Bottom: unit.Dp(6), Left: unit.Dp(12), Right: unit.Dp(12),
				}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceBetween, Alignment: layout.Middle}.Layout(gtx,
						layout.Flexed(0.5, cell(name, text.Start, colText)),
						layout.Flexed(0.25, cell(files.FormatModTime(item.ModTime, gtx.Now), text.Start, colGray)),
						layout.Flexed(0.15, cell(fileType(item.Ext), text.Start, colGray)),
						layout.Flexed(0.10, cell(files.FormatSize(item.Size), text.End, colGray)),
					)
				})
			}),
		)
	})
}

// fileType describes a file by extension: ".pdf" becomes "PDF File".
func fileType(ext string) string {
	if len(ext) > 1 {
		return strings.ToUpper(ext[1:]) + " File"
	}
	return "File"
}
