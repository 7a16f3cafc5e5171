package ui

import (
	"gioui.org/font"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/justyntemme/foldernav/internal/tree"
)

const treeIndent = unit.Dp(16)

// layoutTree renders the visible folder rows. Clicking a row navigates to
// it; clicking the chevron expands or collapses it.
func (r *Renderer) layoutTree(gtx layout.Context, rows []tree.Row, eventOut *UIEvent) layout.Dimensions {
	if len(rows) == 0 {
		return layout.Inset{Top: unit.Dp(16), Left: unit.Dp(8), Right: unit.Dp(8)}.Layout(gtx,
			func(gtx layout.Context) layout.Dimensions {
				lbl := material.Body2(r.Theme, "No drives found.")
				lbl.Color = colGray
				return lbl.Layout(gtx)
			})
	}

	selected := r.Selected()
	return layout.Inset{Top: unit.Dp(4)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		defer pointer.PassOp{}.Push(gtx.Ops).Pop()
		return r.treeList.Layout(gtx, len(rows), func(gtx layout.Context, i int) layout.Dimensions {
			row := rows[i]
			w := r.rowWidgets(row.Node)

			if w.chevron.Clicked(gtx) {
				*eventOut = UIEvent{Action: ActionToggleExpand, Node: row.Node}
			}
			if w.row.Clicked(gtx) {
				*eventOut = UIEvent{Action: ActionNavigate, Path: row.Path}
			}
			return r.renderTreeRow(gtx, row, w, row.Node == selected)
		})
	})
}

func (r *Renderer) renderTreeRow(gtx layout.Context, row tree.Row, w *treeRowWidgets, selected bool) layout.Dimensions {
	return material.Clickable(gtx, &w.row, func(gtx layout.Context) layout.Dimensions {
		return layout.Stack{}.Layout(gtx,
			layout.Expanded(func(gtx layout.Context) layout.Dimensions {
				if selected {
					paint.FillShape(gtx.Ops, colSelected, clip.Rect{Max: gtx.Constraints.Min}.Op())
				}
				return layout.Dimensions{Size: gtx.Constraints.Min}
			}),
			layout.Stacked(func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints.Min.X = gtx.Constraints.Max.X
				inset := layout.Inset{
					Top: unit.Dp(4), Bottom: unit.Dp(4),
					Left: unit.Dp(4) + treeIndent*unit.Dp(row.Depth), Right: unit.Dp(8),
				}
				return inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							return r.renderChevron(gtx, row, w)
						}),
						layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
						layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
							lbl := material.Body2(r.Theme, row.Name)
							lbl.Color = colDirBlue
							lbl.MaxLines = 1
							if selected {
								lbl.Font.Weight = font.Bold
							}
							return lbl.Layout(gtx)
						}),
					)
				})
			}),
		)
	})
}

// renderChevron draws the expand affordance. Empty folders get a blank
// placeholder of the same width so names line up.
func (r *Renderer) renderChevron(gtx layout.Context, row tree.Row, w *treeRowWidgets) layout.Dimensions {
	size := gtx.Dp(treeIndent)
	gtx.Constraints.Min.X, gtx.Constraints.Max.X = size, size
	if !row.Expandable {
		return layout.Dimensions{Size: gtx.Constraints.Min}
	}

	glyph := "▸"
	if row.Expanded {
		glyph = "▾"
	}
	return material.Clickable(gtx, &w.chevron, func(gtx layout.Context) layout.Dimensions {
		lbl := material.Body2(r.Theme, glyph)
		lbl.Color = colGray
		return layout.Center.Layout(gtx, lbl.Layout)
	})
}

// scrollTreeTo scrolls the tree pane so row i is visible.
func (r *Renderer) scrollTreeTo(i int) {
	first, count := r.treeList.Position.First, r.treeList.Position.Count
	if count > 0 && i >= first && i < first+count {
		return
	}
	r.treeList.ScrollTo(i)
}
