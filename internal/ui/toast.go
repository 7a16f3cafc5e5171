package ui

import (
	"image"
	"image/color"
	"time"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
)

// ToastType is the severity of a toast.
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastWarning
	ToastError
)

const toastDuration = 4 * time.Second

type toast struct {
	msg   string
	kind  ToastType
	until time.Time
}

// ShowToast shows message above the status bar for a few seconds. A newer
// toast replaces the current one. Safe to call from any goroutine.
func (r *Renderer) ShowToast(message string, kind ToastType) {
	r.mu.Lock()
	r.toast = toast{msg: message, kind: kind, until: time.Now().Add(toastDuration)}
	r.mu.Unlock()
	r.invalidate()
}

// ShowError shows message as an error toast.
func (r *Renderer) ShowError(message string) {
	r.ShowToast(message, ToastError)
}

func (r *Renderer) currentToast(now time.Time) (toast, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.toast.msg == "" || !now.Before(r.toast.until) {
		return toast{}, false
	}
	return r.toast, true
}

func toastColors(kind ToastType) (bg, fg color.NRGBA) {
	switch kind {
	case ToastError:
		return colDanger, colWhite
	case ToastWarning:
		return colWarning, colBlack
	}
	return colToast, colToastText
}

func (r *Renderer) layoutToast(gtx layout.Context) layout.Dimensions {
	t, ok := r.currentToast(gtx.Now)
	if !ok {
		return layout.Dimensions{}
	}
	// Repaint once more when it expires.
	gtx.Execute(op.InvalidateCmd{At: t.until})
	bg, fg := toastColors(t.kind)

	return layout.Inset{Bottom: unit.Dp(36), Left: unit.Dp(20), Right: unit.Dp(20)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.S.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Max.X = min(gtx.Constraints.Max.X, gtx.Dp(500))
			return layout.Background{}.Layout(gtx,
				func(gtx layout.Context) layout.Dimensions {
					rect := image.Rectangle{Max: gtx.Constraints.Min}
					defer clip.UniformRRect(rect, gtx.Dp(6)).Push(gtx.Ops).Pop()
					paint.Fill(gtx.Ops, bg)
					return layout.Dimensions{Size: rect.Max}
				},
				func(gtx layout.Context) layout.Dimensions {
					inset := layout.Inset{Top: unit.Dp(10), Bottom: unit.Dp(10), Left: unit.Dp(16), Right: unit.Dp(16)}
					return inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						lbl := material.Body1(r.Theme, t.msg)
						lbl.Color = fg
						return lbl.Layout(gtx)
					})
				})
		})
	})
}
