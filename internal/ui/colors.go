package ui

import "image/color"

// Theme colors - these are variables so they can be modified for dark mode
var (
	colWhite     = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colBlack     = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	colGray      = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	colLightGray = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
	colDirBlue   = color.NRGBA{R: 0, G: 0, B: 128, A: 255}
	colSelected  = color.NRGBA{R: 200, G: 220, B: 255, A: 255}
	colSidebar   = color.NRGBA{R: 245, G: 245, B: 245, A: 255}
	colDisabled  = color.NRGBA{R: 150, G: 150, B: 150, A: 255}
	colDanger    = color.NRGBA{R: 220, G: 53, B: 69, A: 255}
	colAccent    = color.NRGBA{R: 66, G: 133, B: 244, A: 255}
	colDivider   = color.NRGBA{A: 50}
	colBg        = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colText      = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	colWarning   = color.NRGBA{R: 230, G: 170, B: 40, A: 255}
	colToast     = color.NRGBA{R: 60, G: 60, B: 60, A: 240}
	colToastText = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

type palette struct {
	bg, text, gray, dir, selected, sidebar, disabled, divider color.NRGBA
	toast, toastText                                         color.NRGBA
}

var (
	lightPalette = palette{
		bg:        colWhite,
		text:      colBlack,
		gray:      color.NRGBA{R: 100, G: 100, B: 100, A: 255},
		dir:       color.NRGBA{R: 0, G: 0, B: 128, A: 255},
		selected:  color.NRGBA{R: 200, G: 220, B: 255, A: 255},
		sidebar:   color.NRGBA{R: 245, G: 245, B: 245, A: 255},
		disabled:  color.NRGBA{R: 150, G: 150, B: 150, A: 255},
		divider:   color.NRGBA{A: 50},
		toast:     color.NRGBA{R: 60, G: 60, B: 60, A: 240},
		toastText: colWhite,
	}
	darkPalette = palette{
		bg:        color.NRGBA{R: 30, G: 30, B: 30, A: 255},
		text:      color.NRGBA{R: 230, G: 230, B: 230, A: 255},
		gray:      color.NRGBA{R: 160, G: 160, B: 160, A: 255},
		dir:       color.NRGBA{R: 140, G: 180, B: 255, A: 255},
		selected:  color.NRGBA{R: 50, G: 70, B: 110, A: 255},
		sidebar:   color.NRGBA{R: 40, G: 40, B: 40, A: 255},
		disabled:  color.NRGBA{R: 90, G: 90, B: 90, A: 255},
		divider:   color.NRGBA{R: 255, G: 255, B: 255, A: 40},
		toast:     color.NRGBA{R: 220, G: 220, B: 220, A: 240},
		toastText: colBlack,
	}
)

func applyPalette(p palette) {
	colBg, colText, colGray = p.bg, p.text, p.gray
	colDirBlue, colSelected, colSidebar = p.dir, p.selected, p.sidebar
	colDisabled, colDivider = p.disabled, p.divider
	colToast, colToastText = p.toast, p.toastText
}
