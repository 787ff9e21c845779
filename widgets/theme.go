package widgets

import (
	"image/color"

	"gioui.org/widget/material"
)

var (
	ColorWhite = color.NRGBA{0xFF, 0xFF, 0xFF, 0xFF}
	ColorBlack = color.NRGBA{0x00, 0x00, 0x00, 0xFF}
	ColorCoral = color.NRGBA{0xA6, 0x62, 0x61, 0xFF}
	ColorGreen = color.NRGBA{0x2E, 0x8B, 0x57, 0xFF}
	ColorAmber = color.NRGBA{0xE0, 0x9F, 0x1F, 0xFF}
)

var Theme = newTheme()

func newTheme() *material.Theme {
	th := material.NewTheme()
	th.Fg = ColorCoral
	th.Bg = ColorWhite
	th.ContrastFg = ColorWhite
	th.ContrastBg = ColorCoral
	return th
}
