package widgets

import (
	"image/color"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
)

type LabelStyle struct {
	material.LabelStyle
	Direction layout.Direction
	direction bool
}

func Label(size unit.Sp, txt string) LabelStyle {
	return LabelStyle{LabelStyle: material.Label(Theme, size, txt)}
}

func (l LabelStyle) Bold() LabelStyle {
	l.LabelStyle.Font.Weight = font.Bold
	return l
}

func (l LabelStyle) Colored(c color.NRGBA) LabelStyle {
	l.LabelStyle.Color = c
	return l
}

func (l LabelStyle) Centered() LabelStyle {
	l.LabelStyle.Alignment = text.Middle
	return l.SetDirection(layout.Center)
}

func (l LabelStyle) SetDirection(d layout.Direction) LabelStyle {
	l.Direction = d
	l.direction = true
	return l
}

func (l LabelStyle) Layout(gtx layout.Context) layout.Dimensions {
	if l.direction {
		return l.Direction.Layout(gtx, l.LabelStyle.Layout)
	}
	return l.LabelStyle.Layout(gtx)
}
