package widgets

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
)

// Box draws an optional border and fill behind its content, sized to the
// content plus Inset.
type Box struct {
	Radius                       int
	Thickness                    float32
	Inset                        layout.Inset
	BorderColor, BackgroundColor color.NRGBA
	Border, Background           bool
}

func NewBox() Box {
	return Box{
		Thickness:       2,
		Inset:           layout.UniformInset(unit.Dp(12)),
		BorderColor:     Theme.ContrastBg,
		BackgroundColor: Theme.Bg,
		Border:          true,
	}
}

// Badge is a filled, rounded Box in c.
func Badge(c color.NRGBA) Box {
	b := NewBox()
	b.Radius = 8
	b.Border = false
	b.Background = true
	b.BackgroundColor = c
	return b
}

func (b Box) Layout(gtx layout.Context, w layout.Widget) layout.Dimensions {
	b.Thickness = max(b.Thickness, 1)

	macro := op.Record(gtx.Ops)
	inner := gtx
	inner.Constraints.Min = image.Point{}
	dims := b.Inset.Layout(inner, w)
	call := macro.Stop()

	shape := clip.RRect{
		SE: b.Radius, SW: b.Radius,
		NW: b.Radius, NE: b.Radius,
		Rect: image.Rectangle{Max: dims.Size},
	}
	if b.Background {
		paint.FillShape(gtx.Ops, b.BackgroundColor, shape.Op(gtx.Ops))
	}
	if b.Border {
		paint.FillShape(gtx.Ops, b.BorderColor, clip.Stroke{
			Path:  shape.Path(gtx.Ops),
			Width: b.Thickness,
		}.Op())
	}
	call.Add(gtx.Ops)
	return dims
}
