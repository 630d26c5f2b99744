package layout

import (
	"math"

	"github.com/jmylchreest/toasty/internal/model"
)

// Sizing constants for the toast surface.
const (
	// TextInset is the horizontal space reserved around the message.
	TextInset = 40.0
	// VerticalPadding is added to the measured text height.
	VerticalPadding = 12.0
	// MinHeight is the smallest toast height.
	MinHeight = 40.0
)

// ElementType identifies a slot in the toast row.
type ElementType string

const (
	ElementIcon    ElementType = "icon"
	ElementMessage ElementType = "message"
	ElementClose   ElementType = "close"
)

// Geometry is the resolved layout of one toast.
type Geometry struct {
	Width     float64
	Height    float64
	TextWidth float64

	Anchor model.Location

	// Elements lists the row slots from left to right.
	Elements []ElementType
	// Icon is the icon shown in the icon slot, empty when there is none.
	Icon       string
	ShowCancel bool

	Style model.Style
}

// Has reports whether the row contains slot e.
func (g Geometry) Has(e ElementType) bool {
	for _, el := range g.Elements {
		if el == e {
			return true
		}
	}
	return false
}

// Resolve computes the geometry of req on a screen screenWidth wide.
// A screen-relative width falls back to the default width when the screen
// width is unknown.
func Resolve(req *model.Request, screenWidth float64, m Measurer) Geometry {
	style := req.Style()

	width := style.Width.Resolve(screenWidth)
	if !(width > 0) || math.IsInf(width, 0) {
		width = model.DefaultWidth
	}
	if screenWidth > 0 && width > screenWidth {
		width = screenWidth
	}

	textWidth := math.Max(width-TextInset, 1)
	height := MinHeight
	if m != nil {
		height = math.Max(m.TextHeight(req.Message, style.Font, textWidth)+VerticalPadding, MinHeight)
	}

	g := Geometry{
		Width:      width,
		Height:     height,
		TextWidth:  textWidth,
		Anchor:     req.Location,
		ShowCancel: req.ShowsCancelControl(),
		Style:      style,
		Icon:       style.Icon,
	}

	// The close icon doubles as the cancel control.
	if g.ShowCancel && g.Icon == model.IconClose {
		g.Icon = ""
	}

	if g.Icon != "" && style.IconAlignment == model.IconLeft {
		g.Elements = append(g.Elements, ElementIcon)
	}
	g.Elements = append(g.Elements, ElementMessage)
	if g.Icon != "" && style.IconAlignment == model.IconRight {
		g.Elements = append(g.Elements, ElementIcon)
	}
	if g.ShowCancel {
		g.Elements = append(g.Elements, ElementClose)
	}

	return g
}
