package display

import (
	"math"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/toasty/internal/layout"
	"github.com/jmylchreest/toasty/internal/model"
)

// minSwipeVelocity is the upward speed, in pixels per second, a drag must
// reach to count as a swipe.
const minSwipeVelocity = 300.0

// frame is the popup placement at one point of a slide.
type frame struct {
	Edge    int // margin from the anchored edge
	Start   int // extra space before the content
	End     int // extra space after the content
	Opacity float64
}

// slideFrame returns the placement at progress, where 0 is fully hidden
// and 1 is settled. Vertical slides move the popup past its anchored
// edge; horizontal slides push the content sideways.
func slideFrame(dir model.Direction, offsetY int, distance, opacity, progress float64) frame {
	progress = math.Min(math.Max(progress, 0), 1)
	hidden := int(math.Round((1 - progress) * distance))

	f := frame{Edge: offsetY, Opacity: opacity * progress}
	switch dir {
	case model.DirectionLeft:
		f.End = hidden
	case model.DirectionRight:
		f.Start = hidden
	default:
		f.Edge = offsetY - hidden
	}
	return f
}

// slideDistance is how far a popup travels for dir.
func slideDistance(dir model.Direction, g layout.Geometry, offsetY int) float64 {
	if dir == model.DirectionVertical {
		return g.Height + float64(offsetY)
	}
	return g.Width
}

// usableWidth is the screen width left once offsetX is kept clear on both
// sides. Unknown screens stay unknown.
func usableWidth(screenWidth float64, offsetX int) float64 {
	if screenWidth <= 0 {
		return 0
	}
	return math.Max(screenWidth-2*float64(offsetX), 1)
}

func anchorEdge(loc model.Location) layershell.LayerShellEdge {
	if loc == model.LocationTop {
		return layershell.LayerShellEdgeTop
	}
	return layershell.LayerShellEdgeBottom
}

// isSwipeUp reports whether a drag ending at velocity (vx, vy) is an
// upward swipe. GTK velocities grow downwards.
func isSwipeUp(vx, vy float64) bool {
	return vy < -minSwipeVelocity && math.Abs(vy) > math.Abs(vx)
}

// isScrollUp reports whether a scroll delta points upwards.
func isScrollUp(dx, dy float64) bool {
	return dy < 0 && math.Abs(dy) > math.Abs(dx)
}

// labelAlignment returns the justification and x alignment for a.
func labelAlignment(a model.TextAlignment) (gtk.Justification, float32) {
	switch a {
	case model.TextAlignCenter:
		return gtk.JustifyCenter, 0.5
	case model.TextAlignRight:
		return gtk.JustifyRight, 1
	case model.TextAlignJustify:
		return gtk.JustifyFill, 0
	default:
		return gtk.JustifyLeft, 0
	}
}
