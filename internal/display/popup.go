package display

import (
	"log/slog"
	"path/filepath"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/toasty/internal/layout"
	"github.com/jmylchreest/toasty/internal/model"
	"github.com/jmylchreest/toasty/internal/theme"
	"github.com/jmylchreest/toasty/internal/toast"
)

const (
	iconPixelSize = 20
	rowSpacing    = 8
	namespace     = "toasty"
)

// popup is the window of one presented request.
type popup struct {
	req    *model.Request
	sink   toast.Sink
	logger *slog.Logger

	window   *gtk.Window
	box      *gtk.Box
	label    *gtk.Label
	icon     *gtk.Image
	closeBtn *gtk.Button

	geom layout.Geometry
	anim *adw.TimedAnimation

	// closing is set once teardown starts; done once the sink has heard
	// about it.
	closing bool
	done    bool
}

// newPopup creates the window and the message label. The label is rooted
// immediately so theme CSS applies when it is measured.
func newPopup(app *gtk.Application, req *model.Request, sink toast.Sink, logger *slog.Logger) *popup {
	p := &popup{
		req:    req,
		sink:   sink,
		logger: logger,
	}

	p.window = gtk.NewWindow()
	if app != nil {
		p.window.SetApplication(app)
	}
	p.window.SetDecorated(false)
	p.window.SetResizable(false)
	p.window.AddCSSClass(theme.ClassWindow)

	layershell.InitForWindow(p.window)
	layershell.SetLayer(p.window, layershell.LayerShellLayerTop)
	layershell.SetExclusiveZone(p.window, 0) // Don't reserve space
	layershell.SetKeyboardMode(p.window, layershell.LayerShellKeyboardModeNone)
	layershell.SetNamespace(p.window, namespace)

	p.box = gtk.NewBox(gtk.OrientationHorizontal, rowSpacing)
	for _, class := range theme.Classes(req) {
		p.box.AddCSSClass(class)
	}

	style := req.Style()
	justify, xalign := labelAlignment(style.TextAlignment)
	p.label = gtk.NewLabel(req.Message)
	p.label.AddCSSClass(theme.ClassMessage)
	p.label.SetWrap(true)
	p.label.SetWrapMode(2) // PANGO_WRAP_WORD_CHAR
	p.label.SetJustify(justify)
	p.label.SetXAlign(xalign)
	p.label.SetHExpand(true)

	p.box.Append(p.label)
	p.window.SetChild(p.box)
	return p
}

// measurer measures the message with the label's own font.
func (p *popup) measurer() layout.Measurer {
	return layout.MeasurerFunc(func(_ string, _ model.Font, width float64) float64 {
		_, natural, _, _ := p.label.Measure(gtk.OrientationVertical, int(width))
		return float64(natural)
	})
}

// arrange adds the icon and close slots around the label and sizes the
// window for g.
func (p *popup) arrange(g layout.Geometry) {
	p.geom = g

	p.label.SetSizeRequest(int(g.TextWidth), -1)
	p.box.SetSizeRequest(int(g.Width), int(g.Height))
	p.window.SetDefaultSize(int(g.Width), -1)

	beforeLabel := true
	for _, el := range g.Elements {
		switch el {
		case layout.ElementMessage:
			beforeLabel = false
		case layout.ElementIcon:
			p.icon = newIcon(g.Icon)
			if beforeLabel {
				p.box.Prepend(p.icon)
			} else {
				p.box.Append(p.icon)
			}
		case layout.ElementClose:
			p.closeBtn = gtk.NewButtonFromIconName(model.IconClose)
			p.closeBtn.AddCSSClass(theme.ClassClose)
			p.closeBtn.SetHasFrame(false)
			p.box.Append(p.closeBtn)
		}
	}

	edge := anchorEdge(g.Anchor)
	for _, e := range []layershell.LayerShellEdge{
		layershell.LayerShellEdgeTop,
		layershell.LayerShellEdgeBottom,
		layershell.LayerShellEdgeLeft,
		layershell.LayerShellEdgeRight,
	} {
		layershell.SetAnchor(p.window, e, e == edge)
	}
}

func newIcon(icon string) *gtk.Image {
	img := gtk.NewImage()
	img.AddCSSClass(theme.ClassIcon)
	img.SetPixelSize(iconPixelSize)
	if filepath.IsAbs(icon) {
		img.SetFromFile(icon)
	} else {
		img.SetFromIconName(icon)
	}
	return img
}

// connectSignals routes gestures to the sink. onClick handles mouse
// buttons, which may act on the queue rather than the toast.
func (p *popup) connectSignals(onClick func(button uint)) {
	if p.closeBtn != nil {
		p.closeBtn.ConnectClicked(func() {
			p.sink.Trigger(model.EventCancelButton)
		})
	}

	clickCtrl := gtk.NewGestureClick()
	clickCtrl.SetButton(0) // All buttons
	clickCtrl.ConnectReleased(func(nPress int, x, y float64) {
		onClick(clickCtrl.CurrentButton())
	})
	p.window.AddController(clickCtrl)

	swipeCtrl := gtk.NewGestureSwipe()
	swipeCtrl.SetTouchOnly(false)
	swipeCtrl.ConnectSwipe(func(velocityX, velocityY float64) {
		if isSwipeUp(velocityX, velocityY) {
			p.sink.Trigger(model.EventSwipeUp)
		}
	})
	p.window.AddController(swipeCtrl)

	// Touchpads report two-finger swipes as scrolling.
	scrollCtrl := gtk.NewEventControllerScroll(gtk.EventControllerScrollVertical)
	scrollCtrl.ConnectScroll(func(dx, dy float64) bool {
		if isScrollUp(dx, dy) {
			p.sink.Trigger(model.EventSwipeUp)
			return true
		}
		return false
	})
	p.window.AddController(scrollCtrl)
}

// apply moves the popup to f.
func (p *popup) apply(f frame) {
	layershell.SetMargin(p.window, anchorEdge(p.geom.Anchor), f.Edge)
	p.box.SetMarginStart(f.Start)
	p.box.SetMarginEnd(f.End)
	p.window.SetOpacity(f.Opacity)
}

// stopAnimation jumps a running animation to its end.
func (p *popup) stopAnimation() {
	if p.anim != nil {
		p.anim.Skip()
		p.anim = nil
	}
}
