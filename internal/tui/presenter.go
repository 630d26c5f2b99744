package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/jmylchreest/toasty/internal/layout"
	"github.com/jmylchreest/toasty/internal/model"
	"github.com/jmylchreest/toasty/internal/toast"
)

// Terminal cell metrics used to map the pixel geometry onto the grid.
const (
	cellWidth  = 8.0
	lineHeight = 16.0
)

// leavingFade is how far a dismissing toast is blended toward black.
const leavingFade = 0.5

type phase int

const (
	phaseHidden phase = iota
	phaseVisible
	phaseLeaving
)

// Presenter draws the visible toast into the terminal. It implements
// toast.Presenter and is driven from Update.
type Presenter struct {
	clock     toast.Clock
	animation time.Duration
	measurer  layout.CellMeasurer

	req   *model.Request
	sink  toast.Sink
	phase phase
}

var _ toast.Presenter = (*Presenter)(nil)

// NewPresenter creates a terminal presenter. A positive animation keeps a
// dismissed toast on screen, faded, for that long.
func NewPresenter(clock toast.Clock, animation time.Duration) *Presenter {
	return &Presenter{
		clock:     clock,
		animation: animation,
		measurer:  layout.CellMeasurer{CellWidth: cellWidth, LineHeight: lineHeight},
	}
}

// Present implements toast.Presenter.
func (p *Presenter) Present(req *model.Request, sink toast.Sink) {
	p.req = req
	p.sink = sink
	p.phase = phaseVisible
}

// Teardown implements toast.Presenter.
func (p *Presenter) Teardown(animated bool) {
	if p.req == nil || p.phase == phaseLeaving {
		return
	}
	if animated && p.animation > 0 && p.clock != nil {
		p.phase = phaseLeaving
		p.clock.AfterFunc(p.animation, p.finish)
		return
	}
	p.finish()
}

func (p *Presenter) finish() {
	sink := p.sink
	p.req = nil
	p.sink = nil
	p.phase = phaseHidden
	if sink != nil {
		sink.TeardownComplete()
	}
}

// Trigger forwards a gesture to the visible toast. It reports whether a
// toast was there to receive it.
func (p *Presenter) Trigger(ev model.Event) bool {
	if p.phase != phaseVisible {
		return false
	}
	p.sink.Trigger(ev)
	return true
}

// Visible returns the request on screen, or nil.
func (p *Presenter) Visible() *model.Request {
	return p.req
}

// Leaving reports whether the visible toast is being dismissed.
func (p *Presenter) Leaving() bool {
	return p.phase == phaseLeaving
}

// Geometry resolves the visible toast on a terminal cols cells wide.
func (p *Presenter) Geometry(cols int) layout.Geometry {
	return layout.Resolve(p.req, float64(cols)*cellWidth, p.measurer)
}

// Render draws the visible toast for a terminal cols cells wide. It
// returns "" when nothing is shown.
func (p *Presenter) Render(cols int) string {
	if p.req == nil {
		return ""
	}

	g := p.Geometry(cols)
	style := g.Style
	bg, fg, tint := style.Background, style.Text, style.Tint
	if p.phase == phaseLeaving {
		bg, fg, tint = fade(bg, leavingFade), fade(fg, leavingFade), fade(tint, leavingFade)
	}

	base := lipgloss.NewStyle().
		Background(lipgloss.Color(bg)).
		Foreground(lipgloss.Color(fg))

	width := max(int(g.Width/cellWidth), 4)
	textCols := max(int(g.TextWidth/cellWidth), 1)

	// Other slots take one cell plus a separator each.
	avail := width - 2
	for _, el := range g.Elements {
		if el != layout.ElementMessage {
			avail -= 2
		}
	}
	textCols = max(min(textCols, avail), 1)

	lines := layout.Wrap(p.req.Message, textCols)
	rows := max(int(g.Height/lineHeight), len(lines))

	parts := make([]string, 0, len(g.Elements)*2)
	for i, el := range g.Elements {
		if i > 0 {
			parts = append(parts, base.Render(" "))
		}
		switch el {
		case layout.ElementIcon:
			parts = append(parts, base.Foreground(lipgloss.Color(tint)).Render(glyph(g.Icon)))
		case layout.ElementMessage:
			parts = append(parts, base.
				Width(textCols).
				Align(textAlign(style.TextAlignment)).
				Render(strings.Join(lines, "\n")))
		case layout.ElementClose:
			parts = append(parts, base.Foreground(lipgloss.Color(tint)).Bold(true).Render(glyph(model.IconClose)))
		}
	}

	return base.
		Width(width).
		Height(rows).
		Padding(0, 1).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
}

// glyph returns the terminal stand-in for an icon name.
func glyph(icon string) string {
	switch icon {
	case model.IconSuccess:
		return "✓"
	case model.IconError:
		return "✗"
	case model.IconWarning:
		return "!"
	case model.IconInfo:
		return "i"
	case model.IconClose:
		return "✕"
	default:
		return "•"
	}
}

func textAlign(a model.TextAlignment) lipgloss.Position {
	switch a {
	case model.TextAlignCenter:
		return lipgloss.Center
	case model.TextAlignRight:
		return lipgloss.Right
	default:
		return lipgloss.Left
	}
}

// fade blends a hex color toward black by amount. Unparseable colors are
// returned unchanged.
func fade(hex string, amount float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	return c.BlendLab(colorful.Color{}, amount).Clamped().Hex()
}
