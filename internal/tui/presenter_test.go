package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/toasty/internal/model"
)

// recordingSink counts what the presenter reports.
type recordingSink struct {
	events    []model.Event
	completed int
}

func (s *recordingSink) Trigger(ev model.Event) { s.events = append(s.events, ev) }
func (s *recordingSink) TeardownComplete()      { s.completed++ }

func TestPresenter_PresentAndTrigger(t *testing.T) {
	p := NewPresenter(nil, 0)
	sink := &recordingSink{}

	assert.False(t, p.Trigger(model.EventTap), "nothing visible")

	req := model.NewRequest("hello")
	p.Present(req, sink)
	assert.Same(t, req, p.Visible())

	assert.True(t, p.Trigger(model.EventTap))
	assert.Equal(t, []model.Event{model.EventTap}, sink.events)
}

func TestPresenter_TeardownImmediate(t *testing.T) {
	p := NewPresenter(nil, time.Second)
	sink := &recordingSink{}
	p.Present(model.NewRequest("hello"), sink)

	// No clock means nothing can delay completion.
	p.Teardown(true)
	assert.Equal(t, 1, sink.completed)
	assert.Nil(t, p.Visible())
	assert.Empty(t, p.Render(80))
}

func TestPresenter_TeardownAnimated(t *testing.T) {
	msgs := make(chan tea.Msg, 4)
	clock := NewClock(func(msg tea.Msg) { msgs <- msg })
	p := NewPresenter(clock, 5*time.Millisecond)
	sink := &recordingSink{}
	p.Present(model.NewRequest("hello"), sink)

	p.Teardown(true)
	assert.True(t, p.Leaving())
	assert.Equal(t, 0, sink.completed)
	assert.False(t, p.Trigger(model.EventTap), "leaving toasts ignore gestures")

	// A second teardown while leaving is ignored.
	p.Teardown(false)
	assert.Equal(t, 0, sink.completed)

	select {
	case msg := <-msgs:
		clock.fire(msg.(timerMsg).id)
	case <-time.After(2 * time.Second):
		t.Fatal("leave timer never fired")
	}
	assert.Equal(t, 1, sink.completed)
	assert.False(t, p.Leaving())
}

func TestPresenter_RenderSize(t *testing.T) {
	tests := []struct {
		name      string
		req       *model.Request
		cols      int
		wantWidth int
	}{
		{"default width", model.NewRequest("hello"), 80, 35},
		{"narrow terminal", model.NewRequest("hello"), 20, 20},
		{
			"screen ratio",
			model.NewRequest("hello", model.WithState(model.Custom(
				model.DefaultStyle("#336699"),
			))),
			80, 35,
		},
	}

	ratio := model.DefaultStyle("#336699")
	ratio.Width = model.MustScreenPercentage(0.5)
	tests = append(tests, struct {
		name      string
		req       *model.Request
		cols      int
		wantWidth int
	}{"half screen", model.NewRequest("hello", model.WithState(model.Custom(ratio))), 80, 40})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPresenter(nil, 0)
			p.Present(tt.req, &recordingSink{})

			view := p.Render(tt.cols)
			assert.Equal(t, tt.wantWidth, lipgloss.Width(view))
			assert.Equal(t, 2, lipgloss.Height(view))
			assert.Contains(t, view, "hello")
		})
	}
}

func TestPresenter_RenderWrapsLongMessages(t *testing.T) {
	p := NewPresenter(nil, 0)
	msg := strings.Repeat("word ", 30)
	p.Present(model.NewRequest(msg), &recordingSink{})

	view := p.Render(80)
	assert.Greater(t, lipgloss.Height(view), 2)
	assert.Equal(t, 35, lipgloss.Width(view))
}

func TestPresenter_RenderGlyphs(t *testing.T) {
	p := NewPresenter(nil, 0)

	p.Present(model.NewRequest("done", model.WithState(model.StateSuccess)), &recordingSink{})
	assert.Contains(t, p.Render(80), "✓")

	p.Present(model.NewRequest("stop", model.WithState(model.StateWithCancelButton)), &recordingSink{})
	view := p.Render(80)
	assert.Contains(t, view, "✕")
	assert.Equal(t, 1, strings.Count(view, "✕"), "close icon is not drawn twice")

	p.Present(model.NewRequest("pick", model.WithMode(model.DismissInteractive)), &recordingSink{})
	view = p.Render(80)
	assert.Contains(t, view, "i")
	assert.Contains(t, view, "✕")
}

func TestGlyph(t *testing.T) {
	assert.Equal(t, "✓", glyph(model.IconSuccess))
	assert.Equal(t, "✗", glyph(model.IconError))
	assert.Equal(t, "!", glyph(model.IconWarning))
	assert.Equal(t, "i", glyph(model.IconInfo))
	assert.Equal(t, "✕", glyph(model.IconClose))
	assert.Equal(t, "•", glyph("/usr/share/icons/custom.svg"))
}

func TestFade(t *testing.T) {
	assert.Equal(t, "#8e8e8e", fade("#8e8e8e", 0))
	assert.Equal(t, "#000000", fade("#8e8e8e", 1))
	assert.NotEqual(t, "#ffffff", fade("#ffffff", 0.5))
	assert.Equal(t, "not-a-color", fade("not-a-color", 0.5))
}

func TestClock_StopBeforeFire(t *testing.T) {
	msgs := make(chan tea.Msg, 4)
	clock := NewClock(func(msg tea.Msg) { msgs <- msg })

	ran := false
	timer := clock.AfterFunc(time.Hour, func() { ran = true })
	require.Equal(t, 1, clock.Pending())

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	assert.Equal(t, 0, clock.Pending())

	// A message that was already in flight is dropped.
	clock.fire(1)
	assert.False(t, ran)
}

func TestClock_FireOnce(t *testing.T) {
	msgs := make(chan tea.Msg, 4)
	clock := NewClock(func(msg tea.Msg) { msgs <- msg })

	calls := 0
	timer := clock.AfterFunc(time.Millisecond, func() { calls++ })

	var msg tea.Msg
	select {
	case msg = <-msgs:
	case <-time.After(2 * time.Second):
		t.Fatal("timer never delivered")
	}

	id := msg.(timerMsg).id
	clock.fire(id)
	clock.fire(id)
	assert.Equal(t, 1, calls)
	assert.False(t, timer.Stop(), "fired timers cannot be stopped")
}
