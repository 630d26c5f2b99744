package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/toasty/internal/config"
	"github.com/jmylchreest/toasty/internal/model"
)

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	if opts.Config == nil {
		opts.Config = config.Default()
		opts.Config.Display.Animation = 0
	}
	m, err := New(opts, func(tea.Msg) {})
	require.NoError(t, err)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return next.(Model)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModel_SendAndTap(t *testing.T) {
	m := newTestModel(t, Options{Compose: true})

	m = typeText(t, m, "hello")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	req := m.presenter.Visible()
	require.NotNil(t, req)
	assert.Equal(t, "hello", req.Message)
	assert.Empty(t, m.input.Value())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Nil(t, m.presenter.Visible())
	require.Len(t, m.session.history, 1)
	assert.Equal(t, model.ReasonAll, m.session.history[0].reason)
	assert.Equal(t, "hello", m.session.history[0].message)
}

func TestModel_EmptyMessageIgnored(t *testing.T) {
	m := newTestModel(t, Options{Compose: true})

	m = typeText(t, m, "   ")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, m.presenter.Visible())
}

func TestModel_QueuesWhileShowing(t *testing.T) {
	m := newTestModel(t, Options{Compose: true})

	for _, text := range []string{"one", "two", "three"} {
		m = typeText(t, m, text)
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	}

	assert.Equal(t, "one", m.presenter.Visible().Message)
	assert.Equal(t, 2, m.coord.QueuedCount())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlU})
	assert.Equal(t, "two", m.presenter.Visible().Message)

	// Clearing drops the queue but keeps the visible toast.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Equal(t, 0, m.coord.QueuedCount())
	assert.Equal(t, "two", m.presenter.Visible().Message)
	assert.Contains(t, m.View(), "Cleared 1 queued toast")

	// Silent dismissal does not record a reason.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	assert.Nil(t, m.presenter.Visible())
	assert.Len(t, m.session.history, 1)
}

func TestModel_InteractiveMode(t *testing.T) {
	m := newTestModel(t, Options{Compose: true})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	assert.Equal(t, model.DismissInteractive, m.mode)

	m = typeText(t, m, "a")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = typeText(t, m, "b")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	// The cancel control dismisses silently in interactive mode.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	assert.Empty(t, m.session.history)
	assert.Equal(t, "b", m.presenter.Visible().Message)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	require.Len(t, m.session.history, 1)
	assert.Equal(t, model.ReasonInteractive, m.session.history[0].reason)
}

func TestModel_CancelIgnoredWithoutControl(t *testing.T) {
	m := newTestModel(t, Options{Compose: true})

	m = typeText(t, m, "plain")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	assert.NotNil(t, m.presenter.Visible(), "info toasts have no cancel control")
}

func TestModel_CycleComposerSettings(t *testing.T) {
	styles, err := config.ParseStyles([]byte("styles:\n  brand:\n    background: \"#336699\"\n"))
	require.NoError(t, err)
	m := newTestModel(t, Options{Compose: true, Styles: styles})

	require.Len(t, m.states, 6)
	assert.Equal(t, "info", m.states[m.stateIdx].Name())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	state, ok := m.states[m.stateIdx].(model.CustomState)
	require.True(t, ok)
	assert.Equal(t, "brand", state.Preset)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, model.StateInfo, m.states[m.stateIdx])

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})
	assert.Equal(t, model.LocationTop, m.location)

	assert.Equal(t, model.DurationAverage, m.durations[m.durIdx])
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Equal(t, model.DurationLong, m.durations[m.durIdx])

	m = typeText(t, m, "top")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	req := m.presenter.Visible()
	require.NotNil(t, req)
	assert.Equal(t, model.LocationTop, req.Location)
	assert.Equal(t, model.DurationLong, req.Duration)
}

func TestModel_ExitWhenIdle(t *testing.T) {
	reqs := []*model.Request{model.NewRequest("first"), model.NewRequest("second")}
	m := newTestModel(t, Options{Requests: reqs, ExitWhenIdle: true})

	m, cmd := update(t, m, startMsg{})
	assert.False(t, isQuit(cmd))
	assert.Same(t, reqs[0], m.presenter.Visible())

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.False(t, isQuit(cmd))
	assert.Same(t, reqs[1], m.presenter.Visible())

	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.True(t, isQuit(cmd))
}

func TestModel_ExitWhenIdleWithNothingToShow(t *testing.T) {
	m := newTestModel(t, Options{ExitWhenIdle: true})

	_, cmd := update(t, m, startMsg{})
	assert.True(t, isQuit(cmd))
}

func TestModel_TimeoutThroughClock(t *testing.T) {
	msgs := make(chan tea.Msg, 4)
	cfg := config.Default()
	cfg.Display.Animation = 0
	m, err := New(Options{Config: cfg}, func(msg tea.Msg) { msgs <- msg })
	require.NoError(t, err)

	req := model.NewRequest("quick")
	req.Duration = model.CustomDuration(1)
	m.pending = []*model.Request{req}
	m, _ = update(t, m, startMsg{})
	require.Same(t, req, m.presenter.Visible())

	msg := <-msgs
	m, _ = update(t, m, msg)
	assert.Nil(t, m.presenter.Visible())
	require.Len(t, m.session.history, 1)
	assert.Equal(t, model.ReasonAll, m.session.history[0].reason)
}

func TestModel_MouseGestures(t *testing.T) {
	m := newTestModel(t, Options{Compose: true})

	m = typeText(t, m, "click me")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	x, y, w, h, ok := m.toastBounds()
	require.True(t, ok)
	assert.Equal(t, 35, w)
	assert.Equal(t, 24-h, y, "bottom toasts sit on the last rows")

	// Clicks outside the toast do nothing.
	m, _ = update(t, m, tea.MouseMsg{X: 0, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.NotNil(t, m.presenter.Visible())

	// Right click dismisses silently by default.
	m, _ = update(t, m, tea.MouseMsg{X: x + 1, Y: y, Button: tea.MouseButtonRight, Action: tea.MouseActionPress})
	assert.Nil(t, m.presenter.Visible())
	assert.Empty(t, m.session.history)

	m = typeText(t, m, "again")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, tea.MouseMsg{X: x + 1, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	require.Len(t, m.session.history, 1)
	assert.Equal(t, model.ReasonAll, m.session.history[0].reason)

	m = typeText(t, m, "wheel")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	assert.Len(t, m.session.history, 2)
}

func TestModel_MouseCancelControl(t *testing.T) {
	m := newTestModel(t, Options{Compose: true})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	m = typeText(t, m, "choose")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	x, y, w, _, ok := m.toastBounds()
	require.True(t, ok)

	m, _ = update(t, m, tea.MouseMsg{X: x + w - 2, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.Nil(t, m.presenter.Visible())
	assert.Empty(t, m.session.history, "cancel in interactive mode is silent")
}

func TestModel_View(t *testing.T) {
	m := newTestModel(t, Options{Compose: true})
	assert.Contains(t, m.View(), "No toast showing")

	m = typeText(t, m, "visible")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	view := m.View()
	assert.Contains(t, view, "visible")
	assert.Contains(t, view, "0 toasts waiting")
}

func TestNew_InvalidDefaults(t *testing.T) {
	cfg := config.Default()
	cfg.Defaults.State = "nope"

	_, err := New(Options{Config: cfg}, func(tea.Msg) {})
	assert.Error(t, err)
}

func TestDurationCycle(t *testing.T) {
	cycle, idx := durationCycle(model.DurationShort)
	assert.Len(t, cycle, 3)
	assert.Equal(t, 0, idx)

	custom := model.CustomDuration(5e9)
	cycle, idx = durationCycle(custom)
	assert.Len(t, cycle, 4)
	assert.Equal(t, custom, cycle[idx])
}

func TestModel_KeepsCallerCallback(t *testing.T) {
	var got []model.DismissalReason
	req := model.NewRequest("piped")
	req.OnDismiss = func(r model.DismissalReason) { got = append(got, r) }

	m := newTestModel(t, Options{Requests: []*model.Request{req}})
	m, _ = update(t, m, startMsg{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})

	assert.Equal(t, []model.DismissalReason{model.ReasonAll}, got)
	assert.Len(t, m.session.history, 1)
}
