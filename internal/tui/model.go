// Package tui provides the BubbleTea-based terminal toast host.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/jmylchreest/toasty/internal/config"
	"github.com/jmylchreest/toasty/internal/model"
	"github.com/jmylchreest/toasty/internal/toast"
)

// historySize is how many dismissals the status area lists.
const historySize = 5

var presetDurations = []model.Duration{model.DurationShort, model.DurationAverage, model.DurationLong}

// dismissal is one reported callback.
type dismissal struct {
	message string
	reason  model.DismissalReason
	at      time.Time
}

// session is the state shared with coordinator callbacks. Model is copied
// by value on every Update, so callbacks write here instead.
type session struct {
	history      []dismissal
	idle         bool
	exitWhenIdle bool
	statusMsg    string
}

type startMsg struct{}

// Model is the terminal host: a message composer over one toast screen.
type Model struct {
	cfg      *config.Config
	presets  config.Styles
	defaults config.RequestDefaults
	logger   *slog.Logger

	clock     *Clock
	presenter *Presenter
	coord     *toast.Coordinator
	session   *session

	// Components
	input textinput.Model
	help  help.Model
	keys  KeyMap

	// Composer state
	compose   bool
	states    []model.VisualState
	stateIdx  int
	mode      model.DismissalMode
	location  model.Location
	durations []model.Duration
	durIdx    int

	// Requests shown on start
	pending []*model.Request

	width  int
	height int
	ready  bool
}

// Options configures a Model.
type Options struct {
	Config *config.Config
	Styles config.Styles
	Logger *slog.Logger

	// Requests are shown, in order, as soon as the program starts.
	Requests []*model.Request
	// ExitWhenIdle quits once every request has been dismissed.
	ExitWhenIdle bool
	// Compose enables the message input.
	Compose bool
}

// New creates a terminal host. send delivers timer messages back to the
// program, normally (*tea.Program).Send.
func New(opts Options, send func(tea.Msg)) (Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	defaults, err := cfg.RequestDefaults(opts.Styles)
	if err != nil {
		return Model{}, fmt.Errorf("invalid request defaults: %w", err)
	}

	s := &session{exitWhenIdle: opts.ExitWhenIdle}
	clock := NewClock(send)
	presenter := NewPresenter(clock, cfg.Display.Animation.Duration())
	coord := toast.NewCoordinator(presenter, clock,
		toast.WithLogger(logger),
		toast.WithIdleHandler(func() { s.idle = true }),
	)

	input := textinput.New()
	input.Placeholder = "Type a message and press enter..."
	input.CharLimit = 280
	if opts.Compose {
		input.Focus()
	}

	m := Model{
		cfg:       cfg,
		presets:   opts.Styles,
		defaults:  defaults,
		logger:    logger,
		clock:     clock,
		presenter: presenter,
		coord:     coord,
		session:   s,
		input:     input,
		help:      help.New(),
		keys:      DefaultKeyMap(),
		compose:   opts.Compose,
		states:    stateCycle(opts.Styles),
		mode:      defaults.Mode,
		location:  defaults.Location,
		pending:   opts.Requests,
	}
	m.stateIdx = m.indexOfState(defaults.State)
	m.durations, m.durIdx = durationCycle(defaults.Duration)
	return m, nil
}

// stateCycle lists the built-in states followed by the presets.
func stateCycle(presets config.Styles) []model.VisualState {
	states := []model.VisualState{
		model.StateInfo,
		model.StateSuccess,
		model.StateWarning,
		model.StateError,
		model.StateWithCancelButton,
	}
	for _, name := range presets.Names() {
		if s, err := presets.State(name); err == nil {
			states = append(states, s)
		}
	}
	return states
}

// durationCycle lists the presets, plus d when it is custom, and returns
// the index of d.
func durationCycle(d model.Duration) ([]model.Duration, int) {
	cycle := append([]model.Duration(nil), presetDurations...)
	for i, p := range cycle {
		if p == d {
			return cycle, i
		}
	}
	return append(cycle, d), len(cycle)
}

func (m Model) indexOfState(s model.VisualState) int {
	for i, st := range m.states {
		if st.Name() != s.Name() {
			continue
		}
		a, aok := st.(model.CustomState)
		b, bok := s.(model.CustomState)
		if aok != bok || (aok && a.Preset != b.Preset) {
			continue
		}
		return i
	}
	return 0
}

// Coordinator returns the coordinator the host shows toasts through.
func (m Model) Coordinator() *toast.Coordinator {
	return m.coord
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{func() tea.Msg { return startMsg{} }}
	if m.compose {
		cmds = append(cmds, textinput.Blink)
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.input.Width = max(msg.Width-4, 10)

	case startMsg:
		for _, req := range m.pending {
			m.enqueue(req)
		}
		m.pending = nil
		if !m.coord.IsPresenting() {
			m.session.idle = true
		}

	case timerMsg:
		m.clock.fire(msg.id)

	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	default:
		if m.compose {
			m.input, cmd = m.input.Update(msg)
		}
	}

	if m.session.exitWhenIdle && m.session.idle {
		return m, tea.Quit
	}
	return m, cmd
}

func (m *Model) enqueue(req *model.Request) {
	req.OnDismiss = m.recorder(req.Message, req.OnDismiss)
	m.session.idle = false
	m.session.statusMsg = ""
	m.coord.Enqueue(req)
}

// recorder adds the dismissal to the session history before calling next.
func (m *Model) recorder(message string, next func(model.DismissalReason)) func(model.DismissalReason) {
	s := m.session
	return func(r model.DismissalReason) {
		s.history = append(s.history, dismissal{message: message, reason: r, at: time.Now()})
		if len(s.history) > historySize {
			s.history = s.history[len(s.history)-historySize:]
		}
		if next != nil {
			next(r)
		}
	}
}

// handleKey handles key presses.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	case key.Matches(msg, m.keys.Tap):
		m.presenter.Trigger(model.EventTap)
		return nil
	case key.Matches(msg, m.keys.Swipe):
		m.presenter.Trigger(model.EventSwipeUp)
		return nil
	case key.Matches(msg, m.keys.Cancel):
		m.triggerCancel()
		return nil
	case key.Matches(msg, m.keys.Dismiss):
		m.coord.DismissActive(true)
		return nil
	case key.Matches(msg, m.keys.Clear):
		n := m.coord.Clear()
		m.session.statusMsg = "Cleared " + english.Plural(n, "queued toast", "")
		return nil
	}

	if !m.compose {
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Send):
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return nil
		}
		m.enqueue(m.newRequest(text))
		m.input.Reset()
		return nil
	case key.Matches(msg, m.keys.NextState):
		m.stateIdx = (m.stateIdx + 1) % len(m.states)
		return nil
	case key.Matches(msg, m.keys.PrevState):
		m.stateIdx = (m.stateIdx + len(m.states) - 1) % len(m.states)
		return nil
	case key.Matches(msg, m.keys.ToggleMode):
		if m.mode == model.DismissAll {
			m.mode = model.DismissInteractive
		} else {
			m.mode = model.DismissAll
		}
		return nil
	case key.Matches(msg, m.keys.ToggleLocation):
		if m.location == model.LocationBottom {
			m.location = model.LocationTop
		} else {
			m.location = model.LocationBottom
		}
		return nil
	case key.Matches(msg, m.keys.NextDuration):
		m.durIdx = (m.durIdx + 1) % len(m.durations)
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// triggerCancel presses the cancel control, which only exists on toasts
// that draw it.
func (m *Model) triggerCancel() {
	req := m.presenter.Visible()
	if req == nil || !req.ShowsCancelControl() {
		return
	}
	m.presenter.Trigger(model.EventCancelButton)
}

func (m Model) newRequest(text string) *model.Request {
	opts := append(m.defaults.Options(),
		model.WithState(m.states[m.stateIdx]),
		model.WithMode(m.mode),
		model.WithLocation(m.location),
	)
	req := model.NewRequest(text, opts...)
	req.Duration = m.durations[m.durIdx]
	return req
}

// handleMouse maps clicks on the toast to gestures. The wheel counts as
// a swipe.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress {
		return
	}
	if msg.Button == tea.MouseButtonWheelUp {
		m.presenter.Trigger(model.EventSwipeUp)
		return
	}

	x0, y0, w, h, ok := m.toastBounds()
	if !ok || msg.X < x0 || msg.X >= x0+w || msg.Y < y0 || msg.Y >= y0+h {
		return
	}

	button := mouseButton(msg.Button)
	if button == 1 && m.presenter.Visible().ShowsCancelControl() && msg.X >= x0+w-3 {
		m.presenter.Trigger(model.EventCancelButton)
		return
	}

	action := m.cfg.Mouse.ForButton(button)
	if ev, ok := action.Event(); ok {
		m.presenter.Trigger(ev)
		return
	}
	switch action {
	case config.MouseActionDismiss:
		m.coord.DismissActive(true)
	case config.MouseActionClear:
		m.coord.Clear()
		m.coord.DismissActive(true)
	}
}

// mouseButton converts to GDK button numbering.
func mouseButton(b tea.MouseButton) uint {
	switch b {
	case tea.MouseButtonLeft:
		return 1
	case tea.MouseButtonMiddle:
		return 2
	case tea.MouseButtonRight:
		return 3
	default:
		return 0
	}
}

// toastBounds returns where the visible toast is drawn.
func (m Model) toastBounds() (x, y, w, h int, ok bool) {
	req := m.presenter.Visible()
	if req == nil {
		return 0, 0, 0, 0, false
	}
	view := m.presenter.Render(m.width)
	w, h = lipgloss.Width(view), lipgloss.Height(view)
	x = max((m.width-w)/2, 0)
	if req.Location == model.LocationBottom {
		y = max(m.height-h, 0)
	}
	return x, y, w, h, true
}

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	body := m.viewBody()
	req := m.presenter.Visible()
	if req == nil {
		return body
	}

	toastView := lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.presenter.Render(m.width))
	if req.Location == model.LocationTop {
		return toastView + "\n" + body
	}

	space := max(m.height-lipgloss.Height(toastView), 0)
	return lipgloss.Place(m.width, space, lipgloss.Left, lipgloss.Top, body) + "\n" + toastView
}

func (m Model) viewBody() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12"))
	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8"))
	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))

	var b strings.Builder
	b.WriteString(titleStyle.Render("toasty") + "\n\n")

	if m.compose {
		state := m.states[m.stateIdx]
		stateName := state.Name()
		if c, ok := state.(model.CustomState); ok && c.Preset != "" {
			stateName = c.Preset
		}
		fmt.Fprintf(&b, "%s %s  %s %s  %s %s  %s %s\n",
			labelStyle.Render("state:"), valueStyle.Render(stateName),
			labelStyle.Render("mode:"), valueStyle.Render(m.mode.String()),
			labelStyle.Render("location:"), valueStyle.Render(m.location.String()),
			labelStyle.Render("duration:"), valueStyle.Render(m.durations[m.durIdx].String()),
		)
		b.WriteString(m.input.View() + "\n\n")
	}

	b.WriteString(m.viewStatus(labelStyle) + "\n")
	for i := len(m.session.history) - 1; i >= 0; i-- {
		d := m.session.history[i]
		fmt.Fprintf(&b, "  %s %s %s\n",
			valueStyle.Render(d.reason.String()),
			labelStyle.Render(humanize.Time(d.at)),
			truncate(d.message, max(m.width-30, 10)),
		)
	}

	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func (m Model) viewStatus(style lipgloss.Style) string {
	if m.session.statusMsg != "" {
		return style.Render(m.session.statusMsg)
	}

	queued := m.coord.QueuedCount()
	active := m.coord.Active()
	if active == nil {
		return style.Render("No toast showing, " + humanize.Comma(int64(queued)) + " queued")
	}
	return style.Render(fmt.Sprintf("Showing %q (%s), %s waiting",
		truncate(active.Message, 24),
		active.Duration.String(),
		english.Plural(queued, "toast", ""),
	))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// Run starts the TUI with the given options and blocks until it exits.
func Run(opts Options, progOpts ...tea.ProgramOption) error {
	var prog *tea.Program
	m, err := New(opts, func(msg tea.Msg) { prog.Send(msg) })
	if err != nil {
		return err
	}

	progOpts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}, progOpts...)
	prog = tea.NewProgram(m, progOpts...)

	_, err = prog.Run()
	return err
}
