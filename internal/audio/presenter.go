package audio

import (
	"log/slog"

	"github.com/jmylchreest/toasty/internal/model"
	"github.com/jmylchreest/toasty/internal/toast"
)

// statePlayer plays the sound for a visual state.
type statePlayer interface {
	PlayForState(s model.VisualState) error
}

// Presenter plays a sound as each toast is presented, then delegates to the
// wrapped presenter.
type Presenter struct {
	next   toast.Presenter
	sounds statePlayer
	logger *slog.Logger
}

// NewPresenter wraps next so presentations are accompanied by sound.
func NewPresenter(next toast.Presenter, m *Manager, logger *slog.Logger) *Presenter {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Presenter{next: next, logger: logger}
	if m != nil {
		p.sounds = m
	}
	return p
}

// Present implements toast.Presenter. Decoding may touch the disk, so the
// sound is started off the control thread.
func (p *Presenter) Present(req *model.Request, sink toast.Sink) {
	if p.sounds == nil {
		p.next.Present(req, sink)
		return
	}

	state := req.State
	go func() {
		if err := p.sounds.PlayForState(state); err != nil {
			p.logger.Warn("failed to play toast sound", "id", req.ID, "error", err)
		}
	}()
	p.next.Present(req, sink)
}

// Teardown implements toast.Presenter.
func (p *Presenter) Teardown(animated bool) {
	p.next.Teardown(animated)
}
