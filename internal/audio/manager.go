package audio

import (
	"context"
	"log/slog"
	"maps"
	"os"
	"sync"

	"github.com/jmylchreest/toasty/internal/config"
	"github.com/jmylchreest/toasty/internal/model"
)

// soundPlayer is the part of Player the Manager drives.
type soundPlayer interface {
	cacheInvalidator
	Play(path string) error
	Preload(path string) error
	ClearCache()
	SetVolume(volume float64)
	Close()
}

// soundStates are the states that can carry their own sound. Everything
// else uses the info sound.
var soundStates = []model.State{model.StateSuccess, model.StateError, model.StateWarning, model.StateInfo}

// Manager plays the configured sound for a toast's visual state.
type Manager struct {
	mu      sync.RWMutex
	logger  *slog.Logger
	player  soundPlayer
	watcher *Watcher
	enabled bool

	sounds map[model.State]string
}

// NewManager creates a new audio manager.
func NewManager(cfg *config.Config, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return newManager(cfg, NewPlayer(logger), logger)
}

func newManager(cfg *config.Config, player soundPlayer, logger *slog.Logger) *Manager {
	m := &Manager{
		logger:  logger,
		player:  player,
		watcher: NewWatcher(player, logger),
		sounds:  make(map[model.State]string),
	}
	m.load(cfg)
	return m
}

// load replaces the sound table from cfg. Missing files are skipped with a
// warning so one bad path does not silence the others.
func (m *Manager) load(cfg *config.Config) {
	if cfg == nil {
		cfg = config.Default()
	}

	sounds := make(map[model.State]string)
	for _, st := range soundStates {
		path := cfg.SoundForState(st)
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			m.logger.Warn("sound file not found", "state", st.Name(), "path", path)
			continue
		}
		sounds[st] = path
		m.logger.Debug("loaded sound", "state", st.Name(), "path", path)
	}

	m.player.SetVolume(float64(cfg.Audio.Volume) / 100.0)

	m.mu.Lock()
	m.enabled = cfg.Audio.Enabled
	m.sounds = sounds
	m.mu.Unlock()
}

func (m *Manager) snapshot() map[model.State]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sounds := make(map[model.State]string, len(m.sounds))
	maps.Copy(sounds, m.sounds)
	return sounds
}

// Start preloads the configured sounds and starts the file watcher.
func (m *Manager) Start(ctx context.Context) error {
	sounds := m.snapshot()
	m.preload(sounds)

	if err := m.watcher.Start(ctx); err != nil {
		return err
	}

	m.logger.Info("audio manager started", "sounds", len(sounds), "enabled", m.Enabled())
	return nil
}

func (m *Manager) preload(sounds map[model.State]string) {
	for _, path := range sounds {
		if err := m.player.Preload(path); err != nil {
			m.logger.Warn("failed to preload sound", "path", path, "error", err)
		}
		m.watcher.Watch(path)
	}
}

// Stop shuts down the audio manager.
func (m *Manager) Stop() {
	m.watcher.Stop()
	m.player.Close()
	m.logger.Debug("audio manager stopped")
}

// Enabled reports whether sounds are played.
func (m *Manager) Enabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.enabled
}

// SoundFor returns the sound path used for a visual state, or "".
func (m *Manager) SoundFor(s model.VisualState) string {
	key := model.StateInfo
	if st, ok := s.(model.State); ok {
		switch st {
		case model.StateSuccess, model.StateError, model.StateWarning:
			key = st
		}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sounds[key]
}

// PlayForState plays the sound configured for a visual state.
func (m *Manager) PlayForState(s model.VisualState) error {
	if !m.Enabled() {
		return nil
	}

	path := m.SoundFor(s)
	if path == "" {
		m.logger.Debug("no sound configured for state", "state", s.Name())
		return nil
	}
	return m.player.Play(path)
}

// PlayFile plays a specific sound file.
func (m *Manager) PlayFile(path string) error {
	if !m.Enabled() {
		return nil
	}
	return m.player.Play(config.ExpandPath(path))
}

// UpdateConfig applies a reloaded configuration.
func (m *Manager) UpdateConfig(cfg *config.Config) {
	m.player.ClearCache()
	m.watcher.UnwatchAll()
	m.load(cfg)
	m.preload(m.snapshot())
	m.logger.Debug("audio manager config updated")
}
