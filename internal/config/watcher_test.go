package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReportsWatchedFiles(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "toasty.toml")
	other := filepath.Join(dir, "other.txt")

	changed := make(chan string, 16)
	w, err := NewWatcher(func(p string) { changed <- p }, nil, cfgPath, "")
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer func() { _ = w.Stop() }()

	require.NoError(t, os.WriteFile(other, []byte("x"), 0644))
	require.NoError(t, os.WriteFile(cfgPath, []byte("[defaults]\n"), 0644))

	select {
	case p := <-changed:
		assert.Equal(t, cfgPath, p)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatcher_StopIsSafe(t *testing.T) {
	w, err := NewWatcher(func(string) {}, nil, filepath.Join(t.TempDir(), "a.toml"))
	require.NoError(t, err)
	require.NoError(t, w.Start())
	require.NoError(t, w.Start())
	assert.NoError(t, w.Stop())
}
