package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestConfigWatcher_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), ProjectConfigName)
	require.NoError(t, os.WriteFile(path, []byte("[graph]\nstrength_graph = 30.0\n"), 0o644))

	cw, err := NewConfigWatcher(path, 20*time.Millisecond, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)
	defer cw.Stop()

	reloaded := make(chan *Config, 4)
	cw.OnReload(func(c *Config) error {
		reloaded <- c
		return nil
	})
	cw.Start()

	require.NoError(t, os.WriteFile(path, []byte("[graph]\nstrength_graph = 70.0\n"), 0o644))

	select {
	case cfg := <-reloaded:
		require.Equal(t, 70.0, cfg.Graph.StrengthGraph)
	case <-time.After(5 * time.Second):
		t.Fatal("config watcher did not reload")
	}
}

func TestConfigWatcher_InvalidFileIsIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), ProjectConfigName)
	require.NoError(t, os.WriteFile(path, []byte("[population]\ncount = 10\n"), 0o644))

	cw, err := NewConfigWatcher(path, 20*time.Millisecond, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)
	defer cw.Stop()

	reloaded := make(chan *Config, 1)
	cw.OnReload(func(c *Config) error {
		reloaded <- c
		return nil
	})
	cw.Start()

	require.NoError(t, os.WriteFile(path, []byte("[population]\ncount = 1\n"), 0o644))

	select {
	case <-reloaded:
		t.Fatal("invalid config must not reach callbacks")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestConfigWatcher_StopIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), ProjectConfigName)
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	cw, err := NewConfigWatcher(path, 0, nil)
	require.NoError(t, err)
	cw.Start()

	require.NoError(t, cw.Stop())
	require.NoError(t, cw.Stop())
}

func TestConfigWatcher_ReloadKeepsEnvironmentAndCascade(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())
	t.Setenv("AURA_GRAPH_STRENGTH_GRAPH", "77")

	require.NoError(t, os.MkdirAll(filepath.Join(home, ".auragraph"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".auragraph", ProjectConfigName),
		[]byte("[graph]\nstiffness_graph = 2.5\n"), 0o644))

	path := filepath.Join(t.TempDir(), "watched.toml")
	require.NoError(t, os.WriteFile(path, []byte("[graph]\nstrength_graph = 30.0\ncluster_affinity = 0.1\n"), 0o644))

	Reset()
	SetConfigFile(path)
	t.Cleanup(func() {
		SetConfigFile("")
		Reset()
	})

	initial, err := Load()
	require.NoError(t, err)
	require.Equal(t, 77.0, initial.Graph.StrengthGraph)

	cw, err := NewConfigWatcher(path, 20*time.Millisecond, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)
	defer cw.Stop()

	reloaded := make(chan *Config, 4)
	cw.OnReload(func(c *Config) error {
		reloaded <- c
		return nil
	})
	cw.Start()

	require.NoError(t, os.WriteFile(path, []byte("[graph]\nstrength_graph = 30.0\ncluster_affinity = 0.4\n"), 0o644))

	select {
	case cfg := <-reloaded:
		require.Equal(t, 77.0, cfg.Graph.StrengthGraph, "environment still overrides the file")
		require.Equal(t, 2.5, cfg.Graph.StiffnessGraph, "user file still contributes")
		require.Equal(t, 0.4, cfg.Graph.ClusterAffinity, "edited key is picked up")
	case <-time.After(5 * time.Second):
		t.Fatal("config watcher did not reload")
	}
}

func TestReload_MergesUnlistedWatchedFileLast(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	Reset()
	SetConfigFile("")
	t.Cleanup(Reset)

	path := filepath.Join(t.TempDir(), "other.toml")
	require.NoError(t, os.WriteFile(path, []byte("[graph]\nstrength_graph = 45.0\n"), 0o644))

	cfg, err := Reload(path)
	require.NoError(t, err)
	require.Equal(t, 45.0, cfg.Graph.StrengthGraph)
}
