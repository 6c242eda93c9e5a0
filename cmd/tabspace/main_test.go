package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"tabspace/internal/layout"
	"tabspace/internal/state"
	"tabspace/internal/tmux"
)

const twoPanelConfig = `
workspace:
  panels:
    - id: main
      size: 70
      tabs:
        - id: welcome
          title: Welcome
          route: /welcome
    - id: side
      size: 30
      tabs:
        - id: search
          kind: search
          title: Search
          route: /search
`

// setup points the global flags at a fresh state directory.
func setup(t *testing.T, configYAML string) string {
	t.Helper()
	logger = zap.NewNop()
	dir := t.TempDir()
	stateDir = dir
	configPath = ""
	layoutJSON = false
	t.Cleanup(func() {
		stateDir, configPath, layoutJSON = "", "", false
	})
	if configYAML != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(configYAML), 0o644))
	}
	return dir
}

func TestLayoutCmd_DefaultsAsYAML(t *testing.T) {
	setup(t, "")
	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, runLayout(cmd, nil))

	var report struct {
		Highlighted string `yaml:"highlighted"`
		Panels      []struct {
			ID   string `yaml:"id"`
			Tabs []struct {
				ID          string `yaml:"id"`
				Initialized bool   `yaml:"initialized"`
			} `yaml:"tabs"`
		} `yaml:"panels"`
	}
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, "main", report.Highlighted)
	require.Len(t, report.Panels, 1)
	require.Len(t, report.Panels[0].Tabs, 1)
	assert.Equal(t, "welcome", report.Panels[0].Tabs[0].ID)
	assert.True(t, report.Panels[0].Tabs[0].Initialized)
}

func TestLayoutCmd_RestoresHighlightAsJSON(t *testing.T) {
	dir := setup(t, twoPanelConfig)
	require.NoError(t, state.NewFileStore(dir).Set(layout.HighlightKey, "side"))
	layoutJSON = true

	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)
	require.NoError(t, runLayout(cmd, nil))

	var report layoutReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, "side", report.Highlighted)
	require.Len(t, report.Panels, 2)
	require.NotNil(t, report.Panels[0].Size)
	assert.InDelta(t, 70, *report.Panels[0].Size, 1e-9)
	assert.Equal(t, "side", report.Panels[1].Tabs[0].Parent)
}

func TestLayoutCmd_InvalidConfig(t *testing.T) {
	setup(t, "workspace:\n  panels: []\n")
	err := runLayout(&cobra.Command{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workspace has no tabs")
}

func TestLoadConfig_StateDirPrecedence(t *testing.T) {
	setup(t, "")
	base := t.TempDir()
	other := filepath.Join(t.TempDir(), "elsewhere")
	require.NoError(t, os.WriteFile(filepath.Join(base, "config.yaml"), []byte("state_dir: "+other+"\n"+twoPanelConfig), 0o644))
	t.Setenv(state.DirEnv, base)

	stateDir = ""
	_, dir, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, other, dir, "config state_dir applies without a flag")

	stateDir = base
	_, dir, err = loadConfig()
	require.NoError(t, err)
	assert.Equal(t, base, dir, "flag wins")
}

type recordingRunner struct {
	calls []string
}

func (r *recordingRunner) Run(args ...string) (string, error) {
	r.calls = append(r.calls, strings.Join(args, " "))
	if args[0] == "split-window" {
		return "%9", nil
	}
	return "%1", nil
}

func TestTmuxCmd_MirrorsPanels(t *testing.T) {
	setup(t, twoPanelConfig)
	r := &recordingRunner{}
	prev := tmuxRunner
	tmuxRunner = r
	t.Cleanup(func() { tmuxRunner = prev })

	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)
	require.NoError(t, runTmux(cmd, nil))

	assert.Contains(t, r.calls, "split-window -h -t %1 -l 30% -P -F #{pane_id}")
	assert.Contains(t, r.calls, "select-pane -t %1 -T Welcome")
	assert.Contains(t, r.calls, "select-pane -t %9 -T Search")
	assert.Equal(t, "created 2 panes\n", out.String())
}

func TestTmuxCmd_RequiresTmux(t *testing.T) {
	setup(t, "")
	t.Setenv("TMUX", "")
	prev := tmuxRunner
	tmuxRunner = tmux.ExecRunner{}
	t.Cleanup(func() { tmuxRunner = prev })

	assert.ErrorIs(t, runTmux(&cobra.Command{}, nil), tmux.ErrNotInTmux)
}
