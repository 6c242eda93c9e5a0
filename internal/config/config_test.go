package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabspace/internal/document"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Workspace(t *testing.T) {
	path := writeConfig(t, `
state_dir: /tmp/ts
logging:
  level: debug
workspace:
  panels:
    - id: left
      size: 40
      showing: 1
      tabs:
        - {id: a, kind: folder, title: Invoices, route: /acme/invoices}
        - {id: b, route: /acme/contracts/42, meta: {rev: "3"}}
    - id: right
      tabs:
        - {id: c, kind: search, route: /search}
catalog:
  - {id: settings, kind: settings, title: Settings, route: /settings}
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/ts", cfg.ResolveStateDir("/fallback"))
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, filepath.Join("/tmp/ts", "tabspace.log"), cfg.LogFile("/tmp/ts"))

	panels, err := cfg.Panels()
	require.NoError(t, err)
	require.Len(t, panels, 2)
	assert.Equal(t, "left", panels[0].ID)
	require.NotNil(t, panels[0].Size)
	assert.Equal(t, 40.0, *panels[0].Size)
	assert.Equal(t, 1, panels[0].ShowingTabIndex)
	require.Len(t, panels[0].Tabs, 2)
	assert.Equal(t, document.KindFolder, panels[0].Tabs[0].Content.Kind)
	assert.Equal(t, document.KindDocument, panels[0].Tabs[1].Content.Kind)
	assert.Equal(t, "3", panels[0].Tabs[1].Content.Meta["rev"])

	items, err := cfg.CatalogItems()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "settings", items[0].ID)
	assert.Equal(t, document.KindSettings, items[0].Content.Kind)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"no tabs": `
workspace:
  panels:
    - id: p
      tabs: []
`,
		"duplicate tab": `
workspace:
  panels:
    - id: p
      tabs: [{id: a, route: /a}, {id: a, route: /b}]
`,
		"duplicate panel": `
workspace:
  panels:
    - {id: p, tabs: [{id: a, route: /a}]}
    - {id: p, tabs: [{id: b, route: /b}]}
`,
		"unknown kind": `
workspace:
  panels:
    - {id: p, tabs: [{id: a, kind: spreadsheet, route: /a}]}
`,
		"bad catalog kind": `
catalog: [{id: x, kind: nope, route: /x}]
`,
		"bad yaml": `workspace: [`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLogFile_Explicit(t *testing.T) {
	cfg := Default()
	cfg.Logging.File = "/var/log/ts.log"
	assert.Equal(t, "/var/log/ts.log", cfg.LogFile("/ignored"))
	assert.Equal(t, "/fallback", cfg.ResolveStateDir("/fallback"))
}
