// Package config loads the tabspace YAML configuration: where state lives,
// how to log, the initial workspace and the catalog of documents that can be
// dragged into it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"tabspace/internal/document"
	"tabspace/internal/layout"
)

// FileName is the config file looked up in the state directory when no
// explicit path is given.
const FileName = "config.yaml"

// Config holds all tabspace configuration.
type Config struct {
	StateDir  string          `yaml:"state_dir"`
	Logging   LoggingConfig   `yaml:"logging"`
	Workspace WorkspaceConfig `yaml:"workspace"`
	Catalog   []ItemConfig    `yaml:"catalog"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // defaults to <state_dir>/tabspace.log
}

// WorkspaceConfig is the layout loaded at startup.
type WorkspaceConfig struct {
	Panels []PanelConfig `yaml:"panels"`
}

// PanelConfig describes one panel of the initial layout.
type PanelConfig struct {
	ID      string       `yaml:"id"`
	Size    *float64     `yaml:"size,omitempty"`
	Showing int          `yaml:"showing"`
	Tabs    []ItemConfig `yaml:"tabs"`
}

// ItemConfig is a document reference, used both for initial tabs and
// catalog entries.
type ItemConfig struct {
	ID     string            `yaml:"id"`
	Tenant string            `yaml:"tenant,omitempty"`
	Kind   string            `yaml:"kind,omitempty"`
	Title  string            `yaml:"title,omitempty"`
	Route  string            `yaml:"route"`
	Meta   map[string]string `yaml:"meta,omitempty"`
}

// Descriptor converts the item to a document descriptor.
func (i ItemConfig) Descriptor() (document.Descriptor, error) {
	kind, err := document.ParseKind(i.Kind)
	if err != nil {
		return document.Descriptor{}, fmt.Errorf("item %q: %w", i.ID, err)
	}
	return document.Descriptor{
		Tenant: i.Tenant,
		Kind:   kind,
		Title:  i.Title,
		Route:  i.Route,
		Meta:   i.Meta,
	}, nil
}

// Default returns a one-panel workspace with a small demo catalog.
func Default() *Config {
	welcome := document.Welcome()
	return &Config{
		Logging: LoggingConfig{Level: "info"},
		Workspace: WorkspaceConfig{
			Panels: []PanelConfig{{
				ID: "main",
				Tabs: []ItemConfig{{
					ID:    "welcome",
					Kind:  string(welcome.Kind),
					Title: welcome.Title,
					Route: welcome.Route,
				}},
			}},
		},
		Catalog: []ItemConfig{
			{ID: "invoices", Tenant: "acme", Kind: "folder", Title: "Invoices", Route: "/acme/invoices"},
			{ID: "contracts", Tenant: "acme", Kind: "folder", Title: "Contracts", Route: "/acme/contracts"},
			{ID: "search", Kind: "search", Title: "Search", Route: "/search"},
			{ID: "settings", Kind: "settings", Title: "Settings", Route: "/settings"},
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the workspace has at least one tab, that ids are
// unique and that every kind is known.
func (c *Config) Validate() error {
	panelIDs := make(map[string]bool)
	tabIDs := make(map[string]bool)
	total := 0
	for i, p := range c.Workspace.Panels {
		if p.ID == "" {
			return fmt.Errorf("workspace panel %d: missing id", i)
		}
		if panelIDs[p.ID] {
			return fmt.Errorf("duplicate panel id %q", p.ID)
		}
		panelIDs[p.ID] = true
		for _, t := range p.Tabs {
			if t.ID == "" {
				return fmt.Errorf("panel %q: tab missing id", p.ID)
			}
			if tabIDs[t.ID] {
				return fmt.Errorf("duplicate tab id %q", t.ID)
			}
			tabIDs[t.ID] = true
			if _, err := document.ParseKind(t.Kind); err != nil {
				return fmt.Errorf("panel %q: %w", p.ID, err)
			}
			total++
		}
	}
	if total == 0 {
		return errors.New("workspace has no tabs")
	}
	for _, item := range c.Catalog {
		if _, err := document.ParseKind(item.Kind); err != nil {
			return fmt.Errorf("catalog: %w", err)
		}
	}
	return nil
}

// ResolveStateDir returns StateDir, falling back to fallback when unset.
func (c *Config) ResolveStateDir(fallback string) string {
	if c.StateDir != "" {
		return c.StateDir
	}
	return fallback
}

// LogFile returns the configured log file, defaulting to <stateDir>/tabspace.log.
func (c *Config) LogFile(stateDir string) string {
	if c.Logging.File != "" {
		return c.Logging.File
	}
	return filepath.Join(stateDir, "tabspace.log")
}

// Panels builds the initial layout from the workspace section.
func (c *Config) Panels() ([]*layout.Panel[document.Descriptor], error) {
	out := make([]*layout.Panel[document.Descriptor], 0, len(c.Workspace.Panels))
	for _, pc := range c.Workspace.Panels {
		p := &layout.Panel[document.Descriptor]{
			ID:              pc.ID,
			ShowingTabIndex: pc.Showing,
		}
		if pc.Size != nil {
			v := *pc.Size
			p.Size = &v
		}
		for _, tc := range pc.Tabs {
			d, err := tc.Descriptor()
			if err != nil {
				return nil, fmt.Errorf("panel %q: %w", pc.ID, err)
			}
			p.Tabs = append(p.Tabs, &layout.Tab[document.Descriptor]{ID: tc.ID, Content: d})
		}
		out = append(out, p)
	}
	return out, nil
}

// CatalogItems converts the catalog into items insertable with
// layout.Store.InsertExternal.
func (c *Config) CatalogItems() ([]layout.ExternalItem[document.Descriptor], error) {
	out := make([]layout.ExternalItem[document.Descriptor], 0, len(c.Catalog))
	for _, ic := range c.Catalog {
		d, err := ic.Descriptor()
		if err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		out = append(out, layout.ExternalItem[document.Descriptor]{ID: ic.ID, Content: d})
	}
	return out, nil
}
