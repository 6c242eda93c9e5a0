package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tabspace/internal/config"
	"tabspace/internal/document"
	"tabspace/internal/layout"
	"tabspace/internal/logging"
	"tabspace/internal/state"
	"tabspace/internal/trace"
	"tabspace/internal/ui"
)

var (
	// Global flags
	configPath string
	stateDir   string
	verbose    bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tabspace",
	Short: "Tabbed multi-panel workspace for the terminal",
	Long: `tabspace arranges documents as tabs in side-by-side panels.

Tabs can be reordered, dragged between panels with the mouse, split into new
panels and opened from a catalog. The highlighted panel is remembered across
sessions.

Run without arguments to start the workspace.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, dir, err := loadConfig()
		if err != nil {
			return err
		}
		level := cfg.Logging.Level
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(level, cfg.LogFile(dir))
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runWorkspace,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default <state-dir>/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&stateDir, "state-dir", "", "state directory (default $TABSPACE_STATE_DIR or ~/.tabspace)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")

	rootCmd.AddCommand(layoutCmd, tmuxCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "tabspace: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config and resolves the state directory. An explicit
// --state-dir wins over the config's state_dir.
func loadConfig() (*config.Config, string, error) {
	base := stateDir
	if base == "" {
		d, err := state.Dir()
		if err != nil {
			return nil, "", err
		}
		base = d
	}
	path := configPath
	if path == "" {
		path = filepath.Join(base, config.FileName)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	if stateDir != "" {
		return cfg, stateDir, nil
	}
	return cfg, cfg.ResolveStateDir(base), nil
}

// workspace is everything a command needs to operate on the layout.
type workspace struct {
	store    *ui.Store
	catalog  []layout.ExternalItem[document.Descriptor]
	shutdown func()
}

// openWorkspace builds the store from config, restores preferences and
// settles the initial layout.
func openWorkspace(ctx context.Context) (*workspace, error) {
	cfg, dir, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	panels, err := cfg.Panels()
	if err != nil {
		return nil, err
	}
	catalog, err := cfg.CatalogItems()
	if err != nil {
		return nil, err
	}

	opts := layout.Options{
		Preferences: state.NewFileStore(dir),
		Logger:      logger.Named("layout"),
	}
	shutdown := func() {}
	tp, err := trace.NewProvider(ctx)
	if err != nil {
		logger.Warn("tracing disabled", zap.Error(err))
	} else if tp != nil {
		opts.Observer = trace.NewObserver(tp)
		shutdown = func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Warn("trace shutdown", zap.Error(err))
			}
		}
	}

	store := layout.New[document.Descriptor](opts)
	store.InitLayout(panels)
	store.Settle()
	logger.Info("workspace loaded",
		zap.Int("panels", len(store.Panels())),
		zap.String("highlighted", store.Highlighted()),
		zap.String("state_dir", dir))
	return &workspace{store: store, catalog: catalog, shutdown: shutdown}, nil
}

func runWorkspace(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace(cmd.Context())
	if err != nil {
		return err
	}
	defer ws.shutdown()

	model := ui.NewAppModel(ws.store, ws.catalog, logger).AsTeaModel()
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run workspace: %w", err)
	}
	return nil
}
