package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tabspace/internal/tmux"
)

// tmuxRunner is swapped out in tests.
var tmuxRunner tmux.Runner = tmux.ExecRunner{}

// tmuxCmd mirrors the panels into tmux panes
var tmuxCmd = &cobra.Command{
	Use:   "tmux",
	Short: "Mirror the workspace panels into the current tmux window",
	Long: `Splits the current tmux pane so the window holds one pane per panel,
sized by the panel proportions and titled after each panel's showing tab.

Must be run inside tmux.`,
	Args: cobra.NoArgs,
	RunE: runTmux,
}

func runTmux(cmd *cobra.Command, args []string) error {
	if _, ok := tmuxRunner.(tmux.ExecRunner); ok && !tmux.InTmux() {
		return tmux.ErrNotInTmux
	}
	ws, err := openWorkspace(cmd.Context())
	if err != nil {
		return err
	}
	defer ws.shutdown()

	panels := ws.store.Panels()
	panes := make([]tmux.Pane, len(panels))
	for i, p := range panels {
		title := p.ID
		if t := p.Showing(); t != nil {
			title = t.Content.Label()
		}
		panes[i].Title = title
		if p.Size != nil {
			panes[i].Size = *p.Size
		}
	}
	ids, err := tmux.Mirror(tmuxRunner, panes)
	if err != nil {
		return fmt.Errorf("mirror layout: %w", err)
	}
	logger.Info("mirrored layout into tmux", zap.Strings("panes", ids))
	fmt.Fprintf(cmd.OutOrStdout(), "created %d panes\n", len(ids))
	return nil
}
