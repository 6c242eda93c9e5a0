package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"tabspace/internal/layout"
)

// FocusNextPanelMsg moves focus to the panel on the right (wrapping).
type FocusNextPanelMsg struct{}

// FocusPrevPanelMsg moves focus to the panel on the left (wrapping).
type FocusPrevPanelMsg struct{}

// NextTabMsg shows the next tab of the focused panel.
type NextTabMsg struct{}

// PrevTabMsg shows the previous tab of the focused panel.
type PrevTabMsg struct{}

// ReorderTabMsg swaps the showing tab with its neighbour in Dir.
type ReorderTabMsg struct {
	Dir layout.Direction
}

// CloseTabMsg closes the showing tab of the focused panel.
type CloseTabMsg struct{}

// NewTabMsg appends a blank document to the focused panel.
type NewTabMsg struct{}

// SplitTabMsg moves the showing tab into a new panel beside its own.
type SplitTabMsg struct {
	Dir layout.Direction
}

// MoveTabMsg moves the showing tab into the neighbouring panel in Dir.
type MoveTabMsg struct {
	Dir layout.Direction
}

// ResizeMsg grows (positive) or shrinks the focused panel by Delta percent.
type ResizeMsg struct {
	Delta float64
}

// ShowCatalogMsg opens the catalog overlay.
type ShowCatalogMsg struct{}

// InsertCatalogMsg inserts catalog entry Index next to the focused panel.
type InsertCatalogMsg struct {
	Index int
	Dir   layout.Direction
}

// DismissModalMsg closes the top overlay.
type DismissModalMsg struct{}

// StatusMsg replaces the status line text. Err takes precedence over Text.
type StatusMsg struct {
	Text string
	Err  error
}

// settleMsg runs the store's deferred phase once the frame has rendered.
type settleMsg struct{}

func settleCmd() tea.Msg { return settleMsg{} }

// send wraps a message in a tea.Cmd for keybindings.
func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
