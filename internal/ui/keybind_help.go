package ui

import (
	"maps"
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// newHelpModel returns a bubbles/help model styled with the shared theme.
func newHelpModel() help.Model {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true)
	h.Styles.ShortDesc = Styles.Muted
	h.Styles.ShortSeparator = Styles.Muted
	return h
}

// hintBindings turns leader hints into key bindings sorted by key, with esc last.
func hintBindings(hints map[string]string) []key.Binding {
	keys := slices.Sorted(maps.Keys(hints))
	bindings := make([]key.Binding, 0, len(keys)+1)
	for _, k := range keys {
		bindings = append(bindings, key.NewBinding(key.WithKeys(k), key.WithHelp(k, hints[k])))
	}
	return append(bindings, key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")))
}

// RenderKeybindHelp draws the bar shown while a leader sequence is typed:
// the sequence so far followed by the keys that can come next in mode.
func RenderKeybindHelp(h *KeyHandler, mode AppMode) string {
	if h == nil {
		return ""
	}
	seq := h.Sequence()
	hints := h.Registry.LeaderHints(seq, mode)
	if len(hints) == 0 {
		return ""
	}
	if seq == "" {
		seq = leader
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccent)).
		Padding(0, 1)
	return box.Render(Styles.Muted.Render(seq) + " " + newHelpModel().ShortHelpView(hintBindings(hints)))
}
