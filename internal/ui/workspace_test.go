package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabspace/internal/document"
	"tabspace/internal/layout"
)

func newTestWorkspace(t *testing.T) *WorkspaceView {
	t.Helper()
	s := newTestStore(docPanel("main", "Welcome", "Invoices"), docPanel("side", "Search"))
	w := NewWorkspaceView(s)
	w.SetSize(60, 10)
	return w
}

// apply sends msg and, like the program loop, delivers any settleMsg it yields.
func apply(t *testing.T, w *WorkspaceView, msg tea.Msg) []tea.Msg {
	t.Helper()
	_, cmd := w.Update(msg)
	return drain(t, w, cmd)
}

func drain(t *testing.T, w *WorkspaceView, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	var out []tea.Msg
	switch m := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range m {
			out = append(out, drain(t, w, c)...)
		}
	case settleMsg:
		w.Update(m)
	case nil:
	default:
		out = append(out, m)
	}
	return out
}

func tabIDs(p *layout.Panel[document.Descriptor]) []string {
	ids := make([]string, len(p.Tabs))
	for i, t := range p.Tabs {
		ids[i] = t.ID
	}
	return ids
}

func panelIDs(s *Store) []string {
	var ids []string
	for _, p := range s.Panels() {
		ids = append(ids, p.ID)
	}
	return ids
}

func mouse(action tea.MouseAction, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

func TestWorkspace_Render(t *testing.T) {
	w := newTestWorkspace(t)
	out := w.View()
	assert.Equal(t, 10, lipgloss.Height(out))
	assert.Equal(t, 60, lipgloss.Width(out))
	assert.Contains(t, out, "Welcome")
	assert.Contains(t, out, "Invoices")
	assert.Contains(t, out, "route  /welcome")
	assert.NotContains(t, out, "route  /invoices", "only the showing tab is described")
}

func TestWorkspace_RenderEmpty(t *testing.T) {
	w := NewWorkspaceView(newTestStore())
	w.SetSize(40, 10)
	assert.Contains(t, w.View(), "No panels")
}

func TestWorkspace_UpdateDefersSettle(t *testing.T) {
	w := newTestWorkspace(t)
	_, cmd := w.Update(ReorderTabMsg{Dir: layout.Right})
	require.NotNil(t, cmd)
	assert.True(t, w.Store.Pending(), "focus follow-up waits for the settle message")

	msg := cmd()
	assert.IsType(t, settleMsg{}, msg)
	w.Update(msg)
	assert.False(t, w.Store.Pending())

	p, _ := w.Store.Panel("main")
	assert.Equal(t, []string{"invoices", "welcome"}, tabIDs(p))
	assert.Equal(t, 1, p.ShowingTabIndex)
}

func TestWorkspace_TabNavigation(t *testing.T) {
	w := newTestWorkspace(t)
	apply(t, w, NextTabMsg{})
	p, _ := w.Store.Panel("main")
	assert.Equal(t, 1, p.ShowingTabIndex)
	assert.True(t, p.Tabs[1].Initialized)

	apply(t, w, NextTabMsg{})
	p, _ = w.Store.Panel("main")
	assert.Equal(t, 0, p.ShowingTabIndex, "wraps")

	apply(t, w, PrevTabMsg{})
	p, _ = w.Store.Panel("main")
	assert.Equal(t, 1, p.ShowingTabIndex)
}

func TestWorkspace_PanelFocus(t *testing.T) {
	w := newTestWorkspace(t)
	apply(t, w, FocusNextPanelMsg{})
	assert.Equal(t, "side", w.Store.Highlighted())
	apply(t, w, FocusNextPanelMsg{})
	assert.Equal(t, "main", w.Store.Highlighted())
	apply(t, w, FocusPrevPanelMsg{})
	assert.Equal(t, "side", w.Store.Highlighted())
}

func TestWorkspace_CloseAndNew(t *testing.T) {
	w := newTestWorkspace(t)
	apply(t, w, NewTabMsg{})
	p, _ := w.Store.Panel("main")
	require.Len(t, p.Tabs, 3)
	assert.Equal(t, "new-tab-1", p.Tabs[2].ID)
	assert.Equal(t, 2, p.ShowingTabIndex)

	apply(t, w, CloseTabMsg{})
	p, _ = w.Store.Panel("main")
	assert.Equal(t, []string{"welcome", "invoices"}, tabIDs(p))
	assert.Len(t, w.Store.Tabs(), 3)
}

func TestWorkspace_OperationErrorBecomesStatus(t *testing.T) {
	w := newTestWorkspace(t)
	w.Store.FocusPanelTab("ghost", 0)
	msgs := apply(t, w, NewTabMsg{})
	require.Len(t, msgs, 1)
	st, ok := msgs[0].(StatusMsg)
	require.True(t, ok)
	assert.ErrorIs(t, st.Err, layout.ErrPanelNotFound)
}

func TestWorkspace_SplitAndMove(t *testing.T) {
	w := newTestWorkspace(t)
	apply(t, w, NextTabMsg{}) // show invoices
	apply(t, w, SplitTabMsg{Dir: layout.Right})
	assert.Equal(t, []string{"main", "newPanel-1", "side"}, panelIDs(w.Store))
	assert.Equal(t, "newPanel-1", w.Store.Highlighted())

	apply(t, w, MoveTabMsg{Dir: layout.Right})
	// The split panel emptied and vanished; invoices joined side.
	assert.Equal(t, []string{"main", "side"}, panelIDs(w.Store))
	side, _ := w.Store.Panel("side")
	assert.Equal(t, []string{"search", "invoices"}, tabIDs(side))
	assert.Equal(t, "side", w.Store.Highlighted())

	msgs := apply(t, w, MoveTabMsg{Dir: layout.Right})
	require.Len(t, msgs, 1)
	assert.Equal(t, StatusMsg{Text: "no panel to the right"}, msgs[0])
}

func TestWorkspace_SplitLoneTabIsRefused(t *testing.T) {
	w := newTestWorkspace(t)
	apply(t, w, FocusNextPanelMsg{})
	msgs := apply(t, w, SplitTabMsg{Dir: layout.Left})
	require.Len(t, msgs, 1)
	assert.Equal(t, []string{"main", "side"}, panelIDs(w.Store))
}

func TestWorkspace_Resize(t *testing.T) {
	w := newTestWorkspace(t)
	_, cmd := w.Update(ResizeMsg{Delta: 10})
	require.NotNil(t, cmd)
	assert.IsType(t, settleMsg{}, cmd())
	main, _ := w.Store.Panel("main")
	side, _ := w.Store.Panel("side")
	require.NotNil(t, main.Size)
	require.NotNil(t, side.Size)
	assert.InDelta(t, 60, *main.Size, 1e-9)
	assert.InDelta(t, 40, *side.Size, 1e-9)
	assert.Equal(t, 36, ComputeRegions(w.Store.Panels(), 60, 10)[0].Width)
}

func TestWorkspace_ClickFocusesTab(t *testing.T) {
	w := newTestWorkspace(t)
	apply(t, w, mouse(tea.MouseActionPress, 31, tabStripRow))
	apply(t, w, mouse(tea.MouseActionRelease, 31, tabStripRow))
	assert.Equal(t, "side", w.Store.Highlighted())

	apply(t, w, mouse(tea.MouseActionPress, 12, tabStripRow))
	apply(t, w, mouse(tea.MouseActionRelease, 12, tabStripRow))
	main, _ := w.Store.Panel("main")
	assert.Equal(t, "main", w.Store.Highlighted())
	assert.Equal(t, 1, main.ShowingTabIndex)
}

func TestWorkspace_ClickBodyFocusesPanel(t *testing.T) {
	w := newTestWorkspace(t)
	apply(t, w, mouse(tea.MouseActionPress, 40, 5))
	assert.Equal(t, "side", w.Store.Highlighted())
}

func TestWorkspace_DragOntoTab(t *testing.T) {
	w := newTestWorkspace(t)
	// Drag Search onto the left half of Invoices.
	apply(t, w, mouse(tea.MouseActionPress, 33, tabStripRow))
	apply(t, w, mouse(tea.MouseActionMotion, 20, tabStripRow))
	assert.True(t, w.Dragging())
	apply(t, w, mouse(tea.MouseActionRelease, 12, tabStripRow))

	assert.False(t, w.Dragging())
	assert.Equal(t, []string{"main"}, panelIDs(w.Store))
	main, _ := w.Store.Panel("main")
	assert.Equal(t, []string{"welcome", "search", "invoices"}, tabIDs(main))
	assert.Equal(t, 1, main.ShowingTabIndex)
}

func TestWorkspace_DragOntoBodySplits(t *testing.T) {
	w := newTestWorkspace(t)
	// Drag Welcome onto the right third of side's body.
	apply(t, w, mouse(tea.MouseActionPress, 3, tabStripRow))
	apply(t, w, mouse(tea.MouseActionMotion, 40, 5))
	apply(t, w, mouse(tea.MouseActionRelease, 55, 5))

	assert.Equal(t, []string{"main", "side", "newPanel-1"}, panelIDs(w.Store))
	np, _ := w.Store.Panel("newPanel-1")
	assert.Equal(t, []string{"welcome"}, tabIDs(np))
	assert.Equal(t, "newPanel-1", w.Store.Highlighted())
}

func TestWorkspace_DragOntoStripAppends(t *testing.T) {
	w := newTestWorkspace(t)
	apply(t, w, mouse(tea.MouseActionPress, 3, tabStripRow))
	apply(t, w, mouse(tea.MouseActionMotion, 40, tabStripRow))
	apply(t, w, mouse(tea.MouseActionRelease, 50, tabStripRow))

	side, _ := w.Store.Panel("side")
	assert.Equal(t, []string{"search", "welcome"}, tabIDs(side))
}

func TestWorkspace_DragOffscreenCancels(t *testing.T) {
	w := newTestWorkspace(t)
	apply(t, w, mouse(tea.MouseActionPress, 3, tabStripRow))
	apply(t, w, mouse(tea.MouseActionMotion, 40, 20))
	apply(t, w, mouse(tea.MouseActionRelease, 40, 20))

	main, _ := w.Store.Panel("main")
	assert.Equal(t, []string{"welcome", "invoices"}, tabIDs(main))
	assert.False(t, w.Store.Pending())
}
