package ui

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tabspace/internal/document"
	"tabspace/internal/layout"
	"tabspace/internal/ui/textutil"
)

// Store is the layout store over document tabs.
type Store = layout.Store[document.Descriptor]

type panel = layout.Panel[document.Descriptor]

// dragState tracks a tab being dragged with the left button held.
type dragState struct {
	TabID   string
	PanelID string
	Index   int
	StartX  int
	StartY  int
	X, Y    int
	Moved   bool
}

// WorkspaceView renders the panel row and applies layout gestures to Store.
type WorkspaceView struct {
	Store  *Store
	Width  int
	Height int

	drag *dragState
}

// Ensure WorkspaceView implements View.
var _ View = (*WorkspaceView)(nil)

// NewWorkspaceView creates a view over store.
func NewWorkspaceView(store *Store) *WorkspaceView {
	return &WorkspaceView{Store: store}
}

// SetSize sets the area available to the panels.
func (w *WorkspaceView) SetSize(width, height int) {
	w.Width = width
	w.Height = height
}

// Dragging reports whether a tab drag is in progress.
func (w *WorkspaceView) Dragging() bool {
	return w.drag != nil && w.drag.Moved
}

// Init implements View.
func (w *WorkspaceView) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (w *WorkspaceView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case settleMsg:
		w.Store.Settle()
		return w, nil
	case tea.MouseMsg:
		return w, w.handleMouse(msg)
	case FocusNextPanelMsg:
		return w, w.cycleFocus(1)
	case FocusPrevPanelMsg:
		return w, w.cycleFocus(-1)
	case NextTabMsg:
		return w, w.stepTab(1)
	case PrevTabMsg:
		return w, w.stepTab(-1)
	case ReorderTabMsg:
		return w, w.reorder(msg.Dir)
	case CloseTabMsg:
		p, ok := w.Store.FocusedPanel()
		if !ok {
			return w, nil
		}
		return w, w.result(w.Store.CloseTab(p.ID, p.ShowingTabIndex))
	case NewTabMsg:
		_, err := w.Store.AppendTabToFocused(document.Blank())
		return w, w.result(err)
	case SplitTabMsg:
		p, ok := w.Store.FocusedPanel()
		if !ok || p.Showing() == nil {
			return w, nil
		}
		if len(p.Tabs) == 1 {
			return w, status("nothing to split: panel has one tab")
		}
		w.Store.SplitPanel(p.Showing().ID, p.ID, msg.Dir)
		return w, settleCmd
	case MoveTabMsg:
		return w, w.moveToNeighbour(msg.Dir)
	case ResizeMsg:
		return w, w.resize(msg.Delta)
	}
	return w, nil
}

// result turns an operation error into a status message, or settles.
func (w *WorkspaceView) result(err error) tea.Cmd {
	if err != nil {
		return tea.Batch(settleCmd, func() tea.Msg { return StatusMsg{Err: err} })
	}
	return settleCmd
}

func status(text string) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text} }
}

func (w *WorkspaceView) cycleFocus(delta int) tea.Cmd {
	panels := w.Store.Panels()
	if len(panels) == 0 {
		return nil
	}
	order := make([]string, len(panels))
	showing := make(map[string]int, len(panels))
	for i, p := range panels {
		order[i] = p.ID
		showing[p.ID] = p.ShowingTabIndex
	}
	fm := FocusManager{
		Current: w.Store.Highlighted(),
		Order:   order,
		OnChange: func(_, to string) {
			w.Store.FocusPanelTab(to, showing[to])
		},
	}
	if delta > 0 {
		fm.Next()
	} else {
		fm.Prev()
	}
	return settleCmd
}

func (w *WorkspaceView) stepTab(delta int) tea.Cmd {
	p, ok := w.Store.FocusedPanel()
	if !ok || len(p.Tabs) < 2 {
		return nil
	}
	n := len(p.Tabs)
	w.Store.FocusPanelTab(p.ID, ((p.ShowingTabIndex+delta)%n+n)%n)
	return settleCmd
}

// reorder swaps the showing tab with its neighbour in dir.
func (w *WorkspaceView) reorder(dir layout.Direction) tea.Cmd {
	p, ok := w.Store.FocusedPanel()
	if !ok || p.Showing() == nil {
		return nil
	}
	i := p.ShowingTabIndex
	j := i + 1
	if dir == layout.Left {
		j = i - 1
	}
	if j < 0 || j >= len(p.Tabs) {
		return nil
	}
	w.Store.ReorderWithinPanel(p.ID, p.Tabs[i].ID, p.Tabs[j].ID, dir)
	return settleCmd
}

// moveToNeighbour moves the showing tab into the adjacent panel, after that
// panel's showing tab.
func (w *WorkspaceView) moveToNeighbour(dir layout.Direction) tea.Cmd {
	panels := w.Store.Panels()
	pi := slices.IndexFunc(panels, func(p *panel) bool { return p.ID == w.Store.Highlighted() })
	if pi < 0 || panels[pi].Showing() == nil {
		return nil
	}
	ni := pi + 1
	if dir == layout.Left {
		ni = pi - 1
	}
	if ni < 0 || ni >= len(panels) {
		return status(fmt.Sprintf("no panel to the %s", dir))
	}
	src := panels[pi].Showing()
	if target := panels[ni].Showing(); target != nil {
		w.Store.MoveTab(src.ID, target.ID, layout.Right)
	} else {
		w.Store.SplitPanel(src.ID, panels[ni].ID, layout.Center)
	}
	return settleCmd
}

func (w *WorkspaceView) resize(delta float64) tea.Cmd {
	panels := w.Store.Panels()
	pi := slices.IndexFunc(panels, func(p *panel) bool { return p.ID == w.Store.Highlighted() })
	if pi < 0 || len(panels) < 2 {
		return nil
	}
	sizes := make([]*float64, len(panels))
	for i, p := range panels {
		sizes[i] = p.Size
	}
	shares := Grow(Shares(sizes), pi, delta)
	report := make([]layout.PaneSize, len(shares))
	for i, s := range shares {
		report[i] = layout.PaneSize{Min: minShare, Max: 100, Size: s}
	}
	w.Store.ResizePanels(report)
	return settleCmd
}

func (w *WorkspaceView) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		regions := w.regions()
		hit, ok := HitTest(regions, msg.X, msg.Y)
		if !ok {
			return nil
		}
		if hit.Tab != nil {
			w.drag = &dragState{
				TabID:   hit.Tab.TabID,
				PanelID: regions[hit.Panel].PanelID,
				Index:   hit.Tab.Index,
				StartX:  msg.X,
				StartY:  msg.Y,
				X:       msg.X,
				Y:       msg.Y,
			}
			return nil
		}
		id := regions[hit.Panel].PanelID
		if p, ok := w.Store.Panel(id); ok {
			w.Store.FocusPanelTab(id, p.ShowingTabIndex)
			return settleCmd
		}
	case tea.MouseActionMotion:
		if w.drag != nil {
			w.drag.X, w.drag.Y = msg.X, msg.Y
			if msg.X != w.drag.StartX || msg.Y != w.drag.StartY {
				w.drag.Moved = true
			}
		}
	case tea.MouseActionRelease:
		d := w.drag
		w.drag = nil
		if d == nil {
			return nil
		}
		if !d.Moved && msg.X == d.StartX && msg.Y == d.StartY {
			w.Store.FocusPanelTab(d.PanelID, d.Index)
			return settleCmd
		}
		return w.drop(d, msg.X, msg.Y)
	}
	return nil
}

// drop finishes a drag at (x, y). Off-panel releases cancel.
func (w *WorkspaceView) drop(d *dragState, x, y int) tea.Cmd {
	regions := w.regions()
	hit, ok := HitTest(regions, x, y)
	if !ok {
		return nil
	}
	r := regions[hit.Panel]
	switch {
	case hit.Tab != nil:
		if hit.Tab.TabID == d.TabID {
			return nil
		}
		w.Store.MoveTab(d.TabID, hit.Tab.TabID, tabDropDirection(x, *hit.Tab))
	case hit.Strip:
		w.Store.SplitPanel(d.TabID, r.PanelID, layout.Center)
	default:
		w.Store.SplitPanel(d.TabID, r.PanelID, ResolveDropDirection(x, r.X, r.Width))
	}
	return settleCmd
}

func (w *WorkspaceView) regions() []Region {
	return ComputeRegions(w.Store.Panels(), w.Width, w.Height)
}

// View implements View.
func (w *WorkspaceView) View() string {
	return w.Render(w.Height)
}

// Render draws the panels height rows tall.
func (w *WorkspaceView) Render(height int) string {
	panels := w.Store.Panels()
	if len(panels) == 0 {
		return Styles.Empty.Render("No panels. Press n to open a tab.")
	}
	if w.Width <= 0 || height < 3 {
		return ""
	}
	regions := ComputeRegions(panels, w.Width, height)
	dropTarget := ""
	if w.Dragging() {
		if hit, ok := HitTest(regions, w.drag.X, w.drag.Y); ok {
			dropTarget = regions[hit.Panel].PanelID
		}
	}
	boxes := make([]string, len(panels))
	for i, p := range panels {
		style := Styles.Panel
		switch p.ID {
		case dropTarget:
			style = Styles.PanelDrop
		case w.Store.Highlighted():
			style = Styles.PanelFocused
		}
		r := regions[i]
		inner := r.innerWidth()
		body := w.renderPanel(p, r, inner, height-2)
		boxes[i] = style.Width(inner).Height(height - 2).Render(body)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func (w *WorkspaceView) renderPanel(p *panel, r Region, inner, rows int) string {
	lines := []string{w.renderStrip(p, r, inner), Styles.Muted.Render(strings.Repeat("─", inner))}
	lines = append(lines, renderBody(p.Showing(), inner)...)
	if len(lines) > rows {
		lines = lines[:rows]
	}
	return strings.Join(lines, "\n")
}

func (w *WorkspaceView) renderStrip(p *panel, r Region, inner int) string {
	var b strings.Builder
	used := 0
	for i, tr := range r.Tabs {
		if i > 0 {
			b.WriteString(Styles.Muted.Render("│"))
			used++
		}
		t := p.Tabs[tr.Index]
		style := Styles.TabInactive
		switch {
		case tr.Index == p.ShowingTabIndex:
			style = Styles.TabActive
		case !t.Initialized:
			style = Styles.TabLazy
		}
		if w.drag != nil && w.drag.Moved && t.ID == w.drag.TabID {
			style = style.Reverse(true)
		}
		b.WriteString(style.Render(tr.Label))
		used += tr.Width
	}
	if hidden := len(p.Tabs) - len(r.Tabs); hidden > 0 && used+2 <= inner {
		more := textutil.Truncate(fmt.Sprintf(" +%d", hidden), inner-used)
		b.WriteString(Styles.Hint.Render(more))
		used += textutil.Width(more)
	}
	if used < inner {
		b.WriteString(strings.Repeat(" ", inner-used))
	}
	return b.String()
}

// renderBody describes the showing document.
func renderBody(t *layout.Tab[document.Descriptor], inner int) []string {
	if t == nil {
		return []string{Styles.Empty.Render(textutil.Fit("empty panel", inner))}
	}
	if !t.Initialized {
		return []string{Styles.Empty.Render(textutil.Fit("loading…", inner))}
	}
	d := t.Content
	lines := []string{
		Styles.Title.Render(textutil.Fit(d.Label(), inner)),
		"",
		Styles.Normal.Render(textutil.Fit("kind   "+string(d.Kind), inner)),
	}
	if d.Tenant != "" {
		lines = append(lines, Styles.Normal.Render(textutil.Fit("tenant "+d.Tenant, inner)))
	}
	if d.Route != "" {
		lines = append(lines, Styles.Normal.Render(textutil.Fit("route  "+d.Route, inner)))
	}
	for _, k := range slices.Sorted(maps.Keys(d.Meta)) {
		lines = append(lines, Styles.Muted.Render(textutil.Fit(k+": "+d.Meta[k], inner)))
	}
	lines = append(lines, "", Styles.Hint.Render(textutil.Fit("tab "+t.ID, inner)))
	return lines
}
