package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"tabspace/internal/document"
	"tabspace/internal/layout"
	"tabspace/internal/ui/textutil"
)

const statusHint = "SPC menu  tab/S-tab panel  ]/[ tab  </> reorder  x close  n new  +/- resize"

// AppModel is the root model: the workspace, its overlays and the status line.
type AppModel struct {
	Workspace  *WorkspaceView
	Catalog    []layout.ExternalItem[document.Descriptor]
	KeyHandler *KeyHandler
	Overlays   OverlayStack
	Logger     *zap.Logger

	Status    string
	StatusErr bool
	Width     int
	Height    int
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return tea.Batch(a.Workspace.Init(), settleCmd)
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.Width, a.Height = msg.Width, msg.Height
		a.Workspace.SetSize(msg.Width, max(msg.Height-1, 0))
		return a, nil
	case StatusMsg:
		a.setStatus(msg)
		return a, nil
	case ShowCatalogMsg:
		if len(a.Catalog) == 0 {
			return a, status("catalog is empty")
		}
		a.Overlays.Open(NewCatalogModal(a.Catalog), "esc", ModeCatalog)
		return a, nil
	case DismissModalMsg:
		a.Overlays.Close()
		return a, nil
	case InsertCatalogMsg:
		a.Overlays.Close()
		if msg.Index < 0 || msg.Index >= len(a.Catalog) {
			return a, nil
		}
		a.Workspace.Store.InsertExternal(a.Catalog[msg.Index], a.Workspace.Store.Highlighted(), msg.Dir)
		return a, settleCmd
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if cmd, handled := a.Overlays.HandleKey(msg); handled {
			return a, cmd
		}
		a.Status, a.StatusErr = "", false
		if a.KeyHandler != nil {
			if consumed, keyCmd := a.KeyHandler.Handle(msg, a.Overlays.Mode()); consumed {
				return a, keyCmd
			}
		}
	case tea.MouseMsg:
		if a.Overlays.Len() > 0 {
			return a, nil
		}
	default:
		if a.Overlays.Len() > 0 {
			overlayCmd := a.Overlays.Update(msg)
			_, cmd := a.Workspace.Update(msg)
			return a, tea.Batch(overlayCmd, cmd)
		}
	}

	_, cmd := a.Workspace.Update(msg)
	return a, cmd
}

func (a *appModelAdapter) setStatus(msg StatusMsg) {
	if msg.Err != nil {
		a.Status, a.StatusErr = msg.Err.Error(), true
		if a.Logger != nil {
			a.Logger.Warn("layout operation failed", zap.Error(msg.Err))
		}
		return
	}
	a.Status, a.StatusErr = msg.Text, false
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	footer := a.footer()
	height := max(a.Height-lipgloss.Height(footer), 0)
	var body string
	if top, ok := a.Overlays.Top(); ok {
		body = lipgloss.Place(a.Width, height, lipgloss.Center, lipgloss.Center, top.View())
	} else {
		body = a.Workspace.Render(height)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}

func (a *appModelAdapter) footer() string {
	if a.KeyHandler != nil && a.KeyHandler.LeaderWaiting {
		if help := RenderKeybindHelp(a.KeyHandler, a.Overlays.Mode()); help != "" {
			return help
		}
	}
	width := max(a.Width, 1)
	switch {
	case a.StatusErr:
		return Styles.Error.Render(textutil.Fit("error: "+a.Status, width))
	case a.Status != "":
		return Styles.Normal.Render(textutil.Fit(a.Status, width))
	}
	focused := a.Workspace.Store.Highlighted()
	return Styles.Hint.Render(textutil.Fit(fmt.Sprintf("[%s]  %s", focused, statusHint), width))
}

// workspaceBindings are the keys active while no overlay is open.
var workspaceBindings = []struct {
	seq, desc string
	msg       tea.Msg
}{
	{"tab", "Next panel", FocusNextPanelMsg{}},
	{"shift+tab", "Previous panel", FocusPrevPanelMsg{}},
	{"]", "Next tab", NextTabMsg{}},
	{"[", "Previous tab", PrevTabMsg{}},
	{">", "Reorder right", ReorderTabMsg{Dir: layout.Right}},
	{"<", "Reorder left", ReorderTabMsg{Dir: layout.Left}},
	{"x", "Close tab", CloseTabMsg{}},
	{"n", "New tab", NewTabMsg{}},
	{"+", "Grow panel", ResizeMsg{Delta: 5}},
	{"-", "Shrink panel", ResizeMsg{Delta: -5}},
	{"SPC s l", "Split right", SplitTabMsg{Dir: layout.Right}},
	{"SPC s h", "Split left", SplitTabMsg{Dir: layout.Left}},
	{"SPC m l", "Move right", MoveTabMsg{Dir: layout.Right}},
	{"SPC m h", "Move left", MoveTabMsg{Dir: layout.Left}},
	{"SPC o", "Open…", ShowCatalogMsg{}},
}

// NewAppModel creates the root application model over an initialized store.
func NewAppModel(store *Store, catalog []layout.ExternalItem[document.Descriptor], logger *zap.Logger) *AppModel {
	if logger == nil {
		logger = zap.NewNop()
	}
	reg := NewKeybindRegistry()
	reg.Bind("ctrl+c", "Quit", tea.Quit)
	reg.Bind("SPC q", "Quit", tea.Quit)
	for _, b := range workspaceBindings {
		reg.Bind(b.seq, b.desc, send(b.msg), ModeWorkspace)
	}
	return &AppModel{
		Workspace:  NewWorkspaceView(store),
		Catalog:    catalog,
		KeyHandler: NewKeyHandler(reg),
		Logger:     logger,
	}
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}
