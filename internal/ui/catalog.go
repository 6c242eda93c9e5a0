package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"tabspace/internal/document"
	"tabspace/internal/layout"
)

// CatalogModal picks a catalog entry to open next to the focused panel.
type CatalogModal struct {
	list list.Model
}

type catalogItem struct {
	index int
	desc  document.Descriptor
}

func (c catalogItem) FilterValue() string { return c.desc.Label() + " " + c.desc.Route }
func (c catalogItem) Title() string       { return c.desc.Label() }
func (c catalogItem) Description() string {
	parts := []string{string(c.desc.Kind)}
	if c.desc.Tenant != "" {
		parts = append(parts, c.desc.Tenant)
	}
	if c.desc.Route != "" {
		parts = append(parts, c.desc.Route)
	}
	return strings.Join(parts, " · ")
}

// Ensure CatalogModal implements View.
var _ View = (*CatalogModal)(nil)

// NewCatalogModal creates a picker over the catalog entries.
func NewCatalogModal(items []layout.ExternalItem[document.Descriptor]) *CatalogModal {
	listItems := make([]list.Item, len(items))
	for i, it := range items {
		listItems[i] = catalogItem{index: i, desc: it.Content}
	}
	l := list.New(listItems, NewCompactListDelegate(), 48, 14)
	l.Title = "Open"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = Styles.Title
	return &CatalogModal{list: l}
}

// Init implements View.
func (m *CatalogModal) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *CatalogModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return DismissModalMsg{} }
		case "enter":
			return m, m.insert(layout.Center)
		case "ctrl+l":
			return m, m.insert(layout.Right)
		case "ctrl+h":
			return m, m.insert(layout.Left)
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *CatalogModal) insert(dir layout.Direction) tea.Cmd {
	sel, ok := m.list.SelectedItem().(catalogItem)
	if !ok {
		return nil
	}
	return func() tea.Msg { return InsertCatalogMsg{Index: sel.index, Dir: dir} }
}

// View implements View.
func (m *CatalogModal) View() string {
	help := "Enter: open here  Ctrl+L/Ctrl+H: split right/left  Esc: cancel"
	return Styles.BoxCompact.Render(m.list.View() + "\n" + Styles.Hint.Render(help))
}
