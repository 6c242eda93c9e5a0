package layout

import (
	"errors"
	"fmt"
)

// HighlightKey is the preferences key holding the last highlighted panel id.
const HighlightKey = "layout.highlightedPanel"

var (
	// ErrPanelNotFound is returned when an operation requires a panel that does not exist.
	ErrPanelNotFound = errors.New("panel not found")
	// ErrTabNotFound is returned when an operation requires a tab that does not exist.
	ErrTabNotFound = errors.New("tab not found")
	// ErrDuplicateTab is returned when a tab id is already used by another tab.
	ErrDuplicateTab = errors.New("duplicate tab id")
)

// Direction says where a dropped tab lands relative to its target.
type Direction string

const (
	Left   Direction = "left"
	Right  Direction = "right"
	Center Direction = "center"
)

// Valid reports whether d is one of Left, Right or Center.
func (d Direction) Valid() bool {
	switch d {
	case Left, Right, Center:
		return true
	}
	return false
}

// ParseDirection converts "left", "right" or "center" into a Direction.
func ParseDirection(s string) (Direction, error) {
	d := Direction(s)
	if !d.Valid() {
		return "", fmt.Errorf("invalid direction %q", s)
	}
	return d, nil
}

// Tab is one open content view. Content is the application payload; Parent and
// Initialized are maintained by the Store.
type Tab[C any] struct {
	ID          string `json:"id" yaml:"id"`
	Content     C      `json:"content" yaml:"content"`
	Parent      string `json:"parent" yaml:"parent"`
	Initialized bool   `json:"initialized" yaml:"initialized"`
}

// Panel is a visible region hosting an ordered strip of tabs.
type Panel[C any] struct {
	ID              string    `json:"id" yaml:"id"`
	Tabs            []*Tab[C] `json:"tabs" yaml:"tabs"`
	ShowingTabIndex int       `json:"showingTabIndex" yaml:"showingTabIndex"`
	Size            *float64  `json:"size,omitempty" yaml:"size,omitempty"`
	ParentID        string    `json:"parentId,omitempty" yaml:"parentId,omitempty"`
}

// Showing returns the tab currently shown by the panel, or nil for an empty panel.
func (p *Panel[C]) Showing() *Tab[C] {
	if p == nil || p.ShowingTabIndex < 0 || p.ShowingTabIndex >= len(p.Tabs) {
		return nil
	}
	return p.Tabs[p.ShowingTabIndex]
}

// TabIndex returns the position of the tab with the given id, or -1.
func (p *Panel[C]) TabIndex(tabID string) int {
	for i, t := range p.Tabs {
		if t.ID == tabID {
			return i
		}
	}
	return -1
}

// PaneSize is one entry of a split-pane resize report.
type PaneSize struct {
	Min  float64
	Max  float64
	Size float64
}

// ExternalItem is content dragged in from outside the layout tree, such as a
// catalog entry. ID is a hint only; the Store derives a fresh tab id from it.
type ExternalItem[C any] struct {
	ID      string
	Content C
}

// Cloner is implemented by content types that need a deep copy when the Store
// takes ownership of them. Value types without references can skip it.
type Cloner[C any] interface {
	Clone() C
}
