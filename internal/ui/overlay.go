package ui

import tea "github.com/charmbracelet/bubbletea"

// View is a Bubble Tea model whose Update returns a View, so a parent can
// hold it in a field or on the overlay stack.
type View interface {
	Init() tea.Cmd
	Update(tea.Msg) (View, tea.Cmd)
	View() string
}

type overlay struct {
	view    View
	dismiss string
	mode    AppMode
}

// OverlayStack holds the modals drawn over the workspace, topmost last. Keys
// go to the topmost modal before any binding.
type OverlayStack struct {
	open []overlay
}

// Open pushes view. dismiss closes it whatever state it is in, and mode is
// the AppMode while it is on top.
func (s *OverlayStack) Open(view View, dismiss string, mode AppMode) {
	s.open = append(s.open, overlay{view: view, dismiss: dismiss, mode: mode})
}

// Close drops the topmost overlay and reports whether there was one.
func (s *OverlayStack) Close() bool {
	if len(s.open) == 0 {
		return false
	}
	s.open = s.open[:len(s.open)-1]
	return true
}

// Len returns the number of open overlays.
func (s *OverlayStack) Len() int { return len(s.open) }

// Top returns the topmost view.
func (s *OverlayStack) Top() (View, bool) {
	if len(s.open) == 0 {
		return nil, false
	}
	return s.open[len(s.open)-1].view, true
}

// Mode returns the topmost overlay's mode, or ModeWorkspace when none is open.
func (s *OverlayStack) Mode() AppMode {
	if len(s.open) == 0 {
		return ModeWorkspace
	}
	return s.open[len(s.open)-1].mode
}

// HandleKey closes the topmost overlay on its dismiss key and passes any
// other key to it. handled is false when no overlay is open.
func (s *OverlayStack) HandleKey(msg tea.KeyMsg) (cmd tea.Cmd, handled bool) {
	if len(s.open) == 0 {
		return nil, false
	}
	if msg.String() == s.open[len(s.open)-1].dismiss {
		s.Close()
		return nil, true
	}
	return s.Update(msg), true
}

// Update forwards msg to the topmost view and keeps the view it returns.
func (s *OverlayStack) Update(msg tea.Msg) tea.Cmd {
	if len(s.open) == 0 {
		return nil
	}
	top := &s.open[len(s.open)-1]
	var cmd tea.Cmd
	top.view, cmd = top.view.Update(msg)
	return cmd
}
