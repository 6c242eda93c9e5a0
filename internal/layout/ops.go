package layout

import (
	"fmt"
	"slices"
	"strconv"
)

// CloseTab closes the tab at tabIndex in panelID and drops it from the registry.
//
// The last tab of the whole workspace is never closed; the call returns nil
// without effect. A panel left without tabs is removed and focus moves to the
// panel before it (or the new first panel).
func (s *Store[C]) CloseTab(panelID string, tabIndex int) error {
	end := s.begin("CloseTab", "panel", panelID, "index", strconv.Itoa(tabIndex))
	_, err := s.closeTab(panelID, tabIndex, true)
	end(err)
	return err
}

// DetachTab is CloseTab without removing the tab from the registry. It is the
// first half of every move.
func (s *Store[C]) DetachTab(panelID string, tabIndex int) error {
	end := s.begin("DetachTab", "panel", panelID, "index", strconv.Itoa(tabIndex))
	_, err := s.closeTab(panelID, tabIndex, false)
	end(err)
	return err
}

// closeTab reports whether the tab was removed. It returns false with a nil
// error when the last-tab protection refused the close.
func (s *Store[C]) closeTab(panelID string, tabIndex int, deleteComponent bool) (bool, error) {
	pi := s.panelIndex(panelID)
	if pi < 0 {
		return false, fmt.Errorf("close tab %d: %w: %s", tabIndex, ErrPanelNotFound, panelID)
	}
	if len(s.registry) == 1 {
		s.skip("CloseTab", "last tab in workspace")
		return false, nil
	}
	p := s.panels[pi]
	if tabIndex < 0 || tabIndex >= len(p.Tabs) {
		return false, fmt.Errorf("close tab in panel %s: %w: index %d", panelID, ErrTabNotFound, tabIndex)
	}

	tab := p.Tabs[tabIndex]
	p.Tabs = slices.Delete(p.Tabs, tabIndex, tabIndex+1)
	if deleteComponent {
		s.unregister(tab.ID)
	}

	if len(p.Tabs) == 0 {
		s.panels = slices.Delete(s.panels, pi, pi+1)
		if len(s.panels) > 0 {
			s.focus(s.panels[max(pi-1, 0)].ID, 0)
		}
		return true, nil
	}

	p.ShowingTabIndex = max(tabIndex-1, 0)
	p.Tabs[p.ShowingTabIndex].Initialized = true
	return true, nil
}

// ReorderWithinPanel moves sourceTabID next to targetTabID inside one panel:
// before it for Left, after it otherwise. The moved tab gains focus on Settle.
func (s *Store[C]) ReorderWithinPanel(panelID, sourceTabID, targetTabID string, dir Direction) {
	end := s.begin("ReorderWithinPanel", "panel", panelID, "source", sourceTabID, "target", targetTabID, "direction", string(dir))
	defer end(nil)
	s.reorder(panelID, sourceTabID, targetTabID, dir)
}

func (s *Store[C]) reorder(panelID, sourceTabID, targetTabID string, dir Direction) {
	p := s.panel(panelID)
	if p == nil {
		s.skip("ReorderWithinPanel", "panel gone")
		return
	}
	if sourceTabID == targetTabID {
		return
	}
	si := p.TabIndex(sourceTabID)
	if si < 0 || p.TabIndex(targetTabID) < 0 {
		s.skip("ReorderWithinPanel", "tab gone")
		return
	}

	tab := p.Tabs[si]
	p.Tabs = slices.Delete(p.Tabs, si, si+1)
	at := insertionIndex(p.TabIndex(targetTabID), dir)
	p.Tabs = slices.Insert(p.Tabs, at, tab)

	s.later(func() {
		if i := p.TabIndex(tab.ID); i >= 0 && s.panel(p.ID) == p {
			s.focus(p.ID, i)
		}
	})
}

// MoveTab moves sourceTabID next to targetTabID. Tabs sharing a panel are
// reordered; otherwise the source leaves its panel, joins the target's and
// takes focus there.
func (s *Store[C]) MoveTab(sourceTabID, targetTabID string, dir Direction) {
	end := s.begin("MoveTab", "source", sourceTabID, "target", targetTabID, "direction", string(dir))
	defer end(nil)

	src, tgt := s.findTab(sourceTabID), s.findTab(targetTabID)
	if src == nil || tgt == nil {
		s.skip("MoveTab", "tab gone")
		return
	}
	if src.Parent == tgt.Parent {
		s.reorder(src.Parent, sourceTabID, targetTabID, dir)
		return
	}
	from, to := s.panel(src.Parent), s.panel(tgt.Parent)
	if from == nil || to == nil {
		s.skip("MoveTab", "panel gone")
		return
	}
	si := from.TabIndex(sourceTabID)
	if si < 0 {
		s.skip("MoveTab", "source not in its parent")
		return
	}
	if ok, err := s.closeTab(from.ID, si, false); !ok || err != nil {
		return
	}

	src.Parent = to.ID
	at := insertionIndex(to.TabIndex(targetTabID), dir)
	to.Tabs = slices.Insert(to.Tabs, at, src)
	s.focus(to.ID, at)
}

// SplitPanel takes sourceTabID out of its panel. Center appends it to
// targetPanelID; Left and Right put it alone in a new panel placed before or
// after the target.
func (s *Store[C]) SplitPanel(sourceTabID, targetPanelID string, dir Direction) {
	end := s.begin("SplitPanel", "source", sourceTabID, "target", targetPanelID, "direction", string(dir))
	defer end(nil)

	if !dir.Valid() {
		s.skip("SplitPanel", "invalid direction")
		return
	}
	src := s.findTab(sourceTabID)
	if src == nil {
		s.skip("SplitPanel", "tab gone")
		return
	}
	from := s.panel(src.Parent)
	if from == nil || s.panel(targetPanelID) == nil {
		s.skip("SplitPanel", "panel gone")
		return
	}
	if from.ID == targetPanelID && len(from.Tabs) == 1 {
		s.skip("SplitPanel", "lone tab onto its own panel")
		return
	}
	si := from.TabIndex(sourceTabID)
	if si < 0 {
		s.skip("SplitPanel", "source not in its parent")
		return
	}
	if ok, err := s.closeTab(from.ID, si, false); !ok || err != nil {
		return
	}
	s.place(src, targetPanelID, dir)
}

// InsertExternal adds content from outside the layout as a new tab, placed
// like SplitPanel. The tab id is the item id plus a unique suffix. The
// registry picks the tab up on Settle, replacing an entry with the same id
// rather than duplicating it.
func (s *Store[C]) InsertExternal(item ExternalItem[C], targetPanelID string, dir Direction) {
	end := s.begin("InsertExternal", "item", item.ID, "target", targetPanelID, "direction", string(dir))
	defer end(nil)

	if !dir.Valid() {
		s.skip("InsertExternal", "invalid direction")
		return
	}
	if s.panel(targetPanelID) == nil {
		s.skip("InsertExternal", "panel gone")
		return
	}
	tab := &Tab[C]{
		ID:      item.ID + "-" + s.ids.Next(),
		Content: s.cloneContent(item.Content),
	}
	s.place(tab, targetPanelID, dir)
	s.later(func() { s.register(tab) })
}

// place puts a detached tab into the layout relative to targetPanelID, which
// must exist.
func (s *Store[C]) place(tab *Tab[C], targetPanelID string, dir Direction) {
	ti := s.panelIndex(targetPanelID)
	target := s.panels[ti]
	if dir == Center {
		tab.Parent = target.ID
		target.Tabs = append(target.Tabs, tab)
		s.focus(target.ID, len(target.Tabs)-1)
		return
	}

	np := &Panel[C]{
		ID:       panelIDPrefix + s.ids.Next(),
		ParentID: target.ParentID,
	}
	tab.Parent = np.ID
	tab.Initialized = true
	np.Tabs = []*Tab[C]{tab}
	at := ti
	if dir == Right {
		at++
	}
	s.panels = slices.Insert(s.panels, at, np)
	s.focus(np.ID, 0)
}

// AppendTab opens content as a new focused tab at the end of panelID.
func (s *Store[C]) AppendTab(panelID string, content C) (Tab[C], error) {
	end := s.begin("AppendTab", "panel", panelID)
	t, err := s.appendTab(panelID, content)
	end(err)
	return t, err
}

// AppendTabToFocused opens content as a new tab in the highlighted panel.
func (s *Store[C]) AppendTabToFocused(content C) (Tab[C], error) {
	end := s.begin("AppendTabToFocused", "panel", s.highlighted)
	t, err := s.appendTab(s.highlighted, content)
	end(err)
	return t, err
}

func (s *Store[C]) appendTab(panelID string, content C) (Tab[C], error) {
	p := s.panel(panelID)
	if p == nil {
		return Tab[C]{}, fmt.Errorf("append tab: %w: %q", ErrPanelNotFound, panelID)
	}
	tab := &Tab[C]{
		ID:          tabIDPrefix + s.ids.Next(),
		Content:     content,
		Parent:      p.ID,
		Initialized: true,
	}
	p.Tabs = append(p.Tabs, tab)
	s.focus(p.ID, len(p.Tabs)-1)
	s.registry = append(s.registry, tab)
	return *tab, nil
}

// ReplaceTab swaps the tab oldTabID in panelID for a deep copy of next, keeping
// its slot. Used when a tab navigates to different content. The registry entry
// of the old tab is replaced too. next.ID must not belong to another tab.
func (s *Store[C]) ReplaceTab(panelID, oldTabID string, next Tab[C]) error {
	end := s.begin("ReplaceTab", "panel", panelID, "old", oldTabID, "new", next.ID)
	err := s.replaceTab(panelID, oldTabID, next)
	end(err)
	return err
}

func (s *Store[C]) replaceTab(panelID, oldTabID string, next Tab[C]) error {
	p := s.panel(panelID)
	if p == nil {
		return fmt.Errorf("replace tab %s: %w: %s", oldTabID, ErrPanelNotFound, panelID)
	}
	i := p.TabIndex(oldTabID)
	if i < 0 {
		return fmt.Errorf("replace tab in panel %s: %w: %s", panelID, ErrTabNotFound, oldTabID)
	}
	old := p.Tabs[i]
	if next.ID != "" && next.ID != old.ID && s.findTab(next.ID) != nil {
		return fmt.Errorf("replace tab %s: %w: %s", oldTabID, ErrDuplicateTab, next.ID)
	}
	repl := &Tab[C]{
		ID:          next.ID,
		Content:     s.cloneContent(next.Content),
		Parent:      p.ID,
		Initialized: old.Initialized || next.Initialized,
	}
	if repl.ID == "" {
		repl.ID = old.ID
	}
	p.Tabs[i] = repl

	if ri := s.registryIndex(old.ID); ri >= 0 {
		s.registry[ri] = repl
	} else if ri := s.registryIndex(repl.ID); ri >= 0 {
		s.registry[ri] = repl
	}
	return nil
}

// insertionIndex converts a target position into the slot before (Left) or
// after (anything else) it.
func insertionIndex(target int, dir Direction) int {
	if dir == Left {
		return target
	}
	return target + 1
}
