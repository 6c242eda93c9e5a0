package layout

import (
	"strconv"

	"go.uber.org/zap"
)

// Options configures a Store. The zero value is usable: ids come from
// UUIDSource, nothing is persisted, and logging and observation are disabled.
type Options struct {
	IDs         IDSource
	Preferences Preferences
	Observer    Observer
	Logger      *zap.Logger
}

// Store is the single source of truth for the panel/tab tree.
type Store[C any] struct {
	panels      []*Panel[C]
	registry    []*Tab[C] // flat list of all tabs, converges on Settle
	highlighted string
	pending     []func()

	ids      IDSource
	prefs    Preferences
	observer Observer
	logger   *zap.Logger
}

// New creates an empty Store. Call InitLayout to load panels.
func New[C any](opts Options) *Store[C] {
	s := &Store[C]{
		ids:      opts.IDs,
		prefs:    opts.Preferences,
		observer: opts.Observer,
		logger:   opts.Logger,
	}
	if s.ids == nil {
		s.ids = UUIDSource{}
	}
	if s.observer == nil {
		s.observer = nopObserver{}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// InitLayout replaces the whole layout. Panels without tabs are dropped, out of
// range showing indices reset to 0 and every tab is re-parented to the panel
// holding it. Highlight restore, registry rebuild and initialization marking
// run on the next Settle. A persisted highlight naming a panel that is not in
// the layout falls back to the first panel.
func (s *Store[C]) InitLayout(panels []*Panel[C]) {
	end := s.begin("InitLayout", "panels", strconv.Itoa(len(panels)))
	defer end(nil)

	kept := make([]*Panel[C], 0, len(panels))
	for _, p := range panels {
		if p == nil || len(p.Tabs) == 0 {
			continue
		}
		if p.ShowingTabIndex < 0 || p.ShowingTabIndex >= len(p.Tabs) {
			p.ShowingTabIndex = 0
		}
		for _, t := range p.Tabs {
			t.Parent = p.ID
		}
		kept = append(kept, p)
	}
	s.panels = kept

	s.later(func() {
		highlight := ""
		if s.prefs != nil {
			if v, ok := s.prefs.Get(HighlightKey); ok {
				highlight = v
			}
		}
		if s.panelIndex(highlight) < 0 {
			highlight = ""
			if len(s.panels) > 0 {
				highlight = s.panels[0].ID
			}
		}
		s.highlighted = highlight
		s.rebuildRegistry()
		for _, p := range s.panels {
			if t := p.Showing(); t != nil {
				t.Initialized = true
			}
		}
	})
}

// FocusPanelTab highlights panelID and, when the panel exists and tabIndex is
// valid, shows that tab. The highlight updates even for unknown panels.
func (s *Store[C]) FocusPanelTab(panelID string, tabIndex int) {
	end := s.begin("FocusPanelTab", "panel", panelID, "index", strconv.Itoa(tabIndex))
	defer end(nil)
	s.focus(panelID, tabIndex)
}

// ResizePanels writes sizes into panels by position. Extra sizes are ignored
// and panels past the end of sizes keep their current size.
func (s *Store[C]) ResizePanels(sizes []PaneSize) {
	end := s.begin("ResizePanels", "sizes", strconv.Itoa(len(sizes)))
	defer end(nil)
	for i, sz := range sizes {
		if i >= len(s.panels) {
			break
		}
		v := sz.Size
		s.panels[i].Size = &v
	}
}

// Settle runs the follow-up work queued by earlier operations. Work queued
// while settling runs in the same call.
func (s *Store[C]) Settle() {
	for len(s.pending) > 0 {
		queue := s.pending
		s.pending = nil
		for _, fn := range queue {
			fn()
		}
	}
}

// Pending reports whether follow-up work is waiting for Settle.
func (s *Store[C]) Pending() bool {
	return len(s.pending) > 0
}

// Highlighted returns the id of the focused panel, or "" if none.
func (s *Store[C]) Highlighted() string {
	return s.highlighted
}

// Panels returns a copy of the layout. Mutating it does not affect the Store.
func (s *Store[C]) Panels() []*Panel[C] {
	out := make([]*Panel[C], len(s.panels))
	for i, p := range s.panels {
		out[i] = copyPanel(p)
	}
	return out
}

// Panel returns a copy of the panel with the given id.
func (s *Store[C]) Panel(id string) (*Panel[C], bool) {
	p := s.panel(id)
	if p == nil {
		return nil, false
	}
	return copyPanel(p), true
}

// FocusedPanel returns a copy of the highlighted panel.
func (s *Store[C]) FocusedPanel() (*Panel[C], bool) {
	return s.Panel(s.highlighted)
}

// Tabs returns a copy of the flat tab registry.
func (s *Store[C]) Tabs() []Tab[C] {
	out := make([]Tab[C], len(s.registry))
	for i, t := range s.registry {
		out[i] = *t
	}
	return out
}

// Tab looks a tab up by id.
func (s *Store[C]) Tab(id string) (Tab[C], bool) {
	t := s.findTab(id)
	if t == nil {
		return Tab[C]{}, false
	}
	return *t, true
}

func (s *Store[C]) begin(op string, kv ...string) func(error) {
	attrs := make(map[string]string, len(kv)/2)
	fields := make([]zap.Field, 0, len(kv)/2+1)
	fields = append(fields, zap.String("op", op))
	for i := 0; i+1 < len(kv); i += 2 {
		attrs[kv[i]] = kv[i+1]
		fields = append(fields, zap.String(kv[i], kv[i+1]))
	}
	s.logger.Debug("layout operation", fields...)
	done := s.observer.Begin(op, attrs)
	return func(err error) {
		if err != nil {
			s.logger.Debug("layout operation failed", zap.String("op", op), zap.Error(err))
		}
		done(err)
	}
}

// skip records a best-effort operation that had nothing to act on.
func (s *Store[C]) skip(op, reason string) {
	s.logger.Debug("layout operation skipped", zap.String("op", op), zap.String("reason", reason))
}

func (s *Store[C]) later(fn func()) {
	s.pending = append(s.pending, fn)
}

func (s *Store[C]) focus(panelID string, tabIndex int) {
	s.setHighlighted(panelID)
	p := s.panel(panelID)
	if p == nil || tabIndex < 0 || tabIndex >= len(p.Tabs) {
		return
	}
	p.ShowingTabIndex = tabIndex
	p.Tabs[tabIndex].Initialized = true
}

func (s *Store[C]) setHighlighted(panelID string) {
	s.highlighted = panelID
	if s.prefs == nil {
		return
	}
	if err := s.prefs.Set(HighlightKey, panelID); err != nil {
		s.logger.Warn("persist highlighted panel", zap.String("panel", panelID), zap.Error(err))
	}
}

func (s *Store[C]) rebuildRegistry() {
	reg := make([]*Tab[C], 0, len(s.registry))
	for _, p := range s.panels {
		reg = append(reg, p.Tabs...)
	}
	s.registry = reg
}

// register adds t to the registry, replacing any entry with the same id in
// place. Tabs that left the layout before settling are not registered.
func (s *Store[C]) register(t *Tab[C]) {
	p := s.panel(t.Parent)
	if p == nil || p.TabIndex(t.ID) < 0 {
		return
	}
	if i := s.registryIndex(t.ID); i >= 0 {
		s.registry[i] = t
		return
	}
	s.registry = append(s.registry, t)
}

func (s *Store[C]) unregister(tabID string) {
	if i := s.registryIndex(tabID); i >= 0 {
		s.registry = append(s.registry[:i], s.registry[i+1:]...)
	}
}

func (s *Store[C]) registryIndex(tabID string) int {
	for i, t := range s.registry {
		if t.ID == tabID {
			return i
		}
	}
	return -1
}

func (s *Store[C]) panelIndex(id string) int {
	for i, p := range s.panels {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store[C]) panel(id string) *Panel[C] {
	if i := s.panelIndex(id); i >= 0 {
		return s.panels[i]
	}
	return nil
}

// findTab checks the registry first and falls back to walking the panels,
// since the registry may lag until Settle.
func (s *Store[C]) findTab(id string) *Tab[C] {
	if i := s.registryIndex(id); i >= 0 {
		t := s.registry[i]
		if p := s.panel(t.Parent); p != nil && p.TabIndex(id) >= 0 && p.Tabs[p.TabIndex(id)] == t {
			return t
		}
	}
	for _, p := range s.panels {
		if i := p.TabIndex(id); i >= 0 {
			return p.Tabs[i]
		}
	}
	return nil
}

func (s *Store[C]) cloneContent(c C) C {
	if cl, ok := any(c).(Cloner[C]); ok {
		return cl.Clone()
	}
	return c
}

func copyPanel[C any](p *Panel[C]) *Panel[C] {
	cp := *p
	cp.Tabs = make([]*Tab[C], len(p.Tabs))
	for i, t := range p.Tabs {
		tc := *t
		cp.Tabs[i] = &tc
	}
	if p.Size != nil {
		v := *p.Size
		cp.Size = &v
	}
	return &cp
}
