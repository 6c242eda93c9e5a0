package ui

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// leader is the sequence token for the space bar, which starts a leader
// sequence. Sequences are written "SPC s l"; single keys use tea's key strings.
const leader = "SPC"

// submenuLabels name leader keys that open a second level, so "SPC s" reads
// "Split" instead of whichever split direction happened to be bound.
var submenuLabels = map[string]string{
	"s": "Split",
	"m": "Move",
}

type binding struct {
	cmd   tea.Cmd
	desc  string
	modes []AppMode // empty: every mode
}

func (b binding) activeIn(mode AppMode) bool {
	return b.cmd != nil && (len(b.modes) == 0 || slices.Contains(b.modes, mode))
}

// KeybindRegistry maps key sequences to commands, each optionally limited to
// a set of AppModes.
type KeybindRegistry struct {
	bindings map[string]binding
}

// NewKeybindRegistry creates an empty registry.
func NewKeybindRegistry() *KeybindRegistry {
	return &KeybindRegistry{bindings: make(map[string]binding)}
}

// Bind registers seq, replacing any earlier binding. With no modes the
// binding is active in every mode.
func (r *KeybindRegistry) Bind(seq, desc string, cmd tea.Cmd, modes ...AppMode) {
	r.bindings[normalizeSeq(seq)] = binding{cmd: cmd, desc: desc, modes: modes}
}

// Lookup returns the command bound to seq in mode, or nil.
func (r *KeybindRegistry) Lookup(seq string, mode AppMode) tea.Cmd {
	if b, ok := r.bindings[normalizeSeq(seq)]; ok && b.activeIn(mode) {
		return b.cmd
	}
	return nil
}

// continues reports whether a longer binding active in mode starts with seq.
func (r *KeybindRegistry) continues(seq string, mode AppMode) bool {
	prefix := normalizeSeq(seq) + " "
	for s, b := range r.bindings {
		if strings.HasPrefix(s, prefix) && b.activeIn(mode) {
			return true
		}
	}
	return false
}

// LeaderHints lists the keys that may follow seq in mode ("" means just SPC).
// Each key maps to its binding's description, or to a submenu label when
// more keys follow it.
func (r *KeybindRegistry) LeaderHints(seq string, mode AppMode) map[string]string {
	if seq == "" {
		seq = leader
	}
	prefix := normalizeSeq(seq) + " "
	out := make(map[string]string)
	for s, b := range r.bindings {
		rest, ok := strings.CutPrefix(s, prefix)
		if !ok || !b.activeIn(mode) {
			continue
		}
		next, deeper, _ := strings.Cut(rest, " ")
		switch {
		case deeper != "":
			if label, ok := submenuLabels[next]; ok {
				out[next] = label
			} else {
				out[next] = next + "…"
			}
		case out[next] == "":
			out[next] = b.desc
			if b.desc == "" {
				out[next] = s
			}
		}
	}
	return out
}

// normalizeSeq rewrites space in any spelling to SPC.
func normalizeSeq(seq string) string {
	parts := strings.Fields(seq)
	for i, p := range parts {
		parts[i] = keyPart(p)
	}
	return strings.Join(parts, " ")
}

// keyPart converts one tea key string to its sequence token.
func keyPart(s string) string {
	if s == " " || s == "space" {
		return leader
	}
	return s
}

// KeyHandler resolves key presses against a registry and tracks the leader
// sequence being typed.
type KeyHandler struct {
	Registry      *KeybindRegistry
	LeaderWaiting bool
	Buffer        []string // tokens typed since SPC, starting with SPC
}

// NewKeyHandler creates a handler over reg.
func NewKeyHandler(reg *KeybindRegistry) *KeyHandler {
	return &KeyHandler{Registry: reg}
}

// Sequence returns the leader sequence typed so far, such as "SPC s".
func (h *KeyHandler) Sequence() string {
	return strings.Join(h.Buffer, " ")
}

func (h *KeyHandler) reset() {
	h.LeaderWaiting = false
	h.Buffer = nil
}

// Handle resolves msg against the bindings active in mode. consumed is false
// when the key belongs to the focused view instead.
func (h *KeyHandler) Handle(msg tea.KeyMsg, mode AppMode) (consumed bool, cmd tea.Cmd) {
	part := keyPart(msg.String())
	switch {
	case part == "esc":
		waiting := h.LeaderWaiting
		h.reset()
		return waiting, nil
	case part == leader:
		h.LeaderWaiting = true
		h.Buffer = []string{leader}
		return true, nil
	case !h.LeaderWaiting:
		cmd = h.Registry.Lookup(part, mode)
		return cmd != nil, cmd
	}

	h.Buffer = append(h.Buffer, part)
	seq := h.Sequence()
	if cmd = h.Registry.Lookup(seq, mode); cmd != nil {
		h.reset()
		return true, cmd
	}
	if !h.Registry.continues(seq, mode) {
		h.reset()
	}
	return true, nil
}
