package ui

import "slices"

// FocusManager rotates focus across panel ids in display order.
type FocusManager struct {
	Current  string   // ID of the currently focused panel
	Order    []string // Panel ids left to right
	OnChange func(from, to string)
}

// Next advances focus to the next panel in order, wrapping at the end.
// Returns the new current focus ID.
func (f *FocusManager) Next() string {
	return f.step(1)
}

// Prev moves focus to the previous panel in order, wrapping at the start.
func (f *FocusManager) Prev() string {
	return f.step(-1)
}

func (f *FocusManager) step(delta int) string {
	if len(f.Order) == 0 {
		return ""
	}
	idx := slices.Index(f.Order, f.Current)
	if idx < 0 && delta < 0 {
		// An unknown current id behaves as if it sat just past the end.
		idx = len(f.Order)
	}
	n := len(f.Order)
	return f.set(f.Order[((idx+delta)%n+n)%n])
}

// SetFocus sets focus to the given panel ID.
// Returns true if the ID exists in order.
func (f *FocusManager) SetFocus(id string) bool {
	if !slices.Contains(f.Order, id) {
		return false
	}
	f.set(id)
	return true
}

func (f *FocusManager) set(id string) string {
	from := f.Current
	f.Current = id
	if f.OnChange != nil && from != id {
		f.OnChange(from, id)
	}
	return id
}
