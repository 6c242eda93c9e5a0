package ui

import "tabspace/internal/layout"

// ResolveDropDirection maps a drop at column x over a box starting at left
// with the given width: the outer thirds split left or right, the middle
// third drops into the box.
func ResolveDropDirection(x, left, width int) layout.Direction {
	if width <= 0 {
		return layout.Center
	}
	rel := x - left
	switch {
	case rel*3 < width:
		return layout.Left
	case rel*3 >= 2*width:
		return layout.Right
	default:
		return layout.Center
	}
}

// tabDropDirection picks before or after a tab label by which half of it the
// pointer is over.
func tabDropDirection(x int, tr TabRegion) layout.Direction {
	if 2*(x-tr.X) < tr.Width {
		return layout.Left
	}
	return layout.Right
}
