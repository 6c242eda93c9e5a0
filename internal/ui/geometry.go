package ui

import (
	"tabspace/internal/document"
	"tabspace/internal/layout"
	"tabspace/internal/ui/textutil"
)

const (
	// minPanelWidth keeps a panel wide enough for its border and one column.
	minPanelWidth = 3
	// maxLabelWidth caps a single tab label on the strip.
	maxLabelWidth = 18
	// tabStripRow is the screen row of the tab strip, just inside the top border.
	tabStripRow = 1
)

// TabRegion is the horizontal extent of one tab label on the strip.
type TabRegion struct {
	TabID string
	Index int
	X     int
	Width int
	Label string // padded plain text as drawn
}

// Region is the on-screen box of one panel.
type Region struct {
	PanelID string
	X       int
	Width   int
	Height  int
	Tabs    []TabRegion
}

// contains reports whether column x falls inside the region.
func (r Region) contains(x int) bool {
	return x >= r.X && x < r.X+r.Width
}

// innerWidth is the width inside the border.
func (r Region) innerWidth() int {
	return max(r.Width-2, 0)
}

// Shares converts panel sizes into percentages summing to 100. Panels without a
// size take the mean of the sized ones, or an equal share when none are sized.
func Shares(sizes []*float64) []float64 {
	if len(sizes) == 0 {
		return nil
	}
	var sum float64
	sized := 0
	for _, s := range sizes {
		if s != nil && *s > 0 {
			sum += *s
			sized++
		}
	}
	fill := 1.0
	if sized > 0 {
		fill = sum / float64(sized)
	}
	out := make([]float64, len(sizes))
	var total float64
	for i, s := range sizes {
		w := fill
		if s != nil && *s > 0 {
			w = *s
		}
		out[i] = w
		total += w
	}
	for i := range out {
		out[i] = 100 * out[i] / total
	}
	return out
}

// PanelWidths splits total columns by Shares. The last panel absorbs rounding.
func PanelWidths(sizes []*float64, total int) []int {
	shares := Shares(sizes)
	if len(shares) == 0 {
		return nil
	}
	out := make([]int, len(shares))
	used := 0
	for i, s := range shares[:len(shares)-1] {
		out[i] = max(int(float64(total)*s/100), minPanelWidth)
		used += out[i]
	}
	out[len(out)-1] = max(total-used, minPanelWidth)
	return out
}

// minShare is the smallest percentage a resize leaves any panel.
const minShare = 10.0

// Grow adds delta percentage points to shares[i], clamped so every panel keeps
// minShare, and scales the other panels to fill the remainder.
func Grow(shares []float64, i int, delta float64) []float64 {
	n := len(shares)
	out := make([]float64, n)
	copy(out, shares)
	if n < 2 || i < 0 || i >= n {
		return out
	}
	target := min(max(shares[i]+delta, minShare), 100-minShare*float64(n-1))
	rest := 100 - target
	others := 100 - shares[i]
	for j := range out {
		switch {
		case j == i:
			out[j] = target
		case others <= 0:
			out[j] = rest / float64(n-1)
		default:
			out[j] = shares[j] / others * rest
		}
	}
	return out
}

// tabLabel is the plain text drawn for a tab on the strip.
func tabLabel(t *layout.Tab[document.Descriptor]) string {
	return " " + textutil.Truncate(t.Content.Label(), maxLabelWidth) + " "
}

// ComputeRegions lays the panels out left to right across width columns and
// height rows. Tab labels that do not fit inside a panel's border are dropped
// from its strip.
func ComputeRegions(panels []*layout.Panel[document.Descriptor], width, height int) []Region {
	sizes := make([]*float64, len(panels))
	for i, p := range panels {
		sizes[i] = p.Size
	}
	widths := PanelWidths(sizes, width)
	regions := make([]Region, len(panels))
	x := 0
	for i, p := range panels {
		r := Region{PanelID: p.ID, X: x, Width: widths[i], Height: height}
		right := r.X + 1 + r.innerWidth()
		tx := r.X + 1
		for ti, t := range p.Tabs {
			label := tabLabel(t)
			w := textutil.Width(label)
			if tx+w > right {
				break
			}
			r.Tabs = append(r.Tabs, TabRegion{TabID: t.ID, Index: ti, X: tx, Width: w, Label: label})
			tx += w + 1 // separator
		}
		regions[i] = r
		x += widths[i]
	}
	return regions
}

// Hit is the result of a pointer lookup.
type Hit struct {
	Panel int        // index into the regions
	Tab   *TabRegion // nil unless the pointer is on a tab label
	Strip bool       // pointer is on the tab strip row
}

// HitTest finds what lies under the cell (x, y).
func HitTest(regions []Region, x, y int) (Hit, bool) {
	for i := range regions {
		r := &regions[i]
		if !r.contains(x) || y < 0 || y >= r.Height {
			continue
		}
		h := Hit{Panel: i, Strip: y == tabStripRow}
		if h.Strip {
			for ti := range r.Tabs {
				tr := &r.Tabs[ti]
				if x >= tr.X && x < tr.X+tr.Width {
					h.Tab = tr
					break
				}
			}
		}
		return h, true
	}
	return Hit{}, false
}
