// Package tmux mirrors a workspace layout into the current tmux window: one
// pane per panel, sized by the panel proportions. Commands target the current
// session automatically.
package tmux

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Runner executes one tmux command and returns its stdout.
type Runner interface {
	Run(args ...string) (string, error)
}

// ExecRunner runs the tmux binary.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(args ...string) (string, error) {
	cmd := exec.Command("tmux", args...)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tmux %s: %w: %s", args[0], err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(out.String()), nil
}

// ErrNotInTmux is returned when TMUX is unset.
var ErrNotInTmux = errors.New("not running inside tmux")

// InTmux reports whether the process runs inside a tmux client.
func InTmux() bool {
	return os.Getenv("TMUX") != ""
}

// Pane is one panel to mirror.
type Pane struct {
	Title string
	Size  float64 // relative share; 0 means an equal share
}

// Mirror splits the current pane so the window holds one pane per entry,
// left to right, and titles each pane. Returns the new pane ids in order; the
// first entry reuses the current pane.
func Mirror(r Runner, panes []Pane) ([]string, error) {
	if len(panes) == 0 {
		return nil, nil
	}
	current, err := r.Run("display-message", "-p", "#{pane_id}")
	if err != nil {
		return nil, err
	}
	ids := []string{current}

	shares := Percentages(panes)
	// Split i carves pane i and everything after it out of pane i-1, so the
	// new pane's size is relative to the pane being split.
	for i := 1; i < len(panes); i++ {
		rest := 0
		for _, s := range shares[i:] {
			rest += s
		}
		pct := 100 * rest / max(shares[i-1]+rest, 1)
		pct = min(max(pct, 1), 99)
		id, err := r.Run("split-window", "-h", "-t", ids[i-1], "-l", strconv.Itoa(pct)+"%", "-P", "-F", "#{pane_id}")
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}
	for i, p := range panes {
		if _, err := r.Run("select-pane", "-t", ids[i], "-T", p.Title); err != nil {
			return ids, err
		}
	}
	if _, err := r.Run("select-pane", "-t", ids[0]); err != nil {
		return ids, err
	}
	return ids, nil
}

// Percentages converts pane sizes into integer shares summing to 100. Panes
// without a size get the average of the sized ones (or an equal share when
// none are sized).
func Percentages(panes []Pane) []int {
	if len(panes) == 0 {
		return nil
	}
	var sum float64
	sized := 0
	for _, p := range panes {
		if p.Size > 0 {
			sum += p.Size
			sized++
		}
	}
	fill := 1.0
	if sized > 0 {
		fill = sum / float64(sized)
	}
	total := 0.0
	weights := make([]float64, len(panes))
	for i, p := range panes {
		w := p.Size
		if w <= 0 {
			w = fill
		}
		weights[i] = w
		total += w
	}
	out := make([]int, len(panes))
	used := 0
	for i, w := range weights {
		out[i] = int(100 * w / total)
		used += out[i]
	}
	out[len(out)-1] += 100 - used
	return out
}
