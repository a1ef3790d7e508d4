// Package timeline partitions the global frame range of a composition into
// scene windows.
package timeline

import (
	"sort"

	"github.com/ivlev/adreel/internal/config"
)

// Window is a span of global frames during which one scene is active.
type Window struct {
	Scene    string `yaml:"scene"`
	Start    int    `yaml:"start"`
	Duration int    `yaml:"duration"`
}

// End is the first frame after the window.
func (w Window) End() int { return w.Start + w.Duration }

// Contains reports whether a global frame falls inside the window.
func (w Window) Contains(frame int) bool {
	return frame >= w.Start && frame < w.End()
}

// Slot is an active window at one global frame.
type Slot struct {
	Index  int
	Window Window
	Local  int
}

// Span is a half-open frame range.
type Span struct {
	Start, End int
}

type Timeline struct {
	windows        []Window
	rejectOverlaps bool
}

type Option func(*Timeline)

// RejectOverlaps makes overlapping windows a configuration error.
func RejectOverlaps() Option {
	return func(t *Timeline) { t.rejectOverlaps = true }
}

// New validates the windows. Gaps are allowed; overlaps are allowed unless
// RejectOverlaps is given, and then render in declaration order.
func New(windows []Window, opts ...Option) (*Timeline, error) {
	t := &Timeline{windows: append([]Window(nil), windows...)}
	for _, opt := range opts {
		opt(t)
	}

	for i, w := range t.windows {
		if w.Scene == "" {
			return nil, config.Invalid("window", "%d has no scene", i)
		}
		if w.Start < 0 {
			return nil, config.Invalid("window", "%d (%s) starts at negative frame %d", i, w.Scene, w.Start)
		}
		if w.Duration < 0 {
			return nil, config.Invalid("window", "%d (%s) has negative duration %d", i, w.Scene, w.Duration)
		}
	}

	if t.rejectOverlaps {
		if o := t.Overlaps(); len(o) > 0 {
			a, b := t.windows[o[0][0]], t.windows[o[0][1]]
			return nil, config.Invalid("window", "%s [%d,%d) overlaps %s [%d,%d)", a.Scene, a.Start, a.End(), b.Scene, b.Start, b.End())
		}
	}
	return t, nil
}

// Windows returns a copy of the windows in declaration order.
func (t *Timeline) Windows() []Window {
	return append([]Window(nil), t.windows...)
}

// Active returns every window containing frame, in declaration order, with
// the frame remapped to the window's local frame.
func (t *Timeline) Active(frame int) []Slot {
	var slots []Slot
	for i, w := range t.windows {
		if w.Contains(frame) {
			slots = append(slots, Slot{Index: i, Window: w, Local: frame - w.Start})
		}
	}
	return slots
}

// End is the first frame after the last window.
func (t *Timeline) End() int {
	end := 0
	for _, w := range t.windows {
		if w.End() > end {
			end = w.End()
		}
	}
	return end
}

// Gaps lists the frame ranges in [0, total) not covered by any window.
func (t *Timeline) Gaps(total int) []Span {
	spans := make([]Span, 0, len(t.windows))
	for _, w := range t.windows {
		if w.Duration > 0 {
			spans = append(spans, Span{w.Start, w.End()})
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })

	var gaps []Span
	cursor := 0
	for _, s := range spans {
		if s.Start > cursor && cursor < total {
			gaps = append(gaps, Span{cursor, min(s.Start, total)})
		}
		cursor = max(cursor, s.End)
	}
	if cursor < total {
		gaps = append(gaps, Span{cursor, total})
	}
	return gaps
}

// Overlaps lists pairs of window indexes that share at least one frame.
func (t *Timeline) Overlaps() [][2]int {
	var pairs [][2]int
	for i := 0; i < len(t.windows); i++ {
		for j := i + 1; j < len(t.windows); j++ {
			a, b := t.windows[i], t.windows[j]
			if a.Duration > 0 && b.Duration > 0 && a.Start < b.End() && b.Start < a.End() {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}
