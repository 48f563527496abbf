package pdf

import "fmt"

// SlotMinutes is the run-sheet grid resolution.
const SlotMinutes = 15

// Range is a half-open [Start, End) span in minutes after Adelaide
// midnight. Spans crossing midnight carry End > 1440.
type Range struct {
	Start int
	End   int
}

// Duration is the span length in minutes; zero or negative spans render
// nothing.
func (r Range) Duration() int { return r.End - r.Start }

// Window is the visible portion of the day on a run sheet, aligned to
// slot boundaries.
type Window struct {
	StartMin int
	EndMin   int
}

// Columns is the number of grid columns the window needs.
func (w Window) Columns() int { return (w.EndMin - w.StartMin) / SlotMinutes }

// SlotLabels returns the "HH:MM" header label for every column.
func (w Window) SlotLabels() []string {
	labels := make([]string, 0, w.Columns())
	for m := w.StartMin; m < w.EndMin; m += SlotMinutes {
		labels = append(labels, fmt.Sprintf("%02d:%02d", (m/60)%24, m%60))
	}
	return labels
}

// WindowFor derives the display window from the spans being drawn:
// earliest start minus 30 minutes, latest end plus 30, snapped outward to
// slot boundaries and clamped to [06:00, 24:00). With nothing to draw it
// falls back to [09:00, 17:00).
func WindowFor(ranges []Range) Window {
	lo, hi := -1, -1
	for _, r := range ranges {
		if r.Duration() <= 0 {
			continue
		}
		if lo == -1 || r.Start < lo {
			lo = r.Start
		}
		if r.End > hi {
			hi = r.End
		}
	}
	if lo == -1 {
		return Window{9 * 60, 17 * 60}
	}

	lo -= 30
	hi += 30
	lo = (lo / SlotMinutes) * SlotMinutes
	if hi%SlotMinutes != 0 {
		hi = (hi/SlotMinutes + 1) * SlotMinutes
	}
	if lo < 6*60 {
		lo = 6 * 60
	}
	if hi > 24*60 {
		hi = 24 * 60
	}
	if hi <= lo {
		return Window{9 * 60, 17 * 60}
	}
	return Window{lo, hi}
}

// SlotOverlap clips r against the slot starting at slotStart and returns
// the offset of the overlap within the slot and its duration, both in
// minutes. A span entering at minute 7 of a slot occupies roughly the
// right half of that column; callers turn offset/duration into
// proportional x/width.
func SlotOverlap(slotStart int, r Range) (offset, duration int) {
	if r.Duration() <= 0 {
		return 0, 0
	}
	s := r.Start
	if slotStart > s {
		s = slotStart
	}
	e := r.End
	if slotStart+SlotMinutes < e {
		e = slotStart + SlotMinutes
	}
	if e <= s {
		return 0, 0
	}
	return s - slotStart, e - s
}

// clip bounds r to the window, dropping anything wholly outside.
func clip(r Range, w Window) (Range, bool) {
	if r.Start < w.StartMin {
		r.Start = w.StartMin
	}
	if r.End > w.EndMin {
		r.End = w.EndMin
	}
	if r.Duration() <= 0 {
		return Range{}, false
	}
	return r, true
}
