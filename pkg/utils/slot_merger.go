package utils

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

// All intervals live on one reference date; merging is date-independent.
var slotReferenceDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

var rangeSplitRe = regexp.MustCompile(`(?i)\s*(?:-|–|\bto\b)\s*`)

type slotInterval struct {
	start time.Time
	end   time.Time
}

// MergeSlots parses raw time-range matches into intervals, merges
// consecutive and overlapping ones, and renders a canonical merged
// representation. Output is identical for any permutation of the
// input. Returns "" when nothing parses.
func MergeSlots(matches []string) string {
	seen := make(map[string]bool)
	var intervals []slotInterval

	for _, raw := range matches {
		m := strings.TrimSpace(raw)
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true

		iv, ok := parseSlotInterval(m)
		if !ok {
			continue
		}
		intervals = append(intervals, iv)
	}

	if len(intervals) == 0 {
		return ""
	}

	sort.Slice(intervals, func(i, j int) bool {
		if intervals[i].start.Equal(intervals[j].start) {
			return intervals[i].end.Before(intervals[j].end)
		}
		return intervals[i].start.Before(intervals[j].start)
	})

	merged := []slotInterval{intervals[0]}
	for _, iv := range intervals[1:] {
		last := &merged[len(merged)-1]
		// Touching or overlapping intervals collapse into one
		if !iv.start.After(last.end) {
			if iv.end.After(last.end) {
				last.end = iv.end
			}
			continue
		}
		merged = append(merged, iv)
	}

	parts := make([]string, 0, len(merged))
	for _, iv := range merged {
		parts = append(parts, renderInterval(iv))
	}
	return strings.Join(parts, TimeSeparator)
}

func parseSlotInterval(m string) (slotInterval, bool) {
	pieces := rangeSplitRe.Split(m, 2)

	if len(pieces) == 1 {
		t, ok := parseClock(pieces[0], "")
		if !ok {
			return slotInterval{}, false
		}
		return slotInterval{start: t, end: t}, true
	}

	// "7 - 8 PM": the start inherits the end's meridiem
	endMeridiem := meridiemOf(pieces[1])
	start, okStart := parseClock(pieces[0], endMeridiem)
	end, okEnd := parseClock(pieces[1], "")
	if !okStart || !okEnd {
		return slotInterval{}, false
	}
	if end.Before(start) {
		end = end.Add(24 * time.Hour)
	}
	return slotInterval{start: start, end: end}, true
}

var clockLayouts = []string{"3:04 PM", "3 PM", "15:04"}

func parseClock(s, inheritMeridiem string) (time.Time, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "AM", " AM")
	s = strings.ReplaceAll(s, "PM", " PM")
	s = spaceRunRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	if inheritMeridiem != "" && meridiemOf(s) == "" {
		s = s + " " + inheritMeridiem
	}

	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return time.Date(slotReferenceDate.Year(), slotReferenceDate.Month(), slotReferenceDate.Day(),
			t.Hour(), t.Minute(), 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

func meridiemOf(s string) string {
	upper := strings.ToUpper(s)
	if strings.Contains(upper, "AM") {
		return "AM"
	}
	if strings.Contains(upper, "PM") {
		return "PM"
	}
	return ""
}

func renderInterval(iv slotInterval) string {
	if iv.start.Equal(iv.end) {
		return formatClock(iv.start)
	}
	return formatClock(iv.start) + " - " + formatClock(iv.end)
}

func formatClock(t time.Time) string {
	return t.Format("3:04 PM")
}
