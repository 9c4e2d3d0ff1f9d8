package tui

import (
	"strings"

	"github.com/filmlane/classifier/core/review"
)

// severityOrder defines the cycle order for the suspicion filter toggle.
var severityOrder = []int{90, 75, 60, 0}

// filterState tracks the active filter configuration.
type filterState struct {
	severityIdx int    // -1 = all, 0..3 = minimum suspicion from severityOrder
	search      string // free-text search query
	searching   bool   // true when search input is active
}

func newFilterState() filterState {
	return filterState{severityIdx: -1}
}

// cycleSeverity advances the suspicion filter to the next level.
func (f *filterState) cycleSeverity() {
	f.severityIdx++
	if f.severityIdx >= len(severityOrder) {
		f.severityIdx = -1
	}
}

// activeSeverity returns a label for the current suspicion filter.
func (f *filterState) activeSeverity() string {
	if f.severityIdx < 0 {
		return "all"
	}
	switch severityOrder[f.severityIdx] {
	case 90:
		return "critical"
	case 75:
		return "high"
	case 60:
		return "medium"
	default:
		return "low"
	}
}

// matches returns true if the suspicious line passes all active filters.
func (f *filterState) matches(line review.SuspiciousLine) bool {
	if f.severityIdx >= 0 && line.TotalSuspicion < severityOrder[f.severityIdx] {
		return false
	}
	if f.search != "" {
		q := strings.ToLower(f.search)
		if !strings.Contains(strings.ToLower(line.Text), q) &&
			!strings.Contains(strings.ToLower(string(line.AssignedType)), q) &&
			!strings.Contains(strings.ToLower(strings.Join(line.Reasons, " ")), q) {
			return false
		}
	}
	return true
}

// filterLines returns suspicious lines that pass the active filters.
func (f *filterState) filterLines(all []review.SuspiciousLine) []review.SuspiciousLine {
	var out []review.SuspiciousLine
	for _, line := range all {
		if f.matches(line) {
			out = append(out, line)
		}
	}
	return out
}
