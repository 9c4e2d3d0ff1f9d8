// Package annotate builds inline annotation payloads from a reviewer
// packet: one note per suspicious line, suitable for the review TUI's
// detail pane or a plain-text CI comment.
package annotate

import (
	"fmt"
	"strings"

	"github.com/filmlane/classifier/core/review"
)

// Annotation is a single inline note attached to one suspicious line.
type Annotation struct {
	LineIndex int    `json:"lineIndex"`
	Severity  string `json:"severity"`
	Body      string `json:"body"`
}

// Payload is the full set of annotations for one reviewer packet.
type Payload struct {
	Summary     string       `json:"summary"`
	Annotations []Annotation `json:"annotations"`
}

// BuildPayload constructs an annotation payload from a reviewer packet. It
// returns nil when the packet carries no suspicious lines.
func BuildPayload(p review.Packet) *Payload {
	if p.IsEmpty() {
		return nil
	}

	annotations := make([]Annotation, len(p.SuspiciousLines))
	for i, line := range p.SuspiciousLines {
		badge := SeverityBadge(line.TotalSuspicion)
		body := fmt.Sprintf("%s suspicion %d: %s", badge, line.TotalSuspicion, strings.Join(line.Reasons, ", "))
		if line.SuggestedType != "" {
			body += fmt.Sprintf(" (suggested: %s)", line.SuggestedType)
		}
		annotations[i] = Annotation{
			LineIndex: line.LineIndex,
			Severity:  severityLabel(line.TotalSuspicion),
			Body:      body,
		}
	}

	return &Payload{
		Summary:     fmt.Sprintf("Reviewer flagged %d of %d lines in session %q.", len(p.SuspiciousLines), p.TotalReviewed, p.SessionID),
		Annotations: annotations,
	}
}

// severityLabel buckets a 0-99 suspicion total into a coarse label.
func severityLabel(total int) string {
	switch {
	case total >= 90:
		return "critical"
	case total >= 75:
		return "high"
	case total >= 60:
		return "medium"
	default:
		return "low"
	}
}

// SeverityBadge returns an emoji badge for a 0-99 suspicion total.
func SeverityBadge(total int) string {
	switch severityLabel(total) {
	case "critical":
		return ":red_circle:"
	case "high":
		return ":orange_circle:"
	case "medium":
		return ":yellow_circle:"
	default:
		return ":large_blue_circle:"
	}
}
