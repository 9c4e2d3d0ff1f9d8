package assist

import (
	"fmt"
	"strings"

	"github.com/filmlane/classifier/core/review"
)

// adjudicatorSystemPrompt instructs the model on the exact response shape
// Review expects back.
func adjudicatorSystemPrompt() string {
	return `You are reviewing an automated Arabic screenplay line classifier's suspicious lines.
For each suspicious line you are confident should change type, respond with a JSON array of objects:
- "itemIndex": the line's index in the packet (integer)
- "finalType": one of basmala, scene-header-1, scene-header-2, scene-header-3, action, character, dialogue, parenthetical, transition
- "confidence": your confidence in [0, 1]
- "reason": a short justification

Only include lines whose type you are confident is wrong. Respond with ONLY the JSON array, no markdown fences, no other text. If no line should change, respond with an empty array.`
}

// formatPacket renders a reviewer packet as the user message sent to the
// adjudicator.
func formatPacket(p review.Packet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s\nTotal lines reviewed: %d\n\n", p.SessionID, p.TotalReviewed)
	for _, line := range p.SuspiciousLines {
		fmt.Fprintf(&b, "Item %d, line %d [%s] (suspicion %d): %q\n", line.ItemIndex, line.LineIndex, line.AssignedType, line.TotalSuspicion, line.Text)
		if line.SuggestedType != "" {
			fmt.Fprintf(&b, "  suggested: %s\n", line.SuggestedType)
		}
		for _, reason := range line.Reasons {
			fmt.Fprintf(&b, "  reason: %s\n", reason)
		}
		for _, ctx := range line.ContextLines {
			fmt.Fprintf(&b, "  context[%d] %s: %q\n", ctx.LineIndex, ctx.FormatID, ctx.Text)
		}
		b.WriteString("\n")
	}
	return b.String()
}
