package tui

import (
	"fmt"
	"strings"
)

// renderDetail renders the detail view for one suspicious line.
func renderDetail(m *Model) string {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return "No line selected."
	}
	line := m.filtered[m.cursor]

	var b strings.Builder

	sevBadge := severityStyle(line.TotalSuspicion).Render(fmt.Sprintf("suspicion %d", line.TotalSuspicion))
	b.WriteString(fmt.Sprintf(" %s · %s\n",
		lineIndexStyle.Render(fmt.Sprintf("line %d", line.LineIndex)),
		sevBadge))
	b.WriteString(headerStyle.Render(strings.Repeat("─", m.width)))
	b.WriteString("\n\n")

	b.WriteString(" " + typeStyle.Render(string(line.AssignedType)) + "\n")
	b.WriteString(" " + line.Text + "\n\n")

	if line.SuggestedType != "" {
		b.WriteString(" " + reasonHeaderStyle.Render("Suggested type") + ": " + string(line.SuggestedType) + "\n\n")
	}

	if len(line.Reasons) > 0 {
		b.WriteString(" " + reasonHeaderStyle.Render("Reasons") + "\n")
		for _, reason := range line.Reasons {
			b.WriteString("   " + subtleStyle.Render(reason) + "\n")
		}
		b.WriteString("\n")
	}

	if len(line.ContextLines) > 0 {
		b.WriteString(" " + reasonHeaderStyle.Render("Context") + "\n")
		for _, ctx := range line.ContextLines {
			marker := "  "
			if ctx.LineIndex == line.LineIndex {
				marker = "→ "
			}
			b.WriteString(fmt.Sprintf("   %s%s %s: %s\n",
				marker,
				subtleStyle.Render(fmt.Sprintf("%4d", ctx.LineIndex)),
				contextStyle.Render(string(ctx.FormatID)),
				ctx.Text))
		}
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(" esc back  n/p next/prev  q quit"))
	b.WriteString("\n")

	return b.String()
}
