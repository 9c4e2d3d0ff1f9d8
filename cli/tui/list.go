package tui

import (
	"fmt"
	"strings"

	"github.com/filmlane/classifier/core/review"
)

// renderList renders the suspicious-line list view.
func renderList(m *Model) string {
	var b strings.Builder

	title := titleStyle.Render(fmt.Sprintf(" Reviewer — %d suspicious", len(m.filtered)))
	if len(m.packet.SuspiciousLines) != len(m.filtered) {
		title += subtleStyle.Render(fmt.Sprintf(" (of %d total)", len(m.packet.SuspiciousLines)))
	}
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(strings.Repeat("─", m.width)))
	b.WriteString("\n")

	filterLine := subtleStyle.Render(" Filter: ") + "[" + m.filter.activeSeverity() + "]"
	if m.filter.search != "" {
		filterLine += subtleStyle.Render("  Search: ") + "[" + m.filter.search + "]"
	}
	b.WriteString(filterLine)
	b.WriteString("\n\n")

	if len(m.filtered) == 0 {
		b.WriteString(subtleStyle.Render("  No suspicious lines match the current filters.\n"))
	} else {
		visibleLines := m.height - 8
		if visibleLines < 1 {
			visibleLines = 1
		}
		start := m.cursor - visibleLines/2
		if start < 0 {
			start = 0
		}
		end := start + visibleLines
		if end > len(m.filtered) {
			end = len(m.filtered)
			start = end - visibleLines
			if start < 0 {
				start = 0
			}
		}

		for i := start; i < end; i++ {
			b.WriteString(renderLineRow(m.filtered[i], i == m.cursor))
			b.WriteString("\n")
		}
	}

	if m.filter.searching {
		b.WriteString("\n")
		b.WriteString(" Search: " + m.filter.search + "█")
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(" ↑↓ navigate  enter detail  / search  s severity  q quit"))
	b.WriteString("\n")

	return b.String()
}

func renderLineRow(line review.SuspiciousLine, selected bool) string {
	badge := severityBadge(line.TotalSuspicion)
	assigned := lineIndexStyle.Render(fmt.Sprintf("line %-4d", line.LineIndex))
	kind := typeStyle.Render(fmt.Sprintf("%-20s", line.AssignedType))

	row := fmt.Sprintf(" %s  %s  %s  %s", badge, assigned, kind, line.Text)
	if selected {
		return selectedStyle.Render("▸") + row
	}
	return " " + row
}
