package review

import "github.com/filmlane/classifier/core/document"

// ContextLine is one line of surrounding context attached to a suspicious
// line in a reviewer packet.
type ContextLine struct {
	LineIndex int
	FormatID  document.FormatID
	Text      string
}

// SuspiciousLine is one entry in a reviewer packet sent to the adjudicator.
type SuspiciousLine struct {
	ItemIndex     int
	LineIndex     int
	Text          string
	AssignedType  document.FormatID
	TotalSuspicion int
	Reasons       []string
	SuggestedType document.FormatID
	ContextLines  []ContextLine
}

// Packet is the full record handed to the adjudicator client for one
// session's review pass.
type Packet struct {
	SessionID       string
	TotalReviewed   int
	SuspiciousLines []SuspiciousLine
}

// BuildPacket formats the trimmed, escalated verdicts for lines into a
// reviewer packet, attaching up to radius lines of context on each side.
func BuildPacket(sessionID string, lines []ClassifiedLine, verdicts []LineVerdict, radius int) Packet {
	packet := Packet{SessionID: sessionID, TotalReviewed: len(lines)}

	for i, v := range verdicts {
		reasons := make([]string, len(v.Findings))
		for j, f := range v.Findings {
			reasons[j] = f.Detector
		}

		packet.SuspiciousLines = append(packet.SuspiciousLines, SuspiciousLine{
			ItemIndex:      i,
			LineIndex:      v.LineIndex,
			Text:           lines[v.LineIndex].Text,
			AssignedType:   v.FormatID,
			TotalSuspicion: v.Total,
			Reasons:        reasons,
			SuggestedType:  v.SuggestedType,
			ContextLines:   contextAround(lines, v.LineIndex, radius),
		})
	}

	return packet
}

// contextAround collects up to radius lines on each side of index within
// lines, excluding index itself.
func contextAround(lines []ClassifiedLine, index, radius int) []ContextLine {
	start := index - radius
	if start < 0 {
		start = 0
	}
	end := index + radius
	if end > len(lines)-1 {
		end = len(lines) - 1
	}

	var out []ContextLine
	for i := start; i <= end; i++ {
		if i == index {
			continue
		}
		out = append(out, ContextLine{LineIndex: i, FormatID: lines[i].FormatID, Text: lines[i].Text})
	}
	return out
}

// IsEmpty reports whether the packet carries no suspicious lines, in which
// case the pipeline should skip the adjudicator call entirely.
func (p Packet) IsEmpty() bool {
	return len(p.SuspiciousLines) == 0
}
