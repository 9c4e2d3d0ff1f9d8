package review

import (
	"strings"

	"github.com/filmlane/classifier/core/arabic"
	"github.com/filmlane/classifier/core/document"
	"github.com/filmlane/classifier/core/textutil"
)

// ClassifiedLine is the minimal view of one pipeline item the reviewer's
// detectors need: its text, assigned type, confidence, and the short
// reason string the classifier attached to that assignment.
type ClassifiedLine struct {
	Text       string
	FormatID   document.FormatID
	Confidence int
	Reason     string
}

// Finding is at most one verdict a single detector may return for a line.
type Finding struct {
	Detector      string
	Score         int
	SuggestedType document.FormatID // zero value means no suggestion
}

// method classifies a classification reason into the coarse bucket the
// confidence-drop detector reasons about.
func method(reason string) string {
	switch {
	case strings.HasPrefix(reason, "gate:"):
		return "regex"
	case strings.HasPrefix(reason, "fallback:"):
		return "fallback"
	default:
		return "resolver"
	}
}

// DetectSequenceViolation flags lines[i] when its type cannot legally
// follow lines[i-1]'s type under the fixed grammar.
func DetectSequenceViolation(lines []ClassifiedLine, i int) *Finding {
	if i == 0 {
		return nil
	}
	prev, cur := lines[i-1].FormatID, lines[i].FormatID
	if IsAllowedNext(prev, cur) {
		return nil
	}
	score := defaultSequenceSeverity
	if s, ok := sequenceSeverity[[2]document.FormatID{prev, cur}]; ok {
		score = s
	}
	f := &Finding{Detector: "sequence-violation", Score: score}
	if suggested, ok := suggestedAfter[prev]; ok {
		f.SuggestedType = suggested
	}
	return f
}

// DetectContentTypeMismatch flags a line whose text shape contradicts its
// assigned type, independent of its neighbors.
func DetectContentTypeMismatch(line ClassifiedLine) *Finding {
	text := strings.TrimSpace(line.Text)
	tokens := textutil.Tokens(text)

	switch line.FormatID {
	case document.Character:
		if len(tokens) > 5 {
			return &Finding{Detector: "content-type-mismatch", Score: 80}
		}
		if textutil.HasSentencePunctuation(strings.TrimSuffix(text, ":")) {
			return &Finding{Detector: "content-type-mismatch", Score: 75}
		}
	case document.Dialogue:
		if textutil.IsActionWithDash(text) && hasActionIndicator(text) {
			return &Finding{Detector: "content-type-mismatch", Score: 82}
		}
		if textutil.IsParenthetical(text) {
			return &Finding{Detector: "content-type-mismatch", Score: 88}
		}
	case document.Action:
		if strings.HasSuffix(text, ":") && len(tokens) <= 3 {
			return &Finding{Detector: "content-type-mismatch", Score: 78, SuggestedType: document.Character}
		}
	case document.Parenthetical:
		if !strings.HasPrefix(text, "(") && !strings.HasPrefix(text, "﴾") {
			return &Finding{Detector: "content-type-mismatch", Score: 72}
		}
	case document.Transition:
		if len(tokens) > 6 {
			return &Finding{Detector: "content-type-mismatch", Score: 70, SuggestedType: document.Action}
		}
	}
	return nil
}

// hasActionIndicator reports whether text carries at least one of the
// narrative-action signals the content-type-mismatch detector treats as
// contradicting a dialogue label.
func hasActionIndicator(text string) bool {
	return textutil.IsActionVerbStart(text) || textutil.MatchesActionStartPattern(text) || textutil.HasActionVerbStructure(text)
}

// DetectSplitNameFragment flags lines[i] as action when it looks like the
// first half of a character name that was wrongly split from lines[i+1],
// a character cue carrying only the tail of the same name.
func DetectSplitNameFragment(lines []ClassifiedLine, i int) *Finding {
	if i+1 >= len(lines) {
		return nil
	}
	cur, next := lines[i], lines[i+1]
	if cur.FormatID != document.Action || next.FormatID != document.Character {
		return nil
	}

	curText := strings.TrimSpace(cur.Text)
	curTokens := textutil.Tokens(curText)
	if len(curTokens) > 2 || textutil.RuneLen(curText) < 2 || textutil.RuneLen(curText) > 14 {
		return nil
	}
	if hasActionIndicator(curText) {
		return nil
	}

	nextText := strings.TrimSuffix(strings.TrimSpace(next.Text), ":")
	if textutil.RuneLen(nextText) < 1 || textutil.RuneLen(nextText) > 4 {
		return nil
	}

	for _, candidate := range []string{curText + nextText + ":", curText + " " + nextText + ":"} {
		if len(textutil.Tokens(candidate)) > 3 || textutil.RuneLen(candidate) < 3 || textutil.RuneLen(candidate) > 32 {
			continue
		}
		if arabic.CHARACTER_RE.MatchString(candidate) {
			return &Finding{Detector: "split-name-fragment", Score: 92}
		}
	}
	return nil
}

// wordCountBounds is the fixed min/max word-count table the statistical
// anomaly detector checks each type against.
var wordCountBounds = map[document.FormatID][2]int{
	document.Action:        {2, 40},
	document.Dialogue:      {1, 60},
	document.Character:     {1, 5},
	document.Parenthetical: {1, 8},
	document.Transition:    {1, 6},
	document.SceneHeader1:  {1, 12},
	document.SceneHeader2:  {1, 12},
	document.SceneHeader3:  {1, 12},
	document.Basmala:       {2, 6},
}

// DetectStatisticalAnomaly flags a line whose word count falls outside the
// expected range for its assigned type.
func DetectStatisticalAnomaly(line ClassifiedLine) *Finding {
	bounds, ok := wordCountBounds[line.FormatID]
	if !ok {
		return nil
	}
	n := len(textutil.Tokens(line.Text))

	if n > bounds[1] {
		excess := n - bounds[1]
		score := 60 + 3*excess
		if score > 90 {
			score = 90
		}
		return &Finding{Detector: "statistical-anomaly", Score: score}
	}
	if line.FormatID == document.Action && n < 2 {
		return &Finding{Detector: "statistical-anomaly", Score: 55, SuggestedType: document.Character}
	}
	if n < bounds[0] {
		return &Finding{Detector: "statistical-anomaly", Score: 55}
	}
	return nil
}

// DetectConfidenceDrop flags a line whose classification method and
// confidence together suggest a weak or default assignment.
func DetectConfidenceDrop(line ClassifiedLine) *Finding {
	m := method(line.Reason)
	if m == "regex" && line.Confidence >= 90 {
		return nil
	}
	if m == "fallback" && line.Confidence < 60 {
		return &Finding{Detector: "confidence-drop", Score: 50}
	}
	if line.Confidence < 45 {
		return &Finding{Detector: "confidence-drop", Score: 55}
	}
	return nil
}
