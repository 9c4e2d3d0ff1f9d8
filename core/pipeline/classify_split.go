package pipeline

import (
	"strings"

	"github.com/filmlane/classifier/core/arabic"
	"github.com/filmlane/classifier/core/classify"
	winctx "github.com/filmlane/classifier/core/context"
	"github.com/filmlane/classifier/core/document"
	"github.com/filmlane/classifier/core/textutil"
)

// actionStartMarkers are the pronoun+verb-link openers that precede a
// character name folded onto the end of an action line.
var actionStartMarkers = []string{"ثم وهو", "ثم وهي", "وهو", "وهي"}

// classifyLine runs the per-line split/classify cascade against win,
// advancing win once per resolved item, and returns the one to three
// items the line decomposes into.
func classifyLine(line string, win *winctx.Window) []ClassifiedItem {
	if action, character, ok := actionPrefixedCharacterSplit(line); ok {
		return advanceAll(win, []ClassifiedItem{
			{Text: action, FormatID: document.Action, Confidence: 80, Reason: "split:action-prefixed-character"},
			{Text: character, FormatID: document.Character, Confidence: 85, Reason: "split:action-prefixed-character"},
		})
	}

	if items, ok := inlineSpeakerSplit(line, win); ok {
		return advanceAll(win, items)
	}

	result := classify.Line(line, win)
	if result.FormatID == document.SceneHeaderTopLine {
		first, second, ok := splitTopLineComposite(line)
		if ok {
			return advanceAll(win, []ClassifiedItem{
				{Text: first, FormatID: document.SceneHeader1, Confidence: result.Confidence, Reason: result.Reason},
				{Text: second, FormatID: document.SceneHeader2, Confidence: result.Confidence, Reason: result.Reason},
			})
		}
	}

	return advanceAll(win, []ClassifiedItem{{Text: line, FormatID: result.FormatID, Confidence: result.Confidence, Reason: result.Reason}})
}

func advanceAll(win *winctx.Window, items []ClassifiedItem) []ClassifiedItem {
	for _, item := range items {
		win.Advance(item.FormatID)
	}
	return items
}

// actionPrefixedCharacterSplit handles a line ending in ":" that opens
// with a pronoun+verb-link marker and closes with a plausible 1-3 token
// character name, e.g. "وهو يدخل الغرفة أحمد:".
func actionPrefixedCharacterSplit(line string) (actionText, characterText string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasSuffix(trimmed, ":") {
		return "", "", false
	}

	var marker string
	for _, m := range actionStartMarkers {
		if strings.HasPrefix(trimmed, m+" ") {
			marker = m
			break
		}
	}
	if marker == "" {
		return "", "", false
	}

	body := strings.TrimSuffix(trimmed, ":")
	tokens := textutil.Tokens(body)
	if len(tokens) < 2 {
		return "", "", false
	}

	for nameLen := 1; nameLen <= 3 && nameLen < len(tokens); nameLen++ {
		nameTokens := tokens[len(tokens)-nameLen:]
		actionTokens := tokens[:len(tokens)-nameLen]
		name := strings.Join(nameTokens, " ")
		if !isPlausibleInlineName(name) {
			continue
		}
		actionLine := strings.Join(actionTokens, " ")
		if !textutil.MatchesActionStartPattern(actionLine) && !textutil.IsActionVerbStart(actionLine) {
			continue
		}
		return actionLine, name + ":", true
	}
	return "", "", false
}

// inlineSpeakerSplit recognizes a "name: dialogue" line, optionally
// preceded by a delivery cue, and the implicit no-colon form inside an
// open dialogue block. It returns up to three items: an optional action
// cue, a character, and a dialogue.
func inlineSpeakerSplit(line string, win *winctx.Window) ([]ClassifiedItem, bool) {
	if m := arabic.INLINE_DIALOGUE_GLUE_RE.FindStringSubmatch(line); m != nil {
		cue, name, dialogue := m[1], m[2], m[3]
		if textutil.IsActionCueLine(cue) && isPlausibleInlineName(name) {
			return []ClassifiedItem{
				{Text: cue, FormatID: document.Action, Confidence: 80, Reason: "split:inline-cue"},
				{Text: name + ":", FormatID: document.Character, Confidence: 85, Reason: "split:inline-speaker"},
				{Text: dialogue, FormatID: document.Dialogue, Confidence: 85, Reason: "split:inline-speaker"},
			}, true
		}
	}

	if m := arabic.INLINE_DIALOGUE_RE.FindStringSubmatch(line); m != nil {
		name, dialogue := strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
		if isPlausibleInlineName(name) && dialogue != "" {
			return []ClassifiedItem{
				{Text: name + ":", FormatID: document.Character, Confidence: 88, Reason: "split:inline-speaker"},
				{Text: dialogue, FormatID: document.Dialogue, Confidence: 85, Reason: "split:inline-speaker"},
			}, true
		}
	}

	if win.InDialogueBlock() && !strings.Contains(line, ":") {
		if name, dialogue, ok := implicitSpeakerSplit(line); ok {
			return []ClassifiedItem{
				{Text: name + ":", FormatID: document.Character, Confidence: 70, Reason: "split:implicit-speaker"},
				{Text: dialogue, FormatID: document.Dialogue, Confidence: 70, Reason: "split:implicit-speaker"},
			}, true
		}
	}

	return nil, false
}

// implicitSpeakerSplit handles a colon-free line that opens with 1-3
// plausible name tokens followed by a dialogue-like tail: a speech cue
// present, and no strong narrative action signal.
func implicitSpeakerSplit(line string) (name, dialogue string, ok bool) {
	tokens := textutil.Tokens(line)
	for nameLen := 1; nameLen <= 3 && nameLen < len(tokens); nameLen++ {
		candidate := strings.Join(tokens[:nameLen], " ")
		rest := strings.Join(tokens[nameLen:], " ")
		if !isPlausibleInlineName(candidate) {
			continue
		}
		if textutil.MatchesActionStartPattern(rest) || textutil.HasActionVerbStructure(rest) {
			continue
		}
		if textutil.IsActionCueLine(rest) || arabic.CONVERSATIONAL_MARKERS_RE.MatchString(rest) || arabic.VOCATIVE_RE.MatchString(rest) {
			return candidate, rest, true
		}
	}
	return "", "", false
}

// isPlausibleInlineName reports whether name reads as a speaker name: 1-3
// tokens, at most 28 runes, no scene number or transition cue, no token that
// is itself a time-of-day or interior/exterior marker, and not a lone stop
// word.
func isPlausibleInlineName(name string) bool {
	tokens := textutil.Tokens(name)
	if len(tokens) == 0 || len(tokens) > 3 {
		return false
	}
	if textutil.RuneLen(name) > 28 {
		return false
	}
	if arabic.SCENE_NUMBER_EXACT_RE.MatchString(name) || arabic.TRANSITION_RE.MatchString(name) {
		return false
	}
	for _, tok := range tokens {
		if arabic.SCENE_TIME_RE.FindString(tok) == tok || arabic.SCENE_LOCATION_RE.FindString(tok) == tok {
			return false
		}
	}
	if len(tokens) == 1 && arabic.NON_NAME_TOKENS.Has(tokens[0]) {
		return false
	}
	return true
}

// splitTopLineComposite splits a combined scene-header line around its
// first "مشهد N" occurrence into the scene-number half and the
// time/location half.
func splitTopLineComposite(line string) (first, second string, ok bool) {
	loc := arabic.SCENE_NUMBER_RE.FindStringIndex(line)
	if loc == nil {
		return "", "", false
	}
	rest := strings.TrimSpace(line[loc[1]:])
	if rest == "" {
		return "", "", false
	}
	return strings.TrimSpace(line[:loc[1]]), rest, true
}
