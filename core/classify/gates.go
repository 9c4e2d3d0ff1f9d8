package classify

import (
	"strings"

	"github.com/filmlane/classifier/core/arabic"
	"github.com/filmlane/classifier/core/context"
	"github.com/filmlane/classifier/core/document"
	"github.com/filmlane/classifier/core/textutil"
)

// shortCharacterNameRunes is the rune-length a character candidate's name
// may reach at most to earn the narrative resolver's "short" character bonus.
const shortCharacterNameRunes = 20

func isCharacterType(t document.FormatID) bool { return t == document.Character }
func isActionType(t document.FormatID) bool    { return t == document.Action }
func isDialogueFamilyType(t document.FormatID) bool {
	return t.IsDialogueFamily()
}

// characterGate reports whether line can possibly be a character cue: a
// strict colon-terminated name with no stop words, dialogue cues, or
// sentence punctuation, not buried inside a scene header block.
func characterGate(line string, win *context.Window) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasSuffix(trimmed, ":") {
		return false
	}
	if !arabic.CHARACTER_RE.MatchString(trimmed) {
		return false
	}
	name := textutil.NormalizeCharacterName(trimmed)
	tokens := textutil.Tokens(name)
	if len(tokens) == 0 || len(tokens) > 5 {
		return false
	}
	for _, tok := range tokens {
		if arabic.CHARACTER_STOP_WORDS.Has(tok) || arabic.NON_CHARACTER_SINGLE_TOKENS.Has(tok) {
			return false
		}
	}
	if len(tokens) == 1 && arabic.SHORT_DIALOGUE_WORDS.Has(tokens[0]) {
		return false
	}
	if textutil.HasSentencePunctuation(name) {
		return false
	}
	if arabic.VOCATIVE_RE.MatchString(name) || arabic.VOCATIVE_TITLES_RE.MatchString(name) {
		return false
	}
	if arabic.CONVERSATIONAL_MARKERS_RE.MatchString(name) || arabic.CONVERSATIONAL_STARTS.Has(tokens[0]) {
		return false
	}
	if lastType, ok := win.LastType(); ok && lastType.IsSceneHeader() && lastType != document.SceneHeader2 {
		return false
	}
	return true
}

// isHardBreaker reports whether line opens a new structural unit that
// dialogue must never swallow: a scene header, a transition, or a
// colon-terminated character candidate.
func isHardBreaker(line string, win *context.Window) bool {
	if arabic.SCENE_NUMBER_EXACT_RE.MatchString(line) || hasTimeAndLocation(line) {
		return true
	}
	if arabic.TRANSITION_RE.MatchString(line) {
		return true
	}
	return characterGate(line, win) && strings.HasSuffix(strings.TrimSpace(line), ":")
}

// hasDirectDialogueSignals reports whether line carries a cue strong enough
// to read as spoken delivery on its own: a vocative, quotation marks, or
// terminal question/exclamation punctuation.
func hasDirectDialogueSignals(line string) bool {
	return arabic.VOCATIVE_RE.MatchString(line) ||
		arabic.QUOTE_MARKS_RE.MatchString(line) ||
		strings.ContainsAny(line, "؟?!")
}

// dialogueScore is the integer heuristic the dialogue gate and candidate
// score both consult: positive signal for speech markers, negative for
// action-verb openers and scene-header context.
func dialogueScore(line string, win *context.Window) int {
	score := 0

	hasQuestion := strings.ContainsAny(line, "؟?")
	actionOpener := textutil.IsActionVerbStart(line) || hasActionTriple(line)
	if hasQuestion {
		if actionOpener {
			score += 1
		} else {
			score += 3
		}
	}
	if strings.Contains(line, "!") {
		score += 2
	}
	if strings.Contains(line, "...") || strings.Contains(line, "…") {
		score += 1
	}

	switch {
	case arabic.VOCATIVE_RE.MatchString(line):
		score += 4
	case arabic.VOCATIVE_TITLES_RE.MatchString(line):
		score += 2
	}

	tokens := textutil.Tokens(line)
	switch {
	case len(tokens) > 0 && arabic.CONVERSATIONAL_STARTS.Has(tokens[0]):
		score += 2
	case arabic.CONVERSATIONAL_MARKERS_RE.MatchString(line):
		score += 1
	}

	if arabic.QUOTE_MARKS_RE.MatchString(line) {
		score += 2
	}

	if n := textutil.RuneLen(line); n > 5 && n < 150 {
		score += 1
	}

	lastType, hasLast := win.LastType()
	if hasLast && lastType.IsSceneHeader() {
		score -= 10
	}

	if textutil.IsActionVerbStart(line) {
		penalty := 3
		if win.InDialogueBlock() {
			penalty = 1
		}
		score -= penalty
	}

	if hasLast && (lastType == document.Character || lastType == document.Dialogue || lastType == document.Parenthetical) &&
		textutil.IsImperativeStart(line) {
		score += 3
	}

	return score
}

// hasActionTriple reports the "verb name verb" narrative triple syntax used
// to downweight a trailing question mark's dialogue signal.
func hasActionTriple(line string) bool {
	return arabic.ACTION_VERB_FOLLOWED_BY_NAME_AND_VERB_RE.MatchString(line)
}

// dialogueGate reports whether line can possibly be spoken dialogue.
func dialogueGate(line string, win *context.Window) bool {
	if isHardBreaker(line, win) {
		return false
	}
	if win.InDialogueBlock() {
		return true
	}
	if hasDirectDialogueSignals(line) {
		return true
	}
	lastType, hasLast := win.LastType()
	if !hasLast || !(lastType == document.Character || lastType == document.Dialogue || lastType == document.Parenthetical) {
		return false
	}
	ds := dialogueScore(line, win)
	_, _, strong := actionSignals(line)
	return ds >= 3 && !strong
}

// actionSignalWeights are added once per matching signal kind.
const (
	weightDash          = 4
	weightPattern       = 3
	weightVerb          = 2
	weightStructure     = 2
	weightPronounAction = 3
	weightThenAction    = 2
	weightCue           = 2
	weightAudio         = 3
)

// actionSignals inspects line for every recognized action-cue signal,
// returning the summed weighted score, whether any signal fired, and
// whether at least one "strong" signal fired (the subset the action gate
// allows to override being inside an open dialogue block).
func actionSignals(line string) (score int, any bool, strong bool) {
	dash := textutil.IsActionWithDash(line) || textutil.IsDashNarrativeActionLine(line)
	pronounAction := arabic.PRONOUN_ACTION_RE.MatchString(line)
	thenAction := arabic.THEN_ACTION_RE.MatchString(line)
	pattern := arabic.NEGATION_PLUS_VERB_RE.MatchString(line) ||
		arabic.MASDAR_PREFIX_RE.MatchString(line) ||
		arabic.PRONOUN_PLUS_VERB_RE.MatchString(line)
	verb := textutil.IsActionVerbStart(line) || textutil.IsImperativeStart(line)
	structure := textutil.HasActionVerbStructure(line)
	cue := textutil.IsActionCueLine(line)
	audio := arabic.AUDIO_NARRATIVE_RE.MatchString(line)

	add := func(present bool, weight int) {
		if present {
			score += weight
			any = true
		}
	}
	add(dash, weightDash)
	add(pattern, weightPattern)
	add(verb, weightVerb)
	add(structure, weightStructure)
	add(pronounAction, weightPronounAction)
	add(thenAction, weightThenAction)
	add(cue, weightCue)
	add(audio, weightAudio)

	strong = dash || pattern || pronounAction || thenAction || audio || verb
	return score, any, strong
}

// actionGate reports whether line can possibly be a narrative action line.
func actionGate(line string, win *context.Window) bool {
	_, any, strong := actionSignals(line)
	if !any {
		return false
	}
	if win.InDialogueBlock() && !strong {
		return false
	}
	if !strong && dialogueScore(line, win) >= 4 {
		return false
	}
	return true
}

// characterScore scores line as a character-cue candidate; the caller must
// already know characterGate(line, win) holds.
func characterScore(line string, win *context.Window) int {
	score := 11
	trimmed := strings.TrimSpace(line)
	if strings.HasSuffix(trimmed, ":") {
		score += 4
	}
	if win.InDialogueBlock() {
		score += 1
	}
	if textutil.RuneLen(line) <= shortCharacterNameRunes {
		score += 1
	}
	score += minInt(3, win.HistoryScore(isCharacterType))

	if hasDirectDialogueSignals(line) {
		score -= 3
	}
	if sigScore, _, _ := actionSignals(line); sigScore >= 4 {
		score -= 3
	}
	if win.InDialogueBlock() {
		if lastType, ok := win.LastType(); ok && lastType == document.Dialogue {
			score -= 2
		}
	}
	return score
}

// dialogueCandidateScore scores line as a dialogue candidate; the caller
// must already know dialogueGate(line, win) holds.
func dialogueCandidateScore(line string, win *context.Window) int {
	ds := dialogueScore(line, win)
	score := 6
	score += minInt(6, maxInt(0, ds))
	score += minInt(4, win.HistoryScore(isDialogueFamilyType))
	if hasDirectDialogueSignals(line) {
		score += 2
	}
	if strings.ContainsAny(line, "؟?!") {
		score += 1
	}
	if win.InDialogueBlock() {
		score += 3
	}
	return score
}

// actionCandidateScore scores line as an action candidate; the caller must
// already know actionGate(line, win) holds.
func actionCandidateScore(line string, win *context.Window) int {
	sigScore, _, strong := actionSignals(line)
	score := 6
	score += minInt(5, win.HistoryScore(isActionType))
	score += sigScore

	if hasDirectDialogueSignals(line) && !strong {
		score -= 3
	}
	if dialogueHistory := win.HistoryScore(isDialogueFamilyType); dialogueHistory >= sigScore+4 && !strong {
		score -= 2
	}
	if win.InDialogueBlock() {
		if lastType, ok := win.LastType(); ok && lastType == document.Dialogue && sigScore < 2 {
			score -= 3
		}
	}
	return score
}
