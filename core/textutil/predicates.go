package textutil

import (
	"strings"

	"github.com/filmlane/classifier/core/arabic"
)

// particlePrefixes are the single-letter conjunction/preposition particles
// that action-verb detection must also accept when glued to the following
// verb ("و" + "يدخل" = "ويدخل").
var particlePrefixes = []string{"و", "ف", "ل"}

// stripOneParticle removes a single leading particle from {و, ف, ل} if
// present, returning the remainder and whether a particle was stripped.
func stripOneParticle(s string) (string, bool) {
	runes := []rune(s)
	if len(runes) == 0 {
		return s, false
	}
	for _, p := range particlePrefixes {
		pr := []rune(p)
		if len(runes) > len(pr) && string(runes[:len(pr)]) == p {
			return string(runes[len(pr):]), true
		}
	}
	return s, false
}

// IsActionVerbStart reports whether line begins with a full-form action
// verb, optionally preceded by one leading particle (و/ف/ل).
func IsActionVerbStart(line string) bool {
	tokens := Tokens(line)
	if len(tokens) == 0 {
		return false
	}
	first := tokens[0]
	if arabic.FULL_ACTION_VERB_SET.Has(first) {
		return true
	}
	if stripped, ok := stripOneParticle(first); ok && arabic.FULL_ACTION_VERB_SET.Has(stripped) {
		return true
	}
	return false
}

// IsImperativeStart reports whether line begins with a known imperative
// verb form.
func IsImperativeStart(line string) bool {
	tokens := Tokens(line)
	if len(tokens) == 0 {
		return false
	}
	return arabic.IMPERATIVE_VERB_SET.Has(tokens[0])
}

// IsActionWithDash reports whether the line opens with a dash used as a
// narrative action marker ("- ينظر حوله").
func IsActionWithDash(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, prefix := range []string{"-", "–", "—"} {
		if strings.HasPrefix(trimmed, prefix) {
			rest := strings.TrimSpace(strings.TrimPrefix(trimmed, prefix))
			return rest != ""
		}
	}
	return false
}

// IsDashNarrativeActionLine reports whether the line is a dash-delimited
// narrative action of the "name - verb..." shape, distinct from a scene
// header's "داخلي - ليل" dash usage because it does not match scene time or
// location patterns.
func IsDashNarrativeActionLine(line string) bool {
	if !strings.Contains(line, "-") && !strings.Contains(line, "–") && !strings.Contains(line, "—") {
		return false
	}
	if arabic.SCENE_TIME_RE.MatchString(line) || arabic.SCENE_LOCATION_RE.MatchString(line) {
		return false
	}
	return MatchesActionStartPattern(line) || HasActionVerbStructure(line)
}

// MatchesActionStartPattern reports whether line matches one of the
// narrative-syntax action openers: pronoun+action, then+action,
// pronoun-prefixed particle+verb, negation+verb, or a masdar opener.
func MatchesActionStartPattern(line string) bool {
	return arabic.PRONOUN_ACTION_RE.MatchString(line) ||
		arabic.THEN_ACTION_RE.MatchString(line) ||
		arabic.NEGATION_PLUS_VERB_RE.MatchString(line) ||
		arabic.MASDAR_PREFIX_RE.MatchString(line) ||
		arabic.PRONOUN_PLUS_VERB_RE.MatchString(line)
}

// HasActionVerbStructure reports whether line exhibits the "verb name verb"
// narrative triple syntax or carries a verb-plus-pronoun-suffix.
func HasActionVerbStructure(line string) bool {
	return arabic.ACTION_VERB_FOLLOWED_BY_NAME_AND_VERB_RE.MatchString(line) ||
		arabic.VERB_WITH_PRONOUN_SUFFIX_RE.MatchString(line)
}

// IsActionCueLine reports whether line is (or consists mostly of) a known
// short action/delivery cue phrase.
func IsActionCueLine(line string) bool {
	return arabic.ACTION_CUE_RE.MatchString(line)
}

// HasSentencePunctuation reports whether line contains sentence punctuation
// (period, Arabic or Latin question mark, exclamation mark, Arabic comma) or
// an embedded ellipsis.
func HasSentencePunctuation(line string) bool {
	return strings.ContainsAny(line, ".؟?!،") || strings.Contains(line, "...") || strings.Contains(line, "…")
}

// IsParenthetical reports whether line, once trimmed, is entirely wrapped
// in matching parentheses.
func IsParenthetical(line string) bool {
	return arabic.PARENTHETICAL_RE.MatchString(strings.TrimSpace(line))
}

// ParentheticalContent strips the wrapping parentheses from a parenthetical
// line, returning the inner text. If line is not a parenthetical, it is
// returned unchanged.
func ParentheticalContent(line string) string {
	trimmed := strings.TrimSpace(line)
	if !IsParenthetical(trimmed) {
		return trimmed
	}
	runes := []rune(trimmed)
	return strings.TrimSpace(string(runes[1 : len(runes)-1]))
}
