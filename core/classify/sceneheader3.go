package classify

import (
	"strings"

	"github.com/filmlane/classifier/core/arabic"
	"github.com/filmlane/classifier/core/textutil"
)

// maxSceneHeader3Tokens bounds a standalone scene-header-3 candidate's
// length; anything longer reads as prose, not a sub-location cue.
const maxSceneHeader3Tokens = 14

// shortSceneHeader3Tokens bounds the lenient contextual form, which applies
// immediately after another scene header and so tolerates less evidence.
const shortSceneHeader3Tokens = 6

// IsStandaloneSceneHeader3 reports whether line, on its own and without any
// help from surrounding context, reads as a scene-header-3 sub-location
// line: short, unpunctuated, not a transition or action opener, and either
// opening with a known place prefix or matching a multi-location or range
// pattern.
func IsStandaloneSceneHeader3(line string) bool {
	candidate := strings.TrimSuffix(strings.TrimSpace(line), ":")
	tokens := textutil.Tokens(candidate)
	if len(tokens) == 0 || len(tokens) > maxSceneHeader3Tokens {
		return false
	}
	if textutil.HasSentencePunctuation(candidate) {
		return false
	}
	if arabic.TRANSITION_RE.MatchString(candidate) {
		return false
	}
	if textutil.IsActionVerbStart(candidate) {
		return false
	}
	if textutil.MatchesActionStartPattern(candidate) {
		return false
	}
	return hasSceneHeader3Evidence(candidate)
}

// IsContextualSceneHeader3 is the lenient form used immediately after
// another scene header, where a short unpunctuated line is enough evidence
// on its own.
func IsContextualSceneHeader3(line string) bool {
	candidate := strings.TrimSuffix(strings.TrimSpace(line), ":")
	if candidate == "" {
		return false
	}
	if hasSceneHeader3Evidence(candidate) {
		return true
	}
	tokens := textutil.Tokens(candidate)
	return len(tokens) > 0 && len(tokens) <= shortSceneHeader3Tokens && !textutil.HasSentencePunctuation(candidate)
}

// hasSceneHeader3Evidence is the shared place-name test both forms fall
// back on.
func hasSceneHeader3Evidence(candidate string) bool {
	return arabic.HasPlaceNamePrefix(candidate) ||
		arabic.MultiLocationRE.MatchString(candidate) ||
		arabic.RangeRE.MatchString(candidate)
}

