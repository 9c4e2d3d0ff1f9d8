package pipeline

import (
	"strings"

	"github.com/filmlane/classifier/core/arabic"
	"github.com/filmlane/classifier/core/importer"
	"github.com/filmlane/classifier/core/textutil"
)

// mergePass runs the clipboard-only line-joining pass: a broken character
// name split across two lines, a wrapped sentence split across two lines,
// or an ellipsis continuation are each folded back into one line before
// classification ever sees them.
func mergePass(lines []string) []string {
	var out []string
	for _, line := range lines {
		if len(out) == 0 {
			out = append(out, line)
			continue
		}
		prev := out[len(out)-1]

		if merged, ok := mergeBrokenCharacterName(prev, line); ok {
			out[len(out)-1] = merged
			continue
		}
		if shouldWrapMergeInPipeline(prev, line) {
			out[len(out)-1] = prev + " " + line
			continue
		}
		if isInlineSpeakerLine(prev) && startsWithEllipsis(line) {
			out[len(out)-1] = prev + " " + line
			continue
		}
		out = append(out, line)
	}
	return out
}

func startsWithEllipsis(line string) bool {
	return strings.HasPrefix(line, "...") || strings.HasPrefix(line, "…")
}

// mergeBrokenCharacterName tries to recombine a character name that paste
// artifacts split across two lines: prior must carry no sentence
// punctuation, current must end in a colon, and the combined
// "name:" must read as a valid, short character cue.
func mergeBrokenCharacterName(prev, current string) (string, bool) {
	if textutil.HasSentencePunctuation(prev) {
		return "", false
	}
	if arabic.SCENE_NUMBER_EXACT_RE.MatchString(prev) || arabic.TRANSITION_RE.MatchString(prev) {
		return "", false
	}
	if !strings.HasSuffix(strings.TrimSpace(current), ":") && !strings.HasSuffix(strings.TrimSpace(current), "：") {
		return "", false
	}
	if textutil.RuneLen(prev) > 25 {
		return "", false
	}

	for _, candidate := range []string{prev + current, prev + " " + current} {
		if isValidMergedCharacterCue(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func isValidMergedCharacterCue(candidate string) bool {
	if !arabic.CHARACTER_RE.MatchString(candidate) {
		return false
	}
	n := textutil.RuneLen(candidate)
	if n < 2 || n > 32 {
		return false
	}
	tokens := textutil.Tokens(strings.TrimSuffix(candidate, ":"))
	return len(tokens) >= 1 && len(tokens) <= 3
}

// shouldWrapMergeInPipeline applies the import preprocessor's wrap-merge
// test plus the pipeline-specific exclusions: never merge across an inline
// speaker line, a narrative action opener, or when the previous guess
// already reads as a character cue.
func shouldWrapMergeInPipeline(prev, next string) bool {
	if isInlineSpeakerLine(next) {
		return false
	}
	if textutil.MatchesActionStartPattern(next) || textutil.HasActionVerbStructure(next) {
		return false
	}
	if arabic.CHARACTER_RE.MatchString(prev) {
		return false
	}
	return importer.ShouldMergeWrap(prev, next)
}

// isInlineSpeakerLine reports whether line matches the "name: dialogue"
// inline speaker shape used by both the merge pass and the per-line split.
func isInlineSpeakerLine(line string) bool {
	return arabic.INLINE_DIALOGUE_RE.MatchString(line)
}
