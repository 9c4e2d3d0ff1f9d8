// Package importer applies deterministic, per-source normalization to text
// extracted from external formats (pasted text, PDF extraction) before it
// reaches the classification pipeline: a single entry point that walks raw
// input and returns a normalized, typed inventory of lines.
package importer

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/filmlane/classifier/core/arabic"
	"github.com/filmlane/classifier/core/textutil"
)

// SourceKind distinguishes the small set of extraction-quirk profiles the
// preprocessor corrects for.
type SourceKind string

const (
	// SourcePaste is plain pasted or typed text with no extraction
	// artifacts beyond ordinary copy/paste noise.
	SourcePaste SourceKind = "paste"
	// SourcePDF is text recovered from a PDF text layer, which commonly
	// glues bullet glyphs onto the following line.
	SourcePDF SourceKind = "pdf"
)

// Result is the outcome of preprocessing one document's worth of raw input.
type Result struct {
	Lines   []string
	Quality float64 // in [0, 1]; purely informational
}

// gluedSceneNumberRE matches "مشهد" immediately followed by a digit run with
// no separating space, e.g. "مشهد1".
var gluedSceneNumberRE = regexp.MustCompile(`(مشهد)([0-9\x{0660}-\x{0669}]+)`)

// pdfBulletGlyphsRE matches the bullet glyphs PDF text extraction tends to
// glue onto the start of the following line with no newline between them.
var pdfBulletGlyphsRE = regexp.MustCompile(`[•●▪♦]`)

// leadingBulletRE matches a bullet/dash glyph opening a line, the shape
// DecomposeBulletSpeaker expects before the name/dialogue split.
var leadingBulletRE = regexp.MustCompile(`^[•◦▪●○♦\-–—*·]\s*`)

// coordinatingParticles are the short connective words that, opening a
// line, suggest it continues the previous one rather than starting fresh.
var coordinatingParticles = []string{"و", "ثم", "ف"}

// Preprocess normalizes raw text extracted from source into ordered lines
// ready for the classification pipeline, along with a quality score
// reporting how much repair was required.
func Preprocess(raw string, source SourceKind) Result {
	lines := splitLines(raw)

	if source == SourcePDF {
		lines = splitPDFBullets(lines)
	}

	anomalies := 0
	for i, line := range lines {
		line = collapseTabsAndMarks(line)
		repaired, hit := repairSceneHeaderSpacing(line)
		if hit {
			anomalies++
		}
		lines[i] = repaired
	}

	lines, mergeAnomalies := mergeWrappedLines(lines)
	anomalies += mergeAnomalies

	lines, bulletAnomalies := decomposeBulletSpeakers(lines)
	anomalies += bulletAnomalies

	for _, line := range lines {
		if isVeryShortNonCueLine(line) {
			anomalies++
		}
	}

	quality := 1.0 - float64(anomalies)/maxFloat(1, 2.2*float64(len(lines)))
	if quality < 0 {
		quality = 0
	}

	return Result{Lines: lines, Quality: quality}
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// splitLines normalizes CR/CRLF line endings and splits on the remaining
// newlines.
func splitLines(raw string) []string {
	normalized := textutil.CleanInvisibleChars(raw)
	return strings.Split(normalized, "\n")
}

// splitPDFBullets breaks a line apart wherever a bullet glyph appears mid
// string, turning each bulleted fragment into its own line, before the
// general wrap merger gets a chance to re-glue genuine continuations.
func splitPDFBullets(lines []string) []string {
	var out []string
	for _, line := range lines {
		if !pdfBulletGlyphsRE.MatchString(line) {
			out = append(out, line)
			continue
		}
		parts := pdfBulletGlyphsRE.Split(line, -1)
		for _, p := range parts {
			if strings.TrimSpace(p) != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// collapseTabsAndMarks collapses runs of tab characters (treating a tab as
// 4 columns wide, collapsed to a single space) and strips directional
// marks and other invisible characters textutil already knows about.
func collapseTabsAndMarks(line string) string {
	line = textutil.CleanInvisibleChars(line)
	var b strings.Builder
	inTabRun := false
	for _, r := range line {
		if r == '\t' {
			if !inTabRun {
				b.WriteByte(' ')
				inTabRun = true
			}
			continue
		}
		inTabRun = false
		b.WriteRune(r)
	}
	return b.String()
}

// repairSceneHeaderSpacing fixes two common scene-header spacing defects:
// a scene number glued directly to "مشهد", and a missing dash between a
// scene number and a following recognized time/location status word.
func repairSceneHeaderSpacing(line string) (string, bool) {
	fixed := false

	if gluedSceneNumberRE.MatchString(line) {
		line = gluedSceneNumberRE.ReplaceAllString(line, "$1 $2")
		fixed = true
	}

	if m := arabic.SCENE_NUMBER_EXACT_RE.FindStringIndex(line); m != nil {
		rest := strings.TrimSpace(line[m[1]:])
		if rest != "" && !strings.HasPrefix(rest, "-") && !strings.HasPrefix(rest, "–") {
			firstToken := strings.Fields(rest)[0]
			if arabic.SCENE_TIME_RE.MatchString(firstToken) || arabic.SCENE_LOCATION_RE.MatchString(firstToken) {
				line = line[:m[1]] + " - " + rest
				fixed = true
			}
		}
	}

	return line, fixed
}

// mergeWrappedLines merges a subsequent line into the prior one wherever
// the pair looks like a PDF/editor line wrap rather than two genuine
// screenplay lines, returning the merged slice and a count of merges
// performed (an "orphan wrapped line" anomaly each).
func mergeWrappedLines(lines []string) ([]string, int) {
	var out []string
	merges := 0

	for _, line := range lines {
		if len(out) == 0 {
			out = append(out, line)
			continue
		}
		prev := out[len(out)-1]
		if shouldMergeWrap(prev, line) {
			out[len(out)-1] = strings.TrimRight(prev, " ") + " " + strings.TrimLeft(line, " ")
			merges++
			continue
		}
		out = append(out, line)
	}

	return out, merges
}

// ShouldMergeWrap reports whether next reads as a wrapped continuation of
// prev, the same test mergeWrappedLines applies internally. It is exported
// so the paste/import pipeline's clipboard merge pass can reuse the exact
// wrap heuristic instead of re-deriving it.
func ShouldMergeWrap(prev, next string) bool {
	return shouldMergeWrap(prev, next)
}

// shouldMergeWrap decides whether next is a wrapped continuation of prev.
func shouldMergeWrap(prev, next string) bool {
	trimmedPrev := strings.TrimSpace(prev)
	trimmedNext := strings.TrimSpace(next)
	if trimmedNext == "" {
		return false
	}

	if hasStrongTerminalPunctuation(trimmedPrev) {
		return false
	}
	if looksLikeBoundary(trimmedNext) {
		return false
	}

	if strings.Count(trimmedPrev, "(")+strings.Count(trimmedPrev, "﴾") >
		strings.Count(trimmedPrev, ")")+strings.Count(trimmedPrev, "﴿") {
		return true
	}

	if strings.HasPrefix(trimmedNext, "...") || strings.HasPrefix(trimmedNext, "…") || strings.HasPrefix(trimmedNext, "،") {
		return true
	}
	for _, particle := range coordinatingParticles {
		if strings.HasPrefix(trimmedNext, particle+" ") {
			return true
		}
	}

	if textutil.RuneLen(trimmedNext) <= 16 {
		return true
	}

	if textutil.RuneLen(trimmedPrev) >= 90 && textutil.RuneLen(trimmedNext) <= 90 &&
		!textutil.IsActionVerbStart(trimmedNext) && !textutil.IsImperativeStart(trimmedNext) {
		return true
	}

	return false
}

// hasStrongTerminalPunctuation reports whether line ends with punctuation
// strong enough to rule out a following wrap.
func hasStrongTerminalPunctuation(line string) bool {
	if line == "" {
		return false
	}
	runes := []rune(line)
	last := runes[len(runes)-1]
	switch last {
	case '.', '؟', '?', '!':
		return true
	}
	return false
}

// looksLikeBoundary reports whether line opens a new screenplay structure —
// scene header, transition, character cue, or inline speaker line — and so
// must never be folded into the preceding line.
func looksLikeBoundary(line string) bool {
	if arabic.SCENE_NUMBER_EXACT_RE.MatchString(line) {
		return true
	}
	if arabic.TRANSITION_RE.MatchString(line) {
		return true
	}
	if arabic.CHARACTER_RE.MatchString(line) {
		return true
	}
	if arabic.INLINE_DIALOGUE_RE.MatchString(line) {
		return true
	}
	return false
}

// isVeryShortNonCueLine flags a line as an anomaly when it is extremely
// short and does not read as one of the known short cue forms.
func isVeryShortNonCueLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if textutil.RuneLen(trimmed) > 3 {
		return false
	}
	if arabic.SHORT_DIALOGUE_WORDS.Has(trimmed) {
		return false
	}
	if textutil.IsActionCueLine(trimmed) {
		return false
	}
	return true
}

// decomposeBulletSpeakers splits every bullet-opened "• <name> : <text>"
// line into its character-cue and dialogue halves, leaving other lines
// untouched, and counts each split as a corrected anomaly.
func decomposeBulletSpeakers(lines []string) ([]string, int) {
	out := make([]string, 0, len(lines))
	splits := 0
	for _, line := range lines {
		if !leadingBulletRE.MatchString(strings.TrimSpace(line)) {
			out = append(out, line)
			continue
		}
		d, ok := DecomposeBulletSpeaker(line)
		if !ok {
			out = append(out, line)
			continue
		}
		out = append(out, d.Name+":", d.Text)
		splits++
	}
	return out, splits
}

// decomposedLine is one half of a bullet/speaker decomposition.
type decomposedLine struct {
	Name string
	Text string
}

// DecomposeBulletSpeaker splits a line of the shape "• <name> : <text>"
// into a character cue and its dialogue when name is a plausible speaker:
// 1-4 tokens, at most 28 characters, made up only of Unicode letters and
// spaces, and not itself a scene/transition/status word. It returns ok=false
// when the line does not match this shape.
func DecomposeBulletSpeaker(line string) (decomposedLine, bool) {
	trimmed := textutil.StripLeadingBullets(strings.TrimSpace(line))
	idx := strings.Index(trimmed, ":")
	if idx == -1 {
		idx = strings.Index(trimmed, "：")
	}
	if idx == -1 {
		return decomposedLine{}, false
	}

	name := strings.TrimSpace(trimmed[:idx])
	text := strings.TrimSpace(trimmed[idx+1:])
	if name == "" || text == "" {
		return decomposedLine{}, false
	}
	if !isPlausibleSpeakerName(name) {
		return decomposedLine{}, false
	}

	return decomposedLine{Name: name, Text: text}, true
}

// isPlausibleSpeakerName applies the bullet-decomposition speaker gate.
func isPlausibleSpeakerName(name string) bool {
	tokens := strings.Fields(name)
	if len(tokens) == 0 || len(tokens) > 4 {
		return false
	}
	if textutil.RuneLen(name) > 28 {
		return false
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	if arabic.SCENE_NUMBER_EXACT_RE.MatchString(name) || arabic.TRANSITION_RE.MatchString(name) {
		return false
	}
	for _, tok := range tokens {
		if arabic.SCENE_TIME_RE.FindString(tok) == tok || arabic.SCENE_LOCATION_RE.FindString(tok) == tok {
			return false
		}
	}
	return true
}

// quality formatting helper retained for callers that want a fixed-point
// string without pulling in fmt at every call site.
func FormatQuality(q float64) string {
	return strconv.FormatFloat(q, 'f', 3, 64)
}
