// Package classify implements the rule-based screenplay line classifier:
// a fixed cascade of pattern gates followed by a scored narrative decision
// resolver for everything the cascade cannot settle outright — ordered
// gates first, a scored fallback second, and a result that always carries
// a short machine-readable reason.
package classify

import (
	"log"
	"strings"

	"github.com/filmlane/classifier/core/arabic"
	"github.com/filmlane/classifier/core/context"
	"github.com/filmlane/classifier/core/document"
	"github.com/filmlane/classifier/core/textutil"
)

// Result is the outcome of classifying a single line.
type Result struct {
	FormatID   document.FormatID
	Confidence int
	Reason     string
}

// Line is pure and cannot fail: an input that matches nothing falls through
// to Action at confidence 80, and a recovered panic yields the same
// fallback with a logged warning.
func Line(raw string, win *context.Window) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("warning: classify: recovered panic, falling back to action: %v", r)
			res = Result{document.Action, 80, "fallback:recovered-panic"}
		}
	}()
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Result{document.Action, 80, "fallback:empty-line"}
	}

	if isBasmala(trimmed) {
		return Result{document.Basmala, 99, "gate:basmala"}
	}

	sceneNumber := arabic.SCENE_NUMBER_EXACT_RE.MatchString(trimmed)
	timeAndLocation := hasTimeAndLocation(trimmed)

	switch {
	case sceneNumber && timeAndLocation:
		return Result{document.SceneHeaderTopLine, 95, "gate:scene-header-composite"}
	case sceneNumber:
		return Result{document.SceneHeader1, 95, "gate:scene-number"}
	case timeAndLocation:
		return Result{document.SceneHeader2, 95, "gate:scene-time-location"}
	}

	if arabic.TRANSITION_RE.MatchString(trimmed) {
		return Result{document.Transition, 95, "gate:transition"}
	}

	if IsStandaloneSceneHeader3(trimmed) {
		return Result{document.SceneHeader3, 90, "gate:scene-header-3-standalone"}
	}

	if textutil.IsActionWithDash(trimmed) || textutil.IsDashNarrativeActionLine(trimmed) {
		return Result{document.Action, 90, "gate:action-dash"}
	}

	if textutil.IsParenthetical(trimmed) {
		return classifyParenthetical(trimmed, win)
	}

	if lastType, ok := win.LastType(); ok && lastType.IsSceneHeader() && IsContextualSceneHeader3(trimmed) {
		return Result{document.SceneHeader3, 80, "gate:scene-header-3-contextual"}
	}

	return resolveNarrative(trimmed, win)
}

// classifyParenthetical resolves step 8 of the cascade: a bracket-wrapped
// line is parenthetical when it's already inside spoken material, and
// otherwise defaults to action unless its contents read as a pure delivery
// cue and a dialogue-family type is among the last three assigned types.
func classifyParenthetical(trimmed string, win *context.Window) Result {
	if win.InDialogueBlock() {
		return Result{document.Parenthetical, 90, "gate:parenthetical-in-dialogue"}
	}
	if lastType, ok := win.LastType(); ok && lastType == document.Character {
		return Result{document.Parenthetical, 90, "gate:parenthetical-after-character"}
	}

	content := textutil.ParentheticalContent(trimmed)
	if textutil.IsActionCueLine(content) && lastNIncludesDialogueFamily(win, 3) {
		return Result{document.Parenthetical, 85, "gate:parenthetical-cue"}
	}
	return Result{document.Action, 80, "gate:parenthetical-as-action"}
}

// lastNIncludesDialogueFamily reports whether any of the last n assigned
// types belong to the dialogue family.
func lastNIncludesDialogueFamily(win *context.Window, n int) bool {
	types := win.PreviousTypes()
	start := len(types) - n
	if start < 0 {
		start = 0
	}
	for _, t := range types[start:] {
		if t.IsDialogueFamily() {
			return true
		}
	}
	return false
}

// isBasmala reports whether line is an opening invocation line, after
// stripping brackets and invisible marks.
func isBasmala(line string) bool {
	stripped := stripBracketsAndInvisible(line)
	return strings.Contains(stripped, "بسم") &&
		strings.Contains(stripped, "الله") &&
		(strings.Contains(stripped, "الرحمن") || strings.Contains(stripped, "الرحيم"))
}

// stripBracketsAndInvisible removes parenthesis characters (plain and
// ornate) and any invisible marks textutil already knows how to clean.
func stripBracketsAndInvisible(line string) string {
	cleaned := textutil.CleanInvisibleChars(line)
	return strings.NewReplacer("(", "", ")", "", "﴾", "", "﴿", "").Replace(cleaned)
}

// hasTimeAndLocation reports whether line carries both a time-of-day and an
// interior/exterior location marker.
func hasTimeAndLocation(line string) bool {
	return arabic.SCENE_TIME_RE.MatchString(line) && arabic.SCENE_LOCATION_RE.MatchString(line)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
