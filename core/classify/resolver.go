package classify

import (
	"strings"

	"github.com/filmlane/classifier/core/context"
	"github.com/filmlane/classifier/core/document"
)

// tieGap is the maximum point gap between the top two candidates at which
// the resolver treats the decision as a tie rather than a clean win.
const tieGap = 1.5

// candidate pairs a scored formatId with whether its gate passed at all.
type candidate struct {
	id       document.FormatID
	score    int
	eligible bool
}

// resolveNarrative is the fallback reached once every fixed-pattern gate in
// the cascade has declined to classify the line: it scores character,
// dialogue, and action candidates and picks the best, breaking near-ties in
// favor of staying in an open dialogue block or, failing that, the safe
// default of action.
func resolveNarrative(line string, win *context.Window) Result {
	trimmed := strings.TrimSpace(line)

	if characterGate(trimmed, win) && strings.HasSuffix(trimmed, ":") {
		return Result{document.Character, 88, "gate:character-with-colon"}
	}

	candidates := []candidate{
		{document.Character, 0, characterGate(trimmed, win)},
		{document.Dialogue, 0, dialogueGate(trimmed, win)},
		{document.Action, 0, actionGate(trimmed, win)},
	}
	if candidates[0].eligible {
		candidates[0].score = characterScore(trimmed, win)
	}
	if candidates[1].eligible {
		candidates[1].score = dialogueCandidateScore(trimmed, win)
	}
	if candidates[2].eligible {
		candidates[2].score = actionCandidateScore(trimmed, win)
	}

	best, second, any := rankCandidates(candidates)
	if !any {
		return Result{document.Action, 80, "fallback:no-candidate"}
	}

	if second != nil && float64(best.score-second.score) <= tieGap {
		if win.InDialogueBlock() && !isHardBreaker(trimmed, win) {
			return Result{document.Dialogue, 65, "tie:dialogue-context"}
		}
		return Result{document.Action, 60, "tie:safe-action"}
	}

	return Result{best.id, 75, "score:max"}
}

// rankCandidates returns the top-scoring eligible candidate and the
// runner-up, if any.
func rankCandidates(candidates []candidate) (best, second *candidate, any bool) {
	for i := range candidates {
		c := &candidates[i]
		if !c.eligible {
			continue
		}
		any = true
		switch {
		case best == nil || c.score > best.score:
			second = best
			best = c
		case second == nil || c.score > second.score:
			second = c
		}
	}
	return best, second, any
}
