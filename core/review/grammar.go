// Package review implements the post-classification reviewer: a set of
// independent, pure detectors run over an already-classified line sequence
// to surface lines whose assigned type is probably wrong, aggregated into
// a bounded, ranked list of suspicious lines for an external adjudicator or
// a human to look at — independent signal detectors feeding a single
// threshold gate.
package review

import "github.com/filmlane/classifier/core/document"

// allowedNext is the fixed grammar of types permitted to directly follow a
// given current type. A current type with no entry allows anything.
var allowedNext = map[document.FormatID]map[document.FormatID]bool{
	document.Character: set(document.Dialogue, document.Parenthetical),
	document.Parenthetical: set(document.Dialogue),
	document.Dialogue: set(document.Dialogue, document.Action, document.Character,
		document.Transition, document.Parenthetical),
	document.Action: set(document.Action, document.Character, document.Transition,
		document.SceneHeader1, document.SceneHeaderTopLine),
	document.Transition: set(document.SceneHeader1, document.SceneHeaderTopLine, document.Action),
	document.SceneHeaderTopLine: set(document.Action, document.Character, document.Transition,
		document.SceneHeader1, document.SceneHeaderTopLine),
	document.SceneHeader1: set(document.SceneHeader2, document.SceneHeader3, document.Action,
		document.SceneHeaderTopLine),
	document.SceneHeader2: set(document.SceneHeader3, document.Action),
	document.SceneHeader3: set(document.Action, document.Character),
	document.Basmala: set(document.SceneHeaderTopLine, document.SceneHeader1,
		document.Action, document.Character),
}

func set(ids ...document.FormatID) map[document.FormatID]bool {
	m := make(map[document.FormatID]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}

// IsAllowedNext reports whether next may directly follow current under the
// fixed grammar. A current type absent from the grammar has no restriction.
func IsAllowedNext(current, next document.FormatID) bool {
	allowed, known := allowedNext[current]
	if !known {
		return true
	}
	return allowed[next]
}

// sequenceSeverity assigns a violation a severity by the specific
// (current, next) pair when the pair is a well-known bad transition,
// falling back to a flat default otherwise.
var sequenceSeverity = map[[2]document.FormatID]int{
	{document.Character, document.Character}:     95,
	{document.Parenthetical, document.Action}:     92,
	{document.Parenthetical, document.Character}:  92,
	{document.Parenthetical, document.Transition}: 90,
	{document.Transition, document.Dialogue}:      80,
	{document.Transition, document.Character}:     75,
	{document.SceneHeader2, document.SceneHeader1}: 75,
	{document.SceneHeader3, document.SceneHeader1}: 70,
	{document.SceneHeader3, document.SceneHeader2}: 70,
}

// defaultSequenceSeverity is the score given to a grammar violation with no
// specific entry above.
const defaultSequenceSeverity = 65

// suggestedAfter maps a current type to the type a violating next line most
// likely should have been, for the sequence-violation detector's
// suggestedType output.
var suggestedAfter = map[document.FormatID]document.FormatID{
	document.Character:     document.Dialogue,
	document.Parenthetical: document.Dialogue,
	document.Transition:    document.Action,
	document.SceneHeader2:  document.SceneHeader3,
	document.SceneHeader3:  document.Action,
}
