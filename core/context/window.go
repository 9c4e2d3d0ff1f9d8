// Package context tracks the rolling state the classifier and reviewer
// consult while walking a document line by line: the history of assigned
// types, open dialogue blocks, and the relation edges between consecutive
// lines, scoped to a single classification pass.
package context

import "github.com/filmlane/classifier/core/document"

// RelationKind names how one emitted line relates to the one before it.
type RelationKind string

const (
	RelationResponse     RelationKind = "response"
	RelationContinuation RelationKind = "continuation"
	RelationActionResult RelationKind = "action-result"
)

// Relation is a directed edge between two emitted line indices.
type Relation struct {
	From int
	To   int
	Kind RelationKind
}

// DialogueBlock is a contiguous run of dialogue-family lines (character,
// dialogue, parenthetical).
type DialogueBlock struct {
	Start int
	End   int // index of the block's last line; only closed blocks are recorded
}

// Window is the append-only record of a single classification pass.
type Window struct {
	Types          []document.FormatID
	DialogueBlocks []DialogueBlock
	Relations      []Relation

	inDialogueBlock   bool
	currentBlockStart int
}

// NewWindow returns an empty window ready for the first line of a document.
func NewWindow() *Window {
	return &Window{currentBlockStart: -1}
}

// PreviousTypes returns the types assigned so far, oldest first.
func (w *Window) PreviousTypes() []document.FormatID {
	return w.Types
}

// InDialogueBlock reports whether the line most recently advanced left the
// window inside an open dialogue-family run.
func (w *Window) InDialogueBlock() bool {
	return w.inDialogueBlock
}

// LastType returns the most recently assigned type and whether one exists.
func (w *Window) LastType() (document.FormatID, bool) {
	if len(w.Types) == 0 {
		return "", false
	}
	return w.Types[len(w.Types)-1], true
}

// Advance records assignedType as the next emitted line's type: it appends
// to the history, emits a relation edge from the previous line when one
// exists, and opens, extends, or closes the current dialogue block.
func (w *Window) Advance(assignedType document.FormatID) {
	if prev, ok := w.LastType(); ok {
		if kind, ok := relationFor(prev, assignedType); ok {
			w.Relations = append(w.Relations, Relation{
				From: len(w.Types) - 1,
				To:   len(w.Types),
				Kind: kind,
			})
		}
	}

	w.Types = append(w.Types, assignedType)
	idx := len(w.Types) - 1

	switch {
	case assignedType.IsDialogueFamily() && !w.inDialogueBlock:
		w.inDialogueBlock = true
		w.currentBlockStart = idx
	case assignedType.IsDialogueFamily() && w.inDialogueBlock:
		// continues the open block; nothing to close yet.
	case !assignedType.IsDialogueFamily() && w.inDialogueBlock:
		w.DialogueBlocks = append(w.DialogueBlocks, DialogueBlock{Start: w.currentBlockStart, End: idx - 1})
		w.inDialogueBlock = false
		w.currentBlockStart = -1
	}
}

// relationFor maps a (previous, current) type pair to the edge it implies,
// if any.
func relationFor(prev, cur document.FormatID) (RelationKind, bool) {
	switch {
	case prev == document.Character && cur.IsDialogueFamily():
		return RelationResponse, true
	case prev.IsDialogueFamily() && cur.IsDialogueFamily():
		return RelationContinuation, true
	case prev == document.Action && cur.IsDialogueFamily():
		return RelationActionResult, true
	}
	return "", false
}

// historyWindow caps how far back HistoryScore and the distance helpers
// look.
const historyWindow = 10

// HistoryScore scans up to the last 10 previously assigned types, most
// recent first, and awards 3 points for a match within the first 2
// positions, 2 within positions 2-4, and 1 for any match further back.
func (w *Window) HistoryScore(in func(document.FormatID) bool) int {
	score := 0
	n := len(w.Types)
	for back := 0; back < historyWindow && back < n; back++ {
		t := w.Types[n-1-back]
		if !in(t) {
			continue
		}
		switch {
		case back <= 1:
			score += 3
		case back <= 4:
			score += 2
		default:
			score += 1
		}
	}
	return score
}

// LastIndexMatching returns the index of the most recent type satisfying
// predicate, or -1 if none does.
func (w *Window) LastIndexMatching(predicate func(document.FormatID) bool) int {
	for i := len(w.Types) - 1; i >= 0; i-- {
		if predicate(w.Types[i]) {
			return i
		}
	}
	return -1
}

// LastSceneDistance is how many lines ago the last scene-header of any tier
// was assigned, or -1 if none has been.
func (w *Window) LastSceneDistance() int {
	return distanceTo(w, document.FormatID.IsSceneHeader)
}

// LastCharacterDistance is how many lines ago a character cue was assigned,
// or -1 if none has been.
func (w *Window) LastCharacterDistance() int {
	return distanceTo(w, func(t document.FormatID) bool { return t == document.Character })
}

func distanceTo(w *Window, predicate func(document.FormatID) bool) int {
	idx := w.LastIndexMatching(predicate)
	if idx == -1 {
		return -1
	}
	return len(w.Types) - 1 - idx
}
