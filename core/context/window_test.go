package context

import (
	"testing"

	"github.com/filmlane/classifier/core/document"
)

func TestAdvanceOpensAndClosesDialogueBlock(t *testing.T) {
	w := NewWindow()
	w.Advance(document.Action)
	w.Advance(document.Character)
	if !w.InDialogueBlock() {
		t.Fatalf("expected to be inside a dialogue block after a character cue")
	}
	w.Advance(document.Dialogue)
	if !w.InDialogueBlock() {
		t.Fatalf("expected dialogue block to still be open")
	}
	w.Advance(document.Action)
	if w.InDialogueBlock() {
		t.Fatalf("expected dialogue block to close on the next action line")
	}
	if len(w.DialogueBlocks) != 1 || w.DialogueBlocks[0].Start != 1 || w.DialogueBlocks[0].End != 2 {
		t.Errorf("unexpected dialogue block bounds: %+v", w.DialogueBlocks)
	}
}

func TestAdvanceEmitsRelations(t *testing.T) {
	w := NewWindow()
	w.Advance(document.Character)
	w.Advance(document.Dialogue)
	w.Advance(document.Dialogue)
	w.Advance(document.Action)
	w.Advance(document.Dialogue)

	if len(w.Relations) != 3 {
		t.Fatalf("expected 3 relation edges, got %d: %+v", len(w.Relations), w.Relations)
	}
	if w.Relations[0].Kind != RelationResponse {
		t.Errorf("expected first edge to be response, got %s", w.Relations[0].Kind)
	}
	if w.Relations[1].Kind != RelationContinuation {
		t.Errorf("expected second edge to be continuation, got %s", w.Relations[1].Kind)
	}
	if w.Relations[2].Kind != RelationActionResult {
		t.Errorf("expected third edge to be action-result, got %s", w.Relations[2].Kind)
	}
}

func TestHistoryScoreWeighting(t *testing.T) {
	w := NewWindow()
	w.Advance(document.Action)
	isAction := func(t document.FormatID) bool { return t == document.Action }
	if got := w.HistoryScore(isAction); got != 3 {
		t.Errorf("HistoryScore immediate match = %d, want 3", got)
	}

	w2 := NewWindow()
	for i := 0; i < 5; i++ {
		w2.Advance(document.Dialogue)
	}
	w2.Advance(document.Action)
	for i := 0; i < 4; i++ {
		w2.Advance(document.Dialogue)
	}
	if got := w2.HistoryScore(isAction); got != 2 {
		t.Errorf("HistoryScore mid-window match = %d, want 2", got)
	}
}

func TestLastSceneAndCharacterDistance(t *testing.T) {
	w := NewWindow()
	if w.LastSceneDistance() != -1 || w.LastCharacterDistance() != -1 {
		t.Fatalf("expected -1 distances on an empty window")
	}
	w.Advance(document.SceneHeader1)
	w.Advance(document.Action)
	w.Advance(document.Character)
	w.Advance(document.Dialogue)

	if got := w.LastSceneDistance(); got != 3 {
		t.Errorf("LastSceneDistance = %d, want 3", got)
	}
	if got := w.LastCharacterDistance(); got != 1 {
		t.Errorf("LastCharacterDistance = %d, want 1", got)
	}
}
