package classify

import (
	"testing"

	"github.com/filmlane/classifier/core/context"
	"github.com/filmlane/classifier/core/document"
)

func TestLineBasmala(t *testing.T) {
	win := context.NewWindow()
	got := Line("بسم الله الرحمن الرحيم", win)
	if got.FormatID != document.Basmala || got.Confidence != 99 {
		t.Errorf("got %+v", got)
	}
}

func TestLineSceneHeaderComposite(t *testing.T) {
	win := context.NewWindow()
	got := Line("مشهد 1 داخلي - ليل", win)
	if got.FormatID != document.SceneHeaderTopLine {
		t.Errorf("expected composite scene header, got %+v", got)
	}
}

func TestLineSceneNumberOnly(t *testing.T) {
	win := context.NewWindow()
	got := Line("مشهد 12", win)
	if got.FormatID != document.SceneHeader1 {
		t.Errorf("expected scene-header-1, got %+v", got)
	}
}

func TestLineSceneTimeLocationOnly(t *testing.T) {
	win := context.NewWindow()
	got := Line("داخلي - ليل", win)
	if got.FormatID != document.SceneHeader2 {
		t.Errorf("expected scene-header-2, got %+v", got)
	}
}

func TestLineTransition(t *testing.T) {
	win := context.NewWindow()
	got := Line("قطع إلى", win)
	if got.FormatID != document.Transition {
		t.Errorf("expected transition, got %+v", got)
	}
}

func TestLineActionWithDash(t *testing.T) {
	win := context.NewWindow()
	got := Line("- ينظر حوله بقلق", win)
	if got.FormatID != document.Action {
		t.Errorf("expected action, got %+v", got)
	}
}

func TestLineParentheticalInDialogueBlock(t *testing.T) {
	win := context.NewWindow()
	win.Advance(document.Character)
	got := Line("(بفرح)", win)
	if got.FormatID != document.Parenthetical {
		t.Errorf("expected parenthetical inside dialogue block, got %+v", got)
	}
}

func TestLineParentheticalOutsideDialogueDefaultsAction(t *testing.T) {
	win := context.NewWindow()
	win.Advance(document.Action)
	got := Line("(يغلق الباب بعنف)", win)
	if got.FormatID != document.Action {
		t.Errorf("expected plain action fallback for non-cue parenthetical, got %+v", got)
	}
}

func TestLineCharacterCue(t *testing.T) {
	win := context.NewWindow()
	win.Advance(document.Action)
	got := Line("أحمد:", win)
	if got.FormatID != document.Character {
		t.Errorf("expected character cue, got %+v", got)
	}
}

func TestLineEmptyFallsBackToAction(t *testing.T) {
	win := context.NewWindow()
	got := Line("   ", win)
	if got.FormatID != document.Action || got.Reason != "fallback:empty-line" {
		t.Errorf("got %+v", got)
	}
}

func TestLineDialogueContinuesInOpenBlock(t *testing.T) {
	win := context.NewWindow()
	win.Advance(document.Character)
	win.Advance(document.Dialogue)
	got := Line("وبعدين قررت أروح من غير ما أقول لحد", win)
	if got.FormatID != document.Dialogue && got.FormatID != document.Action {
		t.Errorf("expected dialogue or safe-action fallback inside an open block, got %+v", got)
	}
}
