package review

import (
	"testing"

	"github.com/filmlane/classifier/core/document"
)

func TestIsAllowedNextCharacterToDialogue(t *testing.T) {
	if !IsAllowedNext(document.Character, document.Dialogue) {
		t.Errorf("expected character -> dialogue to be allowed")
	}
}

func TestIsAllowedNextCharacterToAction(t *testing.T) {
	if IsAllowedNext(document.Character, document.Action) {
		t.Errorf("did not expect character -> action to be allowed")
	}
}

func TestIsAllowedNextUnknownCurrentIsPermissive(t *testing.T) {
	if !IsAllowedNext(document.FormatID("made-up"), document.Action) {
		t.Errorf("expected an ungrammared current type to allow anything")
	}
}
