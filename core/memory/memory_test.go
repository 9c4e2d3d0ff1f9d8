package memory

import (
	"testing"

	"github.com/filmlane/classifier/core/context"
	"github.com/filmlane/classifier/core/document"
	"github.com/filmlane/classifier/core/store"
)

func TestLoadMissingReturnsEmpty(t *testing.T) {
	rec, err := Load(store.NewMemStore(), "sid-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rec.CharacterDialogueMap == nil {
		t.Errorf("expected initialized map")
	}
}

func TestUpdateTracksCharactersAndCapsHistory(t *testing.T) {
	s := store.NewMemStore()
	rec, _ := Load(s, "sid-2")
	win := context.NewWindow()

	var entries []ClassificationEntry
	for i := 0; i < 25; i++ {
		entries = append(entries, ClassificationEntry{Text: "مشهد", FormatID: document.Action, Timestamp: int64(i)})
	}
	entries = append(entries, ClassificationEntry{Text: "أحمد:", FormatID: document.Character, Timestamp: 99})

	rec, err := Update(s, "sid-2", rec, entries, win)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(rec.LastClassifications) != maxLastClassifications {
		t.Errorf("expected cap at %d, got %d", maxLastClassifications, len(rec.LastClassifications))
	}
	if rec.LastClassifications[0].Text != "أحمد:" {
		t.Errorf("expected most recent entry first, got %+v", rec.LastClassifications[0])
	}
	if rec.CharacterDialogueMap["أحمد"] != 1 {
		t.Errorf("expected أحمد to be tallied once, got %d", rec.CharacterDialogueMap["أحمد"])
	}
}

func TestUpdatePopulatesConfidenceMap(t *testing.T) {
	s := store.NewMemStore()
	rec, _ := Load(s, "sid-confidence")
	win := context.NewWindow()

	entries := []ClassificationEntry{
		{Text: "أحمد:", FormatID: document.Character, Confidence: 92, Timestamp: 0},
	}
	rec, err := Update(s, "sid-confidence", rec, entries, win)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := rec.ConfidenceMap["أحمد:"]; got != 92 {
		t.Errorf("expected confidence 92 remembered for the line, got %d", got)
	}
}

func TestUpdateTracksLocations(t *testing.T) {
	s := store.NewMemStore()
	rec, _ := Load(s, "sid-location")
	win := context.NewWindow()

	entries := []ClassificationEntry{
		{Text: "داخلي - بيت أحمد - نهار", FormatID: document.SceneHeader2, Confidence: 95, Timestamp: 0},
	}
	rec, err := Update(s, "sid-location", rec, entries, win)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(rec.CommonLocations) != 1 || rec.CommonLocations[0] != "بيت أحمد" {
		t.Errorf("expected بيت أحمد to be remembered as a location, got %+v", rec.CommonLocations)
	}
}

func TestExtractLocationSkipsMarkerOnlyLine(t *testing.T) {
	if _, ok := extractLocation("داخلي - ليل"); ok {
		t.Errorf("did not expect a location when only interior/exterior and time markers are present")
	}
}

func TestValidMemoryCharacterNameRejectsPronoun(t *testing.T) {
	if _, ok := validMemoryCharacterName("هو:"); ok {
		t.Errorf("did not expect a bare pronoun to register as a character name")
	}
}

func TestDetectPatternFindsRepeatedBigram(t *testing.T) {
	rec := Record{LastClassifications: []ClassificationEntry{
		{FormatID: document.Character}, {FormatID: document.Dialogue},
		{FormatID: document.Character}, {FormatID: document.Dialogue},
	}}
	pattern, ok := DetectPattern(rec)
	if !ok || pattern != "character-dialogue" {
		t.Errorf("expected character-dialogue bigram, got %q ok=%v", pattern, ok)
	}
}

func TestDetectPatternNoneUnderThreshold(t *testing.T) {
	rec := Record{LastClassifications: []ClassificationEntry{
		{FormatID: document.Character}, {FormatID: document.Action},
	}}
	if _, ok := DetectPattern(rec); ok {
		t.Errorf("did not expect a pattern from a single occurrence")
	}
}
