package importer

import (
	"strings"
	"testing"
)

func TestPreprocessSplitsAndNormalizesLineEndings(t *testing.T) {
	res := Preprocess("مشهد 1\r\nداخلي - ليل\r", SourcePaste)
	if len(res.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %+v", len(res.Lines), res.Lines)
	}
}

func TestRepairSceneHeaderGluedNumber(t *testing.T) {
	got, fixed := repairSceneHeaderSpacing("مشهد1")
	if !fixed || got != "مشهد 1" {
		t.Errorf("repairSceneHeaderSpacing(مشهد1) = %q, %v", got, fixed)
	}
}

func TestRepairSceneHeaderMissingDash(t *testing.T) {
	got, fixed := repairSceneHeaderSpacing("مشهد 1 ليل")
	if !fixed {
		t.Fatalf("expected a dash repair")
	}
	if !strings.Contains(got, "- ليل") {
		t.Errorf("expected dash inserted before status word, got %q", got)
	}
}

func TestRepairSceneHeaderLeavesDashedFormAlone(t *testing.T) {
	got, fixed := repairSceneHeaderSpacing("مشهد 1 - ليل")
	if fixed {
		t.Errorf("did not expect a fix when a dash is already present, got %q", got)
	}
}

func TestMergeWrappedLinesShortContinuation(t *testing.T) {
	lines := []string{"يدخل أحمد إلى الغرفة ببطء شديد وهو يفكر في كل ما حدث معه في اليوم السابق بهدوء تام", "وينظر حوله"}
	merged, merges := mergeWrappedLines(lines)
	if merges != 1 || len(merged) != 1 {
		t.Fatalf("expected a merge, got merges=%d lines=%+v", merges, merged)
	}
}

func TestMergeWrappedLinesDoesNotCrossSceneBoundary(t *testing.T) {
	lines := []string{"ينظر", "مشهد 2 داخلي - ليل"}
	merged, _ := mergeWrappedLines(lines)
	if len(merged) != 2 {
		t.Fatalf("expected scene header boundary to block merge, got %+v", merged)
	}
}

func TestDecomposeBulletSpeaker(t *testing.T) {
	got, ok := DecomposeBulletSpeaker("• أحمد : مرحباً يا سارة")
	if !ok {
		t.Fatalf("expected decomposition to succeed")
	}
	if got.Name != "أحمد" || got.Text != "مرحباً يا سارة" {
		t.Errorf("unexpected decomposition: %+v", got)
	}
}

func TestDecomposeBulletSpeakerRejectsSceneWord(t *testing.T) {
	if _, ok := DecomposeBulletSpeaker("• داخلي : نص"); ok {
		t.Errorf("did not expect a scene-location word to pass as a speaker name")
	}
}

func TestPreprocessQualityWithinRange(t *testing.T) {
	res := Preprocess("مشهد 1\nداخلي - ليل\nيدخل أحمد إلى الغرفة وينظر حوله بحذر", SourcePaste)
	if res.Quality < 0 || res.Quality > 1 {
		t.Errorf("quality out of range: %v", res.Quality)
	}
}

func TestPreprocessPDFBulletSplit(t *testing.T) {
	// The second fragment is longer than 16 runes, so the wrap merger that
	// runs after the bullet split does not rejoin it.
	res := Preprocess("يدخل أحمد•يخرج سامي من الغرفة مسرعاً", SourcePDF)
	if len(res.Lines) < 2 {
		t.Fatalf("expected bullet glyph to split into separate lines, got %+v", res.Lines)
	}
}

func TestPreprocessDecomposesBulletSpeaker(t *testing.T) {
	res := Preprocess("• أحمد : مرحباً يا سارة", SourcePaste)
	if len(res.Lines) != 2 {
		t.Fatalf("expected the bullet line to split into 2 lines, got %+v", res.Lines)
	}
	if res.Lines[0] != "أحمد:" || res.Lines[1] != "مرحباً يا سارة" {
		t.Errorf("unexpected decomposition: %+v", res.Lines)
	}
}

func TestPreprocessLeavesNonBulletColonLinesAlone(t *testing.T) {
	res := Preprocess("أحمد : مرحباً يا سارة", SourcePaste)
	if len(res.Lines) != 1 {
		t.Fatalf("expected a non-bulleted colon line to pass through unsplit, got %+v", res.Lines)
	}
}
