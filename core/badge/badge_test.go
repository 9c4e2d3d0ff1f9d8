package badge

import (
	"strings"
	"testing"
)

func TestGradeFromScore(t *testing.T) {
	tests := []struct {
		score      float64
		wantLetter string
	}{
		{1.0, "A"},
		{0.90, "B"},
		{0.75, "C"},
		{0.60, "D"},
		{0.30, "E"},
		{0.1, "F"},
	}
	for _, tt := range tests {
		g := GradeFromScore(tt.score)
		if g.Letter != tt.wantLetter {
			t.Errorf("GradeFromScore(%v) = %s, want %s", tt.score, g.Letter, tt.wantLetter)
		}
	}
}

func TestDocumentScore_SuspicionRate(t *testing.T) {
	d := DocumentScore{TotalReviewed: 200, SuspiciousLines: 10}
	if got := d.SuspicionRate(); got != 0.05 {
		t.Errorf("SuspicionRate() = %v, want 0.05", got)
	}
}

func TestDocumentScore_SuspicionRateNoLinesReviewed(t *testing.T) {
	d := DocumentScore{}
	if got := d.SuspicionRate(); got != 0 {
		t.Errorf("SuspicionRate() with no lines reviewed = %v, want 0", got)
	}
}

func TestDocumentScore_CombinedScore(t *testing.T) {
	d := DocumentScore{ImportQuality: 1.0, TotalReviewed: 100, SuspiciousLines: 0}
	if got := d.CombinedScore(); got != 1.0 {
		t.Errorf("CombinedScore() = %v, want 1.0", got)
	}
}

func TestGenerateFromScore_Perfect(t *testing.T) {
	result := GenerateFromScore(DocumentScore{ImportQuality: 1.0}, "filmlane")
	if result.Grade != "A" {
		t.Errorf("expected grade A for a perfect document, got %s", result.Grade)
	}
}

func TestGenerateFromScore_PoorImportAndHighSuspicion(t *testing.T) {
	result := GenerateFromScore(DocumentScore{ImportQuality: 0.4, TotalReviewed: 100, SuspiciousLines: 40}, "filmlane")
	if result.Grade == "A" || result.Grade == "B" {
		t.Errorf("expected a low grade for a poor document, got %s", result.Grade)
	}
}

func TestGenerateSVG_Structure(t *testing.T) {
	svg := GenerateSVG("filmlane", "A", "#4c1")
	if !strings.HasPrefix(svg, "<svg") {
		t.Error("expected SVG to start with <svg")
	}
	if !strings.Contains(svg, "filmlane") {
		t.Error("expected SVG to contain label")
	}
	if !strings.Contains(svg, "#4c1") {
		t.Error("expected SVG to contain color")
	}
}

func TestImportQualityBadge(t *testing.T) {
	b := ImportQualityBadge(0.92, "import quality")
	if b.Value != "92%" {
		t.Errorf("expected 92%%, got %s", b.Value)
	}
}

func TestSuspicionRateBadge(t *testing.T) {
	b := SuspicionRateBadge(DocumentScore{TotalReviewed: 100, SuspiciousLines: 20}, "suspicion")
	if b.Value != "20%" {
		t.Errorf("expected 20%%, got %s", b.Value)
	}
	if b.Color != "#e05d44" {
		t.Errorf("expected red for a high suspicion rate, got %s", b.Color)
	}
}
