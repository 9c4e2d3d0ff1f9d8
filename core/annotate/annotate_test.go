package annotate

import (
	"testing"

	"github.com/filmlane/classifier/core/document"
	"github.com/filmlane/classifier/core/review"
)

func TestBuildPayload_Empty(t *testing.T) {
	payload := BuildPayload(review.Packet{})
	if payload != nil {
		t.Fatal("expected nil for an empty packet")
	}
}

func TestBuildPayload_SingleLine(t *testing.T) {
	p := review.Packet{
		SessionID:     "sid-1",
		TotalReviewed: 40,
		SuspiciousLines: []review.SuspiciousLine{
			{
				LineIndex:      5,
				AssignedType:   document.Action,
				TotalSuspicion: 80,
				Reasons:        []string{"content-type-mismatch"},
				SuggestedType:  document.Character,
			},
		},
	}

	payload := BuildPayload(p)
	if payload == nil {
		t.Fatal("expected a non-nil payload")
	}
	if len(payload.Annotations) != 1 {
		t.Fatalf("expected 1 annotation, got %d", len(payload.Annotations))
	}

	a := payload.Annotations[0]
	if a.LineIndex != 5 {
		t.Errorf("expected line index 5, got %d", a.LineIndex)
	}
	if a.Severity != "high" {
		t.Errorf("expected severity high, got %s", a.Severity)
	}
}

func TestBuildPayload_MultipleLines(t *testing.T) {
	p := review.Packet{
		SessionID:     "sid-1",
		TotalReviewed: 10,
		SuspiciousLines: []review.SuspiciousLine{
			{LineIndex: 1, TotalSuspicion: 95},
			{LineIndex: 3, TotalSuspicion: 40},
		},
	}
	payload := BuildPayload(p)
	if payload == nil {
		t.Fatal("expected a non-nil payload")
	}
	if len(payload.Annotations) != 2 {
		t.Fatalf("expected 2 annotations, got %d", len(payload.Annotations))
	}
}

func TestSeverityBadge(t *testing.T) {
	tests := []struct {
		total int
		want  string
	}{
		{95, ":red_circle:"},
		{80, ":orange_circle:"},
		{65, ":yellow_circle:"},
		{20, ":large_blue_circle:"},
	}
	for _, tt := range tests {
		if got := SeverityBadge(tt.total); got != tt.want {
			t.Errorf("SeverityBadge(%d) = %s, want %s", tt.total, got, tt.want)
		}
	}
}
