package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/filmlane/classifier/core/document"
	"github.com/filmlane/classifier/core/pipeline"
	"github.com/filmlane/classifier/core/review"
)

func samplePacket() review.Packet {
	return review.Packet{
		SessionID:     "sid-1",
		TotalReviewed: 10,
		SuspiciousLines: []review.SuspiciousLine{
			{LineIndex: 1, Text: "محمود:", AssignedType: document.Character, TotalSuspicion: 95, Reasons: []string{"sequence-violation"}, SuggestedType: document.Dialogue},
			{LineIndex: 4, Text: "ينظر حوله", AssignedType: document.Action, TotalSuspicion: 65, Reasons: []string{"statistical-anomaly"}},
		},
	}
}

func pressKey(m *Model, k string) *Model {
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	return updated.(*Model)
}

func pressSpecial(m *Model, t tea.KeyType) *Model {
	updated, _ := m.Update(tea.KeyMsg{Type: t})
	return updated.(*Model)
}

func TestModelAppliesFilterOnInit(t *testing.T) {
	m := New(samplePacket())
	if len(m.filtered) != 2 {
		t.Fatalf("expected 2 filtered lines, got %d", len(m.filtered))
	}
}

func TestModelNavigatesList(t *testing.T) {
	m := New(samplePacket())
	if m.cursor != 0 {
		t.Fatalf("expected cursor 0, got %d", m.cursor)
	}
	m = pressKey(m, "j")
	if m.cursor != 1 {
		t.Fatalf("expected cursor 1 after down, got %d", m.cursor)
	}
	m = pressKey(m, "j")
	if m.cursor != 1 {
		t.Fatalf("expected cursor clamped at 1, got %d", m.cursor)
	}
	m = pressKey(m, "k")
	if m.cursor != 0 {
		t.Fatalf("expected cursor 0 after up, got %d", m.cursor)
	}
}

func TestModelEntersAndLeavesDetail(t *testing.T) {
	m := New(samplePacket())
	m = pressSpecial(m, tea.KeyEnter)
	if m.state != detailView {
		t.Fatalf("expected detail view after enter")
	}
	m = pressSpecial(m, tea.KeyEsc)
	if m.state != listView {
		t.Fatalf("expected list view after esc")
	}
}

func TestModelSeverityFilterCycles(t *testing.T) {
	m := New(samplePacket())
	m = pressKey(m, "s")
	if m.filter.activeSeverity() != "critical" {
		t.Fatalf("expected critical filter, got %s", m.filter.activeSeverity())
	}
	if len(m.filtered) != 1 {
		t.Fatalf("expected 1 line at critical severity, got %d", len(m.filtered))
	}
}

func TestRenderListAndDetail(t *testing.T) {
	m := New(samplePacket())
	list := renderList(m)
	if !strings.Contains(list, "محمود") {
		t.Errorf("expected list view to include the line text")
	}
	m.state = detailView
	detail := renderDetail(m)
	if !strings.Contains(detail, "sequence-violation") {
		t.Errorf("expected detail view to include the reason")
	}
}

func TestConfirmModelAcceptsChoice(t *testing.T) {
	item := pipeline.ClassifiedItem{Text: "قطع", FormatID: document.Action, Confidence: 40}
	m := newConfirmModel(item)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(*confirmModel)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(*confirmModel)
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if !m.accepted {
		t.Fatal("expected accepted to be true")
	}
	if m.chosen != confirmTaxonomy[5] {
		t.Errorf("expected chosen to follow cursor, got %s", m.chosen)
	}
}

func TestConfirmModelSkip(t *testing.T) {
	item := pipeline.ClassifiedItem{Text: "قطع", FormatID: document.Action, Confidence: 40}
	m := newConfirmModel(item)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(*confirmModel)
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if !m.skipped || m.accepted {
		t.Fatalf("expected skipped=true accepted=false, got skipped=%v accepted=%v", m.skipped, m.accepted)
	}
}
