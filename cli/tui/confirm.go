package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/filmlane/classifier/core/document"
	"github.com/filmlane/classifier/core/pipeline"
)

// confirmTaxonomy is the cycle order a low-confidence confirmation picker
// offers, leaves only (scene-header-top-line is a composite, never a raw
// classification).
var confirmTaxonomy = []document.FormatID{
	document.Basmala, document.SceneHeader1, document.SceneHeader2, document.SceneHeader3,
	document.Action, document.Character, document.Dialogue, document.Parenthetical, document.Transition,
}

type confirmModel struct {
	item     pipeline.ClassifiedItem
	cursor   int
	chosen   document.FormatID
	accepted bool
	skipped  bool
}

func newConfirmModel(item pipeline.ClassifiedItem) *confirmModel {
	cursor := 0
	for i, id := range confirmTaxonomy {
		if id == item.FormatID {
			cursor = i
			break
		}
	}
	return &confirmModel{item: item, cursor: cursor}
}

func (m *confirmModel) Init() tea.Cmd { return nil }

func (m *confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(confirmTaxonomy)-1 {
			m.cursor++
		}
	case "enter":
		m.chosen = confirmTaxonomy[m.cursor]
		m.accepted = true
		return m, tea.Quit
	case "esc", "ctrl+c", "q":
		m.skipped = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *confirmModel) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, " Low-confidence line (%d%%, currently %s):\n", m.item.Confidence, m.item.FormatID)
	fmt.Fprintf(&b, " %q\n\n", m.item.Text)
	for i, id := range confirmTaxonomy {
		prefix := "   "
		if i == m.cursor {
			prefix = selectedStyle.Render(" ▸ ")
		}
		b.WriteString(prefix + string(id) + "\n")
	}
	b.WriteString(helpStyle.Render("\n ↑↓ choose  enter confirm  esc skip"))
	return b.String()
}

// ConfirmFunc returns a pipeline.ConfirmFunc backed by an interactive
// picker, launched once per low-confidence item during a classify run.
func ConfirmFunc() pipeline.ConfirmFunc {
	return func(item pipeline.ClassifiedItem) (document.FormatID, bool) {
		m := newConfirmModel(item)
		final, err := tea.NewProgram(m).Run()
		if err != nil {
			return "", false
		}
		fm, ok := final.(*confirmModel)
		if !ok || fm.skipped || !fm.accepted {
			return "", false
		}
		return fm.chosen, true
	}
}
