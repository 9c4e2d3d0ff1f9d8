// Package document defines the canonical screenplay block model — the
// taxonomy every classifier, reviewer, and exporter in this module speaks —
// along with the HTML and payload codecs that move blocks in and out of the
// editor surface. It is a small model package that every other package
// imports; its only external dependency is golang.org/x/net/html, used by
// the HTML codec.
package document

import "fmt"

// FormatID is one of the fixed taxonomy of screenplay block types.
type FormatID string

// The full block taxonomy. SceneHeaderTopLine is a composite wrapper only —
// it is never stored as a raw classified line, only ever split into
// SceneHeader1 + SceneHeader2 before being added to a Document.
const (
	Basmala            FormatID = "basmala"
	SceneHeader1       FormatID = "scene-header-1"
	SceneHeader2       FormatID = "scene-header-2"
	SceneHeader3       FormatID = "scene-header-3"
	SceneHeaderTopLine FormatID = "scene-header-top-line"
	Action             FormatID = "action"
	Character          FormatID = "character"
	Dialogue           FormatID = "dialogue"
	Parenthetical      FormatID = "parenthetical"
	Transition         FormatID = "transition"
)

// taxonomy is the closed set of valid FormatID values, used for validation.
var taxonomy = map[FormatID]bool{
	Basmala: true, SceneHeader1: true, SceneHeader2: true, SceneHeader3: true,
	SceneHeaderTopLine: true, Action: true, Character: true, Dialogue: true,
	Parenthetical: true, Transition: true,
}

// Valid reports whether id is a member of the taxonomy.
func (id FormatID) Valid() bool {
	return taxonomy[id]
}

// IsDialogueFamily reports whether id is dialogue, parenthetical, or
// character — the three types that can appear inside a dialogue block.
func (id FormatID) IsDialogueFamily() bool {
	switch id {
	case Dialogue, Parenthetical, Character:
		return true
	}
	return false
}

// IsSceneHeader reports whether id is any scene-header tier, including the
// composite top-line wrapper.
func (id FormatID) IsSceneHeader() bool {
	switch id {
	case SceneHeader1, SceneHeader2, SceneHeader3, SceneHeaderTopLine:
		return true
	}
	return false
}

// Block is a single typed, ordered unit of screenplay output. Text is always
// normalized (no HTML, no invisible marks) and non-empty, except for an
// intentional blank placeholder block at the start of an empty document.
type Block struct {
	FormatID FormatID `json:"formatId"`
	Text     string   `json:"text"`
}

// EmittedBlock attaches the spacing metadata the pipeline computes
// out-of-band; it is not part of the exchange payload, so it lives on a
// wrapper rather than on Block itself.
type EmittedBlock struct {
	Block
	MarginTopPt int // 0 or 12; a renderer-default margin is represented by -1
}

// MarginUnspecified signals "renderer default" in EmittedBlock.MarginTopPt.
const MarginUnspecified = -1

// Validate checks that b carries a member of the taxonomy and non-empty
// text, except that SceneHeaderTopLine must never appear as a stored block.
func (b Block) Validate() error {
	if !b.FormatID.Valid() {
		return fmt.Errorf("document: invalid formatId %q", b.FormatID)
	}
	if b.FormatID == SceneHeaderTopLine {
		return fmt.Errorf("document: scene-header-top-line is a composite wrapper and must not be stored as a block")
	}
	if b.Text == "" {
		return fmt.Errorf("document: block text must not be empty")
	}
	return nil
}
