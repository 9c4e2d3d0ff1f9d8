// Package memory persists per-session screenplay classification state:
// recently assigned types and their confidence, known character names and
// scene locations, dialogue blocks, and line relationships, so later
// pastes in the same session can consult history the context window
// itself does not carry across calls. Records are keyed by session id
// rather than a single fixed baseline file.
package memory

import (
	"regexp"
	"strings"

	"github.com/filmlane/classifier/core/arabic"
	"github.com/filmlane/classifier/core/context"
	"github.com/filmlane/classifier/core/document"
	"github.com/filmlane/classifier/core/store"
	"github.com/filmlane/classifier/core/textutil"
)

// Caps on every bounded list a Record carries.
const (
	maxLastClassifications = 20
	maxDialogueBlocks       = 50
	maxLineRelationships    = 200
	maxUserCorrections      = 200
)

// ClassificationEntry is one remembered line assignment, newest first in
// Record.LastClassifications.
type ClassificationEntry struct {
	Text       string            `json:"text"`
	FormatID   document.FormatID `json:"formatId"`
	Confidence int               `json:"confidence"`
	Timestamp  int64             `json:"timestamp"`
}

// RelationEntry mirrors one context.Relation for persistence.
type RelationEntry struct {
	From int                  `json:"from"`
	To   int                  `json:"to"`
	Kind context.RelationKind `json:"kind"`
}

// DialogueBlockEntry mirrors one context.DialogueBlock for persistence.
type DialogueBlockEntry struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// CorrectionEntry records a user override of a classification.
type CorrectionEntry struct {
	Text      string            `json:"text"`
	From      document.FormatID `json:"from"`
	To        document.FormatID `json:"to"`
	Timestamp int64             `json:"timestamp"`
}

// Record is the full persisted state for one session.
type Record struct {
	LastClassifications  []ClassificationEntry `json:"lastClassifications"`
	CommonCharacters     []string              `json:"commonCharacters"`
	CommonLocations      []string              `json:"commonLocations"`
	CharacterDialogueMap map[string]int        `json:"characterDialogueMap"`
	ConfidenceMap        map[string]int        `json:"confidenceMap"`
	DialogueBlocks       []DialogueBlockEntry  `json:"dialogueBlocks"`
	LineRelationships    []RelationEntry       `json:"lineRelationships"`
	UserCorrections      []CorrectionEntry     `json:"userCorrections"`
}

// empty returns a freshly initialized, legacy-upgraded record.
func empty() Record {
	return Record{
		CharacterDialogueMap: make(map[string]int),
		ConfidenceMap:        make(map[string]int),
	}
}

// key is the logical key one session's memory record lives at.
func key(sessionID string) string {
	return "screenplay-memory-" + sessionID
}

// Load reads the session's record, upgrading a legacy shape (nil maps or
// slices) to its zero-value-filled form. A session with no prior record
// returns an empty Record, not an error.
func Load(s store.Store, sessionID string) (Record, error) {
	var rec Record
	ok, err := s.Get(key(sessionID), &rec)
	if err != nil {
		return Record{}, err
	}
	if !ok {
		return empty(), nil
	}
	if rec.CharacterDialogueMap == nil {
		rec.CharacterDialogueMap = make(map[string]int)
	}
	if rec.ConfidenceMap == nil {
		rec.ConfidenceMap = make(map[string]int)
	}
	return rec, nil
}

// Save persists rec for sessionID, overwriting any prior record whole.
func Save(s store.Store, sessionID string, rec Record) error {
	return s.Put(key(sessionID), rec)
}

// Update folds newClassifications and the final context window into the
// session's record and persists the result, returning the updated record.
func Update(s store.Store, sessionID string, rec Record, newClassifications []ClassificationEntry, win *context.Window) (Record, error) {
	for _, entry := range newClassifications {
		rec.LastClassifications = prependCapped(rec.LastClassifications, entry, maxLastClassifications)
		rec.ConfidenceMap[entry.Text] = entry.Confidence

		switch entry.FormatID {
		case document.Character:
			if name, ok := validMemoryCharacterName(entry.Text); ok {
				rec.CommonCharacters = addUnique(rec.CommonCharacters, name)
				rec.CharacterDialogueMap[name]++
			}
		case document.SceneHeader2:
			if location, ok := extractLocation(entry.Text); ok {
				rec.CommonLocations = addUnique(rec.CommonLocations, location)
			}
		}
	}

	for _, block := range win.DialogueBlocks {
		rec.DialogueBlocks = appendCapped(rec.DialogueBlocks, DialogueBlockEntry{Start: block.Start, End: block.End}, maxDialogueBlocks)
	}
	for _, rel := range win.Relations {
		rec.LineRelationships = appendCapped(rec.LineRelationships, RelationEntry{From: rel.From, To: rel.To, Kind: rel.Kind}, maxLineRelationships)
	}

	if err := Save(s, sessionID, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// AddCorrection appends a correction to the record's capped log and
// persists it.
func AddCorrection(s store.Store, sessionID string, rec Record, correction CorrectionEntry) (Record, error) {
	rec.UserCorrections = appendCapped(rec.UserCorrections, correction, maxUserCorrections)
	if err := Save(s, sessionID, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// invalidSingleTokenNames are single words that must never register as a
// remembered character name even if they slipped past the classifier.
var invalidSingleTokenNames = arabic.MEMORY_INVALID_SINGLE_TOKENS

// validMemoryCharacterName normalizes a character cue's text and applies
// the memory-specific name validity gate: 2-40 characters, 1-5 tokens, no
// sentence punctuation, and - for a single token - not a known pronoun.
func validMemoryCharacterName(text string) (string, bool) {
	name := textutil.NormalizeCharacterName(text)
	if n := textutil.RuneLen(name); n < 2 || n > 40 {
		return "", false
	}
	tokens := textutil.Tokens(name)
	if len(tokens) == 0 || len(tokens) > 5 {
		return "", false
	}
	if textutil.HasSentencePunctuation(name) {
		return "", false
	}
	if len(tokens) == 1 && invalidSingleTokenNames.Has(tokens[0]) {
		return "", false
	}
	return name, true
}

// locationSeparatorRE splits a scene-header-2 line ("داخلي - بيت أحمد -
// نهار") on the dash glyphs separating its interior/exterior, place, and
// time segments.
var locationSeparatorRE = regexp.MustCompile(`\s*[-–—]\s*`)

// extractLocation pulls the place-name segment out of a scene-header-2
// line, discarding the interior/exterior marker and time-of-day segments
// SCENE_LOCATION_RE and SCENE_TIME_RE already recognize.
func extractLocation(text string) (string, bool) {
	for _, part := range locationSeparatorRE.Split(text, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if arabic.SCENE_LOCATION_RE.MatchString(part) || arabic.SCENE_TIME_RE.MatchString(part) {
			continue
		}
		if n := textutil.RuneLen(part); n < 2 || n > 40 {
			continue
		}
		return part, true
	}
	return "", false
}

// DetectPattern finds the most frequent adjacent-type bigram across
// lastClassifications (stored newest-first), returning its "A-B" identifier
// when it occurs at least twice. Ties favor whichever bigram is
// encountered first scanning from the most recent entry, so a recently
// repeated pattern wins over an older one of equal frequency.
func DetectPattern(rec Record) (string, bool) {
	counts := make(map[string]int)
	order := make([]string, 0)
	for i := 0; i+1 < len(rec.LastClassifications); i++ {
		id := string(rec.LastClassifications[i].FormatID) + "-" + string(rec.LastClassifications[i+1].FormatID)
		if counts[id] == 0 {
			order = append(order, id)
		}
		counts[id]++
	}

	best, bestCount := "", 0
	for _, id := range order {
		if counts[id] > bestCount {
			best, bestCount = id, counts[id]
		}
	}
	if bestCount < 2 {
		return "", false
	}
	return best, true
}

func prependCapped(list []ClassificationEntry, entry ClassificationEntry, cap int) []ClassificationEntry {
	list = append([]ClassificationEntry{entry}, list...)
	if len(list) > cap {
		list = list[:cap]
	}
	return list
}

func appendCapped[T any](list []T, entry T, cap int) []T {
	list = append(list, entry)
	if len(list) > cap {
		list = list[len(list)-cap:]
	}
	return list
}

func addUnique(list []string, name string) []string {
	for _, existing := range list {
		if existing == name {
			return list
		}
	}
	return append(list, name)
}
