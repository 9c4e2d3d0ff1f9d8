// Package feedback keeps the append-only log of user corrections to
// classifier output: every time a human overrides an assigned type, the
// correction is appended here for later export as retraining data, through
// the same core/store surface session memory uses.
package feedback

import (
	"github.com/filmlane/classifier/core/document"
	"github.com/filmlane/classifier/core/store"
)

// correctionLogKey is the single process-wide key the correction log lives
// at; unlike session memory it is not scoped per session.
const correctionLogKey = "screenplay-user-corrections"

// Correction is one user override of a classifier decision.
type Correction struct {
	Text  string            `json:"text"`
	From  document.FormatID `json:"from"`
	To    document.FormatID `json:"to"`
	Stamp int64             `json:"stamp"`
}

// Log is the persisted correction history.
type Log struct {
	Corrections []Correction `json:"corrections"`
}

// retrainEvery is how often the correction count must land exactly on for
// ShouldRetrain to fire.
const retrainEvery = 50

// Load reads the correction log, returning an empty Log if none exists yet.
func Load(s store.Store) (Log, error) {
	var log Log
	ok, err := s.Get(correctionLogKey, &log)
	if err != nil {
		return Log{}, err
	}
	if !ok {
		return Log{}, nil
	}
	return log, nil
}

// AddCorrection appends correction to the log and persists the result.
func AddCorrection(s store.Store, log Log, correction Correction) (Log, error) {
	log.Corrections = append(log.Corrections, correction)
	if err := s.Put(correctionLogKey, log); err != nil {
		return Log{}, err
	}
	return log, nil
}

// ShouldRetrain reports whether the correction count has landed on a
// retraining checkpoint: at least 50 corrections and an exact multiple of
// 50.
func ShouldRetrain(log Log) bool {
	n := len(log.Corrections)
	return n >= retrainEvery && n%retrainEvery == 0
}

// TrainingExample is one text/label pair exported for retraining.
type TrainingExample struct {
	Text  string            `json:"text"`
	Label document.FormatID `json:"label"`
}

// ExportForTraining returns every correction's final type as a labeled
// training example.
func ExportForTraining(log Log) []TrainingExample {
	out := make([]TrainingExample, len(log.Corrections))
	for i, c := range log.Corrections {
		out[i] = TrainingExample{Text: c.Text, Label: c.To}
	}
	return out
}
