// Package assist implements the optional external adjudicator: a
// second-opinion LLM call the pipeline's reviewer can send a suspicious-line
// packet to before the pipeline finishes. The Provider interface wraps the
// OpenAI SDK plumbing so the adjudicator contract can be driven by a fake
// in tests.
//
// The package is opt-in and side-effect-free on the classification result
// beyond the overrides it is explicitly asked to apply: a disabled or
// erroring adjudicator never blocks the pipeline.
package assist

import "github.com/filmlane/classifier/core/document"

// Outcome is the discriminant of an AdjudicatorResult.
type Outcome string

const (
	OutcomeApplied Outcome = "applied"
	OutcomeSkipped Outcome = "skipped"
	OutcomeWarning Outcome = "warning"
	OutcomeError   Outcome = "error"
)

// Decision is one adjudicator-proposed override of a suspicious line's
// type.
type Decision struct {
	ItemIndex int               `json:"itemIndex"`
	FinalType document.FormatID `json:"finalType"`
	Confidence float64          `json:"confidence"`
	Reason    string            `json:"reason"`
}

// AdjudicatorResult is the full outcome of one Review call: exactly one of
// the four Outcome values, with Decisions populated only for "applied".
type AdjudicatorResult struct {
	Outcome   Outcome    `json:"outcome"`
	Model     string     `json:"model"`
	LatencyMs int64      `json:"latencyMs"`
	Message   string     `json:"message,omitempty"`
	Decisions []Decision `json:"decisions,omitempty"`
}
