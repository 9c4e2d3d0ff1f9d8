package assist

import (
	"context"

	"github.com/filmlane/classifier/core/pipeline"
	"github.com/filmlane/classifier/core/review"
)

// PipelineAdapter narrows a Client down to the pipeline.Adjudicator
// interface: it discards everything but an "applied" outcome's decisions,
// since the pipeline has no notion of skipped/warning/error beyond "no
// overrides this round".
type PipelineAdapter struct {
	Client *Client
}

// Review implements pipeline.Adjudicator.
func (a PipelineAdapter) Review(ctx context.Context, packet review.Packet) ([]pipeline.ReviewDecision, error) {
	result, err := a.Client.Review(ctx, packet)
	if err != nil {
		return nil, err
	}
	if result.Outcome != OutcomeApplied {
		return nil, nil
	}

	// A decision's itemIndex is the line's position in the packet; the
	// pipeline indexes its emitted items by the line's LineIndex.
	decisions := make([]pipeline.ReviewDecision, 0, len(result.Decisions))
	for _, d := range result.Decisions {
		if d.ItemIndex < 0 || d.ItemIndex >= len(packet.SuspiciousLines) {
			continue
		}
		decisions = append(decisions, pipeline.ReviewDecision{
			ItemIndex:  packet.SuspiciousLines[d.ItemIndex].LineIndex,
			FormatID:   d.FinalType,
			Confidence: d.Confidence,
		})
	}
	return decisions, nil
}

var _ pipeline.Adjudicator = PipelineAdapter{}
