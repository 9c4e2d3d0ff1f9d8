package assist

import (
	"context"
	"testing"

	"github.com/filmlane/classifier/config"
	"github.com/filmlane/classifier/core/document"
)

func TestPipelineAdapter_AppliedYieldsDecisions(t *testing.T) {
	mock := &MockProvider{Responses: []Response{
		{Content: `[{"itemIndex":0,"finalType":"character","confidence":0.9,"reason":"x"}]`},
	}}
	adapter := PipelineAdapter{Client: NewClient(mock, config.AdjudicatorSettings{Model: "gpt-4o-mini"})}

	decisions, err := adapter.Review(context.Background(), samplePacket())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(decisions) != 1 || decisions[0].FormatID != document.Character {
		t.Errorf("unexpected decisions: %+v", decisions)
	}
}

func TestPipelineAdapter_NonAppliedYieldsNoDecisions(t *testing.T) {
	mock := &MockProvider{Responses: []Response{{Content: "not json"}}}
	adapter := PipelineAdapter{Client: NewClient(mock, config.AdjudicatorSettings{Model: "gpt-4o-mini"})}

	decisions, err := adapter.Review(context.Background(), samplePacket())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decisions != nil {
		t.Errorf("expected no decisions for a non-applied outcome, got %+v", decisions)
	}
}
