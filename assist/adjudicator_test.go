package assist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/filmlane/classifier/config"
	"github.com/filmlane/classifier/core/document"
	"github.com/filmlane/classifier/core/review"
)

func samplePacket() review.Packet {
	return review.Packet{
		SessionID:     "sid-1",
		TotalReviewed: 12,
		SuspiciousLines: []review.SuspiciousLine{
			{
				ItemIndex:      0,
				LineIndex:      3,
				Text:           "أحمد",
				AssignedType:   document.Action,
				TotalSuspicion: 80,
				Reasons:        []string{"short-standalone-line"},
				SuggestedType:  document.Character,
			},
		},
	}
}

func TestClientReview_EmptyPacketSkipped(t *testing.T) {
	mock := &MockProvider{}
	c := NewClient(mock, config.AdjudicatorSettings{Model: "gpt-4o-mini"})

	res, err := c.Review(context.Background(), review.Packet{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != OutcomeSkipped {
		t.Errorf("expected skipped outcome for empty packet, got %q", res.Outcome)
	}
	if len(mock.Calls) != 0 {
		t.Errorf("expected no provider call for an empty packet")
	}
}

func TestClientReview_Applied(t *testing.T) {
	mock := &MockProvider{Responses: []Response{
		{Content: `[{"itemIndex":0,"finalType":"character","confidence":0.9,"reason":"short speaker cue"}]`},
	}}
	c := NewClient(mock, config.AdjudicatorSettings{Model: "gpt-4o-mini"})

	res, err := c.Review(context.Background(), samplePacket())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != OutcomeApplied {
		t.Fatalf("expected applied outcome, got %q (%s)", res.Outcome, res.Message)
	}
	if len(res.Decisions) != 1 || res.Decisions[0].FinalType != document.Character {
		t.Errorf("unexpected decisions: %+v", res.Decisions)
	}
}

func TestClientReview_AppliedStripsMarkdownFence(t *testing.T) {
	mock := &MockProvider{Responses: []Response{
		{Content: "```json\n[{\"itemIndex\":0,\"finalType\":\"character\",\"confidence\":0.7,\"reason\":\"x\"}]\n```"},
	}}
	c := NewClient(mock, config.AdjudicatorSettings{Model: "gpt-4o-mini"})

	res, err := c.Review(context.Background(), samplePacket())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != OutcomeApplied {
		t.Fatalf("expected applied outcome, got %q (%s)", res.Outcome, res.Message)
	}
}

func TestClientReview_WarningOnInvalidJSON(t *testing.T) {
	mock := &MockProvider{Responses: []Response{{Content: "not json"}}}
	c := NewClient(mock, config.AdjudicatorSettings{Model: "gpt-4o-mini"})

	res, err := c.Review(context.Background(), samplePacket())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != OutcomeWarning {
		t.Errorf("expected warning outcome, got %q", res.Outcome)
	}
}

func TestClientReview_WarningOnUnknownType(t *testing.T) {
	mock := &MockProvider{Responses: []Response{
		{Content: `[{"itemIndex":0,"finalType":"scene-header-top-line","confidence":0.9,"reason":"x"}]`},
	}}
	c := NewClient(mock, config.AdjudicatorSettings{Model: "gpt-4o-mini"})

	res, err := c.Review(context.Background(), samplePacket())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != OutcomeWarning {
		t.Errorf("expected warning outcome for a non-taxonomy type, got %q", res.Outcome)
	}
}

func TestClientReview_WarningOnEmptyDecisions(t *testing.T) {
	mock := &MockProvider{Responses: []Response{{Content: `[]`}}}
	c := NewClient(mock, config.AdjudicatorSettings{Model: "gpt-4o-mini"})

	res, err := c.Review(context.Background(), samplePacket())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != OutcomeWarning {
		t.Errorf("expected warning outcome for zero decisions, got %q", res.Outcome)
	}
}

func TestClientReview_ErrorOnProviderFailure(t *testing.T) {
	mock := &MockProvider{Err: errors.New("upstream down")}
	c := NewClient(mock, config.AdjudicatorSettings{Model: "gpt-4o-mini"})

	res, err := c.Review(context.Background(), samplePacket())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != OutcomeError {
		t.Errorf("expected error outcome, got %q", res.Outcome)
	}
}

// blockingProvider blocks until its context is cancelled, then reports that
// cancellation the way a real HTTP client would.
type blockingProvider struct{}

func (blockingProvider) Complete(ctx context.Context, _ []Message) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestClientReview_NewCallCancelsInFlight(t *testing.T) {
	c := NewClient(blockingProvider{}, config.AdjudicatorSettings{Model: "gpt-4o-mini", Timeout: time.Minute})

	firstDone := make(chan AdjudicatorResult, 1)
	go func() {
		res, _ := c.Review(context.Background(), samplePacket())
		firstDone <- res
	}()

	// Give the first call time to register itself as in-flight before the
	// second one starts and cancels it.
	time.Sleep(20 * time.Millisecond)

	secondPacket := samplePacket()
	secondPacket.SuspiciousLines[0].ItemIndex = 1
	go func() {
		c.Review(context.Background(), secondPacket)
	}()

	select {
	case res := <-firstDone:
		if res.Outcome != OutcomeSkipped {
			t.Errorf("expected the superseded call to be skipped, got %q (%s)", res.Outcome, res.Message)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the first call to be cancelled")
	}
}

func TestClientReview_DefaultTimeout(t *testing.T) {
	c := NewClient(&MockProvider{}, config.AdjudicatorSettings{Model: "gpt-4o-mini"})
	if c.timeout != 60*time.Second {
		t.Errorf("expected default timeout of 60s, got %v", c.timeout)
	}
}

func TestNewClient_RateLimiterDisabledByDefault(t *testing.T) {
	c := NewClient(&MockProvider{}, config.AdjudicatorSettings{Model: "gpt-4o-mini"})
	if c.limiter != nil {
		t.Error("expected no rate limiter when RequestsPerMinute is unset")
	}
}

func TestNewClient_RateLimiterEnabled(t *testing.T) {
	c := NewClient(&MockProvider{}, config.AdjudicatorSettings{Model: "gpt-4o-mini", RequestsPerMinute: 30})
	if c.limiter == nil {
		t.Fatal("expected a rate limiter when RequestsPerMinute is set")
	}
}

func TestClientReview_RateLimiterAllowsFirstCallWithinBurst(t *testing.T) {
	mock := &MockProvider{Responses: []Response{{Content: `[{"itemIndex":0,"finalType":"character","confidence":0.9}]`}}}
	c := NewClient(mock, config.AdjudicatorSettings{Model: "gpt-4o-mini", RequestsPerMinute: 120})

	res, err := c.Review(context.Background(), samplePacket())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != OutcomeApplied {
		t.Fatalf("expected the first call within the burst to proceed, got %q", res.Outcome)
	}
}
