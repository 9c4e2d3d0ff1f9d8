package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/filmlane/classifier/config"
	"github.com/filmlane/classifier/core/document"
	"github.com/filmlane/classifier/core/review"
)

// Client sends one session's reviewer packets to an external LLM for a
// second opinion, serializing them against each other: a new Review call
// aborts whatever request is still in flight for this session, mirroring
// the "new paste aborts prior request" cancellation rule.
type Client struct {
	provider Provider
	model    string
	timeout  time.Duration
	limiter  *rate.Limiter

	mu     sync.Mutex
	cancel context.CancelFunc
	seq    uint64 // bumped per Review; identifies which call owns cancel
}

// NewClient builds a Client from cfg. cfg.Enabled is not consulted here;
// callers gate invocation by configuration before ever calling Review, per
// the contract that the client must not run in a test runtime.
// cfg.RequestsPerMinute throttles outbound calls with a token bucket,
// protecting the adjudicator endpoint from a burst of suspicious-packet
// sessions; 0 disables throttling.
func NewClient(provider Provider, cfg config.AdjudicatorSettings) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	c := &Client{provider: provider, model: cfg.Model, timeout: timeout}
	if cfg.RequestsPerMinute > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), cfg.RequestsPerMinute)
	}
	return c
}

// Abort cancels any in-flight Review call for this client without starting
// a new one.
func (c *Client) Abort() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// Review sends packet to the adjudicator and returns its verdict. Starting
// a new Review call cancels any call already in flight for this client; the
// cancelled call returns an "aborted" skipped result, never an error.
func (c *Client) Review(ctx context.Context, packet review.Packet) (AdjudicatorResult, error) {
	if packet.IsEmpty() {
		return AdjudicatorResult{Outcome: OutcomeSkipped, Model: c.model, Message: "empty packet"}, nil
	}

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	c.cancel = cancel
	c.seq++
	seq := c.seq
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		cancel()
		if c.seq == seq {
			c.cancel = nil
		}
		c.mu.Unlock()
	}()

	if c.limiter != nil {
		if err := c.limiter.Wait(reqCtx); err != nil {
			if reqCtx.Err() == context.Canceled {
				return AdjudicatorResult{Outcome: OutcomeSkipped, Model: c.model, Message: "aborted by newer request"}, nil
			}
			return AdjudicatorResult{Outcome: OutcomeError, Model: c.model, Message: fmt.Sprintf("rate limit wait: %v", err)}, nil
		}
	}

	start := time.Now()
	messages := []Message{
		{Role: RoleSystem, Content: adjudicatorSystemPrompt()},
		{Role: RoleUser, Content: formatPacket(packet)},
	}

	resp, err := c.provider.Complete(reqCtx, messages)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		if reqCtx.Err() == context.Canceled {
			return AdjudicatorResult{Outcome: OutcomeSkipped, Model: c.model, LatencyMs: latency, Message: "aborted by newer request"}, nil
		}
		return AdjudicatorResult{Outcome: OutcomeError, Model: c.model, LatencyMs: latency, Message: err.Error()}, nil
	}

	decisions, err := parseDecisions(resp.Content)
	if err != nil {
		return AdjudicatorResult{Outcome: OutcomeWarning, Model: c.model, LatencyMs: latency, Message: fmt.Sprintf("invalid adjudicator response: %v", err)}, nil
	}
	if len(decisions) == 0 {
		return AdjudicatorResult{Outcome: OutcomeWarning, Model: c.model, LatencyMs: latency, Message: "no decisions returned"}, nil
	}

	return AdjudicatorResult{Outcome: OutcomeApplied, Model: c.model, LatencyMs: latency, Decisions: decisions}, nil
}

func parseDecisions(raw string) ([]Decision, error) {
	raw = strings.TrimSpace(strings.Trim(strings.TrimSpace(raw), "`"))
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "json"))
	var decisions []Decision
	if err := json.Unmarshal([]byte(raw), &decisions); err != nil {
		return nil, err
	}
	for _, d := range decisions {
		if !d.FinalType.Valid() || d.FinalType == document.SceneHeaderTopLine {
			return nil, fmt.Errorf("decision names a type outside the taxonomy: %q", d.FinalType)
		}
	}
	return decisions, nil
}
