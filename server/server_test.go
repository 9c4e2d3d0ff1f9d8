package server

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/filmlane/classifier/core/document"
	"github.com/filmlane/classifier/core/store"
)

func makeToolRequest(t *testing.T, name string, args map[string]any) mcp.CallToolRequest {
	t.Helper()
	argsJSON, err := json.Marshal(args)
	if err != nil {
		t.Fatalf("marshaling args: %v", err)
	}
	var raw any
	if err := json.Unmarshal(argsJSON, &raw); err != nil {
		t.Fatalf("unmarshaling args: %v", err)
	}
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: raw,
		},
	}
}

func toolResultText(result *mcp.CallToolResult) string {
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestHandleClassify(t *testing.T) {
	s := New("0.1.0", store.NewMemStore())
	req := makeToolRequest(t, "classify", map[string]any{
		"text":       "ليلى: أين كنت طوال الليل",
		"session_id": "sid-1",
	})

	result, err := s.handleClassify(context.Background(), req)
	if err != nil {
		t.Fatalf("handleClassify: %v", err)
	}
	text := toolResultText(result)

	var blocks []struct {
		FormatID document.FormatID `json:"FormatID"`
	}
	if err := json.Unmarshal([]byte(text), &blocks); err != nil {
		t.Fatalf("unmarshaling result: %v (%s)", err, text)
	}
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
}

func TestHandleClassify_MissingText(t *testing.T) {
	s := New("0.1.0", store.NewMemStore())
	req := makeToolRequest(t, "classify", map[string]any{"session_id": "sid-1"})

	result, err := s.handleClassify(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Errorf("expected a tool error for missing text")
	}
}

func TestHandleGetMemory_EmptySession(t *testing.T) {
	s := New("0.1.0", store.NewMemStore())
	req := makeToolRequest(t, "get_memory", map[string]any{"session_id": "new-session"})

	result, err := s.handleGetMemory(context.Background(), req)
	if err != nil {
		t.Fatalf("handleGetMemory: %v", err)
	}
	text := toolResultText(result)
	if !strings.Contains(text, "lastClassifications") {
		t.Errorf("expected a memory record shape, got %s", text)
	}
}

func TestHandleGetMemory_AfterClassify(t *testing.T) {
	s := New("0.1.0", store.NewMemStore())
	classifyReq := makeToolRequest(t, "classify", map[string]any{
		"text":       "أحمد:\nمرحبا",
		"session_id": "sid-2",
	})
	if _, err := s.handleClassify(context.Background(), classifyReq); err != nil {
		t.Fatalf("handleClassify: %v", err)
	}

	memReq := makeToolRequest(t, "get_memory", map[string]any{"session_id": "sid-2"})
	result, err := s.handleGetMemory(context.Background(), memReq)
	if err != nil {
		t.Fatalf("handleGetMemory: %v", err)
	}
	text := toolResultText(result)
	if !strings.Contains(text, "احمد") && !strings.Contains(text, "أحمد") {
		t.Errorf("expected the classified character name in memory, got %s", text)
	}
}

func TestHandleGetReviewPacket_NoPriorClassify(t *testing.T) {
	s := New("0.1.0", store.NewMemStore())
	req := makeToolRequest(t, "get_review_packet", map[string]any{"session_id": "never-classified"})

	result, err := s.handleGetReviewPacket(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Errorf("expected a tool error when no classify call has run for this session")
	}
}

func TestHandleGetQualityBadge(t *testing.T) {
	s := New("0.1.0", store.NewMemStore())
	classifyReq := makeToolRequest(t, "classify", map[string]any{
		"text":       "مشهد 1\nداخلي - ليل",
		"session_id": "sid-3",
	})
	if _, err := s.handleClassify(context.Background(), classifyReq); err != nil {
		t.Fatalf("handleClassify: %v", err)
	}

	req := makeToolRequest(t, "get_quality_badge", map[string]any{"session_id": "sid-3"})
	result, err := s.handleGetQualityBadge(context.Background(), req)
	if err != nil {
		t.Fatalf("handleGetQualityBadge: %v", err)
	}
	svg := toolResultText(result)
	if !strings.HasPrefix(svg, "<svg") {
		t.Errorf("expected an SVG badge, got %s", svg)
	}
}

func TestHandleListPatterns(t *testing.T) {
	s := New("0.1.0", store.NewMemStore())
	req := makeToolRequest(t, "list_patterns", nil)

	result, err := s.handleListPatterns(context.Background(), req)
	if err != nil {
		t.Fatalf("handleListPatterns: %v", err)
	}
	text := toolResultText(result)
	if !strings.Contains(text, "scene-number") {
		t.Errorf("expected built-in categories in the catalog output, got %s", text)
	}
}
