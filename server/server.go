// Package server implements an MCP server exposing the classification
// pipeline, the reviewer, and session memory as agent-callable tools,
// built on mark3labs/mcp-go's AddTool registration pattern, over one
// in-process session store.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/filmlane/classifier/config"
	"github.com/filmlane/classifier/core/annotate"
	"github.com/filmlane/classifier/core/badge"
	"github.com/filmlane/classifier/core/catalog"
	"github.com/filmlane/classifier/core/memory"
	"github.com/filmlane/classifier/core/patternpack"
	"github.com/filmlane/classifier/core/pipeline"
	"github.com/filmlane/classifier/core/store"
	"github.com/filmlane/classifier/plugin"
)

// Server is the classifier MCP server.
type Server struct {
	version string
	store   store.Store
	config  config.Config
	host       *plugin.Host
	bundles    []patternpack.Bundle
	adjudicate pipeline.Adjudicator

	mu      sync.RWMutex
	results map[string]pipeline.Result // last Result per session id
}

// Option is a functional option for configuring a Server.
type Option func(*Server)

// WithPluginHost attaches a plugin Host, enabling its entries in the
// catalog tool.
func WithPluginHost(h *plugin.Host) Option {
	return func(s *Server) { s.host = h }
}

// WithAdjudicator attaches an external adjudicator; without one, classify
// runs the reviewer's detectors but never escalates to a second opinion.
func WithAdjudicator(a pipeline.Adjudicator) Option {
	return func(s *Server) { s.adjudicate = a }
}

// WithPatternPacks attaches the pattern packs loaded at startup, included
// in the catalog tool's output.
func WithPatternPacks(bundles []patternpack.Bundle) Option {
	return func(s *Server) { s.bundles = bundles }
}

// WithConfig overrides the default reviewer/resolver configuration.
func WithConfig(cfg config.Config) Option {
	return func(s *Server) { s.config = cfg }
}

// New creates a classifier MCP server backed by s for session memory.
func New(version string, s store.Store, opts ...Option) *Server {
	srv := &Server{
		version: version,
		store:   s,
		config:  config.Default(),
		results: make(map[string]pipeline.Result),
	}
	for _, opt := range opts {
		opt(srv)
	}
	return srv
}

// Serve starts the MCP server on stdio and blocks until the client
// disconnects.
func (s *Server) Serve() error {
	srv := mcpserver.NewMCPServer(
		"filmlane-classifier",
		s.version,
		mcpserver.WithRecovery(),
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithResourceCapabilities(false, false),
	)

	s.registerTools(srv)
	return mcpserver.ServeStdio(srv)
}

func (s *Server) registerTools(srv *mcpserver.MCPServer) {
	srv.AddTool(
		mcp.NewTool("classify",
			mcp.WithDescription("Classify pasted or imported Arabic screenplay text into scene headers, action, character, dialogue, parenthetical, and transition blocks"),
			mcp.WithString("text",
				mcp.Description("The raw screenplay text to classify"),
				mcp.Required(),
			),
			mcp.WithString("session_id",
				mcp.Description("Session id session memory and the reviewer packet are keyed by"),
				mcp.Required(),
			),
			mcp.WithString("source",
				mcp.Description("clipboard or file-import; clipboard runs the merge pass"),
				mcp.Enum("clipboard", "file-import"),
				mcp.DefaultString("clipboard"),
			),
			mcp.WithReadOnlyHintAnnotation(false),
		),
		s.handleClassify,
	)

	srv.AddTool(
		mcp.NewTool("get_review_packet",
			mcp.WithDescription("Get the reviewer's suspicious-line packet from the last classify call for a session, rendered as inline annotations"),
			mcp.WithString("session_id",
				mcp.Description("Session id"),
				mcp.Required(),
			),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleGetReviewPacket,
	)

	srv.AddTool(
		mcp.NewTool("get_memory",
			mcp.WithDescription("Get the persisted session memory record: common characters, recent classifications, and line relationships"),
			mcp.WithString("session_id",
				mcp.Description("Session id"),
				mcp.Required(),
			),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleGetMemory,
	)

	srv.AddTool(
		mcp.NewTool("get_quality_badge",
			mcp.WithDescription("Get an SVG quality badge summarizing the last classify call's reviewer suspicion rate; the badge's import-quality input is fixed at 1.0, since classify does not run the import preprocessor"),
			mcp.WithString("session_id",
				mcp.Description("Session id"),
				mcp.Required(),
			),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleGetQualityBadge,
	)

	srv.AddTool(
		mcp.NewTool("list_patterns",
			mcp.WithDescription("List the active built-in pattern categories plus any loaded pattern packs and registered plugins"),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleListPatterns,
	)
}

func (s *Server) handleClassify(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("missing required argument: text"), nil
	}
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("missing required argument: session_id"), nil
	}
	sourceArg := request.GetString("source", "clipboard")
	source := pipeline.SourceClipboard
	if sourceArg == "file-import" {
		source = pipeline.SourceFileImport
	}

	cleaned := pipeline.ExtractPlainText(text)
	result, err := pipeline.Run(cleaned, pipeline.Options{
		Source:     source,
		SessionID:  sessionID,
		Store:      s.store,
		Config:     s.config,
		Plugins:    s.host,
		Adjudicate: s.adjudicate,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("classify failed: %v", err)), nil
	}

	s.mu.Lock()
	s.results[sessionID] = result
	s.mu.Unlock()

	data, err := json.Marshal(result.Blocks)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result failed: %v", err)), nil
	}

	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleGetReviewPacket(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("missing required argument: session_id"), nil
	}

	result, ok := s.cachedResult(sessionID)
	if !ok {
		return mcp.NewToolResultError("no classify result for this session — call classify first"), nil
	}

	payload := annotate.BuildPayload(result.Packet)
	if payload == nil {
		return mcp.NewToolResultText(`{"summary":"no suspicious lines","annotations":[]}`), nil
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding payload failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleGetMemory(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("missing required argument: session_id"), nil
	}

	rec, err := memory.Load(s.store, sessionID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading memory failed: %v", err)), nil
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding memory failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleGetQualityBadge(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("missing required argument: session_id"), nil
	}

	result, ok := s.cachedResult(sessionID)
	if !ok {
		return mcp.NewToolResultError("no classify result for this session — call classify first"), nil
	}

	score := badge.DocumentScore{
		ImportQuality:   1.0,
		TotalReviewed:   result.Packet.TotalReviewed,
		SuspiciousLines: len(result.Packet.SuspiciousLines),
	}
	b := badge.GenerateFromScore(score, "filmlane")
	return mcp.NewToolResultText(b.SVG), nil
}

func (s *Server) handleListPatterns(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries := catalog.Build(s.bundles, s.host)
	data, err := json.Marshal(entries)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding catalog failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) cachedResult(sessionID string) (pipeline.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.results[sessionID]
	return r, ok
}
