// Package pipeline ties together text extraction, the merge pass, the
// rule-based classifier, the post-classification reviewer, and session
// memory into the single entry point a paste or file-import drop runs
// through: a thin, mostly-mechanical driver over packages that each do
// one job and are independently tested.
package pipeline

import (
	stdcontext "context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/filmlane/classifier/config"
	winctx "github.com/filmlane/classifier/core/context"
	"github.com/filmlane/classifier/core/document"
	"github.com/filmlane/classifier/core/feedback"
	"github.com/filmlane/classifier/core/memory"
	"github.com/filmlane/classifier/core/review"
	"github.com/filmlane/classifier/plugin"
	"github.com/filmlane/classifier/core/store"
	"github.com/filmlane/classifier/core/textutil"
)

// Source distinguishes where the raw payload came from, since only
// clipboard pastes get the merge pass.
type Source string

const (
	SourceClipboard   Source = "clipboard"
	SourceFileImport  Source = "file-import"
)

// ConfirmFunc asks a human (or a scripted test double) to confirm or
// correct a low-confidence classification. ok reports whether the
// callback had an opinion at all; when it does, formatID is the type to
// use, which may equal the item's original guess.
type ConfirmFunc func(item ClassifiedItem) (formatID document.FormatID, ok bool)

// ReviewDecision is one adjudicator-proposed override of a classified
// item's type.
type ReviewDecision struct {
	ItemIndex int
	FormatID  document.FormatID
	Confidence float64 // in [0, 1]
}

// Adjudicator sends a reviewer packet to an external judge and returns any
// proposed overrides. Implemented by the assist package's PipelineAdapter; pipeline
// only depends on this narrow interface so it can be driven by a fake in
// tests.
type Adjudicator interface {
	Review(ctx stdcontext.Context, packet review.Packet) ([]ReviewDecision, error)
}

// ClassifiedItem is one resolved classification produced by the per-line
// loop, before emission.
type ClassifiedItem struct {
	Text       string
	FormatID   document.FormatID
	Confidence int
	Reason     string
}

// EmittedItem is a ClassifiedItem together with the spacing metadata
// computed during emission.
type EmittedItem struct {
	ClassifiedItem
	MarginTopPt int
}

// Options configures one pipeline run.
type Options struct {
	Source    Source
	SessionID string
	Store     store.Store
	Config    config.Config
	Confirm   ConfirmFunc
	Adjudicate Adjudicator
	Plugins    *plugin.Host // optional; nil runs only the five built-in detectors
	TestRuntime bool // suppresses reviewer invocation, per the no-network-in-tests rule
}

// Result is everything one pipeline run produces.
type Result struct {
	Blocks          []EmittedItem
	Window          *winctx.Window
	BatchID         string
	Packet          review.Packet
	MemoryRecord    memory.Record
	ShouldRetrain   bool
}

// domElementTokenRE matches a cross-editor paste artifact like
// "@dom-element:482" that carries no screenplay content.
var domElementTokenRE = regexp.MustCompile(`@dom-element:[A-Za-z0-9_-]+`)

// htmlTagRE matches any HTML tag; ExtractPlainText replaces each with a
// newline. It is a tolerant regexp pass rather than an HTML parser, since
// pasted content from arbitrary editors is frequently not well-formed.
var htmlTagRE = regexp.MustCompile(`<[^>]*>`)

// ExtractPlainText removes HTML markup, DOM artifact tokens, and NBSP
// noise from raw pasted content, leaving plain newline-delimited text.
func ExtractPlainText(raw string) string {
	s := strings.ReplaceAll(raw, " ", " ")
	s = domElementTokenRE.ReplaceAllString(s, "")
	s = htmlTagRE.ReplaceAllString(s, "\n")
	return s
}

// Run executes the full paste/import pipeline over raw input and persists
// the resulting session memory.
func Run(raw string, opts Options) (Result, error) {
	if opts.Store == nil {
		return Result{}, fmt.Errorf("pipeline: Options.Store is required")
	}
	if opts.SessionID == "" {
		return Result{}, fmt.Errorf("pipeline: Options.SessionID is required")
	}

	lines := cleanLines(raw)
	if opts.Source == SourceClipboard {
		lines = mergePass(lines)
	}

	win := winctx.NewWindow()
	var items []ClassifiedItem
	for _, line := range lines {
		items = append(items, classifyLine(line, win)...)
	}

	emitted := emit(items)

	batchID := deferConfirmations(emitted, opts)

	packet := review.Packet{}
	if opts.Adjudicate != nil && !opts.TestRuntime {
		packet = runReviewer(emitted, opts.Config.Reviewer, opts.Plugins, opts.SessionID)
		if !packet.IsEmpty() {
			applyAdjudication(emitted, opts.Adjudicate, packet)
		}
	}

	rec, err := updateMemory(opts, emitted, win)
	if err != nil {
		return Result{}, err
	}

	log, err := feedback.Load(opts.Store)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Blocks:        emitted,
		Window:        win,
		BatchID:       batchID,
		Packet:        packet,
		MemoryRecord:  rec,
		ShouldRetrain: feedback.ShouldRetrain(log),
	}, nil
}

// cleanLines extracts plain text from raw input and normalizes each
// resulting line, discarding blanks.
func cleanLines(raw string) []string {
	plain := ExtractPlainText(raw)
	var out []string
	for _, line := range strings.Split(plain, "\n") {
		stripped := textutil.NormalizeLine(line)
		if stripped == "" {
			continue
		}
		out = append(out, stripped)
	}
	return out
}

// newBatchID mints a deferred-confirmation batch id, a uuid suffix standing
// in for the "<sessionId>-<now>" wall-clock nonce the algorithm calls for,
// since wall time is not reproducibly available mid-pipeline.
func newBatchID(sessionID string) string {
	return sessionID + "-" + uuid.NewString()
}

func updateMemory(opts Options, emitted []EmittedItem, win *winctx.Window) (memory.Record, error) {
	rec, err := memory.Load(opts.Store, opts.SessionID)
	if err != nil {
		return memory.Record{}, err
	}

	var entries []memory.ClassificationEntry
	for i, item := range emitted {
		entries = append(entries, memory.ClassificationEntry{
			Text:       item.Text,
			FormatID:   item.FormatID,
			Confidence: item.Confidence,
			Timestamp:  int64(i),
		})
	}

	return memory.Update(opts.Store, opts.SessionID, rec, entries, win)
}

func runReviewer(emitted []EmittedItem, cfg config.ReviewerSettings, plugins *plugin.Host, sessionID string) review.Packet {
	lines := make([]review.ClassifiedLine, len(emitted))
	for i, item := range emitted {
		lines[i] = review.ClassifiedLine{
			Text:       item.Text,
			FormatID:   item.FormatID,
			Confidence: item.Confidence,
			Reason:     item.Reason,
		}
	}

	var pluginDetectors review.PluginDetectorFunc
	if plugins != nil {
		pluginDetectors = plugins.RunDetectorPlugins
	}
	verdicts := review.RunDetectorsWithPlugins(lines, pluginDetectors)
	var suspicious []review.LineVerdict
	for _, v := range verdicts {
		if review.IsSuspicious(v, cfg) {
			suspicious = append(suspicious, v)
		}
	}
	suspicious = review.Trim(suspicious, len(lines), cfg)

	return review.BuildPacket(sessionID, lines, suspicious, cfg.ContextRadius)
}

// applyAdjudication sends packet to adjudicate and applies any decisions
// that reference a valid index, change the type, and name a type in the
// taxonomy; the new confidence is max(85, round(decision.confidence*100)).
func applyAdjudication(emitted []EmittedItem, adjudicate Adjudicator, packet review.Packet) {
	decisions, err := adjudicate.Review(stdcontext.Background(), packet)
	if err != nil {
		return
	}
	for _, d := range decisions {
		if d.ItemIndex < 0 || d.ItemIndex >= len(emitted) {
			continue
		}
		if !d.FormatID.Valid() || d.FormatID == document.SceneHeaderTopLine {
			continue
		}
		item := &emitted[d.ItemIndex]
		if d.FormatID == item.FormatID {
			continue
		}
		item.FormatID = d.FormatID
		item.Confidence = maxInt(85, roundPercent(d.Confidence))
		item.Reason = "adjudicator:override"
	}
}

func roundPercent(f float64) int {
	return int(f*100 + 0.5)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// deferConfirmations collects items below the configured confidence floor
// and, if a Confirm callback is configured, resolves them immediately,
// recording any correction; it always returns the batch id a caller can
// use to correlate deferred work, even when nothing needed confirming.
func deferConfirmations(emitted []EmittedItem, opts Options) string {
	batchID := newBatchID(opts.SessionID)
	threshold := opts.Config.Resolver.LowConfidenceThreshold
	if opts.Confirm == nil {
		return batchID
	}
	for i := range emitted {
		if emitted[i].Confidence >= threshold {
			continue
		}
		newType, ok := opts.Confirm(emitted[i].ClassifiedItem)
		if !ok || newType == emitted[i].FormatID {
			continue
		}
		log, err := feedback.Load(opts.Store)
		if err == nil {
			_, _ = feedback.AddCorrection(opts.Store, log, feedback.Correction{
				Text: emitted[i].Text,
				From: emitted[i].FormatID,
				To:   newType,
			})
		}
		emitted[i].FormatID = newType
		emitted[i].Reason = "user-confirmation"
	}
	return batchID
}
