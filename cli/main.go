// Package main is the entry point for the filmlane-classifier CLI.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/filmlane/classifier/assist"
	"github.com/filmlane/classifier/cli/tui"
	"github.com/filmlane/classifier/config"
	"github.com/filmlane/classifier/core/badge"
	"github.com/filmlane/classifier/core/catalog"
	"github.com/filmlane/classifier/core/importer"
	"github.com/filmlane/classifier/core/patternpack"
	"github.com/filmlane/classifier/core/pipeline"
	"github.com/filmlane/classifier/core/review"
	"github.com/filmlane/classifier/core/store"
	"github.com/filmlane/classifier/plugin"
	"github.com/filmlane/classifier/server"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Exit codes, per the CLI surface: 0 success, 1 precondition failed
// (missing input file or credentials), 2 extraction failed, 3
// classification failed.
const (
	exitOK                   = 0
	exitPreconditionFailed   = 1
	exitExtractionFailed     = 2
	exitClassificationFailed = 3
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the CLI and returns the exit code.
func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return exitPreconditionFailed
	}

	switch args[0] {
	case "serve":
		return runServe(args[1:])
	case "watch":
		return runWatch(args[1:])
	case "review":
		return runReview(args[1:])
	case "--list-patterns", "list-patterns":
		return runListPatterns(args[1:])
	case "version":
		fmt.Printf("filmlane-classifier %s (commit: %s, built: %s)\n", version, commit, date)
		return exitOK
	case "-h", "--help", "help":
		printUsage()
		return exitOK
	default:
		return runClassify(args)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: classifier <input> [--no-save] [--model <id>] [--session <id>]\n\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  classifier <input>   Classify one screenplay text file\n")
	fmt.Fprintf(os.Stderr, "  watch <dir>          Watch a folder of file-import drops\n")
	fmt.Fprintf(os.Stderr, "  review <packet.json> Open the reviewer dashboard for a saved packet\n")
	fmt.Fprintf(os.Stderr, "  serve                Start the MCP server on stdio\n")
	fmt.Fprintf(os.Stderr, "  --list-patterns      List active pattern categories, packs, and plugins\n")
	fmt.Fprintf(os.Stderr, "  version              Print version and exit\n")
}

// runListPatterns implements --list-patterns: prints the catalog of
// built-in pattern categories plus any pattern packs or plugins a
// --pattern-pack flag would have loaded.
func runListPatterns(args []string) int {
	fs := flag.NewFlagSet("list-patterns", flag.ContinueOnError)
	var patternPackDir string
	fs.StringVar(&patternPackDir, "pattern-pack", "", "directory holding a signed pattern-pack bundle to include in the listing")
	if err := fs.Parse(args); err != nil {
		return exitPreconditionFailed
	}

	var bundles []patternpack.Bundle
	if patternPackDir != "" {
		bundle, err := patternpack.LoadBundle(patternPackDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: loading pattern pack: %v\n", err)
			return exitPreconditionFailed
		}
		bundles = append(bundles, bundle)
	}

	entries := catalog.Build(bundles, plugin.NewHost())
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: encoding catalog: %v\n", err)
		return exitPreconditionFailed
	}
	fmt.Println(string(data))
	return exitOK
}

// runClassify implements the CLI surface: classifier <input> [--no-save]
// [--model <id>] [--session <id>].
func runClassify(args []string) int {
	fs := flag.NewFlagSet("classifier", flag.ContinueOnError)
	var (
		noSave    bool
		modelFlag string
		sessionID string
	)
	fs.BoolVar(&noSave, "no-save", false, "classify without persisting session memory or review artifacts")
	fs.StringVar(&modelFlag, "model", "", "adjudicator model id; enables the external second opinion")
	fs.StringVar(&sessionID, "session", "", "session id memory is keyed by (default: derived from the input filename)")
	fs.Usage = printUsage
	if err := fs.Parse(args); err != nil {
		return exitPreconditionFailed
	}
	// flag stops at the first positional argument; keep parsing after it so
	// flags may follow the input path.
	var positional []string
	for fs.NArg() > 0 {
		positional = append(positional, fs.Arg(0))
		if err := fs.Parse(fs.Args()[1:]); err != nil {
			return exitPreconditionFailed
		}
	}

	if len(positional) == 0 {
		fmt.Fprintln(os.Stderr, "error: missing input file")
		printUsage()
		return exitPreconditionFailed
	}
	inputPath := positional[0]

	if _, err := os.Stat(inputPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: input file not found: %s\n", inputPath)
		return exitPreconditionFailed
	}

	cfg := config.Default()
	var adjudicate pipeline.Adjudicator
	if modelFlag != "" {
		cfg.Adjudicator.Model = modelFlag
		cfg.Adjudicator.Enabled = true
		apiKey := os.Getenv(cfg.Adjudicator.APIKeyEnv)
		if apiKey == "" {
			fmt.Fprintf(os.Stderr, "error: missing credentials: %s is not set\n", cfg.Adjudicator.APIKeyEnv)
			return exitPreconditionFailed
		}
		provider := assist.NewOpenAIProvider(
			assist.WithModel(cfg.Adjudicator.Model),
			assist.WithAPIKey(apiKey),
			assist.WithBaseURL(cfg.Adjudicator.BaseURL),
		)
		adjudicate = assist.PipelineAdapter{Client: assist.NewClient(provider, cfg.Adjudicator)}
	}

	raw, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: extraction failed: reading %s: %v\n", inputPath, err)
		return exitExtractionFailed
	}
	result := importer.Preprocess(string(raw), importer.SourcePaste)
	if len(result.Lines) == 0 && strings.TrimSpace(string(raw)) != "" {
		fmt.Fprintf(os.Stderr, "error: extraction failed: no recoverable lines in %s\n", inputPath)
		return exitExtractionFailed
	}

	if sessionID == "" {
		sessionID = filepath.Base(inputPath)
	}

	backing, err := openStore(noSave)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitPreconditionFailed
	}

	var confirm pipeline.ConfirmFunc
	if term.IsTerminal(int(os.Stdin.Fd())) {
		confirm = tui.ConfirmFunc()
	}

	runResult, err := pipeline.Run(strings.Join(result.Lines, "\n"), pipeline.Options{
		Source:     pipeline.SourceFileImport,
		SessionID:  sessionID,
		Store:      backing,
		Config:     cfg,
		Confirm:    confirm,
		Adjudicate: adjudicate,
		Plugins:    plugin.NewHost(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: classification failed: %v\n", err)
		return exitClassificationFailed
	}

	data, err := json.MarshalIndent(runResult.Blocks, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: classification failed: encoding result: %v\n", err)
		return exitClassificationFailed
	}
	fmt.Println(string(data))

	score := badge.DocumentScore{
		ImportQuality:   result.Quality,
		TotalReviewed:   runResult.Packet.TotalReviewed,
		SuspiciousLines: len(runResult.Packet.SuspiciousLines),
	}
	b := badge.GenerateFromScore(score, filepath.Base(inputPath))
	fmt.Fprintf(os.Stderr, "[quality] grade %s, suspicion rate %.1f%%\n", b.Grade, score.SuspicionRate()*100)

	if !noSave {
		if err := writeSidecar(inputPath, ".packet.json", runResult.Packet); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not write review packet sidecar: %v\n", err)
		}
	}

	return exitOK
}

func openStore(noSave bool) (store.Store, error) {
	if noSave {
		return store.NewMemStore(), nil
	}
	s, err := store.NewFileStore(filepath.Join(filmlaneHome(), "sessions"))
	if err != nil {
		return nil, fmt.Errorf("opening session store: %w", err)
	}
	return s, nil
}

func writeSidecar(inputPath, suffix string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	path := strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + suffix
	return os.WriteFile(path, data, 0o644)
}

func runServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	var patternPackDir string
	fs.StringVar(&patternPackDir, "pattern-pack", "", "directory holding a signed pattern-pack bundle to load at startup")
	if err := fs.Parse(args); err != nil {
		return exitPreconditionFailed
	}

	s, err := store.NewFileStore(filepath.Join(filmlaneHome(), "sessions"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitPreconditionFailed
	}

	opts := []server.Option{server.WithPluginHost(plugin.NewHost())}
	if patternPackDir != "" {
		bundle, err := patternpack.LoadBundle(patternPackDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: loading pattern pack: %v\n", err)
			return exitPreconditionFailed
		}
		opts = append(opts, server.WithPatternPacks([]patternpack.Bundle{bundle}))
	}

	srv := server.New(version, s, opts...)
	if err := srv.Serve(); err != nil {
		fmt.Fprintf(os.Stderr, "error: MCP server failed: %v\n", err)
		return exitPreconditionFailed
	}
	return exitOK
}

func runReview(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: classifier review <packet.json>")
		return exitPreconditionFailed
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: reading packet: %v\n", err)
		return exitPreconditionFailed
	}

	var packet review.Packet
	if err := json.Unmarshal(data, &packet); err != nil {
		fmt.Fprintf(os.Stderr, "error: parsing packet: %v\n", err)
		return exitPreconditionFailed
	}

	if err := tui.RunDashboard(packet); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitPreconditionFailed
	}
	return exitOK
}
