package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/filmlane/classifier/config"
	"github.com/filmlane/classifier/core/badge"
	"github.com/filmlane/classifier/core/importer"
	"github.com/filmlane/classifier/core/pipeline"
	"github.com/filmlane/classifier/core/store"
	"github.com/filmlane/classifier/plugin"
)

// runWatch watches a folder of file-import drops (text already extracted
// from DOC/DOCX/PDF sources) and runs the classification pipeline over each
// new or changed ".txt" file.
func runWatch(args []string) int {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	var debounce time.Duration
	fs.DurationVar(&debounce, "debounce", 500*time.Millisecond, "debounce interval for file changes")
	if err := fs.Parse(args); err != nil {
		return exitPreconditionFailed
	}

	target := "."
	if fs.NArg() > 0 {
		target = fs.Arg(0)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: creating watcher: %v\n", err)
		return exitPreconditionFailed
	}
	defer watcher.Close()

	if err := addDirsRecursive(watcher, target); err != nil {
		fmt.Fprintf(os.Stderr, "error: watching directories: %v\n", err)
		return exitPreconditionFailed
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	statePath := DefaultStatePath()
	st, err := LoadState(statePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: loading watch state: %v\n", err)
		return exitPreconditionFailed
	}
	backing, err := store.NewFileStore(filepath.Join(filmlaneHome(), "sessions"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitPreconditionFailed
	}

	fmt.Printf("watch: scanning %s (debounce: %s)\n", target, debounce)
	processDir(target, st, backing)
	if err := SaveState(statePath, st); err != nil {
		fmt.Fprintf(os.Stderr, "warning: saving watch state: %v\n", err)
	}

	var mu sync.Mutex
	var timer *time.Timer

	resetTimer := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(debounce, func() {
			fmt.Printf("watch: re-scanning %s\n", target)
			processDir(target, st, backing)
			if err := SaveState(statePath, st); err != nil {
				fmt.Fprintf(os.Stderr, "warning: saving watch state: %v\n", err)
			}
		})
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return exitOK
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				if event.Has(fsnotify.Create) {
					info, err := os.Stat(event.Name)
					if err == nil && info.IsDir() {
						_ = addDirsRecursive(watcher, event.Name)
					}
				}
				resetTimer()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return exitOK
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		case <-sigCh:
			fmt.Println("\nwatch: stopped")
			return exitOK
		}
	}
}

// processDir classifies every ".txt" file under root that st has not
// already seen at its current modification time.
func processDir(root string, st *State, backing store.Store) {
	cfg := config.Default()
	host := plugin.NewHost()

	_ = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() || !strings.HasSuffix(path, ".txt") {
			return nil
		}
		modUnix := info.ModTime().Unix()
		if st.Seen(path, modUnix) {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[skip] %s: %v\n", path, err)
			return nil
		}

		result := importer.Preprocess(string(raw), importer.SourcePaste)
		sessionID := filepath.Base(path)
		runResult, err := pipeline.Run(strings.Join(result.Lines, "\n"), pipeline.Options{
			Source:    pipeline.SourceFileImport,
			SessionID: sessionID,
			Store:     backing,
			Config:    cfg,
			Plugins:   host,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "[error] %s: %v\n", path, err)
			return nil
		}

		score := badge.DocumentScore{
			ImportQuality:   result.Quality,
			TotalReviewed:   runResult.Packet.TotalReviewed,
			SuspiciousLines: len(runResult.Packet.SuspiciousLines),
		}
		fmt.Printf("[processed] %s: %d blocks, quality %s\n", path, len(runResult.Blocks), badge.GradeFromScore(score.CombinedScore()).Letter)

		st.MarkProcessed(path, modUnix, sessionID)
		return nil
	})
}

func addDirsRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		base := filepath.Base(path)
		if base == ".git" || base == "node_modules" || base == ".filmlane" {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
