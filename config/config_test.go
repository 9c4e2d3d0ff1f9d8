package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Reviewer.SuspicionThreshold != 74 {
		t.Errorf("expected default suspicion threshold, got %d", cfg.Reviewer.SuspicionThreshold)
	}
}

func TestLoadOverridesFromFile(t *testing.T) {
	dir := t.TempDir()
	content := "reviewer:\n  suspicion_threshold: 80\n"
	if err := os.WriteFile(filepath.Join(dir, ".filmlane.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Reviewer.SuspicionThreshold != 80 {
		t.Errorf("expected override to 80, got %d", cfg.Reviewer.SuspicionThreshold)
	}
	if cfg.Resolver.WindowRadius != 10 {
		t.Errorf("expected untouched default for window radius, got %d", cfg.Resolver.WindowRadius)
	}
}
