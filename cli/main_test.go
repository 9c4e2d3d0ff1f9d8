package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRun_VersionCommand(t *testing.T) {
	if code := run([]string{"version"}); code != exitOK {
		t.Fatalf("expected exit code %d for version command, got %d", exitOK, code)
	}
}

func TestRun_NoArgs(t *testing.T) {
	if code := run([]string{}); code != exitPreconditionFailed {
		t.Fatalf("expected exit code %d for no args, got %d", exitPreconditionFailed, code)
	}
}

func TestRun_MissingInputFile(t *testing.T) {
	code := run([]string{filepath.Join(t.TempDir(), "missing.txt")})
	if code != exitPreconditionFailed {
		t.Fatalf("expected exit code %d for a missing input file, got %d", exitPreconditionFailed, code)
	}
}

func TestRun_ClassifySucceeds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.txt")
	content := "مشهد 1\nداخلي - بيت أحمد - نهار\nيدخل أحمد إلى الغرفة.\nأحمد:\nمرحباً يا سارة."
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing input: %v", err)
	}

	t.Setenv("FILMLANE_HOME", filepath.Join(dir, "home"))
	code := run([]string{path})
	if code != exitOK {
		t.Fatalf("expected exit code %d, got %d", exitOK, code)
	}

	if _, err := os.Stat(filepath.Join(dir, "scene.packet.json")); err != nil {
		t.Errorf("expected a review packet sidecar to be written: %v", err)
	}
}

func TestRun_ClassifyNoSaveSkipsSidecar(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.txt")
	if err := os.WriteFile(path, []byte("مشهد 1"), 0o644); err != nil {
		t.Fatalf("writing input: %v", err)
	}

	t.Setenv("FILMLANE_HOME", filepath.Join(dir, "home"))
	code := run([]string{path, "--no-save"})
	if code != exitOK {
		t.Fatalf("expected exit code %d, got %d", exitOK, code)
	}
	if _, err := os.Stat(filepath.Join(dir, "scene.packet.json")); err == nil {
		t.Error("expected no sidecar to be written with --no-save")
	}
}

func TestRun_ClassifyModelWithoutCredentialsFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.txt")
	if err := os.WriteFile(path, []byte("مشهد 1"), 0o644); err != nil {
		t.Fatalf("writing input: %v", err)
	}

	t.Setenv("FILMLANE_ADJUDICATOR_API_KEY", "")
	code := run([]string{path, "--model", "gpt-4o-mini"})
	if code != exitPreconditionFailed {
		t.Fatalf("expected exit code %d for missing credentials, got %d", exitPreconditionFailed, code)
	}
}

func TestRun_ListPatterns(t *testing.T) {
	if code := run([]string{"--list-patterns"}); code != exitOK {
		t.Fatalf("expected exit code %d for --list-patterns, got %d", exitOK, code)
	}
}

func TestRun_UnknownCommandTreatedAsInputPath(t *testing.T) {
	code := run([]string{"not-a-real-file.txt"})
	if code != exitPreconditionFailed {
		t.Fatalf("expected exit code %d, got %d", exitPreconditionFailed, code)
	}
}
