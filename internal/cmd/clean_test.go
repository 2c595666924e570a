package cmd

import (
	"bytes"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/offlinefirst/snapvault/pkg/config"
)

func cleanFlagSet(t *testing.T, args ...string) *flag.FlagSet {
	t.Helper()
	cmd := newCleanCommand()
	fs := flag.NewFlagSet(cmd.name, flag.ContinueOnError)
	cmd.configure(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return fs
}

func seedScreenshots(t *testing.T, dir string, stamps ...string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, stamp := range stamps {
		path := filepath.Join(dir, "screenshot-"+stamp+".png")
		if err := os.WriteFile(path, []byte(stamp), 0o644); err != nil {
			t.Fatalf("seed %q: %v", path, err)
		}
	}
}

func remainingNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func TestCleanKeepLastRemovesOldest(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	seedScreenshots(t, dir, "2024-05-10-090000", "2024-05-11-090000", "2024-05-12-090000")

	cfg := config.Default()
	cfg.Paths.BackupDir = dir
	ctx := &AppContext{Config: cfg, Logger: newTestLogger()}

	var stdout bytes.Buffer
	if err := runClean(cleanFlagSet(t, "-keep-last", "1"), nil, ctx, &stdout, io.Discard); err != nil {
		t.Fatalf("clean failed: %v", err)
	}

	names := remainingNames(t, dir)
	if len(names) != 1 || names[0] != "screenshot-2024-05-12-090000.png" {
		t.Fatalf("expected only newest screenshot, got %v", names)
	}
	if !strings.Contains(stdout.String(), "Removed 2 screenshot(s)") {
		t.Fatalf("unexpected output %q", stdout.String())
	}
}

func TestCleanOlderThanUsesEmbeddedTimestamp(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	seedScreenshots(t, dir, "2024-01-01-000000", "2024-05-12-090000")

	cfg := config.Default()
	cfg.Paths.BackupDir = dir
	ctx := &AppContext{Config: cfg, Logger: newTestLogger()}

	freezeClock(t, time.Date(2024, 5, 13, 0, 0, 0, 0, time.Local))

	var stdout bytes.Buffer
	if err := runClean(cleanFlagSet(t, "-older-than-days", "30"), nil, ctx, &stdout, io.Discard); err != nil {
		t.Fatalf("clean failed: %v", err)
	}

	names := remainingNames(t, dir)
	if len(names) != 1 || names[0] != "screenshot-2024-05-12-090000.png" {
		t.Fatalf("expected old screenshot removed, got %v", names)
	}
}

func TestCleanDryRunKeepsFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	seedScreenshots(t, dir, "2024-05-10-090000", "2024-05-11-090000")

	cfg := config.Default()
	cfg.Paths.BackupDir = dir
	ctx := &AppContext{Config: cfg, Logger: newTestLogger()}

	var stdout bytes.Buffer
	if err := runClean(cleanFlagSet(t, "-keep-last", "1", "-dry-run"), nil, ctx, &stdout, io.Discard); err != nil {
		t.Fatalf("clean failed: %v", err)
	}

	if names := remainingNames(t, dir); len(names) != 2 {
		t.Fatalf("dry run must not delete, got %v", names)
	}
	if !strings.Contains(stdout.String(), "Would remove 1 screenshot(s)") {
		t.Fatalf("unexpected output %q", stdout.String())
	}
}

func TestCleanIgnoresForeignFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	seedScreenshots(t, dir, "2024-05-10-090000")
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("keep me"), 0o644); err != nil {
		t.Fatalf("write foreign file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "screenshot-garbage.png"), []byte("keep me too"), 0o644); err != nil {
		t.Fatalf("write unparsable file: %v", err)
	}

	cfg := config.Default()
	cfg.Paths.BackupDir = dir
	ctx := &AppContext{Config: cfg, Logger: newTestLogger()}

	var stdout bytes.Buffer
	if err := runClean(cleanFlagSet(t, "-keep-last", "1"), nil, ctx, &stdout, io.Discard); err != nil {
		t.Fatalf("clean failed: %v", err)
	}

	names := remainingNames(t, dir)
	if len(names) != 3 {
		t.Fatalf("expected foreign files untouched, got %v", names)
	}
}

func TestCleanWithoutLimitsDoesNothing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	seedScreenshots(t, dir, "2024-05-10-090000")

	cfg := config.Default()
	cfg.Paths.BackupDir = dir
	ctx := &AppContext{Config: cfg, Logger: newTestLogger()}

	var stdout bytes.Buffer
	if err := runClean(cleanFlagSet(t), nil, ctx, &stdout, io.Discard); err != nil {
		t.Fatalf("clean failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "Nothing to do") {
		t.Fatalf("unexpected output %q", stdout.String())
	}
	if names := remainingNames(t, dir); len(names) != 1 {
		t.Fatalf("expected files untouched, got %v", names)
	}
}

func TestCleanMissingDirectoryIsEmpty(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.BackupDir = filepath.Join(t.TempDir(), "absent")
	ctx := &AppContext{Config: cfg, Logger: newTestLogger()}

	var stdout bytes.Buffer
	if err := runClean(cleanFlagSet(t, "-keep-last", "1"), nil, ctx, &stdout, io.Discard); err != nil {
		t.Fatalf("clean failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "Removed 0 screenshot(s)") {
		t.Fatalf("unexpected output %q", stdout.String())
	}
}
