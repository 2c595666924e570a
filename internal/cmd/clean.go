package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/offlinefirst/snapvault/pkg/screenshots"
)

func newCleanCommand() command {
	return command{
		name:        "clean",
		description: "Prune old screenshots from the backup directory",
		configure: func(fs *flag.FlagSet) {
			fs.Int("keep-last", -1, "Keep only the newest N screenshots (-1: use config)")
			fs.Int("older-than-days", -1, "Remove screenshots older than N days (-1: use config)")
			fs.Bool("dry-run", false, "Report what would be removed without deleting")
		},
		run: runClean,
	}
}

func runClean(fs *flag.FlagSet, args []string, ctx *AppContext, stdout io.Writer, stderr io.Writer) error {
	if ctx == nil {
		return fmt.Errorf("application context unavailable")
	}

	keepLast := intFlag(fs, "keep-last", -1)
	if keepLast < 0 {
		keepLast = ctx.Config.Retention.KeepLast
	}
	maxAgeDays := intFlag(fs, "older-than-days", -1)
	if maxAgeDays < 0 {
		maxAgeDays = ctx.Config.Retention.MaxAgeDays
	}
	dryRun := boolFlag(fs, "dry-run")

	dir := ctx.Config.Paths.BackupDir
	prefix := ctx.Config.Capture.FilePrefix
	ctx.Logger.Info("clean command invoked", "backup_dir", dir, "keep_last", keepLast, "older_than_days", maxAgeDays, "dry_run", dryRun)

	if keepLast == 0 && maxAgeDays == 0 {
		fmt.Fprintln(stdout, "Nothing to do: no retention limits configured")
		return nil
	}

	shots, err := listScreenshots(dir, prefix)
	if err != nil {
		return err
	}

	victims := selectVictims(shots, keepLast, maxAgeDays, timeNow())
	for _, shot := range victims {
		if dryRun {
			fmt.Fprintf(stdout, "Would remove %s\n", shot.path)
			continue
		}
		if err := os.Remove(shot.path); err != nil {
			return fmt.Errorf("remove %q: %w", shot.path, err)
		}
		ctx.Logger.Debug("screenshot removed", "path", shot.path)
	}

	if dryRun {
		fmt.Fprintf(stdout, "Would remove %d screenshot(s) from %s\n", len(victims), dir)
		return nil
	}
	fmt.Fprintf(stdout, "Removed %d screenshot(s) from %s\n", len(victims), dir)
	return nil
}

type screenshotFile struct {
	path  string
	taken time.Time
}

// listScreenshots returns prefix-matching PNG files sorted oldest first.
// Files whose names do not embed a parseable timestamp are left alone.
func listScreenshots(dir, prefix string) ([]screenshotFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read backup directory: %w", err)
	}

	shots := make([]screenshotFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, prefix+"-") || !strings.HasSuffix(name, ".png") {
			continue
		}
		stamp := strings.TrimSuffix(strings.TrimPrefix(name, prefix+"-"), ".png")
		taken, err := time.ParseInLocation(screenshots.TimestampLayout, stamp, time.Local)
		if err != nil {
			continue
		}
		shots = append(shots, screenshotFile{path: filepath.Join(dir, name), taken: taken})
	}

	sort.Slice(shots, func(i, j int) bool { return shots[i].taken.Before(shots[j].taken) })
	return shots, nil
}

func selectVictims(shots []screenshotFile, keepLast, maxAgeDays int, now time.Time) []screenshotFile {
	victims := make([]screenshotFile, 0, len(shots))
	remaining := shots

	if keepLast > 0 && len(remaining) > keepLast {
		victims = append(victims, remaining[:len(remaining)-keepLast]...)
		remaining = remaining[len(remaining)-keepLast:]
	}

	if maxAgeDays > 0 {
		cutoff := now.AddDate(0, 0, -maxAgeDays)
		for _, shot := range remaining {
			if shot.taken.Before(cutoff) {
				victims = append(victims, shot)
			}
		}
	}

	return victims
}
