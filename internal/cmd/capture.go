package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/offlinefirst/snapvault/internal/buildinfo"
	"github.com/offlinefirst/snapvault/pkg/manifest"
	"github.com/offlinefirst/snapvault/pkg/screenshots"
)

func newCaptureCommand() command {
	return command{
		name:        "capture",
		description: "Capture the current display into the backup directory",
		configure: func(fs *flag.FlagSet) {
			fs.Bool("synthetic", false, "Use the deterministic synthetic frame source instead of the display")
			fs.Bool("manifest", false, "Write a JSON manifest next to the screenshot")
		},
		run: runCapture,
	}
}

var (
	timeNow  = time.Now
	hostname = os.Hostname

	// displayProvider is extracted for testability.
	displayProvider = func(display int) screenshots.CaptureProvider {
		return screenshots.DisplayProvider{Display: display}
	}
)

func runCapture(fs *flag.FlagSet, args []string, ctx *AppContext, stdout io.Writer, stderr io.Writer) error {
	if ctx == nil {
		return fmt.Errorf("application context unavailable")
	}

	synthetic := boolFlag(fs, "synthetic")
	withManifest := boolFlag(fs, "manifest")
	dir := ctx.Config.Paths.BackupDir
	ctx.Logger.Info("capture command invoked", "backup_dir", dir, "synthetic", synthetic, "config_source", ctx.Config.Source)

	// Directory failures are deliberately not converted into a console
	// report; they abort the run with a non-zero exit status.
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure backup directory: %w", err)
	}

	var provider screenshots.CaptureProvider = displayProvider(ctx.Config.Capture.Display)
	if synthetic {
		provider = screenshots.SyntheticProvider{Clock: timeNow}
	}

	saver, err := screenshots.NewSaver(screenshots.Options{
		Prefix:   ctx.Config.Capture.FilePrefix,
		Clock:    timeNow,
		Provider: provider,
	})
	if err != nil {
		return err
	}

	result, err := saver.Capture(context.Background(), dir)
	if err != nil {
		ctx.Logger.Error("capture failed", "error", err)
		fmt.Fprintf(stdout, "❌ Failed to take screenshot: %v\n", err)
		return nil
	}

	if withManifest {
		host, err := hostname()
		if err != nil {
			host = "unknown"
		}
		man := manifest.New(result.Metadata, host, buildinfo.Version())
		if err := manifest.Save(manifest.SidecarPath(result.ImagePath), man); err != nil {
			ctx.Logger.Error("manifest write failed", "error", err)
			fmt.Fprintf(stdout, "❌ Failed to write manifest: %v\n", err)
			return nil
		}
	}

	ctx.Logger.Info("screenshot saved",
		"path", result.ImagePath,
		"backend", result.Metadata.Backend,
		"width", result.Metadata.Width,
		"height", result.Metadata.Height,
	)
	fmt.Fprintf(stdout, "✅ Screenshot saved: %s\n", result.ImagePath)
	return nil
}
