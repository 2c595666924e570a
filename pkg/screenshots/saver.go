package screenshots

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// TimestampLayout is the second-granularity local time format embedded in
// screenshot filenames.
const TimestampLayout = "2006-01-02-150405"

// Options configure a Saver.
type Options struct {
	Prefix   string
	Clock    func() time.Time
	Provider CaptureProvider
}

// Saver grabs a single frame and writes it into a backup directory.
type Saver struct {
	prefix   string
	clock    func() time.Time
	provider CaptureProvider
}

// Result summarises a saved capture.
type Result struct {
	ImagePath string
	Metadata  Metadata
}

// NewSaver validates options and returns a saver instance.
func NewSaver(opts Options) (*Saver, error) {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "screenshot"
	}
	if filepath.Base(prefix) != prefix {
		return nil, fmt.Errorf("prefix %q must not contain path separators", prefix)
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	provider := opts.Provider
	if provider == nil {
		provider = DisplayProvider{Display: AllDisplays}
	}
	return &Saver{prefix: prefix, clock: clock, provider: provider}, nil
}

// Capture grabs one frame and writes it beneath destDir, which must already
// exist. The filename embeds second-granularity local time, so two captures
// within the same second write the same path and the later one wins.
func (s *Saver) Capture(ctx context.Context, destDir string) (Result, error) {
	if destDir == "" {
		return Result{}, errors.New("destination directory must not be empty")
	}
	if ctx != nil && ctx.Err() != nil {
		return Result{}, ctx.Err()
	}

	timestamp := s.clock()
	name := fmt.Sprintf("%s-%s.png", s.prefix, timestamp.Format(TimestampLayout))
	imagePath := filepath.Join(destDir, name)

	capture, err := s.provider.Grab(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("capture frame: %w", err)
	}
	if len(capture.PNG) == 0 {
		return Result{}, errors.New("capture provider returned empty PNG data")
	}

	if capture.Metadata.CapturedAt.IsZero() {
		capture.Metadata.CapturedAt = timestamp
	}

	if err := os.WriteFile(imagePath, capture.PNG, 0o644); err != nil {
		return Result{}, fmt.Errorf("write screenshot %q: %w", name, err)
	}
	capture.Metadata.ImagePath = filepath.Base(imagePath)

	return Result{ImagePath: imagePath, Metadata: capture.Metadata}, nil
}
