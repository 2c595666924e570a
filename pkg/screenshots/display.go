package screenshots

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"time"

	"github.com/kbinani/screenshot"
)

// AllDisplays selects the union of every active display.
const AllDisplays = -1

// ErrNoDisplay reports that no active display could be found.
var ErrNoDisplay = errors.New("no active display found")

// numActiveDisplays is declared for swapping in tests.
var numActiveDisplays = screenshot.NumActiveDisplays

// DisplayProvider captures the physical display contents through the
// platform backend (CoreGraphics, GDI, X11 or the Wayland portal).
type DisplayProvider struct {
	// Display selects a single display index; AllDisplays captures the
	// union of all active displays.
	Display int
}

func (p DisplayProvider) Grab(ctx context.Context) (FrameCapture, error) {
	if ctx != nil && ctx.Err() != nil {
		return FrameCapture{}, ctx.Err()
	}

	count := numActiveDisplays()
	if count == 0 {
		return FrameCapture{}, ErrNoDisplay
	}
	if p.Display >= count {
		return FrameCapture{}, fmt.Errorf("display %d out of range, %d active", p.Display, count)
	}

	bounds := screenshot.GetDisplayBounds(0)
	if p.Display == AllDisplays {
		for i := 1; i < count; i++ {
			bounds = bounds.Union(screenshot.GetDisplayBounds(i))
		}
	} else {
		bounds = screenshot.GetDisplayBounds(p.Display)
	}

	img, err := screenshot.CaptureRect(bounds)
	if err != nil {
		return FrameCapture{}, fmt.Errorf("capture display: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return FrameCapture{}, fmt.Errorf("encode png: %w", err)
	}

	return FrameCapture{
		PNG: buf.Bytes(),
		Metadata: Metadata{
			CapturedAt: time.Now(),
			Backend:    backendName(),
			Width:      bounds.Dx(),
			Height:     bounds.Dy(),
		},
	}, nil
}
