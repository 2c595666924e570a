package screenshots

import (
	"context"
	"time"
)

// CaptureProvider produces a single screenshot frame.
type CaptureProvider interface {
	Grab(context.Context) (FrameCapture, error)
}

// FrameCapture bundles the encoded PNG bytes with metadata.
type FrameCapture struct {
	PNG      []byte
	Metadata Metadata
}

// Metadata captures details about a screenshot frame.
type Metadata struct {
	CapturedAt time.Time `json:"captured_at"`
	Backend    string    `json:"backend"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	ImagePath  string    `json:"image_path,omitempty"`
}
