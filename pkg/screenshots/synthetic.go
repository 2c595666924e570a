package screenshots

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"time"
)

// SyntheticProvider renders a deterministic gradient frame. It stands in
// for the display backend on headless hosts and in automated tests.
type SyntheticProvider struct {
	Clock func() time.Time
}

func (p SyntheticProvider) Grab(ctx context.Context) (FrameCapture, error) {
	if ctx != nil && ctx.Err() != nil {
		return FrameCapture{}, ctx.Err()
	}

	const width, height = 640, 400
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 40, G: uint8(x % 255), B: uint8(y % 255), A: 255})
		}
	}

	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		return FrameCapture{}, err
	}

	clock := p.Clock
	if clock == nil {
		clock = time.Now
	}
	return FrameCapture{
		PNG: buf.Bytes(),
		Metadata: Metadata{
			CapturedAt: clock(),
			Backend:    "synthetic",
			Width:      width,
			Height:     height,
		},
	}, nil
}
