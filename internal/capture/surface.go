package capture

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/kbinani/screenshot"

	"github.com/souljazzfunk/ocr-kindle/internal/config"
)

// Surface produces a PNG image of the current on-screen reading area.
type Surface interface {
	Capture() ([]byte, error)
}

// ScreenSurface captures the primary display cropped by the configured
// margins.
type ScreenSurface struct {
	region image.Rectangle
}

// NewScreenSurface resolves the capture region from the primary display
// bounds minus the margin insets.
func NewScreenSurface(margins config.Margins) (*ScreenSurface, error) {
	if screenshot.NumActiveDisplays() == 0 {
		return nil, fmt.Errorf("no active displays found")
	}
	bounds := screenshot.GetDisplayBounds(0)
	region := image.Rect(
		bounds.Min.X+margins.Left,
		bounds.Min.Y+margins.Top,
		bounds.Max.X-margins.Right,
		bounds.Max.Y-margins.Bottom,
	)
	if region.Dx() <= 0 || region.Dy() <= 0 {
		return nil, fmt.Errorf("margins %+v leave no capture area within display %v", margins, bounds)
	}
	return &ScreenSurface{region: region}, nil
}

// Capture grabs the region and encodes it as PNG.
func (s *ScreenSurface) Capture() ([]byte, error) {
	img, err := screenshot.CaptureRect(s.region)
	if err != nil {
		return nil, fmt.Errorf("capture screen region: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode capture as PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// Fingerprint describes the display geometry the surface captures from, used
// to flag continuation runs that resume under a different screen setup.
func (s *ScreenSurface) Fingerprint() string {
	return fmt.Sprintf("display0:%dx%d+%d+%d", s.region.Dx(), s.region.Dy(), s.region.Min.X, s.region.Min.Y)
}
