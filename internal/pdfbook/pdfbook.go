package pdfbook

import (
	"context"
	"fmt"
	"os"

	"github.com/wudi/pdfkit/builder"
	"github.com/wudi/pdfkit/writer"
)

// Build packages the ordered page images into a single PDF at outputPath.
// Each PDF page adopts its source image's pixel dimensions as points, so
// pages keep their aspect ratio uncropped.
func Build(ctx context.Context, imagePaths []string, outputPath string) error {
	if len(imagePaths) == 0 {
		return fmt.Errorf("no page images to package")
	}

	b := builder.NewBuilder()
	for _, path := range imagePaths {
		img, err := builder.ImageFromFile(path)
		if err != nil {
			return fmt.Errorf("load page image %s: %w", path, err)
		}
		w := float64(img.Width)
		h := float64(img.Height)
		b.NewPage(w, h).
			DrawImage(img, 0, 0, w, h, builder.ImageOptions{}).
			Finish()
	}

	doc, err := b.Build()
	if err != nil {
		return fmt.Errorf("build PDF document: %w", err)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create PDF file: %w", err)
	}
	if err := writer.NewWriter().Write(ctx, doc, f, writer.Config{}); err != nil {
		f.Close()
		return fmt.Errorf("write PDF: %w", err)
	}
	return f.Close()
}
