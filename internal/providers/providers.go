package providers

import (
	"context"
)

// Request carries one generation call to an LLM provider. ImagePNG is set for
// vision requests (page OCR) and nil for text-only ones (markdown conversion,
// title generation).
type Request struct {
	Prompt      string
	ImagePNG    []byte
	Model       string
	Temperature float64
}

// Provider defines the interface for an LLM provider.
type Provider interface {
	Generate(ctx context.Context, req Request) (string, error)
}
