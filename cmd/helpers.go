package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/souljazzfunk/ocr-kindle/internal/config"
	"github.com/souljazzfunk/ocr-kindle/internal/gemini"
	"github.com/souljazzfunk/ocr-kindle/internal/ollama"
	"github.com/souljazzfunk/ocr-kindle/internal/openai"
	"github.com/souljazzfunk/ocr-kindle/internal/providers"
)

// newProvider resolves the configured provider name to an implementation.
func newProvider(name string) (providers.Provider, error) {
	switch name {
	case "gemini":
		return gemini.New(), nil
	case "openai":
		return openai.New(), nil
	case "ollama":
		return ollama.New(), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", name)
	}
}

// resolveModel fills in the per-provider default when no model was given.
func resolveModel(cfg *config.Config) {
	if cfg.Model == "" {
		cfg.Model = config.DefaultModel(cfg.Provider)
	}
}

// addProcessingFlags registers the flags shared by process and run.
func addProcessingFlags(cmd *cobra.Command, cfg *config.Config) {
	cmd.Flags().StringVar(&cfg.Provider, "provider", cfg.Provider, "OCR provider (gemini, openai, ollama)")
	cmd.Flags().StringVar(&cfg.Model, "model", "", "Model name (defaults per provider)")
	cmd.Flags().IntVar(&cfg.Concurrency, "concurrency", cfg.Concurrency, "Concurrent OCR calls")
	cmd.Flags().StringVar(&cfg.SyncFolder, "sync-folder", cfg.SyncFolder, "Folder watched by the cloud sync client")
	cmd.Flags().BoolVar(&cfg.SkipPDF, "skip-pdf", false, "Skip building the page-image PDF")
	cmd.Flags().BoolVar(&cfg.SkipSync, "skip-sync", false, "Skip copying artifacts to the sync folder")
}

// addCaptureFlags registers the flags shared by capture and run.
func addCaptureFlags(cmd *cobra.Command, cfg *config.Config, direction *string, continueFrom *string) {
	cmd.Flags().IntVar(&cfg.MaxPages, "pages", cfg.MaxPages, "Maximum pages to capture this session")
	cmd.Flags().StringVar(direction, "direction", string(cfg.Direction), "Page turn direction (forward or backward)")
	cmd.Flags().StringVar(continueFrom, "continue-from", "", "Existing session folder to resume into")
	cmd.Flags().StringVar(&cfg.OutputRoot, "output-root", cfg.OutputRoot, "Directory fresh session folders are created under")
	cmd.Flags().IntVar(&cfg.Margins.Top, "margin-top", cfg.Margins.Top, "Pixels excluded from the top of the display")
	cmd.Flags().IntVar(&cfg.Margins.Bottom, "margin-bottom", cfg.Margins.Bottom, "Pixels excluded from the bottom of the display")
	cmd.Flags().IntVar(&cfg.Margins.Left, "margin-left", cfg.Margins.Left, "Pixels excluded from the left of the display")
	cmd.Flags().IntVar(&cfg.Margins.Right, "margin-right", cfg.Margins.Right, "Pixels excluded from the right of the display")
	cmd.Flags().DurationVar(&cfg.SettleDelay, "settle", cfg.SettleDelay, "Wait after each page turn before capturing")
	cmd.Flags().Float64Var(&cfg.SimilarityThreshold, "similarity-threshold", cfg.SimilarityThreshold, "Similarity above which consecutive captures count as the same page")
	cmd.Flags().IntVar(&cfg.DuplicateRunLength, "duplicate-run", cfg.DuplicateRunLength, "Consecutive same-page verdicts that end the book")
}
