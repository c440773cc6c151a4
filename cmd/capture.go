package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/souljazzfunk/ocr-kindle/internal/capture"
	"github.com/souljazzfunk/ocr-kindle/internal/config"
	"github.com/souljazzfunk/ocr-kindle/internal/session"
)

func newCaptureCmd() *cobra.Command {
	cfg := config.Defaults()
	var direction, continueFrom string

	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Capture e-reader pages into a session folder",
		Long: `Captures the focused e-reader's pages one by one, turning pages with arrow
keys and stopping when repeated captures show the book has run out of pages or
when the page budget is spent.

With --continue-from, capture resumes into an existing session folder and page
numbering continues after the highest page already on disk.`,
		Example: `  # Capture up to 200 pages into a fresh session folder
  ocr-kindle capture --pages 200

  # Resume an interrupted book
  ocr-kindle capture --continue-from kindle_20260829_101500 --pages 200`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Direction = config.Direction(direction)
			if err := cfg.Validate(); err != nil {
				return err
			}
			sess, result, err := runCapture(cmd.Context(), cfg, continueFrom)
			if sess != nil {
				defer sess.Release()
			}
			if err != nil {
				return err
			}
			printCaptureSummary(sess, result)
			return nil
		},
	}

	addCaptureFlags(cmd, &cfg, &direction, &continueFrom)
	return cmd
}

// runCapture resolves the session (fresh or resumed), locks it, and runs the
// capture loop. The returned session still holds its lock.
func runCapture(ctx context.Context, cfg config.Config, continueFrom string) (*session.Session, capture.Result, error) {
	surface, err := capture.NewScreenSurface(cfg.Margins)
	if err != nil {
		return nil, capture.Result{}, err
	}

	var sess *session.Session
	if continueFrom != "" {
		sess, err = session.Resume(continueFrom, cfg, surface.Fingerprint())
	} else {
		sess, err = session.New(cfg.OutputRoot, cfg, surface.Fingerprint())
	}
	if err != nil {
		return nil, capture.Result{}, err
	}
	if err := sess.Acquire(); err != nil {
		return nil, capture.Result{}, err
	}

	slog.Info("Starting capture", "folder", sess.Folder, "start_index", sess.StartIndex, "max_pages", cfg.MaxPages)

	loop := &capture.Loop{
		Surface:     surface,
		Advancer:    capture.NewKeyAdvancer(cfg.Direction),
		Detector:    capture.NewDetector(cfg.SimilarityThreshold),
		RunLength:   cfg.DuplicateRunLength,
		SettleDelay: cfg.SettleDelay,
	}
	result, err := loop.Run(ctx, sess, cfg.MaxPages)
	if err != nil {
		return sess, result, fmt.Errorf("capture session: %w", err)
	}
	return sess, result, nil
}

func printCaptureSummary(sess *session.Session, result capture.Result) {
	fmt.Printf("\nCaptured %d page(s) into %s (%s)\n", len(result.Pages), sess.Folder, result.Outcome)
	if result.Outcome == capture.PageBudget {
		fmt.Printf("Resume with: ocr-kindle capture --continue-from %s\n", sess.Folder)
	}
}
