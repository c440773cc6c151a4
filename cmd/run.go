package cmd

import (
	"github.com/spf13/cobra"

	"github.com/souljazzfunk/ocr-kindle/internal/config"
)

func newRunCmd() *cobra.Command {
	cfg := config.Defaults()
	var direction, continueFrom string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Capture and process a book end to end",
		Long: `Captures pages from the focused e-reader, then immediately OCRs the session,
assembles the document, and exports the artifacts. Equivalent to running
capture followed by process on the new session folder.`,
		Example: `  # Capture up to 300 pages and process them with Gemini
  ocr-kindle run --pages 300

  # Continue an interrupted book and finish it
  ocr-kindle run --continue-from kindle_20260829_101500`,
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

			summary, err := processFolder(cmd.Context(), cfg, sess)
			if err != nil {
				return err
			}
			summary.print()
			return nil
		},
	}

	addCaptureFlags(cmd, &cfg, &direction, &continueFrom)
	addProcessingFlags(cmd, &cfg)
	return cmd
}
