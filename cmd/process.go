package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/souljazzfunk/ocr-kindle/internal/assemble"
	"github.com/souljazzfunk/ocr-kindle/internal/config"
	"github.com/souljazzfunk/ocr-kindle/internal/export"
	"github.com/souljazzfunk/ocr-kindle/internal/ocr"
	"github.com/souljazzfunk/ocr-kindle/internal/pdfbook"
	"github.com/souljazzfunk/ocr-kindle/internal/session"
)

func newProcessCmd() *cobra.Command {
	cfg := config.Defaults()

	cmd := &cobra.Command{
		Use:   "process <session-folder>",
		Short: "OCR a session folder and assemble the document",
		Long: `Runs per-page OCR over the page images in a session folder, merges the
results in page order, derives a title, converts the text to markdown, and
copies the finished artifacts to the sync folder.

Re-running on a partially processed folder only re-attempts pages whose OCR
failed or never ran; pages that already succeeded are kept as-is.`,
		Example: `  # OCR and assemble a captured session
  ocr-kindle process kindle_20260829_101500

  # Re-try failed pages with more parallelism, keep artifacts local
  ocr-kindle process kindle_20260829_101500 --concurrency 4 --skip-sync`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			sess, err := session.Open(args[0])
			if err != nil {
				return err
			}
			if err := sess.Acquire(); err != nil {
				return err
			}
			defer sess.Release()

			summary, err := processFolder(cmd.Context(), cfg, sess)
			if err != nil {
				return err
			}
			summary.print()
			return nil
		},
	}

	addProcessingFlags(cmd, &cfg)
	return cmd
}

// processFolder is the OCR -> merge -> assemble -> package -> export phase.
// Per-page OCR failures and PDF/export trouble are warnings; the run only
// fails when no pages exist, every page failed OCR, or the merged text comes
// out empty.
func processFolder(ctx context.Context, cfg config.Config, sess *session.Session) (*runSummary, error) {
	resolveModel(&cfg)
	provider, err := newProvider(cfg.Provider)
	if err != nil {
		return nil, err
	}

	pipeline := &ocr.Pipeline{
		Provider:    provider,
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		Concurrency: cfg.Concurrency,
	}
	records, err := pipeline.ProcessFolder(ctx, sess)
	if err != nil {
		return nil, err
	}
	success := 0
	for _, record := range records {
		if record.Status == ocr.StatusSuccess {
			success++
		}
	}
	if success == 0 {
		return nil, fmt.Errorf("OCR failed for all %d page(s) in %s, no document to assemble", len(records), sess.Folder)
	}

	merged, err := ocr.WriteMerged(sess.Folder, records)
	if err != nil {
		return nil, err
	}
	if merged == "" {
		return nil, fmt.Errorf("no text extracted from %d page(s) in %s", len(records), sess.Folder)
	}

	assembler := &assemble.Assembler{Provider: provider, Model: cfg.Model, Temperature: cfg.Temperature}
	doc := assembler.Assemble(ctx, merged)

	txtPath := filepath.Join(sess.Folder, assemble.ArtifactName(doc.Title, ".txt"))
	if err := os.WriteFile(txtPath, []byte(doc.Text), 0o644); err != nil {
		return nil, fmt.Errorf("write text artifact: %w", err)
	}
	mdPath := filepath.Join(sess.Folder, assemble.ArtifactName(doc.Title, ".md"))
	if err := os.WriteFile(mdPath, []byte(doc.Markdown), 0o644); err != nil {
		return nil, fmt.Errorf("write markdown artifact: %w", err)
	}
	artifacts := []string{txtPath, mdPath}

	if !cfg.SkipPDF {
		indices, err := session.PageIndices(sess.Folder)
		if err != nil {
			return nil, err
		}
		paths := make([]string, 0, len(indices))
		for _, index := range indices {
			paths = append(paths, sess.PagePath(index))
		}
		pdfPath := filepath.Join(sess.Folder, assemble.ArtifactName(doc.Title, ".pdf"))
		if err := pdfbook.Build(ctx, paths, pdfPath); err != nil {
			slog.Warn("PDF packaging failed, other artifacts are unaffected", "err", err)
		} else {
			artifacts = append(artifacts, pdfPath)
		}
	}

	summary := newRunSummary(sess, cfg, records, artifacts)

	if !cfg.SkipSync && cfg.SyncFolder != "" {
		copied, err := export.Copy(artifacts, cfg.SyncFolder)
		if err != nil {
			slog.Warn("Export to sync folder incomplete, local artifacts remain valid", "err", err)
		}
		summary.Synced = copied
	}

	if err := summary.write(sess.Folder); err != nil {
		slog.Warn("Failed to write run summary", "err", err)
	}
	return summary, nil
}
