package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"

	"github.com/souljazzfunk/ocr-kindle/internal/providers"
	"github.com/souljazzfunk/ocr-kindle/internal/session"
)

const ocrPrompt = `Extract only the main book/document content from this e-reader screenshot.

IGNORE:
- System toolbar, menu bar, status bar
- Time, date, battery indicators
- Window controls, buttons
- File menu items (File, Edit, View, etc.)
- Any UI elements outside the main reading area

EXTRACT ONLY:
- The actual book text content
- Chapter titles, headings
- Main body text, paragraphs
- Any text that is part of the actual book/document being read

IMPORTANT FORMATTING:
- Fix any unnecessary spacing between characters in words
- Ensure proper word spacing and sentence flow
- Join fragmented words that should be together
- Maintain natural paragraph breaks
- Keep the text readable and properly formatted

Return only the clean, properly-spaced text content without OCR artifacts or formatting instructions.`

// Pipeline runs per-page OCR over a session folder. Each page is processed
// independently and its record written to disk before the next result is
// considered, so one failed page never costs the rest.
type Pipeline struct {
	Provider    providers.Provider
	Model       string
	Temperature float64
	Concurrency int
}

// ProcessFolder OCRs every page image in the session folder that does not yet
// have a successful record. Re-running on a partially processed folder is
// recovery mode for free: existing SUCCESS records are kept, FAILED and
// missing ones are re-attempted.
func (p *Pipeline) ProcessFolder(ctx context.Context, sess *session.Session) ([]Record, error) {
	indices, err := session.PageIndices(sess.Folder)
	if err != nil {
		return nil, err
	}
	if len(indices) == 0 {
		return nil, fmt.Errorf("no page images found in %s", sess.Folder)
	}

	records := make(map[int]Record, len(indices))
	var pending []int
	for _, index := range indices {
		if existing, err := ReadRecord(sess.RecordPath(index), index); err == nil && existing.Status == StatusSuccess {
			records[index] = existing
			continue
		}
		pending = append(pending, index)
	}
	if len(records) > 0 {
		slog.Info("Reusing existing OCR records", "kept", len(records), "pending", len(pending))
	}

	concurrency := p.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, concurrency)
	results := make(chan Record, len(pending))

	for i, index := range pending {
		wg.Add(1)
		go func(position, index int) {
			defer wg.Done()
			semaphore <- struct{}{}        // Acquire
			defer func() { <-semaphore }() // Release

			slog.Info("Processing page", "index", index, "progress", fmt.Sprintf("%d/%d", position+1, len(pending)))
			results <- p.processPage(ctx, sess, index)
		}(i, index)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	for record := range results {
		records[record.PageIndex] = record
	}

	out := make([]Record, 0, len(records))
	for _, record := range records {
		out = append(out, record)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PageIndex < out[j].PageIndex })
	return out, nil
}

// processPage OCRs one page and persists its record immediately. Provider
// failures become FAILED records rather than errors.
func (p *Pipeline) processPage(ctx context.Context, sess *session.Session, index int) Record {
	record := Record{PageIndex: index, Status: StatusSuccess}

	image, err := os.ReadFile(sess.PagePath(index))
	if err != nil {
		record.Status = StatusFailed
		record.ErrorDetail = fmt.Sprintf("read page image: %v", err)
	} else {
		text, err := p.Provider.Generate(ctx, providers.Request{
			Prompt:      ocrPrompt,
			ImagePNG:    image,
			Model:       p.Model,
			Temperature: p.Temperature,
		})
		if err != nil {
			record.Status = StatusFailed
			record.ErrorDetail = err.Error()
			slog.Warn("OCR failed for page", "index", index, "err", err)
		} else {
			record.Text = text
		}
	}

	if err := WriteRecord(sess.RecordPath(index), record); err != nil {
		slog.Error("Failed to persist OCR record", "index", index, "err", err)
	}
	return record
}
