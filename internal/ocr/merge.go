package ocr

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// MergedName is the filename of the merged OCR text within a session folder.
const MergedName = "ocr_merged.txt"

// MergeRecords joins per-page text in page order. Processing (and recovery)
// may complete pages out of order, so ordering comes from the page index, not
// completion order. Failed pages leave a visible marker instead of silently
// closing the gap. The output is deterministic: merging an unchanged record
// set yields byte-identical text.
func MergeRecords(records []Record) string {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].PageIndex < sorted[j].PageIndex })

	blocks := make([]string, 0, len(sorted))
	for _, record := range sorted {
		if record.Status == StatusSuccess {
			if text := strings.TrimSpace(record.Text); text != "" {
				blocks = append(blocks, text)
			}
			continue
		}
		blocks = append(blocks, fmt.Sprintf("[page %d unavailable]", record.PageIndex))
	}
	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

// WriteMerged merges records and writes the result into folder.
func WriteMerged(folder string, records []Record) (string, error) {
	merged := MergeRecords(records)
	path := filepath.Join(folder, MergedName)
	if err := os.WriteFile(path, []byte(merged), 0o644); err != nil {
		return "", fmt.Errorf("write merged OCR text: %w", err)
	}
	return merged, nil
}
