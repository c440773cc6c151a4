package session

import (
	"fmt"
	"regexp"
	"strconv"
)

// Page images and OCR records are zero-padded to three digits so lexical and
// numeric ordering agree. The scan patterns also accept unpadded indices left
// behind by older runs; both forms resolve to the same numeric order.
var (
	pageImagePattern = regexp.MustCompile(`^page_(\d+)\.png$`)
	ocrRecordPattern = regexp.MustCompile(`^ocr_(\d+)\.txt$`)
)

// PageImageName returns the on-disk name for the page image at index.
func PageImageName(index int) string {
	return fmt.Sprintf("page_%03d.png", index)
}

// OCRRecordName returns the on-disk name for the OCR record at index.
func OCRRecordName(index int) string {
	return fmt.Sprintf("ocr_%03d.txt", index)
}

// PageImageIndex extracts the numeric index from a page image filename.
// Returns false for names that are not page images.
func PageImageIndex(name string) (int, bool) {
	return matchIndex(pageImagePattern, name)
}

// OCRRecordIndex extracts the numeric index from an OCR record filename.
func OCRRecordIndex(name string) (int, bool) {
	return matchIndex(ocrRecordPattern, name)
}

func matchIndex(pattern *regexp.Regexp, name string) (int, bool) {
	m := pattern.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	index, err := strconv.Atoi(m[1])
	if err != nil || index < 1 {
		return 0, false
	}
	return index, true
}
