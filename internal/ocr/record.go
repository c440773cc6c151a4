package ocr

import (
	"fmt"
	"os"
	"strings"
)

// Status marks whether OCR succeeded for a page.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
)

// Record is the per-page OCR result. Records are persisted individually the
// moment they are produced; that file is the fault-tolerance boundary, so a
// failure on one page never loses or blocks the others.
type Record struct {
	PageIndex   int
	Text        string
	Status      Status
	ErrorDetail string
}

// WriteRecord persists r to path. The first line is the status marker, the
// remainder is the recognized text exactly as the provider returned it, so a
// read-back reproduces the record byte for byte.
func WriteRecord(path string, r Record) error {
	var b strings.Builder
	switch r.Status {
	case StatusSuccess:
		b.WriteString("SUCCESS\n")
		b.WriteString(r.Text)
	case StatusFailed:
		b.WriteString("FAILED: ")
		b.WriteString(strings.ReplaceAll(r.ErrorDetail, "\n", " "))
		b.WriteString("\n")
	default:
		return fmt.Errorf("record for page %d has unknown status %q", r.PageIndex, r.Status)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write OCR record for page %d: %w", r.PageIndex, err)
	}
	return nil
}

// ReadRecord loads the record for pageIndex from path. Files written by older
// runs carry no status marker; non-empty ones are read as successful text and
// empty ones as failures so recovery re-runs them.
func ReadRecord(path string, pageIndex int) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, err
	}
	content := string(data)
	line, rest, _ := strings.Cut(content, "\n")

	switch {
	case line == "SUCCESS":
		return Record{PageIndex: pageIndex, Status: StatusSuccess, Text: rest}, nil
	case strings.HasPrefix(line, "FAILED"):
		detail := strings.TrimPrefix(line, "FAILED")
		detail = strings.TrimPrefix(detail, ":")
		return Record{PageIndex: pageIndex, Status: StatusFailed, ErrorDetail: strings.TrimSpace(detail)}, nil
	case strings.TrimSpace(content) == "":
		return Record{PageIndex: pageIndex, Status: StatusFailed, ErrorDetail: "empty legacy record"}, nil
	default:
		return Record{PageIndex: pageIndex, Status: StatusSuccess, Text: content}, nil
	}
}
