package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/souljazzfunk/ocr-kindle/internal/config"
	"github.com/souljazzfunk/ocr-kindle/internal/ocr"
	"github.com/souljazzfunk/ocr-kindle/internal/session"
)

// runSummary is the user-visible outcome of a processing run, printed to the
// terminal and persisted as run_summary.yaml in the session folder.
type runSummary struct {
	Folder      string    `yaml:"folder"`
	Provider    string    `yaml:"provider"`
	Model       string    `yaml:"model"`
	Timestamp   time.Time `yaml:"timestamp"`
	TotalPages  int       `yaml:"totalpages"`
	OCRSuccess  int       `yaml:"ocrsuccess"`
	OCRFailed   int       `yaml:"ocrfailed"`
	FailedPages []int     `yaml:"failedpages,omitempty"`
	Artifacts   []string  `yaml:"artifacts"`
	Synced      []string  `yaml:"synced,omitempty"`
}

func newRunSummary(sess *session.Session, cfg config.Config, records []ocr.Record, artifacts []string) *runSummary {
	s := &runSummary{
		Folder:     sess.Folder,
		Provider:   cfg.Provider,
		Model:      cfg.Model,
		Timestamp:  time.Now(),
		TotalPages: len(records),
		Artifacts:  artifacts,
	}
	for _, record := range records {
		if record.Status == ocr.StatusSuccess {
			s.OCRSuccess++
		} else {
			s.OCRFailed++
			s.FailedPages = append(s.FailedPages, record.PageIndex)
		}
	}
	return s
}

func (s *runSummary) write(folder string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal run summary: %w", err)
	}
	return os.WriteFile(filepath.Join(folder, "run_summary.yaml"), data, 0o644)
}

func (s *runSummary) print() {
	fmt.Printf("\nProcessed %d page(s) in %s\n", s.TotalPages, s.Folder)
	fmt.Printf("OCR: %d succeeded, %d failed\n", s.OCRSuccess, s.OCRFailed)
	if len(s.FailedPages) > 0 {
		fmt.Printf("Failed pages: %v (re-run process to retry)\n", s.FailedPages)
	}
	fmt.Println("Artifacts:")
	for _, artifact := range s.Artifacts {
		fmt.Printf("  %s\n", artifact)
	}
	for _, copied := range s.Synced {
		fmt.Printf("  synced: %s\n", copied)
	}
}
