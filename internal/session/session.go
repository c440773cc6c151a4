package session

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"

	"github.com/souljazzfunk/ocr-kindle/internal/config"
)

const (
	manifestName = "session.yaml"
	lockName     = "capture.lock"
)

// Manifest is the session metadata persisted alongside the page images so a
// later continuation run can sanity-check the context it resumes into.
type Manifest struct {
	CreatedAt   time.Time        `yaml:"created_at"`
	Direction   config.Direction `yaml:"direction"`
	Margins     config.Margins   `yaml:"margins"`
	Fingerprint string           `yaml:"fingerprint,omitempty"`
}

// Session is one capture run bound to a folder. Immutable after creation;
// StartIndex reflects continuation state resolved at construction time.
type Session struct {
	Folder     string
	StartIndex int
	Manifest   Manifest

	lock *flock.Flock
}

// New allocates a fresh timestamped session folder under root and starts
// numbering at 1.
func New(root string, cfg config.Config, fingerprint string) (*Session, error) {
	folder := filepath.Join(root, "kindle_"+time.Now().Format("20060102_150405"))
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return nil, fmt.Errorf("create session folder: %w", err)
	}

	s := &Session{
		Folder:     folder,
		StartIndex: 1,
		Manifest: Manifest{
			CreatedAt:   time.Now(),
			Direction:   cfg.Direction,
			Margins:     cfg.Margins,
			Fingerprint: fingerprint,
		},
	}
	if err := s.writeManifest(); err != nil {
		return nil, err
	}
	return s, nil
}

// Resume continues a previous session in an existing folder. The folder must
// exist; missing folders are a fatal configuration error, never silently
// replaced by a fresh one. Numbering continues after the highest page index
// already on disk, or at 1 (with a warning) when the folder holds no pages.
func Resume(folder string, cfg config.Config, fingerprint string) (*Session, error) {
	info, err := os.Stat(folder)
	if err != nil {
		return nil, fmt.Errorf("continuation folder %s: %w", folder, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("continuation folder %s is not a directory", folder)
	}

	indices, err := PageIndices(folder)
	if err != nil {
		return nil, err
	}
	start := 1
	if len(indices) > 0 {
		start = indices[len(indices)-1] + 1
	} else {
		slog.Warn("Continuation folder has no page images, starting at 1", "folder", folder)
	}

	s := &Session{
		Folder:     folder,
		StartIndex: start,
		Manifest: Manifest{
			CreatedAt:   time.Now(),
			Direction:   cfg.Direction,
			Margins:     cfg.Margins,
			Fingerprint: fingerprint,
		},
	}

	if prev, err := readManifest(folder); err == nil {
		if prev.Fingerprint != "" && fingerprint != "" && prev.Fingerprint != fingerprint {
			slog.Warn("Display fingerprint differs from the original session",
				"folder", folder, "was", prev.Fingerprint, "now", fingerprint)
		}
		s.Manifest.CreatedAt = prev.CreatedAt
	}
	if err := s.writeManifest(); err != nil {
		return nil, err
	}
	return s, nil
}

// Open attaches to an existing session folder without touching its manifest,
// for processing-only runs.
func Open(folder string) (*Session, error) {
	info, err := os.Stat(folder)
	if err != nil {
		return nil, fmt.Errorf("session folder %s: %w", folder, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("session folder %s is not a directory", folder)
	}
	s := &Session{Folder: folder, StartIndex: 1}
	if m, err := readManifest(folder); err == nil {
		s.Manifest = m
	}
	return s, nil
}

// Acquire takes the session's lock file. Another live run holding the lock is
// an error: two writers against one folder would race on page numbering.
func (s *Session) Acquire() error {
	lock := flock.New(filepath.Join(s.Folder, lockName))
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire session lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("session folder %s is in use by another run", s.Folder)
	}
	s.lock = lock
	return nil
}

// Release drops the session lock if held.
func (s *Session) Release() {
	if s.lock == nil {
		return
	}
	if err := s.lock.Unlock(); err != nil {
		slog.Warn("Failed to release session lock", "folder", s.Folder, "err", err)
	}
	s.lock = nil
}

// PagePath returns the absolute path of the page image at index.
func (s *Session) PagePath(index int) string {
	return filepath.Join(s.Folder, PageImageName(index))
}

// RecordPath returns the absolute path of the OCR record at index.
func (s *Session) RecordPath(index int) string {
	return filepath.Join(s.Folder, OCRRecordName(index))
}

// PageIndices lists the page image indices present in folder, ascending.
func PageIndices(folder string) ([]int, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("scan session folder: %w", err)
	}
	var indices []int
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if index, ok := PageImageIndex(entry.Name()); ok {
			indices = append(indices, index)
		}
	}
	sort.Ints(indices)
	return indices, nil
}

func (s *Session) writeManifest() error {
	data, err := yaml.Marshal(s.Manifest)
	if err != nil {
		return fmt.Errorf("marshal session manifest: %w", err)
	}
	path := filepath.Join(s.Folder, manifestName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write session manifest: %w", err)
	}
	return nil
}

func readManifest(folder string) (Manifest, error) {
	data, err := os.ReadFile(filepath.Join(folder, manifestName))
	if err != nil {
		return Manifest{}, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse session manifest: %w", err)
	}
	return m, nil
}
