package export

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Copy places finished artifacts into the sync folder an external mechanism
// watches (e.g. a Drive-synced directory). The copy is fire-and-forget local
// I/O: per-file failures are reported but never invalidate the artifacts
// already on local disk.
func Copy(artifacts []string, target string) ([]string, error) {
	if target == "" {
		return nil, fmt.Errorf("no sync folder configured")
	}
	if err := os.MkdirAll(target, 0o755); err != nil {
		return nil, fmt.Errorf("create sync folder: %w", err)
	}

	var copied []string
	var firstErr error
	for _, artifact := range artifacts {
		dst := filepath.Join(target, filepath.Base(artifact))
		if err := copyFile(artifact, dst); err != nil {
			slog.Warn("Failed to copy artifact to sync folder", "artifact", artifact, "err", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		copied = append(copied, dst)
	}
	return copied, firstErr
}

func copyFile(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	written, err := io.Copy(out, in)
	if err != nil {
		return err
	}
	if written != srcInfo.Size() {
		_ = os.Remove(dst)
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcInfo.Size(), written)
	}
	return out.Close()
}
