package export

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestCopyArtifacts(t *testing.T) {
	src := t.TempDir()
	txt := filepath.Join(src, "Book.txt")
	md := filepath.Join(src, "Book.md")
	writeFile(t, txt, "plain text")
	writeFile(t, md, "# markdown")

	target := filepath.Join(t.TempDir(), "drive", "books")
	copied, err := Copy([]string{txt, md}, target)
	if err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if len(copied) != 2 {
		t.Fatalf("Expected 2 copied files, got %d", len(copied))
	}
	data, err := os.ReadFile(filepath.Join(target, "Book.md"))
	if err != nil {
		t.Fatalf("read copied file: %v", err)
	}
	if string(data) != "# markdown" {
		t.Errorf("Expected copied content preserved, got %q", data)
	}
}

// A missing artifact is reported but must not stop the remaining copies, and
// the local originals stay untouched.
func TestCopyPartialFailure(t *testing.T) {
	src := t.TempDir()
	good := filepath.Join(src, "Book.txt")
	writeFile(t, good, "content")
	missing := filepath.Join(src, "gone.pdf")

	target := t.TempDir()
	copied, err := Copy([]string{missing, good}, target)
	if err == nil {
		t.Fatal("Expected error for the missing artifact")
	}
	if len(copied) != 1 || filepath.Base(copied[0]) != "Book.txt" {
		t.Fatalf("Expected the good artifact to be copied anyway, got %v", copied)
	}
	if _, err := os.Stat(good); err != nil {
		t.Errorf("Expected local artifact untouched: %v", err)
	}
}

func TestCopyNoTarget(t *testing.T) {
	if _, err := Copy([]string{"x"}, ""); err == nil {
		t.Fatal("Expected error when no sync folder is configured")
	}
}
