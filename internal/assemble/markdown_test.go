package assemble

import (
	"strings"
	"testing"
)

func TestHasStructure(t *testing.T) {
	tests := []struct {
		name     string
		md       string
		expected bool
	}{
		{"heading present", "# Title\n\nSome body.\n", true},
		{"deep heading", "### Section\n\ntext", true},
		{"plain text", "no markdown structure at all", false},
		{"emphasis only", "some **bold** text without headings", false},
		{"empty", "", false},
		{"whitespace", "   \n\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasStructure(tt.md); got != tt.expected {
				t.Errorf("HasStructure(%q) = %v, expected %v", tt.md, got, tt.expected)
			}
		})
	}
}

func TestFallbackMarkdown(t *testing.T) {
	raw := "The Great Gatsby\n\nChapter 1\n\nIn my younger and more vulnerable years my father gave me\nsome advice that I have been turning over in my mind ever since.\n"
	md := FallbackMarkdown(raw)

	if !strings.HasPrefix(md, "# The Great Gatsby\n") {
		t.Errorf("Expected document heading, got %q", md)
	}
	if !strings.Contains(md, "## Chapter 1\n") {
		t.Errorf("Expected section heading for chapter, got %q", md)
	}
	if !strings.Contains(md, "years my father gave me some advice") {
		t.Errorf("Expected paragraph lines joined, got %q", md)
	}
	if !HasStructure(md) {
		t.Error("Expected fallback output to satisfy the structure check")
	}
}

func TestFallbackMarkdownParagraphOnly(t *testing.T) {
	raw := "It is a truth universally acknowledged, that a single man in possession of a good fortune, must be in want of a wife.\n"
	md := FallbackMarkdown(raw)
	if strings.Contains(md, "#") {
		t.Errorf("Expected no headings for a lone long sentence, got %q", md)
	}
	if !strings.HasSuffix(md, "\n") {
		t.Error("Expected trailing newline")
	}
}

func TestFallbackMarkdownEmpty(t *testing.T) {
	if md := FallbackMarkdown(""); md != "" {
		t.Errorf("Expected empty output for empty input, got %q", md)
	}
}
