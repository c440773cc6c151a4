package session

import (
	"sort"
	"testing"
)

func TestPageImageName(t *testing.T) {
	tests := []struct {
		index    int
		expected string
	}{
		{1, "page_001.png"},
		{37, "page_037.png"},
		{100, "page_100.png"},
		{1000, "page_1000.png"},
	}
	for _, tt := range tests {
		if got := PageImageName(tt.index); got != tt.expected {
			t.Errorf("PageImageName(%d) = %q, expected %q", tt.index, got, tt.expected)
		}
	}
}

// Zero-padded names must order the same way lexically and numerically.
func TestPageImageNamesSortNumerically(t *testing.T) {
	names := []string{PageImageName(100), PageImageName(2), PageImageName(10)}
	sort.Strings(names)

	expected := []string{"page_002.png", "page_010.png", "page_100.png"}
	for i := range expected {
		if names[i] != expected[i] {
			t.Fatalf("Expected lexical order %v, got %v", expected, names)
		}
	}
}

func TestPageImageIndex(t *testing.T) {
	tests := []struct {
		name  string
		index int
		ok    bool
	}{
		{"page_001.png", 1, true},
		{"page_42.png", 42, true},
		{"page_0.png", 0, false},
		{"ocr_001.txt", 0, false},
		{"page_001.png.bak", 0, false},
		{"screenshot_001.png", 0, false},
	}
	for _, tt := range tests {
		index, ok := PageImageIndex(tt.name)
		if ok != tt.ok || index != tt.index {
			t.Errorf("PageImageIndex(%q) = (%d, %v), expected (%d, %v)", tt.name, index, ok, tt.index, tt.ok)
		}
	}
}

func TestOCRRecordIndex(t *testing.T) {
	if index, ok := OCRRecordIndex("ocr_017.txt"); !ok || index != 17 {
		t.Errorf("OCRRecordIndex(ocr_017.txt) = (%d, %v), expected (17, true)", index, ok)
	}
	if _, ok := OCRRecordIndex("ocr_merged.txt"); ok {
		t.Error("Expected merged output not to parse as a record index")
	}
}
