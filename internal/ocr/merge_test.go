package ocr

import (
	"strings"
	"testing"
)

func TestMergeRecordsOrdersByIndex(t *testing.T) {
	// Recovery can complete pages in any order; merge must not care.
	records := []Record{
		{PageIndex: 3, Status: StatusSuccess, Text: "third"},
		{PageIndex: 1, Status: StatusSuccess, Text: "first"},
		{PageIndex: 2, Status: StatusSuccess, Text: "second"},
	}
	merged := MergeRecords(records)
	expected := "first\n\nsecond\n\nthird\n"
	if merged != expected {
		t.Errorf("Expected %q, got %q", expected, merged)
	}
}

func TestMergeRecordsMarksFailedPages(t *testing.T) {
	records := []Record{
		{PageIndex: 1, Status: StatusSuccess, Text: "one"},
		{PageIndex: 2, Status: StatusFailed, ErrorDetail: "timeout"},
		{PageIndex: 3, Status: StatusSuccess, Text: "three"},
	}
	merged := MergeRecords(records)
	if !strings.Contains(merged, "[page 2 unavailable]") {
		t.Errorf("Expected a visible gap marker for page 2, got %q", merged)
	}
	if strings.Index(merged, "one") > strings.Index(merged, "[page 2 unavailable]") {
		t.Error("Expected gap marker to appear in page order")
	}
}

func TestMergeRecordsIdempotent(t *testing.T) {
	records := []Record{
		{PageIndex: 2, Status: StatusFailed},
		{PageIndex: 1, Status: StatusSuccess, Text: "  padded text \n"},
	}
	first := MergeRecords(records)
	second := MergeRecords(records)
	if first != second {
		t.Errorf("Expected byte-identical output on re-merge:\n%q\n%q", first, second)
	}
}

func TestMergeRecordsEmpty(t *testing.T) {
	if merged := MergeRecords(nil); merged != "" {
		t.Errorf("Expected empty merge for no records, got %q", merged)
	}
	records := []Record{{PageIndex: 1, Status: StatusSuccess, Text: "   "}}
	if merged := MergeRecords(records); merged != "" {
		t.Errorf("Expected empty merge for whitespace-only text, got %q", merged)
	}
}
