package pipeline

import (
	"strings"
	"testing"
)

func TestSynthesizeSectionOrder(t *testing.T) {
	result := synthesize(
		"A cooking show episode.",
		"today we make pasta",
		[]string{"Key moment: the pan catches fire", "Key moment: the dish is plated"},
		125, 8, []byte("jpeg"),
	)

	content := result.CombinedContent
	sections := []string{
		"=== Video Analysis ===",
		"Visual Summary:",
		"A cooking show episode.",
		"Key Moments:",
		"1. Key moment: the pan catches fire",
		"2. Key moment: the dish is plated",
		"Audio Transcript:",
		"today we make pasta",
		"Duration: 2:05 | Frames analyzed: 8",
	}

	pos := -1
	for _, section := range sections {
		idx := strings.Index(content, section)
		if idx == -1 {
			t.Fatalf("combined content missing %q:\n%s", section, content)
		}
		if idx < pos {
			t.Errorf("section %q out of order", section)
		}
		pos = idx
	}
}

func TestSynthesizeWithoutKeyMoments(t *testing.T) {
	result := synthesize("A summary.", "a transcript", nil, 30, 5, nil)

	if !strings.Contains(result.CombinedContent, "No key moments identified.") {
		t.Error("empty key moments should render the fixed line")
	}
}

func TestSynthesizeDoubleDegraded(t *testing.T) {
	result := synthesize(PlaceholderVisualSummary, PlaceholderTranscript, nil, 0, 0, nil)

	if result.CombinedContent == "" {
		t.Fatal("combined content must be non-empty under double degradation")
	}
	for _, marker := range []string{"=== Video Analysis ===", "Visual Summary:", "Audio Transcript:", "Duration: 0:00"} {
		if !strings.Contains(result.CombinedContent, marker) {
			t.Errorf("missing structural marker %q", marker)
		}
	}
	if result.Confidence != FixedConfidence {
		t.Errorf("confidence = %f, want %f", result.Confidence, FixedConfidence)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{5, "0:05"},
		{59.9, "0:59"},
		{60, "1:00"},
		{61.5, "1:01"},
		{125, "2:05"},
		{600, "10:00"},
		{3725, "62:05"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.seconds); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
