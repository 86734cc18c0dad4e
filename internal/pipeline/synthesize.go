package pipeline

import (
	"fmt"
	"strings"
)

// Placeholder values substituted when a stage degrades. The synthesis
// template is always fully populated so downstream indexing never sees an
// empty document.
const (
	PlaceholderVisualSummary = "Visual analysis was unavailable for this video."
	PlaceholderSummary       = "This video's visual content could not be summarized automatically."
	PlaceholderTranscript    = "[Audio transcription unavailable]"

	noKeyMomentsLine       = "No key moments identified."
	combinedContentHeader  = "=== Video Analysis ==="
	visualSummaryHeading   = "Visual Summary:"
	keyMomentsHeading      = "Key Moments:"
	audioTranscriptHeading = "Audio Transcript:"
)

// synthesize merges both analysis paths into the canonical document.
func synthesize(visualSummary, transcript string, keyMoments []string, durationSeconds float64, frameCount int, thumbnail []byte) *VideoAnalysisResult {
	var b strings.Builder

	b.WriteString(combinedContentHeader)
	b.WriteString("\n\n")

	b.WriteString(visualSummaryHeading)
	b.WriteString("\n")
	b.WriteString(visualSummary)
	b.WriteString("\n\n")

	b.WriteString(keyMomentsHeading)
	b.WriteString("\n")
	if len(keyMoments) == 0 {
		b.WriteString(noKeyMomentsLine)
		b.WriteString("\n")
	} else {
		for i, moment := range keyMoments {
			fmt.Fprintf(&b, "%d. %s\n", i+1, moment)
		}
	}
	b.WriteString("\n")

	b.WriteString(audioTranscriptHeading)
	b.WriteString("\n")
	b.WriteString(transcript)
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "---\nDuration: %s | Frames analyzed: %d\n",
		formatDuration(durationSeconds), frameCount)

	return &VideoAnalysisResult{
		VisualSummary:   visualSummary,
		AudioTranscript: transcript,
		KeyMoments:      keyMoments,
		DurationSeconds: durationSeconds,
		FrameCount:      frameCount,
		CombinedContent: b.String(),
		Confidence:      FixedConfidence,
		Thumbnail:       thumbnail,
	}
}

// formatDuration renders seconds as M:SS.
func formatDuration(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
