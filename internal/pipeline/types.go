package pipeline

// Stage names reported through ProgressFunc.
const (
	StageExtracting   = "extracting"
	StageAnalyzing    = "analyzing"
	StageSynthesizing = "synthesizing"
)

// FixedConfidence is attached to every result. No per-stage signal is
// computed, so a degraded run reports the same confidence as a clean one.
const FixedConfidence = 0.9

// VideoAnalysisResult is the pipeline's sole output artifact.
type VideoAnalysisResult struct {
	VisualSummary   string   `json:"visual_summary"`
	AudioTranscript string   `json:"audio_transcript"`
	KeyMoments      []string `json:"key_moments"`
	DurationSeconds float64  `json:"duration_seconds"`
	FrameCount      int      `json:"frame_count"`
	CombinedContent string   `json:"combined_content"`
	Confidence      float64  `json:"confidence"`
	Thumbnail       []byte   `json:"thumbnail,omitempty"`
}

// ProcessingProgress is a transient staged progress event. Progress is
// monotonically non-decreasing within one run.
type ProcessingProgress struct {
	Stage    string `json:"stage"`
	Progress int    `json:"progress"`
	Message  string `json:"message"`
}

// ProgressFunc receives progress events; a nil sink disables reporting.
type ProgressFunc func(ProcessingProgress)

// CacheKey identifies an input by name and byte length. The identity is
// intentionally weak: two distinct files sharing a name and size collide.
type CacheKey struct {
	Filename string
	Size     int64
}

// ResultStore is the injected result cache. Implementations must tolerate
// concurrent reads and writes; last writer wins on a key collision.
type ResultStore interface {
	Get(key CacheKey) (VideoAnalysisResult, bool)
	Put(key CacheKey, result VideoAnalysisResult)
}
