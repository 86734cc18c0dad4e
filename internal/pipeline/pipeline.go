// Package pipeline turns an arbitrary video file into one richly
// annotated text document suitable for indexing. It orchestrates an
// external media decoder for probing, frame and audio extraction, a
// vision model for batched frame analysis, a chat model for summary
// synthesis and a speech-to-text service for transcription, then merges
// the two analysis paths into a single canonical document.
//
// The two paths fail independently: visual analysis and audio
// transcription may each degrade into fixed placeholders without
// aborting the run. Only workspace setup errors are fatal.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/kdimtricp/videodigest/internal/ai"
	"github.com/kdimtricp/videodigest/internal/media"
)

// Collaborator slices consumed by the processor. Each mirrors the
// concrete type in internal/media or internal/ai; tests substitute fakes.
type (
	DurationProber interface {
		Duration(ctx context.Context, path string) float64
	}

	FrameExtractor interface {
		Extract(ctx context.Context, ws *media.Workspace, videoPath string, probedDuration float64, sizeBytes int64, onProgress func(done, total int)) (*media.FrameSet, error)
	}

	AudioExtractor interface {
		Extract(ctx context.Context, ws *media.Workspace, videoPath string) ([]byte, error)
	}

	VisionAnalyzer interface {
		AnalyzeFrames(ctx context.Context, frames [][]byte) (*ai.VisionAnalysis, error)
	}

	Summarizer interface {
		Summarize(ctx context.Context, descriptions []string) (string, error)
	}

	Transcriber interface {
		Transcribe(ctx context.Context, audio []byte) (*ai.Transcription, error)
	}
)

// Options tunes processor behavior.
type Options struct {
	// WorkDir is the parent directory for per-run workspaces; empty means
	// the system temp dir.
	WorkDir string
}

// VideoProcessor runs the media-to-text pipeline. One processor serves
// many concurrent runs; the injected ResultStore is the only state shared
// between them.
type VideoProcessor struct {
	cache       ResultStore
	prober      DurationProber
	frames      FrameExtractor
	audio       AudioExtractor
	vision      VisionAnalyzer
	summarizer  Summarizer
	transcriber Transcriber
	logger      *slog.Logger
	opts        Options
}

func NewVideoProcessor(
	cache ResultStore,
	prober DurationProber,
	frames FrameExtractor,
	audio AudioExtractor,
	vision VisionAnalyzer,
	summarizer Summarizer,
	transcriber Transcriber,
	logger *slog.Logger,
	opts Options,
) *VideoProcessor {
	return &VideoProcessor{
		cache:       cache,
		prober:      prober,
		frames:      frames,
		audio:       audio,
		vision:      vision,
		summarizer:  summarizer,
		transcriber: transcriber,
		logger:      logger,
		opts:        opts,
	}
}

// Process analyzes one video and returns the synthesized result. The
// returned result is always fully populated; a nil error means it is
// usable even if one or both analysis paths degraded. Errors are fatal
// and mean no result exists.
func (p *VideoProcessor) Process(ctx context.Context, data []byte, filename string, progress ProgressFunc) (*VideoAnalysisResult, error) {
	emit := func(stage string, percent int, message string) {
		if progress != nil {
			progress(ProcessingProgress{Stage: stage, Progress: percent, Message: message})
		}
	}

	key := CacheKey{Filename: filename, Size: int64(len(data))}
	if cached, ok := p.cache.Get(key); ok {
		p.logger.Info("cache hit", "filename", filename, "size", key.Size)
		emit(StageSynthesizing, 100, "using cached result")
		return &cached, nil
	}

	emit(StageExtracting, 0, "starting video analysis")

	ws, err := media.NewWorkspace(p.opts.WorkDir)
	if err != nil {
		return nil, fmt.Errorf("video processing failed: %w", err)
	}
	defer func() {
		if cleanupErr := ws.Cleanup(); cleanupErr != nil {
			p.logger.Warn("workspace cleanup failed", "dir", ws.Dir(), "error", cleanupErr)
		}
	}()

	srcPath, err := ws.WriteFile("source"+sourceExt(filename), data)
	if err != nil {
		return nil, fmt.Errorf("video processing failed: %w", err)
	}

	duration := p.prober.Duration(ctx, srcPath)
	p.logger.Info("video probed", "filename", filename, "duration_sec", duration)

	frameSet, err := p.frames.Extract(ctx, ws, srcPath, duration, key.Size, func(done, total int) {
		emit(StageExtracting, 5+40*done/total, fmt.Sprintf("extracting frames (%d/%d)", done, total))
	})
	if err != nil || frameSet == nil {
		p.logger.Warn("frame extraction failed entirely", "error", err)
		frameSet = &media.FrameSet{}
	}

	visualSummary, keyMoments := p.analyzeVisual(ctx, frameSet.Frames, emit)
	transcript, audioDuration := p.analyzeAudio(ctx, ws, srcPath, emit)

	emit(StageSynthesizing, 95, "synthesizing results")
	result := synthesize(visualSummary, transcript, keyMoments, audioDuration, len(frameSet.Frames), frameSet.Thumbnail)

	p.cache.Put(key, *result)
	emit(StageSynthesizing, 100, "analysis complete")

	p.logger.Info("video analysis complete",
		"filename", filename,
		"frames", result.FrameCount,
		"key_moments", len(result.KeyMoments),
		"duration_sec", result.DurationSeconds,
	)

	return result, nil
}

// analyzeVisual runs the frame batches through the vision model and the
// summarizer. Any stage-level failure degrades to fixed placeholders.
func (p *VideoProcessor) analyzeVisual(ctx context.Context, frames [][]byte, emit func(string, int, string)) (string, []string) {
	if len(frames) == 0 {
		p.logger.Warn("no frames extracted, degrading visual analysis")
		return PlaceholderVisualSummary, nil
	}

	emit(StageAnalyzing, 50, "analyzing frames")

	analysis, err := p.vision.AnalyzeFrames(ctx, frames)
	if err != nil {
		p.logger.Warn("visual analysis degraded", "error", err)
		return PlaceholderVisualSummary, nil
	}

	emit(StageAnalyzing, 70, "generating visual summary")

	summary, err := p.summarizer.Summarize(ctx, analysis.Descriptions)
	if err != nil {
		p.logger.Warn("summary generation degraded", "error", err)
		summary = PlaceholderSummary
	}

	return summary, analysis.KeyMoments
}

// analyzeAudio extracts and transcribes the audio track. Failure of
// either step degrades to the placeholder transcript and zero duration.
func (p *VideoProcessor) analyzeAudio(ctx context.Context, ws *media.Workspace, srcPath string, emit func(string, int, string)) (string, float64) {
	emit(StageAnalyzing, 75, "extracting audio track")

	audio, err := p.audio.Extract(ctx, ws, srcPath)
	if err != nil {
		p.logger.Warn("audio extraction degraded", "error", err)
		return PlaceholderTranscript, 0
	}

	emit(StageAnalyzing, 85, "transcribing audio")

	transcription, err := p.transcriber.Transcribe(ctx, audio)
	if err != nil {
		p.logger.Warn("transcription degraded", "error", err)
		return PlaceholderTranscript, 0
	}

	return transcription.Text, transcription.DurationSeconds
}

func sourceExt(filename string) string {
	ext := filepath.Ext(filename)
	if ext == "" {
		return ".mp4"
	}
	return ext
}
