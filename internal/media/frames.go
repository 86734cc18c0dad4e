package media

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// FrameOptions bounds frame sampling. MaxFrames keeps the total under the
// vision model's per-request image ceiling; MinFrames guarantees a handful
// of samples for very short inputs.
type FrameOptions struct {
	MinFrames            int
	MaxFrames            int
	FrameIntervalSeconds int
	// BytesPerSecond is the assumed bitrate used to estimate duration from
	// input size when choosing the frame count.
	BytesPerSecond int64
	FFmpegPath     string
}

func DefaultFrameOptions() FrameOptions {
	return FrameOptions{
		MinFrames:            5,
		MaxFrames:            20,
		FrameIntervalSeconds: 10,
		BytesPerSecond:       200_000,
		FFmpegPath:           "ffmpeg",
	}
}

// FrameSet is the in-memory output of one extraction pass.
type FrameSet struct {
	Frames    [][]byte
	Thumbnail []byte
}

// FrameExtractor pulls evenly spaced still frames out of a video file
// using one decoder invocation per timestamp.
type FrameExtractor struct {
	runner CommandRunner
	opts   FrameOptions
	logger *slog.Logger
}

func NewFrameExtractor(runner CommandRunner, opts FrameOptions, logger *slog.Logger) *FrameExtractor {
	if opts.FFmpegPath == "" {
		opts.FFmpegPath = "ffmpeg"
	}
	return &FrameExtractor{runner: runner, opts: opts, logger: logger}
}

// TargetFrameCount derives the frame count from the input byte size, not
// the probed duration. The two are deliberately decoupled: size picks how
// many samples we take, the probed duration picks where they land.
func (fe *FrameExtractor) TargetFrameCount(sizeBytes int64) int {
	estimatedSeconds := sizeBytes / fe.opts.BytesPerSecond
	count := int((estimatedSeconds + int64(fe.opts.FrameIntervalSeconds) - 1) / int64(fe.opts.FrameIntervalSeconds))
	if count < fe.opts.MinFrames {
		count = fe.opts.MinFrames
	}
	if count > fe.opts.MaxFrames {
		count = fe.opts.MaxFrames
	}
	return count
}

// Extract seeks and extracts one still frame per timestamp into the
// workspace, reading each into memory. A timestamp whose extraction fails
// is skipped, so the returned set may hold fewer frames than the target.
// The first successful frame doubles as the thumbnail. onProgress, if
// non-nil, is called after each attempt with (attempted, planned).
func (fe *FrameExtractor) Extract(ctx context.Context, ws *Workspace, videoPath string, probedDuration float64, sizeBytes int64, onProgress func(done, total int)) (*FrameSet, error) {
	target := fe.TargetFrameCount(sizeBytes)

	step := int(probedDuration) / target
	if step < 1 {
		step = 1
	}

	// When the probed duration is shorter than the target count, cap the
	// attempts so no seek lands past the end of the stream.
	attempts := target
	if inRange := int(probedDuration)/step + 1; inRange < attempts {
		attempts = inRange
	}
	if attempts < 1 {
		attempts = 1
	}

	set := &FrameSet{Frames: make([][]byte, 0, attempts)}

	for i := 0; i < attempts; i++ {
		timestamp := i * step
		framePath := ws.Path(fmt.Sprintf("frame_%04d.jpg", i))

		result := fe.runner.Run(ctx, fe.opts.FFmpegPath,
			"-y",
			"-ss", fmt.Sprintf("%d", timestamp),
			"-i", videoPath,
			"-vframes", "1",
			"-q:v", "2",
			"-f", "mjpeg",
			framePath,
		)
		if !result.IsSuccess() {
			fe.logger.Warn("frame extraction failed, skipping timestamp",
				"timestamp_sec", timestamp,
				"exit_code", result.ExitCode,
			)
			if onProgress != nil {
				onProgress(i+1, attempts)
			}
			continue
		}

		data, err := os.ReadFile(framePath)
		if err != nil || len(data) == 0 {
			fe.logger.Warn("extracted frame unreadable, skipping timestamp",
				"timestamp_sec", timestamp,
				"error", err,
			)
			if onProgress != nil {
				onProgress(i+1, attempts)
			}
			continue
		}

		if set.Thumbnail == nil {
			// Keep the thumbnail's file on disk; workspace cleanup removes it.
			set.Thumbnail = data
		} else {
			if err := os.Remove(framePath); err != nil {
				fe.logger.Warn("failed to remove frame file", "path", framePath, "error", err)
			}
		}

		set.Frames = append(set.Frames, data)
		if onProgress != nil {
			onProgress(i+1, attempts)
		}
	}

	fe.logger.Info("frame extraction complete",
		"extracted", len(set.Frames),
		"target", target,
	)

	return set, nil
}
