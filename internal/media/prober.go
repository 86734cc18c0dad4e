package media

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
)

// FallbackDurationSeconds is used whenever probing fails. Duration only
// drives frame spacing, so a wrong guess degrades sampling quality rather
// than correctness.
const FallbackDurationSeconds = 120.0

// Prober determines the duration of a media file via ffprobe.
type Prober struct {
	runner      CommandRunner
	ffprobePath string
	logger      *slog.Logger
}

func NewProber(runner CommandRunner, ffprobePath string, logger *slog.Logger) *Prober {
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Prober{runner: runner, ffprobePath: ffprobePath, logger: logger}
}

// Duration returns the media duration in seconds, or the fixed fallback
// when the probe fails or produces unparseable output. It never errors.
func (p *Prober) Duration(ctx context.Context, path string) float64 {
	result := p.runner.Run(ctx, p.ffprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if !result.IsSuccess() {
		p.logger.Warn("duration probe failed, using fallback",
			"exit_code", result.ExitCode,
			"fallback_seconds", FallbackDurationSeconds,
		)
		return FallbackDurationSeconds
	}

	durationStr := strings.TrimSpace(result.Stdout)
	duration, err := strconv.ParseFloat(durationStr, 64)
	if err != nil || duration <= 0 {
		p.logger.Warn("duration probe returned unparseable output, using fallback",
			"output", truncate(durationStr, 64),
			"fallback_seconds", FallbackDurationSeconds,
		)
		return FallbackDurationSeconds
	}

	return duration
}
