package media

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// Transcode target: mono 16 kHz 16-bit PCM, the format the transcription
// service expects.
const (
	AudioSampleRate     = 16000
	AudioBytesPerSample = 2
)

// AudioExtractor demuxes and transcodes the audio track of a video file.
type AudioExtractor struct {
	runner     CommandRunner
	ffmpegPath string
	logger     *slog.Logger
}

func NewAudioExtractor(runner CommandRunner, ffmpegPath string, logger *slog.Logger) *AudioExtractor {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &AudioExtractor{runner: runner, ffmpegPath: ffmpegPath, logger: logger}
}

// Extract transcodes the source's audio track to mono 16 kHz 16-bit PCM
// WAV inside the workspace, reads it into memory and removes the file.
func (ae *AudioExtractor) Extract(ctx context.Context, ws *Workspace, videoPath string) ([]byte, error) {
	audioPath := ws.Path("audio.wav")

	result := ae.runner.Run(ctx, ae.ffmpegPath,
		"-y",
		"-i", videoPath,
		"-vn",
		"-ac", "1",
		"-ar", fmt.Sprintf("%d", AudioSampleRate),
		"-sample_fmt", "s16",
		"-f", "wav",
		audioPath,
	)
	if !result.IsSuccess() {
		return nil, fmt.Errorf("audio transcode exited %d: %s", result.ExitCode, truncate(result.StderrTail, 256))
	}

	data, err := os.ReadFile(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcoded audio: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("audio transcode produced an empty file")
	}

	if err := os.Remove(audioPath); err != nil {
		ae.logger.Warn("failed to remove transcoded audio file", "path", audioPath, "error", err)
	}

	ae.logger.Info("audio extraction complete", "bytes", len(data))
	return data, nil
}
