package ai

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// TranscriptionClient is the transcription slice of the OpenAI client.
type TranscriptionClient interface {
	CreateTranscription(ctx context.Context, req openai.AudioRequest) (openai.AudioResponse, error)
}

// Transcription is the speech-to-text result for one audio track.
type Transcription struct {
	Text            string
	DurationSeconds float64
	Language        string
}

// Transcriber sends mono 16 kHz PCM audio to a speech-to-text service.
type Transcriber struct {
	client     TranscriptionClient
	model      string
	sampleRate int
	sampleSize int
	logger     *slog.Logger
}

func NewTranscriber(client TranscriptionClient, model string, sampleRate, sampleSize int, logger *slog.Logger) *Transcriber {
	if model == "" {
		model = openai.Whisper1
	}
	if sampleRate <= 0 {
		sampleRate = 16000
	}
	if sampleSize <= 0 {
		sampleSize = 2
	}
	return &Transcriber{client: client, model: model, sampleRate: sampleRate, sampleSize: sampleSize, logger: logger}
}

// Transcribe requests a verbose transcription. When the service does not
// report a duration, it is estimated from the PCM byte length.
func (t *Transcriber) Transcribe(ctx context.Context, audio []byte) (*Transcription, error) {
	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    t.model,
		Reader:   bytes.NewReader(audio),
		FilePath: "audio.wav",
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return nil, fmt.Errorf("transcription returned empty text")
	}

	duration := resp.Duration
	if duration <= 0 {
		duration = float64(len(audio)) / float64(t.sampleRate*t.sampleSize)
	}

	t.logger.Info("transcription complete",
		"chars", len(text),
		"duration_sec", duration,
		"language", resp.Language,
	)

	return &Transcription{
		Text:            text,
		DurationSeconds: duration,
		Language:        resp.Language,
	}, nil
}
