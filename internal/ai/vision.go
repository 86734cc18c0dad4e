package ai

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const visionPrompt = `Analyze these video frames in order. For each frame, describe what is shown.
Then list any key moments or important events you can identify across the frames.
Include any visible text or on-screen data, and describe how the scene progresses
from the first frame to the last.`

// ChatCompleter is the slice of the OpenAI client the analyzers need,
// kept narrow so tests can substitute a fake.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// VisionAnalysis aggregates the parsed output of all vision batches.
type VisionAnalysis struct {
	Descriptions []string
	KeyMoments   []string
}

// VisionAnalyzer sends extracted frames to a vision-capable model in
// bounded batches and parses the free-text responses.
type VisionAnalyzer struct {
	client    ChatCompleter
	model     string
	batchSize int
	logger    *slog.Logger
}

func NewVisionAnalyzer(client ChatCompleter, model string, batchSize int, logger *slog.Logger) *VisionAnalyzer {
	if model == "" {
		model = openai.GPT4o
	}
	if batchSize <= 0 {
		batchSize = 10
	}
	return &VisionAnalyzer{client: client, model: model, batchSize: batchSize, logger: logger}
}

// AnalyzeFrames issues ceil(len(frames)/batchSize) inference calls, each
// carrying at most batchSize images. A single failed batch fails the whole
// call: unlike per-frame extraction, a lost batch would silently drop a
// contiguous span of the video from the analysis.
func (va *VisionAnalyzer) AnalyzeFrames(ctx context.Context, frames [][]byte) (*VisionAnalysis, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames to analyze")
	}

	analysis := &VisionAnalysis{}
	batches := (len(frames) + va.batchSize - 1) / va.batchSize

	for b := 0; b < batches; b++ {
		start := b * va.batchSize
		end := start + va.batchSize
		if end > len(frames) {
			end = len(frames)
		}
		batch := frames[start:end]

		content := make([]openai.ChatMessagePart, 0, len(batch)+1)
		content = append(content, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeText,
			Text: visionPrompt,
		})
		for _, frame := range batch {
			content = append(content, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL: fmt.Sprintf("data:image/jpeg;base64,%s", base64.StdEncoding.EncodeToString(frame)),
				},
			})
		}

		req := openai.ChatCompletionRequest{
			Model: va.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:         openai.ChatMessageRoleUser,
					MultiContent: content,
				},
			},
			MaxTokens:   1500,
			Temperature: 0.3,
		}

		resp, err := va.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("vision batch %d/%d failed: %w", b+1, batches, err)
		}
		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("vision batch %d/%d returned no choices", b+1, batches)
		}

		text := strings.TrimSpace(resp.Choices[0].Message.Content)
		descriptions, keyMoments := ParseAnalysisResponse(text)
		analysis.Descriptions = append(analysis.Descriptions, descriptions...)
		analysis.KeyMoments = append(analysis.KeyMoments, keyMoments...)

		va.logger.Debug("vision batch analyzed",
			"batch", b+1,
			"batches", batches,
			"images", len(batch),
			"descriptions", len(descriptions),
			"key_moments", len(keyMoments),
		)
	}

	va.logger.Info("vision analysis complete",
		"frames", len(frames),
		"batches", batches,
		"descriptions", len(analysis.Descriptions),
		"key_moments", len(analysis.KeyMoments),
	)

	return analysis, nil
}
