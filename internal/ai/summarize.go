package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const summaryPromptPrefix = `Write a coherent summary of this video's visual content in at most 300 words.
The summary will be indexed for search and retrieval, so prefer concrete nouns,
names and actions over generic phrasing.

Frame descriptions:
`

// Summarizer condenses per-batch frame descriptions into one prose
// summary via a single chat completion.
type Summarizer struct {
	client ChatCompleter
	model  string
	logger *slog.Logger
}

func NewSummarizer(client ChatCompleter, model string, logger *slog.Logger) *Summarizer {
	if model == "" {
		model = openai.GPT4o
	}
	return &Summarizer{client: client, model: model, logger: logger}
}

// Summarize joins the descriptions in batch order and asks the model for
// one retrieval-optimized summary.
func (s *Summarizer) Summarize(ctx context.Context, descriptions []string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: summaryPromptPrefix + strings.Join(descriptions, "\n"),
			},
		},
		MaxTokens:   600,
		Temperature: 0.3,
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("summary generation failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("summary generation returned no choices")
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	if summary == "" {
		return "", fmt.Errorf("summary generation returned empty text")
	}

	s.logger.Debug("summary generated", "chars", len(summary))
	return summary, nil
}
