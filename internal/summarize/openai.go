// Package summarize turns collected pull request titles and descriptions
// into a natural-language contribution summary using an external
// language-model service.
package summarize

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/pateldev/github-contributions/internal/domain"
)

// OpenAISummarizer calls the OpenAI chat completion API.
type OpenAISummarizer struct {
	client *openai.Client
	model  string
}

// NewOpenAISummarizer creates a summarizer for the given API key and model.
// An empty model falls back to gpt-4o-mini.
func NewOpenAISummarizer(apiKey, model string) *OpenAISummarizer {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAISummarizer{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// NewOpenAISummarizerWithBaseURL points the client at an alternate endpoint.
// Used by tests and by OpenAI-compatible gateways.
func NewOpenAISummarizerWithBaseURL(apiKey, model, baseURL string) *OpenAISummarizer {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	s := NewOpenAISummarizer(apiKey, model)
	s.client = openai.NewClientWithConfig(cfg)
	return s
}

// Summarize builds the prompt from the pull requests and requests a single
// chat completion. There is no contract with the upstream beyond returning a
// string summary or failing.
func (s *OpenAISummarizer) Summarize(ctx context.Context, prs []domain.PullRequest) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(prs, maxPromptTokens),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
