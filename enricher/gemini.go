package enricher

import (
	"context"
	"strings"

	"google.golang.org/genai"
)

const summarySystemInstruction = `You are a concise tech news summarizer. Summarize the following Hacker News story in 2-3 sentences, focusing on the key technical insight or news. Respond with the summary text only, no preamble and no markdown.`

// GeminiSummarizer produces per-story summaries with the Gemini API.
type GeminiSummarizer struct {
	client *genai.Client
	model  string
}

// NewGeminiSummarizer creates a summarizer sharing one API client for the
// whole batch.
func NewGeminiSummarizer(ctx context.Context, apiKey, model string) (*GeminiSummarizer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, err
	}
	return &GeminiSummarizer{client: client, model: model}, nil
}

// Summarize returns a short summary of text.
func (s *GeminiSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	result, err := s.client.Models.GenerateContent(
		ctx,
		s.model,
		genai.Text(text),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: summarySystemInstruction}}},
			Temperature:       genai.Ptr[float32](0.3),
			MaxOutputTokens:   150,
		},
	)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result.Text()), nil
}
