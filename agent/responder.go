package agent

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"the-daily/models"
)

const personaInstruction = `You are 'The Daily', a friendly and knowledgeable tech news assistant. Given Hacker News stories and their summaries, provide a clear, conversational answer to the user's question. Highlight key trends and insights. Use markdown formatting. End with a brief 'Sources' section listing the relevant HN stories. Use the conversation history to understand follow-up questions.`

const maxSourceLinks = 5
const maxSourceTitleRunes = 60

// Generator is the single LLM call the responder makes. contents carries the
// replayed history followed by the current turn.
type Generator interface {
	Generate(ctx context.Context, contents []*genai.Content) (string, error)
}

// GeminiGenerator produces the conversational answer with the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a generator sharing one API client across
// queries.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, err
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, contents []*genai.Content) (string, error) {
	result, err := g.client.Models.GenerateContent(
		ctx,
		g.model,
		contents,
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: personaInstruction}}},
			Temperature:       genai.Ptr[float32](0.5),
		},
	)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result.Text()), nil
}

// Responder turns retrieved evidence plus conversation history into the
// final answer text.
type Responder struct {
	generator Generator
}

// NewResponder wires a responder around a generator.
func NewResponder(generator Generator) *Responder {
	return &Responder{generator: generator}
}

// Respond runs the single generation call, conditioned on the persona
// instruction, the prior turns replayed in role order, and the current query
// with the numbered evidence block and a Sources list.
func (r *Responder) Respond(ctx context.Context, state State) (string, error) {
	contents := historyContents(state.History)
	contents = append(contents, genai.NewContentFromText(currentTurn(state.Query, state.Retrieved), genai.RoleUser))
	return r.generator.Generate(ctx, contents)
}

// historyContents replays prior turns in order, mapping chat roles onto the
// model's user/model roles. Unknown roles are dropped.
func historyContents(history []models.ChatMessage) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, msg := range history {
		var role genai.Role
		switch msg.Role {
		case models.RoleUser:
			role = genai.RoleUser
		case models.RoleAssistant:
			role = genai.RoleModel
		default:
			continue
		}
		contents = append(contents, genai.NewContentFromText(msg.Content, role))
	}
	return contents
}

// currentTurn renders the user's query plus the evidence the answer must be
// grounded in: one numbered block per retrieved story and a Sources list of
// the top results.
func currentTurn(query string, retrieved []models.RetrievedPost) string {
	var contextParts []string
	var sourceLinks []string
	for i, post := range retrieved {
		contextParts = append(contextParts, fmt.Sprintf(
			"[%d] (score: %d, comments: %d, topics: %s)\nTitle: %s\nSummary: %s",
			i+1, post.Score, post.NumComments, strings.Join(post.Topics, ", "), post.Title, post.Summary,
		))
		if i < maxSourceLinks {
			sourceLinks = append(sourceLinks, fmt.Sprintf(
				"- [%s](%s) (%d pts, %d comments)",
				truncateRunes(post.Title, maxSourceTitleRunes), post.HNURL, post.Score, post.NumComments,
			))
		}
	}

	return fmt.Sprintf(
		"%s\n\n--- Relevant stories from today ---\n%s\n\n--- Sources ---\n%s",
		query,
		strings.Join(contextParts, "\n\n"),
		strings.Join(sourceLinks, "\n"),
	)
}

func truncateRunes(s string, max int) string {
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	return string(rs[:max])
}
