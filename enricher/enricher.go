// Package enricher derives, per cleaned post, a short summary, a topic label
// set and an embedding vector. All three outputs are aligned 1:1 with the
// input order; that alignment is what the index builder relies on.
package enricher

import (
	"context"
	"fmt"
	"strings"

	"the-daily/internal/logger"
	"the-daily/models"
)

const (
	maxStoryTextRunes   = 500
	maxCommentRunes     = 200
	maxCommentsPerPost  = 3
	maxSummaryInputRune = 2000
	maxEmbedInputRunes  = 8000
)

// Summarizer produces a short summary for one story text.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Embedder turns a batch of texts into fixed-dimension unit vectors.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	Dimension() int
}

// Enricher runs the three derivations over a batch.
type Enricher struct {
	summarizer Summarizer
	embedder   Embedder
	classifier *Classifier
	workers    int
}

// New wires an Enricher. workers bounds the number of concurrent
// summarization calls.
func New(summarizer Summarizer, embedder Embedder, classifier *Classifier, workers int) *Enricher {
	if workers <= 0 {
		workers = 1
	}
	return &Enricher{
		summarizer: summarizer,
		embedder:   embedder,
		classifier: classifier,
		workers:    workers,
	}
}

// Enrich returns summaries, embeddings and topic sets for posts, one entry
// per post in post order. A failed summarization call degrades to the post's
// title; a failed embedding call fails the whole batch, since a partial
// embedding set cannot be indexed.
func (e *Enricher) Enrich(ctx context.Context, posts []models.Post) ([]string, [][]float32, [][]string, error) {
	texts := make([]string, len(posts))
	for i, p := range posts {
		texts[i] = PostText(p)
	}

	logger.Log.Infof("summarizing %d stories with %d workers", len(posts), e.workers)
	summaries := MapOrdered(ctx, posts, e.workers, func(ctx context.Context, i int, p models.Post) string {
		summary, err := e.summarizer.Summarize(ctx, truncateRunes(texts[i], maxSummaryInputRune))
		if err != nil || summary == "" {
			logger.Log.Errorf("summarization failed for story %s: %v", p.ID, err)
			return p.Title
		}
		return summary
	})

	logger.Log.Info("generating embeddings")
	embedTexts := make([]string, len(texts))
	for i, t := range texts {
		embedTexts[i] = truncateRunes(t, maxEmbedInputRunes)
	}
	embeddings, err := e.embedder.Embed(ctx, embedTexts)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("embed posts: %w", err)
	}
	if len(embeddings) != len(posts) {
		return nil, nil, nil, fmt.Errorf("embedding count mismatch: %d posts, %d vectors", len(posts), len(embeddings))
	}

	logger.Log.Info("classifying topics")
	topics := make([][]string, len(posts))
	for i := range posts {
		topics[i] = e.classifier.Classify(texts[i])
	}

	logger.Log.Infof("enriched %d stories", len(posts))
	return summaries, embeddings, topics, nil
}

// PostText concatenates the fields the derivations all see: title, truncated
// story text and up to three truncated top comments.
func PostText(p models.Post) string {
	parts := []string{p.Title}
	if p.StoryText != "" {
		parts = append(parts, truncateRunes(p.StoryText, maxStoryTextRunes))
	}
	for i, c := range p.TopComments {
		if i >= maxCommentsPerPost {
			break
		}
		parts = append(parts, truncateRunes(c.Body, maxCommentRunes))
	}
	return strings.Join(parts, "\n")
}

func truncateRunes(s string, max int) string {
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	return string(rs[:max])
}
