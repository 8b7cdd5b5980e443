package agent

import (
	"context"
	"fmt"

	"the-daily/internal/logger"
	"the-daily/models"
	"the-daily/vectorindex"
)

// QueryEmbedder embeds a single query string. It must be backed by the same
// model and normalization used when the index was built.
type QueryEmbedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Retriever answers "which posts are closest to this query" against the
// persisted index/metadata pair, both loaded read-only at construction.
type Retriever struct {
	embedder QueryEmbedder
	index    *vectorindex.Index
	metadata []models.PostMetadata
	topK     int
}

// NewRetriever wires a retriever over an already-loaded index and metadata
// store.
func NewRetriever(embedder QueryEmbedder, index *vectorindex.Index, metadata []models.PostMetadata, topK int) *Retriever {
	return &Retriever{embedder: embedder, index: index, metadata: metadata, topK: topK}
}

// Retrieve embeds the query and returns the top-K posts in descending
// similarity order. A row id outside the metadata bounds means the index and
// metadata are skewed; such rows are skipped with a warning instead of
// failing the query.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]models.RetrievedPost, error) {
	vec, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := r.index.Search(vec, r.topK)
	if err != nil {
		return nil, fmt.Errorf("index search: %w", err)
	}

	retrieved := make([]models.RetrievedPost, 0, len(hits))
	for _, hit := range hits {
		if hit.Row < 0 || hit.Row >= len(r.metadata) {
			logger.WarnWithFields("index row outside metadata bounds, skipping", logger.Fields{
				"row":           hit.Row,
				"metadata_rows": len(r.metadata),
			})
			continue
		}
		retrieved = append(retrieved, models.RetrievedPost{
			PostMetadata: r.metadata[hit.Row],
			Relevance:    float64(hit.Score),
		})
	}
	logger.Log.Infof("retrieved %d posts for query: %.80s", len(retrieved), query)
	return retrieved, nil
}
