package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"the-daily/internal/logger"
	"the-daily/models"
	"the-daily/vectorindex"
)

const metadataSnippetRunes = 300

// BuildIndex constructs a fresh vector index from the enrichment output and
// writes the index/metadata pair. Count or dimension mismatches are
// programmer or data errors, not transient faults: they abort the batch
// before anything is written, leaving the previous pair untouched.
func BuildIndex(posts []models.Post, summaries []string, embeddings [][]float32, topics [][]string, dimension int, indexPath, metadataPath string) error {
	if len(embeddings) != len(posts) {
		return fmt.Errorf("embedding count %d does not match post count %d", len(embeddings), len(posts))
	}
	if len(summaries) != len(posts) || len(topics) != len(posts) {
		return fmt.Errorf("enrichment output misaligned: %d posts, %d summaries, %d topic sets", len(posts), len(summaries), len(topics))
	}

	ix, err := vectorindex.New(dimension)
	if err != nil {
		return err
	}
	for i, vec := range embeddings {
		row, err := ix.Add(vec)
		if err != nil {
			return fmt.Errorf("add embedding %d: %w", i, err)
		}
		if row != i {
			return fmt.Errorf("index row %d assigned for embedding %d", row, i)
		}
	}

	metadata := make([]models.PostMetadata, len(posts))
	for i, post := range posts {
		metadata[i] = models.PostMetadata{
			ID:          post.ID,
			Title:       post.Title,
			Summary:     summaries[i],
			Score:       post.Score,
			NumComments: post.NumComments,
			HNURL:       post.HNURL,
			URL:         post.URL,
			Topics:      topics[i],
			StoryText:   truncateRunes(post.StoryText, metadataSnippetRunes),
		}
	}

	if err := replacePair(ix, metadata, indexPath, metadataPath); err != nil {
		return err
	}
	logger.Log.Infof("vector index (%d rows) saved to %s", ix.Len(), indexPath)
	return nil
}

// replacePair stages both artifacts fully, then renames them into place
// back to back, so a reader never finds a half-written file and the window
// for an index/metadata version skew is as small as two renames.
func replacePair(ix *vectorindex.Index, metadata []models.PostMetadata, indexPath, metadataPath string) error {
	for _, p := range []string{indexPath, metadataPath} {
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return fmt.Errorf("create %s: %w", filepath.Dir(p), err)
		}
	}

	stagedIndex := indexPath + ".staging"
	if err := ix.Save(stagedIndex); err != nil {
		return fmt.Errorf("stage index: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(metadata); err != nil {
		os.Remove(stagedIndex)
		return fmt.Errorf("encode metadata: %w", err)
	}
	stagedMetadata := metadataPath + ".staging"
	if err := os.WriteFile(stagedMetadata, buf.Bytes(), 0o644); err != nil {
		os.Remove(stagedIndex)
		return fmt.Errorf("stage metadata: %w", err)
	}

	if err := os.Rename(stagedIndex, indexPath); err != nil {
		os.Remove(stagedIndex)
		os.Remove(stagedMetadata)
		return fmt.Errorf("replace index: %w", err)
	}
	if err := os.Rename(stagedMetadata, metadataPath); err != nil {
		os.Remove(stagedMetadata)
		return fmt.Errorf("replace metadata: %w", err)
	}
	return nil
}

func truncateRunes(s string, max int) string {
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	return string(rs[:max])
}
