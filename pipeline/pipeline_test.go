package pipeline_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"the-daily/config"
	"the-daily/enricher"
	"the-daily/models"
	"the-daily/pipeline"
	"the-daily/storage"
	"the-daily/vectorindex"
)

type fakeCollector struct {
	items []models.RawItem
	err   error
}

func (f *fakeCollector) Collect(_ context.Context) ([]models.RawItem, error) {
	return f.items, f.err
}

type fixedSummarizer struct{}

func (fixedSummarizer) Summarize(_ context.Context, text string) (string, error) {
	return "summary", nil
}

type unitEmbedder struct{ dimension int }

func (e unitEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range out {
		out[i] = make([]float32, e.dimension)
		out[i][i%e.dimension] = 1
	}
	return out, nil
}

func (e unitEmbedder) Dimension() int { return e.dimension }

func runnerConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	return &config.AppConfig{
		DataDir:   t.TempDir(),
		Cleaning:  config.CleaningConfig{MinScore: 10},
		Embedding: config.EmbeddingConfig{Dimension: 2},
		Insights:  config.InsightsConfig{BreakthroughScore: 300, HotCommentFloor: 20, TopN: 10},
	}
}

func newTestRunner(cfg *config.AppConfig, c pipeline.Collector) *pipeline.Runner {
	e := enricher.New(fixedSummarizer{}, unitEmbedder{dimension: 2}, enricher.NewClassifier(nil), 2)
	r := pipeline.NewRunner(cfg, c, e)
	r.Now = func() time.Time { return time.Date(2026, 3, 14, 6, 0, 0, 0, time.UTC) }
	return r
}

func TestRunPublishesAllArtifacts(t *testing.T) {
	cfg := runnerConfig(t)
	coll := &fakeCollector{items: []models.RawItem{
		{ID: "1", Title: "Story one", Score: 320, NumComments: 40},
		{ID: "2", Title: "Story two", Score: 15, NumComments: 2},
		{ID: "3", Title: "Too quiet", Score: 1},
	}}

	require.NoError(t, newTestRunner(cfg, coll).Run(context.Background()))

	ix, err := vectorindex.Load(cfg.IndexPath())
	require.NoError(t, err)
	assert.Equal(t, 2, ix.Len(), "the sub-threshold story is cleaned out")

	var metadata []models.PostMetadata
	require.NoError(t, storage.ReadJSON(cfg.MetadataPath(), &metadata))
	require.Len(t, metadata, 2)
	assert.Equal(t, "1", metadata[0].ID)
	assert.Equal(t, "summary", metadata[0].Summary)

	var digest models.Digest
	require.NoError(t, storage.ReadJSON(cfg.DigestPath(), &digest))
	assert.Equal(t, "2026-03-14", digest.Date)
	assert.Equal(t, 2, digest.TotalPosts)
	require.Len(t, digest.Breakthroughs, 1)
	assert.Equal(t, "Story one", digest.Breakthroughs[0].Title)

	var charts models.ChartsData
	require.NoError(t, storage.ReadJSON(cfg.ChartsPath(), &charts))
	assert.Len(t, charts.HotDiscussions, 1)
}

func TestRunCollectorFailureWritesNothing(t *testing.T) {
	cfg := runnerConfig(t)
	coll := &fakeCollector{err: errors.New("front page down")}

	err := newTestRunner(cfg, coll).Run(context.Background())
	require.Error(t, err)

	_, statErr := os.Stat(cfg.IndexPath())
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(cfg.DigestPath())
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunEmptyCorpusFails(t *testing.T) {
	cfg := runnerConfig(t)

	err := newTestRunner(cfg, &fakeCollector{}).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, pipeline.ErrEmptyCorpus)
}

func TestRunAllFilteredFails(t *testing.T) {
	cfg := runnerConfig(t)
	coll := &fakeCollector{items: []models.RawItem{
		{ID: "1", Title: "Below threshold", Score: 2},
	}}

	err := newTestRunner(cfg, coll).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, pipeline.ErrEmptyCorpus)
}
