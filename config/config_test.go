package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"the-daily/config"
)

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 200, cfg.HackerNews.FrontPageHits)
	assert.Equal(t, 5, cfg.HackerNews.TopComments)
	assert.Equal(t, 10, cfg.Cleaning.MinScore)
	assert.Equal(t, 1536, cfg.Embedding.Dimension)
	assert.Equal(t, 8, cfg.Retrieval.TopK)
	assert.Equal(t, 300, cfg.Insights.BreakthroughScore)
	assert.NotEmpty(t, cfg.Enrichment.TopicKeywords)
	assert.NotEmpty(t, cfg.DataDir)
}

func TestArtifactPathsDeriveFromDataDir(t *testing.T) {
	cfg := &config.AppConfig{DataDir: "/var/lib/daily"}

	assert.Equal(t, "/var/lib/daily/raw", cfg.RawDir())
	assert.Equal(t, "/var/lib/daily/processed", cfg.ProcessedDir())
	assert.Equal(t, "/var/lib/daily/processed/vectors.index", cfg.IndexPath())
	assert.Equal(t, "/var/lib/daily/processed/summaries.json", cfg.MetadataPath())
	assert.Equal(t, "/var/lib/daily/processed/daily_digest.json", cfg.DigestPath())
	assert.Equal(t, "/var/lib/daily/processed/charts_data.json", cfg.ChartsPath())
}

func TestDefaultTopicKeywordsCoverage(t *testing.T) {
	keywords := config.DefaultTopicKeywords()

	require.NotEmpty(t, keywords)
	for topic, kws := range keywords {
		assert.NotEmpty(t, kws, "topic %s has keywords", topic)
	}
	assert.Contains(t, keywords, "AI/ML")
	assert.Contains(t, keywords, "Security")
}
