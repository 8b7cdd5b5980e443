// Package pipeline runs the daily batch cycle: collect → clean → enrich →
// index → insights. A fatal error at any stage stops the cycle and leaves
// every previously published artifact untouched.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"the-daily/cleaner"
	"the-daily/config"
	"the-daily/enricher"
	"the-daily/internal/logger"
	"the-daily/models"
	"the-daily/storage"
)

// ErrEmptyCorpus aborts a cycle that produced no usable stories.
var ErrEmptyCorpus = errors.New("no stories to process")

// Collector is the batch-cycle view of the collector.
type Collector interface {
	Collect(ctx context.Context) ([]models.RawItem, error)
}

// Runner sequences one batch cycle. Construct it once with its collaborators
// and reuse it across scheduled runs.
type Runner struct {
	cfg       *config.AppConfig
	collector Collector
	enricher  *enricher.Enricher

	// Now is replaceable in tests.
	Now func() time.Time
}

// NewRunner wires a batch runner.
func NewRunner(cfg *config.AppConfig, c Collector, e *enricher.Enricher) *Runner {
	return &Runner{cfg: cfg, collector: c, enricher: e, Now: time.Now}
}

// Run executes one full cycle and publishes the four processed artifacts.
func (r *Runner) Run(ctx context.Context) error {
	logger.Log.Info("pipeline starting")

	raw, err := r.collector.Collect(ctx)
	if err != nil {
		return fmt.Errorf("collect: %w", err)
	}
	if len(raw) == 0 {
		return fmt.Errorf("collect: %w", ErrEmptyCorpus)
	}

	posts := cleaner.Clean(raw, r.cfg.Cleaning.MinScore)
	if len(posts) == 0 {
		return fmt.Errorf("clean: %w", ErrEmptyCorpus)
	}

	summaries, embeddings, topics, err := r.enricher.Enrich(ctx, posts)
	if err != nil {
		return fmt.Errorf("enrich: %w", err)
	}

	if err := BuildIndex(posts, summaries, embeddings, topics, r.cfg.Embedding.Dimension, r.cfg.IndexPath(), r.cfg.MetadataPath()); err != nil {
		return fmt.Errorf("build index: %w", err)
	}

	now := r.Now()
	charts := BuildChartsData(posts, summaries, topics, r.cfg.Insights.HotCommentFloor, r.cfg.Insights.TopN, now)
	if err := storage.WriteJSONAtomic(r.cfg.ChartsPath(), charts); err != nil {
		return fmt.Errorf("write charts data: %w", err)
	}
	logger.Log.Infof("charts data saved to %s", r.cfg.ChartsPath())

	digest := BuildDigest(posts, summaries, topics, r.cfg.Insights.BreakthroughScore, now)
	if err := storage.WriteJSONAtomic(r.cfg.DigestPath(), digest); err != nil {
		return fmt.Errorf("write daily digest: %w", err)
	}
	logger.Log.Infof("daily digest saved to %s", r.cfg.DigestPath())

	logger.Log.Infof("pipeline completed: %d stories indexed", len(posts))
	return nil
}
