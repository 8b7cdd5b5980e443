// Package collector gathers one day's stories from Hacker News: the current
// front page plus a set of topic searches, deduplicated by object id in
// first-seen order.
package collector

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"the-daily/config"
	"the-daily/hackernews"
	"the-daily/internal/logger"
	"the-daily/models"
	"the-daily/storage"
)

// HNClient is the slice of the Algolia client the collector needs.
type HNClient interface {
	FrontPage(ctx context.Context, hitsPerPage int) ([]hackernews.SearchHit, error)
	SearchRecent(ctx context.Context, query string, hitsPerPage int) ([]hackernews.SearchHit, error)
	TopComments(ctx context.Context, objectID string, limit int) ([]hackernews.CommentNode, error)
}

// Collector fetches and snapshots raw stories.
type Collector struct {
	client HNClient
	cfg    config.HackerNewsConfig
	rawDir string

	// FetchComments can be disabled to skip the per-item comment requests.
	FetchComments bool
	// Pause between comment fetches, to stay polite to the API.
	Pause time.Duration
	// Now is replaceable in tests.
	Now func() time.Time
}

// New builds a Collector writing snapshots under rawDir.
func New(client HNClient, cfg config.HackerNewsConfig, rawDir string) *Collector {
	return &Collector{
		client:        client,
		cfg:           cfg,
		rawDir:        rawDir,
		FetchComments: true,
		Pause:         100 * time.Millisecond,
		Now:           time.Now,
	}
}

// Collect fetches the front page and every configured topic query, dedups by
// object id keeping the first occurrence, and persists the dated raw
// snapshot. A front-page failure aborts collection; a failed topic query is
// logged and skipped.
func (c *Collector) Collect(ctx context.Context) ([]models.RawItem, error) {
	seen := make(map[string]bool)
	var items []models.RawItem

	logger.Log.Info("fetching HN front page")
	hits, err := c.client.FrontPage(ctx, c.cfg.FrontPageHits)
	if err != nil {
		return nil, fmt.Errorf("front page fetch: %w", err)
	}
	items, err = c.appendHits(ctx, items, hits, seen)
	if err != nil {
		return nil, err
	}
	logger.Log.Infof("front page: %d stories", len(items))

	for _, query := range c.cfg.TopicQueries {
		logger.Log.Infof("searching HN for %q", query)
		hits, err := c.client.SearchRecent(ctx, query, c.cfg.SearchHitsPerQuery)
		if err != nil {
			logger.Log.Errorf("search %q failed, skipping: %v", query, err)
			continue
		}
		before := len(items)
		items, err = c.appendHits(ctx, items, hits, seen)
		if err != nil {
			return nil, err
		}
		logger.Log.Infof("%d new stories from %q", len(items)-before, query)
	}

	if err := c.saveSnapshot(items); err != nil {
		return nil, err
	}
	logger.Log.Infof("collected %d stories total", len(items))
	return items, nil
}

func (c *Collector) appendHits(ctx context.Context, items []models.RawItem, hits []hackernews.SearchHit, seen map[string]bool) ([]models.RawItem, error) {
	for _, hit := range hits {
		if hit.ObjectID == "" || seen[hit.ObjectID] {
			continue
		}
		seen[hit.ObjectID] = true

		var comments []models.Comment
		if c.FetchComments {
			nodes, err := c.client.TopComments(ctx, hit.ObjectID, c.cfg.TopComments)
			if err != nil {
				// Lost comments are not worth losing the story over.
				logger.Log.Warnf("comments fetch for %s failed: %v", hit.ObjectID, err)
			}
			for _, n := range nodes {
				comments = append(comments, models.Comment{Body: n.Text, Author: n.Author})
			}
			if c.Pause > 0 {
				if err := sleepCtx(ctx, c.Pause); err != nil {
					return items, err
				}
			}
		}
		items = append(items, c.normalizeHit(hit, comments))
	}
	return items, nil
}

// sleepCtx waits out the politeness pause but returns early when the
// collection is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Collector) normalizeHit(hit hackernews.SearchHit, comments []models.Comment) models.RawItem {
	sourceTag := "story"
	if len(hit.Tags) > 0 {
		sourceTag = hit.Tags[0]
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	return models.RawItem{
		ID:          hit.ObjectID,
		Title:       hit.Title,
		URL:         hit.URL,
		StoryText:   hit.StoryText,
		Score:       hit.Points,
		NumComments: hit.NumComments,
		CreatedUTC:  hit.CreatedAtI,
		Author:      hit.Author,
		HNURL:       fmt.Sprintf(c.cfg.ItemURLFormat, hit.ObjectID),
		SourceTag:   sourceTag,
		TopComments: comments,
	}
}

// saveSnapshot writes the full deduplicated sequence for audit and replay.
func (c *Collector) saveSnapshot(items []models.RawItem) error {
	date := c.Now().UTC().Format("2006-01-02")
	path := filepath.Join(c.rawDir, date+"_hn.json")
	if err := storage.WriteJSONAtomic(path, items); err != nil {
		return fmt.Errorf("save raw snapshot: %w", err)
	}
	logger.Log.Infof("saved raw snapshot to %s", path)
	return nil
}
