package models

import "time"

// TopicTrend aggregates the scores of every post labeled with one topic.
type TopicTrend struct {
	Topic    string  `json:"topic"`
	Count    int     `json:"count"`
	AvgScore float64 `json:"avg_score"`
}

// StoryRef is the digest-facing view of a single story.
type StoryRef struct {
	Title       string   `json:"title"`
	Summary     string   `json:"summary"`
	Score       int      `json:"score"`
	NumComments int      `json:"num_comments"`
	HNURL       string   `json:"hn_url"`
	URL         string   `json:"url,omitempty"`
	Topics      []string `json:"topics"`
}

// HotDiscussion is a story ranked by how much discussion it drew relative to
// its score.
type HotDiscussion struct {
	StoryRef
	Ratio float64 `json:"ratio"`
}

// DomainCount is one row of the domain leaderboard.
type DomainCount struct {
	Domain string `json:"domain"`
	Count  int    `json:"count"`
}

// StoryTypeCount is one row of the title-prefix breakdown. Zero-count
// categories are omitted from the artifact.
type StoryTypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// EngagementBucket is one comment-count bucket.
type EngagementBucket struct {
	Bucket string `json:"bucket"`
	Count  int    `json:"count"`
}

// Digest is the persisted daily summary.
// Artifact: processed/daily_digest.json
type Digest struct {
	Date           string       `json:"date"`
	TotalPosts     int          `json:"total_posts"`
	Breakthroughs  []StoryRef   `json:"breakthroughs"`
	TopPosts       []StoryRef   `json:"top_posts"`
	TrendingTopics []TopicTrend `json:"trending_topics"`
}

// ChartsData is the persisted dataset backing the visualization views.
// Artifact: processed/charts_data.json
type ChartsData struct {
	TrendingTopics    []TopicTrend       `json:"trending_topics"`
	CommentEngagement []EngagementBucket `json:"comment_engagement"`
	ScoreDistribution []int              `json:"score_distribution"`
	DomainLeaderboard []DomainCount      `json:"domain_leaderboard"`
	StoryTypes        []StoryTypeCount   `json:"story_types"`
	HotDiscussions    []HotDiscussion    `json:"hot_discussions"`
	GeneratedAt       time.Time          `json:"generated_at"`
}
