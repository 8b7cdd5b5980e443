package pipeline

import (
	"math"
	"net/url"
	"sort"
	"strings"
	"time"

	"the-daily/models"
)

// Insight extraction: pure functions over the full cleaned+enriched batch.
// Each function is independent and must see the whole batch, never a subset.

// TrendingTopics groups scores by topic label (a post can contribute to
// several topics) and returns count plus mean score per topic, most frequent
// first. Ties break on the topic name for stable output.
func TrendingTopics(posts []models.Post, topics [][]string) []models.TopicTrend {
	scores := make(map[string][]int)
	for i, post := range posts {
		for _, t := range topics[i] {
			scores[t] = append(scores[t], post.Score)
		}
	}

	trends := make([]models.TopicTrend, 0, len(scores))
	for topic, ss := range scores {
		sum := 0
		for _, s := range ss {
			sum += s
		}
		avg := float64(sum) / float64(len(ss))
		trends = append(trends, models.TopicTrend{
			Topic:    topic,
			Count:    len(ss),
			AvgScore: round1(avg),
		})
	}
	sort.Slice(trends, func(i, j int) bool {
		if trends[i].Count != trends[j].Count {
			return trends[i].Count > trends[j].Count
		}
		return trends[i].Topic < trends[j].Topic
	})
	return trends
}

// DetectBreakthroughs flags stories whose score reaches the threshold,
// highest score first.
func DetectBreakthroughs(posts []models.Post, summaries []string, topics [][]string, threshold int) []models.StoryRef {
	var out []models.StoryRef
	for i, post := range posts {
		if post.Score >= threshold {
			out = append(out, storyRef(post, summaries[i], topics[i]))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// TopStories returns the n highest-scored stories, ties kept in original
// batch order.
func TopStories(posts []models.Post, summaries []string, topics [][]string, n int) []models.StoryRef {
	idx := make([]int, len(posts))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return posts[idx[a]].Score > posts[idx[b]].Score })
	if n > len(idx) {
		n = len(idx)
	}
	out := make([]models.StoryRef, 0, n)
	for _, i := range idx[:n] {
		out = append(out, storyRef(posts[i], summaries[i], topics[i]))
	}
	return out
}

// HotDiscussions ranks stories with at least floor comments by how much
// discussion they drew relative to their score, descending, top n. Ranking
// uses the exact ratio; the rounded value only lands in the artifact field.
func HotDiscussions(posts []models.Post, summaries []string, topics [][]string, floor, n int) []models.HotDiscussion {
	type candidate struct {
		ref   models.StoryRef
		ratio float64
	}
	var cands []candidate
	for i, post := range posts {
		if post.NumComments < floor {
			continue
		}
		score := post.Score
		if score < 1 {
			score = 1
		}
		cands = append(cands, candidate{
			ref:   storyRef(post, summaries[i], topics[i]),
			ratio: float64(post.NumComments) / float64(score),
		})
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].ratio > cands[j].ratio })
	if n < len(cands) {
		cands = cands[:n]
	}
	out := make([]models.HotDiscussion, len(cands))
	for i, c := range cands {
		out[i] = models.HotDiscussion{StoryRef: c.ref, Ratio: round1(c.ratio)}
	}
	return out
}

// DomainLeaderboard counts stories per external URL host, with any leading
// "www." stripped, top n by count.
func DomainLeaderboard(posts []models.Post, n int) []models.DomainCount {
	counts := make(map[string]int)
	for _, post := range posts {
		host := domainOf(post.URL)
		if host == "" {
			continue
		}
		counts[host]++
	}
	out := make([]models.DomainCount, 0, len(counts))
	for domain, count := range counts {
		out = append(out, models.DomainCount{Domain: domain, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Domain < out[j].Domain
	})
	if n < len(out) {
		out = out[:n]
	}
	return out
}

func domainOf(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

var storyTypePrefixes = []string{"Show HN", "Ask HN", "Tell HN", "Launch HN"}

// StoryTypeBreakdown classifies stories by their title prefix into the fixed
// HN categories, with everything else counted as Article. Zero-count
// categories are omitted.
func StoryTypeBreakdown(posts []models.Post) []models.StoryTypeCount {
	counts := make(map[string]int)
	for _, post := range posts {
		category := "Article"
		for _, prefix := range storyTypePrefixes {
			if strings.HasPrefix(post.Title, prefix) {
				category = prefix
				break
			}
		}
		counts[category]++
	}

	var out []models.StoryTypeCount
	for _, category := range append(storyTypePrefixes, "Article") {
		if counts[category] > 0 {
			out = append(out, models.StoryTypeCount{Type: category, Count: counts[category]})
		}
	}
	return out
}

var engagementBuckets = []struct {
	label string
	max   int
}{
	{"0-10", 10},
	{"11-50", 50},
	{"51-100", 100},
	{"101-250", 250},
	{"250+", -1},
}

// CommentEngagement buckets stories by comment count.
func CommentEngagement(posts []models.Post) []models.EngagementBucket {
	counts := make([]int, len(engagementBuckets))
	for _, post := range posts {
		for i, b := range engagementBuckets {
			if b.max < 0 || post.NumComments <= b.max {
				counts[i]++
				break
			}
		}
	}
	out := make([]models.EngagementBucket, len(engagementBuckets))
	for i, b := range engagementBuckets {
		out[i] = models.EngagementBucket{Bucket: b.label, Count: counts[i]}
	}
	return out
}

// ScoreDistribution returns the raw score list for histogramming.
func ScoreDistribution(posts []models.Post) []int {
	scores := make([]int, len(posts))
	for i, post := range posts {
		scores[i] = post.Score
	}
	return scores
}

// BuildChartsData assembles the charts artifact from the full batch.
func BuildChartsData(posts []models.Post, summaries []string, topics [][]string, floor, topN int, now time.Time) models.ChartsData {
	return models.ChartsData{
		TrendingTopics:    TrendingTopics(posts, topics),
		CommentEngagement: CommentEngagement(posts),
		ScoreDistribution: ScoreDistribution(posts),
		DomainLeaderboard: DomainLeaderboard(posts, topN),
		StoryTypes:        StoryTypeBreakdown(posts),
		HotDiscussions:    HotDiscussions(posts, summaries, topics, floor, topN),
		GeneratedAt:       now.UTC(),
	}
}

// BuildDigest assembles the daily digest: date, batch size, top-5
// breakthroughs, top-10 stories and the trending table.
func BuildDigest(posts []models.Post, summaries []string, topics [][]string, breakthroughThreshold int, now time.Time) models.Digest {
	breakthroughs := DetectBreakthroughs(posts, summaries, topics, breakthroughThreshold)
	if len(breakthroughs) > 5 {
		breakthroughs = breakthroughs[:5]
	}
	return models.Digest{
		Date:           now.UTC().Format("2006-01-02"),
		TotalPosts:     len(posts),
		Breakthroughs:  breakthroughs,
		TopPosts:       TopStories(posts, summaries, topics, 10),
		TrendingTopics: TrendingTopics(posts, topics),
	}
}

func storyRef(post models.Post, summary string, topics []string) models.StoryRef {
	return models.StoryRef{
		Title:       post.Title,
		Summary:     summary,
		Score:       post.Score,
		NumComments: post.NumComments,
		HNURL:       post.HNURL,
		URL:         post.URL,
		Topics:      topics,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
