package enricher

import (
	"sort"
	"strings"
)

// GeneralTopic labels posts that match no keyword.
const GeneralTopic = "General"

// Classifier assigns topic labels by case-insensitive keyword matching.
// Classification is pure and deterministic; no external call.
type Classifier struct {
	topics   []string
	keywords map[string][]string
}

// NewClassifier builds a classifier from a topic → keyword table. Topics are
// evaluated in sorted order so the label order is stable across runs.
func NewClassifier(keywords map[string][]string) *Classifier {
	topics := make([]string, 0, len(keywords))
	for topic := range keywords {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	return &Classifier{topics: topics, keywords: keywords}
}

// Classify returns every topic whose keyword list hits the text. A post with
// no hits gets the single General label.
func (c *Classifier) Classify(text string) []string {
	lower := strings.ToLower(text)
	var labels []string
	for _, topic := range c.topics {
		for _, kw := range c.keywords[topic] {
			if strings.Contains(lower, kw) {
				labels = append(labels, topic)
				break
			}
		}
	}
	if len(labels) == 0 {
		return []string{GeneralTopic}
	}
	return labels
}
