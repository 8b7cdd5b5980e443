package enricher_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"the-daily/config"
	"the-daily/enricher"
)

func TestClassify(t *testing.T) {
	c := enricher.NewClassifier(map[string][]string{
		"AI/ML":    {"machine learning", "llm"},
		"Security": {"vulnerability", "exploit"},
		"Web":      {"react", "frontend"},
	})

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"single topic", "A new LLM benchmark dropped", []string{"AI/ML"}},
		{"case insensitive", "CRITICAL VULNERABILITY in popular library", []string{"Security"}},
		{"multiple topics sorted", "Exploit found in React frontend, patched by machine learning", []string{"AI/ML", "Security", "Web"}},
		{"no match falls back to General", "A story about gardening", []string{enricher.GeneralTopic}},
		{"empty text", "", []string{enricher.GeneralTopic}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.text))
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	c := enricher.NewClassifier(config.DefaultTopicKeywords())
	text := "Open source Rust compiler gets GPU acceleration on AWS"

	first := c.Classify(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, c.Classify(text))
	}
}

func TestClassifyMatchesAtMostOncePerTopic(t *testing.T) {
	c := enricher.NewClassifier(map[string][]string{
		"AI/ML": {"ai", "llm", "gpt"},
	})
	// Several keywords of the same topic hit; the label appears once.
	assert.Equal(t, []string{"AI/ML"}, c.Classify("ai llm gpt all in one title"))
}
