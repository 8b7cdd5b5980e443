package cleaner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"the-daily/cleaner"
	"the-daily/models"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text untouched", "Just a plain sentence.", "Just a plain sentence."},
		{"strips tags", "<p>Hello <b>world</b></p>", "Hello world"},
		{"strips entities", "fish &amp; chips &gt; salad", "fish chips salad"},
		{"strips entities inside markup", "<p>fish &amp; chips &gt; salad</p>", "fish chips salad"},
		{"collapses whitespace", "too   many\n\nspaces\there", "too many spaces here"},
		{"trims edges", "  padded  ", "padded"},
		{"empty input", "", ""},
		{"nested markup", "<div><p>outer <span>inner</span></p></div>", "outer inner"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleaner.NormalizeText(tt.input))
		})
	}
}

func TestNormalizeTextIdempotent(t *testing.T) {
	inputs := []string{
		"<p>Hello &amp; goodbye</p>",
		"plain text",
		"  spaced   out  ",
	}
	for _, in := range inputs {
		once := cleaner.NormalizeText(in)
		twice := cleaner.NormalizeText(once)
		assert.Equal(t, once, twice, "normalizing twice must not change the result for %q", in)
	}
}

func TestCleanFilters(t *testing.T) {
	raw := []models.RawItem{
		{ID: "1", Title: "Keeps this", Score: 50},
		{ID: "2", Title: "", Score: 100},       // no title
		{ID: "3", Title: "Too quiet", Score: 3}, // below min score
		{ID: "4", Title: "Also kept", Score: 10},
	}

	posts := cleaner.Clean(raw, 10)

	assert.Len(t, posts, 2)
	assert.Equal(t, "1", posts[0].ID)
	assert.Equal(t, "4", posts[1].ID)
}

func TestCleanDedupKeepsFirst(t *testing.T) {
	raw := []models.RawItem{
		{ID: "1", Title: "First occurrence", Score: 50},
		{ID: "2", Title: "Other story", Score: 30},
		{ID: "1", Title: "Duplicate with different title", Score: 99},
	}

	posts := cleaner.Clean(raw, 10)

	assert.Len(t, posts, 2)
	assert.Equal(t, "First occurrence", posts[0].Title)
	assert.Equal(t, 50, posts[0].Score)
}

func TestCleanNormalizesAllTextFields(t *testing.T) {
	raw := []models.RawItem{
		{
			ID:        "1",
			Title:     "A story about &amp; stuff",
			StoryText: "<p>Some   body</p>",
			Score:     20,
			TopComments: []models.Comment{
				{Body: "<i>great</i>  post", Author: "alice"},
			},
		},
	}

	posts := cleaner.Clean(raw, 10)

	assert.Len(t, posts, 1)
	assert.Equal(t, "A story about stuff", posts[0].Title)
	assert.Equal(t, "Some body", posts[0].StoryText)
	assert.Equal(t, "great post", posts[0].TopComments[0].Body)
	assert.Equal(t, "alice", posts[0].TopComments[0].Author)
}

func TestCleanPreservesOrder(t *testing.T) {
	raw := []models.RawItem{
		{ID: "c", Title: "Third by score", Score: 10},
		{ID: "a", Title: "Highest score", Score: 500},
		{ID: "b", Title: "Middle", Score: 100},
	}

	posts := cleaner.Clean(raw, 10)

	ids := []string{posts[0].ID, posts[1].ID, posts[2].ID}
	assert.Equal(t, []string{"c", "a", "b"}, ids, "cleaning must keep input order, not rank")
}
