package models

// Comment is a single top-level comment kept with a story.
type Comment struct {
	Body   string `json:"body"`
	Author string `json:"author"`
}

// RawItem is a story exactly as fetched from the Algolia HN API, before any
// cleaning. Written append-only to the dated raw snapshot.
type RawItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	StoryText   string    `json:"story_text"`
	Score       int       `json:"score"`
	NumComments int       `json:"num_comments"`
	CreatedUTC  int64     `json:"created_utc"`
	Author      string    `json:"author"`
	HNURL       string    `json:"hn_url"`
	SourceTag   string    `json:"source_tag"`
	TopComments []Comment `json:"top_comments"`
}

// Post is the canonical cleaned story. IDs are unique within a batch, the
// title is non-empty, text fields are normalized, and the score is at or
// above the configured floor. Posts are not mutated after cleaning.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	StoryText   string    `json:"story_text"`
	Score       int       `json:"score"`
	NumComments int       `json:"num_comments"`
	HNURL       string    `json:"hn_url"`
	TopComments []Comment `json:"top_comments"`
}
