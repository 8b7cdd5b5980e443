package models

// PostMetadata is one row of the metadata store. Row i of the store describes
// the post whose embedding sits at row i of the vector index; that alignment
// is the join key between the two artifacts.
// Artifact: processed/summaries.json
type PostMetadata struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Summary     string   `json:"summary"`
	Score       int      `json:"score"`
	NumComments int      `json:"num_comments"`
	HNURL       string   `json:"hn_url"`
	URL         string   `json:"url"`
	Topics      []string `json:"topics"`
	StoryText   string   `json:"story_text"`
}

// RetrievedPost is a metadata row plus the similarity score assigned by the
// vector index at query time.
type RetrievedPost struct {
	PostMetadata
	Relevance float64 `json:"relevance_score"`
}
