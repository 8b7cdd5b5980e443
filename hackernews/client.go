// Package hackernews talks to the public Algolia Hacker News API. No auth
// required.
package hackernews

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://hn.algolia.com/api/v1"

// SearchHit is one story record returned by the Algolia search endpoints.
type SearchHit struct {
	ObjectID    string   `json:"objectID"`
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	StoryText   string   `json:"story_text"`
	Points      int      `json:"points"`
	NumComments int      `json:"num_comments"`
	CreatedAtI  int64    `json:"created_at_i"`
	Author      string   `json:"author"`
	Tags        []string `json:"_tags"`
}

// CommentNode is a top-level child of an item.
type CommentNode struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

type searchResponse struct {
	Hits []SearchHit `json:"hits"`
}

type itemResponse struct {
	Children []CommentNode `json:"children"`
}

// Client fetches stories and comments from the Algolia HN API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Algolia HN client. baseURL may be empty for the
// public API; tests override it with an httptest server.
func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// FrontPage returns the current front-page stories.
func (c *Client) FrontPage(ctx context.Context, hitsPerPage int) ([]SearchHit, error) {
	params := url.Values{}
	params.Set("tags", "front_page")
	params.Set("hitsPerPage", strconv.Itoa(hitsPerPage))
	return c.search(ctx, "/search", params)
}

// SearchRecent searches recent stories by keyword, newest first.
func (c *Client) SearchRecent(ctx context.Context, query string, hitsPerPage int) ([]SearchHit, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("tags", "story")
	params.Set("hitsPerPage", strconv.Itoa(hitsPerPage))
	return c.search(ctx, "/search_by_date", params)
}

func (c *Client) search(ctx context.Context, path string, params url.Values) ([]SearchHit, error) {
	u := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s status: %d", path, resp.StatusCode)
	}
	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return out.Hits, nil
}

// TopComments returns up to limit top-level comments of an item, keeping only
// comments with a non-empty body and a known author.
func (c *Client) TopComments(ctx context.Context, objectID string, limit int) ([]CommentNode, error) {
	u := fmt.Sprintf("%s/items/%s", c.baseURL, objectID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request item %s: %w", objectID, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("item %s status: %d", objectID, resp.StatusCode)
	}
	var out itemResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode item %s: %w", objectID, err)
	}

	children := out.Children
	if len(children) > limit {
		children = children[:limit]
	}
	comments := make([]CommentNode, 0, len(children))
	for _, child := range children {
		if child.Text == "" || child.Author == "" {
			continue
		}
		comments = append(comments, child)
	}
	return comments, nil
}
