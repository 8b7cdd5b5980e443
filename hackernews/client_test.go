package hackernews_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"the-daily/hackernews"
)

func TestFrontPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "front_page", r.URL.Query().Get("tags"))
		assert.Equal(t, "200", r.URL.Query().Get("hitsPerPage"))
		fmt.Fprint(w, `{"hits":[
			{"objectID":"101","title":"Big launch","points":420,"num_comments":99,"_tags":["story","front_page"]},
			{"objectID":"102","title":"Quiet story","points":12,"num_comments":3,"_tags":["story"]}
		]}`)
	}))
	defer srv.Close()

	client := hackernews.NewClient(srv.Client(), srv.URL)
	hits, err := client.FrontPage(context.Background(), 200)

	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "101", hits[0].ObjectID)
	assert.Equal(t, "Big launch", hits[0].Title)
	assert.Equal(t, 420, hits[0].Points)
	assert.Equal(t, []string{"story", "front_page"}, hits[0].Tags)
}

func TestSearchRecent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search_by_date", r.URL.Path)
		assert.Equal(t, "machine learning", r.URL.Query().Get("query"))
		assert.Equal(t, "story", r.URL.Query().Get("tags"))
		fmt.Fprint(w, `{"hits":[{"objectID":"201","title":"ML paper"}]}`)
	}))
	defer srv.Close()

	client := hackernews.NewClient(srv.Client(), srv.URL)
	hits, err := client.SearchRecent(context.Background(), "machine learning", 50)

	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "201", hits[0].ObjectID)
}

func TestTopCommentsSlicesBeforeFiltering(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/items/301", r.URL.Path)
		// Four children; limit 3 considers only the first three, then drops
		// the empty-text one.
		fmt.Fprint(w, `{"children":[
			{"text":"","author":"ghost"},
			{"text":"solid take","author":"alice"},
			{"text":"counterpoint","author":"bob"},
			{"text":"beyond the limit","author":"carol"}
		]}`)
	}))
	defer srv.Close()

	client := hackernews.NewClient(srv.Client(), srv.URL)
	comments, err := client.TopComments(context.Background(), "301", 3)

	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "alice", comments[0].Author)
	assert.Equal(t, "bob", comments[1].Author)
}

func TestTopCommentsDropsAnonymous(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"children":[{"text":"orphaned comment","author":""}]}`)
	}))
	defer srv.Close()

	client := hackernews.NewClient(srv.Client(), srv.URL)
	comments, err := client.TopComments(context.Background(), "1", 5)

	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestSearchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := hackernews.NewClient(srv.Client(), srv.URL)
	_, err := client.FrontPage(context.Background(), 10)
	assert.Error(t, err)
}
