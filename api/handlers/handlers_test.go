package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"the-daily/api/handlers"
	"the-daily/models"
	"the-daily/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performJSON(t *testing.T, handler gin.HandlerFunc, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	r.Handle(method, path, handler)
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestChatHandlerRequiresQuery(t *testing.T) {
	w := performJSON(t, handlers.ChatHandler(nil), http.MethodPost, "/chat", `{"history":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatHandlerWithoutEngine(t *testing.T) {
	w := performJSON(t, handlers.ChatHandler(nil), http.MethodPost, "/chat", `{"query":"anything today?"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp handlers.ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, handlers.NoEditionResponse, resp.Response)
}

func TestDigestHandlerMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daily_digest.json")
	w := performJSON(t, handlers.DigestHandler(path), http.MethodGet, "/digest", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDigestHandlerServesPublishedDigest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daily_digest.json")
	digest := models.Digest{Date: "2026-03-14", TotalPosts: 42}
	require.NoError(t, storage.WriteJSONAtomic(path, digest))

	w := performJSON(t, handlers.DigestHandler(path), http.MethodGet, "/digest", "")

	require.Equal(t, http.StatusOK, w.Code)
	var got models.Digest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "2026-03-14", got.Date)
	assert.Equal(t, 42, got.TotalPosts)
}

func TestDigestHandlerCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daily_digest.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	w := performJSON(t, handlers.DigestHandler(path), http.MethodGet, "/digest", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestChartsHandlerMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charts_data.json")
	w := performJSON(t, handlers.ChartsHandler(path), http.MethodGet, "/charts", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChartsHandlerServesPublishedCharts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charts_data.json")
	charts := models.ChartsData{
		ScoreDistribution: []int{5, 300, 50},
		GeneratedAt:       time.Date(2026, 3, 14, 6, 0, 0, 0, time.UTC),
	}
	require.NoError(t, storage.WriteJSONAtomic(path, charts))

	w := performJSON(t, handlers.ChartsHandler(path), http.MethodGet, "/charts", "")

	require.Equal(t, http.StatusOK, w.Code)
	var got models.ChartsData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, []int{5, 300, 50}, got.ScoreDistribution)
}
