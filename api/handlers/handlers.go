package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"the-daily/agent"
	"the-daily/internal/logger"
	"the-daily/models"
	"the-daily/storage"
)

// ChatRequest is the query-facing interface: the current question plus the
// caller-owned conversation history.
type ChatRequest struct {
	Query   string               `json:"query" binding:"required"`
	History []models.ChatMessage `json:"history"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

// NoEditionResponse is returned when no batch cycle has published artifacts
// yet.
const NoEditionResponse = "No edition available yet. Run the pipeline to generate today's digest."

// ChatHandler answers one question over the day's corpus. engine may be nil
// when the server started before any pipeline run; the handler then degrades
// to a fixed message rather than erroring.
func ChatHandler(engine *agent.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
			return
		}
		if engine == nil {
			c.JSON(http.StatusOK, ChatResponse{Response: NoEditionResponse})
			return
		}
		response := engine.Answer(c.Request.Context(), req.Query, req.History)
		c.JSON(http.StatusOK, ChatResponse{Response: response})
	}
}

// DigestHandler serves the persisted daily digest. The file is re-read per
// request so a newly published edition is picked up without a restart.
func DigestHandler(path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var digest models.Digest
		if err := storage.ReadJSON(path, &digest); err != nil {
			if os.IsNotExist(err) {
				c.JSON(http.StatusNotFound, gin.H{"error": "no digest available yet"})
				return
			}
			logger.ErrorWithFields("failed to load daily digest", logger.Fields{"path": path, "error": err.Error()})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load daily digest"})
			return
		}
		c.JSON(http.StatusOK, digest)
	}
}

// ChartsHandler serves the persisted charts dataset.
func ChartsHandler(path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var charts models.ChartsData
		if err := storage.ReadJSON(path, &charts); err != nil {
			if os.IsNotExist(err) {
				c.JSON(http.StatusNotFound, gin.H{"error": "no charts data available yet"})
				return
			}
			logger.ErrorWithFields("failed to load charts data", logger.Fields{"path": path, "error": err.Error()})
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load charts data"})
			return
		}
		c.JSON(http.StatusOK, charts)
	}
}
