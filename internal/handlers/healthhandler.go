package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/voice-job-matcher/internal/dtos"
	"github.com/justsurfingit/voice-job-matcher/internal/models"
)

type RunLister interface {
	Recent(limit int) ([]models.PipelineRun, error)
}

type StatusHandler struct {
	Runs     RunLister
	MockMode bool
	APIURL   string
}

func NewStatusHandler(runs RunLister, mockMode bool, apiURL string) *StatusHandler {
	return &StatusHandler{Runs: runs, MockMode: mockMode, APIURL: apiURL}
}

func (h *StatusHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, dtos.HealthResponse{
		Status:   "ok",
		MockMode: h.MockMode,
		APIURL:   h.APIURL,
	})
}

// ListRuns is GET /runs: the most recent pipeline audit records.
func (h *StatusHandler) ListRuns(c *gin.Context) {
	var q dtos.RunsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}
	runs, err := h.Runs.Recent(q.Limit)
	if err != nil {
		log.Printf("❌ Error listing runs: %v", err)
		c.JSON(http.StatusInternalServerError, dtos.ErrorResponse{Error: "Error listing runs"})
		return
	}
	c.JSON(http.StatusOK, runs)
}
