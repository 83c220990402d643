package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/voice-job-matcher/internal/dtos"
	"github.com/justsurfingit/voice-job-matcher/internal/services"
)

type JobHandler struct {
	Searcher services.JobSearcher
}

func NewJobHandler(s services.JobSearcher) *JobHandler {
	return &JobHandler{Searcher: s}
}

// SearchJobs is the POST /job-search endpoint. The job search API's answer
// is returned as-is.
func (h *JobHandler) SearchJobs(c *gin.Context) {
	var req dtos.JobSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	resp, err := h.Searcher.Search(c.Request.Context(), req)
	if err != nil {
		log.Printf("❌ Error searching for jobs: %v", err)
		c.JSON(http.StatusInternalServerError, dtos.ErrorResponse{Error: "Error searching for jobs"})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", resp)
}
