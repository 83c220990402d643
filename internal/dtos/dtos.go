package dtos

import "github.com/justsurfingit/voice-job-matcher/internal/models"

// JobSearchRequest is the body of POST /job-search.
type JobSearchRequest = models.JobSearchRequest

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	MockMode bool   `json:"mock_mode"`
	APIURL   string `json:"api_url"`
}

type RunsQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}
