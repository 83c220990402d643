package services

import (
	"context"
	_ "embed"
	"encoding/json"
	"log"

	"github.com/justsurfingit/voice-job-matcher/internal/models"
)

//go:embed fixtures/mock_jobs.json
var mockJobsResponse []byte

// MockJobSearcher answers every query with the same five demo vacancies,
// best matches first.
type MockJobSearcher struct{}

func (MockJobSearcher) Search(ctx context.Context, req models.JobSearchRequest) (json.RawMessage, error) {
	log.Printf("🎭 Serving mock job matches for %v", req.QueryTexts)
	out := make(json.RawMessage, len(mockJobsResponse))
	copy(out, mockJobsResponse)
	return out, nil
}
