package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/justsurfingit/voice-job-matcher/internal/models"
)

const DefaultJobSearchURL = "https://accentjobs.be/api/accj/job/search"

// JobSearchService posts queries to the AccentJobs search API and hands the
// response back without interpreting it.
type JobSearchService struct {
	Endpoint   string
	HTTPClient *http.Client
}

func NewJobSearchService(endpoint string, timeout time.Duration) *JobSearchService {
	if endpoint == "" {
		endpoint = DefaultJobSearchURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &JobSearchService{
		Endpoint:   endpoint,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

func (s *JobSearchService) Search(ctx context.Context, req models.JobSearchRequest) (json.RawMessage, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding request: %v", ErrSearch, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrSearch, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := s.HTTPClient.Do(httpReq)
	if err != nil {
		log.Printf("❌ Error searching for jobs: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrSearch, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrSearch, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrSearch, resp.StatusCode)
	}
	if !json.Valid(respBody) {
		return nil, fmt.Errorf("%w: response is not JSON", ErrSearch)
	}
	return json.RawMessage(respBody), nil
}
