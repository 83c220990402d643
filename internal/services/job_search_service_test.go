package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/justsurfingit/voice-job-matcher/internal/models"
)

func TestJobSearchServiceSearch(t *testing.T) {
	const answer = `{"data":{"totalCount":1,"jobs":[{"id":"1","title":"Verpleegkundige"}]},"statusCode":200,"ticketId":null,"messages":null}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		var got models.JobSearchRequest
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("request body: %v", err)
		}
		if len(got.QueryTexts) != 1 || got.QueryTexts[0] != "Verpleegkundige" {
			t.Errorf("queryTexts = %v", got.QueryTexts)
		}
		if !strings.Contains(string(body), `"location":null`) {
			t.Errorf("body %s should carry an explicit null location", body)
		}
		w.Write([]byte(answer))
	}))
	defer srv.Close()

	svc := NewJobSearchService(srv.URL, 5*time.Second)
	resp, err := svc.Search(context.Background(), ToJobSearchRequest(models.CandidateInfo{Function: "Verpleegkundige"}))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if string(resp) != answer {
		t.Errorf("response = %s, want passthrough", resp)
	}
}

func TestJobSearchServiceErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
		},
		{
			name: "html instead of json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("<html>maintenance</html>"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := NewJobSearchService(srv.URL, time.Second).Search(context.Background(), ToJobSearchRequest(models.CandidateInfo{}))
			if !errors.Is(err, ErrSearch) {
				t.Fatalf("err = %v, want ErrSearch", err)
			}
		})
	}
}

func TestJobSearchServiceTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewJobSearchService(url, time.Second).Search(context.Background(), ToJobSearchRequest(models.CandidateInfo{}))
	if !errors.Is(err, ErrSearch) {
		t.Fatalf("err = %v, want ErrSearch", err)
	}
}

func TestMockJobSearcher(t *testing.T) {
	resp, err := MockJobSearcher{}.Search(context.Background(), ToJobSearchRequest(models.CandidateInfo{}))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	var decoded struct {
		Data struct {
			TotalCount int `json:"totalCount"`
			Jobs       []struct {
				Title string `json:"title"`
			} `json:"jobs"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp, &decoded); err != nil {
		t.Fatalf("mock response is not valid JSON: %v", err)
	}
	if decoded.Data.TotalCount != 5 || len(decoded.Data.Jobs) != 5 {
		t.Fatalf("got %d/%d jobs, want 5", decoded.Data.TotalCount, len(decoded.Data.Jobs))
	}
	if decoded.Data.Jobs[0].Title != "Metser" {
		t.Errorf("first job = %q, want Metser", decoded.Data.Jobs[0].Title)
	}
}
