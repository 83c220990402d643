package models

import (
	"encoding/json"
	"time"
)

// AudioHandle points at an uploaded recording in the scratch directory.
type AudioHandle string

// Transcript is the text returned by the speech-to-text provider.
// Placeholder is set when the text is a canned message (mock mode or a
// rejected credential) rather than a real transcription.
type Transcript struct {
	Text        string
	Placeholder bool
}

// CandidateInfo is what the LLM pulls out of a transcript.
type CandidateInfo struct {
	Function string `json:"function"`
	Location string `json:"location"`
}

type Facet struct {
	Key            string   `json:"key"`
	SelectedValues []string `json:"selectedValues"`
}

type LocationCoordinate struct {
	CityName  string `json:"cityName"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
	Name      string `json:"name"`
	ZipCode   string `json:"zipCode"`
}

type SearchLocation struct {
	LocationCoordinates []LocationCoordinate `json:"locationCoordinates"`
	Radius              string               `json:"radius"`
}

// JobSearchRequest is the payload accepted by the job search API.
// Location has no omitempty: the API expects an explicit null.
type JobSearchRequest struct {
	Limit      int             `json:"limit" binding:"min=0"`
	QueryTexts []string        `json:"queryTexts"`
	Language   string          `json:"language"`
	Facets     []Facet         `json:"facets"`
	Location   *SearchLocation `json:"location"`
	Filters    []any           `json:"filters"`
}

// PipelineState tracks how far a pipeline run got.
type PipelineState string

const (
	StateUploaded     PipelineState = "UPLOADED"
	StateStored       PipelineState = "STORED"
	StateTranscribed  PipelineState = "TRANSCRIBED"
	StateExtracted    PipelineState = "EXTRACTED"
	StateTransformed  PipelineState = "TRANSFORMED"
	StateSearched     PipelineState = "SEARCHED"
	StateSearchFailed PipelineState = "SEARCH_FAILED"
	StateCompleted    PipelineState = "COMPLETED"
	StateFailed       PipelineState = "FAILED"
)

// PipelineResult is returned by the transcribe endpoint.
// JobSearchResponse is passed through from the job search API untouched.
type PipelineResult struct {
	RunID             string           `json:"-"`
	State             PipelineState    `json:"-"`
	SearchSucceeded   bool             `json:"-"`
	Transcription     string           `json:"transcription"`
	CandidateInfo     CandidateInfo    `json:"candidateInfo"`
	JobSearchRequest  JobSearchRequest `json:"jobSearchRequest"`
	JobSearchResponse json.RawMessage  `json:"jobSearchResponse"`
}

// PipelineRun is the audit record written after every run.
// It never holds the audio or the transcript.
type PipelineRun struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	State           string `gorm:"index;not null" json:"state"`
	Function        string `json:"function"`
	Location        string `json:"location"`
	ExtractOutcome  string `json:"extract_outcome"`
	SearchSucceeded bool   `json:"search_succeeded"`
	Error           string `gorm:"type:text" json:"error,omitempty"`
	DurationMs      int64  `json:"duration_ms"`
}
