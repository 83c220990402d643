package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/justsurfingit/voice-job-matcher/internal/metrics"
	"github.com/justsurfingit/voice-job-matcher/internal/models"
)

//go:generate mockgen -source=pipeline_service.go -destination=mocks/mock_pipeline.go -package=mocks

type AudioStore interface {
	Save(data []byte, originalName string) (models.AudioHandle, error)
	Delete(handle models.AudioHandle) error
}

type Transcriber interface {
	Transcribe(ctx context.Context, handle models.AudioHandle) (models.Transcript, error)
}

type Extractor interface {
	Extract(ctx context.Context, transcript string) Extraction
}

type JobSearcher interface {
	Search(ctx context.Context, req models.JobSearchRequest) (json.RawMessage, error)
}

type RunRecorder interface {
	Record(run *models.PipelineRun) error
}

// PipelineService turns one uploaded recording into job matches:
// store -> transcribe -> extract -> transform -> search.
type PipelineService struct {
	Store       AudioStore
	Transcriber Transcriber
	Extractor   Extractor
	Searcher    JobSearcher
	Recorder    RunRecorder      // optional
	Metrics     *metrics.Metrics // optional
}

func NewPipelineService(store AudioStore, t Transcriber, e Extractor, s JobSearcher, r RunRecorder, m *metrics.Metrics) *PipelineService {
	return &PipelineService{
		Store:       store,
		Transcriber: t,
		Extractor:   e,
		Searcher:    s,
		Recorder:    r,
		Metrics:     m,
	}
}

// Run executes the whole pipeline. Storage and transcription errors are
// returned; a failed job search only leaves JobSearchResponse nil.
func (p *PipelineService) Run(ctx context.Context, data []byte, originalName string) (*models.PipelineResult, error) {
	started := time.Now()
	run := &models.PipelineRun{ID: uuid.NewString(), State: string(models.StateUploaded)}
	logPrefix := fmt.Sprintf("[Run: %s]", run.ID[:8])

	log.Printf("%s 📥 START processing %q (%d bytes)", logPrefix, originalName, len(data))
	result, err := p.run(ctx, data, originalName, run, logPrefix)

	run.DurationMs = time.Since(started).Milliseconds()
	if err != nil {
		run.Error = err.Error()
		p.countRun(string(models.StateFailed))
		log.Printf("%s ❌ FAILED in state %s: %v", logPrefix, run.State, err)
	} else {
		if result.SearchSucceeded {
			p.countRun(string(models.StateSearched))
		} else {
			p.countRun(string(models.StateSearchFailed))
		}
		log.Printf("%s ✅ Completed in %dms", logPrefix, run.DurationMs)
	}
	p.record(run, logPrefix)

	return result, err
}

func (p *PipelineService) run(ctx context.Context, data []byte, originalName string, run *models.PipelineRun, logPrefix string) (*models.PipelineResult, error) {
	// --- STEP 1: STORE ---
	stageStart := time.Now()
	handle, err := p.Store.Save(data, originalName)
	p.observe("store", stageStart)
	if err != nil {
		return nil, err
	}
	run.State = string(models.StateStored)

	// --- STEP 2: TRANSCRIBE ---
	stageStart = time.Now()
	transcript, err := p.transcribeAndDiscard(ctx, handle, logPrefix)
	p.observe("transcribe", stageStart)
	if err != nil {
		return nil, err
	}
	run.State = string(models.StateTranscribed)
	log.Printf("%s 📝 Transcribed %d characters (placeholder=%t)", logPrefix, len(transcript.Text), transcript.Placeholder)

	// --- STEP 3: EXTRACT ---
	// Canned text carries nothing about the candidate.
	stageStart = time.Now()
	extraction := Extraction{Outcome: ExtractionSkipped}
	if !transcript.Placeholder {
		extraction = p.Extractor.Extract(ctx, transcript.Text)
	}
	p.observe("extract", stageStart)
	if p.Metrics != nil {
		p.Metrics.ExtractOutcomes.WithLabelValues(string(extraction.Outcome)).Inc()
	}
	run.State = string(models.StateExtracted)
	run.Function = extraction.Info.Function
	run.Location = extraction.Info.Location
	run.ExtractOutcome = string(extraction.Outcome)
	log.Printf("%s 🧠 Extraction %s: function=%q location=%q", logPrefix, extraction.Outcome, extraction.Info.Function, extraction.Info.Location)

	// --- STEP 4: TRANSFORM ---
	request := ToJobSearchRequest(extraction.Info)
	run.State = string(models.StateTransformed)

	result := &models.PipelineResult{
		RunID:            run.ID,
		Transcription:    transcript.Text,
		CandidateInfo:    extraction.Info,
		JobSearchRequest: request,
	}

	// --- STEP 5: SEARCH ---
	stageStart = time.Now()
	response, err := p.Searcher.Search(ctx, request)
	p.observe("search", stageStart)
	if err != nil {
		log.Printf("%s ⚠️ Job search failed, continuing without results: %v", logPrefix, err)
		if p.Metrics != nil {
			p.Metrics.SearchFailures.Inc()
		}
		run.State = string(models.StateSearchFailed)
	} else {
		result.JobSearchResponse = response
		result.SearchSucceeded = true
		run.State = string(models.StateSearched)
	}
	run.SearchSucceeded = result.SearchSucceeded

	result.State = models.StateCompleted
	run.State = string(models.StateCompleted)
	return result, nil
}

// transcribeAndDiscard always deletes the stored audio before returning.
func (p *PipelineService) transcribeAndDiscard(ctx context.Context, handle models.AudioHandle, logPrefix string) (models.Transcript, error) {
	defer func() {
		if err := p.Store.Delete(handle); err != nil {
			log.Printf("%s ⚠️ Could not delete audio: %v", logPrefix, err)
			if p.Metrics != nil {
				p.Metrics.CleanupFailures.Inc()
			}
		}
	}()
	return p.Transcriber.Transcribe(ctx, handle)
}

func (p *PipelineService) record(run *models.PipelineRun, logPrefix string) {
	if p.Recorder == nil {
		return
	}
	if err := p.Recorder.Record(run); err != nil {
		log.Printf("%s ⚠️ Could not record run: %v", logPrefix, err)
	}
}

func (p *PipelineService) observe(stage string, start time.Time) {
	if p.Metrics != nil {
		p.Metrics.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
	}
}

func (p *PipelineService) countRun(state string) {
	if p.Metrics != nil {
		p.Metrics.PipelineRuns.WithLabelValues(strings.ToLower(state)).Inc()
	}
}
