package app

import (
	"context"
	"log"

	"github.com/justsurfingit/voice-job-matcher/internal/config"
	"github.com/justsurfingit/voice-job-matcher/internal/metrics"
	"github.com/justsurfingit/voice-job-matcher/internal/services"
)

// Services is the set of collaborators both binaries need.
type Services struct {
	Pipeline *services.PipelineService
	Searcher services.JobSearcher
}

// NewServices builds the provider clients for cfg. In mock mode no network
// client is created for transcription or extraction.
func NewServices(ctx context.Context, cfg *config.Config, runs services.RunRecorder, m *metrics.Metrics) (*Services, error) {
	store := services.NewDiskAudioStore(cfg.Server.UploadDir)

	var (
		transcriber services.Transcriber
		extractor   services.Extractor
	)
	if cfg.MockMode {
		log.Printf("🎭 Mock mode: transcription and extraction return canned data (locale %s)", cfg.MockLocale)
		transcriber = services.NewMockTranscriber(cfg.MockLocale)
		extractor = services.NewLLMServiceWithModel(nil, cfg.LLM.Timeout)
	} else {
		transcriber = services.NewTranscriptionService(services.TranscriptionConfig{
			APIKey:  cfg.Transcription.APIKey,
			Model:   cfg.Transcription.Model,
			Timeout: cfg.Transcription.Timeout,
		})

		apiKey := cfg.Transcription.APIKey
		if cfg.LLM.Provider == "googleai" {
			apiKey = cfg.LLM.GeminiAPIKey
		}
		llm, err := services.NewLLMService(ctx, services.LLMConfig{
			Provider: cfg.LLM.Provider,
			APIKey:   apiKey,
			Model:    cfg.LLM.Model,
			Timeout:  cfg.LLM.Timeout,
		})
		if err != nil {
			return nil, err
		}
		extractor = llm
	}

	var searcher services.JobSearcher
	if cfg.JobSearch.Mock {
		log.Println("🎭 Mock job search enabled")
		searcher = services.MockJobSearcher{}
	} else {
		searcher = services.NewJobSearchService(cfg.JobSearch.URL, cfg.JobSearch.Timeout)
	}

	return &Services{
		Pipeline: services.NewPipelineService(store, transcriber, extractor, searcher, runs, m),
		Searcher: searcher,
	}, nil
}
