package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/justsurfingit/voice-job-matcher/internal/models"
	"github.com/sashabaranov/go-openai"
)

const (
	MockTranscriptionEnglish = "This is a mock transcription in English. To get real transcriptions, please provide a valid OpenAI API key in the .env.local file."
	MockTranscriptionDutch   = "Dit is een voorbeeld transcriptie in het Nederlands. Voor echte transcripties, voeg een geldige OpenAI API-sleutel toe in het .env.local bestand."

	InvalidKeyTranscription = "Error: Invalid or missing OpenAI API key. Please provide a valid API key in the .env.local file."
)

// TranscriptionService sends stored audio to OpenAI Whisper.
type TranscriptionService struct {
	Client  *openai.Client
	Model   string
	Timeout time.Duration
}

type TranscriptionConfig struct {
	APIKey  string
	BaseURL string // empty means the public OpenAI endpoint
	Model   string
	Timeout time.Duration
}

func NewTranscriptionService(cfg TranscriptionConfig) *TranscriptionService {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if cfg.Model == "" {
		cfg.Model = openai.Whisper1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &TranscriptionService{
		Client:  openai.NewClientWithConfig(clientCfg),
		Model:   cfg.Model,
		Timeout: cfg.Timeout,
	}
}

// Transcribe returns the provider's text verbatim. Whisper detects the
// language itself, so none is sent.
func (s *TranscriptionService) Transcribe(ctx context.Context, handle models.AudioHandle) (models.Transcript, error) {
	if err := checkHandle(handle); err != nil {
		return models.Transcript{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resp, err := s.Client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    s.Model,
		FilePath: string(handle),
	})
	if err != nil {
		if isInvalidKeyError(err) {
			log.Printf("🔑 Transcription rejected the API key: %v", err)
			return models.Transcript{Text: InvalidKeyTranscription, Placeholder: true}, nil
		}
		return models.Transcript{}, fmt.Errorf("%w: %v", ErrTranscription, err)
	}
	return models.Transcript{Text: resp.Text}, nil
}

// MockTranscriber stands in for Whisper when no credential is configured.
type MockTranscriber struct {
	Locale string // "en" or "nl"
}

func NewMockTranscriber(locale string) *MockTranscriber {
	return &MockTranscriber{Locale: locale}
}

func (m *MockTranscriber) Transcribe(ctx context.Context, handle models.AudioHandle) (models.Transcript, error) {
	if err := checkHandle(handle); err != nil {
		return models.Transcript{}, err
	}
	log.Println("🎭 Using mock transcription because no valid API key is provided")
	if m.Locale == "nl" {
		return models.Transcript{Text: MockTranscriptionDutch, Placeholder: true}, nil
	}
	return models.Transcript{Text: MockTranscriptionEnglish, Placeholder: true}, nil
}

func checkHandle(handle models.AudioHandle) error {
	info, err := os.Stat(string(handle))
	if err != nil || info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotFound, handle)
	}
	return nil
}

func isInvalidKeyError(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusUnauthorized {
		return true
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusUnauthorized {
		return true
	}
	return strings.Contains(err.Error(), "API key")
}
