package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/justsurfingit/voice-job-matcher/internal/models"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

const candidateSystemPrompt = "You are a helpful assistant that extracts job function and location information from candidate transcriptions. Return ONLY the extracted information in JSON format with 'function' and 'location' fields. If information is not found, return empty strings for those fields."

const candidateUserPrompt = "Extract the job function and location from the following candidate transcription. Return only the JSON:\n\n%s"

// ExtractionOutcome says how a CandidateInfo came to be.
type ExtractionOutcome string

const (
	ExtractionParsed    ExtractionOutcome = "parsed"
	ExtractionSkipped   ExtractionOutcome = "skipped"
	ExtractionDefaulted ExtractionOutcome = "defaulted"
)

// Extraction is the result of Extract. Info is always usable; when Outcome
// is defaulted, Reason carries the error that was swallowed.
type Extraction struct {
	Info    models.CandidateInfo
	Outcome ExtractionOutcome
	Reason  error
}

type LLMService struct {
	Client  llms.Model // nil means mock mode
	Timeout time.Duration
}

type LLMConfig struct {
	Provider string // "openai" or "googleai"
	APIKey   string
	BaseURL  string
	Model    string
	Timeout  time.Duration
}

// NewLLMService builds the completion client for the configured provider.
func NewLLMService(ctx context.Context, cfg LLMConfig) (*LLMService, error) {
	var (
		client llms.Model
		err    error
	)
	switch cfg.Provider {
	case "", "openai":
		opts := []openai.Option{openai.WithToken(cfg.APIKey)}
		if cfg.Model == "" {
			cfg.Model = "gpt-3.5-turbo"
		}
		opts = append(opts, openai.WithModel(cfg.Model))
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		client, err = openai.New(opts...)
	case "googleai":
		if cfg.Model == "" {
			cfg.Model = "gemini-2.5-flash"
		}
		client, err = googleai.New(ctx,
			googleai.WithAPIKey(cfg.APIKey),
			googleai.WithDefaultModel(cfg.Model),
		)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("creating %s client: %w", cfg.Provider, err)
	}
	return NewLLMServiceWithModel(client, cfg.Timeout), nil
}

func NewLLMServiceWithModel(client llms.Model, timeout time.Duration) *LLMService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &LLMService{Client: client, Timeout: timeout}
}

// Extract asks the model for the candidate's function and location.
// It never fails: anything unexpected yields an empty CandidateInfo.
func (s *LLMService) Extract(ctx context.Context, transcript string) Extraction {
	if strings.TrimSpace(transcript) == "" || s.Client == nil {
		return Extraction{Outcome: ExtractionSkipped}
	}

	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, candidateSystemPrompt),
		llms.TextParts(schema.ChatMessageTypeHuman, fmt.Sprintf(candidateUserPrompt, transcript)),
	}
	resp, err := s.Client.GenerateContent(ctx, messages, llms.WithJSONMode())
	if err != nil {
		log.Printf("❌ Error extracting candidate info: %v", err)
		return Extraction{Outcome: ExtractionDefaulted, Reason: err}
	}
	if len(resp.Choices) == 0 {
		return Extraction{Outcome: ExtractionDefaulted, Reason: fmt.Errorf("no choices in completion")}
	}

	info, err := ParseCandidateInfo(resp.Choices[0].Content)
	if err != nil {
		log.Printf("❌ Error parsing candidate info: %v. Raw: %s", err, resp.Choices[0].Content)
		return Extraction{Outcome: ExtractionDefaulted, Reason: err}
	}
	return Extraction{Info: info, Outcome: ExtractionParsed}
}

// ParseCandidateInfo decodes the model output. An empty answer counts as
// "nothing found"; missing fields stay empty.
func ParseCandidateInfo(content string) (models.CandidateInfo, error) {
	content = stripCodeFence(content)
	if content == "" {
		return models.CandidateInfo{}, nil
	}

	var raw struct {
		Function *string `json:"function"`
		Location *string `json:"location"`
	}
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return models.CandidateInfo{}, fmt.Errorf("decoding completion: %w", err)
	}

	var info models.CandidateInfo
	if raw.Function != nil {
		info.Function = *raw.Function
	}
	if raw.Location != nil {
		info.Location = *raw.Location
	}
	return info, nil
}

// Some models wrap JSON in a markdown block even in JSON mode.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
