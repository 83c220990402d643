package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/justsurfingit/voice-job-matcher/internal/models"
)

func writeAudio(t *testing.T) models.AudioHandle {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.mp3")
	if err := os.WriteFile(path, []byte("fake audio"), 0o600); err != nil {
		t.Fatal(err)
	}
	return models.AudioHandle(path)
}

func newWhisperServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || !strings.HasSuffix(r.URL.Path, "/audio/transcriptions") {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("Authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestTranscriptionService(srv *httptest.Server) *TranscriptionService {
	return NewTranscriptionService(TranscriptionConfig{
		APIKey:  "sk-test",
		BaseURL: srv.URL + "/v1",
		Timeout: 5 * time.Second,
	})
}

func TestTranscribe(t *testing.T) {
	srv := newWhisperServer(t, http.StatusOK, `{"text":"Ik ben verpleegkundige in Antwerpen."}`)
	svc := newTestTranscriptionService(srv)

	got, err := svc.Transcribe(context.Background(), writeAudio(t))
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if got.Text != "Ik ben verpleegkundige in Antwerpen." || got.Placeholder {
		t.Errorf("got %+v", got)
	}
}

func TestTranscribeInvalidKeyBecomesPlaceholder(t *testing.T) {
	srv := newWhisperServer(t, http.StatusUnauthorized,
		`{"error":{"message":"Incorrect API key provided: sk-test.","type":"invalid_request_error","code":"invalid_api_key"}}`)
	svc := newTestTranscriptionService(srv)

	got, err := svc.Transcribe(context.Background(), writeAudio(t))
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if got.Text != InvalidKeyTranscription || !got.Placeholder {
		t.Errorf("got %+v, want invalid key placeholder", got)
	}
}

func TestTranscribeProviderError(t *testing.T) {
	srv := newWhisperServer(t, http.StatusInternalServerError,
		`{"error":{"message":"The server had an error","type":"server_error"}}`)
	svc := newTestTranscriptionService(srv)

	_, err := svc.Transcribe(context.Background(), writeAudio(t))
	if !errors.Is(err, ErrTranscription) {
		t.Fatalf("err = %v, want ErrTranscription", err)
	}
}

func TestTranscribeMissingHandle(t *testing.T) {
	svc := NewTranscriptionService(TranscriptionConfig{APIKey: "sk-test"})
	_, err := svc.Transcribe(context.Background(), models.AudioHandle(filepath.Join(t.TempDir(), "gone.mp3")))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMockTranscriber(t *testing.T) {
	handle := writeAudio(t)
	tests := []struct {
		locale string
		want   string
	}{
		{"en", MockTranscriptionEnglish},
		{"nl", MockTranscriptionDutch},
		{"", MockTranscriptionEnglish},
	}
	for _, tt := range tests {
		got, err := NewMockTranscriber(tt.locale).Transcribe(context.Background(), handle)
		if err != nil {
			t.Fatalf("locale %q: %v", tt.locale, err)
		}
		if got.Text != tt.want || !got.Placeholder {
			t.Errorf("locale %q: got %+v", tt.locale, got)
		}
	}

	if _, err := NewMockTranscriber("en").Transcribe(context.Background(), "missing.mp3"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing handle: err = %v, want ErrNotFound", err)
	}
}
