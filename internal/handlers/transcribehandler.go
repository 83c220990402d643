package handlers

import (
	"context"
	"errors"
	"io"
	"log"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/voice-job-matcher/internal/dtos"
	"github.com/justsurfingit/voice-job-matcher/internal/models"
	"github.com/justsurfingit/voice-job-matcher/internal/services"
)

// Form fields checked for the upload; "audio" is what the recorder widget sends.
var uploadFields = []string{"file", "audio"}

// Whisper picks the decoder from the file extension.
var audioExtensions = map[string]string{
	"audio/webm":   ".webm",
	"audio/ogg":    ".ogg",
	"audio/mpeg":   ".mp3",
	"audio/mp3":    ".mp3",
	"audio/wav":    ".wav",
	"audio/wave":   ".wav",
	"audio/x-wav":  ".wav",
	"audio/mp4":    ".m4a",
	"audio/m4a":    ".m4a",
	"audio/x-m4a":  ".m4a",
	"audio/flac":   ".flac",
	"audio/x-flac": ".flac",
}

type PipelineRunner interface {
	Run(ctx context.Context, data []byte, originalName string) (*models.PipelineResult, error)
}

type TranscribeHandler struct {
	Pipeline       PipelineRunner
	MaxUploadBytes int64
}

func NewTranscribeHandler(p PipelineRunner, maxUploadBytes int64) *TranscribeHandler {
	return &TranscribeHandler{Pipeline: p, MaxUploadBytes: maxUploadBytes}
}

type uploadError struct {
	status  int
	message string
}

func (e *uploadError) Error() string { return e.message }

func (e *uploadError) Unwrap() error { return services.ErrValidation }

var (
	errNoAudio  = &uploadError{http.StatusBadRequest, "No audio file provided"}
	errNotAudio = &uploadError{http.StatusBadRequest, "File must be an audio file"}
	errTooLarge = &uploadError{http.StatusRequestEntityTooLarge, "Audio file too large"}
)

// Transcribe is the POST /transcribe endpoint. It accepts a multipart form
// or a raw audio body and runs the full pipeline on it.
func (h *TranscribeHandler) Transcribe(c *gin.Context) {
	if h.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)
	}

	data, name, err := h.readUpload(c)
	if err != nil {
		var uErr *uploadError
		if !errors.As(err, &uErr) {
			uErr = errNoAudio
		}
		c.JSON(uErr.status, dtos.ErrorResponse{Error: uErr.message})
		return
	}

	result, err := h.Pipeline.Run(c.Request.Context(), data, name)
	if err != nil {
		log.Printf("❌ Error processing audio: %v", err)
		c.JSON(http.StatusInternalServerError, dtos.ErrorResponse{Error: "Error processing audio file"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *TranscribeHandler) readUpload(c *gin.Context) ([]byte, string, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return readMultipart(c)
	}
	return readRawBody(c)
}

func readMultipart(c *gin.Context) ([]byte, string, error) {
	var (
		fh  *multipart.FileHeader
		err error
	)
	for _, field := range uploadFields {
		fh, err = c.FormFile(field)
		if err == nil {
			break
		}
		if isTooLarge(err) {
			return nil, "", errTooLarge
		}
	}
	if fh == nil {
		return nil, "", errNoAudio
	}
	if !isAudio(fh.Header.Get("Content-Type")) {
		return nil, "", errNotAudio
	}

	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}
	if len(data) == 0 {
		return nil, "", errNoAudio
	}
	return data, audioFilename(fh.Filename, fh.Header.Get("Content-Type")), nil
}

func readRawBody(c *gin.Context) ([]byte, string, error) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		if isTooLarge(err) {
			return nil, "", errTooLarge
		}
		return nil, "", err
	}
	if len(data) == 0 {
		return nil, "", errNoAudio
	}
	if !isAudio(c.ContentType()) {
		return nil, "", errNotAudio
	}
	return data, audioFilename(c.DefaultQuery("filename", "audio"), c.ContentType()), nil
}

// audioFilename appends an extension matching contentType when name has none.
func audioFilename(name, contentType string) string {
	if name == "" {
		name = "audio"
	}
	if filepath.Ext(name) != "" {
		return name
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return name
	}
	mediaType = strings.ToLower(mediaType)
	if ext, ok := audioExtensions[mediaType]; ok {
		return name + ext
	}
	if exts, err := mime.ExtensionsByType(mediaType); err == nil && len(exts) > 0 {
		return name + exts[0]
	}
	return name
}

func isAudio(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "audio/")
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
