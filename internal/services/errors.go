package services

import "errors"

var (
	ErrValidation    = errors.New("validation failed")
	ErrNotFound      = errors.New("audio not found")
	ErrStorage       = errors.New("audio storage failed")
	ErrTranscription = errors.New("transcription failed")
	ErrSearch        = errors.New("job search failed")
)
