package services

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/justsurfingit/voice-job-matcher/internal/models"
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// DiskAudioStore keeps uploads in a local scratch directory until they are
// transcribed. The directory is created on first save.
type DiskAudioStore struct {
	Dir string
}

func NewDiskAudioStore(dir string) *DiskAudioStore {
	return &DiskAudioStore{Dir: dir}
}

// Save writes the upload under a unique name and returns its handle.
func (s *DiskAudioStore) Save(data []byte, originalName string) (models.AudioHandle, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: creating %s: %v", ErrStorage, s.Dir, err)
	}

	filename := fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), uuid.NewString(), sanitizeName(originalName))
	path := filepath.Join(s.Dir, filename)

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("%w: writing %s: %v", ErrStorage, filename, err)
	}
	return models.AudioHandle(path), nil
}

// Delete removes the file. A handle that is already gone is not an error.
func (s *DiskAudioStore) Delete(handle models.AudioHandle) error {
	err := os.Remove(string(handle))
	if err == nil || os.IsNotExist(err) {
		return nil
	}
	log.Printf("⚠️ Error deleting audio %s: %v", handle, err)
	return fmt.Errorf("%w: deleting %s: %v", ErrStorage, handle, err)
}

func (s *DiskAudioStore) Exists(handle models.AudioHandle) bool {
	info, err := os.Stat(string(handle))
	return err == nil && !info.IsDir()
}

func sanitizeName(name string) string {
	name = unsafeNameChars.ReplaceAllString(filepath.Base(name), "_")
	if name == "" || name == "." || name == "_" {
		return "audio"
	}
	return name
}
