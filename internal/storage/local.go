package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStorage keeps outputs on the local filesystem
type LocalStorage struct {
	outputDir string
	tempDir   string

	posterPaths []string
}

// NewLocalStorage creates a local storage instance, ensuring both
// directories exist.
func NewLocalStorage(outputDir, tempDir string) (*LocalStorage, error) {
	for _, dir := range []string{outputDir, tempDir} {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return &LocalStorage{
		outputDir: outputDir,
		tempDir:   tempDir,
	}, nil
}

// PosterPath returns the temporary location for the downloaded poster.
func (s *LocalStorage) PosterPath(songTitle string) string {
	path := filepath.Join(s.tempDir, fmt.Sprintf("%s Poster.jpg", songTitle))
	s.posterPaths = append(s.posterPaths, path)
	return path
}

// VideoPath returns the output location for the slideshow video.
func (s *LocalStorage) VideoPath(songTitle string) string {
	return filepath.Join(s.outputDir, fmt.Sprintf("%s.mp4", songTitle))
}

// FramePath returns the output location for the captured still frame.
func (s *LocalStorage) FramePath(songTitle string) string {
	return filepath.Join(s.outputDir, fmt.Sprintf("%s.jpg", songTitle))
}

// Publish is a no-op for local storage; outputs are already in place.
func (s *LocalStorage) Publish(ctx context.Context, localPath string) (string, error) {
	return localPath, nil
}

// ListOutputs lists the files in the output directory.
func (s *LocalStorage) ListOutputs(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.outputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}

	var results []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		results = append(results, filepath.Join(s.outputDir, entry.Name()))
	}
	return results, nil
}

// Cleanup removes the downloaded posters.
func (s *LocalStorage) Cleanup() error {
	for _, path := range s.posterPaths {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove poster: %w", err)
		}
	}
	s.posterPaths = nil
	return nil
}
