package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GCSStorage publishes finished outputs to a Google Cloud Storage bucket.
// All intermediate work still happens in a local temp directory because
// FFmpeg needs real files.
type GCSStorage struct {
	client       *storage.Client
	bucket       string
	objectPrefix string
	tempDir      string
}

// NewGCSStorage creates a new GCSStorage instance
func NewGCSStorage(ctx context.Context, bucketName, objectPrefix, tempDir, credentialsFile string) (*GCSStorage, error) {
	var client *storage.Client
	var err error

	if credentialsFile != "" {
		client, err = storage.NewClient(ctx, option.WithCredentialsFile(credentialsFile))
	} else {
		// Use application default credentials
		client, err = storage.NewClient(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	if err := os.MkdirAll(tempDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	return &GCSStorage{
		client:       client,
		bucket:       bucketName,
		objectPrefix: objectPrefix,
		tempDir:      tempDir,
	}, nil
}

// PosterPath returns the temporary location for the downloaded poster.
func (s *GCSStorage) PosterPath(songTitle string) string {
	return filepath.Join(s.tempDir, fmt.Sprintf("%s Poster.jpg", songTitle))
}

// VideoPath returns the local staging location for the slideshow video.
func (s *GCSStorage) VideoPath(songTitle string) string {
	return filepath.Join(s.tempDir, fmt.Sprintf("%s.mp4", songTitle))
}

// FramePath returns the local staging location for the captured frame.
func (s *GCSStorage) FramePath(songTitle string) string {
	return filepath.Join(s.tempDir, fmt.Sprintf("%s.jpg", songTitle))
}

// Publish uploads a finished artifact to the bucket and returns its
// object URL.
func (s *GCSStorage) Publish(ctx context.Context, localPath string) (string, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open %s for upload: %w", localPath, err)
	}
	defer file.Close()

	objectName := path.Join(s.objectPrefix, filepath.Base(localPath))
	writer := s.client.Bucket(s.bucket).Object(objectName).NewWriter(ctx)

	if _, err := io.Copy(writer, file); err != nil {
		writer.Close()
		return "", fmt.Errorf("failed to upload %s: %w", objectName, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize upload of %s: %w", objectName, err)
	}

	return fmt.Sprintf("gs://%s/%s", s.bucket, objectName), nil
}

// ListOutputs lists the published objects under the configured prefix.
func (s *GCSStorage) ListOutputs(ctx context.Context) ([]string, error) {
	var results []string

	it := s.client.Bucket(s.bucket).Objects(ctx, &storage.Query{Prefix: s.objectPrefix})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list bucket objects: %w", err)
		}
		results = append(results, fmt.Sprintf("gs://%s/%s", s.bucket, attrs.Name))
	}
	return results, nil
}

// Cleanup removes the local staging files.
func (s *GCSStorage) Cleanup() error {
	entries, err := os.ReadDir(s.tempDir)
	if err != nil {
		return fmt.Errorf("failed to read temp directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(s.tempDir, entry.Name())); err != nil {
			return fmt.Errorf("failed to remove temp file: %w", err)
		}
	}
	return nil
}
