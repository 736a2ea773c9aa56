package storage

import (
	"context"
	"fmt"

	"github.com/akolathur/karaoke-slideshow/config"
)

// Storage decides where pipeline artifacts live. The encoder always
// writes to local paths; Publish then moves finished outputs to their
// final home, which for local storage is a no-op.
type Storage interface {
	// PosterPath returns the temporary location for the downloaded poster.
	PosterPath(songTitle string) string

	// VideoPath and FramePath return the local output locations.
	VideoPath(songTitle string) string
	FramePath(songTitle string) string

	// Publish moves a finished artifact to its final location and
	// returns that location.
	Publish(ctx context.Context, localPath string) (string, error)

	// ListOutputs returns the published artifacts.
	ListOutputs(ctx context.Context) ([]string, error)

	// Cleanup removes temporary files.
	Cleanup() error
}

// New creates the storage backend selected by the configuration.
func New(ctx context.Context, cfg *config.Config) (Storage, error) {
	switch cfg.Storage.Type {
	case "local":
		return NewLocalStorage(cfg.OutputDir, cfg.TempDir)
	case "gcs":
		return NewGCSStorage(ctx, cfg.Storage.Bucket, cfg.Storage.Prefix, cfg.TempDir, cfg.Storage.CredentialsFile)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Storage.Type)
	}
}
