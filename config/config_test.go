package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	// Create a temporary directory for test files
	tempDir := t.TempDir()

	// Create a test config file
	configPath := filepath.Join(tempDir, "test_config.yaml")
	configContent := `
log_level: -4
images_dir: /art/singer-images
output_dir: /art/output
slide_duration: 15
capture_time: 5
fps: 25
max_workers: 2
poster:
  timeout_seconds: 30
  max_retries: 5
storage:
  type: gcs
  bucket: slideshow-bucket
  prefix: karaoke
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	assert.NoError(t, err)

	// Test loading the config
	cfg, err := Load(configPath)

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, -4, cfg.LogLevel)
	assert.Equal(t, "/art/singer-images", cfg.ImagesDir)
	assert.Equal(t, "/art/output", cfg.OutputDir)
	assert.Equal(t, 15.0, cfg.SlideDuration)
	assert.Equal(t, 5.0, cfg.CaptureTime)
	assert.Equal(t, 25, cfg.FPS)
	assert.Equal(t, 2, cfg.MaxWorkers)
	assert.Equal(t, 30, cfg.Poster.TimeoutSeconds)
	assert.Equal(t, 5, cfg.Poster.MaxRetries)
	assert.Equal(t, "gcs", cfg.Storage.Type)
	assert.Equal(t, "slideshow-bucket", cfg.Storage.Bucket)
}

func TestLoadDefaults(t *testing.T) {
	tempDir := t.TempDir()

	configPath := filepath.Join(tempDir, "minimal_config.yaml")
	configContent := `
images_dir: /art/singer-images
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	assert.NoError(t, err)

	cfg, err := Load(configPath)

	assert.NoError(t, err)
	assert.Equal(t, "output", cfg.OutputDir)
	assert.Equal(t, "data", cfg.TempDir)
	assert.Equal(t, 30.0, cfg.SlideDuration)
	assert.Equal(t, 10.0, cfg.CaptureTime)
	assert.Equal(t, 30, cfg.FPS)
	assert.Equal(t, 4, cfg.MaxWorkers)
	assert.Equal(t, 60, cfg.Poster.TimeoutSeconds)
	assert.Equal(t, 3, cfg.Poster.MaxRetries)
	assert.Equal(t, "local", cfg.Storage.Type)
}

func TestLoadNonExistentFile(t *testing.T) {
	// Test loading a non-existent config file
	cfg, err := Load("non_existent_file.yaml")

	// Assert
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadInvalidYAML(t *testing.T) {
	// Create a temporary directory for test files
	tempDir := t.TempDir()

	// Create an invalid YAML file
	configPath := filepath.Join(tempDir, "invalid_config.yaml")
	configContent := `
images_dir: /art/singer-images
invalid_yaml: [this is not valid yaml
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	assert.NoError(t, err)

	// Test loading the invalid config
	cfg, err := Load(configPath)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, cfg)
}
