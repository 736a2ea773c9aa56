package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel int `yaml:"log_level"`

	// ImagesDir holds the singer image pool; outputs and the downloaded
	// poster go to OutputDir and TempDir.
	ImagesDir string `yaml:"images_dir"`
	OutputDir string `yaml:"output_dir"`
	TempDir   string `yaml:"temp_dir"`

	SlideDuration float64 `yaml:"slide_duration"`
	CaptureTime   float64 `yaml:"capture_time"`
	FPS           int     `yaml:"fps"`
	MaxWorkers    int     `yaml:"max_workers"`

	// FontPath optionally overrides the embedded footer font with a TTF file.
	FontPath string `yaml:"font_path"`

	Poster  PosterConfig  `yaml:"poster"`
	Storage StorageConfig `yaml:"storage"`
}

type PosterConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
	MaxRetries     int `yaml:"max_retries"`
}

type StorageConfig struct {
	// Type of storage: "local" or "gcs"
	Type string `yaml:"type"`

	// GCS options
	Bucket          string `yaml:"bucket"`
	Prefix          string `yaml:"prefix"`
	CredentialsFile string `yaml:"credentials_file"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config *Config

	// Unmarshal the YAML data into the struct
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}

	// Set defaults if not provided
	if config.OutputDir == "" {
		config.OutputDir = "output"
	}

	if config.TempDir == "" {
		config.TempDir = "data"
	}

	if config.SlideDuration == 0 {
		config.SlideDuration = 30
	}

	if config.CaptureTime == 0 {
		config.CaptureTime = 10
	}

	if config.FPS == 0 {
		config.FPS = 30
	}

	if config.MaxWorkers == 0 {
		config.MaxWorkers = 4
	}

	if config.Poster.TimeoutSeconds == 0 {
		config.Poster.TimeoutSeconds = 60
	}

	if config.Poster.MaxRetries == 0 {
		config.Poster.MaxRetries = 3
	}

	if config.Storage.Type == "" {
		config.Storage.Type = "local"
	}

	return config, nil
}
