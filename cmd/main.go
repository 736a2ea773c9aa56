package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/akolathur/karaoke-slideshow/config"
	"github.com/akolathur/karaoke-slideshow/internal/pipeline"
)

func main() {
	songFile := flag.String("song-file", "", "Path to the song audio file (required)")
	templateFile := flag.String("song-template", "", "Path to the song template file (required)")
	configPath := flag.String("config", "./config/config.yaml", "Path to the configuration file")
	workers := flag.Int("workers", 0, "Maximum concurrent slide renders (overrides config)")
	seed := flag.Int64("seed", 0, "Shuffle seed for reproducible sequencing (0 = random)")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	// Validate required flags with explicit checks
	if *songFile == "" {
		log.Fatal("Missing required flag: -song-file")
	}
	if *templateFile == "" {
		log.Fatal("Missing required flag: -song-template")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *workers > 0 {
		cfg.MaxWorkers = *workers
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.Level(cfg.LogLevel)}))
	slog.SetDefault(logger)

	ctx := context.Background()

	p, err := pipeline.New(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}

	result, err := p.Run(ctx, &pipeline.Options{
		SongFile:     *songFile,
		TemplateFile: *templateFile,
		Seed:         *seed,
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("HD slideshow created: %s\n", result.VideoPath)
	if result.FrameCaptured {
		fmt.Printf("Frame captured: %s\n", result.FramePath)
	}
}
