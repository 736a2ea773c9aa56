// Package pipeline orchestrates a full slideshow build: template parse,
// catalog, poster fetch, audio probe, sequencing, rendering, assembly,
// encode and publication, in strict order.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"sync/atomic"
	"time"

	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"

	"github.com/akolathur/karaoke-slideshow/config"
	"github.com/akolathur/karaoke-slideshow/internal/audio"
	"github.com/akolathur/karaoke-slideshow/internal/catalog"
	"github.com/akolathur/karaoke-slideshow/internal/domain"
	"github.com/akolathur/karaoke-slideshow/internal/encoder"
	"github.com/akolathur/karaoke-slideshow/internal/poster"
	"github.com/akolathur/karaoke-slideshow/internal/progress"
	"github.com/akolathur/karaoke-slideshow/internal/render"
	"github.com/akolathur/karaoke-slideshow/internal/sequence"
	"github.com/akolathur/karaoke-slideshow/internal/songfile"
	"github.com/akolathur/karaoke-slideshow/internal/storage"
	"github.com/akolathur/karaoke-slideshow/internal/timeline"
)

// PosterFetcher downloads the poster image to a local path.
type PosterFetcher interface {
	Fetch(ctx context.Context, url, destPath string) error
}

type Pipeline struct {
	cfg       *config.Config
	fetcher   PosterFetcher
	proberFor func(path string) audio.Prober
	assembler *timeline.Assembler
	encoder   encoder.Encoder
	store     storage.Storage
	tracker   *progress.Tracker
}

// New wires up a pipeline from the configuration.
func New(ctx context.Context, cfg *config.Config) (*Pipeline, error) {
	renderer, err := render.New(cfg.FontPath)
	if err != nil {
		return nil, err
	}

	store, err := storage.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		cfg:       cfg,
		fetcher:   poster.NewFetcher(time.Duration(cfg.Poster.TimeoutSeconds)*time.Second, cfg.Poster.MaxRetries),
		proberFor: audio.ProberFor,
		assembler: timeline.New(renderer, cfg.MaxWorkers),
		encoder:   encoder.NewFFMPEGEngine(cfg.FPS),
		store:     store,
		tracker:   progress.NewTracker(),
	}, nil
}

// Tracker exposes the pipeline's progress tracker so callers can attach
// listeners before Run.
func (p *Pipeline) Tracker() *progress.Tracker {
	return p.tracker
}

type Options struct {
	SongFile     string
	TemplateFile string

	// Seed fixes the shuffle order; zero means a time-based seed.
	Seed int64
}

type Result struct {
	VideoPath     string
	FramePath     string
	FrameCaptured bool
}

// Run executes the whole pipeline. Any failure is fatal to the run; no
// output files are left behind in a half-written state.
func (p *Pipeline) Run(ctx context.Context, opts *Options) (*Result, error) {
	if _, err := os.Stat(opts.SongFile); err != nil {
		return p.fail(fmt.Errorf("%w: music file %s does not exist", domain.ErrConfiguration, opts.SongFile))
	}
	if info, err := os.Stat(p.cfg.ImagesDir); err != nil || !info.IsDir() {
		return p.fail(fmt.Errorf("%w: image directory %s does not exist", domain.ErrConfiguration, p.cfg.ImagesDir))
	}

	p.tracker.Update(progress.StageParsing, 0, "parsing song template")
	song, err := songfile.Parse(opts.TemplateFile)
	if err != nil {
		return p.fail(err)
	}

	p.tracker.Update(progress.StageCataloging, 0, "filtering image catalog")
	images, err := catalog.Find(p.cfg.ImagesDir, song.SingerKeys())
	if err != nil {
		return p.fail(err)
	}
	slog.Debug("Catalog filtered", "images", len(images), "singers", song.SingerKeys())

	p.tracker.Update(progress.StagePoster, 0, "fetching poster")
	posterPath := p.store.PosterPath(song.Title())
	if err := p.fetcher.Fetch(ctx, song.PosterURL(), posterPath); err != nil {
		return p.fail(err)
	}
	defer func() {
		if err := p.store.Cleanup(); err != nil {
			slog.Warn("Cleanup failed", "error", err)
		}
	}()

	p.tracker.Update(progress.StageProbing, 0, "probing audio duration")
	audioDuration, err := p.proberFor(opts.SongFile).Duration(ctx, opts.SongFile)
	if err != nil {
		return p.fail(err)
	}
	slog.Debug("Audio probed", "path", opts.SongFile, "seconds", audioDuration)

	p.tracker.Update(progress.StagePlanning, 0, "planning slide sequence")
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	plan, err := sequence.Plan(images, posterPath, audioDuration, p.cfg.SlideDuration, rng)
	if err != nil {
		return p.fail(err)
	}
	slog.Info("Sequence planned", "slides", len(plan), "images", len(images), "audioSeconds", audioDuration)

	p.tracker.Update(progress.StageRendering, 0, "rendering slides")
	bar := progressbar.NewOptions(
		len(plan),
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetTheme(progressbar.ThemeASCII),
		progressbar.OptionFullWidth(),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("[cyan][1/2][reset] Rendering slides..."),
	)

	var rendered atomic.Int32
	tl, err := p.assembler.Assemble(ctx, plan, song, opts.SongFile, audioDuration, func() {
		bar.Add(1)
		p.tracker.UpdateSlideProgress(int(rendered.Add(1)), len(plan))
	})
	if err != nil {
		return p.fail(err)
	}

	p.tracker.Update(progress.StageAssembling, 0, "capturing still frame")
	framePath := p.store.FramePath(song.Title())
	captured, err := timeline.CaptureFrame(tl, p.cfg.CaptureTime, framePath)
	if err != nil {
		return p.fail(err)
	}

	p.tracker.Update(progress.StageEncoding, 0, "encoding video")
	fmt.Println()
	slog.Info("Encoding slideshow", "slides", len(tl.Slides), "duration", tl.Duration)
	videoPath := p.store.VideoPath(song.Title())
	if err := p.encoder.Encode(ctx, tl, videoPath); err != nil {
		return p.fail(err)
	}

	result := &Result{FrameCaptured: captured}
	if result.VideoPath, err = p.store.Publish(ctx, videoPath); err != nil {
		return p.fail(err)
	}
	if captured {
		if result.FramePath, err = p.store.Publish(ctx, framePath); err != nil {
			return p.fail(err)
		}
	}

	if outputs, err := p.store.ListOutputs(ctx); err == nil {
		slog.Debug("Output location", "artifacts", len(outputs))
	}

	p.tracker.Update(progress.StageComplete, 100, "slideshow complete")
	return result, nil
}

func (p *Pipeline) fail(err error) (*Result, error) {
	p.tracker.SetError(err)
	return nil, err
}
