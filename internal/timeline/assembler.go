// Package timeline turns a sequence plan into a rendered, duration-trimmed
// timeline ready for encoding, and captures the optional still frame.
package timeline

import (
	"context"
	"fmt"
	"image/jpeg"
	"log/slog"
	"os"
	"sync"

	"github.com/akolathur/karaoke-slideshow/internal/domain"
)

const captureJPEGQuality = 95

// SlideRenderer renders one plan entry into one slide.
type SlideRenderer interface {
	RenderSlide(path string, info *domain.SongInfo, duration float64) (domain.Slide, error)
}

// Assembler renders every plan entry and reconciles the slide sequence
// against the audio track's exact duration.
type Assembler struct {
	renderer   SlideRenderer
	maxWorkers int
}

// New creates an Assembler that renders up to maxWorkers slides
// concurrently. Slide renders are independent, so the only coordination
// is a join before concatenation.
func New(renderer SlideRenderer, maxWorkers int) *Assembler {
	if maxWorkers < 1 {
		slog.Warn("invalid max workers, clamping to 1", "maxWorkers", maxWorkers)
		maxWorkers = 1
	} else if maxWorkers > 10 {
		slog.Warn("invalid max workers, clamping to 10", "maxWorkers", maxWorkers)
		maxWorkers = 10
	}
	return &Assembler{renderer: renderer, maxWorkers: maxWorkers}
}

// Assemble renders the plan, concatenates the slides in plan order with
// hard cuts, trims the tail to the audio duration and attaches the audio
// track. onSlide, if non-nil, is called once per finished render.
func (a *Assembler) Assemble(ctx context.Context, plan []domain.PlanEntry, info *domain.SongInfo, audioPath string, audioDuration float64, onSlide func()) (*domain.Timeline, error) {
	if _, err := os.Stat(audioPath); err != nil {
		return nil, fmt.Errorf("%w: cannot open audio track %s: %v", domain.ErrAsset, audioPath, err)
	}

	slides, err := a.renderAll(ctx, plan, info, onSlide)
	if err != nil {
		return nil, err
	}

	timeline := &domain.Timeline{
		Slides:    slides,
		AudioPath: audioPath,
	}
	for _, s := range slides {
		timeline.Duration += s.Duration
	}

	trim(timeline, audioDuration)
	return timeline, nil
}

// renderAll fans the plan out over a bounded worker pool. Results land in
// their plan positions, so completion order never matters.
func (a *Assembler) renderAll(ctx context.Context, plan []domain.PlanEntry, info *domain.SongInfo, onSlide func()) ([]domain.Slide, error) {
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, a.maxWorkers)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)
	slides := make([]domain.Slide, len(plan))

	for i, entry := range plan {
		wg.Add(1)
		go func(i int, entry domain.PlanEntry) {
			defer wg.Done()

			select {
			case semaphore <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-semaphore }()

			slide, err := a.renderer.RenderSlide(entry.ImagePath, info, entry.Duration)
			if err != nil {
				select {
				case errCh <- fmt.Errorf("slide %d (%s): %w", i+1, entry.ImagePath, err):
					cancel()
				default:
				}
				return
			}
			slides[i] = slide

			// Progress counts rendered slides only.
			if onSlide != nil {
				onSlide()
			}
		}(i, entry)
	}

	wg.Wait()
	close(errCh)

	if err := <-errCh; err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slides, nil
}

// trim cuts the timeline tail so the playable duration equals the audio
// duration exactly. A slide crossing the boundary keeps its content but is
// shown for less than its nominal duration; slides past it are dropped.
func trim(t *domain.Timeline, audioDuration float64) {
	if t.Duration <= audioDuration {
		return
	}

	var elapsed float64
	for i := range t.Slides {
		remaining := audioDuration - elapsed
		if remaining <= 0 {
			t.Slides = t.Slides[:i]
			break
		}
		if t.Slides[i].Duration > remaining {
			t.Slides[i].Duration = remaining
			t.Slides = t.Slides[:i+1]
			break
		}
		elapsed += t.Slides[i].Duration
	}
	t.Duration = audioDuration
}

// CaptureFrame writes the frame visible at captureTime as a JPEG. It
// reports whether a frame was captured; a capture time past the end of
// the timeline is skipped, not an error.
func CaptureFrame(t *domain.Timeline, captureTime float64, destPath string) (bool, error) {
	slide, ok := t.SlideAt(captureTime)
	if !ok {
		slog.Debug("Capture time outside timeline, skipping frame", "captureTime", captureTime, "duration", t.Duration)
		return false, nil
	}

	file, err := os.Create(destPath)
	if err != nil {
		return false, fmt.Errorf("failed to create frame file: %w", err)
	}
	defer file.Close()

	if err := jpeg.Encode(file, slide.Image, &jpeg.Options{Quality: captureJPEGQuality}); err != nil {
		return false, fmt.Errorf("failed to encode frame: %w", err)
	}
	return true, nil
}
