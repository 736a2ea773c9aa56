package encoder

import (
	"context"

	"github.com/akolathur/karaoke-slideshow/internal/domain"
)

// Encoder consumes a finished timeline and writes a video file. The
// compression details are the encoder's business; the pipeline only hands
// over an ordered frame-and-audio timeline.
type Encoder interface {
	Encode(ctx context.Context, t *domain.Timeline, videoPath string) error
}
