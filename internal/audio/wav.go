package audio

import (
	"context"
	"fmt"
	"os"

	"github.com/go-audio/wav"

	"github.com/akolathur/karaoke-slideshow/internal/domain"
)

// wavProber decodes WAV headers natively, avoiding the ffprobe round trip
// for the one format this tool commonly receives from recording sessions.
type wavProber struct{}

func NewWAVProber() *wavProber {
	return &wavProber{}
}

func (p *wavProber) Duration(ctx context.Context, path string) (float64, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: cannot open audio file %s: %v", domain.ErrAsset, path, err)
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		return 0, fmt.Errorf("%w: %s is not a valid WAV file", domain.ErrAsset, path)
	}

	duration, err := decoder.Duration()
	if err != nil {
		return 0, fmt.Errorf("%w: cannot read WAV duration of %s: %v", domain.ErrAsset, path, err)
	}
	return duration.Seconds(), nil
}
