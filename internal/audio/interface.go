// Package audio probes audio files for their total duration.
package audio

import (
	"context"
	"path/filepath"
	"strings"
)

// Prober reports the total duration of an audio file in seconds.
type Prober interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// ProberFor returns the appropriate prober for the given file. WAV files
// are decoded natively; everything else goes through ffprobe.
func ProberFor(path string) Prober {
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		return NewWAVProber()
	}
	return NewFFProbeEngine()
}
