package audio

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"

	"github.com/akolathur/karaoke-slideshow/internal/domain"
)

// ffprobeEngine shells out to ffprobe and parses its JSON output.
type ffprobeEngine struct{}

func NewFFProbeEngine() *ffprobeEngine {
	return &ffprobeEngine{}
}

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

func (p *ffprobeEngine) Duration(ctx context.Context, path string) (float64, error) {
	if _, err := os.Stat(path); err != nil {
		return 0, fmt.Errorf("%w: cannot access audio file %s: %v", domain.ErrAsset, path, err)
	}

	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "json",
		path,
	)

	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, fmt.Errorf("%w: ffprobe failed for %s: %v", domain.ErrAsset, path, err)
	}

	duration, err := parseProbeOutput(output)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", domain.ErrAsset, path, err)
	}

	slog.Debug("Probed audio duration", "path", path, "seconds", duration)
	return duration, nil
}

func parseProbeOutput(data []byte) (float64, error) {
	var probed probeOutput
	if err := json.Unmarshal(data, &probed); err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	if probed.Format.Duration == "" {
		return 0, fmt.Errorf("ffprobe reported no duration")
	}

	duration, err := strconv.ParseFloat(probed.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration %q: %w", probed.Format.Duration, err)
	}
	if duration <= 0 {
		return 0, fmt.Errorf("non-positive duration %v", duration)
	}
	return duration, nil
}
