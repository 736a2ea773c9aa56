// Package encoder writes timelines out as H.264/AAC video files by
// piping raw frames into FFmpeg.
package encoder

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"math"
	"os/exec"
	"path/filepath"

	"github.com/akolathur/karaoke-slideshow/internal/domain"
)

// ffmpegError wraps FFmpeg command errors with additional context
type ffmpegError struct {
	cmd     string
	output  string
	wrapped error
}

func (e *ffmpegError) Error() string {
	return fmt.Sprintf("ffmpeg error: %s\nCommand: %s\nOutput: %s", e.wrapped, e.cmd, e.output)
}

func (e *ffmpegError) Unwrap() error {
	return e.wrapped
}

// newFFmpegError creates a new ffmpegError with truncated command output
func newFFmpegError(cmd *exec.Cmd, output []byte, err error) error {
	cmdStr := cmd.String()
	if len(cmdStr) > 200 {
		cmdStr = cmdStr[:200] + "..."
	}
	if len(output) > 2000 {
		output = output[len(output)-2000:]
	}
	return &ffmpegError{
		cmd:     cmdStr,
		output:  string(output),
		wrapped: err,
	}
}

type ffmpeg struct {
	fps int
}

// NewFFMPEGEngine creates an FFmpeg-backed encoder producing fps frames
// per second.
func NewFFMPEGEngine(fps int) *ffmpeg {
	if fps <= 0 {
		fps = 30
	}
	return &ffmpeg{fps: fps}
}

// Encode streams every timeline frame as raw rgb24 into FFmpeg, attaches
// the audio track from time zero and trims the container to the timeline
// duration.
func (f *ffmpeg) Encode(ctx context.Context, t *domain.Timeline, videoPath string) error {
	if len(t.Slides) == 0 {
		return fmt.Errorf("%w: timeline has no slides", domain.ErrConfiguration)
	}

	bounds := t.Slides[0].Image.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgb24",
		"-video_size", fmt.Sprintf("%dx%d", width, height),
		"-framerate", fmt.Sprintf("%d", f.fps),
		"-i", "pipe:0",
		"-i", t.AudioPath,
		"-map", "0:v",
		"-map", "1:a",
		"-c:v", "libx264",
		"-crf", "23",
		"-c:a", "aac",
		"-pix_fmt", "yuv420p",
		"-t", fmt.Sprintf("%.3f", t.Duration),
		"-movflags", "+faststart",
		videoPath,
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("failed to create ffmpeg stdin pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	counts := frameCounts(t, f.fps)
	writeErr := writeFrames(stdin, t.Slides, counts)
	stdin.Close()

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return newFFmpegError(cmd, stderr.Bytes(), err)
	}
	if writeErr != nil {
		return fmt.Errorf("failed to stream frames to ffmpeg: %w", writeErr)
	}

	slog.Debug("Encoded slideshow video",
		"path", filepath.Base(videoPath),
		"slides", len(t.Slides),
		"duration", fmt.Sprintf("%.3f", t.Duration),
		"fps", f.fps,
	)
	return nil
}

// frameCounts distributes the timeline's total frame budget over its
// slides. The budget is round(duration*fps); per-slide rounding drift is
// absorbed by the final slide so the video never runs past the audio.
func frameCounts(t *domain.Timeline, fps int) []int {
	totalFrames := int(math.Round(t.Duration * float64(fps)))
	counts := make([]int, len(t.Slides))

	remaining := totalFrames
	for i, s := range t.Slides {
		n := int(math.Round(s.Duration * float64(fps)))
		if n > remaining {
			n = remaining
		}
		counts[i] = n
		remaining -= n
	}
	if remaining > 0 && len(counts) > 0 {
		counts[len(counts)-1] += remaining
	}
	return counts
}

// writeFrames streams each slide's pixels as packed rgb24, repeated once
// per frame of its duration.
func writeFrames(w io.Writer, slides []domain.Slide, counts []int) error {
	for i, slide := range slides {
		if counts[i] == 0 {
			continue
		}
		frame := toRGB24(slide.Image)
		for n := 0; n < counts[i]; n++ {
			if _, err := w.Write(frame); err != nil {
				return err
			}
		}
	}
	return nil
}

func toRGB24(img *image.RGBA) []byte {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	out := make([]byte, 0, width*height*3)
	for y := 0; y < height; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+width*4]
		for x := 0; x < width*4; x += 4 {
			out = append(out, row[x], row[x+1], row[x+2])
		}
	}
	return out
}
