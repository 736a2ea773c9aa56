package audio

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akolathur/karaoke-slideshow/internal/domain"
)

func TestParseProbeOutput(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		expected float64
		wantErr  bool
	}{
		{
			name:     "valid duration",
			output:   `{"format": {"duration": "95.432000"}}`,
			expected: 95.432,
		},
		{
			name:    "missing duration",
			output:  `{"format": {}}`,
			wantErr: true,
		},
		{
			name:    "non-numeric duration",
			output:  `{"format": {"duration": "abc"}}`,
			wantErr: true,
		},
		{
			name:    "zero duration",
			output:  `{"format": {"duration": "0.000000"}}`,
			wantErr: true,
		},
		{
			name:    "invalid json",
			output:  `{"format":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			duration, err := parseProbeOutput([]byte(tt.output))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, duration)
			}
		})
	}
}

// writeWAV writes a mono 16-bit WAV file with the given number of samples
// at 8kHz.
func writeWAV(t *testing.T, path string, numSamples int) {
	t.Helper()

	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	encoder := wav.NewEncoder(file, 8000, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format: &audio.Format{NumChannels: 1, SampleRate: 8000},
		Data:   make([]int, numSamples),
	}
	require.NoError(t, encoder.Write(buf))
	require.NoError(t, encoder.Close())
}

func TestWAVProberDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.wav")
	writeWAV(t, path, 8000*2) // two seconds at 8kHz

	duration, err := NewWAVProber().Duration(context.Background(), path)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, duration, 0.01)
}

func TestWAVProberInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.wav")
	require.NoError(t, os.WriteFile(path, []byte("not a wav file"), 0644))

	_, err := NewWAVProber().Duration(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrAsset)
}

func TestWAVProberMissingFile(t *testing.T) {
	_, err := NewWAVProber().Duration(context.Background(), filepath.Join(t.TempDir(), "missing.wav"))
	assert.ErrorIs(t, err, domain.ErrAsset)
}

func TestFFProbeMissingFile(t *testing.T) {
	_, err := NewFFProbeEngine().Duration(context.Background(), filepath.Join(t.TempDir(), "missing.mp3"))
	assert.ErrorIs(t, err, domain.ErrAsset)
}

func TestProberFor(t *testing.T) {
	assert.IsType(t, &wavProber{}, ProberFor("song.wav"))
	assert.IsType(t, &wavProber{}, ProberFor("song.WAV"))
	assert.IsType(t, &ffprobeEngine{}, ProberFor("song.mp3"))
	assert.IsType(t, &ffprobeEngine{}, ProberFor("song.flac"))
}

// Integration test for ffprobe - requires the binary to be installed
func TestFFProbeDuration(t *testing.T) {
	t.Skip("Skipping integration test")

	duration, err := NewFFProbeEngine().Duration(context.Background(), "testdata/sample.mp3")
	assert.NoError(t, err)
	assert.Greater(t, duration, 0.0)
}
