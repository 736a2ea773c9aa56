// Package songfile parses song template files: one "key: value" pair per
// line, with '#' comment lines and blank lines ignored.
package songfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/akolathur/karaoke-slideshow/internal/domain"
)

var requiredKeys = []string{domain.KeyTitle, domain.KeyPosterImage, domain.KeySingerImages}

// Parse reads a song template file into a SongInfo.
func Parse(path string) (*domain.SongInfo, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open song template: %v", domain.ErrConfiguration, err)
	}
	defer file.Close()

	return parse(file)
}

func parse(r io.Reader) (*domain.SongInfo, error) {
	info := &domain.SongInfo{}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, ":")
		if !found {
			return nil, fmt.Errorf("%w: song template line %d is not a key: value pair", domain.ErrConfiguration, lineNo)
		}
		info.Append(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read song template: %w", err)
	}

	for _, key := range requiredKeys {
		if _, ok := info.Get(key); !ok {
			return nil, fmt.Errorf("%w: song template is missing required key %q", domain.ErrConfiguration, key)
		}
	}
	if len(info.SingerKeys()) == 0 {
		return nil, fmt.Errorf("%w: song template lists no singer image keys", domain.ErrConfiguration)
	}

	return info, nil
}
