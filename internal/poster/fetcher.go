// Package poster downloads the mandatory poster image before planning
// begins. The fetch is the only network-bound step of the pipeline, so it
// carries its own timeout and bounded retry policy.
package poster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/akolathur/karaoke-slideshow/internal/domain"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

// errNotAnImage marks a download that succeeded but delivered something
// other than a raster image, typically an HTML page.
var errNotAnImage = errors.New("downloaded file is not an image")

// Fetcher downloads poster images over HTTP.
type Fetcher struct {
	client     *http.Client
	maxRetries int
}

// NewFetcher creates a Fetcher with the given per-request timeout and
// retry budget.
func NewFetcher(timeout time.Duration, maxRetries int) *Fetcher {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &Fetcher{
		client:     &http.Client{Timeout: timeout},
		maxRetries: maxRetries,
	}
}

// Fetch downloads the poster at posterURL to destPath. If the URL serves
// an HTML page instead of an image, the page's og:image meta tag is
// resolved once and the download retried against the resolved URL.
func (f *Fetcher) Fetch(ctx context.Context, posterURL, destPath string) error {
	url := posterURL
	var lastErr error

	for attempt := 1; attempt <= f.maxRetries; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt-1) * time.Second):
			}
		}

		err := f.download(ctx, url, destPath)
		if err == nil {
			slog.Debug("Fetched poster", "url", url, "path", destPath)
			return nil
		}
		lastErr = err

		if errors.Is(err, errNotAnImage) && url == posterURL {
			resolved, resolveErr := ResolveImageURL(ctx, posterURL, f.client.Timeout)
			if resolveErr != nil {
				lastErr = fmt.Errorf("%v (og:image resolution failed: %v)", err, resolveErr)
				continue
			}
			slog.Debug("Resolved poster page to image URL", "page", posterURL, "image", resolved)
			url = resolved
		}
	}

	return fmt.Errorf("%w: poster fetch failed after %d attempts: %v", domain.ErrNetwork, f.maxRetries, lastErr)
}

func (f *Fetcher) download(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed with status: %d", resp.StatusCode)
	}

	outFile, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create poster file: %w", err)
	}
	defer outFile.Close()

	bytesWritten, err := io.Copy(outFile, resp.Body)
	if err != nil {
		os.Remove(destPath)
		return fmt.Errorf("failed to save poster: %w", err)
	}
	if bytesWritten == 0 {
		os.Remove(destPath)
		return fmt.Errorf("downloaded poster is empty")
	}

	if err := validateImageFile(destPath); err != nil {
		// Never leave an HTML error page sitting where the poster goes.
		os.Remove(destPath)
		return err
	}
	return nil
}

// validateImageFile checks the file signature so an HTML error page never
// ends up as the first slide of a slideshow.
func validateImageFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open poster for validation: %w", err)
	}
	defer file.Close()

	header := make([]byte, 512)
	n, err := file.Read(header)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read poster header: %w", err)
	}
	header = header[:n]

	if n < 4 {
		return fmt.Errorf("%w: file too small", errNotAnImage)
	}

	switch {
	case bytes.HasPrefix(header, []byte{0xFF, 0xD8, 0xFF}): // JPEG
		return nil
	case bytes.HasPrefix(header, []byte("\x89PNG")):
		return nil
	case bytes.HasPrefix(header, []byte("GIF8")):
		return nil
	case bytes.HasPrefix(header, []byte("BM")): // BMP
		return nil
	}

	lowered := bytes.ToLower(header)
	if bytes.Contains(lowered, []byte("<html")) || bytes.Contains(lowered, []byte("<!doctype")) {
		return fmt.Errorf("%w: got an HTML page", errNotAnImage)
	}

	return fmt.Errorf("%w: unrecognized file signature", errNotAnImage)
}
