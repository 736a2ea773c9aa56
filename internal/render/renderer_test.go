package render

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akolathur/karaoke-slideshow/internal/domain"
)

func writePNG(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "test.png")
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()
	require.NoError(t, png.Encode(file, img))
	return path
}

func testSongInfo() *domain.SongInfo {
	info := &domain.SongInfo{}
	info.Append("Song", "Test Song")
	info.Append("Film", "Test Film")
	info.Append("Poster Image", "https://example.com/poster.jpg")
	info.Append("Singers Images", "ajit")
	return info
}

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New("")
	require.NoError(t, err)
	return r
}

func TestRenderSlideCanvasDimensions(t *testing.T) {
	r := newRenderer(t)

	tests := []struct {
		name   string
		width  int
		height int
	}{
		{"wide", 3000, 1000},
		{"tall", 500, 2000},
		{"square", 800, 800},
		{"exact canvas ratio", 1920, 1080},
		{"tiny", 16, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writePNG(t, tt.width, tt.height, color.White)
			slide, err := r.RenderSlide(path, testSongInfo(), 30)
			require.NoError(t, err)

			bounds := slide.Image.Bounds()
			assert.Equal(t, CanvasWidth, bounds.Dx())
			assert.Equal(t, CanvasHeight, bounds.Dy())
			assert.Equal(t, float64(30), slide.Duration)
		})
	}
}

func TestRenderSlideLetterbox(t *testing.T) {
	r := newRenderer(t)

	// 2:1 is wider than the canvas, so black bars go top and bottom.
	path := writePNG(t, 1920, 960, color.White)
	slide, err := r.RenderSlide(path, testSongInfo(), 30)
	require.NoError(t, err)

	// Bar rows above and below the 60px offset are black.
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, slide.Image.RGBAAt(960, 10))
	// Image center stays untouched white.
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, slide.Image.RGBAAt(960, 540))
}

func TestRenderSlidePillarbox(t *testing.T) {
	r := newRenderer(t)

	// 1:2 is narrower than the canvas, so black bars go left and right.
	path := writePNG(t, 540, 1080, color.White)
	slide, err := r.RenderSlide(path, testSongInfo(), 30)
	require.NoError(t, err)

	assert.Equal(t, color.RGBA{0, 0, 0, 255}, slide.Image.RGBAAt(10, 400))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, slide.Image.RGBAAt(960, 400))
}

func TestFooterAlphaProfile(t *testing.T) {
	assert.Equal(t, uint8(0), footerAlpha(0))

	// Approaches but never reaches the cap at the bottom edge.
	bottom := footerAlpha(FooterHeight - 1)
	assert.InDelta(t, footerMaxAlpha, int(bottom), 3)
	assert.Less(t, bottom, uint8(footerMaxAlpha))

	prev := footerAlpha(0)
	for y := 1; y < FooterHeight; y++ {
		a := footerAlpha(y)
		assert.GreaterOrEqual(t, a, prev, "alpha must be non-decreasing at row %d", y)
		prev = a
	}
}

func TestRenderSlideFooterDarkens(t *testing.T) {
	r := newRenderer(t)

	path := writePNG(t, 1920, 1080, color.White)
	slide, err := r.RenderSlide(path, testSongInfo(), 30)
	require.NoError(t, err)

	// Sample a column clear of the text block: brightness decreases
	// towards the bottom of the band.
	topOfBand := slide.Image.RGBAAt(1500, CanvasHeight-FooterHeight)
	midBand := slide.Image.RGBAAt(1500, CanvasHeight-60)
	bottomBand := slide.Image.RGBAAt(1500, CanvasHeight-1)

	assert.Greater(t, topOfBand.R, midBand.R)
	assert.Greater(t, midBand.R, bottomBand.R)
	// Never fully opaque black.
	assert.Greater(t, bottomBand.R, uint8(0))
}

func TestRenderSlideConcurrent(t *testing.T) {
	r := newRenderer(t)
	path := writePNG(t, 1280, 720, color.White)

	// One shared Renderer across as many goroutines as the assembler's
	// worker pool would run. Run with -race.
	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = r.RenderSlide(path, testSongInfo(), 30)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
}

func TestRenderSlideUndecodableImage(t *testing.T) {
	r := newRenderer(t)

	path := filepath.Join(t.TempDir(), "broken.jpg")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0644))

	_, err := r.RenderSlide(path, testSongInfo(), 30)
	assert.ErrorIs(t, err, domain.ErrAsset)
}

func TestRenderSlideMissingImage(t *testing.T) {
	r := newRenderer(t)

	_, err := r.RenderSlide(filepath.Join(t.TempDir(), "missing.jpg"), testSongInfo(), 30)
	assert.ErrorIs(t, err, domain.ErrAsset)
}

func TestNewRendererBadFontPath(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing.ttf"))
	assert.Error(t, err)
}
