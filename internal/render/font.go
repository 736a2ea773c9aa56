package render

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// loadFont loads the footer font. An empty path falls back to the
// embedded Go Regular face so rendering never depends on system fonts.
func loadFont(fontPath string) (*truetype.Font, error) {
	fontBytes := goregular.TTF
	if fontPath != "" {
		var err error
		fontBytes, err = os.ReadFile(fontPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file: %w", err)
		}
	}

	f, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return f, nil
}

// newFace builds a fresh face for one render. truetype faces carry an
// internal glyph buffer and must not be shared across goroutines.
func newFace(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		Hinting: font.HintingFull,
	})
}
