// Package render composites one source image into one slideshow slide:
// the image letterboxed onto a fixed black canvas, a gradient footer band
// and the song metadata as overlaid text lines.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"os"

	// Raster formats accepted by the catalog.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	_ "golang.org/x/image/bmp"

	xdraw "golang.org/x/image/draw"

	"github.com/akolathur/karaoke-slideshow/internal/domain"
)

// Canvas geometry. Every slide has exactly these dimensions; the footer
// band occupies the bottom rows.
const (
	CanvasWidth  = 1920
	CanvasHeight = 1080
	FooterHeight = 120
)

// Footer text layout.
const (
	fontSize     = 24
	lineHeight   = 26
	leftMargin   = 40
	footerTopPad = 10

	// Maximum footer opacity at the bottom edge of the band.
	footerMaxAlpha = 160
)

// Renderer turns decoded images into fully composited slides. The parsed
// font is immutable, so one Renderer may serve concurrent renders; each
// render builds its own face because faces buffer glyphs internally.
type Renderer struct {
	font *truetype.Font
}

// New creates a Renderer. fontPath optionally overrides the embedded
// footer font with a TTF file.
func New(fontPath string) (*Renderer, error) {
	f, err := loadFont(fontPath)
	if err != nil {
		return nil, err
	}
	return &Renderer{font: f}, nil
}

// RenderSlide decodes the image at path and produces one slide showing it
// for the given duration, with the footer and song metadata composited in.
func (r *Renderer) RenderSlide(path string, info *domain.SongInfo, duration float64) (domain.Slide, error) {
	src, err := decodeImage(path)
	if err != nil {
		return domain.Slide{}, err
	}

	canvas := compose(src)
	applyFooter(canvas)
	r.drawFooterText(canvas, info.FooterLines())

	return domain.Slide{Image: canvas, Duration: duration}, nil
}

// decodeImage loads an image and normalizes it to an opaque RGBA buffer,
// compositing any alpha channel over black.
func decodeImage(path string) (*image.RGBA, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open image %s: %v", domain.ErrAsset, path, err)
	}
	defer file.Close()

	src, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot decode image %s: %v", domain.ErrAsset, path, err)
	}

	bounds := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), image.Black, image.Point{}, draw.Src)
	draw.Draw(rgba, rgba.Bounds(), src, bounds.Min, draw.Over)
	return rgba, nil
}

// compose scales the source to fit the canvas without cropping and
// centers it on a black background. Wider-than-16:9 images are
// letterboxed, narrower ones pillarboxed.
func compose(src *image.RGBA) *image.RGBA {
	srcBounds := src.Bounds()
	imgRatio := float64(srcBounds.Dx()) / float64(srcBounds.Dy())
	canvasRatio := float64(CanvasWidth) / float64(CanvasHeight)

	var newWidth, newHeight int
	if imgRatio > canvasRatio {
		newWidth = CanvasWidth
		newHeight = int(float64(CanvasWidth) / imgRatio)
	} else {
		newHeight = CanvasHeight
		newWidth = int(float64(CanvasHeight) * imgRatio)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, CanvasWidth, CanvasHeight))
	draw.Draw(canvas, canvas.Bounds(), image.Black, image.Point{}, draw.Src)

	x := (CanvasWidth - newWidth) / 2
	y := (CanvasHeight - newHeight) / 2
	target := image.Rect(x, y, x+newWidth, y+newHeight)
	xdraw.CatmullRom.Scale(canvas, target, src, srcBounds, xdraw.Src, nil)

	return canvas
}

// footerAlpha returns the overlay opacity for a row of the footer band,
// where y 0 is the top of the band. The band darkens monotonically and
// never becomes fully opaque.
func footerAlpha(y int) uint8 {
	a := math.Round(math.Pow(float64(y)/FooterHeight, 1.5) * footerMaxAlpha)
	if a < 0 {
		a = 0
	}
	if a > 255 {
		a = 255
	}
	return uint8(a)
}

// applyFooter blends the gradient band into the bottom of the canvas.
// The gradient is a 1-D profile applied row by row; every column of a
// row shares the same opacity.
func applyFooter(canvas *image.RGBA) {
	top := CanvasHeight - FooterHeight
	black := image.NewUniform(color.Black)
	for y := 0; y < FooterHeight; y++ {
		mask := image.NewUniform(color.Alpha{A: footerAlpha(y)})
		row := image.Rect(0, top+y, CanvasWidth, top+y+1)
		draw.DrawMask(canvas, row, black, image.Point{}, mask, image.Point{}, draw.Over)
	}
}

// strokeOffsets outlines each glyph with a 1px black stroke so the text
// stays legible over arbitrary image content.
var strokeOffsets = [][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

func (r *Renderer) drawFooterText(canvas *image.RGBA, lines []string) {
	face := newFace(r.font, fontSize)
	ascent := face.Metrics().Ascent.Ceil()
	top := CanvasHeight - FooterHeight + footerTopPad

	for i, line := range lines {
		baseline := top + i*lineHeight + ascent

		d := &font.Drawer{
			Dst:  canvas,
			Src:  image.NewUniform(color.Black),
			Face: face,
		}
		for _, off := range strokeOffsets {
			d.Dot = freetype.Pt(leftMargin+off[0], baseline+off[1])
			d.DrawString(line)
		}

		d.Src = image.NewUniform(color.White)
		d.Dot = freetype.Pt(leftMargin, baseline)
		d.DrawString(line)
	}
}
