// Package glyph rasterizes font glyphs into occupancy bitmaps for distance
// field generation.
package glyph

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/dfield"
)

// ErrNoGlyph is returned when the font has no outline for the requested rune.
var ErrNoGlyph = errors.New("glyph: font has no glyph for rune")

// Mask is a rasterized glyph thresholded into an occupancy bitmap.
type Mask struct {
	// Bitmap is the thresholded coverage, sized to the glyph bounds.
	Bitmap *dfield.Bitmap

	// Bounds of the glyph relative to its origin on the baseline.
	Bounds image.Rectangle

	// Advance is the horizontal advance width in pixels.
	Advance float64
}

// Font wraps a parsed OpenType font for repeated rasterization.
type Font struct {
	otf *sfnt.Font
}

// Parse parses OpenType font data (TTF or OTF).
func Parse(data []byte) (*Font, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("glyph: parsing font: %w", err)
	}
	return &Font{otf: f}, nil
}

// Rasterize renders r at the given pixel-per-em size and thresholds the
// coverage into a bitmap: pixels with alpha at or above threshold become
// foreground. A threshold of 0 selects dfield.DefaultThreshold.
//
// The resulting bitmap is the usual input for building a glyph distance
// field at a lower resolution:
//
//	mask, _ := fnt.Rasterize('A', 256, 0)
//	field, _ := mask.Bitmap.Generate(32, 32, 16)
func (f *Font) Rasterize(r rune, ppem float64, threshold uint8) (*Mask, error) {
	if threshold == 0 {
		threshold = dfield.DefaultThreshold
	}

	face, err := opentype.NewFace(f.otf, &opentype.FaceOptions{
		Size:    ppem,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("glyph: creating face: %w", err)
	}
	defer func() {
		_ = face.Close()
	}()

	bounds, advance, ok := face.GlyphBounds(r)
	if !ok {
		return nil, ErrNoGlyph
	}

	// Fixed-point 26.6 bounds to whole pixels, expanding outward.
	minX := int(bounds.Min.X) >> 6
	minY := int(bounds.Min.Y) >> 6
	maxX := int(bounds.Max.X+63) >> 6
	maxY := int(bounds.Max.Y+63) >> 6
	rect := image.Rect(minX, minY, maxX, maxY)
	if rect.Dx() <= 0 || rect.Dy() <= 0 {
		return nil, ErrNoGlyph
	}

	// Draw into a zero-based mask; placing the dot at -bounds.Min shifts
	// the glyph so its bounding box starts at the mask origin.
	mask := image.NewAlpha(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	drawer := &font.Drawer{
		Dst:  mask,
		Src:  image.White,
		Face: face,
		Dot:  fixed.Point26_6{X: -bounds.Min.X, Y: -bounds.Min.Y},
	}
	drawer.DrawString(string(r))

	width := rect.Dx()
	height := rect.Dy()
	data := make([]uint8, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if mask.Pix[y*mask.Stride+x] >= threshold {
				data[y*width+x] = 0xff
			}
		}
	}
	bm, err := dfield.NewBitmap(int32(width), int32(height), data)
	if err != nil {
		return nil, err
	}

	return &Mask{
		Bitmap:  bm,
		Bounds:  rect,
		Advance: float64(advance) / 64,
	}, nil
}
