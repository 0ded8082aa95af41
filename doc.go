// Package dfield generates and serializes quantized signed distance fields.
//
// # Overview
//
// A distance field is built from a black/white occupancy bitmap: each output
// pixel stores the signed distance to the nearest boundary between foreground
// (nonzero) and background (zero) regions, quantized to a signed byte in
// [-127, 127]. Negative values are inside the shape, positive values outside.
// Rendered through a shader that thresholds the field, a small texture
// reproduces crisp shape edges at any display resolution.
//
// # Quick Start
//
//	import "github.com/gogpu/dfield"
//
//	// Load a 64x64 raw occupancy bitmap and build a 32x32 field.
//	data, err := dfield.ReadRawFile("glyph.dat", 64, 64)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	field, err := dfield.Generate(data, 64, 64, 32, 32, 8)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := dfield.WriteFile("glyph.dfield", field); err != nil {
//	    log.Fatal(err)
//	}
//
// Bitmaps can also come from images (PNG, BMP, TIFF) via [FromImage] and
// [ReadImageFile], or from font glyphs via the glyph subpackage.
//
// # Architecture
//
// The module is organized into:
//   - Public API: Field, Bitmap, Generate, the codec, Loader
//   - cache: generic LRU used by Loader
//   - glyph: rune-to-bitmap rasterization
//   - internal/parallel: worker pool backing row-parallel generation
//   - cmd/generate-dfield: asset pipeline tool
package dfield
