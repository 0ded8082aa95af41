package dfield

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	// Registered decoders for ReadImageFile. PNG registers through the
	// image/png import above.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// DefaultThreshold is the luma cut used by ReadImageFile when callers pass 0.
const DefaultThreshold = 128

// FromImage converts an image to an occupancy bitmap by thresholding luma:
// pixels at or above threshold become foreground (white), the rest
// background. A threshold of 0 marks every pixel foreground, which is rarely
// useful; DefaultThreshold suits typical black-on-white or white-on-black
// sources.
func FromImage(img image.Image, threshold uint8) *Bitmap {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	data := make([]uint8, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.GrayModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray)
			if c.Y >= threshold {
				data[y*width+x] = 0xff
			}
		}
	}
	return &Bitmap{width: int32(width), height: int32(height), data: data}
}

// ReadImageFile decodes an image file (PNG, BMP or TIFF) and thresholds it
// into an occupancy bitmap. Unlike ReadRawFile the dimensions come from the
// image header. A threshold of 0 selects DefaultThreshold.
func ReadImageFile(path string, threshold uint8) (*Bitmap, error) {
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dfield: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("dfield: decoding %s: %w", path, err)
	}
	return FromImage(img, threshold), nil
}

// Image renders the field as a grayscale image for inspection: -127 maps to
// 1, 0 to 128 and 127 to 255, so the shape boundary sits at mid-gray and
// the inside is dark.
func (f *Field) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, int(f.width), int(f.height)))
	for i, v := range f.data {
		img.Pix[i] = uint8(int(v) + 128)
	}
	return img
}

// SavePNG writes the grayscale rendering of the field to a PNG file.
func (f *Field) SavePNG(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dfield: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()
	return png.Encode(file, f.Image())
}
