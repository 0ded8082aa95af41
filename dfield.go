package dfield

// Field is a quantized signed distance field.
//
// Values are signed bytes in [-127, 127], row-major with the origin at the
// top left. Negative or zero means inside the foreground region, positive
// means outside; magnitude grows with distance from the nearest boundary and
// saturates at ±127.
//
// Fields are created by Generate, by the codec (Decode, ReadFile), or by
// NewField. A Field never shares its data slice with another Field.
type Field struct {
	width  int32
	height int32
	data   []int8
}

// NewField creates a field from existing sample data.
// The data slice is copied, so the caller keeps ownership of data.
// Returns ErrBadSize if width or height is not positive or if data does not
// hold exactly width*height samples.
func NewField(width, height int32, data []int8) (*Field, error) {
	if width <= 0 || height <= 0 || len(data) != int(width)*int(height) {
		return nil, ErrBadSize
	}
	d := make([]int8, len(data))
	copy(d, data)
	return &Field{width: width, height: height, data: d}, nil
}

// Width returns the width of the field in pixels.
func (f *Field) Width() int32 {
	return f.width
}

// Height returns the height of the field in pixels.
func (f *Field) Height() int32 {
	return f.height
}

// Data returns the raw row-major sample data.
// The slice is the field's backing store; treat it as read-only after the
// field has been handed to a Loader or another goroutine.
func (f *Field) Data() []int8 {
	return f.data
}

// At returns the sample at (x, y).
// Coordinates outside the field return 127 (far outside).
func (f *Field) At(x, y int32) int8 {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return 127
	}
	return f.data[int(y)*int(f.width)+int(x)]
}

// Bitmap is a black/white occupancy grid used as Generate input.
//
// Bytes are row-major with the origin at the top left: 0 is background
// (black), any nonzero value is foreground (white).
type Bitmap struct {
	width  int32
	height int32
	data   []uint8
}

// NewBitmap creates a bitmap backed by data.
// Unlike NewField, the slice is NOT copied: bitmaps are transient inputs and
// the caller may reuse the buffer once generation has returned.
// Returns ErrBadSize if width or height is not positive or if data does not
// hold exactly width*height bytes.
func NewBitmap(width, height int32, data []uint8) (*Bitmap, error) {
	if width <= 0 || height <= 0 || len(data) != int(width)*int(height) {
		return nil, ErrBadSize
	}
	return &Bitmap{width: width, height: height, data: data}, nil
}

// Width returns the width of the bitmap in pixels.
func (b *Bitmap) Width() int32 {
	return b.width
}

// Height returns the height of the bitmap in pixels.
func (b *Bitmap) Height() int32 {
	return b.height
}

// Data returns the raw row-major occupancy bytes.
func (b *Bitmap) Data() []uint8 {
	return b.data
}

// Set marks the pixel at (x, y) as foreground (white) or background (black).
// Out-of-range coordinates are ignored.
func (b *Bitmap) Set(x, y int32, foreground bool) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	var v uint8
	if foreground {
		v = 0xff
	}
	b.data[int(y)*int(b.width)+int(x)] = v
}

// Generate builds a distance field of the given output dimensions from the
// bitmap. See the package-level Generate for parameters and errors.
func (b *Bitmap) Generate(outputWidth, outputHeight, spread int32, opts ...GenerateOption) (*Field, error) {
	return Generate(b.data, b.width, b.height, outputWidth, outputHeight, spread, opts...)
}
