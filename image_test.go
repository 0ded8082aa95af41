package dfield

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestFromImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	copy(img.Pix, []uint8{
		0, 127, 128,
		200, 255, 64,
	})

	b := FromImage(img, 128)
	if b.Width() != 3 || b.Height() != 2 {
		t.Fatalf("dimensions = %dx%d, want 3x2", b.Width(), b.Height())
	}
	want := []uint8{
		0, 0, 0xff,
		0xff, 0xff, 0,
	}
	for i, v := range b.Data() {
		if v != want[i] {
			t.Errorf("data[%d] = %d, want %d", i, v, want[i])
		}
	}
}

func TestFromImageOffsetBounds(t *testing.T) {
	// Sub-images have non-zero bounds; thresholding must respect them.
	img := image.NewGray(image.Rect(10, 20, 12, 22))
	img.SetGray(10, 20, color.Gray{Y: 255})
	img.SetGray(11, 21, color.Gray{Y: 255})

	b := FromImage(img, 128)
	want := []uint8{
		0xff, 0,
		0, 0xff,
	}
	for i, v := range b.Data() {
		if v != want[i] {
			t.Errorf("data[%d] = %d, want %d", i, v, want[i])
		}
	}
}

func TestReadImageFile(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	copy(img.Pix, []uint8{0, 255, 255, 0})

	path := filepath.Join(t.TempDir(), "input.png")
	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(file, img); err != nil {
		t.Fatal(err)
	}
	if err := file.Close(); err != nil {
		t.Fatal(err)
	}

	b, err := ReadImageFile(path, 0) // 0 selects DefaultThreshold
	if err != nil {
		t.Fatalf("ReadImageFile() error = %v", err)
	}
	want := []uint8{0, 0xff, 0xff, 0}
	for i, v := range b.Data() {
		if v != want[i] {
			t.Errorf("data[%d] = %d, want %d", i, v, want[i])
		}
	}
}

func TestReadImageFileErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		if _, err := ReadImageFile(filepath.Join(dir, "nope.png"), 0); err == nil {
			t.Error("ReadImageFile() on missing file succeeded")
		}
	})

	t.Run("not an image", func(t *testing.T) {
		path := filepath.Join(dir, "junk.png")
		if err := os.WriteFile(path, []byte("not a png"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := ReadImageFile(path, 0); err == nil {
			t.Error("ReadImageFile() on junk data succeeded")
		}
	})
}

func TestFieldImage(t *testing.T) {
	f, err := NewField(3, 1, []int8{-127, 0, 127})
	if err != nil {
		t.Fatalf("NewField() error = %v", err)
	}
	img := f.Image()
	want := []uint8{1, 128, 255}
	for i, v := range img.Pix {
		if v != want[i] {
			t.Errorf("pix[%d] = %d, want %d", i, v, want[i])
		}
	}
}

func TestFieldSavePNG(t *testing.T) {
	data := randomBitmap(8, 8, 6)
	f, err := Generate(data, 8, 8, 8, 8, 2)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "field.png")
	if err := f.SavePNG(path); err != nil {
		t.Fatalf("SavePNG() error = %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 8 {
		t.Errorf("decoded bounds = %v, want 8x8", img.Bounds())
	}
}
