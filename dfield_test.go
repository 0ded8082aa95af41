package dfield

import (
	"errors"
	"testing"
)

func TestNewField(t *testing.T) {
	tests := []struct {
		name          string
		width, height int32
		dataLen       int
		wantErr       bool
	}{
		{"valid", 4, 3, 12, false},
		{"single pixel", 1, 1, 1, false},
		{"zero width", 0, 3, 0, true},
		{"negative height", 4, -1, 0, true},
		{"data too short", 4, 3, 11, true},
		{"data too long", 4, 3, 13, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewField(tt.width, tt.height, make([]int8, tt.dataLen))
			if tt.wantErr {
				if !errors.Is(err, ErrBadSize) {
					t.Errorf("NewField() error = %v, want ErrBadSize", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewField() error = %v", err)
			}
			if f.Width() != tt.width || f.Height() != tt.height {
				t.Errorf("dimensions = %dx%d, want %dx%d",
					f.Width(), f.Height(), tt.width, tt.height)
			}
		})
	}
}

func TestNewFieldCopiesData(t *testing.T) {
	data := []int8{1, 2, 3, 4}
	f, err := NewField(2, 2, data)
	if err != nil {
		t.Fatalf("NewField() error = %v", err)
	}

	data[0] = 99
	if f.At(0, 0) != 1 {
		t.Error("mutating the source slice changed the field")
	}
}

func TestFieldAt(t *testing.T) {
	f, err := NewField(2, 2, []int8{-5, 10, 20, -30})
	if err != nil {
		t.Fatalf("NewField() error = %v", err)
	}

	tests := []struct {
		name string
		x, y int32
		want int8
	}{
		{"top left", 0, 0, -5},
		{"top right", 1, 0, 10},
		{"bottom left", 0, 1, 20},
		{"bottom right", 1, 1, -30},
		{"negative x", -1, 0, 127},
		{"x past edge", 2, 0, 127},
		{"y past edge", 0, 2, 127},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.At(tt.x, tt.y); got != tt.want {
				t.Errorf("At(%d, %d) = %d, want %d", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestNewBitmap(t *testing.T) {
	if _, err := NewBitmap(2, 2, make([]uint8, 3)); !errors.Is(err, ErrBadSize) {
		t.Errorf("NewBitmap(mismatched data) error = %v, want ErrBadSize", err)
	}

	data := make([]uint8, 4)
	b, err := NewBitmap(2, 2, data)
	if err != nil {
		t.Fatalf("NewBitmap() error = %v", err)
	}

	// Bitmaps alias the caller's buffer on purpose.
	b.Set(1, 0, true)
	if data[1] != 0xff {
		t.Error("Set did not write through to the caller's buffer")
	}
	b.Set(1, 0, false)
	if data[1] != 0 {
		t.Error("Set(false) did not clear the pixel")
	}
	b.Set(5, 5, true) // out of range, ignored
}

func TestBitmapGenerate(t *testing.T) {
	b, err := NewBitmap(2, 2, []uint8{255, 0, 0, 255})
	if err != nil {
		t.Fatalf("NewBitmap() error = %v", err)
	}
	field, err := b.Generate(2, 2, 1)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	direct, err := Generate(b.Data(), 2, 2, 2, 2, 1)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	for i := range field.Data() {
		if field.Data()[i] != direct.Data()[i] {
			t.Fatalf("Bitmap.Generate diverged from Generate at %d", i)
		}
	}
}
